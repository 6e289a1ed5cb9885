// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package eventstream

import (
	"github.com/Workiva/go-datastructures/queue"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// Subscriber receives the messages published on the topics it is subscribed to.
// Messages are kept in the subscriber inbox until they are read with Iterator.
type Subscriber struct {
	id       string
	topics   mapset.Set[string]
	messages *queue.Queue
	active   *atomic.Bool
}

func newSubscriber() *Subscriber {
	return &Subscriber{
		id:       uuid.NewString(),
		topics:   mapset.NewSet[string](),
		messages: queue.New(16),
		active:   atomic.NewBool(true),
	}
}

// ID returns the subscriber unique identifier
func (s *Subscriber) ID() string {
	return s.id
}

// Active reports whether the subscriber still accepts messages
func (s *Subscriber) Active() bool {
	return s.active.Load()
}

// Topics returns the topics the subscriber listens to
func (s *Subscriber) Topics() []string {
	return s.topics.ToSlice()
}

// Iterator drains the inbox into a closed channel.
// Only one goroutine should read a given subscriber.
func (s *Subscriber) Iterator() <-chan *Message {
	size := s.messages.Len()
	out := make(chan *Message, size)
	defer close(out)

	if size == 0 {
		return out
	}

	items, err := s.messages.Get(size)
	if err != nil {
		return out
	}

	for _, item := range items {
		out <- item.(*Message)
	}
	return out
}

// Shutdown stops the delivery of messages and drops the pending ones
func (s *Subscriber) Shutdown() {
	if s.active.CompareAndSwap(true, false) {
		s.messages.Dispose()
	}
}

func (s *Subscriber) signal(message *Message) {
	if s.active.Load() {
		_ = s.messages.Put(message)
	}
}

func (s *Subscriber) subscribe(topic string) {
	s.topics.Add(topic)
}

func (s *Subscriber) unsubscribe(topic string) {
	s.topics.Remove(topic)
}
