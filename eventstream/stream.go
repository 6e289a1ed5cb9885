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

// Package eventstream implements the in-process publish/subscribe stream an
// actor system uses to expose dead letters and lifecycle events.
package eventstream

import (
	"sync"
)

// Stream is a topic based publish/subscribe broker.
type Stream struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscriber
	topics      map[string]map[string]*Subscriber
}

// New creates a Stream
func New() *Stream {
	return &Stream{
		subscribers: make(map[string]*Subscriber),
		topics:      make(map[string]map[string]*Subscriber),
	}
}

// AddSubscriber registers a new subscriber
func (s *Stream) AddSubscriber() *Subscriber {
	subscriber := newSubscriber()
	s.mu.Lock()
	s.subscribers[subscriber.ID()] = subscriber
	s.mu.Unlock()
	return subscriber
}

// RemoveSubscriber unsubscribes the subscriber from all its topics and shuts it down
func (s *Stream) RemoveSubscriber(subscriber *Subscriber) {
	s.mu.Lock()
	for _, topic := range subscriber.Topics() {
		s.unsubscribe(subscriber, topic)
	}
	delete(s.subscribers, subscriber.ID())
	s.mu.Unlock()
	subscriber.Shutdown()
}

// Subscribe adds the subscriber to the topic. Inactive subscribers are ignored.
func (s *Stream) Subscribe(subscriber *Subscriber, topic string) {
	if !subscriber.Active() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	subscriber.subscribe(topic)
	subscribers, ok := s.topics[topic]
	if !ok {
		subscribers = make(map[string]*Subscriber)
		s.topics[topic] = subscribers
	}
	subscribers[subscriber.ID()] = subscriber
}

// Unsubscribe removes the subscriber from the topic
func (s *Stream) Unsubscribe(subscriber *Subscriber, topic string) {
	s.mu.Lock()
	s.unsubscribe(subscriber, topic)
	s.mu.Unlock()
}

// SubscribersCount returns the number of subscribers for a given topic
func (s *Stream) SubscribersCount(topic string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.topics[topic])
}

// Publish delivers the payload to every active subscriber of the topic
func (s *Stream) Publish(topic string, payload any) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subscribers := s.topics[topic]
	if len(subscribers) == 0 {
		return
	}

	message := NewMessage(topic, payload)
	for _, subscriber := range subscribers {
		subscriber.signal(message)
	}
}

// Close shuts every subscriber down and forgets all topics
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, subscriber := range s.subscribers {
		subscriber.Shutdown()
	}
	s.subscribers = make(map[string]*Subscriber)
	s.topics = make(map[string]map[string]*Subscriber)
}

func (s *Stream) unsubscribe(subscriber *Subscriber, topic string) {
	subscriber.unsubscribe(topic)
	if subscribers, ok := s.topics[topic]; ok {
		delete(subscribers, subscriber.ID())
		if len(subscribers) == 0 {
			delete(s.topics, topic)
		}
	}
}
