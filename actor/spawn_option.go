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

package actor

import (
	gerrors "github.com/tochemey/troupe/errors"
	"github.com/tochemey/troupe/internal/validation"
)

// spawnConfig defines the configuration to apply when creating an actor
type spawnConfig struct {
	// executor runs the turns of the actor, the parent's one by default
	executor Executor
	// definition overrides the behaviour chain of the actor
	definition BehaviourDefinition
	// link links the parent to the actor
	link bool
	// supervise makes the parent the supervisor of the actor
	supervise bool
	// deadLetters receives the envelopes rejected by the actor
	deadLetters *Reference
}

// newSpawnConfig creates an instance of spawnConfig
func newSpawnConfig(opts ...SpawnOption) *spawnConfig {
	config := new(spawnConfig)
	for _, opt := range opts {
		opt.Apply(config)
	}
	return config
}

// validate checks the options fit the behaviour definition of the actor
func (c *spawnConfig) validate(definition BehaviourDefinition, hasParent bool) error {
	if err := definition.Validate(); err != nil {
		return err
	}

	return validation.New().
		AddAssertion(!c.link || definition.Has(LinkingKind),
			gerrors.NewErrInvalidBehaviourDefinition("linking to the parent requires Linking")).
		AddAssertion(!c.supervise || definition.Has(SupervisedKind),
			gerrors.NewErrInvalidBehaviourDefinition("supervision by the parent requires Supervised")).
		AddAssertion(hasParent || !(c.link || c.supervise),
			gerrors.NewErrInvalidBehaviourDefinition("an actor without parent cannot be linked nor supervised")).
		Validate()
}

// SpawnOption is the interface that applies to
type SpawnOption interface {
	// Apply sets the Option value of a config.
	Apply(config *spawnConfig)
}

var _ SpawnOption = spawnOption(nil)

// spawnOption implements the SpawnOption interface.
type spawnOption func(config *spawnConfig)

// Apply sets the Option value of a config.
func (f spawnOption) Apply(c *spawnConfig) {
	f(c)
}

// WithSpawnExecutor runs the actor on the given executor instead of its parent's one.
// The children of the actor inherit it.
func WithSpawnExecutor(executor Executor) SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.executor = executor
	})
}

// WithBehaviourDefinition sets the behaviour chain of the actor.
// It takes precedence over the definition provided by the Actor itself.
func WithBehaviourDefinition(definition BehaviourDefinition) SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.definition = definition
	})
}

// WithLink links the spawning actor to the new actor: the parent receives
// the public lifecycle events of the child as messages.
func WithLink() SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.link = true
	})
}

// WithSupervise makes the spawning actor the supervisor of the new actor.
// The behaviour chain of the child must contain Supervised.
func WithSupervise() SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.supervise = true
	})
}

// WithDeadLetters routes the envelopes rejected by the actor, and by the
// children inheriting it, to the given actor.
func WithDeadLetters(to *Reference) SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.deadLetters = to
	})
}
