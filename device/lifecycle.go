// SPDX-License-Identifier: EPL-2.0

package device

import "sync"

// State of a Lifecycle.
type State int

const (
	Uninitialized State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "uninitialized"
}

// Lifecycle builds a resource on first use. A failed build leaves it
// Uninitialized so the next call retries.
type Lifecycle[T any] struct {
	mu    sync.Mutex
	build func() (T, error)
	value T
	state State
}

func NewLifecycle[T any](build func() (T, error)) *Lifecycle[T] {
	return &Lifecycle[T]{build: build}
}

// Ready returns the resource, building it when needed.
func (l *Lifecycle[T]) Ready() (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == Ready {
		return l.value, nil
	}

	v, err := l.build()
	if err != nil {
		var zero T
		return zero, err
	}
	l.value, l.state = v, Ready

	return v, nil
}

// Peek returns the resource without building it.
func (l *Lifecycle[T]) Peek() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.value, l.state == Ready
}

func (l *Lifecycle[T]) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state
}
