// Package broadcast provides an observable value shared between the
// components that read and write visitor preferences.
package broadcast

import "sync"

const defaultDepth = 8

// Value holds the current value of T and fans changes out to subscribers.
type Value[T any] struct {
	mu    sync.RWMutex
	cur   T
	subs  map[chan T]struct{}
	depth int
}

// New returns a Value holding initial.
func New[T any](initial T) *Value[T] {
	return &Value[T]{
		cur:   initial,
		subs:  make(map[chan T]struct{}),
		depth: defaultDepth,
	}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.cur
}

// Set stores next and notifies every subscriber. A subscriber that has
// fallen behind loses its oldest pending value, never the newest.
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = next
	for ch := range v.subs {
		deliver(ch, next)
	}
}

func deliver[T any](ch chan T, next T) {
	for {
		select {
		case ch <- next:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Subscribe registers a subscriber and returns its channel and a cancel
// func. Cancel closes the channel and is safe to call more than once.
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	ch := make(chan T, v.depth)
	v.mu.Lock()
	v.subs[ch] = struct{}{}
	v.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.subs, ch)
			v.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers reports the number of active subscribers.
func (v *Value[T]) Subscribers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.subs)
}
