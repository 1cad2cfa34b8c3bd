// Package observe provides a conflating observable value: subscribers receive
// the current value on subscription and the latest value after every change.
package observe

import (
	"context"
	"sync"
)

// Value holds the latest T and fans it out to subscribers.
// Slow subscribers never block Set; they simply observe the newest value.
type Value[T any] struct {
	mu      sync.RWMutex
	current T
	subs    map[chan T]struct{}
}

// NewValue creates a Value seeded with initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		current: initial,
		subs:    make(map[chan T]struct{}),
	}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set stores val and notifies every subscriber.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = val
	for ch := range v.subs {
		offer(ch, val)
	}
}

// Update applies fn to the current value under the lock and publishes the result.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = fn(v.current)
	for ch := range v.subs {
		offer(ch, v.current)
	}
	return v.current
}

// Subscribe returns a channel that immediately yields the current value and
// then every subsequent one. The channel is closed when ctx is done.
func (v *Value[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	v.mu.Lock()
	ch <- v.current
	v.subs[ch] = struct{}{}
	v.mu.Unlock()

	go func() {
		<-ctx.Done()
		v.mu.Lock()
		delete(v.subs, ch)
		close(ch)
		v.mu.Unlock()
	}()

	return ch
}

// Subscribers returns the number of live subscriptions.
func (v *Value[T]) Subscribers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.subs)
}

// offer replaces any unread value in ch with val. Must be called with the
// write lock held; only Set/Update send, so the send below never blocks.
func offer[T any](ch chan T, val T) {
	select {
	case <-ch:
	default:
	}
	ch <- val
}

// Map derives a channel by applying fn to every value from in, skipping
// consecutive duplicates according to eq. The output closes when in does.
func Map[T, U any](in <-chan T, fn func(T) U, eq func(a, b U) bool) <-chan U {
	out := make(chan U, 1)

	go func() {
		defer close(out)

		var last U
		first := true
		for val := range in {
			mapped := fn(val)
			if !first && eq != nil && eq(last, mapped) {
				continue
			}
			first = false
			last = mapped

			select {
			case <-out:
			default:
			}
			out <- mapped
		}
	}()

	return out
}
