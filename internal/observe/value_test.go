package observe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

func TestValue_SubscribeReceivesCurrent(t *testing.T) {
	v := NewValue("initial")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := v.Subscribe(ctx)
	assert.Equal(t, "initial", recv(t, ch))

	v.Set("next")
	assert.Equal(t, "next", recv(t, ch))
}

func TestValue_ConflatesForSlowSubscribers(t *testing.T) {
	v := NewValue(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := v.Subscribe(ctx)
	for i := 1; i <= 5; i++ {
		v.Set(i)
	}

	assert.Equal(t, 5, recv(t, ch))
	assert.Equal(t, 5, v.Get())
}

func TestValue_Update(t *testing.T) {
	v := NewValue(1)
	got := v.Update(func(n int) int { return n + 41 })
	assert.Equal(t, 42, got)
	assert.Equal(t, 42, v.Get())
}

func TestValue_UnsubscribeOnCancel(t *testing.T) {
	v := NewValue(0)
	ctx, cancel := context.WithCancel(context.Background())

	ch := v.Subscribe(ctx)
	recv(t, ch)
	assert.Equal(t, 1, v.Subscribers())

	cancel()
	assert.Eventually(t, func() bool { return v.Subscribers() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-ch
	assert.False(t, ok)

	// Set after unsubscribe must not panic on the closed channel.
	v.Set(7)
}

func TestMap_SkipsDuplicates(t *testing.T) {
	v := NewValue([]int{1})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	contains := func(ids []int) bool {
		for _, id := range ids {
			if id == 2 {
				return true
			}
		}
		return false
	}
	out := Map(v.Subscribe(ctx), contains, func(a, b bool) bool { return a == b })

	assert.False(t, recv(t, out))

	v.Set([]int{1, 3})
	v.Set([]int{2})
	assert.True(t, recv(t, out))

	cancel()
	assert.Eventually(t, func() bool {
		_, ok := <-out
		return !ok
	}, time.Second, 5*time.Millisecond)
}
