package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func cloneSlice(v []int) []int {
	return append([]int(nil), v...)
}

func TestGetWithinTTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := New[[]int](8*time.Second, cloneSlice)
	c.SetClock(clock.Now)

	c.Put("k", []int{1, 2, 3})
	clock.Advance(8 * time.Second)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestGetExpiredEvicts(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := New[[]int](8*time.Second, cloneSlice)
	c.SetClock(clock.Now)

	c.Put("k", []int{1})
	clock.Advance(8*time.Second + time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMissingKey(t *testing.T) {
	c := New[[]int](time.Second, cloneSlice)
	got, ok := c.Get("nope")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCopiesOnPutAndGet(t *testing.T) {
	c := New[[]int](time.Minute, cloneSlice)

	in := []int{1, 2, 3}
	c.Put("k", in)
	in[0] = 100

	first, ok := c.Get("k")
	require.True(t, ok)
	first[1] = 200

	second, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, second)
}

func TestPutOverwritesAndRefreshes(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	c := New[[]int](10*time.Second, cloneSlice)
	c.SetClock(clock.Now)

	c.Put("k", []int{1})
	clock.Advance(6 * time.Second)
	c.Put("k", []int{2})
	clock.Advance(6 * time.Second)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []int{2}, got)
}

func TestPurge(t *testing.T) {
	c := New[[]int](time.Minute, nil)
	c.Put("a", []int{1})
	c.Put("b", []int{2})
	c.Purge()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestDefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, New[int](0, nil).TTL())
}

func TestConcurrentAccess(t *testing.T) {
	c := New[[]int](time.Minute, cloneSlice)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			for j := 0; j < 200; j++ {
				c.Put(key, []int{i, j})
				if v, ok := c.Get(key); ok {
					assert.Len(t, v, 2)
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 4, c.Len())
}
