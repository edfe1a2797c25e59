package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMax    = 5
	testWindow = 60 * time.Second
)

func TestLimiterAllowsUpToLimit(t *testing.T) {
	rl := New(testMax, testWindow)
	for i := range testMax {
		require.True(t, rl.Allow("user-1"), "request %d should be allowed", i+1)
	}
	assert.False(t, rl.Allow("user-1"), "request beyond limit should be denied")
}

func TestLimiterIsolatesKeys(t *testing.T) {
	rl := New(testMax, testWindow)
	for range testMax {
		rl.Allow("user-1")
	}
	assert.False(t, rl.Allow("user-1"))
	assert.True(t, rl.Allow("user-2"), "different key should not be affected")
}

func TestLimiterResetsAfterWindow(t *testing.T) {
	rl := New(testMax, testWindow)
	now := time.Now()
	rl.now = func() time.Time { return now }

	for range testMax {
		require.True(t, rl.Allow("user-1"))
	}
	require.False(t, rl.Allow("user-1"))

	now = now.Add(testWindow + time.Second)
	assert.True(t, rl.Allow("user-1"), "should allow after old entries expire")
}

func TestLimiterPrunesOldEntries(t *testing.T) {
	rl := New(testMax, testWindow)

	rl.mu.Lock()
	old := time.Now().Add(-testWindow - time.Second)
	for range 3 {
		rl.requests["user-1"] = append(rl.requests["user-1"], old)
	}
	rl.mu.Unlock()

	for i := range testMax {
		require.True(t, rl.Allow("user-1"), "request %d should be allowed after pruning", i+1)
	}
	assert.False(t, rl.Allow("user-1"))
}

func TestLimiterCleanup(t *testing.T) {
	rl := New(testMax, testWindow)
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.Allow("stale")
	now = now.Add(testWindow + time.Second)
	rl.Allow("fresh")

	rl.Cleanup()
	assert.Equal(t, 1, rl.Len())
	assert.True(t, rl.Allow("stale"))
}

func TestLimiterConcurrentAccess(t *testing.T) {
	rl := New(testMax, testWindow)
	var wg sync.WaitGroup
	allowed := make([]int, 10)

	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("user-%d", i)
			for range testMax + 2 {
				if rl.Allow(key) {
					allowed[i]++
				}
			}
		}()
	}
	wg.Wait()

	for i, count := range allowed {
		assert.Equal(t, testMax, count, "user-%d should have exactly %d allowed requests", i, testMax)
	}
}
