package assignment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLockerSerialisesOneKey(t *testing.T) {
	l := NewLocalLocker(time.Second)
	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "draw:ev-1")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, l.locks)
}

func TestLocalLockerKeysAreIndependent(t *testing.T) {
	l := NewLocalLocker(50 * time.Millisecond)

	unlockA, err := l.Lock(context.Background(), "draw:a")
	require.NoError(t, err)
	defer unlockA()

	unlockB, err := l.Lock(context.Background(), "draw:b")
	require.NoError(t, err)
	unlockB()
}

func TestLocalLockerTimesOut(t *testing.T) {
	l := NewLocalLocker(20 * time.Millisecond)

	unlock, err := l.Lock(context.Background(), "draw:ev-1")
	require.NoError(t, err)

	_, err = l.Lock(context.Background(), "draw:ev-1")
	assert.ErrorIs(t, err, errLocalLockTimeout)

	unlock()
	unlock() // second release is a no-op

	again, err := l.Lock(context.Background(), "draw:ev-1")
	require.NoError(t, err)
	again()
}

func TestLocalLockerHonoursContext(t *testing.T) {
	l := NewLocalLocker(time.Second)
	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
