package assignment

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Locker serialises draws on one event. Lock returns a release func.
// utils.RedisLocker satisfies it across replicas.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

var errLocalLockTimeout = errors.New("local lock wait exceeded")

type localLock struct {
	ch   chan struct{}
	refs int
}

// LocalLocker is a per-key mutex for a single process.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*localLock
	wait  time.Duration
}

func NewLocalLocker(wait time.Duration) *LocalLocker {
	if wait <= 0 {
		wait = 5 * time.Second
	}
	return &LocalLocker{locks: make(map[string]*localLock), wait: wait}
}

func (l *LocalLocker) acquireRef(key string) *localLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	lk, ok := l.locks[key]
	if !ok {
		lk = &localLock{ch: make(chan struct{}, 1)}
		l.locks[key] = lk
	}
	lk.refs++
	return lk
}

func (l *LocalLocker) releaseRef(key string, lk *localLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lk.refs--
	if lk.refs == 0 {
		delete(l.locks, key)
	}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	lk := l.acquireRef(key)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case lk.ch <- struct{}{}:
	case <-ctx.Done():
		l.releaseRef(key, lk)
		return nil, ctx.Err()
	case <-timer.C:
		l.releaseRef(key, lk)
		return nil, errLocalLockTimeout
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-lk.ch
			l.releaseRef(key, lk)
		})
	}, nil
}
