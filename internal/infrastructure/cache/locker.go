package cache

import (
	"context"
	"sync"
)

// KeyedLocker serialises work on a single key. The returned unlock func must
// be called exactly once.
type KeyedLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// MemoryKeyedLocker implements KeyedLocker with one mutex per key. Entries
// are refcounted and dropped when the last holder or waiter leaves.
type MemoryKeyedLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

// NewMemoryKeyedLocker creates an in-process locker
func NewMemoryKeyedLocker() *MemoryKeyedLocker {
	return &MemoryKeyedLocker{locks: make(map[string]*keyLock)}
}

// Lock blocks until the key is free or ctx is done
func (l *MemoryKeyedLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	select {
	case kl.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, kl)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-kl.ch
			l.release(key, kl)
		})
	}, nil
}

func (l *MemoryKeyedLocker) release(key string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
}

// Len returns the number of keys currently held or waited on
func (l *MemoryKeyedLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
