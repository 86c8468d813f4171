package pool

import "sync"

// poolLocks serializes operations on the same pool while letting different
// pools proceed in parallel. Mutexes are never released since pools are
// never deleted.
type poolLocks struct {
	lock  sync.Mutex
	locks map[string]*sync.Mutex
}

func newPoolLocks() *poolLocks {
	return &poolLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *poolLocks) acquire(key string) (release func()) {
	l.lock.Lock()
	mu, ok := l.locks[key]
	if !ok {
		mu = &sync.Mutex{}
		l.locks[key] = mu
	}
	l.lock.Unlock()

	mu.Lock()
	return mu.Unlock
}
