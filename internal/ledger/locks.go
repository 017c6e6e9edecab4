package ledger

import "sync"

// accountLocks hands out one mutex per account key so the engine can
// serialize mutations to the same account while leaving unrelated accounts
// uncontended. Locks are never removed; the set of accounts is small and
// bounded by the per-owner cap.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *accountLocks) get(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	return m
}

// lockOne locks a single account and returns the unlock func.
func (l *accountLocks) lockOne(key string) func() {
	m := l.get(key)
	m.Lock()
	return m.Unlock
}

// lockPair locks two distinct accounts in global key order, regardless of
// the order the caller supplied them in. Two transfers moving money in
// opposite directions between the same pair therefore always contend on the
// same first lock and cannot deadlock in a circular wait.
func (l *accountLocks) lockPair(a, b string) func() {
	first, second := a, b
	if second < first {
		first, second = second, first
	}

	fm, sm := l.get(first), l.get(second)
	fm.Lock()
	sm.Lock()
	return func() {
		sm.Unlock()
		fm.Unlock()
	}
}
