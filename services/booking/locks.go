package booking

import "sync"

// roomLocks serializes the check-then-write path per room. Two concurrent
// creates for the same room cannot both pass the availability scan before
// either writes; at most one commits, the other observes the conflict.
type roomLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

var mutationLocks = &roomLocks{locks: make(map[string]*sync.Mutex)}

func (l *roomLocks) forRoom(roomName string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[roomName]
	if !ok {
		m = &sync.Mutex{}
		l.locks[roomName] = m
	}
	return m
}
