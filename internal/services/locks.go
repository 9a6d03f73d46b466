package services

import "sync"

// LockTable hands out one mutex per policy id. Settlement and deactivation
// hold the policy's lock across their check-mutate sequence, so claims
// against different policies never block each other.
type LockTable struct {
	locks sync.Map
}

func NewLockTable() *LockTable {
	return &LockTable{}
}

func (t *LockTable) lock(policyID int64) *sync.Mutex {
	mu, _ := t.locks.LoadOrStore(policyID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
