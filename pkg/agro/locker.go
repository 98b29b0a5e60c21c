package agro

import "sync"

// FieldLockStore manages per-field locks: field_id -> mutex.
//
// FieldState (with its nested rule states) is the shared mutable resource
// of the engine; two readings for the same field must not race on the same
// snapshot. The engine, the stale sweep, and alert resolution all
// serialize through this store, while work on different fields proceeds in
// parallel.
type FieldLockStore struct {
	locks map[string]*sync.Mutex
	mu    sync.Mutex
}

func NewFieldLockStore() *FieldLockStore {
	return &FieldLockStore{
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *FieldLockStore) GetLock(fieldID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, exists := s.locks[fieldID]
	if !exists {
		lock = &sync.Mutex{}
		s.locks[fieldID] = lock
	}
	return lock
}
