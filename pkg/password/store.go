package password

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Store interface
// NOTE: ownerID represents the ID of whoever owns a given password
type Store interface {
	Upsert(ctx context.Context, p Password) error
	Get(ctx context.Context, k Kind, ownerID uuid.UUID) (Password, error)
	Delete(ctx context.Context, k Kind, ownerID uuid.UUID) error
}

type ownerKey struct {
	kind Kind
	id   uuid.UUID
}

// memoryStore keeps password hashes in memory
type memoryStore struct {
	passwords map[ownerKey]Password

	sync.RWMutex
}

// NewMemoryStore initializes an in-memory password store
func NewMemoryStore() Store {
	return &memoryStore{
		passwords: make(map[ownerKey]Password),
	}
}

func (s *memoryStore) Upsert(ctx context.Context, p Password) (err error) {
	if err = p.Validate(); err != nil {
		return err
	}

	s.Lock()
	s.passwords[ownerKey{kind: p.Kind, id: p.OwnerID}] = p
	s.Unlock()

	return nil
}

func (s *memoryStore) Get(ctx context.Context, k Kind, ownerID uuid.UUID) (p Password, err error) {
	s.RLock()
	p, ok := s.passwords[ownerKey{kind: k, id: ownerID}]
	s.RUnlock()

	if !ok {
		return p, ErrPasswordNotFound
	}

	return p, nil
}

func (s *memoryStore) Delete(ctx context.Context, k Kind, ownerID uuid.UUID) error {
	s.Lock()
	defer s.Unlock()

	key := ownerKey{kind: k, id: ownerID}
	if _, ok := s.passwords[key]; !ok {
		return ErrPasswordNotFound
	}

	delete(s.passwords, key)

	return nil
}
