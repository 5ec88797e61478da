package user

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store represents a user storage backend contract
type Store interface {
	Put(ctx context.Context, u User) (User, error)
	FetchByID(ctx context.Context, id uuid.UUID) (User, error)
	FetchByUsername(ctx context.Context, username string) (User, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// memoryStore is a default user store implementation
// that holds everything in memory
type memoryStore struct {
	idMap       map[uuid.UUID]User
	usernameMap map[string]uuid.UUID

	sync.RWMutex
}

// NewMemoryStore returns an initialized in-memory user store
func NewMemoryStore() Store {
	return &memoryStore{
		idMap:       make(map[uuid.UUID]User),
		usernameMap: make(map[string]uuid.UUID),
	}
}

func (s *memoryStore) Put(ctx context.Context, u User) (User, error) {
	if u.ID == uuid.Nil {
		return u, ErrNilUserID
	}

	s.Lock()
	s.idMap[u.ID] = u
	s.usernameMap[strings.ToLower(u.Username)] = u.ID
	s.Unlock()

	return u, nil
}

func (s *memoryStore) FetchByID(ctx context.Context, id uuid.UUID) (u User, err error) {
	s.RLock()
	u, ok := s.idMap[id]
	s.RUnlock()

	if !ok {
		return u, ErrUserNotFound
	}

	return u, nil
}

func (s *memoryStore) FetchByUsername(ctx context.Context, username string) (u User, err error) {
	s.RLock()
	id, ok := s.usernameMap[strings.ToLower(username)]
	s.RUnlock()

	if !ok {
		return u, ErrUserNotFound
	}

	return s.FetchByID(ctx, id)
}

func (s *memoryStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	s.Lock()
	defer s.Unlock()

	u, ok := s.idMap[id]
	if !ok {
		return ErrUserNotFound
	}

	delete(s.idMap, id)
	delete(s.usernameMap, strings.ToLower(u.Username))

	return nil
}
