package item

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
)

// Store represents an item storage backend contract
type Store interface {
	Create(ctx context.Context, i Item) (Item, error)
	FetchByID(ctx context.Context, id uint32) (Item, error)
	FetchAll(ctx context.Context) ([]Item, error)
	DeleteByID(ctx context.Context, id uint32) error
}

// memoryStore is a default item store implementation
type memoryStore struct {
	idCounter uint32
	items     map[uint32]Item

	sync.RWMutex
}

// NewMemoryStore returns an initialized in-memory item store
func NewMemoryStore() Store {
	return &memoryStore{
		items: make(map[uint32]Item),
	}
}

func (s *memoryStore) newID() uint32 {
	return atomic.AddUint32(&s.idCounter, 1)
}

func (s *memoryStore) Create(ctx context.Context, i Item) (Item, error) {
	if err := i.Validate(); err != nil {
		return i, err
	}

	i.ID = s.newID()

	s.Lock()
	s.items[i.ID] = i
	s.Unlock()

	return i, nil
}

func (s *memoryStore) FetchByID(ctx context.Context, id uint32) (i Item, err error) {
	if id == 0 {
		return i, ErrZeroItemID
	}

	s.RLock()
	i, ok := s.items[id]
	s.RUnlock()

	if !ok {
		return i, ErrItemNotFound
	}

	return i, nil
}

func (s *memoryStore) FetchAll(ctx context.Context) (items []Item, err error) {
	s.RLock()
	items = make([]Item, 0, len(s.items))
	for _, i := range s.items {
		items = append(items, i)
	}
	s.RUnlock()

	sort.Slice(items, func(a, b int) bool { return items[a].ID < items[b].ID })

	return items, nil
}

func (s *memoryStore) DeleteByID(ctx context.Context, id uint32) error {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrItemNotFound
	}

	delete(s.items, id)

	return nil
}
