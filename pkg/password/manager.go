package password

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// errors
var (
	ErrNilOwnerID       = errors.New("owner id is nil")
	ErrNilPasswordStore = errors.New("password store is nil")
	ErrNilPassword      = errors.New("password is nil")
	ErrEmptyPassword    = errors.New("empty password is forbidden")
	ErrPasswordNotFound = errors.New("password not found")
	ErrShortPassword    = errors.New("password is too short")
	ErrLongPassword     = errors.New("password is too long")
	ErrUnsafePassword   = errors.New("password is too unsafe")
	ErrWrongPassword    = errors.New("wrong password")
)

type Kind uint8

// password owner kinds
const (
	KUser Kind = iota
)

// Manager describes the behaviour of a user password manager
type Manager interface {
	Upsert(ctx context.Context, kind Kind, ownerID uuid.UUID, rawpass []byte, data []string) error
	Compare(ctx context.Context, kind Kind, ownerID uuid.UUID, rawpass []byte) error
	Delete(ctx context.Context, kind Kind, ownerID uuid.UUID) error
}

type defaultManager struct {
	store Store
}

// NewDefaultManager initializes the default user password manager
func NewDefaultManager(store Store) (Manager, error) {
	if store == nil {
		return nil, ErrNilPasswordStore
	}

	pm := &defaultManager{
		store: store,
	}

	return pm, nil
}

func (m *defaultManager) Upsert(ctx context.Context, k Kind, ownerID uuid.UUID, rawpass []byte, data []string) (err error) {
	p, err := New(k, ownerID, rawpass, data)
	if err != nil {
		return errors.Wrap(err, "failed to initialize new password")
	}

	if err = p.Validate(); err != nil {
		return errors.Wrap(err, "password validation failed")
	}

	return m.store.Upsert(ctx, p)
}

func (m *defaultManager) Compare(ctx context.Context, k Kind, ownerID uuid.UUID, rawpass []byte) (err error) {
	if ownerID == uuid.Nil {
		return ErrNilOwnerID
	}

	p, err := m.store.Get(ctx, k, ownerID)
	if err != nil {
		return err
	}

	if !p.Compare(rawpass) {
		return ErrWrongPassword
	}

	return nil
}

func (m *defaultManager) Delete(ctx context.Context, k Kind, ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return ErrNilOwnerID
	}

	return m.store.Delete(ctx, k, ownerID)
}
