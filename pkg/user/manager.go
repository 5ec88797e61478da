package user

import (
	"context"
	"fmt"

	"github.com/agubarev/warden/pkg/password"
	"github.com/agubarev/warden/pkg/security/acl"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Manager is responsible for all user operations within its scope
type Manager struct {
	store     Store
	passwords password.Manager
	logger    *zap.Logger
}

// NewManager initializes a new user manager
func NewManager(s Store, pm password.Manager) (*Manager, error) {
	if s == nil {
		return nil, ErrNilStore
	}

	if pm == nil {
		return nil, ErrNilPasswordManager
	}

	m := &Manager{
		store:     s,
		passwords: pm,
	}

	return m, nil
}

// SetLogger assigns a logger for this manager
func (m *Manager) SetLogger(logger *zap.Logger) error {
	if logger != nil {
		logger = logger.Named("[user]")
	}

	m.logger = logger

	return nil
}

// Logger returns primary logger if is set, otherwise initializing and returning
func (m *Manager) Logger() *zap.Logger {
	if m.logger == nil {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(fmt.Errorf("failed to initialize user manager logger: %s", err))
		}

		m.logger = l
	}

	return m.logger
}

// Create initializes a new user, stores it and sets its password
func (m *Manager) Create(ctx context.Context, username, email, fullName string, rawpass []byte, principals ...acl.Principal) (u User, err error) {
	u, err = NewUser(username, email, fullName, principals...)
	if err != nil {
		return u, err
	}

	if _, err = m.store.FetchByUsername(ctx, u.Username); err == nil {
		return u, ErrUsernameTaken
	}

	if u, err = m.store.Put(ctx, u); err != nil {
		return u, errors.Wrap(err, "failed to store new user")
	}

	// NOTE: username and email are fed to the strength evaluator so that
	// passwords derived from either are rejected
	if err = m.passwords.Upsert(ctx, password.KUser, u.ID, rawpass, []string{u.Username, u.Email}); err != nil {
		// rolling the user back, a user without a password is useless
		if deleteErr := m.store.DeleteByID(ctx, u.ID); deleteErr != nil {
			m.Logger().Warn("failed to roll back user after password failure",
				zap.String("username", u.Username), zap.Error(deleteErr))
		}

		return User{}, errors.Wrap(err, "failed to set user password")
	}

	m.Logger().Info("user created", zap.String("username", u.Username))

	return u, nil
}

// UserByID returns a user by its ID
func (m *Manager) UserByID(ctx context.Context, id uuid.UUID) (User, error) {
	if id == uuid.Nil {
		return User{}, ErrNilUserID
	}

	return m.store.FetchByID(ctx, id)
}

// UserByUsername returns a user by its username
func (m *Manager) UserByUsername(ctx context.Context, username string) (User, error) {
	if username == "" {
		return User{}, ErrEmptyUsername
	}

	return m.store.FetchByUsername(ctx, username)
}

// Authenticate fetches a user by username and verifies the given password
func (m *Manager) Authenticate(ctx context.Context, username string, rawpass []byte) (u User, err error) {
	u, err = m.store.FetchByUsername(ctx, username)
	if err != nil {
		return User{}, err
	}

	if err = m.passwords.Compare(ctx, password.KUser, u.ID, rawpass); err != nil {
		return User{}, err
	}

	return u, nil
}
