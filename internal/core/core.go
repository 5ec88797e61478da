package core

import (
	"context"
	"fmt"

	"github.com/agubarev/warden/pkg/item"
	"github.com/agubarev/warden/pkg/security/auth"
	"github.com/agubarev/warden/pkg/security/guard"
	"github.com/agubarev/warden/pkg/user"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// errors
var (
	ErrNilCore          = errors.New("warden core is nil")
	ErrNilUserManager   = errors.New("user manager is nil")
	ErrNilItemStore     = errors.New("item store is nil")
	ErrNilAuthenticator = errors.New("authenticator is nil")
	ErrNilGuard         = errors.New("guard is nil")
)

// Core ties the managers together and owns the process-wide guard
type Core struct {
	users         *user.Manager
	items         item.Store
	authenticator *auth.Authenticator
	guard         *guard.Guard
	logger        *zap.Logger
}

// New initializes the core
func New(um *user.Manager, is item.Store, authn *auth.Authenticator) (c *Core, err error) {
	c = &Core{
		users:         um,
		items:         is,
		authenticator: authn,
	}

	if err = c.Validate(); err != nil {
		return nil, err
	}

	// the guard is configured once for the whole process: principals come
	// from the authenticated request context, denials use the default
	// forbidden rejection
	c.guard, err = guard.New(authn.PrincipalProvider())
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize guard")
	}

	return c, nil
}

// SanitizeAndValidate validates the core
func (c *Core) Validate() error {
	if c.users == nil {
		return ErrNilUserManager
	}

	if c.items == nil {
		return ErrNilItemStore
	}

	if c.authenticator == nil {
		return ErrNilAuthenticator
	}

	return nil
}

// UserManager returns the user manager
func (c *Core) UserManager() *user.Manager {
	if c.users == nil {
		panic(ErrNilUserManager)
	}

	return c.users
}

// ItemStore returns the item store
func (c *Core) ItemStore() item.Store {
	if c.items == nil {
		panic(ErrNilItemStore)
	}

	return c.items
}

// Authenticator returns the authenticator
func (c *Core) Authenticator() *auth.Authenticator {
	if c.authenticator == nil {
		panic(ErrNilAuthenticator)
	}

	return c.authenticator
}

// Guard returns the process-wide permission guard
func (c *Core) Guard() *guard.Guard {
	if c.guard == nil {
		panic(ErrNilGuard)
	}

	return c.guard
}

// SetLogger setting a primary logger for the core
func (c *Core) SetLogger(logger *zap.Logger) error {
	if logger != nil {
		logger = logger.Named("[warden]")
	}

	c.logger = logger

	return nil
}

// Logger returns primary logger if is set, otherwise initializing and returning
// a new default emergency logger
// NOTE: will panic if it finally fails to obtain a logger
func (c *Core) Logger() *zap.Logger {
	if c.logger == nil {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(fmt.Errorf("failed to initialize core logger: %s", err))
		}

		c.logger = l
	}

	return c.logger
}

// SeedDemo loads the demo fixtures: two users and a couple of cheeses
func (c *Core) SeedDemo(ctx context.Context) error {
	l := c.Logger()

	if _, err := c.users.Create(ctx, "bob", "bob@example.com", "Bobby Bob", []byte("si0d!o9sacz$"), "user:bob", "role:admin"); err != nil {
		return errors.Wrap(err, "failed to seed user: bob")
	}

	if _, err := c.users.Create(ctx, "alice", "alicechains@example.com", "Alice Chains", []byte("si0d!o9sacz$"), "user:alice"); err != nil {
		return errors.Wrap(err, "failed to seed user: alice")
	}

	fixtures := []item.Item{
		{Name: "Stilton", Owner: "bob"},
		{Name: "Danish Blue", Owner: "alice"},
	}

	for _, i := range fixtures {
		if _, err := c.items.Create(ctx, i); err != nil {
			return errors.Wrapf(err, "failed to seed item: %s", i.Name)
		}
	}

	l.Info("demo fixtures loaded", zap.Int("users", 2), zap.Int("items", len(fixtures)))

	return nil
}
