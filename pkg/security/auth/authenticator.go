package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/agubarev/warden/pkg/security/acl"
	"github.com/agubarev/warden/pkg/user"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Authenticator trades credentials for access tokens
// and access tokens back for users
type Authenticator struct {
	users     *user.Manager
	blacklist Cache
	secret    []byte
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewAuthenticator initializes a new authenticator
// NOTE: the blacklist cache is expected to evict entries on its own
// no sooner than the token lifetime, i.e. bigcache with the token TTL
func NewAuthenticator(um *user.Manager, blacklist Cache, secret []byte, tokenTTL time.Duration) (*Authenticator, error) {
	if um == nil {
		return nil, ErrNilUserManager
	}

	if blacklist == nil {
		return nil, ErrNilCache
	}

	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	if tokenTTL == 0 {
		tokenTTL = DefaultAccessTokenTTL
	}

	a := &Authenticator{
		users:     um,
		blacklist: blacklist,
		secret:    secret,
		tokenTTL:  tokenTTL,
	}

	return a, nil
}

// SetLogger assigns a logger for this authenticator
func (a *Authenticator) SetLogger(logger *zap.Logger) error {
	if logger != nil {
		logger = logger.Named("[auth]")
	}

	a.logger = logger

	return nil
}

// Logger returns primary logger if is set, otherwise initializing and returning
func (a *Authenticator) Logger() *zap.Logger {
	if a.logger == nil {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(fmt.Errorf("failed to initialize authenticator logger: %s", err))
		}

		a.logger = l
	}

	return a.logger
}

// Authenticate verifies the given credentials and issues an access token
func (a *Authenticator) Authenticate(ctx context.Context, username string, rawpass []byte) (signedToken string, err error) {
	u, err := a.users.Authenticate(ctx, username, rawpass)
	if err != nil {
		a.Logger().Info("authentication failed", zap.String("username", username))

		// NOTE: deliberately flattening the cause, the caller must not
		// be able to distinguish a wrong password from an unknown user
		return "", ErrWrongCredentials
	}

	signedToken, err = NewAccessToken(a.secret, uuid.New(), u.Username, u.Principals, time.Now().Add(a.tokenTTL))
	if err != nil {
		return "", errors.Wrap(err, "failed to issue access token")
	}

	return signedToken, nil
}

// UserFromToken verifies a signed token and resolves it back to its user
func (a *Authenticator) UserFromToken(ctx context.Context, signedToken string) (u user.User, err error) {
	claims, err := a.ParseToken(ctx, signedToken)
	if err != nil {
		return u, err
	}

	u, err = a.users.UserByUsername(ctx, claims.Username)
	if err != nil {
		return u, errors.Wrap(ErrInvalidToken, "token subject no longer exists")
	}

	return u, nil
}

// ParseToken verifies a signed token against the secret and the blacklist
func (a *Authenticator) ParseToken(ctx context.Context, signedToken string) (claims Claims, err error) {
	claims, err = ParseAccessToken(a.secret, signedToken)
	if err != nil {
		return claims, err
	}

	if _, err = a.blacklist.Get(ctx, claims.Id); err == nil {
		return claims, ErrTokenRevoked
	} else if err != ErrCacheMiss {
		return claims, errors.Wrap(err, "failed to check token against the blacklist")
	}

	return claims, nil
}

// RevokeToken blacklists a token until it would have expired anyway
func (a *Authenticator) RevokeToken(ctx context.Context, signedToken string) error {
	claims, err := ParseAccessToken(a.secret, signedToken)
	if err != nil {
		return err
	}

	return a.blacklist.Put(ctx, claims.Id, []byte(claims.Username))
}

// PrincipalProvider returns a guard-compatible principal provider,
// deriving the identity set from the authenticated user in the request
// context; an anonymous caller yields the bare Everyone set
func (a *Authenticator) PrincipalProvider() func(ctx context.Context) (acl.PrincipalSet, error) {
	return func(ctx context.Context) (acl.PrincipalSet, error) {
		u, err := UserFromContext(ctx)
		if err != nil {
			return acl.NewPrincipalSet(), nil
		}

		return u.PrincipalSet(true), nil
	}
}
