package auth

import "github.com/pkg/errors"

// errors
var (
	ErrNilUserManager   = errors.New("user manager is nil")
	ErrNilCache         = errors.New("cache is nil")
	ErrEmptySecret      = errors.New("signing secret is empty")
	ErrInvalidToken     = errors.New("invalid access token")
	ErrTokenExpired     = errors.New("access token has expired")
	ErrTokenRevoked     = errors.New("access token has been revoked")
	ErrNoUserInContext  = errors.New("no authenticated user in context")
	ErrWrongCredentials = errors.New("wrong username or password")
)
