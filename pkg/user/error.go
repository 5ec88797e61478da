package user

import "github.com/pkg/errors"

// errors
var (
	ErrNilStore           = errors.New("user store is nil")
	ErrNilUserID          = errors.New("user id is nil")
	ErrEmptyUsername      = errors.New("username is empty")
	ErrInvalidEmail       = errors.New("email address is invalid")
	ErrReservedPrincipal  = errors.New("user carries a reserved system principal")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrNilPasswordManager = errors.New("password manager is nil")
)
