package acl

import "github.com/pkg/errors"

// errors
var (
	ErrMalformedEntry = errors.New("entry permission field is neither a permission nor a non-empty set of permissions")
	ErrNilPrincipals  = errors.New("principal set is nil")
)
