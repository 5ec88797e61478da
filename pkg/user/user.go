package user

import (
	"strings"

	"github.com/agubarev/warden/pkg/security/acl"
	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// User is the main entity of this project
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`

	// Principals are the roles and identifiers this user carries into
	// every permission evaluation, i.e. "user:bob", "role:admin"
	// NOTE: the reserved system principals are never stored here,
	// they're added per evaluation by PrincipalSet
	Principals []acl.Principal `json:"principals"`
}

// NewUser initializes a new user
func NewUser(username, email, fullName string, principals ...acl.Principal) (u User, err error) {
	u = User{
		ID:         uuid.New(),
		Username:   strings.ToLower(strings.TrimSpace(username)),
		Email:      strings.TrimSpace(email),
		FullName:   strings.TrimSpace(fullName),
		Principals: principals,
	}

	if err = u.Validate(); err != nil {
		return u, errors.Wrap(err, "new user validation failed")
	}

	return u, nil
}

// Validate performs a basic self-check
func (u User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}

	if u.Email != "" && !govalidator.IsEmail(u.Email) {
		return ErrInvalidEmail
	}

	for _, p := range u.Principals {
		switch p {
		case acl.Everyone, acl.Authenticated:
			return ErrReservedPrincipal
		}
	}

	return nil
}

// PrincipalSet produces this user's identity set for a single evaluation
// NOTE: authenticated denotes whether this user is actually logged in
// for the request being evaluated
func (u User) PrincipalSet(authenticated bool) acl.PrincipalSet {
	principals := u.Principals
	if authenticated {
		principals = append([]acl.Principal{acl.Authenticated}, principals...)
	}

	return acl.NewPrincipalSet(principals...)
}
