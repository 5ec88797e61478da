package acl_test

import (
	"testing"

	"github.com/agubarev/warden/pkg/security/acl"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestListPermissionsWildcard(t *testing.T) {
	a := assert.New(t)

	list := acl.List{
		acl.NewEntry(acl.Allow, "role:owner", acl.All),
	}

	// the wildcard is reported under its own sentinel key, never expanded
	permissions, err := acl.ListPermissions(acl.NewPrincipalSet("role:owner"), list)
	a.NoError(err)
	a.Equal(map[string]bool{"permission:*": true}, permissions)

	permissions, err = acl.ListPermissions(acl.NewPrincipalSet("user:alice"), list)
	a.NoError(err)
	a.Equal(map[string]bool{"permission:*": false}, permissions)
}

func TestListPermissions(t *testing.T) {
	a := assert.New(t)

	list := acl.List{
		acl.NewEntry(acl.Allow, acl.Authenticated, "view"),
		acl.NewEntry(acl.Deny, "user:bob", "edit"),
		acl.NewEntry(acl.Allow, "role:admin", "edit", "delete"),
	}

	// bob is an admin, but the earlier denial shadows the admin edit
	permissions, err := acl.ListPermissions(acl.NewPrincipalSet(acl.Authenticated, "user:bob", "role:admin"), list)
	a.NoError(err)
	a.Equal(map[string]bool{
		"view":   true,
		"edit":   false,
		"delete": true,
	}, permissions)

	// an anonymous caller gets nothing
	permissions, err = acl.ListPermissions(acl.NewPrincipalSet(), list)
	a.NoError(err)
	a.Equal(map[string]bool{
		"view":   false,
		"edit":   false,
		"delete": false,
	}, permissions)
}

func TestListPermissionsResourceForms(t *testing.T) {
	a := assert.New(t)

	principals := acl.NewPrincipalSet("user:bob")

	// resource exposing its list through the Provider interface
	permissions, err := acl.ListPermissions(principals, aclResource{owner: "bob"})
	a.NoError(err)
	a.Equal(map[string]bool{"edit": true}, permissions)

	// unrecognized resources enumerate to nothing
	permissions, err = acl.ListPermissions(principals, "not a resource")
	a.NoError(err)
	a.Empty(permissions)
}

func TestListPermissionsMalformed(t *testing.T) {
	a := assert.New(t)

	list := acl.List{
		acl.NewEntry(acl.Allow, "user:bob", "view"),
		acl.NewEntry(acl.Allow, "user:bob"),
	}

	_, err := acl.ListPermissions(acl.NewPrincipalSet("user:bob"), list)
	a.Error(err)
	a.Equal(acl.ErrMalformedEntry, errors.Cause(err))
}
