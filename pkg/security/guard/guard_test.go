package guard_test

import (
	"context"
	"sync"
	"testing"

	"github.com/agubarev/warden/pkg/security/acl"
	"github.com/agubarev/warden/pkg/security/guard"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticPrincipals(principals ...acl.Principal) guard.PrincipalProvider {
	return func(_ context.Context) (acl.PrincipalSet, error) {
		return acl.NewPrincipalSet(principals...), nil
	}
}

func TestGuardAllows(t *testing.T) {
	a := assert.New(t)

	list := acl.List{
		acl.NewEntry(acl.Allow, acl.Authenticated, "view"),
	}

	g, err := guard.New(staticPrincipals(acl.Authenticated, "user:bob"))
	require.NoError(t, err)

	check, err := g.Permission("view", list)
	require.NoError(t, err)

	grant, err := check(context.Background())
	a.NoError(err)
	a.True(grant.Verdict.Allowed)
	a.True(grant.Principals.Has("user:bob"))

	// the grant exposes the resolved resource
	a.Equal(list, acl.NormalizeACL(grant.Resource))
}

func TestGuardDefaultDenial(t *testing.T) {
	a := assert.New(t)

	g, err := guard.New(staticPrincipals("user:alice"))
	require.NoError(t, err)

	// implicit denial: nothing matches an anonymous stranger
	check, err := g.Permission("edit", acl.List{
		acl.NewEntry(acl.Allow, "user:bob", "edit"),
	})
	require.NoError(t, err)

	grant, err := check(context.Background())
	a.Equal(guard.ErrForbidden, err)
	a.False(grant.Verdict.Allowed)
	a.False(grant.Verdict.IsExplicit())

	// explicit denial carries the triggering entry
	check, err = g.Permission("edit", acl.List{
		acl.NewEntry(acl.Deny, "user:alice", "edit"),
		acl.NewEntry(acl.Allow, "user:alice", "edit"),
	})
	require.NoError(t, err)

	grant, err = check(context.Background())
	a.Equal(guard.ErrForbidden, err)
	a.True(grant.Verdict.IsExplicit())
	a.Equal(acl.Deny, grant.Verdict.Entry.Action)
}

func TestGuardDenialOverrides(t *testing.T) {
	a := assert.New(t)

	errTeapot := errors.New("i'm a teapot")

	g, err := guard.New(staticPrincipals(), guard.WithDenialError(errTeapot))
	require.NoError(t, err)

	check, err := g.Permission("view", acl.List{acl.DenyAll})
	require.NoError(t, err)

	_, err = check(context.Background())
	a.Equal(errTeapot, err)

	// a nil-returning policy yields a structured denial instead
	g, err = guard.New(staticPrincipals(), guard.WithDenialPolicy(func(_ acl.Verdict) error {
		return nil
	}))
	require.NoError(t, err)

	check, err = g.Permission("view", acl.List{acl.DenyAll})
	require.NoError(t, err)

	grant, err := check(context.Background())
	a.NoError(err)
	a.False(grant.Verdict.Allowed)
	a.True(grant.Verdict.IsExplicit())
}

func TestGuardProviderFailures(t *testing.T) {
	a := assert.New(t)

	errPrincipals := errors.New("token store is down")
	errLookup := errors.New("item not found")

	// principal provider failure propagates, not masked as a denial
	g, err := guard.New(func(_ context.Context) (acl.PrincipalSet, error) {
		return nil, errPrincipals
	})
	require.NoError(t, err)

	check, err := g.Permission("view", acl.List{acl.AllowAll})
	require.NoError(t, err)

	_, err = check(context.Background())
	a.Error(err)
	a.Equal(errPrincipals, errors.Cause(err))

	// resource provider failure as well
	g, err = guard.New(staticPrincipals())
	require.NoError(t, err)

	check, err = g.Permission("view", guard.ResourceProvider(func(_ context.Context) (interface{}, error) {
		return nil, errLookup
	}))
	require.NoError(t, err)

	_, err = check(context.Background())
	a.Error(err)
	a.Equal(errLookup, errors.Cause(err))
	a.NotEqual(guard.ErrForbidden, err)
}

func TestGuardResourceProviderLookup(t *testing.T) {
	a := assert.New(t)

	type item struct {
		name string
	}

	g, err := guard.New(staticPrincipals(acl.Authenticated))
	require.NoError(t, err)

	// dynamic lookup: the provider runs per check
	invoked := 0
	check, err := g.Permission("view", func(_ context.Context) (interface{}, error) {
		invoked++
		return func() acl.List {
			return acl.List{acl.NewEntry(acl.Allow, acl.Authenticated, "view")}
		}, nil
	})
	require.NoError(t, err)

	grant, err := check(context.Background())
	a.NoError(err)
	a.Equal(1, invoked)
	a.True(grant.Verdict.Allowed)

	_, err = check(context.Background())
	a.NoError(err)
	a.Equal(2, invoked)

	// a plain struct with no list of its own is an implicit denial
	check, err = g.Permission("view", item{name: "cheese"})
	require.NoError(t, err)

	_, err = check(context.Background())
	a.Equal(guard.ErrForbidden, err)
}

func TestGuardConstruction(t *testing.T) {
	a := assert.New(t)

	_, err := guard.New(nil)
	a.Equal(guard.ErrNilPrincipalProvider, err)

	g, err := guard.New(staticPrincipals())
	require.NoError(t, err)

	_, err = g.Permission("", acl.List{})
	a.Equal(guard.ErrEmptyPermission, err)
}

func TestGuardConcurrentChecks(t *testing.T) {
	a := assert.New(t)

	// one shared list, two disjoint identities; concurrent checks
	// must behave exactly as if each ran alone
	list := acl.List{
		acl.NewEntry(acl.Allow, "user:bob", "use"),
		acl.NewEntry(acl.Deny, acl.Everyone, "use"),
	}

	bob, err := guard.New(staticPrincipals("user:bob"))
	require.NoError(t, err)

	alice, err := guard.New(staticPrincipals("user:alice"))
	require.NoError(t, err)

	bobCheck, err := bob.Permission("use", list)
	require.NoError(t, err)

	aliceCheck, err := alice.Permission("use", list)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()

			grant, err := bobCheck(context.Background())
			a.NoError(err)
			a.True(grant.Verdict.Allowed)
		}()

		go func() {
			defer wg.Done()

			grant, err := aliceCheck(context.Background())
			a.Equal(guard.ErrForbidden, err)
			a.False(grant.Verdict.Allowed)
		}()
	}

	wg.Wait()
}
