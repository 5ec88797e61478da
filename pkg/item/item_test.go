package item_test

import (
	"context"
	"testing"

	"github.com/agubarev/warden/pkg/item"
	"github.com/agubarev/warden/pkg/security/acl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemACL(t *testing.T) {
	a := assert.New(t)

	i := item.Item{ID: 1, Name: "Stilton", Owner: "bob"}

	// the owner may use it
	v, err := acl.Resolve(acl.NewPrincipalSet(acl.Authenticated, "user:bob"), "use", i.ACL())
	a.NoError(err)
	a.True(v.Allowed)

	// a mere authenticated stranger may only view
	strangers := acl.NewPrincipalSet(acl.Authenticated, "user:alice")

	v, err = acl.Resolve(strangers, "view", i.ACL())
	a.NoError(err)
	a.True(v.Allowed)

	v, err = acl.Resolve(strangers, "use", i.ACL())
	a.NoError(err)
	a.False(v.Allowed)

	// an admin may use anything
	v, err = acl.Resolve(acl.NewPrincipalSet(acl.Authenticated, "user:alice", "role:admin"), "use", i.ACL())
	a.NoError(err)
	a.True(v.Allowed)

	// anonymous callers see nothing
	v, err = acl.Resolve(acl.NewPrincipalSet(), "view", i.ACL())
	a.NoError(err)
	a.False(v.Allowed)
}

func TestMemoryStore(t *testing.T) {
	a := assert.New(t)

	ctx := context.Background()
	s := item.NewMemoryStore()

	stilton, err := s.Create(ctx, item.Item{Name: "Stilton", Owner: "bob"})
	require.NoError(t, err)
	a.NotZero(stilton.ID)

	danish, err := s.Create(ctx, item.Item{Name: "Danish Blue", Owner: "alice"})
	require.NoError(t, err)
	a.NotEqual(stilton.ID, danish.ID)

	fetched, err := s.FetchByID(ctx, stilton.ID)
	a.NoError(err)
	a.Equal("Stilton", fetched.Name)

	all, err := s.FetchAll(ctx)
	a.NoError(err)
	a.Len(all, 2)

	_, err = s.FetchByID(ctx, 42)
	a.Equal(item.ErrItemNotFound, err)

	_, err = s.Create(ctx, item.Item{Owner: "bob"})
	a.Equal(item.ErrEmptyName, err)

	a.NoError(s.DeleteByID(ctx, stilton.ID))
	_, err = s.FetchByID(ctx, stilton.ID)
	a.Equal(item.ErrItemNotFound, err)
}
