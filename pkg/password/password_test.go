package password_test

import (
	"context"
	"testing"

	"github.com/agubarev/warden/pkg/password"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePasswordStrength(t *testing.T) {
	a := assert.New(t)

	a.Equal(password.ErrShortPassword, password.EvaluatePasswordStrength([]byte("short"), nil))
	a.Equal(password.ErrUnsafePassword, password.EvaluatePasswordStrength([]byte("password1234"), nil))
	a.NoError(password.EvaluatePasswordStrength([]byte("si0d!o9sacz$"), nil))
}

func TestPasswordManager(t *testing.T) {
	a := assert.New(t)

	ctx := context.Background()

	m, err := password.NewDefaultManager(password.NewMemoryStore())
	require.NoError(t, err)

	ownerID := uuid.New()
	rawpass := []byte("si0d!o9sacz$")

	a.NoError(m.Upsert(ctx, password.KUser, ownerID, rawpass, nil))
	a.NoError(m.Compare(ctx, password.KUser, ownerID, rawpass))
	a.Equal(password.ErrWrongPassword, m.Compare(ctx, password.KUser, ownerID, []byte("not the password")))

	// unknown owner
	err = m.Compare(ctx, password.KUser, uuid.New(), rawpass)
	a.Equal(password.ErrPasswordNotFound, errors.Cause(err))

	// a weak password is rejected before it is ever stored
	weakOwner := uuid.New()
	a.Error(m.Upsert(ctx, password.KUser, weakOwner, []byte("12345678"), nil))

	err = m.Compare(ctx, password.KUser, weakOwner, []byte("12345678"))
	a.Equal(password.ErrPasswordNotFound, errors.Cause(err))

	// deletion
	a.NoError(m.Delete(ctx, password.KUser, ownerID))
	err = m.Compare(ctx, password.KUser, ownerID, rawpass)
	a.Equal(password.ErrPasswordNotFound, errors.Cause(err))
}
