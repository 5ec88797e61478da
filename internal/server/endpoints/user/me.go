package user

import (
	"context"
	"net/http"

	"github.com/agubarev/warden/internal/core"
	"github.com/agubarev/warden/pkg/security/auth"
)

// Me returns the currently authenticated user
func Me(ctx context.Context, c *core.Core, w http.ResponseWriter, r *http.Request) (interface{}, int, error) {
	u, err := auth.UserFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	return u, 0, nil
}
