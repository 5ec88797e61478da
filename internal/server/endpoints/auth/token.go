package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/agubarev/warden/internal/core"
	"github.com/pkg/errors"
)

// TokenResponse is the OAuth2-ish password flow response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token trades a username and password for an access token
func Token(ctx context.Context, c *core.Core, w http.ResponseWriter, r *http.Request) (interface{}, int, error) {
	if err := r.ParseForm(); err != nil {
		return nil, http.StatusBadRequest, errors.Wrap(err, "failed to parse form")
	}

	username := r.PostFormValue("username")
	rawpass := r.PostFormValue("password")

	signedToken, err := c.Authenticator().Authenticate(ctx, username, []byte(rawpass))
	if err != nil {
		return nil, http.StatusBadRequest, errors.New("incorrect username or password")
	}

	return TokenResponse{
		AccessToken: signedToken,
		TokenType:   "bearer",
	}, 0, nil
}

// Logout revokes the access token the request was made with
func Logout(ctx context.Context, c *core.Core, w http.ResponseWriter, r *http.Request) (interface{}, int, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, http.StatusBadRequest, errors.New("no bearer token to revoke")
	}

	if err := c.Authenticator().RevokeToken(ctx, strings.TrimPrefix(header, "Bearer ")); err != nil {
		return nil, http.StatusBadRequest, err
	}

	return "token revoked", 0, nil
}
