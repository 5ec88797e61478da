package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/agubarev/warden/pkg/user"
)

type contextKey struct{}

// UserFromContext returns the authenticated user stored in a context
func UserFromContext(ctx context.Context) (u user.User, err error) {
	u, ok := ctx.Value(contextKey{}).(user.User)
	if !ok {
		return u, ErrNoUserInContext
	}

	return u, nil
}

// ContextWithUser stores an authenticated user in a context
func ContextWithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// Middleware reads a bearer token from the Authorization header and,
// when valid, injects the corresponding user into the request context
//
// A request without the header passes through anonymously; whether
// anonymous access suffices is decided downstream by the permission
// checks. A present but invalid token is rejected outright.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(w)
			return
		}

		u, err := a.UserFromToken(r.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), u)))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	http.Error(w, "could not validate credentials", http.StatusUnauthorized)
}
