package server

import (
	"context"
	"net/http"

	"github.com/agubarev/warden/internal/core"
	"github.com/agubarev/warden/internal/server/endpoints"
	epauth "github.com/agubarev/warden/internal/server/endpoints/auth"
	epitem "github.com/agubarev/warden/internal/server/endpoints/item"
	epuser "github.com/agubarev/warden/internal/server/endpoints/user"
	"github.com/go-chi/chi"
	"go.uber.org/zap"
)

// NewRouter wires all the routes around a core
func NewRouter(c *core.Core) chi.Router {
	r := chi.NewRouter()

	// every request passes through token authentication; anonymous
	// requests pass through as-is and are judged by the permission
	// checks downstream
	r.Use(c.Authenticator().Middleware)

	//---------------------------------------------------------------------------
	// API ROUTING (V1)
	//---------------------------------------------------------------------------
	r.Route("/api/v1", func(r chi.Router) {
		r.Method(http.MethodPost, "/token", endpoints.NewEndpoint(c, epauth.Token, "post_token"))
		r.Method(http.MethodPost, "/logout", endpoints.NewEndpoint(c, epauth.Logout, "post_logout"))
		r.Method(http.MethodGet, "/me", endpoints.NewEndpoint(c, epuser.Me, "get_me"))

		r.Route("/item", func(r chi.Router) {
			r.Method(http.MethodGet, "/", endpoints.NewEndpoint(c, epitem.List(c), "list_items"))
			r.Method(http.MethodPost, "/", endpoints.NewEndpoint(c, epitem.Create(c), "create_item"))
			r.Method(http.MethodGet, "/{id}", endpoints.NewEndpoint(c, epitem.Get(c), "get_item"))
			r.Method(http.MethodGet, "/{id}/use", endpoints.NewEndpoint(c, epitem.Use(c), "use_item"))
		})
	})

	return r
}

// Run serves the API until the context is cancelled
func Run(ctx context.Context, c *core.Core, addr string) (err error) {
	srv := &http.Server{
		Addr:    addr,
		Handler: NewRouter(c),
	}

	go func() {
		<-ctx.Done()

		if err := srv.Shutdown(context.Background()); err != nil {
			c.Logger().Warn("server shutdown failed", zap.Error(err))
		}
	}()

	c.Logger().Info("server listening", zap.String("addr", addr))

	if err = srv.ListenAndServe(); err == http.ErrServerClosed {
		return nil
	}

	return err
}
