package endpoints

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/agubarev/warden/internal/core"
	"github.com/agubarev/warden/pkg/security/acl"
	"github.com/agubarev/warden/pkg/security/auth"
	"github.com/agubarev/warden/pkg/security/guard"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handler represents a custom endpoint handler
type Handler func(ctx context.Context, c *core.Core, w http.ResponseWriter, r *http.Request) (result interface{}, code int, err error)

// Endpoint wraps a handler with response encoding, request IDs
// and uniform error mapping
type Endpoint struct {
	core    *core.Core
	name    string
	handler Handler
}

// Response is the envelope for every endpoint response
type Response struct {
	RequestID     uuid.UUID     `json:"request_id"`
	Result        interface{}   `json:"result,omitempty"`
	Error         string        `json:"error,omitempty"`
	ExecutionTime time.Duration `json:"exec_time"`
}

// NewEndpoint initializes a new endpoint
func NewEndpoint(c *core.Core, h Handler, name string) (e Endpoint) {
	if c == nil {
		panic(core.ErrNilCore)
	}

	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		panic(errors.New("empty endpoint name"))
	}

	return Endpoint{
		core:    c,
		name:    name,
		handler: h,
	}
}

func (e Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New()

	// NOTE: using a vanilla string context key atm
	ctx := context.WithValue(r.Context(), "request_id", requestID)

	start := time.Now()

	result, code, err := e.handler(ctx, e.core, w, r.WithContext(ctx))

	response := Response{
		RequestID:     requestID,
		Result:        result,
		ExecutionTime: time.Since(start),
	}

	if err != nil {
		if code == 0 {
			code = statusCode(err)
		}

		response.Error = errorDetail(err)
		response.Result = nil

		e.core.Logger().Info("request failed",
			zap.String("endpoint", e.name),
			zap.String("request_id", requestID.String()),
			zap.Int("code", code),
			zap.Error(err))
	} else if code == 0 {
		code = http.StatusOK
	}

	payload, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if response.Error != "" && code == http.StatusForbidden {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	w.WriteHeader(code)
	w.Write(payload)
}

// MustCheck binds a permission check at route wiring time;
// a failure here is a programming error, not a runtime condition
func MustCheck(g *guard.Guard, p acl.Permission, resource interface{}) guard.Check {
	check, err := g.Permission(p, resource)
	if err != nil {
		panic(err)
	}

	return check
}

// statusCode maps an error to an HTTP status
// NOTE: denials are expected business outcomes and map to 403,
// a missing identity to 401; everything else is a defect
func statusCode(err error) int {
	switch errors.Cause(err) {
	case guard.ErrForbidden:
		return http.StatusForbidden
	case auth.ErrNoUserInContext:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// errorDetail keeps the externally visible message fixed for
// well-known outcomes instead of leaking wrapped context
func errorDetail(err error) string {
	switch errors.Cause(err) {
	case guard.ErrForbidden:
		return "insufficient permissions"
	case auth.ErrNoUserInContext:
		return "not authenticated"
	default:
		return err.Error()
	}
}
