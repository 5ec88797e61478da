package guard

import (
	"context"

	"github.com/agubarev/warden/pkg/security/acl"
	"github.com/pkg/errors"
)

// errors
var (
	ErrForbidden             = errors.New("insufficient permissions")
	ErrNilPrincipalProvider  = errors.New("principal provider is nil")
	ErrNilResourceProvider   = errors.New("resource provider is nil")
	ErrNilGuard              = errors.New("guard is nil")
	ErrEmptyPermission       = errors.New("permission is empty")
	ErrPrincipalProviderFail = errors.New("principal provider failed")
	ErrResourceProviderFail  = errors.New("resource provider failed")
)

// PrincipalProvider produces the principal set of the current caller;
// it must always include acl.Everyone and must include acl.Authenticated
// if and only if the caller is logged in
type PrincipalProvider func(ctx context.Context) (acl.PrincipalSet, error)

// ResourceProvider produces the resource a permission is checked against,
// i.e. a database lookup scoped to the current request
type ResourceProvider func(ctx context.Context) (interface{}, error)

// DenialPolicy converts a denial verdict into the error to be returned;
// returning nil makes the check yield a structured denial instead,
// a grant value carrying the verdict with Allowed unset
type DenialPolicy func(v acl.Verdict) error

// Grant is produced by a successful check and exposes the caller's
// principals and the resolved resource along with the full verdict
type Grant struct {
	Principals acl.PrincipalSet
	Resource   interface{}
	Verdict    acl.Verdict
}

// Guard binds a principal provider and a denial policy once, and then
// produces permission checks for concrete (permission, resource) pairs
//
// The configuration is immutable after construction; individual checks
// share no mutable state and are safe to run concurrently.
type Guard struct {
	principals PrincipalProvider
	onDeny     DenialPolicy
}

// Option overrides a part of the guard's configuration
type Option func(g *Guard)

// WithDenialError replaces the default forbidden rejection
// with a custom error value
func WithDenialError(err error) Option {
	return func(g *Guard) {
		g.onDeny = func(_ acl.Verdict) error { return err }
	}
}

// WithDenialPolicy installs a custom denial policy
func WithDenialPolicy(policy DenialPolicy) Option {
	return func(g *Guard) {
		g.onDeny = policy
	}
}

// New initializes a new guard around a principal provider
func New(principals PrincipalProvider, opts ...Option) (*Guard, error) {
	if principals == nil {
		return nil, ErrNilPrincipalProvider
	}

	g := &Guard{
		principals: principals,
		onDeny: func(_ acl.Verdict) error {
			return ErrForbidden
		},
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Check is a bound permission check, ready to be invoked once per request
type Check func(ctx context.Context) (Grant, error)

// Permission binds a requested permission to a resource and returns
// a check for the pair
//
// The resource is either a ResourceProvider, invoked per check to look
// the resource up, or a static value reduced to its access control list
// directly. The shape is resolved here, once; the check itself never
// branches on it again.
func (g *Guard) Permission(p acl.Permission, resource interface{}) (Check, error) {
	if g == nil {
		return nil, ErrNilGuard
	}

	if p == "" {
		return nil, ErrEmptyPermission
	}

	provider, ok := resource.(ResourceProvider)
	if !ok {
		if fn, isFunc := resource.(func(ctx context.Context) (interface{}, error)); isFunc {
			provider, ok = ResourceProvider(fn), true
		}
	}

	if !ok {
		// a static resource is served as-is on every check
		static := resource
		provider = func(_ context.Context) (interface{}, error) {
			return static, nil
		}
	}

	return g.newCheck(p, provider), nil
}

func (g *Guard) newCheck(p acl.Permission, provider ResourceProvider) Check {
	return func(ctx context.Context) (Grant, error) {
		principals, err := g.principals(ctx)
		if err != nil {
			// provider failures must propagate unchanged in cause,
			// never masked as denials
			return Grant{}, errors.Wrap(err, "failed to obtain caller principals")
		}

		resource, err := provider(ctx)
		if err != nil {
			return Grant{}, errors.Wrap(err, "failed to obtain resource")
		}

		v, err := acl.Resolve(principals, p, acl.NormalizeACL(resource))
		if err != nil {
			return Grant{}, err
		}

		grant := Grant{
			Principals: principals,
			Resource:   resource,
			Verdict:    v,
		}

		if !v.Allowed {
			return grant, g.onDeny(v)
		}

		return grant, nil
	}
}
