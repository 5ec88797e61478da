package acl

// Principal is an opaque identifier of an identity or of a group/role
// an identity belongs to, i.e. "user:alice" or "role:admin"
type Principal string

// reserved principals
// NOTE: Everyone is a member of every principal set, whether the
// caller is authenticated or not; Authenticated must be present
// only when the caller is actually logged in
const (
	Everyone      Principal = "system:everyone"
	Authenticated Principal = "system:authenticated"
)

// PrincipalSet is an unordered set of principals representing
// a single caller for a single evaluation
// NOTE: a set is built fresh per request and must never be
// cached or shared across requests
type PrincipalSet map[Principal]struct{}

// NewPrincipalSet initializes a new principal set
// NOTE: Everyone is always included
func NewPrincipalSet(principals ...Principal) PrincipalSet {
	ps := make(PrincipalSet, len(principals)+1)
	ps[Everyone] = struct{}{}

	for _, p := range principals {
		ps[p] = struct{}{}
	}

	return ps
}

// Has checks whether a given principal belongs to this set
func (ps PrincipalSet) Has(p Principal) bool {
	_, ok := ps[p]
	return ok
}

// IsAuthenticated checks whether this set represents a logged-in caller
func (ps PrincipalSet) IsAuthenticated() bool {
	return ps.Has(Authenticated)
}
