package acl

import "github.com/pkg/errors"

// ListPermissions collects every distinct permission mentioned anywhere
// in a resource's access control list and resolves each one against
// the given principal set
//
// The result maps a permission's external string form to whether it is
// granted; the wildcard is reported under its own key and never expanded.
// This is an introspection aid for tooling and debugging, not a part
// of the primary allow/deny decision path.
func ListPermissions(principals PrincipalSet, resource interface{}) (map[string]bool, error) {
	list := NormalizeACL(resource)

	distinct := make(map[Permission]struct{})
	for i, entry := range list {
		if err := entry.validate(); err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}

		for _, p := range entry.Permissions {
			distinct[p] = struct{}{}
		}
	}

	permissions := make(map[string]bool, len(distinct))
	for p := range distinct {
		v, err := Resolve(principals, p, list)
		if err != nil {
			return nil, err
		}

		permissions[string(p)] = v.Allowed
	}

	return permissions, nil
}
