package acl

import "github.com/pkg/errors"

// Resolve evaluates a principal set and a requested permission against
// an ordered access control list and returns a verdict
//
// The list is iterated strictly in order; the first entry whose principal
// belongs to the set and whose permissions cover the requested one decides
// the outcome. Entries past the first match are unreachable,
// even when a later entry would have allowed what an earlier one denied.
// If no entry matches, the verdict is an implicit denial.
func Resolve(principals PrincipalSet, p Permission, list List) (v Verdict, err error) {
	v = Verdict{
		List:       list,
		Permission: p,
		Principals: principals,
	}

	if principals == nil {
		return v, ErrNilPrincipals
	}

	for i := range list {
		// NOTE: a copy, the verdict must not alias the caller's list
		entry := list[i]

		if err = entry.validate(); err != nil {
			return v, errors.Wrapf(err, "entry %d", i)
		}

		if !entry.matches(p) {
			continue
		}

		if !principals.Has(entry.Principal) {
			continue
		}

		v.Entry = &entry
		v.Allowed = entry.Action == Allow

		return v, nil
	}

	return v, nil
}
