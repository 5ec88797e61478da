package acl

// Verdict is the outcome of a single evaluation, carrying enough
// context to reconstruct why access was granted or denied
type Verdict struct {
	// Entry is the rule that triggered this verdict;
	// nil means no rule matched (an implicit denial)
	Entry *Entry

	// the inputs this verdict was produced from
	List       List
	Permission Permission
	Principals PrincipalSet

	Allowed bool
}

// IsExplicit checks whether this verdict was triggered by an
// actual matching entry as opposed to the default denial
func (v Verdict) IsExplicit() bool {
	return v.Entry != nil
}
