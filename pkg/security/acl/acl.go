package acl

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Action denotes what an entry does upon matching: grants or denies
type Action uint8

const (
	Allow Action = iota
	Deny
)

func (a Action) String() string {
	switch a {
	case Allow:
		return "Allow"
	case Deny:
		return "Deny"
	default:
		return "unrecognized action"
	}
}

// Entry is a single access control rule: an action to take when
// a principal requests any of the listed permissions
// NOTE: an entry is immutable once constructed
type Entry struct {
	Action      Action
	Principal   Principal
	Permissions []Permission
}

// NewEntry initializes a new access control entry
func NewEntry(action Action, p Principal, permissions ...Permission) Entry {
	return Entry{
		Action:      action,
		Principal:   p,
		Permissions: permissions,
	}
}

// matches tests whether this entry covers a requested permission,
// either literally or via the wildcard
func (e Entry) matches(p Permission) bool {
	for _, own := range e.Permissions {
		if own == p || own == All {
			return true
		}
	}

	return false
}

// validate performs a basic self-check
// NOTE: an empty permission set is a configuration defect,
// not a runtime-data defect
func (e Entry) validate() error {
	if len(e.Permissions) == 0 {
		return ErrMalformedEntry
	}

	return nil
}

// List is an ordered sequence of entries attached to a resource
// WARNING: order is semantically significant, first match wins;
// evaluation must never reorder the list
type List []Entry

// common shorthands
var (
	// DenyAll denies anything to anyone
	DenyAll = NewEntry(Deny, Everyone, All)

	// AllowAll allows everything to everyone
	AllowAll = NewEntry(Allow, Everyone, All)
)

//---------------------------------------------------------------------------
// wire shape
//---------------------------------------------------------------------------

// the entry travels as a 3-element tuple: (action, principal, permissions)
// where permissions is either a single string or a non-empty list of strings

func (e Entry) MarshalJSON() ([]byte, error) {
	var permissions interface{}
	if len(e.Permissions) == 1 {
		permissions = e.Permissions[0]
	} else {
		permissions = e.Permissions
	}

	return json.Marshal([3]interface{}{e.Action.String(), e.Principal, permissions})
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var tuple [3]json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return errors.Wrap(err, "entry is not a 3-element tuple")
	}

	// action
	var action string
	if err := json.Unmarshal(tuple[0], &action); err != nil {
		return errors.Wrap(err, "failed to unmarshal entry action")
	}

	switch action {
	case "Allow":
		e.Action = Allow
	case "Deny":
		e.Action = Deny
	default:
		return errors.Wrapf(ErrMalformedEntry, "unrecognized action: %s", action)
	}

	// principal
	if err := json.Unmarshal(tuple[1], &e.Principal); err != nil {
		return errors.Wrap(err, "failed to unmarshal entry principal")
	}

	// permissions: a single string or a non-empty list of strings
	var single Permission
	if err := json.Unmarshal(tuple[2], &single); err == nil && string(tuple[2]) != "null" {
		e.Permissions = []Permission{single}
		return nil
	}

	var many []Permission
	if err := json.Unmarshal(tuple[2], &many); err != nil || len(many) == 0 {
		return errors.Wrap(ErrMalformedEntry, "permission field is neither a permission nor a non-empty list")
	}

	e.Permissions = many

	return nil
}

//---------------------------------------------------------------------------
// resource normalization
//---------------------------------------------------------------------------

// Provider is implemented by resources that expose their own access
// control list, possibly computed from the resource's current state
type Provider interface {
	ACL() List
}

// NormalizeACL reduces an arbitrary resource to its access control list;
// the resource either is a list, exposes one via the Provider interface,
// or is a zero-argument computation producing one
// NOTE: anything else normalizes to an empty list, which always
// resolves to an implicit denial
func NormalizeACL(resource interface{}) List {
	switch v := resource.(type) {
	case Provider:
		return v.ACL()
	case func() List:
		return v()
	case List:
		return v
	case []Entry:
		return v
	default:
		return nil
	}
}
