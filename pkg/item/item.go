package item

import (
	"github.com/agubarev/warden/pkg/security/acl"
	"github.com/pkg/errors"
)

// errors
var (
	ErrItemNotFound = errors.New("item not found")
	ErrZeroItemID   = errors.New("item id is zero")
	ErrEmptyName    = errors.New("item name is empty")
	ErrEmptyOwner   = errors.New("item owner is empty")
)

// Item is a demo resource with per-row access rules
type Item struct {
	ID    uint32 `json:"id"`
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

// Validate performs a basic self-check
func (i Item) Validate() error {
	if i.Name == "" {
		return ErrEmptyName
	}

	if i.Owner == "" {
		return ErrEmptyOwner
	}

	return nil
}

// ACL defines who can do what to this item: any logged-in caller
// may view it, admins and the owner may use it
func (i Item) ACL() acl.List {
	return acl.List{
		acl.NewEntry(acl.Allow, acl.Authenticated, "view"),
		acl.NewEntry(acl.Allow, "role:admin", "use"),
		acl.NewEntry(acl.Allow, acl.Principal("user:"+i.Owner), "use"),
	}
}
