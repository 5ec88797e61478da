package item

import (
	"context"
	"net/http"
	"strconv"

	"github.com/agubarev/warden/internal/core"
	"github.com/agubarev/warden/internal/server/endpoints"
	"github.com/agubarev/warden/pkg/item"
	"github.com/agubarev/warden/pkg/security/acl"
	"github.com/agubarev/warden/pkg/security/auth"
	"github.com/agubarev/warden/pkg/security/guard"
	"github.com/go-chi/chi"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// listACL guards the item collection itself; any logged-in caller
// may browse it
var listACL = acl.List{
	acl.NewEntry(acl.Allow, acl.Authenticated, "view"),
}

// createACL guards item creation; a demo of an explicit denial
// shadowing a broader allowance: bob, admin or not, cannot create
var createACL = acl.List{
	acl.NewEntry(acl.Deny, "user:bob", "create"),
	acl.NewEntry(acl.Allow, acl.Authenticated, "create"),
}

// byID produces a resource provider that looks an item up
// by the route's id parameter
func byID(c *core.Core) guard.ResourceProvider {
	return func(ctx context.Context) (interface{}, error) {
		id, err := strconv.ParseUint(chi.URLParamFromCtx(ctx, "id"), 10, 32)
		if err != nil {
			return nil, errors.Wrap(item.ErrZeroItemID, "invalid item id")
		}

		return c.ItemStore().FetchByID(ctx, uint32(id))
	}
}

// List shows every item along with the caller's permission map per item
func List(c *core.Core) endpoints.Handler {
	check := endpoints.MustCheck(c.Guard(), "view", listACL)

	return func(ctx context.Context, c *core.Core, w http.ResponseWriter, r *http.Request) (interface{}, int, error) {
		grant, err := check(ctx)
		if err != nil {
			return nil, 0, err
		}

		items, err := c.ItemStore().FetchAll(ctx)
		if err != nil {
			return nil, 0, err
		}

		permissions := make(map[uint32]map[string]bool, len(items))
		for _, i := range items {
			p, err := acl.ListPermissions(grant.Principals, i)
			if err != nil {
				return nil, 0, err
			}

			permissions[i.ID] = p
		}

		return struct {
			Items                []item.Item                `json:"items"`
			AvailablePermissions map[uint32]map[string]bool `json:"available_permissions"`
		}{
			Items:                items,
			AvailablePermissions: permissions,
		}, 0, nil
	}
}

// Get shows a single item to anyone holding the view permission on it
func Get(c *core.Core) endpoints.Handler {
	check := endpoints.MustCheck(c.Guard(), "view", byID(c))
	return showItem(check)
}

// Use exercises an item; only admins and the owner hold this permission
func Use(c *core.Core) endpoints.Handler {
	check := endpoints.MustCheck(c.Guard(), "use", byID(c))
	return showItem(check)
}

func showItem(check guard.Check) endpoints.Handler {
	return func(ctx context.Context, c *core.Core, w http.ResponseWriter, r *http.Request) (interface{}, int, error) {
		grant, err := check(ctx)
		if err != nil {
			if errors.Cause(err) == item.ErrItemNotFound {
				return nil, http.StatusNotFound, err
			}

			return nil, 0, err
		}

		return grant.Resource, 0, nil
	}
}

// Create adds a new item owned by the caller
func Create(c *core.Core) endpoints.Handler {
	check := endpoints.MustCheck(c.Guard(), "create", createACL)

	return func(ctx context.Context, c *core.Core, w http.ResponseWriter, r *http.Request) (interface{}, int, error) {
		if _, err := check(ctx); err != nil {
			return nil, 0, err
		}

		u, err := auth.UserFromContext(ctx)
		if err != nil {
			return nil, 0, err
		}

		var payload struct {
			Name string `json:"name"`
		}

		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return nil, http.StatusBadRequest, errors.Wrap(err, "failed to decode request body")
		}

		created, err := c.ItemStore().Create(ctx, item.Item{
			Name:  payload.Name,
			Owner: u.Username,
		})
		if err != nil {
			return nil, http.StatusBadRequest, err
		}

		return created, http.StatusCreated, nil
	}
}
