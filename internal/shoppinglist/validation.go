package shoppinglist

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/wichananm65/shopping-list-backend/internal/errormap"
)

// Command keys. Error map keys are "<command>/<violation>".
const (
	cmdCreate          = "shoppingList/create"
	cmdGet             = "shoppingList/get"
	cmdList            = "shoppingList/list"
	cmdUpdate          = "shoppingList/update"
	cmdDelete          = "shoppingList/delete"
	cmdAddMember       = "shoppingList/addMember"
	cmdRemoveMember    = "shoppingList/removeMember"
	cmdLeave           = "shoppingList/leave"
	cmdAddItem         = "shoppingList/addItem"
	cmdRemoveItem      = "shoppingList/removeItem"
	cmdSetItemResolved = "shoppingList/setItemResolved"
)

// Validation predicates. Each one appends at most one entry to errs and
// never short-circuits, so a request with several bad fields reports all
// of them at once.

func checkName(errs errormap.Map, cmd, name string) {
	if strings.TrimSpace(name) == "" {
		errs.Add(cmd+"/invalidName", "name must be a non-empty string", map[string]any{"name": name})
	}
}

func checkID(errs errormap.Map, cmd, field, id string) {
	if _, err := uuid.Parse(id); err != nil {
		errs.Add(cmd+"/invalid"+field, lowerFirst(field)+" must be a valid identifier", map[string]any{lowerFirst(field): id})
	}
}

func checkIdentity(errs errormap.Map, cmd, identity string) {
	if strings.TrimSpace(identity) == "" {
		errs.Add(cmd+"/invalidUuIdentity", "uuIdentity must be a non-empty string", map[string]any{"uuIdentity": identity})
	}
}

func checkState(errs errormap.Map, cmd string, state *string) {
	if state == nil {
		return
	}
	if *state != StateActive && *state != StateArchived {
		errs.Add(cmd+"/invalidState", "state must be one of active, archived", map[string]any{"state": *state})
	}
}

func checkRole(errs errormap.Map, cmd, role string) {
	if role == "" {
		return
	}
	if role != RoleOwner && role != RoleMember {
		errs.Add(cmd+"/invalidRole", "role must be one of owner, member", map[string]any{"role": role})
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

type createInput struct {
	Name string `json:"name"`
}

func (in *createInput) validate() errormap.Map {
	errs := errormap.New()
	checkName(errs, cmdCreate, in.Name)
	return errs
}

type getInput struct {
	ID string
}

func (in *getInput) validate() errormap.Map {
	errs := errormap.New()
	checkID(errs, cmdGet, "Id", in.ID)
	return errs
}

type listInput struct {
	PageIndexRaw string
	PageSizeRaw  string

	PageIndex int
	PageSize  int
}

// validate parses the page params, defaulting to the first page of 50 and
// capping the size at 100. Non-numeric or negative values are reported as
// one invalidPageInfo entry carrying both raw values.
func (in *listInput) validate() errormap.Map {
	errs := errormap.New()
	in.PageIndex = 0
	in.PageSize = 50

	ok := true
	if in.PageIndexRaw != "" {
		v, err := strconv.Atoi(in.PageIndexRaw)
		if err != nil || v < 0 {
			ok = false
		} else {
			in.PageIndex = v
		}
	}
	if in.PageSizeRaw != "" {
		v, err := strconv.Atoi(in.PageSizeRaw)
		if err != nil || v <= 0 {
			ok = false
		} else {
			in.PageSize = v
		}
	}
	if !ok {
		errs.Add(cmdList+"/invalidPageInfo", "pageIndex and pageSize must be non-negative integers",
			map[string]any{"pageIndex": in.PageIndexRaw, "pageSize": in.PageSizeRaw})
	}
	if in.PageSize > 100 {
		in.PageSize = 100
	}
	return errs
}

type updateInput struct {
	ID    string  `json:"-"`
	Name  string  `json:"name"`
	State *string `json:"state,omitempty"`
}

func (in *updateInput) validate() errormap.Map {
	errs := errormap.New()
	checkID(errs, cmdUpdate, "Id", in.ID)
	checkName(errs, cmdUpdate, in.Name)
	checkState(errs, cmdUpdate, in.State)
	return errs
}

type deleteInput struct {
	ID string
}

func (in *deleteInput) validate() errormap.Map {
	errs := errormap.New()
	checkID(errs, cmdDelete, "Id", in.ID)
	return errs
}

type addMemberInput struct {
	ListID     string `json:"listId"`
	UuIdentity string `json:"uuIdentity"`
	Role       string `json:"role,omitempty"`
}

func (in *addMemberInput) validate() errormap.Map {
	errs := errormap.New()
	checkID(errs, cmdAddMember, "ListId", in.ListID)
	checkIdentity(errs, cmdAddMember, in.UuIdentity)
	checkRole(errs, cmdAddMember, in.Role)
	return errs
}

type removeMemberInput struct {
	ListID     string `json:"listId"`
	UuIdentity string `json:"uuIdentity"`
}

func (in *removeMemberInput) validate() errormap.Map {
	errs := errormap.New()
	checkID(errs, cmdRemoveMember, "ListId", in.ListID)
	checkIdentity(errs, cmdRemoveMember, in.UuIdentity)
	return errs
}

type leaveInput struct {
	ListID string `json:"listId"`
}

func (in *leaveInput) validate() errormap.Map {
	errs := errormap.New()
	checkID(errs, cmdLeave, "ListId", in.ListID)
	return errs
}

type addItemInput struct {
	ListID   string `json:"listId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
}

func (in *addItemInput) validate() errormap.Map {
	errs := errormap.New()
	checkID(errs, cmdAddItem, "ListId", in.ListID)
	checkName(errs, cmdAddItem, in.Name)
	if in.Quantity < 0 {
		errs.Add(cmdAddItem+"/invalidQuantity", "quantity must be a non-negative integer", map[string]any{"quantity": in.Quantity})
	}
	return errs
}

type removeItemInput struct {
	ListID string `json:"listId"`
	ItemID string `json:"itemId"`
}

func (in *removeItemInput) validate() errormap.Map {
	errs := errormap.New()
	checkID(errs, cmdRemoveItem, "ListId", in.ListID)
	checkID(errs, cmdRemoveItem, "ItemId", in.ItemID)
	return errs
}

type setItemResolvedInput struct {
	ListID   string `json:"listId"`
	ItemID   string `json:"itemId"`
	Resolved bool   `json:"resolved"`
}

func (in *setItemResolvedInput) validate() errormap.Map {
	errs := errormap.New()
	checkID(errs, cmdSetItemResolved, "ListId", in.ListID)
	checkID(errs, cmdSetItemResolved, "ItemId", in.ItemID)
	return errs
}
