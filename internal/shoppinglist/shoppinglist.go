package shoppinglist

// List states.
const (
	StateActive   = "active"
	StateArchived = "archived"
)

// Member roles within a list.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Member ties an identity to its role within one list.
type Member struct {
	UuIdentity string `json:"uuIdentity"`
	Role       string `json:"role"`
}

// Item is a single entry on a shopping list.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
	Resolved bool   `json:"resolved"`
}

// ShoppingList is the full record as stored and returned by get/create/update.
// JSON tags use camelCase to match the frontend.
type ShoppingList struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	State      string   `json:"state"`
	UuIdentity string   `json:"uuIdentity"`
	MemberList []Member `json:"memberList"`
	ItemList   []Item   `json:"itemList"`
	CreatedAt  string   `json:"createdAt,omitempty"`
	UpdatedAt  string   `json:"updatedAt,omitempty"`
}

// Summary is the lightweight DTO returned by the list command.
type Summary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	State       string `json:"state"`
	UuIdentity  string `json:"uuIdentity"`
	MemberCount int    `json:"memberCount"`
	ItemCount   int    `json:"itemCount"`
}

// Summarize collapses a full record into its list-command shape.
func Summarize(l ShoppingList) Summary {
	return Summary{
		ID:          l.ID,
		Name:        l.Name,
		State:       l.State,
		UuIdentity:  l.UuIdentity,
		MemberCount: len(l.MemberList),
		ItemCount:   len(l.ItemList),
	}
}

// IsMember reports whether the identity appears in the member list. The
// owner is always a member because create seeds the member list with it.
func (l ShoppingList) IsMember(uuIdentity string) bool {
	for _, m := range l.MemberList {
		if m.UuIdentity == uuIdentity {
			return true
		}
	}
	return false
}
