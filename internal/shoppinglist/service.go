package shoppinglist

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrOwnerLeave is returned when the list owner tries to leave its own
	// list; the owner has to delete the list (or hand it over) instead.
	ErrOwnerLeave = errors.New("owner cannot leave own list")
)

// Service orchestrates shopping list operations. Inputs arrive already
// validated and authorized; executors only transform records.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(owner, name string) (ShoppingList, error) {
	now := timestamp()
	list := ShoppingList{
		ID:         uuid.NewString(),
		Name:       name,
		State:      StateActive,
		UuIdentity: owner,
		MemberList: []Member{{UuIdentity: owner, Role: RoleOwner}},
		ItemList:   []Item{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return s.repo.Create(list)
}

func (s *Service) Get(id string) (ShoppingList, error) {
	return s.repo.GetByID(id)
}

// List returns one page of summaries plus the total record count.
func (s *Service) List(pageIndex, pageSize int) ([]Summary, int, error) {
	// a huge pageIndex would overflow the offset; clamp it so the request
	// lands past the end of the store instead of going negative
	offset := pageIndex * pageSize
	if pageSize > 0 && offset/pageSize != pageIndex {
		offset = math.MaxInt
	}

	lists, total, err := s.repo.List(offset, pageSize)
	if err != nil {
		return nil, 0, err
	}

	out := make([]Summary, 0, len(lists))
	for _, list := range lists {
		out = append(out, Summarize(list))
	}
	return out, total, nil
}

// Update replaces name and, when supplied, state. Other fields are kept.
func (s *Service) Update(id, name string, state *string) (ShoppingList, error) {
	list, err := s.repo.GetByID(id)
	if err != nil {
		return ShoppingList{}, err
	}

	list.Name = name
	if state != nil {
		list.State = *state
	}
	list.UpdatedAt = timestamp()
	return s.repo.Update(id, list)
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}

func (s *Service) AddMember(listID, uuIdentity, role string) (ShoppingList, error) {
	list, err := s.repo.GetByID(listID)
	if err != nil {
		return ShoppingList{}, err
	}

	if role == "" {
		role = RoleMember
	}
	list.MemberList = append(list.MemberList, Member{UuIdentity: uuIdentity, Role: role})
	list.UpdatedAt = timestamp()
	return s.repo.Update(listID, list)
}

// RemoveMember filters the identity out of the member list. Removing an
// identity that is not a member is a no-op, not an error.
func (s *Service) RemoveMember(listID, uuIdentity string) (ShoppingList, error) {
	list, err := s.repo.GetByID(listID)
	if err != nil {
		return ShoppingList{}, err
	}

	filtered := make([]Member, 0, len(list.MemberList))
	for _, m := range list.MemberList {
		if m.UuIdentity != uuIdentity {
			filtered = append(filtered, m)
		}
	}
	list.MemberList = filtered
	list.UpdatedAt = timestamp()
	return s.repo.Update(listID, list)
}

// Leave removes the caller from the member list. The owner cannot leave.
func (s *Service) Leave(listID, uuIdentity string) (ShoppingList, error) {
	list, err := s.repo.GetByID(listID)
	if err != nil {
		return ShoppingList{}, err
	}
	if list.UuIdentity == uuIdentity {
		return ShoppingList{}, ErrOwnerLeave
	}
	return s.RemoveMember(listID, uuIdentity)
}

func (s *Service) AddItem(listID, name string, quantity int, unit string) (ShoppingList, error) {
	list, err := s.repo.GetByID(listID)
	if err != nil {
		return ShoppingList{}, err
	}

	list.ItemList = append(list.ItemList, Item{
		ID:       uuid.NewString(),
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
	})
	list.UpdatedAt = timestamp()
	return s.repo.Update(listID, list)
}

func (s *Service) RemoveItem(listID, itemID string) (ShoppingList, error) {
	list, err := s.repo.GetByID(listID)
	if err != nil {
		return ShoppingList{}, err
	}

	filtered := make([]Item, 0, len(list.ItemList))
	for _, it := range list.ItemList {
		if it.ID != itemID {
			filtered = append(filtered, it)
		}
	}
	list.ItemList = filtered
	list.UpdatedAt = timestamp()
	return s.repo.Update(listID, list)
}

// SetItemResolved flips the resolved flag of one item. An unknown item id
// is reported as ErrNotFound so the handler can map it to 404.
func (s *Service) SetItemResolved(listID, itemID string, resolved bool) (ShoppingList, error) {
	list, err := s.repo.GetByID(listID)
	if err != nil {
		return ShoppingList{}, err
	}

	found := false
	for i, it := range list.ItemList {
		if it.ID == itemID {
			list.ItemList[i].Resolved = resolved
			found = true
			break
		}
	}
	if !found {
		return ShoppingList{}, ErrNotFound
	}
	list.UpdatedAt = timestamp()
	return s.repo.Update(listID, list)
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
