package shoppinglist

import (
	"testing"

	"github.com/google/uuid"
)

func newTestService(seed []ShoppingList) *Service {
	return NewService(NewInMemoryRepository(seed))
}

func TestService_CreateSeedsOwnerAndState(t *testing.T) {
	s := newTestService(nil)

	created, err := s.Create("owner-1", "Saturday Groceries")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.Name != "Saturday Groceries" {
		t.Errorf("unexpected name %q", created.Name)
	}
	if created.State != StateActive {
		t.Errorf("expected state active, got %q", created.State)
	}
	if _, err := uuid.Parse(created.ID); err != nil {
		t.Errorf("expected well-formed id, got %q", created.ID)
	}
	if len(created.MemberList) != 1 || created.MemberList[0].UuIdentity != "owner-1" || created.MemberList[0].Role != RoleOwner {
		t.Errorf("expected sole owner member, got %v", created.MemberList)
	}
	if len(created.ItemList) != 0 {
		t.Errorf("expected empty item list, got %v", created.ItemList)
	}
}

func TestService_CreateGetRoundTrip(t *testing.T) {
	s := newTestService(nil)

	created, err := s.Create("owner-1", "Weekly Shop")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Weekly Shop" || got.State != StateActive {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.IsMember("owner-1") {
		t.Errorf("owner should be a member after create")
	}
}

func TestService_DeleteIsIdempotentOnMissing(t *testing.T) {
	s := newTestService(nil)
	created, _ := s.Create("owner-1", "Short lived")

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := s.Delete(created.ID); err != ErrNotFound {
		t.Fatalf("second delete should report ErrNotFound, got %v", err)
	}
}

func TestService_UpdateReplacesNameAndState(t *testing.T) {
	s := newTestService(nil)
	created, _ := s.Create("owner-1", "Old name")

	archived := StateArchived
	updated, err := s.Update(created.ID, "New name", &archived)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "New name" || updated.State != StateArchived {
		t.Errorf("unexpected record after update: %+v", updated)
	}

	// nil state keeps the previous value
	updated, err = s.Update(created.ID, "Another name", nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.State != StateArchived {
		t.Errorf("state should be untouched when not supplied, got %q", updated.State)
	}
}

func TestService_MemberLifecycle(t *testing.T) {
	s := newTestService(nil)
	created, _ := s.Create("owner-1", "Shared list")

	withMember, err := s.AddMember(created.ID, "friend-1", "")
	if err != nil {
		t.Fatalf("addMember: %v", err)
	}
	if !withMember.IsMember("friend-1") {
		t.Fatalf("expected friend-1 to be a member")
	}
	if withMember.MemberList[len(withMember.MemberList)-1].Role != RoleMember {
		t.Errorf("expected default role member")
	}

	left, err := s.Leave(created.ID, "friend-1")
	if err != nil {
		t.Fatalf("leave: %v", err)
	}
	if left.IsMember("friend-1") {
		t.Errorf("friend-1 should be gone after leave")
	}

	if _, err := s.Leave(created.ID, "owner-1"); err != ErrOwnerLeave {
		t.Fatalf("owner leave should report ErrOwnerLeave, got %v", err)
	}

	// removing an identity that is not a member is a flat no-op
	after, err := s.RemoveMember(created.ID, "stranger")
	if err != nil {
		t.Fatalf("removeMember: %v", err)
	}
	if len(after.MemberList) != 1 {
		t.Errorf("expected only the owner left, got %v", after.MemberList)
	}
}

func TestService_ItemLifecycle(t *testing.T) {
	s := newTestService(nil)
	created, _ := s.Create("owner-1", "Groceries")

	withItem, err := s.AddItem(created.ID, "Milk", 2, "l")
	if err != nil {
		t.Fatalf("addItem: %v", err)
	}
	if len(withItem.ItemList) != 1 {
		t.Fatalf("expected one item, got %v", withItem.ItemList)
	}
	item := withItem.ItemList[0]
	if item.Name != "Milk" || item.Quantity != 2 || item.Unit != "l" || item.Resolved {
		t.Errorf("unexpected item: %+v", item)
	}

	resolved, err := s.SetItemResolved(created.ID, item.ID, true)
	if err != nil {
		t.Fatalf("setItemResolved: %v", err)
	}
	if !resolved.ItemList[0].Resolved {
		t.Errorf("item should be resolved")
	}

	if _, err := s.SetItemResolved(created.ID, uuid.NewString(), true); err != ErrNotFound {
		t.Fatalf("unknown item should report ErrNotFound, got %v", err)
	}

	empty, err := s.RemoveItem(created.ID, item.ID)
	if err != nil {
		t.Fatalf("removeItem: %v", err)
	}
	if len(empty.ItemList) != 0 {
		t.Errorf("expected empty item list, got %v", empty.ItemList)
	}
}

func TestService_ListPagination(t *testing.T) {
	s := newTestService(nil)
	for i := 0; i < 5; i++ {
		if _, err := s.Create("owner-1", "List"); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	page, total, err := s.List(0, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
	if len(page) != 2 {
		t.Errorf("expected page of 2, got %d", len(page))
	}

	last, _, err := s.List(2, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(last) != 1 {
		t.Errorf("expected last page of 1, got %d", len(last))
	}

	beyond, _, err := s.List(10, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(beyond) != 0 {
		t.Errorf("expected empty page past the end, got %d", len(beyond))
	}
}

// A page index large enough to overflow the offset multiplication must
// behave like any other page past the end, not crash the repository.
func TestService_ListHugePageIndex(t *testing.T) {
	s := newTestService(nil)
	for i := 0; i < 5; i++ {
		if _, err := s.Create("owner-1", "List"); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	page, total, err := s.List(1000000000000000000, 50)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
	if len(page) != 0 {
		t.Errorf("expected empty page, got %d records", len(page))
	}
}

func TestService_SummaryCounts(t *testing.T) {
	s := newTestService(nil)
	created, _ := s.Create("owner-1", "Counted")
	s.AddItem(created.ID, "Milk", 1, "")
	s.AddItem(created.ID, "Eggs", 12, "")
	s.AddMember(created.ID, "friend-1", RoleMember)

	summaries, _, err := s.List(0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected one summary, got %d", len(summaries))
	}
	if summaries[0].ItemCount != 2 {
		t.Errorf("expected itemCount 2, got %d", summaries[0].ItemCount)
	}
	if summaries[0].MemberCount != 2 {
		t.Errorf("expected memberCount 2, got %d", summaries[0].MemberCount)
	}
}
