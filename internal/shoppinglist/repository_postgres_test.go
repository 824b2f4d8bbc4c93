package shoppinglist

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

const (
	sampleMembersJSON = `[{"uuIdentity":"owner-1","role":"owner"}]`
	sampleItemsJSON   = `[{"id":"i1","name":"Milk","quantity":2,"unit":"l","resolved":false}]`
)

func listRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "state", "uuIdentity", "memberList", "itemList", "createdAt", "updatedAt"})
}

func TestPostgresCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO shopping_list").
		WithArgs("l1", "Groceries", StateActive, "owner-1", sqlmock.AnyArg(), sqlmock.AnyArg(), "t0", "t0").
		WillReturnResult(sqlmock.NewResult(0, 1))

	list := ShoppingList{
		ID: "l1", Name: "Groceries", State: StateActive, UuIdentity: "owner-1",
		MemberList: []Member{{UuIdentity: "owner-1", Role: RoleOwner}},
		CreatedAt:  "t0", UpdatedAt: "t0",
	}
	if _, err := repo.Create(list); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := listRows().AddRow("l1", "Groceries", StateActive, "owner-1", sampleMembersJSON, sampleItemsJSON, "t0", "t1")
	mock.ExpectQuery("FROM shopping_list WHERE id").WithArgs("l1").WillReturnRows(rows)

	list, err := repo.GetByID("l1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if list.Name != "Groceries" {
		t.Errorf("unexpected name %q", list.Name)
	}
	if len(list.MemberList) != 1 || list.MemberList[0].Role != RoleOwner {
		t.Errorf("memberList not decoded: %v", list.MemberList)
	}
	if len(list.ItemList) != 1 || list.ItemList[0].Quantity != 2 {
		t.Errorf("itemList not decoded: %v", list.ItemList)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM shopping_list WHERE id").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID("missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	rows := listRows().
		AddRow("l1", "A", StateActive, "o1", "[]", "[]", "t0", "t0").
		AddRow("l2", "B", StateArchived, "o2", sampleMembersJSON, sampleItemsJSON, "t1", "t1")
	mock.ExpectQuery("FROM shopping_list ORDER BY").WithArgs(2, 0).WillReturnRows(rows)

	page, total, err := repo.List(0, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 records, got %d", len(page))
	}
	if page[0].MemberList == nil || page[0].ItemList == nil {
		t.Errorf("collections must never be nil: %+v", page[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdate_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE shopping_list SET").
		WithArgs("X", StateActive, sqlmock.AnyArg(), sqlmock.AnyArg(), "t2", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = repo.Update("missing", ShoppingList{Name: "X", State: StateActive, UpdatedAt: "t2"})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM shopping_list").WithArgs("l1").WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.Delete("l1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	mock.ExpectExec("DELETE FROM shopping_list").WithArgs("l1").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Delete("l1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on repeated delete, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
