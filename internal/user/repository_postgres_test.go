package user

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/wichananm65/shopping-list-backend/internal/auth"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"uuIdentity", "email", "password", "name", "profileList", "createdAt", "updatedAt"})
}

func TestPostgresGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := userRows().AddRow("id-1", "a@example.com", "hash", "Alice", "{StandardUsers}", "t0", "t0")
	mock.ExpectQuery("FROM users").WithArgs("a@example.com").WillReturnRows(rows)

	user, err := repo.GetByEmail("a@example.com")
	if err != nil {
		t.Fatalf("getByEmail: %v", err)
	}
	if user.UuIdentity != "id-1" {
		t.Errorf("unexpected identity %q", user.UuIdentity)
	}
	if len(user.ProfileList) != 1 || user.ProfileList[0] != auth.ProfileStandardUsers {
		t.Errorf("profileList not decoded from text[]: %v", user.ProfileList)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByIdentity_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM users").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByIdentity("missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("id-1", "a@example.com", "hash", "Alice", sqlmock.AnyArg(), "t0", "t0").
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err = repo.Create(User{
		UuIdentity: "id-1", Email: "a@example.com", Password: "hash", Name: "Alice",
		ProfileList: []string{auth.ProfileStandardUsers}, CreatedAt: "t0", UpdatedAt: "t0",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
