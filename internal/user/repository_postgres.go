package user

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	getUserByIdentityQuery = `
		SELECT "uuIdentity", email, password, name, "profileList", "createdAt", "updatedAt"
		FROM users
		WHERE "uuIdentity" = $1
	`
	getUserByEmailQuery = `
		SELECT "uuIdentity", email, password, name, "profileList", "createdAt", "updatedAt"
		FROM users
		WHERE email = $1
	`
	insertUserQuery = `
		INSERT INTO users ("uuIdentity", email, password, name, "profileList", "createdAt", "updatedAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByIdentity(uuIdentity string) (User, error) {
	return r.getOne(getUserByIdentityQuery, uuIdentity)
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	return r.getOne(getUserByEmailQuery, email)
}

func (r *PostgresRepository) Create(user User) (User, error) {
	_, err := r.db.Exec(insertUserQuery,
		user.UuIdentity, user.Email, user.Password, user.Name,
		pq.Array(user.ProfileList), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (r *PostgresRepository) getOne(query, arg string) (User, error) {
	user, err := scanUser(r.db.QueryRow(query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func scanUser(row rowScanner) (User, error) {
	var (
		u        User
		profiles pq.StringArray
	)
	if err := row.Scan(&u.UuIdentity, &u.Email, &u.Password, &u.Name, &profiles, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return User{}, err
	}
	u.ProfileList = []string(profiles)
	return u, nil
}
