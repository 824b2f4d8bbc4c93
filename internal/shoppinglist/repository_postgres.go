package shoppinglist

import (
	"database/sql"
	"encoding/json"
)

// PostgresRepository stores each list as one row; the member and item
// collections live in jsonb columns so the record stays one document.
type PostgresRepository struct {
	db *sql.DB
}

const (
	selectColumns = `id, name, state, "uuIdentity", "memberList", "itemList", "createdAt", "updatedAt"`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(list ShoppingList) (ShoppingList, error) {
	members, items, err := marshalDoc(list)
	if err != nil {
		return ShoppingList{}, err
	}

	_, err = r.db.Exec(
		`INSERT INTO shopping_list (id, name, state, "uuIdentity", "memberList", "itemList", "createdAt", "updatedAt")
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		list.ID, list.Name, list.State, list.UuIdentity, members, items, list.CreatedAt, list.UpdatedAt,
	)
	if err != nil {
		return ShoppingList{}, err
	}
	return list, nil
}

func (r *PostgresRepository) GetByID(id string) (ShoppingList, error) {
	row := r.db.QueryRow(`SELECT `+selectColumns+` FROM shopping_list WHERE id = $1`, id)
	list, err := scanList(row)
	if err == sql.ErrNoRows {
		return ShoppingList{}, ErrNotFound
	}
	return list, err
}

func (r *PostgresRepository) List(offset, limit int) ([]ShoppingList, int, error) {
	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM shopping_list`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(
		`SELECT `+selectColumns+` FROM shopping_list ORDER BY "createdAt", id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]ShoppingList, 0)
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, list)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepository) Update(id string, list ShoppingList) (ShoppingList, error) {
	members, items, err := marshalDoc(list)
	if err != nil {
		return ShoppingList{}, err
	}

	res, err := r.db.Exec(
		`UPDATE shopping_list SET name = $1, state = $2, "memberList" = $3, "itemList" = $4, "updatedAt" = $5 WHERE id = $6`,
		list.Name, list.State, members, items, list.UpdatedAt, id,
	)
	if err != nil {
		return ShoppingList{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ShoppingList{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM shopping_list WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalDoc(list ShoppingList) (members, items []byte, err error) {
	if list.MemberList == nil {
		list.MemberList = []Member{}
	}
	if list.ItemList == nil {
		list.ItemList = []Item{}
	}
	members, err = json.Marshal(list.MemberList)
	if err != nil {
		return nil, nil, err
	}
	items, err = json.Marshal(list.ItemList)
	if err != nil {
		return nil, nil, err
	}
	return members, items, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanList(s scanner) (ShoppingList, error) {
	var (
		list    ShoppingList
		members sql.NullString
		items   sql.NullString
	)
	if err := s.Scan(&list.ID, &list.Name, &list.State, &list.UuIdentity, &members, &items, &list.CreatedAt, &list.UpdatedAt); err != nil {
		return ShoppingList{}, err
	}

	list.MemberList = []Member{}
	if members.Valid && members.String != "" {
		if err := json.Unmarshal([]byte(members.String), &list.MemberList); err != nil {
			return ShoppingList{}, err
		}
	}
	list.ItemList = []Item{}
	if items.Valid && items.String != "" {
		if err := json.Unmarshal([]byte(items.String), &list.ItemList); err != nil {
			return ShoppingList{}, err
		}
	}
	return list, nil
}
