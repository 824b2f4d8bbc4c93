package shoppinglist

import (
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("shopping list not found")
)

// Repository provides access to shopping list records. Update replaces the
// whole document; member and item edits are performed by the service and
// written back as one record.
type Repository interface {
	Create(list ShoppingList) (ShoppingList, error)
	GetByID(id string) (ShoppingList, error)
	List(offset, limit int) ([]ShoppingList, int, error)
	Update(id string, list ShoppingList) (ShoppingList, error)
	Delete(id string) error
}

// InMemoryRepository is used by the mock variant and for tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	lists []ShoppingList
}

func NewInMemoryRepository(seed []ShoppingList) *InMemoryRepository {
	repo := &InMemoryRepository{lists: make([]ShoppingList, 0, len(seed))}
	repo.lists = append(repo.lists, seed...)
	return repo
}

func (r *InMemoryRepository) Create(list ShoppingList) (ShoppingList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lists = append(r.lists, list)
	return list, nil
}

func (r *InMemoryRepository) GetByID(id string) (ShoppingList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, list := range r.lists {
		if list.ID == id {
			return list, nil
		}
	}

	return ShoppingList{}, ErrNotFound
}

func (r *InMemoryRepository) List(offset, limit int) ([]ShoppingList, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.lists)
	if offset >= total {
		return []ShoppingList{}, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	page := make([]ShoppingList, end-offset)
	copy(page, r.lists[offset:end])
	return page, total, nil
}

func (r *InMemoryRepository) Update(id string, update ShoppingList) (ShoppingList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, list := range r.lists {
		if list.ID == id {
			update.ID = id
			if update.CreatedAt == "" {
				update.CreatedAt = list.CreatedAt
			}
			r.lists[i] = update
			return update, nil
		}
	}

	return ShoppingList{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, list := range r.lists {
		if list.ID == id {
			r.lists = append(r.lists[:i], r.lists[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}
