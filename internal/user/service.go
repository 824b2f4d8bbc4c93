package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/wichananm65/shopping-list-backend/internal/auth"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByIdentity(uuIdentity string) (User, error) {
	return s.repo.GetByIdentity(uuIdentity)
}

// Register creates an account with a fresh identity and the StandardUsers
// profile. Authorities accounts are seeded, never self-registered.
func (s *Service) Register(email, password, name string) (User, error) {
	if _, err := s.repo.GetByEmail(email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	return s.repo.Create(User{
		UuIdentity:  uuid.NewString(),
		Email:       email,
		Password:    string(hashed),
		Name:        name,
		ProfileList: []string{auth.ProfileStandardUsers},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *Service) Authenticate(email, password string) (User, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}
