package services

import (
	"strings"

	"github.com/soaringjerry/klausurarchiv/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type AuthStore interface {
	FindUserByUsername(username string) (*models.User, error)
	AddUser(u models.User) error
}

type AuthService struct {
	store AuthStore
	idGen func() string
	cost  int
}

type AuthOption func(*AuthService)

// WithBcryptCost overrides the hashing cost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) AuthOption {
	return func(s *AuthService) { s.cost = cost }
}

func NewAuthService(store AuthStore, opts ...AuthOption) *AuthService {
	s := &AuthService{
		store: store,
		idGen: func() string { return "u" + shortID(9) },
		cost:  bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HashCredential produces the opaque comparison secret stored on a User.
func (s *AuthService) HashCredential(credential string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(credential), s.cost)
}

// Login matches username exactly. Unknown users and wrong credentials are
// indistinguishable to the caller; an unapproved match fails with ErrNotApproved.
func (s *AuthService) Login(username, credential string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || credential == "" {
		return nil, NewInvalidError("username/password required")
	}
	u, err := s.store.FindUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.Credential, []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsApproved {
		return nil, ErrNotApproved
	}
	return u, nil
}

// Register creates an unapproved REGULAR user with zero karma.
func (s *AuthService) Register(username, credential string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || credential == "" {
		return nil, NewInvalidError("username/password required")
	}
	existing, err := s.store.FindUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}
	hash, err := s.HashCredential(credential)
	if err != nil {
		return nil, err
	}
	u := models.User{
		ID:         s.idGen(),
		Username:   username,
		Credential: hash,
		Role:       models.RoleRegular,
		IsApproved: false,
		Karma:      0,
	}
	if err := s.store.AddUser(u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SeedAdministrator installs the pre-approved administrator account unless the
// username already exists.
func (s *AuthService) SeedAdministrator(username, credential string, karma int) (*models.User, error) {
	existing, err := s.store.FindUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	hash, err := s.HashCredential(credential)
	if err != nil {
		return nil, err
	}
	u := models.User{
		ID:         "admin-1",
		Username:   username,
		Credential: hash,
		Role:       models.RoleAdministrator,
		IsApproved: true,
		Karma:      karma,
	}
	if err := s.store.AddUser(u); err != nil {
		return nil, err
	}
	return &u, nil
}
