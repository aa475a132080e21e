package auth

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/avasiliev/userbase/internal/database/users"
	"github.com/avasiliev/userbase/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	ErrUserExists    = errors.New("user already exists")
	ErrEmailRequired = errors.New("email is required")
	ErrEmailInvalid  = errors.New("invalid email format")
)

// UserRepository defines the data access the service needs.
type UserRepository interface {
	Create(email, passwordHash string) (*entities.User, error)
	GetByEmail(email string) (*entities.User, error)
	GetByID(id uint) (*entities.User, error)
}

// Service handles registration and credential verification.
type Service struct {
	repo   UserRepository
	hasher *Hasher
}

// NewService creates a new authentication service.
func NewService(repo UserRepository, hasher *Hasher) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
	}
}

// Register creates a new user from an email and plaintext password.
func (s *Service) Register(email, password string) (*entities.User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	// Validate email format and length (RFC 5321 limit is 254)
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}

	// Pre-check gives the common duplicate a clean error; the unique index
	// catches the concurrent case.
	if _, err := s.repo.GetByEmail(email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, users.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(email, hash)
	if err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return user, nil
}

// Authenticate validates credentials. It reports false for an unknown email
// and for a wrong password alike, so callers cannot enumerate accounts.
func (s *Service) Authenticate(email, password string) (*entities.User, bool) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, false
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, false
	}
	return user, true
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	return s.repo.GetByID(id)
}
