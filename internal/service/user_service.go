package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"vibefy/internal/domain"
	"vibefy/internal/repository"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, email, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users    repository.UserRepository
	hashCost int
}

// NewUserService builds a UserService. A zero hashCost uses bcrypt.DefaultCost.
func NewUserService(users repository.UserRepository, hashCost int) UserService {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &userService{
		users:    users,
		hashCost: hashCost,
	}
}

func (s *userService) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)

	if email == "" || username == "" || password == "" {
		return nil, ErrMissingField
	}
	if len(password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailInUse
	}
	exists, err = s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	}

	// the checks above can race with a concurrent registration; the insert decides
	if _, err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, ErrEmailInUse
		case errors.Is(err, repository.ErrUsernameTaken):
			return nil, ErrUsernameInUse
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingField
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrIncorrectPassword
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}
