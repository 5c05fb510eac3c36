package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/repository"
)

type RegisterInput struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email,max=254"`
	Phone    string `validate:"omitempty,max=20"`
	Password string `validate:"required,min=6,max=72"`
}

type Service struct {
	store    repository.Store
	validate *validator.Validate
	cost     int
	now      func() time.Time
}

// New builds the users service. cost is the bcrypt cost; values outside
// bcrypt's range fall back to bcrypt.DefaultCost.
func New(store repository.Store, cost int) *Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &Service{
		store:    store,
		validate: validator.New(),
		cost:     cost,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a user account. The email is stored lower-cased and
// must not already belong to another user.
//
// Parameters:
//   - ctx: request-scoped context.
//   - in: name, email, phone and plain-text password.
//
// Returns:
//   - *domain.User: the created user.
//   - error: users.ErrInvalidInput if a field fails validation.
//   - error: users.ErrEmailTaken if the email is already registered.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	const op = "service.users.Register"

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}

	if err := s.store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

// Authenticate checks an email/password pair. Unknown emails and wrong
// passwords are reported the same way.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	const op = "service.users.Authenticate"

	u, err := s.store.Users().GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	const op = "service.users.Get"

	u, err := s.store.Users().GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

// HashPassword hashes a plain-text password with the service's cost.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
