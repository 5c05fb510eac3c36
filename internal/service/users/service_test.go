package users_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kirinyoku/showtime/internal/repository/memory"
	"github.com/kirinyoku/showtime/internal/service/users"
)

func newService() *users.Service {
	return users.New(memory.New(), bcrypt.MinCost)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	u, err := svc.Register(ctx, users.RegisterInput{
		Name:     " John Doe ",
		Email:    "John@Example.com",
		Phone:    "+91-9876543210",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "John Doe", u.Name)
	assert.Equal(t, "john@example.com", u.Email)
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := svc.Authenticate(ctx, "JOHN@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "john@example.com", "wrong")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)

	byID, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.Register(ctx, users.RegisterInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, users.RegisterInput{Name: "B", Email: " A@EXAMPLE.COM", Password: "secret2"})
	assert.ErrorIs(t, err, users.ErrEmailTaken)
}

func TestRegisterValidatesInput(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	tests := []struct {
		name string
		in   users.RegisterInput
	}{
		{"missing name", users.RegisterInput{Email: "a@example.com", Password: "secret1"}},
		{"bad email", users.RegisterInput{Name: "A", Email: "not-an-email", Password: "secret1"}},
		{"short password", users.RegisterInput{Name: "A", Email: "a@example.com", Password: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.in)
			assert.ErrorIs(t, err, users.ErrInvalidInput)
		})
	}
}

func TestGetUnknownUser(t *testing.T) {
	_, err := newService().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}
