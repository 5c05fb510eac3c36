package memory

import (
	"context"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/repository"
)

func (h *handle) GetUser(_ context.Context, id string) (*domain.User, error) {
	defer h.rlock()()

	u, ok := h.s.users.Get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (h *handle) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	defer h.rlock()()

	u, ok := h.s.users.Lookup(emailIndex, normalizeEmail(email))
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (h *handle) CreateUser(_ context.Context, u *domain.User) error {
	defer h.lock()()
	return insert(h, h.s.users, u.ID, *u)
}
