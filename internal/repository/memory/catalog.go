package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/repository"
)

func (h *handle) GetMovie(_ context.Context, id string) (*domain.Movie, error) {
	defer h.rlock()()

	m, ok := h.s.movies.Get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (h *handle) ListMovies(_ context.Context) ([]domain.Movie, error) {
	defer h.rlock()()
	return h.s.movies.List(), nil
}

func (h *handle) PutMovie(_ context.Context, m *domain.Movie) error {
	defer h.lock()()
	return insert(h, h.s.movies, m.ID, *m)
}

func (h *handle) GetTheater(_ context.Context, id string) (*domain.Theater, error) {
	defer h.rlock()()

	t, ok := h.s.theaters.Get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (h *handle) ListTheaters(_ context.Context) ([]domain.Theater, error) {
	defer h.rlock()()
	return h.s.theaters.List(), nil
}

func (h *handle) PutTheater(_ context.Context, t *domain.Theater) error {
	defer h.lock()()
	return insert(h, h.s.theaters, t.ID, *t)
}

func (h *handle) GetShow(_ context.Context, id string) (*domain.Show, error) {
	defer h.rlock()()

	s, ok := h.s.shows.Get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (h *handle) ListShows(_ context.Context, f repository.ShowFilter) ([]domain.Show, error) {
	defer h.rlock()()

	shows := h.s.shows.ListWhere(f.Match)
	for i := range shows {
		shows[i].Seats = nil
	}

	slices.SortStableFunc(shows, func(a, b domain.Show) int {
		return a.StartsAt.Compare(b.StartsAt)
	})

	return shows, nil
}

func (h *handle) PutShow(_ context.Context, s *domain.Show) error {
	if err := domain.ValidateSeats(s.Seats); err != nil {
		return fmt.Errorf("show %s: %w", s.ID, err)
	}

	defer h.lock()()
	return insert(h, h.s.shows, s.ID, *s)
}
