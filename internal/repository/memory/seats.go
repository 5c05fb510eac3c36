package memory

import (
	"context"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/repository"
)

func (h *handle) ListSeats(_ context.Context, showID string) ([]domain.Seat, error) {
	defer h.rlock()()

	s, ok := h.s.shows.Get(showID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s.Seats, nil
}

// LockSeats needs no extra locking here: inside RunTx the caller already
// holds the store's writer lock.
func (h *handle) LockSeats(ctx context.Context, showID string) ([]domain.Seat, error) {
	return h.ListSeats(ctx, showID)
}

func (h *handle) UpdateSeatStatus(_ context.Context, showID string, seatIDs []string, from, to domain.SeatStatus) (int64, error) {
	defer h.lock()()

	s, ok := h.s.shows.Get(showID)
	if !ok {
		return 0, repository.ErrNotFound
	}

	want := make(map[string]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		want[id] = struct{}{}
	}

	var n int64
	for i := range s.Seats {
		if _, ok := want[s.Seats[i].ID]; !ok {
			continue
		}
		if from != "" && s.Seats[i].Status != from {
			continue
		}
		s.Seats[i].Status = to
		n++
	}

	if n == 0 {
		return 0, nil
	}

	if err := update(h, h.s.shows, s); err != nil {
		return 0, err
	}

	return n, nil
}
