// Package allocator owns seat availability for shows and every seat status
// transition. Claim and Release run inside a caller's transaction so the
// check and the write form one atomic step.
package allocator

import (
	"context"
	"errors"
	"fmt"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/repository"
)

type Service struct {
	store repository.Store
}

func New(store repository.Store) *Service {
	return &Service{store: store}
}

// AvailableSeats counts the show's Available seats. An unknown show has
// none, so callers that care must check the show exists first.
func (s *Service) AvailableSeats(ctx context.Context, showID string) (int, error) {
	const op = "service.allocator.AvailableSeats"

	seats, err := s.ListAvailableSeats(ctx, showID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return len(seats), nil
}

// ListAvailableSeats returns the show's Available seats in stored order:
// row-major, then by seat number. An unknown show yields an empty list.
func (s *Service) ListAvailableSeats(ctx context.Context, showID string) ([]domain.Seat, error) {
	const op = "service.allocator.ListAvailableSeats"

	seats, err := s.store.Seats().ListSeats(ctx, showID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []domain.Seat{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]domain.Seat, 0, len(seats))
	for _, seat := range seats {
		if seat.Status == domain.SeatAvailable {
			out = append(out, seat)
		}
	}

	return out, nil
}

// MarkBooked sets the given seats to Booked regardless of their current
// status. Unknown seat ids are ignored and repeating the call is harmless.
func (s *Service) MarkBooked(ctx context.Context, showID string, seatIDs []string) error {
	const op = "service.allocator.MarkBooked"

	if err := s.mark(ctx, showID, seatIDs, domain.SeatBooked); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// MarkAvailable is MarkBooked in reverse.
func (s *Service) MarkAvailable(ctx context.Context, showID string, seatIDs []string) error {
	const op = "service.allocator.MarkAvailable"

	if err := s.mark(ctx, showID, seatIDs, domain.SeatAvailable); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Service) mark(ctx context.Context, showID string, seatIDs []string, to domain.SeatStatus) error {
	if len(seatIDs) == 0 {
		return nil
	}

	return s.store.RunTx(ctx, func(ctx context.Context, tx repository.Repos) error {
		_, err := tx.Seats().UpdateSeatStatus(ctx, showID, seatIDs, "", to)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrShowNotFound
		}
		return err
	})
}

// Claim books the requested seats inside tx, all or nothing. It locks the
// show's seats, checks every requested id, and then moves them from
// Available to Booked with a compare-and-set whose row count must match.
//
// Parameters:
//   - ctx: request-scoped context.
//   - tx: repositories bound to the caller's transaction.
//   - showID: show the seats belong to.
//   - seatIDs: distinct seat ids to claim.
//
// Returns:
//   - []domain.Seat: the claimed seats, in request order, as they were
//     priced at claim time.
//   - error: ErrShowNotFound if the show does not exist.
//   - error: SeatsUnavailableError if any id is unknown or not Available.
func (s *Service) Claim(ctx context.Context, tx repository.Repos, showID string, seatIDs []string) ([]domain.Seat, error) {
	const op = "service.allocator.Claim"

	seats, err := tx.Seats().LockSeats(ctx, showID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrShowNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byID := make(map[string]domain.Seat, len(seats))
	for _, seat := range seats {
		byID[seat.ID] = seat
	}

	claimed := make([]domain.Seat, 0, len(seatIDs))
	var unavailable []string
	for _, id := range seatIDs {
		seat, ok := byID[id]
		if !ok || seat.Status != domain.SeatAvailable {
			unavailable = append(unavailable, id)
			continue
		}
		claimed = append(claimed, seat)
	}

	if len(unavailable) > 0 {
		return nil, fmt.Errorf("%s: %w", op, SeatsUnavailableError{ShowID: showID, SeatIDs: unavailable})
	}

	n, err := tx.Seats().UpdateSeatStatus(ctx, showID, seatIDs, domain.SeatAvailable, domain.SeatBooked)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if n != int64(len(seatIDs)) {
		return nil, fmt.Errorf("%s: %w", op, SeatsUnavailableError{ShowID: showID, SeatIDs: seatIDs})
	}

	for i := range claimed {
		claimed[i].Status = domain.SeatBooked
	}

	return claimed, nil
}

// Release sets the given seats back to Available inside tx. Seats the show
// no longer has are skipped.
func (s *Service) Release(ctx context.Context, tx repository.Repos, showID string, seatIDs []string) error {
	const op = "service.allocator.Release"

	if _, err := tx.Seats().UpdateSeatStatus(ctx, showID, seatIDs, "", domain.SeatAvailable); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrShowNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
