package postgres

import (
	"context"
	"fmt"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/repository"
)

type SeatRepo struct {
	pool DB
	db   DB
}

func (r *SeatRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *SeatRepo) ListSeats(ctx context.Context, showID string) ([]domain.Seat, error) {
	const op = "postgres.SeatRepo.ListSeats"

	seats, err := r.seatsOfShow(ctx, showID, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return seats, nil
}

// LockSeats reads the show's seats with FOR UPDATE, so concurrent
// transactions touching the same show wait for this one to finish.
func (r *SeatRepo) LockSeats(ctx context.Context, showID string) ([]domain.Seat, error) {
	const op = "postgres.SeatRepo.LockSeats"

	seats, err := r.seatsOfShow(ctx, showID, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return seats, nil
}

// UpdateSeatStatus moves the given seats to status to. With a non-empty
// from the update is a compare-and-set: only seats currently in from change.
//
// Returns:
//   - int64: number of seats updated.
//   - error: repository.ErrNotFound if the show does not exist.
func (r *SeatRepo) UpdateSeatStatus(
	ctx context.Context,
	showID string,
	seatIDs []string,
	from, to domain.SeatStatus,
) (int64, error) {
	const op = "postgres.SeatRepo.UpdateSeatStatus"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE show_seats
		 SET status = $3
		 WHERE show_id = $1
		   AND seat_id = ANY($2)
		   AND ($4 = '' OR status = $4)`,
		showID, seatIDs, string(to), string(from),
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		if err := ensureShow(ctx, db, showID); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	return tag.RowsAffected(), nil
}

func (r *SeatRepo) seatsOfShow(ctx context.Context, showID string, lock bool) ([]domain.Seat, error) {
	db := r.handle()

	seats, err := querySeats(ctx, db, showID, lock)
	if err != nil {
		return nil, err
	}

	if len(seats) == 0 {
		if err := ensureShow(ctx, db, showID); err != nil {
			return nil, err
		}
	}

	return seats, nil
}

func querySeats(ctx context.Context, db DB, showID string, lock bool) ([]domain.Seat, error) {
	q := `SELECT seat_id, seat_row, number, price, status
		  FROM show_seats
		  WHERE show_id = $1
		  ORDER BY position`
	if lock {
		q += ` FOR UPDATE`
	}

	rows, err := db.Query(ctx, q, showID)
	if err != nil {
		return nil, translateDBErr(err)
	}

	defer rows.Close()

	seats := []domain.Seat{}
	for rows.Next() {
		var (
			s      domain.Seat
			status string
		)
		if err := rows.Scan(&s.ID, &s.Row, &s.Number, &s.Price, &status); err != nil {
			return nil, translateDBErr(err)
		}
		s.Status = domain.SeatStatus(status)
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, translateDBErr(err)
	}

	return seats, nil
}

func ensureShow(ctx context.Context, db DB, showID string) error {
	var exists bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM shows WHERE id = $1)`,
		showID,
	).Scan(&exists); err != nil {
		return translateDBErr(err)
	}

	if !exists {
		return repository.ErrNotFound
	}

	return nil
}
