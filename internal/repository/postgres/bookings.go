package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/repository"
)

type BookingRepo struct {
	pool DB
	db   DB
}

func (r *BookingRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const bookingColumns = `id, user_id, show_id, created_at, total_price, status, payment_method`

func scanBooking(row pgx.Row) (domain.Booking, error) {
	var (
		b      domain.Booking
		status string
	)
	err := row.Scan(&b.ID, &b.UserID, &b.ShowID, &b.CreatedAt, &b.TotalPrice, &status, &b.PaymentMethod)
	b.Status = domain.BookingStatus(status)
	return b, err
}

// CreateBooking inserts the booking row and its line items in one batch.
//
// Returns:
//   - error: domain.ErrTotalMismatch or domain.ErrDetailShow if the booking
//     aggregate is inconsistent.
//   - error: repository.ErrConflict if the id is taken.
func (r *BookingRepo) CreateBooking(ctx context.Context, b *domain.Booking) error {
	const op = "postgres.BookingRepo.CreateBooking"

	if err := b.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	batch := &pgx.Batch{}
	batch.Queue(
		`INSERT INTO bookings(`+bookingColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.UserID, b.ShowID, b.CreatedAt, b.TotalPrice, string(b.Status), b.PaymentMethod,
	)
	for i, d := range b.Details {
		batch.Queue(
			`INSERT INTO booking_details(id, booking_id, show_id, seat_id, price, position)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			d.ID, b.ID, d.ShowID, d.SeatID, d.Price, i,
		)
	}

	if err := r.handle().SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return nil
}

func (r *BookingRepo) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.GetBooking"

	db := r.handle()

	b, err := scanBooking(db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	details, err := r.details(ctx, db, []string{b.ID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	b.Details = details[b.ID]

	return &b, nil
}

// ListBookingsByUser returns the user's bookings oldest first, each with
// its line items.
func (r *BookingRepo) ListBookingsByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	const op = "postgres.BookingRepo.ListBookingsByUser"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings
		 WHERE user_id = $1
		 ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	out := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
		}
		out = append(out, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, len(out))
	for i, b := range out {
		ids[i] = b.ID
	}

	details, err := r.details(ctx, db, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i := range out {
		out[i].Details = details[out[i].ID]
	}

	return out, nil
}

func (r *BookingRepo) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	const op = "postgres.BookingRepo.UpdateBookingStatus"

	tag, err := r.handle().Exec(ctx,
		`UPDATE bookings SET status = $2 WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *BookingRepo) details(ctx context.Context, db DB, bookingIDs []string) (map[string][]domain.BookingDetail, error) {
	rows, err := db.Query(ctx,
		`SELECT id, booking_id, show_id, seat_id, price
		 FROM booking_details
		 WHERE booking_id = ANY($1)
		 ORDER BY booking_id, position`,
		bookingIDs,
	)
	if err != nil {
		return nil, translateDBErr(err)
	}

	defer rows.Close()

	out := make(map[string][]domain.BookingDetail, len(bookingIDs))
	for rows.Next() {
		var d domain.BookingDetail
		if err := rows.Scan(&d.ID, &d.BookingID, &d.ShowID, &d.SeatID, &d.Price); err != nil {
			return nil, translateDBErr(err)
		}
		out[d.BookingID] = append(out[d.BookingID], d)
	}
	if err := rows.Err(); err != nil {
		return nil, translateDBErr(err)
	}

	return out, nil
}
