package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/repository"
)

type PaymentRepo struct {
	pool DB
	db   DB
}

func (r *PaymentRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const paymentColumns = `id, booking_id, amount, method, status, transaction_id, created_at`

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var (
		p      domain.Payment
		status string
	)
	err := row.Scan(&p.ID, &p.BookingID, &p.Amount, &p.Method, &status, &p.TransactionID, &p.CreatedAt)
	p.Status = domain.PaymentStatus(status)
	return p, err
}

func (r *PaymentRepo) CreatePayment(ctx context.Context, p *domain.Payment) error {
	const op = "postgres.PaymentRepo.CreatePayment"

	_, err := r.handle().Exec(ctx,
		`INSERT INTO payments(`+paymentColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.BookingID, p.Amount, p.Method, string(p.Status), p.TransactionID, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return nil
}

func (r *PaymentRepo) UpdatePayment(ctx context.Context, p *domain.Payment) error {
	const op = "postgres.PaymentRepo.UpdatePayment"

	tag, err := r.handle().Exec(ctx,
		`UPDATE payments SET status = $2, transaction_id = $3 WHERE id = $1`,
		p.ID, string(p.Status), p.TransactionID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *PaymentRepo) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	const op = "postgres.PaymentRepo.GetPayment"

	p, err := scanPayment(r.handle().QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return &p, nil
}

func (r *PaymentRepo) ListPaymentsByBooking(ctx context.Context, bookingID string) ([]domain.Payment, error) {
	const op = "postgres.PaymentRepo.ListPaymentsByBooking"

	rows, err := r.handle().Query(ctx,
		`SELECT `+paymentColumns+`
		 FROM payments
		 WHERE booking_id = $1
		 ORDER BY created_at, id`,
		bookingID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	defer rows.Close()

	out := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return out, nil
}
