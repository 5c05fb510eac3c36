package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kirinyoku/showtime/internal/repository"
)

//go:embed schema.sql
var schemaSQL string

const (
	maxTxAttempts = 3
	retryBackoff  = 20 * time.Millisecond
)

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Pool is the part of *pgxpool.Pool the store needs.
type Pool interface {
	DB
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

var _ Pool = (*pgxpool.Pool)(nil)

type Store struct {
	pool Pool
}

var _ repository.Store = (*Store)(nil)

func NewStore(pool Pool) *Store {
	return &Store{
		pool: pool,
	}
}

// Migrate creates the schema if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	const op = "postgres.Store.Migrate"

	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RunTx runs fn in a SERIALIZABLE transaction. Serialization failures and
// deadlocks are retried up to maxTxAttempts times, so fn must not have side
// effects outside the transaction.
func (s *Store) RunTx(ctx context.Context, fn func(ctx context.Context, tx repository.Repos) error) error {
	const op = "postgres.Store.RunTx"

	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.runTxOnce(ctx, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}

	return fmt.Errorf("%s: gave up after %d attempts: %w", op, maxTxAttempts, err)
}

func (s *Store) runTxOnce(ctx context.Context, fn func(ctx context.Context, tx repository.Repos) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return translateDBErr(err)
	}

	defer tx.Rollback(ctx)

	if err := fn(ctx, txRepos{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", translateDBErr(err))
	}

	return nil
}

func (s *Store) Catalog() repository.CatalogRepo  { return &CatalogRepo{pool: s.pool} }
func (s *Store) Seats() repository.SeatRepo       { return &SeatRepo{pool: s.pool} }
func (s *Store) Users() repository.UserRepo       { return &UserRepo{pool: s.pool} }
func (s *Store) Bookings() repository.BookingRepo { return &BookingRepo{pool: s.pool} }
func (s *Store) Payments() repository.PaymentRepo { return &PaymentRepo{pool: s.pool} }

// txRepos binds every repository to one open transaction.
type txRepos struct {
	tx pgx.Tx
}

func (t txRepos) Catalog() repository.CatalogRepo  { return &CatalogRepo{db: t.tx} }
func (t txRepos) Seats() repository.SeatRepo       { return &SeatRepo{db: t.tx} }
func (t txRepos) Users() repository.UserRepo       { return &UserRepo{db: t.tx} }
func (t txRepos) Bookings() repository.BookingRepo { return &BookingRepo{db: t.tx} }
func (t txRepos) Payments() repository.PaymentRepo { return &PaymentRepo{db: t.tx} }
