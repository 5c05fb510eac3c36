package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/repository"
)

var serializableTx = pgx.TxOptions{IsoLevel: pgx.Serializable, AccessMode: pgx.ReadWrite}

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *Store) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewStore(mock)
}

func TestUpdateSeatStatusCountsChangedRows(t *testing.T) {
	ctx := context.Background()
	mock, store := newMock(t)

	mock.ExpectExec("UPDATE show_seats").
		WithArgs("S1", []string{"A1", "A2", "A3"}, "booked", "available").
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	n, err := store.Seats().UpdateSeatStatus(ctx, "S1", []string{"A1", "A2", "A3"}, domain.SeatAvailable, domain.SeatBooked)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSeatStatusWithoutFromMatchesAnyStatus(t *testing.T) {
	ctx := context.Background()
	mock, store := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("($4 = '' OR status = $4)")).
		WithArgs("S1", []string{"A1"}, "available", "").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	n, err := store.Seats().UpdateSeatStatus(ctx, "S1", []string{"A1"}, "", domain.SeatAvailable)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSeatStatusNoRows(t *testing.T) {
	ctx := context.Background()

	t.Run("known show", func(t *testing.T) {
		mock, store := newMock(t)

		mock.ExpectExec("UPDATE show_seats").
			WithArgs("S1", []string{"A1"}, "booked", "available").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
			WithArgs("S1").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		n, err := store.Seats().UpdateSeatStatus(ctx, "S1", []string{"A1"}, domain.SeatAvailable, domain.SeatBooked)
		require.NoError(t, err)
		assert.Zero(t, n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown show", func(t *testing.T) {
		mock, store := newMock(t)

		mock.ExpectExec("UPDATE show_seats").
			WithArgs("S9", []string{"A1"}, "booked", "available").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
			WithArgs("S9").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := store.Seats().UpdateSeatStatus(ctx, "S9", []string{"A1"}, domain.SeatAvailable, domain.SeatBooked)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLockSeatsSelectsForUpdate(t *testing.T) {
	ctx := context.Background()
	mock, store := newMock(t)

	mock.ExpectBeginTx(serializableTx)
	mock.ExpectQuery(`(?s)FROM show_seats.*ORDER BY position FOR UPDATE`).
		WithArgs("S1").
		WillReturnRows(pgxmock.NewRows([]string{"seat_id", "seat_row", "number", "price", "status"}).
			AddRow("A1", "A", 1, int64(200), "available").
			AddRow("A8", "A", 8, int64(250), "booked"))
	mock.ExpectCommit()

	var seats []domain.Seat
	err := store.RunTx(ctx, func(ctx context.Context, tx repository.Repos) error {
		var err error
		seats, err = tx.Seats().LockSeats(ctx, "S1")
		return err
	})
	require.NoError(t, err)

	require.Len(t, seats, 2)
	assert.Equal(t, domain.Seat{ID: "A1", Row: "A", Number: 1, Price: 200, Status: domain.SeatAvailable}, seats[0])
	assert.Equal(t, domain.SeatBooked, seats[1].Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunTxRetriesSerializationFailures(t *testing.T) {
	ctx := context.Background()
	mock, store := newMock(t)

	mock.ExpectBeginTx(serializableTx)
	mock.ExpectExec("UPDATE show_seats").
		WillReturnError(&pgconn.PgError{Code: codeSerializationFailure})
	mock.ExpectRollback()

	mock.ExpectBeginTx(serializableTx)
	mock.ExpectExec("UPDATE show_seats").
		WillReturnError(&pgconn.PgError{Code: codeDeadlockDetected})
	mock.ExpectRollback()

	mock.ExpectBeginTx(serializableTx)
	mock.ExpectExec("UPDATE show_seats").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	attempts := 0
	err := store.RunTx(ctx, func(ctx context.Context, tx repository.Repos) error {
		attempts++
		_, err := tx.Seats().UpdateSeatStatus(ctx, "S1", []string{"A1"}, domain.SeatAvailable, domain.SeatBooked)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunTxGivesUpAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	mock, store := newMock(t)

	for i := 0; i < maxTxAttempts; i++ {
		mock.ExpectBeginTx(serializableTx)
		mock.ExpectRollback()
	}

	serial := &pgconn.PgError{Code: codeSerializationFailure}
	attempts := 0
	err := store.RunTx(ctx, func(context.Context, repository.Repos) error {
		attempts++
		return serial
	})
	require.Error(t, err)
	assert.ErrorAs(t, err, &serial)
	assert.Equal(t, maxTxAttempts, attempts)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunTxDoesNotRetryOtherErrors(t *testing.T) {
	ctx := context.Background()
	mock, store := newMock(t)

	mock.ExpectBeginTx(serializableTx)
	mock.ExpectRollback()

	boom := errors.New("boom")
	attempts := 0
	err := store.RunTx(ctx, func(context.Context, repository.Repos) error {
		attempts++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePaymentUnknownID(t *testing.T) {
	ctx := context.Background()
	mock, store := newMock(t)

	mock.ExpectExec("UPDATE payments").
		WithArgs("P9", "success", "TXN000000000001").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := store.Payments().UpdatePayment(ctx, &domain.Payment{ID: "P9", Status: domain.PaymentSuccess, TransactionID: "TXN000000000001"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingPaymentConflictIsTranslated(t *testing.T) {
	ctx := context.Background()
	mock, store := newMock(t)

	mock.ExpectExec("INSERT INTO payments").
		WillReturnError(&pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "payments_pending_key"})

	err := store.Payments().CreatePayment(ctx, &domain.Payment{ID: "P1", BookingID: "B1", Status: domain.PaymentPending})
	assert.ErrorIs(t, err, repository.ErrConflict)

	require.NoError(t, mock.ExpectationsWereMet())
}
