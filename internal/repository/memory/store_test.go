package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/repository"
	"github.com/kirinyoku/showtime/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShow(t *testing.T, id string, startsAt time.Time) *domain.Show {
	t.Helper()

	seats, err := domain.SeatGrid{Rows: 2, Columns: 3, BasePrice: 100}.Seats()
	require.NoError(t, err)

	return &domain.Show{ID: id, MovieID: "M001", TheaterID: "T001", StartsAt: startsAt, Seats: seats}
}

func TestCatalogRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	movie := &domain.Movie{ID: "M001", Title: "Inception", Cast: []string{"Leonardo DiCaprio"}}
	require.NoError(t, s.Catalog().PutMovie(ctx, movie))
	assert.ErrorIs(t, s.Catalog().PutMovie(ctx, movie), repository.ErrConflict)

	movie.Cast[0] = "changed"
	got, err := s.Catalog().GetMovie(ctx, "M001")
	require.NoError(t, err)
	assert.Equal(t, "Leonardo DiCaprio", got.Cast[0])

	_, err = s.Catalog().GetMovie(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListShowsFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	late := newShow(t, "S2", base.Add(3*time.Hour))
	early := newShow(t, "S1", base)
	other := newShow(t, "S3", base.Add(time.Hour))
	other.TheaterID = "T002"

	for _, sh := range []*domain.Show{late, early, other} {
		require.NoError(t, s.Catalog().PutShow(ctx, sh))
	}

	all, err := s.Catalog().ListShows(ctx, repository.ShowFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "S1", all[0].ID)
	assert.Equal(t, "S3", all[1].ID)
	assert.Equal(t, "S2", all[2].ID)
	assert.Nil(t, all[0].Seats)

	filtered, err := s.Catalog().ListShows(ctx, repository.ShowFilter{TheaterID: "T001"})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
}

func TestPutShowRejectsDuplicateSeats(t *testing.T) {
	sh := &domain.Show{ID: "S1", Seats: []domain.Seat{
		{ID: "A1", Status: domain.SeatAvailable},
		{ID: "A1", Status: domain.SeatAvailable},
	}}

	err := memory.New().Catalog().PutShow(context.Background(), sh)
	assert.ErrorIs(t, err, domain.ErrDuplicateSeatID)
}

func TestUpdateSeatStatusCompareAndSet(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Catalog().PutShow(ctx, newShow(t, "S1", time.Now())))

	n, err := s.Seats().UpdateSeatStatus(ctx, "S1", []string{"A1", "A2", "Z9"}, domain.SeatAvailable, domain.SeatBooked)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = s.Seats().UpdateSeatStatus(ctx, "S1", []string{"A1", "A3"}, domain.SeatAvailable, domain.SeatBooked)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.Seats().UpdateSeatStatus(ctx, "S1", []string{"A1"}, "", domain.SeatAvailable)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	seats, err := s.Seats().ListSeats(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, domain.SeatAvailable, seats[0].Status)
	assert.Equal(t, domain.SeatBooked, seats[1].Status)
	assert.Equal(t, domain.SeatBooked, seats[2].Status)

	_, err = s.Seats().UpdateSeatStatus(ctx, "missing", []string{"A1"}, "", domain.SeatBooked)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserEmailIsUnique(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, s.Users().CreateUser(ctx, &domain.User{ID: "U1", Email: "john@example.com"}))

	err := s.Users().CreateUser(ctx, &domain.User{ID: "U2", Email: " John@Example.com"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	u, err := s.Users().GetUserByEmail(ctx, "JOHN@example.com")
	require.NoError(t, err)
	assert.Equal(t, "U1", u.ID)
}

func TestCreateBookingValidatesTotals(t *testing.T) {
	b := &domain.Booking{ID: "B1", ShowID: "S1", TotalPrice: 10}
	err := memory.New().Bookings().CreateBooking(context.Background(), b)
	assert.ErrorIs(t, err, domain.ErrTotalMismatch)
}

func TestRunTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Catalog().PutShow(ctx, newShow(t, "S1", time.Now())))
	require.NoError(t, s.Users().CreateUser(ctx, &domain.User{ID: "U1", Email: "a@b.c"}))

	boom := errors.New("boom")
	err := s.RunTx(ctx, func(ctx context.Context, tx repository.Repos) error {
		if _, err := tx.Seats().UpdateSeatStatus(ctx, "S1", []string{"A1", "B2"}, domain.SeatAvailable, domain.SeatBooked); err != nil {
			return err
		}

		b := &domain.Booking{ID: "B1", UserID: "U1", ShowID: "S1", Status: domain.BookingPending}
		b.AddDetail(domain.BookingDetail{ID: "D1", BookingID: "B1", ShowID: "S1", SeatID: "A1", Price: 100})
		if err := tx.Bookings().CreateBooking(ctx, b); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateBookingStatus(ctx, "B1", domain.BookingConfirmed); err != nil {
			return err
		}
		if err := tx.Users().CreateUser(ctx, &domain.User{ID: "U2", Email: "x@y.z"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	seats, err := s.Seats().ListSeats(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, domain.CountSeats(seats).Available, int64(6))

	_, err = s.Bookings().GetBooking(ctx, "B1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = s.Users().GetUserByEmail(ctx, "x@y.z")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	bookings, err := s.Bookings().ListBookingsByUser(ctx, "U1")
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestRunTxCommits(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	err := s.RunTx(ctx, func(ctx context.Context, tx repository.Repos) error {
		return tx.Payments().CreatePayment(ctx, &domain.Payment{ID: "P1", BookingID: "B1", TransactionID: "TXN1"})
	})
	require.NoError(t, err)

	payments, err := s.Payments().ListPaymentsByBooking(ctx, "B1")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "P1", payments[0].ID)

	err = s.Payments().CreatePayment(ctx, &domain.Payment{ID: "P2", BookingID: "B1", TransactionID: "TXN1"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestRunTxHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := memory.New().RunTx(ctx, func(context.Context, repository.Repos) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestOnePendingPaymentPerBooking(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	first := &domain.Payment{ID: "P1", BookingID: "B1", Status: domain.PaymentPending}
	require.NoError(t, s.Payments().CreatePayment(ctx, first))

	err := s.Payments().CreatePayment(ctx, &domain.Payment{ID: "P2", BookingID: "B1", Status: domain.PaymentPending})
	assert.ErrorIs(t, err, repository.ErrConflict)

	// Other bookings are unaffected.
	require.NoError(t, s.Payments().CreatePayment(ctx, &domain.Payment{ID: "P3", BookingID: "B2", Status: domain.PaymentPending}))

	first.Status = domain.PaymentFailed
	require.NoError(t, s.Payments().UpdatePayment(ctx, first))

	require.NoError(t, s.Payments().CreatePayment(ctx, &domain.Payment{ID: "P2", BookingID: "B1", Status: domain.PaymentPending}))

	got, err := s.Payments().GetPayment(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, got.Status)

	err = s.Payments().UpdatePayment(ctx, &domain.Payment{ID: "missing"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
