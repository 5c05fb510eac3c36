// Package repository declares the storage contract shared by the memory and
// postgres backends. Implementations return ErrNotFound for missing records
// and ErrConflict for uniqueness violations (duplicate ids, duplicate emails).
package repository

import (
	"context"

	"github.com/kirinyoku/showtime/internal/domain"
)

// ShowFilter narrows ListShows. Empty fields match everything.
type ShowFilter struct {
	MovieID   string
	TheaterID string
}

func (f ShowFilter) Match(s domain.Show) bool {
	if f.MovieID != "" && s.MovieID != f.MovieID {
		return false
	}
	if f.TheaterID != "" && s.TheaterID != f.TheaterID {
		return false
	}
	return true
}

type CatalogRepo interface {
	GetMovie(ctx context.Context, id string) (*domain.Movie, error)
	ListMovies(ctx context.Context) ([]domain.Movie, error)
	PutMovie(ctx context.Context, m *domain.Movie) error

	GetTheater(ctx context.Context, id string) (*domain.Theater, error)
	ListTheaters(ctx context.Context) ([]domain.Theater, error)
	PutTheater(ctx context.Context, t *domain.Theater) error

	// GetShow returns the show with its seats.
	GetShow(ctx context.Context, id string) (*domain.Show, error)
	// ListShows returns matching shows ordered by start time, without seats.
	ListShows(ctx context.Context, f ShowFilter) ([]domain.Show, error)
	// PutShow inserts a show together with its seat inventory.
	PutShow(ctx context.Context, s *domain.Show) error
}

type SeatRepo interface {
	// ListSeats returns the show's seats in stored order.
	ListSeats(ctx context.Context, showID string) ([]domain.Seat, error)
	// LockSeats is ListSeats that also takes the show's seats out of reach
	// of concurrent writers until the surrounding transaction ends.
	LockSeats(ctx context.Context, showID string) ([]domain.Seat, error)
	// UpdateSeatStatus sets status to for the given seats and returns how
	// many rows changed. When from is non-empty only seats currently in
	// that status are updated. Unknown seat ids are ignored.
	UpdateSeatStatus(ctx context.Context, showID string, seatIDs []string, from, to domain.SeatStatus) (int64, error)
}

type UserRepo interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) error
}

type BookingRepo interface {
	// CreateBooking stores the booking and its line items as one record.
	CreateBooking(ctx context.Context, b *domain.Booking) error
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	ListBookingsByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error
}

type PaymentRepo interface {
	// CreatePayment fails with ErrConflict when the booking already has a
	// pending payment.
	CreatePayment(ctx context.Context, p *domain.Payment) error
	// UpdatePayment stores the payment's status and transaction id.
	UpdatePayment(ctx context.Context, p *domain.Payment) error
	GetPayment(ctx context.Context, id string) (*domain.Payment, error)
	ListPaymentsByBooking(ctx context.Context, bookingID string) ([]domain.Payment, error)
}

// Repos groups the repositories bound to one handle: either the store
// itself or an open transaction.
type Repos interface {
	Catalog() CatalogRepo
	Seats() SeatRepo
	Users() UserRepo
	Bookings() BookingRepo
	Payments() PaymentRepo
}

type Store interface {
	Repos
	// RunTx runs fn atomically. If fn returns an error none of its writes
	// are visible afterwards.
	RunTx(ctx context.Context, fn func(ctx context.Context, tx Repos) error) error
}
