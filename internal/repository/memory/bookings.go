package memory

import (
	"context"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/repository"
)

func (h *handle) CreateBooking(_ context.Context, b *domain.Booking) error {
	if err := b.Validate(); err != nil {
		return err
	}

	defer h.lock()()
	return insert(h, h.s.bookings, b.ID, *b)
}

func (h *handle) GetBooking(_ context.Context, id string) (*domain.Booking, error) {
	defer h.rlock()()

	b, ok := h.s.bookings.Get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (h *handle) ListBookingsByUser(_ context.Context, userID string) ([]domain.Booking, error) {
	defer h.rlock()()

	return h.s.bookings.ListWhere(func(b domain.Booking) bool {
		return b.UserID == userID
	}), nil
}

func (h *handle) UpdateBookingStatus(_ context.Context, id string, status domain.BookingStatus) error {
	defer h.lock()()

	b, ok := h.s.bookings.Get(id)
	if !ok {
		return repository.ErrNotFound
	}

	b.Status = status
	return update(h, h.s.bookings, b)
}

func (h *handle) CreatePayment(_ context.Context, p *domain.Payment) error {
	defer h.lock()()
	return insert(h, h.s.payments, p.ID, *p)
}

func (h *handle) UpdatePayment(_ context.Context, p *domain.Payment) error {
	defer h.lock()()

	stored, ok := h.s.payments.Get(p.ID)
	if !ok {
		return repository.ErrNotFound
	}

	stored.Status = p.Status
	stored.TransactionID = p.TransactionID
	return update(h, h.s.payments, stored)
}

func (h *handle) GetPayment(_ context.Context, id string) (*domain.Payment, error) {
	defer h.rlock()()

	p, ok := h.s.payments.Get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (h *handle) ListPaymentsByBooking(_ context.Context, bookingID string) ([]domain.Payment, error) {
	defer h.rlock()()

	return h.s.payments.ListWhere(func(p domain.Payment) bool {
		return p.BookingID == bookingID
	}), nil
}
