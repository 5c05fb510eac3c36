package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/queue"
	"github.com/kirinyoku/showtime/internal/repository"
	"github.com/kirinyoku/showtime/internal/service/allocator"
	"github.com/kirinyoku/showtime/internal/uow"
)

const DefaultPaymentMethod = "card"

type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, current int64, retryAfter time.Duration, err error)
}

type ShowInvalidator interface {
	InvalidateShow(ctx context.Context, showID string) error
}

type ChangePublisher interface {
	PublishShowChanged(ctx context.Context, showID string) error
}

type Service struct {
	store   repository.Store
	alloc   *allocator.Service
	cache   ShowInvalidator
	pubsub  ChangePublisher
	limiter Limiter
	events  queue.Publisher
	log     *slog.Logger
	uow     *uow.UoW
	now     func() time.Time
}

// New wires the booking service. cache, pubsub, limiter and events may be
// nil, in which case the matching side effect is skipped.
func New(
	store repository.Store,
	alloc *allocator.Service,
	cache ShowInvalidator,
	pubsub ChangePublisher,
	limiter Limiter,
	events queue.Publisher,
	log *slog.Logger,
) *Service {
	if events == nil {
		events = queue.NopPublisher{}
	}

	if log == nil {
		log = slog.Default()
	}

	return &Service{
		store:   store,
		alloc:   alloc,
		cache:   cache,
		pubsub:  pubsub,
		limiter: limiter,
		events:  events,
		log:     log,
		uow:     uow.NewUoW(store),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

type CreateInput struct {
	UserID        string
	ShowID        string
	SeatIDs       []string
	PaymentMethod string
}

// Create books the requested seats for the user as one Pending booking.
//
// Parameters:
//   - ctx: request-scoped context.
//   - in: user, show, distinct seat ids and an optional payment method tag.
//
// Returns:
//   - *domain.Booking: the new booking with one detail per seat.
//   - error: booking.ErrNoSeats or booking.ErrDuplicateSeats on a bad selection.
//   - error: booking.RateLimitedError if the user books too often.
//   - error: booking.ErrUserNotFound or booking.ErrShowNotFound.
//   - error: allocator.SeatsUnavailableError if any seat is unknown or taken;
//     no seat changes in that case.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Booking, error) {
	const op = "service.booking.Create"

	if len(in.SeatIDs) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoSeats)
	}

	if dup := firstDuplicate(in.SeatIDs); dup != "" {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrDuplicateSeats, dup)
	}

	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		method = DefaultPaymentMethod
	}

	if s.limiter != nil {
		ok, _, retry, err := s.limiter.Allow(ctx, in.UserID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: %w", op, RateLimitedError{RetryAfter: retry})
		}
	}

	var created *domain.Booking

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx repository.Repos,
		after func(uow.AfterCommit),
	) error {
		if _, err := tx.Users().GetUser(ctx, in.UserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		seats, err := s.alloc.Claim(ctx, tx, in.ShowID, in.SeatIDs)
		if err != nil {
			return err
		}

		b := &domain.Booking{
			ID:            uuid.NewString(),
			UserID:        in.UserID,
			ShowID:        in.ShowID,
			CreatedAt:     s.now(),
			Status:        domain.BookingPending,
			PaymentMethod: method,
		}
		for _, seat := range seats {
			b.AddDetail(domain.BookingDetail{
				ID:        uuid.NewString(),
				BookingID: b.ID,
				ShowID:    in.ShowID,
				SeatID:    seat.ID,
				Price:     seat.Price,
			})
		}

		if err := tx.Bookings().CreateBooking(ctx, b); err != nil {
			return err
		}

		created = b

		after(func(ctx context.Context) {
			s.showChanged(ctx, b.ShowID)
			s.publish(ctx, queue.NewBookingEvent(queue.EventBookingCreated, *b, b.CreatedAt))
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// Cancel cancels a booking and frees its seats. Payments are left as they
// are; the booking.cancelled event says whether the booking had been paid.
//
// Returns:
//   - *domain.Booking: the cancelled booking.
//   - error: booking.ErrBookingNotFound if the booking is not found.
//   - error: booking.ErrAlreadyCancelled on a second cancellation.
//   - error: booking.ErrPaymentInProgress while a payment is being charged.
//   - error: booking.ErrShowNotFound if the booking's show is gone.
func (s *Service) Cancel(ctx context.Context, bookingID string) (*domain.Booking, error) {
	const op = "service.booking.Cancel"

	var cancelled *domain.Booking

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx repository.Repos,
		after func(uow.AfterCommit),
	) error {
		b, err := tx.Bookings().GetBooking(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if !b.Status.CanBeCancelled() {
			return ErrAlreadyCancelled
		}

		payments, err := tx.Payments().ListPaymentsByBooking(ctx, b.ID)
		if err != nil {
			return err
		}
		for _, p := range payments {
			if p.Status == domain.PaymentPending {
				return ErrPaymentInProgress
			}
		}

		wasPaid := b.Status == domain.BookingConfirmed

		if err := s.alloc.Release(ctx, tx, b.ShowID, b.SeatIDs()); err != nil {
			return err
		}

		if err := tx.Bookings().UpdateBookingStatus(ctx, b.ID, domain.BookingCancelled); err != nil {
			return err
		}

		b.Status = domain.BookingCancelled
		cancelled = b

		after(func(ctx context.Context) {
			s.showChanged(ctx, b.ShowID)

			ev := queue.NewBookingEvent(queue.EventBookingCancelled, *b, s.now())
			ev.WasPaid = wasPaid
			s.publish(ctx, ev)
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cancelled, nil
}

func (s *Service) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	const op = "service.booking.Get"

	b, err := s.store.Bookings().GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrBookingNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return b, nil
}

// ListByUser returns the user's bookings, oldest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	const op = "service.booking.ListByUser"

	if _, err := s.store.Users().GetUser(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bookings, err := s.store.Bookings().ListBookingsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (s *Service) ListPayments(ctx context.Context, bookingID string) ([]domain.Payment, error) {
	const op = "service.booking.ListPayments"

	if _, err := s.Get(ctx, bookingID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	payments, err := s.store.Payments().ListPaymentsByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return payments, nil
}

func (s *Service) showChanged(ctx context.Context, showID string) {
	if s.cache != nil {
		if err := s.cache.InvalidateShow(ctx, showID); err != nil {
			s.log.Warn("invalidate show cache", slog.String("show_id", showID), slog.Any("err", err))
		}
	}

	if s.pubsub != nil {
		if err := s.pubsub.PublishShowChanged(ctx, showID); err != nil {
			s.log.Warn("publish show change", slog.String("show_id", showID), slog.Any("err", err))
		}
	}
}

func (s *Service) publish(ctx context.Context, ev queue.BookingEvent) {
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("publish booking event",
			slog.String("type", ev.Type),
			slog.String("booking_id", ev.BookingID),
			slog.Any("err", err),
		)
	}
}

func firstDuplicate(ids []string) string {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id
		}
		seen[id] = struct{}{}
	}
	return ""
}
