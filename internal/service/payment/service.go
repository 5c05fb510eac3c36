package payment

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
	"github.com/kirinyoku/showtime/internal/uow"
)

type Config struct {
	// ValidateAmount rejects payments whose amount differs from the
	// booking total.
	ValidateAmount bool
}

type Service struct {
	store   repository.Store
	gateway Gateway
	events  queue.Publisher
	log     *slog.Logger
	uow     *uow.UoW
	cfg     Config
	now     func() time.Time
}

func New(
	store repository.Store,
	gateway Gateway,
	events queue.Publisher,
	log *slog.Logger,
	cfg Config,
) *Service {
	if gateway == nil {
		gateway = SimulatedGateway{}
	}

	if events == nil {
		events = queue.NopPublisher{}
	}

	if log == nil {
		log = slog.Default()
	}

	return &Service{
		store:   store,
		gateway: gateway,
		events:  events,
		log:     log,
		uow:     uow.NewUoW(store),
		cfg:     cfg,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Process charges a booking and records the payment. The payment is stored
// as pending before the gateway is called, and at most one pending payment
// may exist per booking, so concurrent calls for the same booking charge
// the gateway once. A successful charge then confirms the booking in the
// same unit of work that finalizes the payment. A declined charge is
// recorded and returned without error; the booking stays Pending.
//
// Parameters:
//   - ctx: request-scoped context.
//   - bookingID: ID of the booking to pay for.
//   - amount: amount charged, in whole currency units.
//   - method: payment method tag, e.g. "UPI" or "card".
//
// Returns:
//   - *domain.Payment: the stored payment.
//   - error: payment.ErrBookingNotFound if the booking is not found; nothing
//     is stored in that case.
//   - error: payment.ErrBookingCancelled or payment.ErrAlreadyPaid if the
//     booking cannot take a payment.
//   - error: payment.ErrPaymentInProgress while another payment for the
//     booking is being charged.
//   - error: payment.ErrInvalidAmount or payment.ErrAmountMismatch.
//   - error: a gateway error; the payment is then stored as failed.
func (s *Service) Process(ctx context.Context, bookingID string, amount int64, method string) (*domain.Payment, error) {
	const op = "service.payment.Process"

	if amount <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidAmount)
	}

	p, err := s.begin(ctx, bookingID, amount, strings.TrimSpace(method))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res, chargeErr := s.gateway.Charge(ctx, Charge{BookingID: p.BookingID, Amount: p.Amount, Method: p.Method})
	if chargeErr != nil {
		res = Result{Status: domain.PaymentFailed}
	}

	// The charge has happened; record its outcome even if the caller left.
	if err := s.finish(context.WithoutCancel(ctx), p, res); err != nil {
		s.log.Error("payment left pending",
			slog.String("payment_id", p.ID),
			slog.String("booking_id", p.BookingID),
			slog.String("transaction_id", res.TransactionID),
			slog.Any("err", err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if chargeErr != nil {
		return nil, fmt.Errorf("%s: gateway: %w", op, chargeErr)
	}

	return p, nil
}

// begin stores a pending payment for a payable booking.
func (s *Service) begin(ctx context.Context, bookingID string, amount int64, method string) (*domain.Payment, error) {
	var p *domain.Payment

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx repository.Repos,
		_ func(uow.AfterCommit),
	) error {
		b, err := tx.Bookings().GetBooking(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if err := s.payable(b, amount); err != nil {
			return err
		}

		existing, err := tx.Payments().ListPaymentsByBooking(ctx, b.ID)
		if err != nil {
			return err
		}
		for _, e := range existing {
			if e.Status == domain.PaymentPending {
				return ErrPaymentInProgress
			}
		}

		if method == "" {
			method = b.PaymentMethod
		}

		p = &domain.Payment{
			ID:        uuid.NewString(),
			BookingID: b.ID,
			Amount:    amount,
			Method:    method,
			Status:    domain.PaymentPending,
			CreatedAt: s.now(),
		}

		if err := tx.Payments().CreatePayment(ctx, p); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrPaymentInProgress
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

// finish records the gateway result and, on success, confirms the booking.
func (s *Service) finish(ctx context.Context, p *domain.Payment, res Result) error {
	return s.uow.Do(ctx, func(
		ctx context.Context,
		tx repository.Repos,
		after func(uow.AfterCommit),
	) error {
		p.Status = res.Status
		p.TransactionID = res.TransactionID
		if err := tx.Payments().UpdatePayment(ctx, p); err != nil {
			return err
		}

		if p.Status != domain.PaymentSuccess {
			return nil
		}

		b, err := tx.Bookings().GetBooking(ctx, p.BookingID)
		if err != nil {
			return err
		}

		// Cancel refuses bookings with a pending payment, so only a
		// concurrent change outside this service lands here.
		if !b.Status.CanBePaid() {
			s.log.Warn("charged booking is no longer pending",
				slog.String("booking_id", b.ID),
				slog.String("status", b.Status.String()),
				slog.String("payment_id", p.ID),
			)
			return nil
		}

		if err := tx.Bookings().UpdateBookingStatus(ctx, b.ID, domain.BookingConfirmed); err != nil {
			return err
		}
		b.Status = domain.BookingConfirmed

		after(func(ctx context.Context) {
			ev := queue.NewBookingEvent(queue.EventBookingConfirmed, *b, p.CreatedAt)
			ev.PaymentID = p.ID
			ev.TransactionID = p.TransactionID
			if err := s.events.Publish(ctx, ev); err != nil {
				s.log.Warn("publish booking event",
					slog.String("type", ev.Type),
					slog.String("booking_id", ev.BookingID),
					slog.Any("err", err),
				)
			}
		})

		return nil
	})
}

func (s *Service) payable(b *domain.Booking, amount int64) error {
	switch {
	case b.Status == domain.BookingCancelled:
		return ErrBookingCancelled
	case !b.Status.CanBePaid():
		return ErrAlreadyPaid
	}

	if s.cfg.ValidateAmount && amount != b.TotalPrice {
		return fmt.Errorf("%w: got %d, total %d", ErrAmountMismatch, amount, b.TotalPrice)
	}

	return nil
}

func (s *Service) Get(ctx context.Context, paymentID string) (*domain.Payment, error) {
	const op = "service.payment.Get"

	p, err := s.store.Payments().GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrPaymentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}
