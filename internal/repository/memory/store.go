// Package memory is an in-process repository.Store. Every collection is a
// Table guarded by one store-wide RWMutex; RunTx holds the writer lock for
// the whole function and undoes its writes when the function fails.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/repository"
)

const (
	emailIndex          = "email"
	pendingPaymentIndex = "pending_payment"
)

type Store struct {
	mu sync.RWMutex

	movies   *Table[domain.Movie]
	theaters *Table[domain.Theater]
	shows    *Table[domain.Show]
	users    *Table[domain.User]
	bookings *Table[domain.Booking]
	payments *Table[domain.Payment]
}

var _ repository.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		movies:   NewTable(func(m domain.Movie) string { return m.ID }, domain.Movie.Clone),
		theaters: NewTable(func(t domain.Theater) string { return t.ID }, nil),
		shows:    NewTable(func(s domain.Show) string { return s.ID }, domain.Show.Clone),
		users: NewTable(func(u domain.User) string { return u.ID }, nil).
			Unique(emailIndex, func(u domain.User) string { return normalizeEmail(u.Email) }),
		bookings: NewTable(func(b domain.Booking) string { return b.ID }, domain.Booking.Clone),
		payments: NewTable(func(p domain.Payment) string { return p.ID }, nil).
			Unique("transaction_id", func(p domain.Payment) string { return p.TransactionID }).
			Unique(pendingPaymentIndex, pendingPaymentKey),
	}
}

func (s *Store) Catalog() repository.CatalogRepo  { return &handle{s: s} }
func (s *Store) Seats() repository.SeatRepo       { return &handle{s: s} }
func (s *Store) Users() repository.UserRepo       { return &handle{s: s} }
func (s *Store) Bookings() repository.BookingRepo { return &handle{s: s} }
func (s *Store) Payments() repository.PaymentRepo { return &handle{s: s} }

// RunTx serializes fn against every other reader and writer of the store.
// When fn returns an error its writes are rolled back in reverse order.
func (s *Store) RunTx(ctx context.Context, fn func(ctx context.Context, tx repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h := &handle{s: s, tx: &txLog{}}
	if err := fn(ctx, h); err != nil {
		h.tx.rollback()
		return err
	}

	return nil
}

type txLog struct {
	undo []func()
}

func (l *txLog) rollback() {
	for i := len(l.undo) - 1; i >= 0; i-- {
		l.undo[i]()
	}
	l.undo = nil
}

// handle implements every repository. Outside a transaction each call takes
// the store lock itself; inside one the lock is already held by RunTx.
type handle struct {
	s  *Store
	tx *txLog
}

func (h *handle) Catalog() repository.CatalogRepo  { return h }
func (h *handle) Seats() repository.SeatRepo       { return h }
func (h *handle) Users() repository.UserRepo       { return h }
func (h *handle) Bookings() repository.BookingRepo { return h }
func (h *handle) Payments() repository.PaymentRepo { return h }

func (h *handle) rlock() func() {
	if h.tx != nil {
		return func() {}
	}
	h.s.mu.RLock()
	return h.s.mu.RUnlock
}

func (h *handle) lock() func() {
	if h.tx != nil {
		return func() {}
	}
	h.s.mu.Lock()
	return h.s.mu.Unlock
}

func (h *handle) onRollback(fn func()) {
	if h.tx != nil {
		h.tx.undo = append(h.tx.undo, fn)
	}
}

func insert[T any](h *handle, t *Table[T], id string, v T) error {
	if err := t.Insert(v); err != nil {
		return err
	}
	h.onRollback(func() { t.Delete(id) })
	return nil
}

func update[T any](h *handle, t *Table[T], v T) error {
	prev, err := t.Update(v)
	if err != nil {
		return err
	}
	h.onRollback(func() { _, _ = t.Update(prev) })
	return nil
}

// pendingPaymentKey allows one pending payment per booking.
func pendingPaymentKey(p domain.Payment) string {
	if p.Status != domain.PaymentPending {
		return ""
	}
	return p.BookingID
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
