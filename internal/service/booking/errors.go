package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/kirinyoku/showtime/internal/service/allocator"
)

var (
	ErrNoSeats          = errors.New("no seats selected")
	ErrDuplicateSeats   = errors.New("seat selected more than once")
	ErrRateLimited      = errors.New("too many booking attempts")
	ErrUserNotFound     = errors.New("user not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	ErrPaymentInProgress = errors.New("a payment for the booking is in progress")

	ErrShowNotFound     = allocator.ErrShowNotFound
	ErrSeatsUnavailable = allocator.ErrSeatsUnavailable
)

// RateLimitedError carries how long the caller should wait before trying
// again. It matches ErrRateLimited with errors.Is.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e RateLimitedError) Error() string {
	return fmt.Sprintf("too many booking attempts, retry in %s", e.RetryAfter)
}

func (e RateLimitedError) Is(target error) bool {
	return target == ErrRateLimited
}
