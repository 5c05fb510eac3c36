package payment

import "errors"

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingCancelled = errors.New("booking is cancelled")
	ErrAlreadyPaid      = errors.New("booking is already paid")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrAmountMismatch   = errors.New("amount does not match booking total")
	ErrPaymentNotFound  = errors.New("payment not found")

	ErrPaymentInProgress = errors.New("another payment for the booking is in progress")
)
