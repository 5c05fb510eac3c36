// Package queue publishes booking lifecycle events to RabbitMQ. Each event
// type has its own durable queue named after it.
package queue

import (
	"time"

	"github.com/kirinyoku/showtime/internal/domain"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// EventTypes lists every event type, in the order their queues are declared.
var EventTypes = []string{EventBookingCreated, EventBookingConfirmed, EventBookingCancelled}

type BookingEvent struct {
	Type          string               `json:"type"`
	BookingID     string               `json:"booking_id"`
	UserID        string               `json:"user_id"`
	ShowID        string               `json:"show_id"`
	SeatIDs       []string             `json:"seat_ids"`
	TotalPrice    int64                `json:"total_price"`
	Status        domain.BookingStatus `json:"status"`
	PaymentMethod string               `json:"payment_method,omitempty"`
	PaymentID     string               `json:"payment_id,omitempty"`
	TransactionID string               `json:"transaction_id,omitempty"`
	// WasPaid is set on cancellations of confirmed bookings so a consumer
	// can decide on a refund.
	WasPaid    bool      `json:"was_paid,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewBookingEvent(typ string, b domain.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:          typ,
		BookingID:     b.ID,
		UserID:        b.UserID,
		ShowID:        b.ShowID,
		SeatIDs:       b.SeatIDs(),
		TotalPrice:    b.TotalPrice,
		Status:        b.Status,
		PaymentMethod: b.PaymentMethod,
		OccurredAt:    at.UTC(),
	}
}
