package domain

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
	SeatReserved  SeatStatus = "reserved"
)

func (s SeatStatus) IsValid() bool {
	switch s {
	case SeatAvailable, SeatBooked, SeatReserved:
		return true
	}
	return false
}

func (s SeatStatus) String() string {
	return string(s)
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

func (s BookingStatus) String() string {
	return string(s)
}

// CanBeCancelled reports whether a booking in this status may still be
// cancelled. Cancelled is terminal.
func (s BookingStatus) CanBeCancelled() bool {
	return s == BookingPending || s == BookingConfirmed
}

// CanBePaid reports whether a payment may confirm a booking in this status.
func (s BookingStatus) CanBePaid() bool {
	return s == BookingPending
}

type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
	PaymentPending PaymentStatus = "pending"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentSuccess, PaymentFailed, PaymentPending:
		return true
	}
	return false
}

func (s PaymentStatus) String() string {
	return string(s)
}
