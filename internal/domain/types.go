package domain

import (
	"slices"
	"time"
)

type Movie struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Genre           string    `json:"genre"`
	DurationMinutes int       `json:"duration_minutes"`
	Rating          float64   `json:"rating"`
	Language        string    `json:"language"`
	ReleaseDate     time.Time `json:"release_date"`
	Description     string    `json:"description"`
	Director        string    `json:"director"`
	PosterURL       string    `json:"poster_url"`
	Cast            []string  `json:"cast"`
}

func (m Movie) Clone() Movie {
	m.Cast = slices.Clone(m.Cast)
	return m
}

type Theater struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Location string `json:"location"`
	Screens  int    `json:"screens"`
}

type Seat struct {
	ID     string     `json:"id"`
	Row    string     `json:"row"`
	Number int        `json:"number"`
	Price  int64      `json:"price"`
	Status SeatStatus `json:"status"`
}

// Show is a screening of a movie at a theater. Seats are kept in their
// stored order: row-major, then by seat number.
type Show struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movie_id"`
	TheaterID string    `json:"theater_id"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Language  string    `json:"language"`
	Format    string    `json:"format"`
	Seats     []Seat    `json:"seats,omitempty"`
}

func (s Show) Clone() Show {
	s.Seats = slices.Clone(s.Seats)
	return s
}

type AvailabilityCounts struct {
	Available int64 `json:"available"`
	Booked    int64 `json:"booked"`
	Reserved  int64 `json:"reserved"`
	Total     int64 `json:"total"`
}

func CountSeats(seats []Seat) AvailabilityCounts {
	var c AvailabilityCounts
	for _, seat := range seats {
		switch seat.Status {
		case SeatAvailable:
			c.Available++
		case SeatBooked:
			c.Booked++
		case SeatReserved:
			c.Reserved++
		}
	}
	c.Total = int64(len(seats))
	return c
}

type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	WalletBalance int64     `json:"wallet_balance"`
}

type BookingDetail struct {
	ID        string `json:"id"`
	BookingID string `json:"booking_id"`
	ShowID    string `json:"show_id"`
	SeatID    string `json:"seat_id"`
	Price     int64  `json:"price"`
}

type Booking struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	ShowID        string          `json:"show_id"`
	CreatedAt     time.Time       `json:"created_at"`
	Details       []BookingDetail `json:"details"`
	TotalPrice    int64           `json:"total_price"`
	Status        BookingStatus   `json:"status"`
	PaymentMethod string          `json:"payment_method"`
}

func (b Booking) Clone() Booking {
	b.Details = slices.Clone(b.Details)
	return b
}

// AddDetail appends a line item and adds its price to the running total.
func (b *Booking) AddDetail(d BookingDetail) {
	b.Details = append(b.Details, d)
	b.TotalPrice += d.Price
}

// SeatIDs returns the seat ids referenced by the booking's line items.
func (b Booking) SeatIDs() []string {
	ids := make([]string, 0, len(b.Details))
	for _, d := range b.Details {
		ids = append(ids, d.SeatID)
	}
	return ids
}

type Payment struct {
	ID            string        `json:"id"`
	BookingID     string        `json:"booking_id"`
	Amount        int64         `json:"amount"`
	Method        string        `json:"method"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transaction_id"`
	CreatedAt     time.Time     `json:"created_at"`
}
