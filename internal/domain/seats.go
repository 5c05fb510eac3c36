package domain

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrInvalidGrid      = errors.New("invalid seat grid")
	ErrDuplicateSeatID  = errors.New("duplicate seat id")
	ErrInvalidSeatState = errors.New("invalid seat status")
	ErrTotalMismatch    = errors.New("booking total does not match its line items")
	ErrDetailShow       = errors.New("booking detail references another show")
)

// SeatGrid describes the fixed seat inventory generated for every show.
// Seats numbered PremiumFrom and above are priced at the premium tier.
type SeatGrid struct {
	Rows         int
	Columns      int
	PremiumFrom  int
	BasePrice    int64
	PremiumPrice int64
}

func DefaultSeatGrid() SeatGrid {
	return SeatGrid{
		Rows:         10,
		Columns:      10,
		PremiumFrom:  8,
		BasePrice:    200,
		PremiumPrice: 250,
	}
}

// Seats builds the grid row-major: A1..A10, B1..B10, and so on.
func (g SeatGrid) Seats() ([]Seat, error) {
	if g.Rows <= 0 || g.Rows > 26 || g.Columns <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, g.Rows, g.Columns)
	}

	if g.BasePrice < 0 || g.PremiumPrice < 0 {
		return nil, fmt.Errorf("%w: negative price", ErrInvalidGrid)
	}

	seats := make([]Seat, 0, g.Rows*g.Columns)
	for r := 0; r < g.Rows; r++ {
		row := string(rune('A' + r))
		for n := 1; n <= g.Columns; n++ {
			price := g.BasePrice
			if g.PremiumFrom > 0 && n >= g.PremiumFrom {
				price = g.PremiumPrice
			}

			seats = append(seats, Seat{
				ID:     row + strconv.Itoa(n),
				Row:    row,
				Number: n,
				Price:  price,
				Status: SeatAvailable,
			})
		}
	}

	return seats, nil
}

// ValidateSeats checks that seat ids are unique within one show and that
// every status is a known one.
func ValidateSeats(seats []Seat) error {
	seen := make(map[string]struct{}, len(seats))
	for _, s := range seats {
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateSeatID, s.ID)
		}
		seen[s.ID] = struct{}{}

		if !s.Status.IsValid() {
			return fmt.Errorf("%w: %q on seat %s", ErrInvalidSeatState, s.Status, s.ID)
		}
	}
	return nil
}

// Validate checks the aggregate invariants of a booking: the total equals
// the sum of the line items and every line item belongs to the booking's show.
func (b Booking) Validate() error {
	var sum int64
	for _, d := range b.Details {
		if d.ShowID != b.ShowID {
			return fmt.Errorf("%w: detail %s", ErrDetailShow, d.ID)
		}
		sum += d.Price
	}

	if sum != b.TotalPrice {
		return fmt.Errorf("%w: total %d, sum %d", ErrTotalMismatch, b.TotalPrice, sum)
	}

	return nil
}
