package domain_test

import (
	"testing"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeatGrid(t *testing.T) {
	seats, err := domain.DefaultSeatGrid().Seats()
	require.NoError(t, err)
	require.Len(t, seats, 100)

	assert.Equal(t, "A1", seats[0].ID)
	assert.Equal(t, "A10", seats[9].ID)
	assert.Equal(t, "B1", seats[10].ID)
	assert.Equal(t, "J10", seats[99].ID)

	for _, s := range seats {
		assert.Equal(t, domain.SeatAvailable, s.Status)
		if s.Number >= 8 {
			assert.Equal(t, int64(250), s.Price, s.ID)
		} else {
			assert.Equal(t, int64(200), s.Price, s.ID)
		}
	}

	require.NoError(t, domain.ValidateSeats(seats))
}

func TestSeatGridRejectsBadShape(t *testing.T) {
	_, err := domain.SeatGrid{Rows: 0, Columns: 10}.Seats()
	assert.ErrorIs(t, err, domain.ErrInvalidGrid)

	_, err = domain.SeatGrid{Rows: 27, Columns: 10}.Seats()
	assert.ErrorIs(t, err, domain.ErrInvalidGrid)
}

func TestValidateSeats(t *testing.T) {
	err := domain.ValidateSeats([]domain.Seat{
		{ID: "A1", Status: domain.SeatAvailable},
		{ID: "A1", Status: domain.SeatBooked},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateSeatID)

	err = domain.ValidateSeats([]domain.Seat{{ID: "A1", Status: "gone"}})
	assert.ErrorIs(t, err, domain.ErrInvalidSeatState)
}

func TestBookingTotals(t *testing.T) {
	b := domain.Booking{ID: "b1", ShowID: "s1"}
	b.AddDetail(domain.BookingDetail{ID: "d1", ShowID: "s1", SeatID: "A1", Price: 200})
	b.AddDetail(domain.BookingDetail{ID: "d2", ShowID: "s1", SeatID: "A8", Price: 250})

	assert.Equal(t, int64(450), b.TotalPrice)
	assert.Equal(t, []string{"A1", "A8"}, b.SeatIDs())
	assert.NoError(t, b.Validate())

	b.TotalPrice = 400
	assert.ErrorIs(t, b.Validate(), domain.ErrTotalMismatch)

	other := domain.Booking{ShowID: "s1"}
	other.AddDetail(domain.BookingDetail{ID: "d3", ShowID: "s2", Price: 10})
	assert.ErrorIs(t, other.Validate(), domain.ErrDetailShow)
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, domain.BookingPending.CanBeCancelled())
	assert.True(t, domain.BookingConfirmed.CanBeCancelled())
	assert.False(t, domain.BookingCancelled.CanBeCancelled())

	assert.True(t, domain.BookingPending.CanBePaid())
	assert.False(t, domain.BookingConfirmed.CanBePaid())
	assert.False(t, domain.BookingCancelled.CanBePaid())

	assert.False(t, domain.PaymentStatus("ok").IsValid())
	assert.True(t, domain.PaymentFailed.IsValid())
}

func TestCloneDoesNotShareSeats(t *testing.T) {
	show := domain.Show{ID: "s1", Seats: []domain.Seat{{ID: "A1", Status: domain.SeatAvailable}}}
	cp := show.Clone()
	cp.Seats[0].Status = domain.SeatBooked

	assert.Equal(t, domain.SeatAvailable, show.Seats[0].Status)
	assert.Equal(t, domain.AvailabilityCounts{Available: 1, Total: 1}, domain.CountSeats(show.Seats))
}
