package httpgin

import (
	"encoding/json"
	"time"

	"github.com/kirinyoku/showtime/internal/domain"
)

type CreateBookingRequest struct {
	UserID        string   `json:"user_id" binding:"required"`
	ShowID        string   `json:"show_id" binding:"required"`
	SeatIDs       []string `json:"seat_ids" binding:"required,min=1,dive,required"`
	PaymentMethod string   `json:"payment_method"`
}

type ProcessPaymentRequest struct {
	Amount int64  `json:"amount" binding:"required"`
	Method string `json:"method"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateMovieRequest struct {
	ID              string   `json:"id"`
	Title           string   `json:"title" binding:"required"`
	Genre           string   `json:"genre" binding:"required"`
	DurationMinutes int      `json:"duration_minutes" binding:"required,gt=0"`
	Rating          float64  `json:"rating"`
	Language        string   `json:"language"`
	ReleaseDate     string   `json:"release_date"`
	Description     string   `json:"description"`
	Director        string   `json:"director"`
	PosterURL       string   `json:"poster_url"`
	Cast            []string `json:"cast"`
}

type CreateTheaterRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name" binding:"required"`
	City     string `json:"city" binding:"required"`
	Location string `json:"location"`
	Screens  int    `json:"screens" binding:"required,gt=0"`
}

type CreateShowRequest struct {
	ID        string `json:"id"`
	MovieID   string `json:"movie_id" binding:"required"`
	TheaterID string `json:"theater_id" binding:"required"`
	StartsAt  string `json:"starts_at" binding:"required"`
	EndsAt    string `json:"ends_at"`
	Language  string `json:"language"`
	Format    string `json:"format"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SeatsUnavailableResponse struct {
	Error   string   `json:"error"`
	SeatIDs []string `json:"seat_ids"`
}

// ShowSummary is a show without its seat map.
type ShowSummary struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movie_id"`
	TheaterID string    `json:"theater_id"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Language  string    `json:"language"`
	Format    string    `json:"format"`
}

type ShowSeatsResponse struct {
	ShowID string        `json:"show_id"`
	Seats  []domain.Seat `json:"seats"`
}

// idempotentResponse is what gets replayed for a repeated Idempotency-Key.
type idempotentResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

func toShowSummaries(shows []domain.Show) []ShowSummary {
	out := make([]ShowSummary, 0, len(shows))
	for _, s := range shows {
		out = append(out, ShowSummary{
			ID:        s.ID,
			MovieID:   s.MovieID,
			TheaterID: s.TheaterID,
			StartsAt:  s.StartsAt,
			EndsAt:    s.EndsAt,
			Language:  s.Language,
			Format:    s.Format,
		})
	}
	return out
}

// parseTime accepts RFC 3339 timestamps and plain dates.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
