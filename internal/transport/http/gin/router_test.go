package httpgin

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/repository/memory"
	"github.com/kirinyoku/showtime/internal/seed"
	"github.com/kirinyoku/showtime/internal/service"
	"github.com/kirinyoku/showtime/internal/service/payment"
)

var testShow = seed.ShowID("M001", "T001", 1)

type declineGateway struct{}

func (declineGateway) Charge(context.Context, payment.Charge) (payment.Result, error) {
	return payment.Result{Status: domain.PaymentFailed, TransactionID: "TXNDECLINED01"}, nil
}

func newTestRouter(t *testing.T, gateway payment.Gateway) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	svcs := service.NewServices(store, service.Deps{Gateway: gateway, Logger: logger}, service.Config{
		Payment:    payment.Config{ValidateAmount: true},
		BcryptCost: bcrypt.MinCost,
	})
	require.NoError(t, seed.New(store, svcs.Admin, svcs.Users, logger).Run(context.Background()))

	return NewRouter(svcs, nil, logger)
}

func do(t *testing.T, r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, nil)
	w := do(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCatalogRoutes(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodGet, "/movies?sort=rating", nil)
	require.Equal(t, http.StatusOK, w.Code)
	movies := decode[[]domain.Movie](t, w)
	require.Len(t, movies, 3)
	assert.Equal(t, "M003", movies[0].ID)

	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)
	w = do(t, r, http.MethodGet, "/movies?sort=rating", nil, "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, w.Code)

	w = do(t, r, http.MethodGet, "/movies?sort=newest", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/movies/M999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/theaters?city=delhi", nil)
	require.Equal(t, http.StatusOK, w.Code)
	theaters := decode[[]domain.Theater](t, w)
	require.Len(t, theaters, 1)
	assert.Equal(t, "T003", theaters[0].ID)

	w = do(t, r, http.MethodGet, "/shows?movie_id=M001&theater_id=T001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	shows := decode[[]ShowSummary](t, w)
	assert.Len(t, shows, 2)

	w = do(t, r, http.MethodGet, "/shows/"+testShow+"/availability", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.AvailabilityCounts{Available: 100, Total: 100}, decode[domain.AvailabilityCounts](t, w))

	w = do(t, r, http.MethodGet, "/shows/nope/seats", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookPayCancelFlow(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/bookings", CreateBookingRequest{
		UserID:  "U001",
		ShowID:  testShow,
		SeatIDs: []string{"A1", "A8"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	b := decode[domain.Booking](t, w)
	assert.Equal(t, int64(450), b.TotalPrice)
	assert.Equal(t, domain.BookingPending, b.Status)

	w = do(t, r, http.MethodPost, "/bookings", CreateBookingRequest{
		UserID:  "U002",
		ShowID:  testShow,
		SeatIDs: []string{"A2", "A8"},
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, []string{"A8"}, decode[SeatsUnavailableResponse](t, w).SeatIDs)

	w = do(t, r, http.MethodPost, "/bookings/"+b.ID+"/payments", ProcessPaymentRequest{Amount: 100, Method: "UPI"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/bookings/"+b.ID+"/payments", ProcessPaymentRequest{Amount: 450, Method: "UPI"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[domain.Payment](t, w)
	assert.Equal(t, domain.PaymentSuccess, p.Status)

	w = do(t, r, http.MethodPost, "/bookings/"+b.ID+"/payments", ProcessPaymentRequest{Amount: 450})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodGet, "/payments/"+p.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/shows/"+testShow+"/seats?only=available", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[ShowSeatsResponse](t, w).Seats, 98)

	w = do(t, r, http.MethodPost, "/bookings/"+b.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.BookingCancelled, decode[domain.Booking](t, w).Status)

	w = do(t, r, http.MethodPost, "/bookings/"+b.ID+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodGet, "/shows/"+testShow+"/seats?only=available", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[ShowSeatsResponse](t, w).Seats, 100)

	w = do(t, r, http.MethodGet, "/users/U001/bookings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Booking](t, w), 1)

	w = do(t, r, http.MethodGet, "/bookings/"+b.ID+"/payments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Payment](t, w), 1)
}

func TestBookingErrors(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		name string
		req  CreateBookingRequest
		want int
	}{
		{"unknown user", CreateBookingRequest{UserID: "U999", ShowID: testShow, SeatIDs: []string{"B1"}}, http.StatusNotFound},
		{"unknown show", CreateBookingRequest{UserID: "U001", ShowID: "S999", SeatIDs: []string{"B1"}}, http.StatusNotFound},
		{"duplicate seats", CreateBookingRequest{UserID: "U001", ShowID: testShow, SeatIDs: []string{"B1", "B1"}}, http.StatusBadRequest},
		{"unknown seat", CreateBookingRequest{UserID: "U001", ShowID: testShow, SeatIDs: []string{"Z99"}}, http.StatusConflict},
		{"no seats", CreateBookingRequest{UserID: "U001", ShowID: testShow}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/bookings", tt.req)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}

	w := do(t, r, http.MethodGet, "/bookings/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/bookings/missing/payments", ProcessPaymentRequest{Amount: 200})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeclinedPaymentIs402(t *testing.T) {
	r := newTestRouter(t, declineGateway{})

	w := do(t, r, http.MethodPost, "/bookings", CreateBookingRequest{UserID: "U003", ShowID: testShow, SeatIDs: []string{"C1"}})
	require.Equal(t, http.StatusCreated, w.Code)
	b := decode[domain.Booking](t, w)

	w = do(t, r, http.MethodPost, "/bookings/"+b.ID+"/payments", ProcessPaymentRequest{Amount: b.TotalPrice})
	require.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, domain.PaymentFailed, decode[domain.Payment](t, w).Status)

	w = do(t, r, http.MethodGet, "/bookings/"+b.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.BookingPending, decode[domain.Booking](t, w).Status)
}

func TestUserRoutes(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/auth/login", LoginRequest{Email: "demo@gmail.com", Password: "demo123"})
	require.Equal(t, http.StatusOK, w.Code)
	u := decode[map[string]any](t, w)
	assert.Equal(t, "U002", u["id"])
	assert.NotContains(t, u, "password_hash")

	w = do(t, r, http.MethodPost, "/auth/login", LoginRequest{Email: "demo@gmail.com", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodPost, "/users", RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPost, "/users", RegisterRequest{Name: "Asha", Email: "ASHA@example.com", Password: "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, "/users", RegisterRequest{Name: "Asha", Email: "asha", Password: "secret1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/users/U002", nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode[map[string]any](t, w)
	assert.Equal(t, "demo@gmail.com", profile["email"])
	assert.NotContains(t, profile, "password_hash")

	w = do(t, r, http.MethodGet, "/users/U999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/users/U999/bookings", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRoutes(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/admin/movies", CreateMovieRequest{
		ID: "M010", Title: "Dune", Genre: "Sci-Fi", DurationMinutes: 155, ReleaseDate: "2021-10-22",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/admin/theaters", CreateTheaterRequest{ID: "T010", Name: "IMAX", City: "Pune", Screens: 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/admin/shows", CreateShowRequest{MovieID: "M010", TheaterID: "T010", StartsAt: "2026-06-01T18:00:00Z"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	show := decode[domain.Show](t, w)
	assert.Len(t, show.Seats, 100)
	assert.Equal(t, "2D", show.Format)

	w = do(t, r, http.MethodPost, "/admin/shows", CreateShowRequest{MovieID: "M404", TheaterID: "T010", StartsAt: "2026-06-01T18:00:00Z"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/admin/shows", CreateShowRequest{MovieID: "M010", TheaterID: "T010", StartsAt: "tomorrow"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/admin/movies", CreateMovieRequest{ID: "M010", Title: "Dune", Genre: "Sci-Fi", DurationMinutes: 155})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestETagMatches(t *testing.T) {
	tag := etagFor([]byte(`{"a":1}`), true)
	assert.True(t, etagMatches(tag, tag))
	assert.True(t, etagMatches(`"x", `+tag[2:], tag))
	assert.True(t, etagMatches("*", tag))
	assert.False(t, etagMatches(`"other"`, tag))
	assert.False(t, etagMatches("", tag))
}
