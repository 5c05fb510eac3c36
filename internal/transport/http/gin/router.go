package httpgin

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kirinyoku/showtime/internal/domain"
	redisrepo "github.com/kirinyoku/showtime/internal/repository/redis"
	"github.com/kirinyoku/showtime/internal/service"
	"github.com/kirinyoku/showtime/internal/service/admin"
	"github.com/kirinyoku/showtime/internal/service/allocator"
	"github.com/kirinyoku/showtime/internal/service/booking"
	"github.com/kirinyoku/showtime/internal/service/catalog"
	"github.com/kirinyoku/showtime/internal/service/payment"
	"github.com/kirinyoku/showtime/internal/service/users"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggingMiddleware(logger), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Catalog
	r.GET("/movies", handleListMovies(svcs))
	r.GET("/movies/:id", handleGetMovie(svcs))
	r.GET("/theaters", handleListTheaters(svcs))
	r.GET("/theaters/:id", handleGetTheater(svcs))
	r.GET("/shows", handleListShows(svcs))
	r.GET("/shows/:id", handleGetShow(svcs))
	r.GET("/shows/:id/seats", handleListShowSeats(svcs))
	r.GET("/shows/:id/availability", handleGetAvailability(svcs))

	// Users
	r.POST("/users", handleRegister(svcs))
	r.POST("/auth/login", handleLogin(svcs))
	r.GET("/users/:id", handleGetUser(svcs))
	r.GET("/users/:id/bookings", handleListUserBookings(svcs))

	// Bookings and payments
	r.POST("/bookings", handleCreateBooking(svcs, idem))
	r.GET("/bookings/:id", handleGetBooking(svcs))
	r.POST("/bookings/:id/cancel", handleCancelBooking(svcs))
	r.POST("/bookings/:id/payments", handleProcessPayment(svcs, idem))
	r.GET("/bookings/:id/payments", handleListPayments(svcs))
	r.GET("/payments/:id", handleGetPayment(svcs))

	// Admin-API
	adm := r.Group("/admin")
	{
		adm.POST("/movies", handleCreateMovie(svcs))
		adm.POST("/theaters", handleCreateTheater(svcs))
		adm.POST("/shows", handleCreateShow(svcs))
	}

	return r
}

// --- Catalog ---

// @Summary  List movies
// @Param    q     query  string  false  "title or genre substring"
// @Param    sort  query  string  false  "title | rating | duration"
// @Success  200  {array}   domain.Movie
// @Failure  400  {object}  ErrorResponse
// @Router   /movies [get]
func handleListMovies(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		sort, err := catalog.ParseMovieSort(c.Query("sort"))
		if err != nil {
			respondErr(c, err)
			return
		}
		movies, err := svcs.Catalog.ListMovies(c.Request.Context(), c.Query("q"), sort)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, movies, "public, max-age=60", true)
	}
}

// @Summary  Get movie
// @Param    id  path  string  true  "Movie ID"
// @Success  200  {object}  domain.Movie
// @Failure  404  {object}  ErrorResponse
// @Router   /movies/{id} [get]
func handleGetMovie(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, err := svcs.Catalog.GetMovie(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, m, "public, max-age=60", true)
	}
}

// @Summary  List theaters
// @Param    city  query  string  false  "city, case-insensitive"
// @Success  200  {array}  domain.Theater
// @Router   /theaters [get]
func handleListTheaters(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		theaters, err := svcs.Catalog.ListTheaters(c.Request.Context(), c.Query("city"))
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, theaters, "public, max-age=60", true)
	}
}

// @Summary  Get theater
// @Param    id  path  string  true  "Theater ID"
// @Success  200  {object}  domain.Theater
// @Failure  404  {object}  ErrorResponse
// @Router   /theaters/{id} [get]
func handleGetTheater(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := svcs.Catalog.GetTheater(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// @Summary  List shows
// @Param    movie_id    query  string  false  "Movie ID"
// @Param    theater_id  query  string  false  "Theater ID"
// @Success  200  {array}  ShowSummary
// @Router   /shows [get]
func handleListShows(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		shows, err := svcs.Catalog.ListShows(
			c.Request.Context(),
			c.Query("movie_id"),
			c.Query("theater_id"),
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toShowSummaries(shows))
	}
}

// @Summary  Get show with its seat map
// @Param    id  path  string  true  "Show ID"
// @Success  200  {object}  domain.Show
// @Failure  404  {object}  ErrorResponse
// @Router   /shows/{id} [get]
func handleGetShow(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := svcs.Catalog.GetShow(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// @Summary  List show seats
// @Param    id    path   string  true   "Show ID"
// @Param    only  query  string  false  "available"
// @Success  200  {object}  ShowSeatsResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /shows/{id}/seats [get]
func handleListShowSeats(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		showID := c.Param("id")

		show, err := svcs.Catalog.GetShow(ctx, showID)
		if err != nil {
			respondErr(c, err)
			return
		}

		seats := show.Seats
		if c.Query("only") == "available" {
			seats, err = svcs.Allocator.ListAvailableSeats(ctx, showID)
			if err != nil {
				respondErr(c, err)
				return
			}
		}
		if seats == nil {
			seats = []domain.Seat{}
		}

		c.Header("Cache-Control", "no-store")
		c.JSON(http.StatusOK, ShowSeatsResponse{ShowID: showID, Seats: seats})
	}
}

// @Summary  Get availability counters
// @Param    id  path  string  true  "Show ID"
// @Success  200  {object}  domain.AvailabilityCounts
// @Failure  404  {object}  ErrorResponse
// @Router   /shows/{id}/availability [get]
func handleGetAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		cnt, err := svcs.Catalog.Availability(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, cnt, "public, max-age=15", true)
	}
}

// --- Users ---

// @Summary  Register user
// @Param    req body  RegisterRequest true "payload"
// @Success  201 {object} domain.User
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "email taken"
// @Router   /users [post]
func handleRegister(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		u, err := svcs.Users.Register(c.Request.Context(), users.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Password: req.Password,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

// @Summary  Check credentials
// @Param    req body  LoginRequest true "payload"
// @Success  200 {object} domain.User
// @Failure  401 {object} ErrorResponse
// @Router   /auth/login [post]
func handleLogin(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		u, err := svcs.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// @Summary  Get a user profile
// @Param    id  path  string  true  "User ID"
// @Success  200 {object} domain.User
// @Failure  404 {object} ErrorResponse
// @Router   /users/{id} [get]
func handleGetUser(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := svcs.Users.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// @Summary  List a user's bookings, oldest first
// @Param    id  path  string  true  "User ID"
// @Success  200 {array}  domain.Booking
// @Failure  404 {object} ErrorResponse
// @Router   /users/{id}/bookings [get]
func handleListUserBookings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := svcs.Booking.ListByUser(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		if bookings == nil {
			bookings = []domain.Booking{}
		}
		c.JSON(http.StatusOK, bookings)
	}
}

// --- Bookings ---

// @Summary  Create booking (idempotent)
// @Param    req body  CreateBookingRequest true "payload"
// @Param    Idempotency-Key header string false "replay key"
// @Success  201 {object} domain.Booking
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse "user or show not found"
// @Failure  409 {object} SeatsUnavailableResponse "seats unavailable / idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /bookings [post]
func handleCreateBooking(svcs *service.Services, idem *redisrepo.IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		key := idemKey(c, func(k string) string { return redisrepo.KeyIdemBooking(req.UserID, k) })
		withIdempotency(c, idem, key, func() (int, any, error) {
			b, err := svcs.Booking.Create(c.Request.Context(), booking.CreateInput{
				UserID:        req.UserID,
				ShowID:        req.ShowID,
				SeatIDs:       req.SeatIDs,
				PaymentMethod: req.PaymentMethod,
			})
			if err != nil {
				return 0, nil, err
			}
			return http.StatusCreated, b, nil
		})
	}
}

// @Summary  Get booking
// @Param    id  path  string  true  "Booking ID"
// @Success  200 {object} domain.Booking
// @Failure  404 {object} ErrorResponse
// @Router   /bookings/{id} [get]
func handleGetBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := svcs.Booking.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// @Summary  Cancel booking and release its seats
// @Param    id  path  string  true  "Booking ID"
// @Success  200 {object} domain.Booking
// @Failure  404 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "already cancelled or payment in progress"
// @Router   /bookings/{id}/cancel [post]
func handleCancelBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := svcs.Booking.Cancel(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// @Summary  Pay for a booking (idempotent)
// @Param    id  path  string  true  "Booking ID"
// @Param    req body  ProcessPaymentRequest true "payload"
// @Param    Idempotency-Key header string false "replay key"
// @Success  201 {object} domain.Payment
// @Failure  402 {object} domain.Payment "declined"
// @Failure  404 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "cancelled, already paid or payment in progress"
// @Router   /bookings/{id}/payments [post]
func handleProcessPayment(svcs *service.Services, idem *redisrepo.IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID := c.Param("id")

		var req ProcessPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		key := idemKey(c, func(k string) string { return redisrepo.KeyIdemPayment(bookingID, k) })
		withIdempotency(c, idem, key, func() (int, any, error) {
			p, err := svcs.Payment.Process(c.Request.Context(), bookingID, req.Amount, req.Method)
			if err != nil {
				return 0, nil, err
			}
			if p.Status != domain.PaymentSuccess {
				return http.StatusPaymentRequired, p, nil
			}
			return http.StatusCreated, p, nil
		})
	}
}

// @Summary  List a booking's payments
// @Param    id  path  string  true  "Booking ID"
// @Success  200 {array}  domain.Payment
// @Failure  404 {object} ErrorResponse
// @Router   /bookings/{id}/payments [get]
func handleListPayments(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		payments, err := svcs.Booking.ListPayments(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		if payments == nil {
			payments = []domain.Payment{}
		}
		c.JSON(http.StatusOK, payments)
	}
}

// @Summary  Get payment
// @Param    id  path  string  true  "Payment ID"
// @Success  200 {object} domain.Payment
// @Failure  404 {object} ErrorResponse
// @Router   /payments/{id} [get]
func handleGetPayment(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svcs.Payment.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// --- Admin ---

// @Summary  Create movie
// @Param    req body  CreateMovieRequest true "payload"
// @Success  201 {object} domain.Movie
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse
// @Router   /admin/movies [post]
func handleCreateMovie(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateMovieRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		in := admin.CreateMovieInput{
			ID:              req.ID,
			Title:           req.Title,
			Genre:           req.Genre,
			DurationMinutes: req.DurationMinutes,
			Rating:          req.Rating,
			Language:        req.Language,
			Description:     req.Description,
			Director:        req.Director,
			PosterURL:       req.PosterURL,
			Cast:            req.Cast,
		}
		if req.ReleaseDate != "" {
			released, err := parseTime(req.ReleaseDate)
			if err != nil {
				badRequest(c, "invalid release_date (RFC3339 or YYYY-MM-DD)")
				return
			}
			in.ReleaseDate = released
		}

		m, err := svcs.Admin.CreateMovie(c.Request.Context(), in)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}

// @Summary  Create theater
// @Param    req body  CreateTheaterRequest true "payload"
// @Success  201 {object} domain.Theater
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse
// @Router   /admin/theaters [post]
func handleCreateTheater(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTheaterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		t, err := svcs.Admin.CreateTheater(c.Request.Context(), admin.CreateTheaterInput{
			ID:       req.ID,
			Name:     req.Name,
			City:     req.City,
			Location: req.Location,
			Screens:  req.Screens,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, t)
	}
}

// @Summary  Create show and its seat grid
// @Param    req body  CreateShowRequest true "payload"
// @Success  201 {object} domain.Show
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse "movie or theater not found"
// @Router   /admin/shows [post]
func handleCreateShow(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateShowRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		starts, err := parseTime(req.StartsAt)
		if err != nil {
			badRequest(c, "invalid starts_at (RFC3339)")
			return
		}

		in := admin.CreateShowInput{
			ID:        req.ID,
			MovieID:   req.MovieID,
			TheaterID: req.TheaterID,
			StartsAt:  starts,
			Language:  req.Language,
			Format:    req.Format,
		}
		if req.EndsAt != "" {
			in.EndsAt, err = parseTime(req.EndsAt)
			if err != nil {
				badRequest(c, "invalid ends_at (RFC3339)")
				return
			}
		}

		s, err := svcs.Admin.CreateShow(c.Request.Context(), in)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, s)
	}
}

// --- Helpers ---

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var unavailable allocator.SeatsUnavailableError
	var limited booking.RateLimitedError

	switch {
	// bookings
	case errors.As(err, &unavailable):
		c.JSON(http.StatusConflict, SeatsUnavailableResponse{
			Error:   "seats unavailable",
			SeatIDs: unavailable.SeatIDs,
		})
	case errors.As(err, &limited):
		secs := int(limited.RetryAfter.Seconds())
		if secs < 1 {
			secs = 1
		}
		c.Header("Retry-After", strconv.Itoa(secs))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "too many booking attempts"})
	case errors.Is(err, booking.ErrNoSeats),
		errors.Is(err, booking.ErrDuplicateSeats):
		badRequest(c, rootMessage(err))
	case errors.Is(err, booking.ErrAlreadyCancelled):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "booking already cancelled"})
	case errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, payment.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found"})
	case errors.Is(err, booking.ErrUserNotFound),
		errors.Is(err, users.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
	case errors.Is(err, booking.ErrShowNotFound),
		errors.Is(err, catalog.ErrShowNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "show not found"})
	// payments
	case errors.Is(err, payment.ErrBookingCancelled):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "booking is cancelled"})
	case errors.Is(err, payment.ErrAlreadyPaid):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "booking already paid"})
	case errors.Is(err, payment.ErrPaymentInProgress),
		errors.Is(err, booking.ErrPaymentInProgress):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "payment in progress"})
	case errors.Is(err, payment.ErrInvalidAmount),
		errors.Is(err, payment.ErrAmountMismatch):
		badRequest(c, rootMessage(err))
	case errors.Is(err, payment.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "payment not found"})
	// catalog and admin
	case errors.Is(err, catalog.ErrMovieNotFound),
		errors.Is(err, admin.ErrMovieNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "movie not found"})
	case errors.Is(err, catalog.ErrTheaterNotFound),
		errors.Is(err, admin.ErrTheaterNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "theater not found"})
	case errors.Is(err, catalog.ErrInvalidSort):
		badRequest(c, "sort must be one of title, rating, duration")
	case errors.Is(err, admin.ErrMovieConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "movie conflict"})
	case errors.Is(err, admin.ErrTheaterConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "theater conflict"})
	case errors.Is(err, admin.ErrShowConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "show conflict"})
	case errors.Is(err, admin.ErrInvalidInput),
		errors.Is(err, users.ErrInvalidInput):
		badRequest(c, rootMessage(err))
	// users
	case errors.Is(err, users.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "email already registered"})
	case errors.Is(err, users.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// rootMessage drops the service op prefix.
func rootMessage(err error) string {
	msg := err.Error()
	if op, rest, ok := strings.Cut(msg, ": "); ok && strings.HasPrefix(op, "service.") {
		return rest
	}
	return msg
}
