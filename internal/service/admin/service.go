package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/repository"
	"github.com/kirinyoku/showtime/internal/uow"
)

const (
	DefaultLanguage = "English"
	DefaultFormat   = "2D"
	// DefaultShowLength is used when a show has no end time and its movie
	// has no duration.
	DefaultShowLength = 180 * time.Minute
)

type CatalogInvalidator interface {
	InvalidateCatalog(ctx context.Context, movieID string) error
	InvalidateShow(ctx context.Context, showID string) error
}

type ChangePublisher interface {
	PublishShowChanged(ctx context.Context, showID string) error
}

type CreateMovieInput struct {
	ID              string
	Title           string  `validate:"required,max=200"`
	Genre           string  `validate:"required,max=100"`
	DurationMinutes int     `validate:"gt=0,lte=600"`
	Rating          float64 `validate:"gte=0,lte=10"`
	Language        string  `validate:"max=50"`
	ReleaseDate     time.Time
	Description     string
	Director        string   `validate:"max=200"`
	PosterURL       string   `validate:"omitempty,url"`
	Cast            []string `validate:"dive,required"`
}

type CreateTheaterInput struct {
	ID       string
	Name     string `validate:"required,max=200"`
	City     string `validate:"required,max=100"`
	Location string `validate:"max=500"`
	Screens  int    `validate:"gte=1"`
}

type CreateShowInput struct {
	ID        string
	MovieID   string    `validate:"required"`
	TheaterID string    `validate:"required"`
	StartsAt  time.Time `validate:"required"`
	EndsAt    time.Time
	Language  string
	Format    string
	// Grid overrides the default 10x10 layout when Rows is set.
	Grid domain.SeatGrid
}

type Service struct {
	store    repository.Store
	cache    CatalogInvalidator
	pubsub   ChangePublisher
	log      *slog.Logger
	uow      *uow.UoW
	validate *validator.Validate
}

// New wires the admin service. cache and pubsub may be nil.
func New(store repository.Store, cache CatalogInvalidator, pubsub ChangePublisher, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		store:    store,
		cache:    cache,
		pubsub:   pubsub,
		log:      log,
		uow:      uow.NewUoW(store),
		validate: validator.New(),
	}
}

// CreateMovie adds a movie to the catalog and drops the cached movie list.
//
// Parameters:
//   - ctx: request-scoped context.
//   - in: movie fields; ID is generated when empty.
//
// Returns:
//   - *domain.Movie: the stored movie.
//   - error: admin.ErrInvalidInput if a field fails validation.
//   - error: admin.ErrMovieConflict if the ID is already taken.
func (s *Service) CreateMovie(ctx context.Context, in CreateMovieInput) (*domain.Movie, error) {
	const op = "service.admin.CreateMovie"

	in.Title = strings.TrimSpace(in.Title)
	in.Genre = strings.TrimSpace(in.Genre)
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
	}

	m := &domain.Movie{
		ID:              idOrNew(in.ID),
		Title:           in.Title,
		Genre:           in.Genre,
		DurationMinutes: in.DurationMinutes,
		Rating:          in.Rating,
		Language:        orDefault(in.Language, DefaultLanguage),
		ReleaseDate:     in.ReleaseDate.UTC(),
		Description:     in.Description,
		Director:        in.Director,
		PosterURL:       in.PosterURL,
		Cast:            in.Cast,
	}

	if err := s.store.Catalog().PutMovie(ctx, m); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", op, ErrMovieConflict)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateCatalog(ctx, m.ID); err != nil {
			s.log.Warn("invalidate catalog cache", "movie_id", m.ID, "error", err)
		}
	}

	return m, nil
}

func (s *Service) CreateTheater(ctx context.Context, in CreateTheaterInput) (*domain.Theater, error) {
	const op = "service.admin.CreateTheater"

	in.Name = strings.TrimSpace(in.Name)
	in.City = strings.TrimSpace(in.City)
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
	}

	t := &domain.Theater{
		ID:       idOrNew(in.ID),
		Name:     in.Name,
		City:     in.City,
		Location: strings.TrimSpace(in.Location),
		Screens:  in.Screens,
	}

	if err := s.store.Catalog().PutTheater(ctx, t); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", op, ErrTheaterConflict)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return t, nil
}

// CreateShow schedules a movie at a theater and generates its seat
// inventory, all inside one unit of work. When EndsAt is not set the show
// runs for the movie's duration.
//
// Returns:
//   - *domain.Show: the stored show with its seats.
//   - error: admin.ErrMovieNotFound or admin.ErrTheaterNotFound for unknown
//     references.
//   - error: admin.ErrInvalidInput for a missing field, an end before the
//     start, or a bad seat grid.
//   - error: admin.ErrShowConflict if the ID is already taken.
func (s *Service) CreateShow(ctx context.Context, in CreateShowInput) (*domain.Show, error) {
	const op = "service.admin.CreateShow"

	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
	}

	if !in.EndsAt.IsZero() && !in.EndsAt.After(in.StartsAt) {
		return nil, fmt.Errorf("%s: %w: show must end after it starts", op, ErrInvalidInput)
	}

	grid := in.Grid
	if grid.Rows == 0 {
		grid = domain.DefaultSeatGrid()
	}

	seats, err := grid.Seats()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
	}

	var show *domain.Show
	err = s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, after func(uow.AfterCommit)) error {
		movie, err := tx.Catalog().GetMovie(ctx, in.MovieID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrMovieNotFound
			}
			return err
		}

		if _, err := tx.Catalog().GetTheater(ctx, in.TheaterID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrTheaterNotFound
			}
			return err
		}

		ends := in.EndsAt
		if ends.IsZero() {
			length := DefaultShowLength
			if movie.DurationMinutes > 0 {
				length = time.Duration(movie.DurationMinutes) * time.Minute
			}
			ends = in.StartsAt.Add(length)
		}

		show = &domain.Show{
			ID:        idOrNew(in.ID),
			MovieID:   in.MovieID,
			TheaterID: in.TheaterID,
			StartsAt:  in.StartsAt.UTC(),
			EndsAt:    ends.UTC(),
			Language:  orDefault(in.Language, orDefault(movie.Language, DefaultLanguage)),
			Format:    orDefault(in.Format, DefaultFormat),
			Seats:     seats,
		}

		if err := tx.Catalog().PutShow(ctx, show); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrShowConflict
			}
			return err
		}

		showID := show.ID
		after(func(ctx context.Context) {
			if s.cache != nil {
				if err := s.cache.InvalidateShow(ctx, showID); err != nil {
					s.log.Warn("invalidate show cache", "show_id", showID, "error", err)
				}
			}
			if s.pubsub != nil {
				if err := s.pubsub.PublishShowChanged(ctx, showID); err != nil {
					s.log.Warn("publish show changed", "show_id", showID, "error", err)
				}
			}
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return show, nil
}

func idOrNew(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.NewString()
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
