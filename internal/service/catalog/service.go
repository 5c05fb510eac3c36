package catalog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/repository"
	redisrepo "github.com/kirinyoku/showtime/internal/repository/redis"
)

type MovieSort string

const (
	SortByTitle    MovieSort = "title"
	SortByRating   MovieSort = "rating"
	SortByDuration MovieSort = "duration"
)

// ParseMovieSort accepts "title", "rating" or "duration". An empty string
// means title.
func ParseMovieSort(s string) (MovieSort, error) {
	switch MovieSort(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByTitle:
		return SortByTitle, nil
	case SortByRating:
		return SortByRating, nil
	case SortByDuration:
		return SortByDuration, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSort, s)
}

type Config struct {
	MovieTTL        time.Duration
	AvailabilityTTL time.Duration
}

type Service struct {
	store repository.Store
	cache *redisrepo.Cache
	cfg   Config
}

func New(store repository.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.MovieTTL <= 0 {
		cfg.MovieTTL = 5 * time.Minute
	}

	if cfg.AvailabilityTTL <= 0 {
		cfg.AvailabilityTTL = 15 * time.Second
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

// ListMovies returns movies whose title or genre contains query, ignoring
// case, ordered by sort. Title sorts ascending, rating descending and
// duration ascending; ties keep catalog order.
//
// Parameters:
//   - ctx: request-scoped context.
//   - query: search text; empty matches every movie.
//   - sort: sort order.
//
// Returns:
//   - []domain.Movie: matching movies.
//   - error: catalog.ErrInvalidSort for an unknown sort order.
func (s *Service) ListMovies(ctx context.Context, query string, sort MovieSort) ([]domain.Movie, error) {
	const op = "service.catalog.ListMovies"

	movies, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyMovies(),
		s.cfg.MovieTTL,
		func(ctx context.Context) ([]domain.Movie, error) {
			return s.store.Catalog().ListMovies(ctx)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if q == "" ||
			strings.Contains(strings.ToLower(m.Title), q) ||
			strings.Contains(strings.ToLower(m.Genre), q) {
			out = append(out, m)
		}
	}

	switch sort {
	case SortByTitle, "":
		slices.SortStableFunc(out, func(a, b domain.Movie) int {
			return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		})
	case SortByRating:
		slices.SortStableFunc(out, func(a, b domain.Movie) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case SortByDuration:
		slices.SortStableFunc(out, func(a, b domain.Movie) int {
			return cmp.Compare(a.DurationMinutes, b.DurationMinutes)
		})
	default:
		return nil, fmt.Errorf("%s: %w: %q", op, ErrInvalidSort, sort)
	}

	return out, nil
}

// GetMovie retrieves a movie by its ID through the cache.
//
// Returns:
//   - *domain.Movie: the movie.
//   - error: catalog.ErrMovieNotFound if the movie is not found.
func (s *Service) GetMovie(ctx context.Context, id string) (*domain.Movie, error) {
	const op = "service.catalog.GetMovie"

	movie, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyMovie(id),
		s.cfg.MovieTTL,
		func(ctx context.Context) (domain.Movie, error) {
			m, err := s.store.Catalog().GetMovie(ctx, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.Movie{}, ErrMovieNotFound
				}

				return domain.Movie{}, err
			}

			return *m, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &movie, nil
}

// ListTheaters returns theaters in city, ignoring case. An empty city
// returns every theater.
func (s *Service) ListTheaters(ctx context.Context, city string) ([]domain.Theater, error) {
	const op = "service.catalog.ListTheaters"

	theaters, err := s.store.Catalog().ListTheaters(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	city = strings.TrimSpace(city)
	if city == "" {
		return theaters, nil
	}

	out := make([]domain.Theater, 0, len(theaters))
	for _, t := range theaters {
		if strings.EqualFold(t.City, city) {
			out = append(out, t)
		}
	}

	return out, nil
}

func (s *Service) GetTheater(ctx context.Context, id string) (*domain.Theater, error) {
	const op = "service.catalog.GetTheater"

	t, err := s.store.Catalog().GetTheater(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrTheaterNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return t, nil
}

// ListShows lists shows by start time, optionally narrowed to one movie
// and/or one theater. Seats are not included.
func (s *Service) ListShows(ctx context.Context, movieID, theaterID string) ([]domain.Show, error) {
	const op = "service.catalog.ListShows"

	shows, err := s.store.Catalog().ListShows(ctx, repository.ShowFilter{
		MovieID:   strings.TrimSpace(movieID),
		TheaterID: strings.TrimSpace(theaterID),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return shows, nil
}

// GetShow returns the show with its live seat map. It is never cached.
func (s *Service) GetShow(ctx context.Context, id string) (*domain.Show, error) {
	const op = "service.catalog.GetShow"

	show, err := s.store.Catalog().GetShow(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrShowNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return show, nil
}

// Availability counts a show's seats by status. Counts are cached briefly
// and dropped whenever a booking touches the show.
//
// Returns:
//   - *domain.AvailabilityCounts: seat counts by status.
//   - error: catalog.ErrShowNotFound if the show is not found.
func (s *Service) Availability(ctx context.Context, showID string) (*domain.AvailabilityCounts, error) {
	const op = "service.catalog.Availability"

	counts, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyShowAvailability(showID),
		s.cfg.AvailabilityTTL,
		func(ctx context.Context) (domain.AvailabilityCounts, error) {
			seats, err := s.store.Seats().ListSeats(ctx, showID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.AvailabilityCounts{}, ErrShowNotFound
				}

				return domain.AvailabilityCounts{}, err
			}

			return domain.CountSeats(seats), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &counts, nil
}
