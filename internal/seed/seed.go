// Package seed loads the sample catalog and demo accounts. Seeding is
// idempotent: records that already exist are left alone.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/repository"
	"github.com/kirinyoku/showtime/internal/service/admin"
	"github.com/kirinyoku/showtime/internal/service/users"
)

// ShowsPerPair is how many shows each seeded movie gets at each theater.
const ShowsPerPair = 2

// ShowMovies is how many of the seeded movies get shows.
const ShowMovies = 3

type DemoUser struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	Password string
}

func Movies() []admin.CreateMovieInput {
	return []admin.CreateMovieInput{
		{
			ID:              "M001",
			Title:           "Avatar: The Way of Water",
			Genre:           "Sci-Fi",
			DurationMinutes: 192,
			Rating:          7.8,
			Language:        "English",
			ReleaseDate:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			PosterURL:       "https://via.placeholder.com/300x450?text=Avatar",
			Description:     "The sequel to Avatar follows Jake Sully and Neytiri.",
			Director:        "James Cameron",
			Cast:            []string{"Sam Worthington", "Zoe Saldana"},
		},
		{
			ID:              "M002",
			Title:           "The Marvels",
			Genre:           "Action",
			DurationMinutes: 105,
			Rating:          6.1,
			Language:        "English",
			ReleaseDate:     time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			PosterURL:       "https://via.placeholder.com/300x450?text=Marvels",
			Description:     "Superhero action-adventure film.",
			Director:        "Nia DaCosta",
			Cast:            []string{"Brie Larson", "Teyonah Parris"},
		},
		{
			ID:              "M003",
			Title:           "Oppenheimer",
			Genre:           "Drama",
			DurationMinutes: 180,
			Rating:          8.5,
			Language:        "English",
			ReleaseDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			PosterURL:       "https://via.placeholder.com/300x450?text=Oppenheimer",
			Description:     "The story of J. Robert Oppenheimer.",
			Director:        "Christopher Nolan",
			Cast:            []string{"Cillian Murphy", "Emily Blunt"},
		},
	}
}

func Theaters() []admin.CreateTheaterInput {
	return []admin.CreateTheaterInput{
		{ID: "T001", Name: "PVR Cinemas", City: "Mumbai", Location: "Andheri West", Screens: 4},
		{ID: "T002", Name: "INOX Entertainment", City: "Bangalore", Location: "Koramangala", Screens: 3},
		{ID: "T003", Name: "Cinepolis", City: "Delhi", Location: "Connaught Place", Screens: 5},
	}
}

func Users() []DemoUser {
	return []DemoUser{
		{ID: "U001", Name: "Rahul Kumar", Email: "rahul@gmail.com", Phone: "9876543210", Password: "password123"},
		{ID: "U002", Name: "Demo User", Email: "demo@gmail.com", Phone: "9876543211", Password: "demo123"},
		{ID: "U003", Name: "Priya Singh", Email: "priya@gmail.com", Phone: "9876543212", Password: "priya123"},
	}
}

// ShowID names the n-th seeded show (1-based) of a movie at a theater.
func ShowID(movieID, theaterID string, n int) string {
	return fmt.Sprintf("S-%s-%s-%d", movieID, theaterID, n)
}

type Seeder struct {
	store repository.Store
	admin *admin.Service
	users *users.Service
	log   *slog.Logger
	now   func() time.Time
}

func New(store repository.Store, adm *admin.Service, usr *users.Service, log *slog.Logger) *Seeder {
	if log == nil {
		log = slog.Default()
	}

	return &Seeder{
		store: store,
		admin: adm,
		users: usr,
		log:   log,
		now:   time.Now,
	}
}

// Run seeds users, movies, theaters and shows. The n-th show (0-based) of
// each movie/theater pair starts n days after today at 10:00 plus 3n hours,
// UTC.
func (s *Seeder) Run(ctx context.Context) error {
	const op = "seed.Seeder.Run"

	for _, u := range Users() {
		if err := s.seedUser(ctx, u); err != nil {
			return fmt.Errorf("%s: user %s: %w", op, u.ID, err)
		}
	}

	movies := Movies()
	for _, m := range movies {
		if _, err := s.admin.CreateMovie(ctx, m); err != nil && !errors.Is(err, admin.ErrMovieConflict) {
			return fmt.Errorf("%s: movie %s: %w", op, m.ID, err)
		}
	}

	theaters := Theaters()
	for _, t := range theaters {
		if _, err := s.admin.CreateTheater(ctx, t); err != nil && !errors.Is(err, admin.ErrTheaterConflict) {
			return fmt.Errorf("%s: theater %s: %w", op, t.ID, err)
		}
	}

	day := s.now().UTC().Truncate(24 * time.Hour)
	created := 0
	for _, m := range movies[:min(ShowMovies, len(movies))] {
		for _, t := range theaters {
			for n := 0; n < ShowsPerPair; n++ {
				start := day.AddDate(0, 0, n).Add(time.Duration(10+3*n) * time.Hour)
				_, err := s.admin.CreateShow(ctx, admin.CreateShowInput{
					ID:        ShowID(m.ID, t.ID, n+1),
					MovieID:   m.ID,
					TheaterID: t.ID,
					StartsAt:  start,
					EndsAt:    start.Add(admin.DefaultShowLength),
					Language:  m.Language,
				})
				if errors.Is(err, admin.ErrShowConflict) {
					continue
				}
				if err != nil {
					return fmt.Errorf("%s: show for %s at %s: %w", op, m.ID, t.ID, err)
				}
				created++
			}
		}
	}

	s.log.Info("seed complete", "movies", len(movies), "theaters", len(theaters), "shows_created", created)
	return nil
}

func (s *Seeder) seedUser(ctx context.Context, u DemoUser) error {
	hash, err := s.users.HashPassword(u.Password)
	if err != nil {
		return err
	}

	err = s.store.Users().CreateUser(ctx, &domain.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if errors.Is(err, repository.ErrConflict) {
		return nil
	}
	return err
}
