package admin_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/repository"
	"github.com/kirinyoku/showtime/internal/repository/memory"
	"github.com/kirinyoku/showtime/internal/service/admin"
)

type recorder struct {
	catalog []string
	shows   []string
	changed []string
}

func (r *recorder) InvalidateCatalog(_ context.Context, movieID string) error {
	r.catalog = append(r.catalog, movieID)
	return nil
}

func (r *recorder) InvalidateShow(_ context.Context, showID string) error {
	r.shows = append(r.shows, showID)
	return nil
}

func (r *recorder) PublishShowChanged(_ context.Context, showID string) error {
	r.changed = append(r.changed, showID)
	return nil
}

func TestCreateCatalog(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	rec := &recorder{}
	svc := admin.New(store, rec, rec, nil)

	m, err := svc.CreateMovie(ctx, admin.CreateMovieInput{
		Title:           "Inception",
		Genre:           "Sci-Fi",
		DurationMinutes: 148,
		Rating:          8.8,
		Cast:            []string{"Leonardo DiCaprio"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, admin.DefaultLanguage, m.Language)
	assert.Equal(t, []string{m.ID}, rec.catalog)

	th, err := svc.CreateTheater(ctx, admin.CreateTheaterInput{ID: "T001", Name: "PVR", City: "Mumbai", Screens: 5})
	require.NoError(t, err)
	assert.Equal(t, "T001", th.ID)

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	show, err := svc.CreateShow(ctx, admin.CreateShowInput{MovieID: m.ID, TheaterID: th.ID, StartsAt: start})
	require.NoError(t, err)
	assert.Equal(t, start.Add(148*time.Minute), show.EndsAt)
	assert.Equal(t, "English", show.Language)
	assert.Equal(t, "2D", show.Format)
	assert.Equal(t, []string{show.ID}, rec.shows)
	assert.Equal(t, []string{show.ID}, rec.changed)

	stored, err := store.Catalog().GetShow(ctx, show.ID)
	require.NoError(t, err)
	require.Len(t, stored.Seats, 100)
	assert.Equal(t, "A1", stored.Seats[0].ID)
	assert.Equal(t, int64(200), stored.Seats[0].Price)
	assert.Equal(t, int64(250), stored.Seats[7].Price)
	for _, seat := range stored.Seats {
		assert.Equal(t, domain.SeatAvailable, seat.Status)
	}
}

func TestCreateShowRequiresKnownReferences(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := admin.New(store, nil, nil, nil)

	_, err := svc.CreateShow(ctx, admin.CreateShowInput{MovieID: "M1", TheaterID: "T1", StartsAt: time.Now()})
	assert.ErrorIs(t, err, admin.ErrMovieNotFound)

	_, err = svc.CreateMovie(ctx, admin.CreateMovieInput{ID: "M1", Title: "X", Genre: "Drama", DurationMinutes: 90})
	require.NoError(t, err)

	_, err = svc.CreateShow(ctx, admin.CreateShowInput{MovieID: "M1", TheaterID: "T1", StartsAt: time.Now()})
	assert.ErrorIs(t, err, admin.ErrTheaterNotFound)

	shows, err := store.Catalog().ListShows(ctx, repository.ShowFilter{})
	require.NoError(t, err)
	assert.Empty(t, shows)
}

func TestCreateRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc := admin.New(memory.New(), nil, nil, nil)

	_, err := svc.CreateMovie(ctx, admin.CreateMovieInput{Title: "  ", Genre: "Drama", DurationMinutes: 90})
	assert.ErrorIs(t, err, admin.ErrInvalidInput)

	_, err = svc.CreateMovie(ctx, admin.CreateMovieInput{Title: "X", Genre: "Drama", DurationMinutes: 90, Rating: 11})
	assert.ErrorIs(t, err, admin.ErrInvalidInput)

	_, err = svc.CreateTheater(ctx, admin.CreateTheaterInput{Name: "PVR", City: "Mumbai"})
	assert.ErrorIs(t, err, admin.ErrInvalidInput)

	start := time.Now()
	_, err = svc.CreateShow(ctx, admin.CreateShowInput{MovieID: "M1", TheaterID: "T1", StartsAt: start, EndsAt: start})
	assert.ErrorIs(t, err, admin.ErrInvalidInput)

	_, err = svc.CreateShow(ctx, admin.CreateShowInput{
		MovieID: "M1", TheaterID: "T1", StartsAt: start,
		Grid: domain.SeatGrid{Rows: 27, Columns: 10},
	})
	assert.ErrorIs(t, err, admin.ErrInvalidInput)
}

func TestCreateRejectsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	svc := admin.New(memory.New(), nil, nil, nil)

	in := admin.CreateMovieInput{ID: "M1", Title: "X", Genre: "Drama", DurationMinutes: 90}
	_, err := svc.CreateMovie(ctx, in)
	require.NoError(t, err)
	_, err = svc.CreateMovie(ctx, in)
	assert.ErrorIs(t, err, admin.ErrMovieConflict)

	tin := admin.CreateTheaterInput{ID: "T1", Name: "PVR", City: "Mumbai", Screens: 1}
	_, err = svc.CreateTheater(ctx, tin)
	require.NoError(t, err)
	_, err = svc.CreateTheater(ctx, tin)
	assert.ErrorIs(t, err, admin.ErrTheaterConflict)

	sin := admin.CreateShowInput{ID: "S1", MovieID: "M1", TheaterID: "T1", StartsAt: time.Now()}
	_, err = svc.CreateShow(ctx, sin)
	require.NoError(t, err)
	_, err = svc.CreateShow(ctx, sin)
	assert.ErrorIs(t, err, admin.ErrShowConflict)
}
