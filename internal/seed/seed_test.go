package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kirinyoku/showtime/internal/repository"
	"github.com/kirinyoku/showtime/internal/repository/memory"
	"github.com/kirinyoku/showtime/internal/service/admin"
	"github.com/kirinyoku/showtime/internal/service/users"
)

func TestRunSeedsCatalogOnce(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	usr := users.New(store, bcrypt.MinCost)
	s := New(store, admin.New(store, nil, nil, nil), usr, nil)
	s.now = func() time.Time { return time.Date(2026, 5, 4, 17, 30, 0, 0, time.UTC) }

	require.NoError(t, s.Run(ctx))
	require.NoError(t, s.Run(ctx))

	movies, err := store.Catalog().ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 3)

	theaters, err := store.Catalog().ListTheaters(ctx)
	require.NoError(t, err)
	assert.Len(t, theaters, 3)

	shows, err := store.Catalog().ListShows(ctx, repository.ShowFilter{})
	require.NoError(t, err)
	assert.Len(t, shows, ShowMovies*3*ShowsPerPair)

	first, err := store.Catalog().GetShow(ctx, ShowID("M001", "T001", 1))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC), first.StartsAt)
	assert.Equal(t, time.Date(2026, 5, 4, 13, 0, 0, 0, time.UTC), first.EndsAt)
	assert.Len(t, first.Seats, 100)

	second, err := store.Catalog().GetShow(ctx, ShowID("M001", "T001", 2))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 5, 13, 0, 0, 0, time.UTC), second.StartsAt)

	for _, u := range Users() {
		got, err := usr.Authenticate(ctx, u.Email, u.Password)
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	}
}
