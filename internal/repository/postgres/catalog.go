package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kirinyoku/showtime/internal/domain"
	"github.com/kirinyoku/showtime/internal/repository"
)

type CatalogRepo struct {
	pool DB
	db   DB
}

func (r *CatalogRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const movieColumns = `id, title, genre, duration_minutes, rating, language,
	release_date, description, director, poster_url, "cast"`

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var m domain.Movie
	err := row.Scan(
		&m.ID, &m.Title, &m.Genre, &m.DurationMinutes, &m.Rating, &m.Language,
		&m.ReleaseDate, &m.Description, &m.Director, &m.PosterURL, &m.Cast,
	)
	return m, err
}

// GetMovie retrieves a movie by its ID.
//
// Returns:
//   - *domain.Movie: the movie when found.
//   - error: repository.ErrNotFound if the movie is not found.
func (r *CatalogRepo) GetMovie(ctx context.Context, id string) (*domain.Movie, error) {
	const op = "postgres.CatalogRepo.GetMovie"

	m, err := scanMovie(r.handle().QueryRow(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return &m, nil
}

// ListMovies returns every movie in insertion order.
func (r *CatalogRepo) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	const op = "postgres.CatalogRepo.ListMovies"

	rows, err := r.handle().Query(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	defer rows.Close()

	out := []domain.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return out, nil
}

func (r *CatalogRepo) PutMovie(ctx context.Context, m *domain.Movie) error {
	const op = "postgres.CatalogRepo.PutMovie"

	cast := m.Cast
	if cast == nil {
		cast = []string{}
	}

	_, err := r.handle().Exec(ctx,
		`INSERT INTO movies(id, title, genre, duration_minutes, rating, language,
		                    release_date, description, director, poster_url, "cast")
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, m.Title, m.Genre, m.DurationMinutes, m.Rating, m.Language,
		m.ReleaseDate, m.Description, m.Director, m.PosterURL, cast,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return nil
}

func (r *CatalogRepo) GetTheater(ctx context.Context, id string) (*domain.Theater, error) {
	const op = "postgres.CatalogRepo.GetTheater"

	var t domain.Theater
	err := r.handle().QueryRow(ctx,
		`SELECT id, name, city, location, screens
		 FROM theaters WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Name, &t.City, &t.Location, &t.Screens)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return &t, nil
}

func (r *CatalogRepo) ListTheaters(ctx context.Context) ([]domain.Theater, error) {
	const op = "postgres.CatalogRepo.ListTheaters"

	rows, err := r.handle().Query(ctx,
		`SELECT id, name, city, location, screens
		 FROM theaters ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	defer rows.Close()

	out := []domain.Theater{}
	for rows.Next() {
		var t domain.Theater
		if err := rows.Scan(&t.ID, &t.Name, &t.City, &t.Location, &t.Screens); err != nil {
			return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return out, nil
}

func (r *CatalogRepo) PutTheater(ctx context.Context, t *domain.Theater) error {
	const op = "postgres.CatalogRepo.PutTheater"

	_, err := r.handle().Exec(ctx,
		`INSERT INTO theaters(id, name, city, location, screens)
		 VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Name, t.City, t.Location, t.Screens,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return nil
}

// GetShow retrieves a show together with its seats.
//
// Returns:
//   - *domain.Show: the show with seats in stored order.
//   - error: repository.ErrNotFound if the show is not found.
func (r *CatalogRepo) GetShow(ctx context.Context, id string) (*domain.Show, error) {
	const op = "postgres.CatalogRepo.GetShow"

	db := r.handle()

	var s domain.Show
	err := db.QueryRow(ctx,
		`SELECT id, movie_id, theater_id, starts_at, ends_at, language, format
		 FROM shows WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.MovieID, &s.TheaterID, &s.StartsAt, &s.EndsAt, &s.Language, &s.Format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	seats, err := querySeats(ctx, db, id, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.Seats = seats

	return &s, nil
}

// ListShows lists shows matching the filter ordered by start time. Seats
// are not loaded.
func (r *CatalogRepo) ListShows(ctx context.Context, f repository.ShowFilter) ([]domain.Show, error) {
	const op = "postgres.CatalogRepo.ListShows"

	rows, err := r.handle().Query(ctx,
		`SELECT id, movie_id, theater_id, starts_at, ends_at, language, format
		 FROM shows
		 WHERE ($1 = '' OR movie_id = $1)
		   AND ($2 = '' OR theater_id = $2)
		 ORDER BY starts_at, id`,
		f.MovieID, f.TheaterID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	defer rows.Close()

	out := []domain.Show{}
	for rows.Next() {
		var s domain.Show
		if err := rows.Scan(&s.ID, &s.MovieID, &s.TheaterID, &s.StartsAt, &s.EndsAt, &s.Language, &s.Format); err != nil {
			return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return out, nil
}

// PutShow inserts the show row and its seat inventory in one batch.
func (r *CatalogRepo) PutShow(ctx context.Context, s *domain.Show) error {
	const op = "postgres.CatalogRepo.PutShow"

	if err := domain.ValidateSeats(s.Seats); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	batch := &pgx.Batch{}
	batch.Queue(
		`INSERT INTO shows(id, movie_id, theater_id, starts_at, ends_at, language, format)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.MovieID, s.TheaterID, s.StartsAt, s.EndsAt, s.Language, s.Format,
	)
	for i, seat := range s.Seats {
		batch.Queue(
			`INSERT INTO show_seats(show_id, seat_id, position, seat_row, number, price, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			s.ID, seat.ID, i, seat.Row, seat.Number, seat.Price, string(seat.Status),
		)
	}

	if err := r.handle().SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return nil
}
