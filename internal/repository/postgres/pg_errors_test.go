package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/kirinyoku/showtime/internal/repository"
)

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pgconn.PgError{Code: codeSerializationFailure}))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: codeDeadlockDetected})))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: codeUniqueViolation}))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(nil))
}

func TestTranslateDBErr(t *testing.T) {
	assert.NoError(t, translateDBErr(nil))
	assert.ErrorIs(t, translateDBErr(pgx.ErrNoRows), repository.ErrNotFound)

	unique := &pgconn.PgError{Code: codeUniqueViolation}
	err := translateDBErr(unique)
	assert.ErrorIs(t, err, repository.ErrConflict)
	assert.ErrorAs(t, err, &unique)

	serial := &pgconn.PgError{Code: codeSerializationFailure}
	assert.Same(t, error(serial), translateDBErr(serial))
}
