package catalog

import (
	"errors"
)

var (
	ErrMovieNotFound   = errors.New("movie not found")
	ErrTheaterNotFound = errors.New("theater not found")
	ErrShowNotFound    = errors.New("show not found")
	ErrInvalidSort     = errors.New("invalid sort order")
)
