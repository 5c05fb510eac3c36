package admin

import (
	"errors"
)

var (
	ErrInvalidInput    = errors.New("invalid catalog input")
	ErrMovieConflict   = errors.New("movie already exists")
	ErrTheaterConflict = errors.New("theater already exists")
	ErrShowConflict    = errors.New("show already exists")
	ErrMovieNotFound   = errors.New("movie not found")
	ErrTheaterNotFound = errors.New("theater not found")
)
