package allocator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrShowNotFound     = errors.New("show not found")
	ErrSeatsUnavailable = errors.New("some seats are unavailable")
)

// SeatsUnavailableError lists the requested seats that are unknown or not
// available. It matches ErrSeatsUnavailable with errors.Is.
type SeatsUnavailableError struct {
	ShowID  string
	SeatIDs []string
}

func (e SeatsUnavailableError) Error() string {
	return fmt.Sprintf("seats unavailable on show %s: %s", e.ShowID, strings.Join(e.SeatIDs, ", "))
}

func (e SeatsUnavailableError) Is(target error) bool {
	return target == ErrSeatsUnavailable
}
