package db

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks a failed document store call. Handlers map it to 503.
var ErrUnavailable = errors.New("document store unavailable")

// Unavailable wraps a driver error from operation op so that errors.Is(err, ErrUnavailable) holds.
// Returns nil when err is nil.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
