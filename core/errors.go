package core

import "errors"

// ErrNotFound is the sentinel error for expected-but-missing records,
// e.g. a guild config that was never created.
var ErrNotFound = errors.New("not found")

// IsNotFoundError checks if an error is a "not found" error anywhere in
// its wrap chain.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
