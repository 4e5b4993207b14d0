package repositories

import "errors"

// ErrNotFound is returned when a record does not exist, and also when it
// exists but is owned by someone else: ownership-scoped lookups must not
// reveal whether a foreign record exists.
var ErrNotFound = errors.New("record not found")
