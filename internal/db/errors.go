package db

import "errors"

// ErrNotFound is returned when a lookup matches no row. Callers compare with
// errors.Is so wrapped variants keep working.
var ErrNotFound = errors.New("not found")
