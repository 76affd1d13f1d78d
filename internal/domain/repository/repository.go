package repository

import "errors"

// ErrNotFound is returned by any repository when the requested document
// does not exist.
var ErrNotFound = errors.New("not found")
