package repository

import "errors"

// ErrNotFound is returned by delete operations when the target row is
// absent, regardless of backend.
var ErrNotFound = errors.New("record not found")
