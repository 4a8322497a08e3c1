package repository

import "errors"

// ErrNotFound reports that a requested aggregate does not exist. The
// HTTP layer translates it to a 404.
var ErrNotFound = errors.New("not found")
