package repository

import "errors"

// ErrNotFound is the sentinel returned by lookups when no record matches.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned by inserts that violate a uniqueness constraint.
var ErrDuplicate = errors.New("record already exists")
