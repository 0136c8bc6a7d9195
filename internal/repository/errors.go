package repository

import "errors"

// ErrNotFound is returned when an update targets a missing row
var ErrNotFound = errors.New("record not found")
