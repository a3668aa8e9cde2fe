package domain

import "errors"

// ErrNotFound is wrapped by every repository "not found" error
var ErrNotFound = errors.New("not found")
