package models

import "errors"

// ErrNotFound is wrapped by every per-record not-found error so callers can
// test for "missing" without knowing the record type.
var ErrNotFound = errors.New("record not found")
