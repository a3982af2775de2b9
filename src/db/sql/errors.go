package db

import "errors"

// ErrNotFound marks rows that are absent or owned by another user. The two
// cases are deliberately indistinguishable to callers.
var ErrNotFound = errors.New("not found")
