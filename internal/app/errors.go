package app

import "errors"

// ErrNotImplemented is returned by commands that are declared but not built yet.
var ErrNotImplemented = errors.New("not implemented")
