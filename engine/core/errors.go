package core

import (
	"errors"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUnknownShape     = errors.New("unknown shape kind")
	ErrGeometryLimit    = errors.New("geometry limit reached")
	ErrInvalidID        = errors.New("invalid identifier")
	ErrSystemClosed     = errors.New("system already shut down")
)
