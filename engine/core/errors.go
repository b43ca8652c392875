package core

import (
	"errors"
)

var (
	ErrInvalidAxis           = errors.New("rotation axis has zero length")
	ErrSingularMatrix        = errors.New("matrix is singular")
	ErrInvalidViewport       = errors.New("viewport width and height must be positive")
	ErrDegenerateHomogeneous = errors.New("homogeneous coordinate w is zero")
	ErrInvalidScale          = errors.New("scale factors must be non-zero")
	ErrInvalidProjection     = errors.New("invalid projection parameters")
	ErrStackUnderflow        = errors.New("cannot pop the last modelview matrix")
	ErrUnknownFormat         = errors.New("unknown scene format")
)
