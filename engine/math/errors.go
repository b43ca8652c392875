package math

import "github.com/spaghettifunk/viewgeom/engine/core"

// Re-exported so callers of this package can errors.Is without importing core.
var (
	ErrInvalidAxis           = core.ErrInvalidAxis
	ErrSingularMatrix        = core.ErrSingularMatrix
	ErrInvalidViewport       = core.ErrInvalidViewport
	ErrDegenerateHomogeneous = core.ErrDegenerateHomogeneous
	ErrInvalidProjection     = core.ErrInvalidProjection
)
