package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float64
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float64
}

// Vec4 represents a point in homogeneous coordinates
type Vec4 struct {
	X, Y, Z, W float64
}

/**
 * @brief Selects what happens when a transformed point ends up with a
 * homogeneous w of zero, and how strictly inversion is checked.
 */
type DivideMode uint8

const (
	/** @brief Degenerate divides and singular inverses are reported as errors. */
	DivideStrict DivideMode = iota
	/** @brief Degenerate divides yield the zero vector; inversion is unchecked. */
	DivideLegacy
)

func (d DivideMode) String() string {
	switch d {
	case DivideStrict:
		return "strict"
	case DivideLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

/**
 * @brief A 4x4 matrix in homogeneous coordinates, stored column-major
 * (element (row, col) lives at data[col*4+row]) so it can be handed to
 * OpenGL-style consumers unchanged.
 */
type Transform struct {
	/** @brief The matrix elements, column-major. */
	data [16]float64
	/** @brief Policy for degenerate divides and singular inverses. */
	mode DivideMode
}

/**
 * @brief An axis-aligned rectangle. Y grows upward, so Bottom <= Top for a
 * non-void rect, matching window coordinates with a bottom-left origin.
 */
type Rect[T Number] struct {
	Left   T
	Right  T
	Bottom T
	Top    T
}
