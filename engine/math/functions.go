package math

import (
	m "math"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float64 = m.Pi
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float64 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float64 = 180.0 / K_PI
	/**
	 * @brief Pivot size, relative to the largest entry of its column, below
	 * which strict-mode inversion treats a matrix as singular.
	 */
	SingularEpsilon float64 = 1e-12
)

/**
 * @brief Converts provided degrees to radians.
 *
 * @param degrees The degrees to be converted.
 * @return The amount in radians.
 */
func DegToRad(degrees float64) float64 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

/**
 * @brief Converts provided radians to degrees.
 *
 * @param radians The radians to be converted.
 * @return The amount in degrees.
 */
func RadToDeg(radians float64) float64 {
	return radians * K_RAD2DEG_MULTIPLIER
}

// ------------------------------------------
// Vector 2
// ------------------------------------------

func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func NewVec2Zero() Vec2 {
	return Vec2{}
}

func NewVec2One() Vec2 {
	return Vec2{X: 1, Y: 1}
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

func (v Vec2) Mul(other Vec2) Vec2 {
	return Vec2{X: v.X * other.X, Y: v.Y * other.Y}
}

func (v Vec2) MulScalar(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Length() float64 {
	return m.Sqrt(v.LengthSquared())
}

// Normalized returns a unit-length copy. The zero vector is returned as is.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 */
func (v Vec2) Compare(other Vec2, tolerance float64) bool {
	return m.Abs(v.X-other.X) <= tolerance && m.Abs(v.Y-other.Y) <= tolerance
}

func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}

// ToVec3 lifts v into 3D at the given depth.
func (v Vec2) ToVec3(z float64) Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: z}
}

// ------------------------------------------
// Vector 3
// ------------------------------------------

func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func NewVec3Zero() Vec3 {
	return Vec3{}
}

func NewVec3One() Vec3 {
	return Vec3{X: 1, Y: 1, Z: 1}
}

func NewVec3Up() Vec3 {
	return Vec3{Y: 1}
}

func NewVec3Down() Vec3 {
	return Vec3{Y: -1}
}

func NewVec3Left() Vec3 {
	return Vec3{X: -1}
}

func NewVec3Right() Vec3 {
	return Vec3{X: 1}
}

func NewVec3Forward() Vec3 {
	return Vec3{Z: -1}
}

func NewVec3Back() Vec3 {
	return Vec3{Z: 1}
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{X: v.X * other.X, Y: v.Y * other.Y, Z: v.Z * other.Z}
}

func (v Vec3) MulScalar(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Length() float64 {
	return m.Sqrt(v.LengthSquared())
}

// Normalized returns a unit-length copy. The zero vector is returned as is.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vec3{X: v.X / l, Y: v.Y / l, Z: v.Z / l}
}

func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

/**
 * @brief Calculates and returns the cross product of v and other.
 * The cross product is a new vector which is orthogonal to both.
 */
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 */
func (v Vec3) Compare(other Vec3, tolerance float64) bool {
	return m.Abs(v.X-other.X) <= tolerance &&
		m.Abs(v.Y-other.Y) <= tolerance &&
		m.Abs(v.Z-other.Z) <= tolerance
}

func (v Vec3) Distance(other Vec3) float64 {
	return v.Sub(other).Length()
}

// AsVec2 drops the z component.
func (v Vec3) AsVec2() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

func (v Vec3) ToVec4(w float64) Vec4 {
	return Vec4{X: v.X, Y: v.Y, Z: v.Z, W: w}
}

func (v Vec3) IsNaN() bool {
	return m.IsNaN(v.X) || m.IsNaN(v.Y) || m.IsNaN(v.Z)
}
