package math

import (
	"fmt"
	m "math"
	"strings"

	"golang.org/x/exp/rand"
)

// NewTransformIdentity returns the 4x4 identity matrix in strict mode.
func NewTransformIdentity() Transform {
	t := Transform{}
	t.data[0] = 1.0
	t.data[5] = 1.0
	t.data[10] = 1.0
	t.data[15] = 1.0
	return t
}

// NewTransformFromColumnMajor copies a column-major array, e.g. one read back
// from an OpenGL matrix stack.
func NewTransformFromColumnMajor(data [16]float64) Transform {
	return Transform{data: data}
}

// NewTransformTRS builds T·S·R: a rotation of angleDegrees about axis
// (right-hand rule), followed by a scale, followed by a translation. The axis
// is normalized here, so it must not be the zero vector.
func NewTransformTRS(translation, scaling, axis Vec3, angleDegrees float64) (Transform, error) {
	rl := axis.Length()
	if !(rl > 0) || m.IsInf(rl, 0) {
		return Transform{}, fmt.Errorf("axis %v: %w", axis, ErrInvalidAxis)
	}

	rx := axis.X / rl
	ry := axis.Y / rl
	rz := axis.Z / rl

	c := m.Cos(DegToRad(angleDegrees))
	s := m.Sin(DegToRad(angleDegrees))

	sx, sy, sz := scaling.X, scaling.Y, scaling.Z

	t := Transform{}
	d := &t.data

	// Row i of the rotation is scaled by the i-th scale factor; the
	// translation lands in the last column.
	d[0] = sx * (rx*rx*(1-c) + c)
	d[4] = sx * (rx*ry*(1-c) - rz*s)
	d[8] = sx * (rx*rz*(1-c) + ry*s)
	d[12] = translation.X

	d[1] = sy * (ry*rx*(1-c) + rz*s)
	d[5] = sy * (ry*ry*(1-c) + c)
	d[9] = sy * (ry*rz*(1-c) - rx*s)
	d[13] = translation.Y

	d[2] = sz * (rz*rx*(1-c) - ry*s)
	d[6] = sz * (rz*ry*(1-c) + rx*s)
	d[10] = sz * (rz*rz*(1-c) + c)
	d[14] = translation.Z

	d[15] = 1.0
	return t, nil
}

// NewTransformOrthographic maps bounds x [near, far] onto the NDC cube, the
// same matrix glOrtho builds.
func NewTransformOrthographic(bounds Rect[float64], near, far float64) (Transform, error) {
	w := bounds.Right - bounds.Left
	h := bounds.Top - bounds.Bottom
	if w == 0 || h == 0 || far == near {
		return Transform{}, fmt.Errorf("orthographic %v near=%g far=%g: %w", bounds, near, far, ErrInvalidProjection)
	}

	t := Transform{}
	t.data[0] = 2.0 / w
	t.data[5] = 2.0 / h
	t.data[10] = -2.0 / (far - near)
	t.data[12] = -(bounds.Right + bounds.Left) / w
	t.data[13] = -(bounds.Top + bounds.Bottom) / h
	t.data[14] = -(far + near) / (far - near)
	t.data[15] = 1.0
	return t, nil
}

// NewTransformPerspective builds the gluPerspective matrix. fovyDegrees is the
// full vertical field of view.
func NewTransformPerspective(fovyDegrees, aspect, near, far float64) (Transform, error) {
	if !(fovyDegrees > 0 && fovyDegrees < 180) || aspect == 0 || near == far {
		return Transform{}, fmt.Errorf("perspective fovy=%g aspect=%g near=%g far=%g: %w",
			fovyDegrees, aspect, near, far, ErrInvalidProjection)
	}

	f := 1.0 / m.Tan(DegToRad(fovyDegrees)*0.5)

	t := Transform{}
	t.data[0] = f / aspect
	t.data[5] = f
	t.data[10] = (far + near) / (near - far)
	t.data[11] = -1.0
	t.data[14] = (2.0 * far * near) / (near - far)
	return t, nil
}

// NewTransformRandom fills every entry uniformly from [0, 1). Meant for tests.
func NewTransformRandom(rng *rand.Rand) Transform {
	t := Transform{}
	for i := range t.data {
		t.data[i] = rng.Float64()
	}
	return t
}

func (t Transform) Mode() DivideMode {
	return t.mode
}

// WithDivideMode returns a copy of t using mode.
func (t Transform) WithDivideMode(mode DivideMode) Transform {
	t.mode = mode
	return t
}

// ColumnMajor returns a copy of the backing store, element (row, col) at
// index col*4+row.
func (t Transform) ColumnMajor() [16]float64 {
	return t.data
}

func (t *Transform) SetColumnMajor(data [16]float64) {
	t.data = data
}

func (t Transform) At(row, col int) float64 {
	return t.data[col*4+row]
}

// Translate sets t = t · T(v).
func (t *Transform) Translate(v Vec3) {
	d := &t.data
	d[12] += v.X*d[0] + v.Y*d[4] + v.Z*d[8]
	d[13] += v.X*d[1] + v.Y*d[5] + v.Z*d[9]
	d[14] += v.X*d[2] + v.Y*d[6] + v.Z*d[10]
	d[15] += v.X*d[3] + v.Y*d[7] + v.Z*d[11]
}

// Scale sets t = t · S(v). A zero factor is allowed and leaves t singular.
func (t *Transform) Scale(v Vec3) {
	d := &t.data
	for row := 0; row < 4; row++ {
		d[0+row] *= v.X
		d[4+row] *= v.Y
		d[8+row] *= v.Z
	}
}

// Rotate sets t = t · R(axis, angleDegrees).
func (t *Transform) Rotate(axis Vec3, angleDegrees float64) error {
	r, err := NewTransformTRS(NewVec3Zero(), NewVec3One(), axis, angleDegrees)
	if err != nil {
		return fmt.Errorf("rotate: %w", err)
	}
	t.Compose(r)
	return nil
}

// Compose sets t = t · other.
func (t *Transform) Compose(other Transform) {
	t.data = mulColumnMajor(&t.data, &other.data)
}

// Mul returns t · other, leaving both untouched. The result keeps t's mode.
func (t Transform) Mul(other Transform) Transform {
	return Transform{data: mulColumnMajor(&t.data, &other.data), mode: t.mode}
}

func mulColumnMajor(a, b *[16]float64) [16]float64 {
	var out [16]float64
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] = a[0*4+row]*b[col*4+0] +
				a[1*4+row]*b[col*4+1] +
				a[2*4+row]*b[col*4+2] +
				a[3*4+row]*b[col*4+3]
		}
	}
	return out
}

// ApplyVec4 returns t · v without any homogeneous divide.
func (t Transform) ApplyVec4(v Vec4) Vec4 {
	d := &t.data
	return Vec4{
		X: d[0]*v.X + d[4]*v.Y + d[8]*v.Z + d[12]*v.W,
		Y: d[1]*v.X + d[5]*v.Y + d[9]*v.Z + d[13]*v.W,
		Z: d[2]*v.X + d[6]*v.Y + d[10]*v.Z + d[14]*v.W,
		W: d[3]*v.X + d[7]*v.Y + d[11]*v.Z + d[15]*v.W,
	}
}

// ApplyVec3 transforms the point (x, y, z, 1) and divides by the resulting w.
func (t Transform) ApplyVec3(p Vec3) (Vec3, error) {
	h := t.ApplyVec4(p.ToVec4(1))
	if h.W == 0 {
		if t.mode == DivideLegacy {
			return Vec3{}, nil
		}
		return Vec3{}, fmt.Errorf("apply to %v: %w", p, ErrDegenerateHomogeneous)
	}
	return Vec3{X: h.X / h.W, Y: h.Y / h.W, Z: h.Z / h.W}, nil
}

// ApplyVec2 transforms the point (x, y, 0, 1) and divides by the resulting w.
func (t Transform) ApplyVec2(p Vec2) (Vec2, error) {
	h := t.ApplyVec4(Vec4{X: p.X, Y: p.Y, Z: 0, W: 1})
	if h.W == 0 {
		if t.mode == DivideLegacy {
			return Vec2{}, nil
		}
		return Vec2{}, fmt.Errorf("apply to %v: %w", p, ErrDegenerateHomogeneous)
	}
	return Vec2{X: h.X / h.W, Y: h.Y / h.W}, nil
}

// Inverse returns the matrix inverse of t. Strict transforms use Gauss-Jordan
// elimination with partial pivoting and report ErrSingularMatrix; legacy
// transforms use unchecked cofactor expansion, so a singular input yields
// Inf/NaN entries.
func (t Transform) Inverse() (Transform, error) {
	if t.mode == DivideLegacy {
		cof, det := t.cofactors()
		r := 1.0 / det
		out := Transform{mode: t.mode}
		for i := range cof {
			out.data[i] = cof[i] * r
		}
		return out, nil
	}
	return t.gaussJordanInverse()
}

func (t Transform) gaussJordanInverse() (Transform, error) {
	// Augmented [M | I], row-major.
	var a [4][8]float64
	// Pivots are judged against the largest entry of their own column, so a
	// large translation does not make a small but regular scale look singular.
	var colMax [4]float64
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			v := t.At(row, col)
			a[row][col] = v
			colMax[col] = m.Max(colMax[col], m.Abs(v))
		}
		a[row][4+row] = 1.0
	}
	for col, c := range colMax {
		if !(c > 0) || m.IsInf(c, 0) {
			return Transform{}, fmt.Errorf("inverse: column %d: %w", col, ErrSingularMatrix)
		}
	}

	for col := 0; col < 4; col++ {
		pivot := col
		for row := col + 1; row < 4; row++ {
			if m.Abs(a[row][col]) > m.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if !(m.Abs(a[pivot][col]) > SingularEpsilon*colMax[col]) {
			return Transform{}, fmt.Errorf("inverse: pivot %g in column %d: %w", a[pivot][col], col, ErrSingularMatrix)
		}
		a[col], a[pivot] = a[pivot], a[col]

		p := a[col][col]
		for k := 0; k < 8; k++ {
			a[col][k] /= p
		}
		for row := 0; row < 4; row++ {
			if row == col {
				continue
			}
			f := a[row][col]
			if f == 0 {
				continue
			}
			for k := 0; k < 8; k++ {
				a[row][k] -= f * a[col][k]
			}
		}
	}

	out := Transform{mode: t.mode}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out.data[col*4+row] = a[row][4+col]
		}
	}
	return out, nil
}

// Determinant of the full 4x4 matrix.
func (t Transform) Determinant() float64 {
	_, det := t.cofactors()
	return det
}

// cofactors returns the adjugate of t (column-major) and its determinant,
// by Cramer's rule over 2x2 sub-determinants of the transpose.
func (t Transform) cofactors() ([16]float64, float64) {
	d := &t.data

	// s is t read row by row.
	s0, s1, s2, s3 := d[0], d[4], d[8], d[12]
	s4, s5, s6, s7 := d[1], d[5], d[9], d[13]
	s8, s9, sA, sB := d[2], d[6], d[10], d[14]
	sC, sD, sE, sF := d[3], d[7], d[11], d[15]

	var cof [16]float64

	t8D_9C := s8*sD - s9*sC
	t8E_AC := s8*sE - sA*sC
	t8F_BC := s8*sF - sB*sC
	t9E_AD := s9*sE - sA*sD
	t9F_BD := s9*sF - sB*sD
	tAF_BE := sA*sF - sB*sE

	cof[0] = +tAF_BE*s5 - t9F_BD*s6 + t9E_AD*s7
	cof[1] = -tAF_BE*s4 + t8F_BC*s6 - t8E_AC*s7
	cof[2] = +t9F_BD*s4 - t8F_BC*s5 + t8D_9C*s7
	cof[3] = -t9E_AD*s4 + t8E_AC*s5 - t8D_9C*s6

	cof[4] = -tAF_BE*s1 + t9F_BD*s2 - t9E_AD*s3
	cof[5] = +tAF_BE*s0 - t8F_BC*s2 + t8E_AC*s3
	cof[6] = -t9F_BD*s0 + t8F_BC*s1 - t8D_9C*s3
	cof[7] = +t9E_AD*s0 - t8E_AC*s1 + t8D_9C*s2

	t05_14 := s0*s5 - s1*s4
	t06_24 := s0*s6 - s2*s4
	t07_34 := s0*s7 - s3*s4
	t16_25 := s1*s6 - s2*s5
	t17_35 := s1*s7 - s3*s5
	t27_36 := s2*s7 - s3*s6

	cof[8] = +t27_36*sD - t17_35*sE + t16_25*sF
	cof[9] = -t27_36*sC + t07_34*sE - t06_24*sF
	cof[10] = +t17_35*sC - t07_34*sD + t05_14*sF
	cof[11] = -t16_25*sC + t06_24*sD - t05_14*sE

	cof[12] = -t27_36*s9 + t17_35*sA - t16_25*sB
	cof[13] = +t27_36*s8 - t07_34*sA + t06_24*sB
	cof[14] = -t17_35*s8 + t07_34*s9 - t05_14*sB
	cof[15] = +t16_25*s8 - t06_24*s9 + t05_14*sA

	det := s0*cof[0] + s1*cof[1] + s2*cof[2] + s3*cof[3]
	return cof, det
}

// Compare reports whether every entry of t is within tolerance of other.
func (t Transform) Compare(other Transform, tolerance float64) bool {
	for i := range t.data {
		if !(m.Abs(t.data[i]-other.data[i]) <= tolerance) {
			return false
		}
	}
	return true
}

// SSE is the sum of squared differences to ref, handy for spotting drift
// between two supposedly equal matrices.
func (t Transform) SSE(ref Transform) float64 {
	sum := 0.0
	for i := range t.data {
		diff := t.data[i] - ref.data[i]
		sum += diff * diff
	}
	return sum
}

// String prints the matrix row by row.
func (t Transform) String() string {
	var b strings.Builder
	for row := 0; row < 4; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[% .6g % .6g % .6g % .6g]", t.At(row, 0), t.At(row, 1), t.At(row, 2), t.At(row, 3))
	}
	return b.String()
}
