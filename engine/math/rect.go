package math

import "fmt"

// RectLBWH builds a rect from its left/bottom corner and a width and height.
// Negative extents are taken by absolute value.
func RectLBWH[T Number](left, bottom, width, height T) Rect[T] {
	return Rect[T]{
		Left:   left,
		Right:  left + abs(width),
		Bottom: bottom,
		Top:    bottom + abs(height),
	}
}

// RectLTRB builds a rect from explicit edges, stored as given.
func RectLTRB[T Number](left, top, right, bottom T) Rect[T] {
	return Rect[T]{Left: left, Right: right, Bottom: bottom, Top: top}
}

// RectFromCorners builds the rect spanned by two diagonally opposed corners.
func RectFromCorners[T Number](x1, y1, x2, y2 T) Rect[T] {
	return Rect[T]{
		Left:   minOf(x1, x2),
		Right:  maxOf(x1, x2),
		Bottom: minOf(y1, y2),
		Top:    maxOf(y1, y2),
	}
}

// RectConvert changes the scalar type; integer targets truncate toward zero.
func RectConvert[U, T Number](r Rect[T]) Rect[U] {
	return Rect[U]{Left: U(r.Left), Right: U(r.Right), Bottom: U(r.Bottom), Top: U(r.Top)}
}

func (r Rect[T]) Width() T {
	return r.Right - r.Left
}

func (r Rect[T]) Height() T {
	return r.Top - r.Bottom
}

func (r Rect[T]) Aspect() float64 {
	return float64(r.Width()) / float64(r.Height())
}

func (r Rect[T]) CenterX() float64 {
	return (float64(r.Right) + float64(r.Left)) / 2
}

func (r Rect[T]) CenterY() float64 {
	return (float64(r.Top) + float64(r.Bottom)) / 2
}

func (r Rect[T]) Center() Vec2 {
	return Vec2{X: r.CenterX(), Y: r.CenterY()}
}

func (r Rect[T]) BottomLeft() Vec2 {
	return Vec2{X: float64(r.Left), Y: float64(r.Bottom)}
}

func (r Rect[T]) BottomRight() Vec2 {
	return Vec2{X: float64(r.Right), Y: float64(r.Bottom)}
}

func (r Rect[T]) TopLeft() Vec2 {
	return Vec2{X: float64(r.Left), Y: float64(r.Top)}
}

func (r Rect[T]) TopRight() Vec2 {
	return Vec2{X: float64(r.Right), Y: float64(r.Top)}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect[T]) Contains(p Vec2) bool {
	return p.X >= float64(r.Left) && p.X <= float64(r.Right) &&
		p.Y >= float64(r.Bottom) && p.Y <= float64(r.Top)
}

// IsVoid is true for rects with no area.
func (r Rect[T]) IsVoid() bool {
	return r.Top <= r.Bottom || r.Right <= r.Left
}

func (r Rect[T]) Translate(dx, dy T) Rect[T] {
	return Rect[T]{Left: r.Left + dx, Right: r.Right + dx, Bottom: r.Bottom + dy, Top: r.Top + dy}
}

// Union returns the smallest rect covering both. Void rects don't contribute.
func (r Rect[T]) Union(other Rect[T]) Rect[T] {
	if other.IsVoid() {
		return r
	}
	if r.IsVoid() {
		return other
	}
	return Rect[T]{
		Left:   minOf(r.Left, other.Left),
		Right:  maxOf(r.Right, other.Right),
		Bottom: minOf(r.Bottom, other.Bottom),
		Top:    maxOf(r.Top, other.Top),
	}
}

func (r Rect[T]) String() string {
	return fmt.Sprintf("{l=%v b=%v w=%v h=%v}", r.Left, r.Bottom, r.Width(), r.Height())
}
