package math

import (
	"fmt"
	m "math"

	"github.com/spaghettifunk/viewgeom/engine/core"
)

func viewportValid(vp Rect[int]) bool {
	return vp.Width() > 0 && vp.Height() > 0
}

func nanVec3() Vec3 {
	return Vec3{X: m.NaN(), Y: m.NaN(), Z: m.NaN()}
}

// Unproject maps a window-space point (x, y in pixels, z a depth in [0, 1])
// back to world space through the inverse of projection · modelview, like
// gluUnProject.
//
// The combined transform takes projection's divide mode. In legacy mode an
// invalid viewport yields a NaN vector instead of ErrInvalidViewport.
func Unproject(modelview, projection Transform, viewport Rect[int], screen Vec3) (Vec3, error) {
	combined := projection.Mul(modelview)

	if !viewportValid(viewport) {
		if combined.mode == DivideLegacy {
			return nanVec3(), nil
		}
		return Vec3{}, fmt.Errorf("unproject with viewport %v: %w", viewport, ErrInvalidViewport)
	}

	inverse, err := combined.Inverse()
	if err != nil {
		core.LogDebug("unproject: combined transform not invertible:\n%s", combined)
		return Vec3{}, fmt.Errorf("unproject: %w", err)
	}

	ndc := Vec3{
		X: 2*(screen.X-float64(viewport.Left))/float64(viewport.Width()) - 1,
		Y: 2*(screen.Y-float64(viewport.Bottom))/float64(viewport.Height()) - 1,
		Z: 2*screen.Z - 1,
	}

	world, err := inverse.ApplyVec3(ndc)
	if err != nil {
		return Vec3{}, fmt.Errorf("unproject %v: %w", screen, err)
	}
	return world, nil
}

// Project maps a world-space point to window space, like gluProject. It is the
// exact converse of Unproject for an invertible transform and valid viewport.
func Project(modelview, projection Transform, viewport Rect[int], world Vec3) (Vec3, error) {
	combined := projection.Mul(modelview)

	if !viewportValid(viewport) {
		if combined.mode == DivideLegacy {
			return nanVec3(), nil
		}
		return Vec3{}, fmt.Errorf("project with viewport %v: %w", viewport, ErrInvalidViewport)
	}

	ndc, err := combined.ApplyVec3(world)
	if err != nil {
		return Vec3{}, fmt.Errorf("project %v: %w", world, err)
	}

	return Vec3{
		X: float64(viewport.Left) + float64(viewport.Width())*(ndc.X+1)/2,
		Y: float64(viewport.Bottom) + float64(viewport.Height())*(ndc.Y+1)/2,
		Z: (ndc.Z + 1) / 2,
	}, nil
}

// Project2 projects a point on the z = 0 plane and drops the depth.
func Project2(modelview, projection Transform, viewport Rect[int], world Vec2) (Vec2, error) {
	screen, err := Project(modelview, projection, viewport, world.ToVec3(0))
	if err != nil {
		return Vec2{}, err
	}
	return screen.AsVec2(), nil
}

// ScreenBoundsFromWorldRect projects all four corners of a world rect and
// returns the pixel rect covering them. Corner coordinates are truncated.
func ScreenBoundsFromWorldRect(modelview, projection Transform, viewport Rect[int], world Rect[float64]) (Rect[int], error) {
	corners := [4]Vec2{world.BottomLeft(), world.TopRight(), world.BottomRight(), world.TopLeft()}
	var px [4]Vec2
	for i, c := range corners {
		p, err := Project2(modelview, projection, viewport, c)
		if err != nil {
			return Rect[int]{}, err
		}
		// Legacy mode reports a bad viewport as NaN, which has no pixel value.
		if m.IsNaN(p.X) || m.IsNaN(p.Y) {
			return Rect[int]{}, nil
		}
		px[i] = p
	}

	r1 := RectFromCorners(int(px[0].X), int(px[0].Y), int(px[1].X), int(px[1].Y))
	r2 := RectFromCorners(int(px[2].X), int(px[2].Y), int(px[3].X), int(px[3].Y))
	return r1.Union(r2), nil
}
