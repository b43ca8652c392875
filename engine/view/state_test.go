package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/viewgeom/engine/core"
	"github.com/spaghettifunk/viewgeom/engine/math"
	"github.com/spaghettifunk/viewgeom/engine/view"
)

func TestNewState(t *testing.T) {
	s := view.New()
	assert.Equal(t, 1, s.Depth())
	assert.True(t, s.Modelview().Compare(math.NewTransformIdentity(), 0))
	assert.True(t, s.Projection().Compare(math.NewTransformIdentity(), 0))
	assert.Equal(t, math.DivideStrict, s.Mode())

	// No viewport yet.
	_, err := s.ScreenFromWorld3(math.NewVec3Zero())
	assert.ErrorIs(t, err, core.ErrInvalidViewport)
}

func TestNegativeViewport(t *testing.T) {
	s := view.New()
	s.SetViewport(0, 0, -640, 480)
	assert.Equal(t, -640, s.Viewport().Width())

	_, err := s.ScreenFromWorld3(math.NewVec3Zero())
	assert.ErrorIs(t, err, core.ErrInvalidViewport)
	_, err = s.WorldFromScreen3(math.NewVec3(320, 240, 0.5))
	assert.ErrorIs(t, err, core.ErrInvalidViewport)

	s.SetViewport(0, 0, 640, -480)
	_, err = s.ScreenFromWorld3(math.NewVec3Zero())
	assert.ErrorIs(t, err, core.ErrInvalidViewport)
}

func TestMatrixStack(t *testing.T) {
	s := view.New()
	s.Translate(math.NewVec3(1, 0, 0))
	before := s.Modelview()

	s.PushMatrix()
	assert.Equal(t, 2, s.Depth())
	require.NoError(t, s.Rotate(math.NewVec3(0, 0, 1), 90))
	require.NoError(t, s.Scale(math.NewVec3(2, 2, 2)))
	assert.False(t, s.Modelview().Compare(before, 1e-12))

	require.NoError(t, s.PopMatrix())
	assert.True(t, s.Modelview().Compare(before, 0))

	err := s.PopMatrix()
	assert.ErrorIs(t, err, core.ErrStackUnderflow)
	assert.Equal(t, 1, s.Depth())
}

func TestModelviewOps(t *testing.T) {
	s := view.New()

	t.Run("zero scale factors are rejected", func(t *testing.T) {
		err := s.Scale(math.NewVec3(1, 0, 1))
		assert.ErrorIs(t, err, core.ErrInvalidScale)
		assert.True(t, s.Modelview().Compare(math.NewTransformIdentity(), 0))
	})

	t.Run("zero rotation axis is rejected", func(t *testing.T) {
		err := s.Rotate(math.NewVec3Zero(), 10)
		assert.ErrorIs(t, err, core.ErrInvalidAxis)
	})

	t.Run("transform and load", func(t *testing.T) {
		trs, err := math.NewTransformTRS(math.NewVec3(1, 2, 3), math.NewVec3One(), math.NewVec3Up(), 45)
		require.NoError(t, err)
		s.Transform(trs)
		assert.True(t, s.Modelview().Compare(trs, 1e-12))

		s.LoadIdentity()
		assert.True(t, s.Modelview().Compare(math.NewTransformIdentity(), 0))

		s.LoadMatrix(trs)
		assert.True(t, s.Modelview().Compare(trs, 0))
	})
}

func TestConversions(t *testing.T) {
	t.Run("pixel-aligned orthographic setup", func(t *testing.T) {
		s := view.New()
		s.SetViewport(0, 0, 512, 256)
		require.NoError(t, s.Orthographic(math.RectLBWH(0.0, 0.0, 512.0, 256.0), -1, 1))

		screen, err := s.ScreenFromWorld3(math.NewVec3(100, 50, 0))
		require.NoError(t, err)
		assert.True(t, screen.Compare(math.NewVec3(100, 50, 0.5), 1e-9), "got %v", screen)

		world, err := s.WorldFromScreen3(screen)
		require.NoError(t, err)
		assert.True(t, world.Compare(math.NewVec3(100, 50, 0), 1e-9), "got %v", world)

		p, err := s.ScreenFromWorld2(math.NewVec2(10, 20))
		require.NoError(t, err)
		assert.True(t, p.Compare(math.NewVec2(10, 20), 1e-9), "got %v", p)

		bounds, err := s.ScreenBoundsFromWorldRect(math.RectLBWH(10.0, 20.0, 30.0, 40.0))
		require.NoError(t, err)
		assert.Equal(t, math.RectLBWH(10, 20, 30, 40), bounds)
	})

	t.Run("agrees with the free functions", func(t *testing.T) {
		s := view.New()
		s.SetViewport(10, 20, 300, 200)
		require.NoError(t, s.Perspective(45, 1.5, 0.5, 50))
		s.Translate(math.NewVec3(0, 0, -5))
		require.NoError(t, s.Rotate(math.NewVec3(1, 1, 0), 20))

		p := math.NewVec3(0.3, -0.2, 1)
		expected, err := math.Project(s.Modelview(), s.Projection(), s.Viewport(), p)
		require.NoError(t, err)
		got, err := s.ScreenFromWorld3(p)
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	})

	t.Run("bad projection parameters leave the projection alone", func(t *testing.T) {
		s := view.New()
		err := s.Perspective(45, 0, 1, 10)
		assert.ErrorIs(t, err, core.ErrInvalidProjection)
		assert.True(t, s.Projection().Compare(math.NewTransformIdentity(), 0))
	})
}

func TestLegacyState(t *testing.T) {
	s := view.New(view.WithDivideMode(math.DivideLegacy))
	assert.Equal(t, math.DivideLegacy, s.Modelview().Mode())
	assert.Equal(t, math.DivideLegacy, s.Projection().Mode())

	s.SetProjection(math.NewTransformIdentity())
	assert.Equal(t, math.DivideLegacy, s.Projection().Mode())

	// Empty viewport: legacy returns NaN rather than an error.
	world, err := s.WorldFromScreen3(math.NewVec3(1, 1, 0.5))
	require.NoError(t, err)
	assert.True(t, world.IsNaN())
}
