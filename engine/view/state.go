// Package view tracks the matrices and viewport a renderer would hand to the
// GPU, so world and window coordinates can be converted without reading state
// back from a graphics context.
//
// A State is owned by one caller and is not safe for concurrent mutation.
package view

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/spaghettifunk/viewgeom/engine/core"
	"github.com/spaghettifunk/viewgeom/engine/math"
)

type State struct {
	modelview  []math.Transform
	projection math.Transform
	viewport   math.Rect[int]
	mode       math.DivideMode
	logger     *log.Logger
}

type Option func(*State)

// WithDivideMode selects strict or legacy handling for every matrix the
// state builds.
func WithDivideMode(mode math.DivideMode) Option {
	return func(s *State) {
		s.mode = mode
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *State) {
		s.logger = l
	}
}

// New returns a state with identity modelview and projection and an empty
// viewport.
func New(opts ...Option) *State {
	s := &State{}
	for _, o := range opts {
		o(s)
	}
	if s.logger == nil {
		s.logger = core.Logger()
	}
	s.modelview = []math.Transform{math.NewTransformIdentity().WithDivideMode(s.mode)}
	s.projection = math.NewTransformIdentity().WithDivideMode(s.mode)
	return s
}

func (s *State) Mode() math.DivideMode {
	return s.mode
}

func (s *State) top() *math.Transform {
	return &s.modelview[len(s.modelview)-1]
}

func (s *State) dump(op string) {
	s.logger.Debug(op, "depth", len(s.modelview), "modelview", s.top().String())
}

// Modelview returns the current top of the modelview stack.
func (s *State) Modelview() math.Transform {
	return *s.top()
}

func (s *State) Projection() math.Transform {
	return s.projection
}

func (s *State) Viewport() math.Rect[int] {
	return s.viewport
}

// Depth is the number of entries on the modelview stack, at least 1.
func (s *State) Depth() int {
	return len(s.modelview)
}

// SetViewport records the window rect, left/bottom origin. Sizes are kept
// as given, so a negative width or height makes the viewport invalid.
func (s *State) SetViewport(x, y, width, height int) {
	s.viewport = math.Rect[int]{Left: x, Right: x + width, Bottom: y, Top: y + height}
	s.logger.Debug("viewport", "rect", s.viewport)
}

func (s *State) SetProjection(t math.Transform) {
	s.projection = t.WithDivideMode(s.mode)
	s.logger.Debug("projection", "matrix", s.projection.String())
}

func (s *State) Orthographic(bounds math.Rect[float64], near, far float64) error {
	t, err := math.NewTransformOrthographic(bounds, near, far)
	if err != nil {
		return err
	}
	s.SetProjection(t)
	return nil
}

func (s *State) Perspective(fovyDegrees, aspect, near, far float64) error {
	t, err := math.NewTransformPerspective(fovyDegrees, aspect, near, far)
	if err != nil {
		return err
	}
	s.SetProjection(t)
	return nil
}

// PushMatrix duplicates the top of the modelview stack.
func (s *State) PushMatrix() {
	s.modelview = append(s.modelview, *s.top())
	s.dump("push")
}

// PopMatrix discards the top of the modelview stack. The bottom entry can't
// be popped.
func (s *State) PopMatrix() error {
	if len(s.modelview) <= 1 {
		return core.ErrStackUnderflow
	}
	s.modelview = s.modelview[:len(s.modelview)-1]
	s.dump("pop")
	return nil
}

func (s *State) LoadMatrix(t math.Transform) {
	*s.top() = t.WithDivideMode(s.mode)
	s.dump("load")
}

func (s *State) LoadIdentity() {
	s.LoadMatrix(math.NewTransformIdentity())
}

func (s *State) Translate(v math.Vec3) {
	s.top().Translate(v)
	s.dump("translate")
}

// Scale rejects zero factors, which would leave the modelview singular.
func (s *State) Scale(v math.Vec3) error {
	if v.X == 0 || v.Y == 0 || v.Z == 0 {
		return fmt.Errorf("scale by %v: %w", v, core.ErrInvalidScale)
	}
	s.top().Scale(v)
	s.dump("scale")
	return nil
}

func (s *State) Rotate(axis math.Vec3, angleDegrees float64) error {
	if err := s.top().Rotate(axis, angleDegrees); err != nil {
		return err
	}
	s.dump("rotate")
	return nil
}

// Transform multiplies the top of the modelview stack by t on the right.
func (s *State) Transform(t math.Transform) {
	s.top().Compose(t)
	s.dump("transform")
}

func (s *State) ScreenFromWorld3(world math.Vec3) (math.Vec3, error) {
	screen, err := math.Project(*s.top(), s.projection, s.viewport, world)
	if err != nil {
		return math.Vec3{}, err
	}
	s.logger.Debug("screen from world", "world", world, "screen", screen)
	return screen, nil
}

func (s *State) WorldFromScreen3(screen math.Vec3) (math.Vec3, error) {
	world, err := math.Unproject(*s.top(), s.projection, s.viewport, screen)
	if err != nil {
		return math.Vec3{}, err
	}
	s.logger.Debug("world from screen", "screen", screen, "world", world)
	return world, nil
}

func (s *State) ScreenFromWorld2(world math.Vec2) (math.Vec2, error) {
	return math.Project2(*s.top(), s.projection, s.viewport, world)
}

func (s *State) ScreenBoundsFromWorldRect(world math.Rect[float64]) (math.Rect[int], error) {
	return math.ScreenBoundsFromWorldRect(*s.top(), s.projection, s.viewport, world)
}
