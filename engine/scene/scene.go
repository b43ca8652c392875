// Package scene describes a viewport mapping (viewport, projection, camera
// and modelview operations) together with a list of point queries, loads
// such descriptions from TOML or YAML, and evaluates them.
package scene

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/viewgeom/engine/core"
	"github.com/spaghettifunk/viewgeom/engine/math"
	"github.com/spaghettifunk/viewgeom/engine/renderer/components"
	"github.com/spaghettifunk/viewgeom/engine/view"
)

type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Projection kinds.
const (
	ProjectionIdentity     = "identity"
	ProjectionOrthographic = "orthographic"
	ProjectionPerspective  = "perspective"
	ProjectionMatrix       = "matrix"
)

// Modelview operations.
const (
	OpTranslate = "translate"
	OpScale     = "scale"
	OpRotate    = "rotate"
	OpMatrix    = "matrix"
	OpPush      = "push"
	OpPop       = "pop"
	OpIdentity  = "identity"
)

// Query kinds.
const (
	QueryProject   = "project"
	QueryUnproject = "unproject"
)

type Viewport struct {
	X      int `toml:"x" yaml:"x" json:"x"`
	Y      int `toml:"y" yaml:"y" json:"y"`
	Width  int `toml:"width" yaml:"width" json:"width"`
	Height int `toml:"height" yaml:"height" json:"height"`
}

// Projection holds the parameters for every kind; only the ones relevant to
// Kind are read. An orthographic projection with Left == Right uses the
// viewport rectangle as its bounds. A perspective projection with a zero
// Aspect uses the viewport's aspect ratio.
type Projection struct {
	Kind   string    `toml:"kind" yaml:"kind" json:"kind"`
	Left   float64   `toml:"left" yaml:"left" json:"left,omitempty"`
	Right  float64   `toml:"right" yaml:"right" json:"right,omitempty"`
	Bottom float64   `toml:"bottom" yaml:"bottom" json:"bottom,omitempty"`
	Top    float64   `toml:"top" yaml:"top" json:"top,omitempty"`
	Near   float64   `toml:"near" yaml:"near" json:"near,omitempty"`
	Far    float64   `toml:"far" yaml:"far" json:"far,omitempty"`
	Fovy   float64   `toml:"fovy" yaml:"fovy" json:"fovy,omitempty"`
	Aspect float64   `toml:"aspect" yaml:"aspect" json:"aspect,omitempty"`
	Matrix []float64 `toml:"matrix" yaml:"matrix" json:"matrix,omitempty"`
}

// Camera rotation is pitch, yaw and roll in degrees.
type Camera struct {
	Position []float64 `toml:"position" yaml:"position" json:"position"`
	Rotation []float64 `toml:"rotation" yaml:"rotation" json:"rotation"`
}

// Op is one modelview stack operation. Vector is the translation, the scale
// factors or the rotation axis. Matrix is column-major.
type Op struct {
	Op     string    `toml:"op" yaml:"op" json:"op"`
	Vector []float64 `toml:"vector" yaml:"vector" json:"vector,omitempty"`
	Angle  float64   `toml:"angle" yaml:"angle" json:"angle,omitempty"`
	Matrix []float64 `toml:"matrix" yaml:"matrix" json:"matrix,omitempty"`
}

type Query struct {
	Name  string    `toml:"name" yaml:"name" json:"name,omitempty"`
	Kind  string    `toml:"kind" yaml:"kind" json:"kind"`
	Point []float64 `toml:"point" yaml:"point" json:"point"`
}

type Scene struct {
	Name       string     `toml:"name" yaml:"name" json:"name"`
	Mode       string     `toml:"mode" yaml:"mode" json:"mode"`
	Viewport   Viewport   `toml:"viewport" yaml:"viewport" json:"viewport"`
	Projection Projection `toml:"projection" yaml:"projection" json:"projection"`
	Camera     *Camera    `toml:"camera" yaml:"camera" json:"camera,omitempty"`
	Modelview  []Op       `toml:"modelview" yaml:"modelview" json:"modelview,omitempty"`
	Queries    []Query    `toml:"queries" yaml:"queries" json:"queries,omitempty"`
}

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", core.ErrUnknownFormat, path)
	}
}

func Load(path string) (*Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// Parse decodes and validates a scene. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Scene, error) {
	sc := &Scene{}
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(sc); err != nil {
			return nil, err
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF; treat it as an empty scene.
		if err := dec.Decode(sc); err != nil && len(bytes.TrimSpace(data)) > 0 {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownFormat, format)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func parseMode(s string) (math.DivideMode, error) {
	switch strings.ToLower(s) {
	case "", "strict":
		return math.DivideStrict, nil
	case "legacy":
		return math.DivideLegacy, nil
	default:
		return math.DivideStrict, fmt.Errorf("unknown mode %q", s)
	}
}

func checkLen(field string, v []float64, n int) error {
	if len(v) != n {
		return fmt.Errorf("%s: expected %d values, got %d", field, n, len(v))
	}
	return nil
}

// Validate checks the structure of the scene. Numeric problems such as a
// singular matrix or an empty viewport are reported when the scene is built
// or evaluated.
func (sc *Scene) Validate() error {
	if _, err := parseMode(sc.Mode); err != nil {
		return err
	}

	switch sc.Projection.Kind {
	case "", ProjectionIdentity, ProjectionOrthographic, ProjectionPerspective:
	case ProjectionMatrix:
		if err := checkLen("projection.matrix", sc.Projection.Matrix, 16); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", core.ErrInvalidProjection, sc.Projection.Kind)
	}

	if sc.Camera != nil {
		if err := checkLen("camera.position", sc.Camera.Position, 3); err != nil {
			return err
		}
		if sc.Camera.Rotation != nil {
			if err := checkLen("camera.rotation", sc.Camera.Rotation, 3); err != nil {
				return err
			}
		}
	}

	depth := 1
	for i, op := range sc.Modelview {
		field := fmt.Sprintf("modelview[%d]", i)
		var err error
		switch op.Op {
		case OpTranslate, OpScale, OpRotate:
			err = checkLen(field+".vector", op.Vector, 3)
		case OpMatrix:
			err = checkLen(field+".matrix", op.Matrix, 16)
		case OpPush:
			depth++
		case OpPop:
			if depth == 1 {
				err = fmt.Errorf("%s: %w", field, core.ErrStackUnderflow)
			}
			depth--
		case OpIdentity:
		default:
			err = fmt.Errorf("%s: unknown op %q", field, op.Op)
		}
		if err != nil {
			return err
		}
	}

	for i, q := range sc.Queries {
		field := fmt.Sprintf("queries[%d]", i)
		if q.Kind != QueryProject && q.Kind != QueryUnproject {
			return fmt.Errorf("%s: unknown kind %q", field, q.Kind)
		}
		if err := checkLen(field+".point", q.Point, 3); err != nil {
			return err
		}
	}
	return nil
}

func vec3(v []float64) math.Vec3 {
	return math.NewVec3(v[0], v[1], v[2])
}

func mat4(v []float64) math.Transform {
	var data [16]float64
	copy(data[:], v)
	return math.NewTransformFromColumnMajor(data)
}

// Build turns the scene into a view state: viewport, projection, the camera
// view as the base modelview, then every modelview op in order.
func (sc *Scene) Build() (*view.State, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	mode, _ := parseMode(sc.Mode)

	s := view.New(view.WithDivideMode(mode))
	vp := sc.Viewport
	s.SetViewport(vp.X, vp.Y, vp.Width, vp.Height)

	p := sc.Projection
	switch p.Kind {
	case "", ProjectionIdentity:
	case ProjectionOrthographic:
		bounds := math.Rect[float64]{Left: p.Left, Right: p.Right, Bottom: p.Bottom, Top: p.Top}
		if p.Left == p.Right {
			bounds = math.RectConvert[float64](s.Viewport())
		}
		if err := s.Orthographic(bounds, p.Near, p.Far); err != nil {
			return nil, fmt.Errorf("projection: %w", err)
		}
	case ProjectionPerspective:
		aspect := p.Aspect
		if aspect == 0 {
			aspect = s.Viewport().Aspect()
		}
		if err := s.Perspective(p.Fovy, aspect, p.Near, p.Far); err != nil {
			return nil, fmt.Errorf("projection: %w", err)
		}
	case ProjectionMatrix:
		s.SetProjection(mat4(p.Matrix))
	}

	if sc.Camera != nil {
		cam := components.NewCamera()
		cam.SetPosition(vec3(sc.Camera.Position))
		if sc.Camera.Rotation != nil {
			cam.SetEulerRotation(vec3(sc.Camera.Rotation))
		}
		v, err := cam.View()
		if err != nil {
			return nil, fmt.Errorf("camera: %w", err)
		}
		s.LoadMatrix(v)
	}

	for i, op := range sc.Modelview {
		var err error
		switch op.Op {
		case OpTranslate:
			s.Translate(vec3(op.Vector))
		case OpScale:
			err = s.Scale(vec3(op.Vector))
		case OpRotate:
			err = s.Rotate(vec3(op.Vector), op.Angle)
		case OpMatrix:
			s.Transform(mat4(op.Matrix))
		case OpPush:
			s.PushMatrix()
		case OpPop:
			err = s.PopMatrix()
		case OpIdentity:
			s.LoadIdentity()
		}
		if err != nil {
			return nil, fmt.Errorf("modelview[%d] %s: %w", i, op.Op, err)
		}
	}
	return s, nil
}
