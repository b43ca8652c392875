package scene

import (
	"context"
	"encoding/json"
	gomath "math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spaghettifunk/viewgeom/engine/containers"
	"github.com/spaghettifunk/viewgeom/engine/core"
	"github.com/spaghettifunk/viewgeom/engine/math"
)

type Result struct {
	Name   string    `json:"name,omitempty"`
	Kind   string    `json:"kind"`
	Input  math.Vec3 `json:"-"`
	Output math.Vec3 `json:"-"`
	Error  string    `json:"error,omitempty"`
}

// MarshalJSON writes points as arrays. Non-finite components (the legacy
// invalid-viewport sentinel) become null.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	return json.Marshal(struct {
		plain
		Input  []*float64 `json:"input"`
		Output []*float64 `json:"output,omitempty"`
	}{
		plain:  plain(r),
		Input:  jsonVec3(r.Input),
		Output: outputVec3(r),
	})
}

func outputVec3(r Result) []*float64 {
	if r.Error != "" {
		return nil
	}
	return jsonVec3(r.Output)
}

func jsonVec3(v math.Vec3) []*float64 {
	out := make([]*float64, 3)
	for i, c := range [3]float64{v.X, v.Y, v.Z} {
		if gomath.IsNaN(c) || gomath.IsInf(c, 0) {
			continue
		}
		out[i] = &c
	}
	return out
}

// Failed reports whether the query returned an error.
func (r Result) Failed() bool {
	return r.Error != ""
}

type Report struct {
	RunID   uuid.UUID     `json:"run_id"`
	Scene   string        `json:"scene"`
	Mode    string        `json:"mode"`
	Results []Result      `json:"results"`
	Failed  int           `json:"failed"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// Evaluator runs scenes and keeps timing metrics across runs. It is safe for
// concurrent use; each evaluation builds its own view state.
type Evaluator struct {
	mu      sync.Mutex
	clock   *core.Clock
	metrics *core.Metrics
	history *containers.RingQueue[*Report]
}

// HistorySize is how many reports an Evaluator remembers.
const HistorySize = 16

func NewEvaluator() *Evaluator {
	return &Evaluator{
		clock:   core.NewClock(),
		metrics: core.NewMetrics(),
		history: containers.NewRingQueue[*Report](HistorySize),
	}
}

func (e *Evaluator) Metrics() *core.Metrics {
	return e.metrics
}

// History returns the most recent reports, oldest first.
func (e *Evaluator) History() []*Report {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Items()
}

// Evaluate builds the scene and runs each query against it. Per-query
// failures are recorded in the report; build failures and cancellation are
// returned as errors.
func (e *Evaluator) Evaluate(ctx context.Context, sc *Scene) (*Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clock.Start()
	defer e.clock.Stop()

	s, err := sc.Build()
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:   uuid.New(),
		Scene:   sc.Name,
		Mode:    s.Mode().String(),
		Results: make([]Result, 0, len(sc.Queries)),
	}

	for _, q := range sc.Queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res := Result{Name: q.Name, Kind: q.Kind, Input: vec3(q.Point)}
		var out math.Vec3
		switch q.Kind {
		case QueryProject:
			out, err = s.ScreenFromWorld3(res.Input)
		case QueryUnproject:
			out, err = s.WorldFromScreen3(res.Input)
		}
		if err != nil {
			res.Error = err.Error()
			report.Failed++
		} else {
			res.Output = out
		}
		report.Results = append(report.Results, res)
	}

	e.clock.Update()
	report.Elapsed = e.clock.Elapsed()
	e.metrics.Record(report.Elapsed, report.Failed)
	e.history.Push(report)

	core.Logger().Debug("scene evaluated",
		"scene", report.Scene,
		"run", report.RunID,
		"queries", len(report.Results),
		"failed", report.Failed,
		"elapsed", report.Elapsed,
		"avg_ms", e.metrics.AverageMS(),
	)
	return report, nil
}

var defaultEvaluator = NewEvaluator()

// Evaluate runs sc with a package-level evaluator.
func Evaluate(ctx context.Context, sc *Scene) (*Report, error) {
	return defaultEvaluator.Evaluate(ctx, sc)
}
