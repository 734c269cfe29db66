package scenario

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"projectile-sim/internal/config"
	"projectile-sim/internal/kinematics"
	"projectile-sim/internal/logging"
	"projectile-sim/internal/trajectory"
)

// ErrInvalidParams is wrapped by every caller-side validation failure.
var ErrInvalidParams = errors.New("invalid simulation parameters")

// maxAnalyticSamples bounds the closed-form sample count accepted from callers.
const maxAnalyticSamples = 1_000_000

// maxSweepAngles bounds the number of launch angles in one sweep.
const maxSweepAngles = 10_000

// Observer is notified after every integration.
type Observer interface {
	ObserveRun(p trajectory.Params, tr trajectory.Trajectory, m trajectory.Metrics)
}

// RunResult is one integrated launch.
type RunResult struct {
	ID         string                `json:"id"`
	Params     trajectory.Params     `json:"params"`
	Trajectory trajectory.Trajectory `json:"trajectory"`
	Metrics    trajectory.Metrics    `json:"metrics"`
}

// SweepRow is one launch angle of an angle sweep.
type SweepRow struct {
	AngleDeg  float64 `json:"angle_deg"`
	Range     float64 `json:"range"`
	MaxHeight float64 `json:"max_height"`
}

// SweepResult lists ranges per angle and the angle with the longest range.
type SweepResult struct {
	ID           string     `json:"id"`
	Speed        float64    `json:"speed"`
	Rows         []SweepRow `json:"rows"`
	BestAngleDeg float64    `json:"best_angle_deg"`
	BestRange    float64    `json:"best_range"`
}

// DragComparison holds the same launch without and with air resistance.
type DragComparison struct {
	ID       string             `json:"id"`
	Speed    float64            `json:"speed"`
	AngleDeg float64            `json:"angle_deg"`
	Without  trajectory.Metrics `json:"without"`
	With     trajectory.Metrics `json:"with"`
	// RangeReductionPct is nil when the drag-free range is zero.
	RangeReductionPct *float64 `json:"range_reduction_pct,omitempty"`
}

// PlanetRow is one body of a planetary comparison.
type PlanetRow struct {
	Planet    string  `json:"planet"`
	Gravity   float64 `json:"gravity"`
	Range     float64 `json:"range"`
	MaxHeight float64 `json:"max_height"`
}

// PlanetComparison lists one launch under several gravities.
type PlanetComparison struct {
	ID       string      `json:"id"`
	Speed    float64     `json:"speed"`
	AngleDeg float64     `json:"angle_deg"`
	Rows     []PlanetRow `json:"rows"`
}

// Result wraps the outcome of any scenario kind. Exactly one payload is set.
type Result struct {
	Kind      Kind              `json:"kind"`
	Scenario  string            `json:"scenario,omitempty"`
	Timestamp time.Time         `json:"ts"`
	Run       *RunResult        `json:"run,omitempty"`
	Sweep     *SweepResult      `json:"sweep,omitempty"`
	Drag      *DragComparison   `json:"drag,omitempty"`
	Planets   *PlanetComparison `json:"planets,omitempty"`
}

// Runner evaluates scenarios sequentially, one integration per configuration.
type Runner struct {
	Constants trajectory.Constants
	Base      trajectory.Params
	Sweep     config.Sweep
	Planets   []config.Planet
	Observer  Observer

	now   func() time.Time
	newID func() string
}

// NewRunner builds a runner from configuration.
func NewRunner(cfg *config.SimulationConfig) *Runner {
	return &Runner{
		Constants: cfg.Constants,
		Base:      cfg.Defaults,
		Sweep:     cfg.Sweep,
		Planets:   cfg.Planets,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// Validate rejects parameters the integrators would turn into degenerate or
// unbounded runs. The integrators themselves accept anything.
func (r *Runner) Validate(p trajectory.Params) error {
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
	switch {
	case !finite(p.InitialSpeed) || p.InitialSpeed <= 0:
		return fmt.Errorf("%w: initial speed must be a positive number, got %v", ErrInvalidParams, p.InitialSpeed)
	case !finite(p.LaunchAngleDeg):
		return fmt.Errorf("%w: launch angle must be a number, got %v", ErrInvalidParams, p.LaunchAngleDeg)
	case !finite(p.Gravity) || p.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be a positive number, got %v", ErrInvalidParams, p.Gravity)
	case !finite(p.DragCoefficient) || p.DragCoefficient < 0:
		return fmt.Errorf("%w: drag coefficient must be non-negative, got %v", ErrInvalidParams, p.DragCoefficient)
	case !finite(p.Mass) || p.Mass <= 0:
		return fmt.Errorf("%w: mass must be a positive number, got %v", ErrInvalidParams, p.Mass)
	}
	if !p.DragEnabled {
		_, vy := kinematics.Decompose(p.InitialSpeed, p.LaunchAngleDeg)
		if n := kinematics.TimeOfFlight(vy, p.Gravity) / r.Constants.AnalyticStep; n > maxAnalyticSamples {
			return fmt.Errorf("%w: flight would need %.0f samples (limit %d)", ErrInvalidParams, n, maxAnalyticSamples)
		}
	}
	return nil
}

func (r *Runner) compute(ctx context.Context, p trajectory.Params) (trajectory.Trajectory, trajectory.Metrics) {
	tr := r.Constants.Compute(p)
	m := trajectory.Summarize(tr)
	log := logging.FromContext(ctx)
	log.Debug("trajectory computed", "mode", tr.Mode, "samples", tr.Len(), "range", m.Range, "max_height", m.MaxHeight)
	if tr.Truncated {
		log.Warn("trajectory stopped at sample cap", "cap", r.Constants.SampleCap, "speed", p.InitialSpeed, "angle", p.LaunchAngleDeg)
	}
	if r.Observer != nil {
		r.Observer.ObserveRun(p, tr, m)
	}
	return tr, m
}

// Single integrates one launch.
func (r *Runner) Single(ctx context.Context, p trajectory.Params) (*RunResult, error) {
	if err := r.Validate(p); err != nil {
		return nil, err
	}
	tr, m := r.compute(ctx, p)
	return &RunResult{ID: r.newID(), Params: p, Trajectory: tr, Metrics: m}, nil
}

// ValidateSweep rejects sweeps with a non-positive step, non-finite bounds or
// more than maxSweepAngles angles, and returns the number of angles.
func (r *Runner) ValidateSweep(sweep config.Sweep) (int, error) {
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
	if !finite(sweep.StepDeg) || sweep.StepDeg <= 0 {
		return 0, fmt.Errorf("%w: sweep step must be positive, got %v", ErrInvalidParams, sweep.StepDeg)
	}
	if !finite(sweep.FromDeg) || !finite(sweep.ToDeg) {
		return 0, fmt.Errorf("%w: sweep bounds must be numbers, got %v..%v", ErrInvalidParams, sweep.FromDeg, sweep.ToDeg)
	}
	count := math.Floor((sweep.ToDeg-sweep.FromDeg)/sweep.StepDeg+1e-9) + 1
	if count > maxSweepAngles {
		return 0, fmt.Errorf("%w: sweep would need %.0f angles (limit %d)", ErrInvalidParams, count, maxSweepAngles)
	}
	if count < 0 {
		count = 0
	}
	return int(count), nil
}

// AngleSweep launches at speed for every angle of sweep, without drag. The
// first angle with the strictly longest range wins.
func (r *Runner) AngleSweep(ctx context.Context, speed float64, sweep config.Sweep) (*SweepResult, error) {
	n, err := r.ValidateSweep(sweep)
	if err != nil {
		return nil, err
	}
	res := &SweepResult{ID: r.newID(), Speed: speed}
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Base
		p.InitialSpeed = speed
		p.LaunchAngleDeg = sweep.FromDeg + float64(i)*sweep.StepDeg
		p.DragEnabled = false
		if err := r.Validate(p); err != nil {
			return nil, err
		}
		_, m := r.compute(ctx, p)
		if m.Range > res.BestRange {
			res.BestRange = m.Range
			res.BestAngleDeg = p.LaunchAngleDeg
		}
		res.Rows = append(res.Rows, SweepRow{AngleDeg: p.LaunchAngleDeg, Range: m.Range, MaxHeight: m.MaxHeight})
	}
	return res, nil
}

// DragComparison runs the same launch without and with air resistance.
func (r *Runner) DragComparison(ctx context.Context, speed, angleDeg float64) (*DragComparison, error) {
	p := r.Base
	p.InitialSpeed = speed
	p.LaunchAngleDeg = angleDeg
	p.DragEnabled = false
	if err := r.Validate(p); err != nil {
		return nil, err
	}
	_, without := r.compute(ctx, p)

	p.DragEnabled = true
	_, with := r.compute(ctx, p)

	res := &DragComparison{ID: r.newID(), Speed: speed, AngleDeg: angleDeg, Without: without, With: with}
	if pct := (without.Range - with.Range) / without.Range * 100; !math.IsNaN(pct) && !math.IsInf(pct, 0) {
		res.RangeReductionPct = &pct
	}
	return res, nil
}

// PlanetComparison runs the same drag-free launch under each planet's gravity.
func (r *Runner) PlanetComparison(ctx context.Context, speed, angleDeg float64, planets []config.Planet) (*PlanetComparison, error) {
	res := &PlanetComparison{ID: r.newID(), Speed: speed, AngleDeg: angleDeg}
	for _, pl := range planets {
		p := r.Base
		p.InitialSpeed = speed
		p.LaunchAngleDeg = angleDeg
		p.Gravity = pl.Gravity
		p.DragEnabled = false
		if err := r.Validate(p); err != nil {
			return nil, fmt.Errorf("planet %s: %w", pl.Name, err)
		}
		_, m := r.compute(ctx, p)
		res.Rows = append(res.Rows, PlanetRow{Planet: pl.Name, Gravity: pl.Gravity, Range: m.Range, MaxHeight: m.MaxHeight})
	}
	return res, nil
}

// Run evaluates one scenario and wraps the outcome.
func (r *Runner) Run(ctx context.Context, s Scenario) (Result, error) {
	res := Result{Kind: s.Kind, Scenario: s.Name, Timestamp: r.now().UTC()}
	var err error
	switch s.Kind {
	case KindSingle, "":
		res.Kind = KindSingle
		res.Run, err = r.Single(ctx, s.Params)
	case KindSweep:
		sweep := r.Sweep
		if s.Sweep != nil {
			sweep = *s.Sweep
		}
		res.Sweep, err = r.AngleSweep(ctx, s.Params.InitialSpeed, sweep)
	case KindDrag:
		res.Drag, err = r.DragComparison(ctx, s.Params.InitialSpeed, s.Params.LaunchAngleDeg)
	case KindPlanets:
		planets := r.Planets
		if len(s.Planets) > 0 {
			planets = s.Planets
		}
		res.Planets, err = r.PlanetComparison(ctx, s.Params.InitialSpeed, s.Params.LaunchAngleDeg, planets)
	default:
		return Result{}, fmt.Errorf("scenario %q: unknown kind %q", s.Name, s.Kind)
	}
	if err != nil {
		return Result{}, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return res, nil
}

// RunBatch evaluates every scenario in order and stops at the first error.
func (r *Runner) RunBatch(ctx context.Context, b *Batch) ([]Result, error) {
	log := logging.FromContext(ctx)
	results := make([]Result, 0, len(b.Scenarios))
	for _, s := range b.Scenarios {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := r.Run(ctx, s)
		if err != nil {
			return results, err
		}
		log.Info("scenario finished", "name", s.Name, "kind", res.Kind)
		results = append(results, res)
	}
	return results, nil
}
