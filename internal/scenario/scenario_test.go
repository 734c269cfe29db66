package scenario

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"projectile-sim/internal/config"
	"projectile-sim/internal/trajectory"
)

type countingObserver struct{ runs, stepped int }

func (c *countingObserver) ObserveRun(p trajectory.Params, tr trajectory.Trajectory, m trajectory.Metrics) {
	c.runs++
	if tr.Mode == trajectory.ModeStepped {
		c.stepped++
	}
}

func newTestRunner() *Runner {
	r := NewRunner(config.Default())
	r.now = func() time.Time { return time.Unix(0, 0) }
	n := 0
	r.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return r
}

func TestLoadBatch(t *testing.T) {
	b, err := Load("testdata/batch.yaml", trajectory.DefaultParams())
	if err != nil {
		t.Fatalf("load batch: %v", err)
	}
	if b.Name != "example" || b.Description != "basic test batch" {
		t.Fatalf("unexpected header %q %q", b.Name, b.Description)
	}
	if len(b.Scenarios) != 4 {
		t.Fatalf("expected 4 scenarios, got %d", len(b.Scenarios))
	}
	lob, ok := b.Lookup("lob")
	if !ok {
		t.Fatalf("lob not found")
	}
	if lob.Params.LaunchAngleDeg != 60 || lob.Params.InitialSpeed != 50 || lob.Params.Gravity != 9.8 {
		t.Fatalf("defaults not overlaid: %+v", lob.Params)
	}
	mortar, _ := b.Lookup("mortar")
	if mortar.Kind != KindSingle || !mortar.Params.DragEnabled || mortar.Params.Mass != 1 {
		t.Fatalf("unexpected mortar scenario: %+v", mortar)
	}
	sweep, _ := b.Lookup("coarse-sweep")
	if sweep.Sweep == nil || sweep.Sweep.StepDeg != 15 {
		t.Fatalf("sweep bounds not parsed: %+v", sweep.Sweep)
	}
	if _, ok := b.Lookup("missing"); ok {
		t.Fatalf("unexpected lookup hit")
	}
}

func TestLoadBatchMissingFile(t *testing.T) {
	if _, err := Load("testdata/nope.yaml", trajectory.DefaultParams()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestAngleSweepPicksFortyFive(t *testing.T) {
	r := newTestRunner()
	res, err := r.AngleSweep(context.Background(), 50, config.Sweep{FromDeg: 15, ToDeg: 75, StepDeg: 5})
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(res.Rows) != 13 {
		t.Fatalf("expected 13 rows, got %d", len(res.Rows))
	}
	if res.Rows[0].AngleDeg != 15 || res.Rows[12].AngleDeg != 75 {
		t.Fatalf("unexpected angle bounds %v..%v", res.Rows[0].AngleDeg, res.Rows[12].AngleDeg)
	}
	if res.BestAngleDeg != 45 {
		t.Fatalf("best angle = %v, want 45", res.BestAngleDeg)
	}
	for _, row := range res.Rows {
		if row.Range > res.BestRange {
			t.Fatalf("row %v exceeds best range", row)
		}
	}
}

func TestAngleSweepRejectsBadStep(t *testing.T) {
	r := newTestRunner()
	_, err := r.AngleSweep(context.Background(), 50, config.Sweep{FromDeg: 15, ToDeg: 75})
	if !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestAngleSweepRejectsOversizedSweep(t *testing.T) {
	r := newTestRunner()
	obs := &countingObserver{}
	r.Observer = obs
	for _, sw := range []config.Sweep{
		{FromDeg: 0, ToDeg: 100, StepDeg: 0.001},
		{FromDeg: 0, ToDeg: 1e9, StepDeg: 1e-6},
		{FromDeg: math.Inf(-1), ToDeg: 45, StepDeg: 1},
	} {
		_, err := r.AngleSweep(context.Background(), 50, sw)
		if !errors.Is(err, ErrInvalidParams) {
			t.Fatalf("%+v: expected ErrInvalidParams, got %v", sw, err)
		}
	}
	if obs.runs != 0 {
		t.Fatalf("rejected sweeps integrated %d trajectories", obs.runs)
	}
	if n, err := r.ValidateSweep(config.Sweep{FromDeg: 0, ToDeg: 90, StepDeg: 0.01}); err != nil || n != 9001 {
		t.Fatalf("expected 9001 angles within the limit, got %d, %v", n, err)
	}
}

func TestAngleSweepStopsOnCancel(t *testing.T) {
	r := newTestRunner()
	obs := &countingObserver{}
	r.Observer = obs
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := r.AngleSweep(ctx, 50, config.Sweep{FromDeg: 0, ToDeg: 90, StepDeg: 0.01})
	if !errors.Is(err, context.Canceled) || res != nil {
		t.Fatalf("expected cancellation, got %v, %v", res, err)
	}
	if obs.runs != 0 {
		t.Fatalf("cancelled sweep integrated %d trajectories", obs.runs)
	}
}

func TestDragComparisonReducesRange(t *testing.T) {
	r := newTestRunner()
	obs := &countingObserver{}
	r.Observer = obs
	res, err := r.DragComparison(context.Background(), 50, 45)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if res.With.Range >= res.Without.Range {
		t.Fatalf("drag range %f not below %f", res.With.Range, res.Without.Range)
	}
	if res.RangeReductionPct == nil || *res.RangeReductionPct <= 0 || *res.RangeReductionPct >= 100 {
		t.Fatalf("unexpected reduction %v", res.RangeReductionPct)
	}
	if obs.runs != 2 || obs.stepped != 1 {
		t.Fatalf("observer saw %d runs, %d stepped", obs.runs, obs.stepped)
	}
}

func TestPlanetComparison(t *testing.T) {
	r := newTestRunner()
	res, err := r.PlanetComparison(context.Background(), 50, 45, config.DefaultPlanets())
	if err != nil {
		t.Fatalf("planets: %v", err)
	}
	names := []string{"Earth", "Moon", "Mars", "Jupiter", "Venus"}
	if len(res.Rows) != len(names) {
		t.Fatalf("expected %d rows, got %d", len(names), len(res.Rows))
	}
	for i, n := range names {
		if res.Rows[i].Planet != n {
			t.Fatalf("row %d = %s, want %s", i, res.Rows[i].Planet, n)
		}
	}
	for i := range res.Rows {
		for j := range res.Rows {
			if res.Rows[i].Gravity < res.Rows[j].Gravity && res.Rows[i].Range <= res.Rows[j].Range {
				t.Fatalf("%s should outrange %s", res.Rows[i].Planet, res.Rows[j].Planet)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	r := newTestRunner()
	base := trajectory.DefaultParams()
	cases := map[string]func(p *trajectory.Params){
		"zero speed":     func(p *trajectory.Params) { p.InitialSpeed = 0 },
		"nan angle":      func(p *trajectory.Params) { p.LaunchAngleDeg = math.NaN() },
		"zero gravity":   func(p *trajectory.Params) { p.Gravity = 0 },
		"negative drag":  func(p *trajectory.Params) { p.DragCoefficient = -1 },
		"zero mass":      func(p *trajectory.Params) { p.Mass = 0 },
		"endless flight": func(p *trajectory.Params) { p.InitialSpeed = 1e9 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := base
			mutate(&p)
			if err := r.Validate(p); !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
	if err := r.Validate(base); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
}

func TestRunUnknownKind(t *testing.T) {
	r := newTestRunner()
	_, err := r.Run(context.Background(), Scenario{Name: "x", Kind: "orbit", Params: trajectory.DefaultParams()})
	if err == nil || !strings.Contains(err.Error(), "unknown kind") {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}

func TestRunBatchBuiltIn(t *testing.T) {
	r := newTestRunner()
	b := BuiltIn(trajectory.DefaultParams())
	results, err := r.RunBatch(context.Background(), b)
	if err != nil {
		t.Fatalf("run batch: %v", err)
	}
	if len(results) != len(b.Scenarios) {
		t.Fatalf("expected %d results, got %d", len(b.Scenarios), len(results))
	}
	for i, res := range results {
		set := 0
		for _, ok := range []bool{res.Run != nil, res.Sweep != nil, res.Drag != nil, res.Planets != nil} {
			if ok {
				set++
			}
		}
		if set != 1 {
			t.Fatalf("result %d (%s) has %d payloads", i, res.Scenario, set)
		}
		if !res.Timestamp.Equal(time.Unix(0, 0)) {
			t.Fatalf("unexpected timestamp %v", res.Timestamp)
		}
	}
	if results[1].Run.Trajectory.Mode != trajectory.ModeStepped {
		t.Fatalf("expected drag launch to use the stepped integrator")
	}
}

func TestRunBatchFromFile(t *testing.T) {
	r := newTestRunner()
	b, err := Load("testdata/batch.yaml", r.Base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	results, err := r.RunBatch(context.Background(), b)
	if err != nil {
		t.Fatalf("run batch: %v", err)
	}
	sweep := results[2].Sweep
	if sweep == nil || len(sweep.Rows) != 3 || sweep.BestAngleDeg != 45 {
		t.Fatalf("unexpected sweep result %+v", sweep)
	}
	moons := results[3].Planets
	if moons == nil || len(moons.Rows) != 2 || moons.Rows[1].Planet != "Titan" {
		t.Fatalf("unexpected planets result %+v", moons)
	}
}

func TestRunBatchStopsOnCancel(t *testing.T) {
	r := newTestRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := r.RunBatch(ctx, BuiltIn(trajectory.DefaultParams()))
	if !errors.Is(err, context.Canceled) || len(results) != 0 {
		t.Fatalf("expected cancellation before any scenario, got %d results, err %v", len(results), err)
	}
}
