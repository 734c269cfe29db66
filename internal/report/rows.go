package report

import (
	"fmt"
	"time"

	"projectile-sim/internal/scenario"
	"projectile-sim/internal/trajectory"
)

// SampleRow is one trajectory sample flattened for export.
type SampleRow struct {
	RunID    string          `json:"run_id"`
	Scenario string          `json:"scenario,omitempty"`
	Mode     trajectory.Mode `json:"mode"`
	Index    int             `json:"index"`
	Time     float64         `json:"t"`
	X        float64         `json:"x"`
	Y        float64         `json:"y"`
	// Timestamp is the result time shifted by the sample's simulated time.
	Timestamp time.Time `json:"ts"`
}

// MetricRow is one integrated configuration flattened for export.
type MetricRow struct {
	ResultID   string          `json:"result_id"`
	Scenario   string          `json:"scenario,omitempty"`
	Kind       scenario.Kind   `json:"kind"`
	Label      string          `json:"label"`
	Speed      float64         `json:"speed"`
	AngleDeg   float64         `json:"angle_deg"`
	Gravity    float64         `json:"gravity"`
	Mode       trajectory.Mode `json:"mode"`
	Range      float64         `json:"range"`
	MaxHeight  float64         `json:"max_height"`
	FlightTime float64         `json:"flight_time"`
	Timestamp  time.Time       `json:"ts"`
}

// Samples flattens the trajectory of a single-run result. Other kinds carry
// no trajectories and yield nothing.
func Samples(res scenario.Result) []SampleRow {
	if res.Run == nil {
		return nil
	}
	tr := res.Run.Trajectory
	rows := make([]SampleRow, 0, tr.Len())
	for i, pt := range tr.Points {
		t := float64(i) * tr.Step
		rows = append(rows, SampleRow{
			RunID:     res.Run.ID,
			Scenario:  res.Scenario,
			Mode:      tr.Mode,
			Index:     i,
			Time:      t,
			X:         pt.X,
			Y:         pt.Y,
			Timestamp: res.Timestamp.Add(time.Duration(t * float64(time.Second))),
		})
	}
	return rows
}

// Metrics flattens every configuration of a result into one row each.
func Metrics(res scenario.Result) []MetricRow {
	var rows []MetricRow
	switch {
	case res.Run != nil:
		p := res.Run.Params
		rows = append(rows, MetricRow{
			ResultID: res.Run.ID, Label: "run", Speed: p.InitialSpeed, AngleDeg: p.LaunchAngleDeg,
			Gravity: p.Gravity, Mode: p.Mode(), Range: res.Run.Metrics.Range,
			MaxHeight: res.Run.Metrics.MaxHeight, FlightTime: res.Run.Metrics.FlightTime,
		})
	case res.Sweep != nil:
		for _, r := range res.Sweep.Rows {
			rows = append(rows, MetricRow{
				ResultID: res.Sweep.ID, Label: fmt.Sprintf("angle=%g", r.AngleDeg), Speed: res.Sweep.Speed,
				AngleDeg: r.AngleDeg, Mode: trajectory.ModeClosedForm, Range: r.Range, MaxHeight: r.MaxHeight,
			})
		}
	case res.Drag != nil:
		d := res.Drag
		rows = append(rows,
			MetricRow{ResultID: d.ID, Label: "without_drag", Speed: d.Speed, AngleDeg: d.AngleDeg, Mode: trajectory.ModeClosedForm,
				Range: d.Without.Range, MaxHeight: d.Without.MaxHeight, FlightTime: d.Without.FlightTime},
			MetricRow{ResultID: d.ID, Label: "with_drag", Speed: d.Speed, AngleDeg: d.AngleDeg, Mode: trajectory.ModeStepped,
				Range: d.With.Range, MaxHeight: d.With.MaxHeight, FlightTime: d.With.FlightTime},
		)
	case res.Planets != nil:
		for _, r := range res.Planets.Rows {
			rows = append(rows, MetricRow{
				ResultID: res.Planets.ID, Label: r.Planet, Speed: res.Planets.Speed, AngleDeg: res.Planets.AngleDeg,
				Gravity: r.Gravity, Mode: trajectory.ModeClosedForm, Range: r.Range, MaxHeight: r.MaxHeight,
			})
		}
	}
	for i := range rows {
		rows[i].Scenario = res.Scenario
		rows[i].Kind = res.Kind
		rows[i].Timestamp = res.Timestamp
	}
	return rows
}
