// Package trajectory computes projectile flight paths and the metrics derived from them.
package trajectory

// Mode names the integration strategy that produced a trajectory.
type Mode string

const (
	ModeClosedForm Mode = "analytic"
	ModeStepped    Mode = "numerical"
)

// Params describes one launch. It is passed by value and never modified.
type Params struct {
	InitialSpeed    float64 `json:"initial_speed" yaml:"initial_speed"`
	LaunchAngleDeg  float64 `json:"launch_angle_deg" yaml:"launch_angle_deg"`
	Gravity         float64 `json:"gravity" yaml:"gravity"`
	DragEnabled     bool    `json:"drag_enabled" yaml:"drag_enabled"`
	DragCoefficient float64 `json:"drag_coefficient" yaml:"drag_coefficient"`
	Mass            float64 `json:"mass" yaml:"mass"`
}

// DefaultParams returns a 50 m/s launch at 45 degrees on Earth without drag.
func DefaultParams() Params {
	return Params{
		InitialSpeed:    50,
		LaunchAngleDeg:  45,
		Gravity:         9.8,
		DragEnabled:     false,
		DragCoefficient: 0.47,
		Mass:            1.0,
	}
}

// Mode reports which integrator the parameters select.
func (p Params) Mode() Mode {
	if p.DragEnabled {
		return ModeStepped
	}
	return ModeClosedForm
}

// Position is one sample in meters. Ground is y = 0, launch is the origin.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Trajectory is the time-ordered list of samples for one launch.
type Trajectory struct {
	Mode   Mode       `json:"mode"`
	Step   float64    `json:"step"`
	Points []Position `json:"points"`
	// Truncated is set when the stepped integrator stopped at the sample cap.
	Truncated bool `json:"truncated,omitempty"`
}

// Len returns the number of recorded samples.
func (t Trajectory) Len() int { return len(t.Points) }

// Last returns the final sample and false when the trajectory is empty.
func (t Trajectory) Last() (Position, bool) {
	if len(t.Points) == 0 {
		return Position{}, false
	}
	return t.Points[len(t.Points)-1], true
}

// Metrics are derived from a trajectory on demand.
type Metrics struct {
	MaxHeight  float64 `json:"max_height"`
	Range      float64 `json:"range"`
	FlightTime float64 `json:"flight_time"`
}
