package trajectory

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"projectile-sim/internal/kinematics"
)

// Integrator turns launch parameters into a trajectory.
type Integrator interface {
	Integrate(p Params) Trajectory
}

// ClosedForm samples the analytic parabola. It ignores drag settings.
type ClosedForm struct {
	Step float64
}

// Integrate samples x = vx·t, y = vy·t − ½gt² from t = 0 up to the closed-form
// flight time and stops before the first sample below ground.
func (c ClosedForm) Integrate(p Params) Trajectory {
	vx, vy := kinematics.Decompose(p.InitialSpeed, p.LaunchAngleDeg)
	total := kinematics.TimeOfFlight(vy, p.Gravity)

	tr := Trajectory{Mode: ModeClosedForm, Step: c.Step}
	for t := 0.0; t <= total; t += c.Step {
		x, y := kinematics.PositionAt(vx, vy, p.Gravity, t)
		if y < 0 {
			break
		}
		tr.Points = append(tr.Points, Position{X: x, Y: y})
	}
	return tr
}

// SteppedIntegration advances position and velocity with a fixed step under
// gravity and quadratic drag.
type SteppedIntegration struct {
	Step             float64
	AirDensity       float64
	CrossSectionArea float64
	SampleCap        int
	MinSpeed         float64
}

// Integrate records the current position before every update and runs while
// the projectile is at or above ground. It stops silently at the sample cap.
func (s SteppedIntegration) Integrate(p Params) Trajectory {
	vx, vy := kinematics.Decompose(p.InitialSpeed, p.LaunchAngleDeg)
	vel := mgl64.Vec2{vx, vy}
	var pos mgl64.Vec2

	tr := Trajectory{Mode: ModeStepped, Step: s.Step}
	for pos.Y() >= 0 {
		tr.Points = append(tr.Points, Position{X: pos.X(), Y: pos.Y()})
		if s.SampleCap > 0 && len(tr.Points) >= s.SampleCap {
			tr.Truncated = true
			break
		}

		speed := math.Sqrt(vel[0]*vel[0] + vel[1]*vel[1])
		drag := 0.5 * s.AirDensity * p.DragCoefficient * s.CrossSectionArea * speed * speed

		var acc mgl64.Vec2
		if speed > s.MinSpeed {
			acc[0] = -(drag / p.Mass) * (vel[0] / speed)
			acc[1] = -(drag / p.Mass) * (vel[1] / speed)
		}

		vel[0] += acc[0] * s.Step
		vel[1] += (acc[1] - p.Gravity) * s.Step
		pos = pos.Add(vel.Mul(s.Step))
	}
	return tr
}

// For selects the integrator for p: closed form without drag, stepped with it.
func (c Constants) For(p Params) Integrator {
	if p.DragEnabled {
		return SteppedIntegration{
			Step:             c.NumericStep,
			AirDensity:       c.AirDensity,
			CrossSectionArea: c.CrossSectionArea,
			SampleCap:        c.SampleCap,
			MinSpeed:         c.MinSpeed,
		}
	}
	return ClosedForm{Step: c.AnalyticStep}
}

// Compute integrates p with these constants.
func (c Constants) Compute(p Params) Trajectory {
	return c.For(p).Integrate(p)
}

// Compute integrates p with DefaultConstants.
func Compute(p Params) Trajectory {
	return DefaultConstants().Compute(p)
}
