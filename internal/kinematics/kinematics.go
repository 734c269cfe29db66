// Package kinematics holds the closed-form equations of projectile motion
// under constant gravity without drag.
package kinematics

import "math"

// Radians converts an angle in degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Decompose splits a launch speed and angle (degrees) into horizontal and
// vertical velocity components. Any angle is accepted.
func Decompose(speed, angleDeg float64) (vx, vy float64) {
	rad := Radians(angleDeg)
	return speed * math.Cos(rad), speed * math.Sin(rad)
}

// PositionAt returns the position at time t of a projectile launched from
// the origin with velocity (vx, vy).
func PositionAt(vx, vy, gravity, t float64) (x, y float64) {
	return vx * t, vy*t - 0.5*gravity*t*t
}

// TimeOfFlight is the time until a symmetric parabola returns to launch height.
func TimeOfFlight(vy, gravity float64) float64 {
	return 2 * vy / gravity
}

// PeakHeight is the apex height reached with vertical velocity vy.
func PeakHeight(vy, gravity float64) float64 {
	return vy * vy / (2 * gravity)
}

// IdealRange is the horizontal distance travelled on flat ground.
func IdealRange(speed, angleDeg, gravity float64) float64 {
	return speed * speed * math.Sin(2*Radians(angleDeg)) / gravity
}
