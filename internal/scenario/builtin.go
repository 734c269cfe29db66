package scenario

import "projectile-sim/internal/trajectory"

// BuiltIn returns the predefined scenarios, starting from defaults.
func BuiltIn(defaults trajectory.Params) *Batch {
	withDrag := defaults
	withDrag.DragEnabled = true

	steep := defaults
	steep.LaunchAngleDeg = 70

	return &Batch{
		Name:        "built-in",
		Description: "Reference launches covering every scenario kind.",
		Scenarios: []Scenario{
			{
				Name:        "default-launch",
				Description: "Default launch on Earth without air resistance.",
				Kind:        KindSingle,
				Params:      defaults,
			},
			{
				Name:        "default-launch-drag",
				Description: "Default launch with quadratic air drag.",
				Kind:        KindSingle,
				Params:      withDrag,
			},
			{
				Name:        "angle-sweep",
				Description: "Range and apex for launch angles from 15 to 75 degrees.",
				Kind:        KindSweep,
				Params:      defaults,
			},
			{
				Name:        "drag-compare",
				Description: "Same launch with and without air resistance.",
				Kind:        KindDrag,
				Params:      defaults,
			},
			{
				Name:        "planets",
				Description: "Same launch under the gravity of five bodies.",
				Kind:        KindPlanets,
				Params:      defaults,
			},
			{
				Name:        "steep-planets",
				Description: "A steep 70 degree lob across the planets.",
				Kind:        KindPlanets,
				Params:      steep,
			},
		},
	}
}
