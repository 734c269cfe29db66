package trajectory

// MaxHeight returns the highest y of the trajectory, or 0 when it is empty.
func MaxHeight(tr Trajectory) float64 {
	maxH := 0.0
	for _, pt := range tr.Points {
		if pt.Y > maxH {
			maxH = pt.Y
		}
	}
	return maxH
}

// Range returns the x of the last sample, or 0 when the trajectory is empty.
func Range(tr Trajectory) float64 {
	last, ok := tr.Last()
	if !ok {
		return 0
	}
	return last.X
}

// FlightTime approximates time aloft as sample count times the nominal step
// of the mode. It is not the exact elapsed simulated time.
func (c Constants) FlightTime(tr Trajectory, dragEnabled bool) float64 {
	return float64(len(tr.Points)) * c.StepFor(dragEnabled)
}

// FlightTime is Constants.FlightTime with DefaultConstants.
func FlightTime(tr Trajectory, dragEnabled bool) float64 {
	return DefaultConstants().FlightTime(tr, dragEnabled)
}

// Summarize derives all metrics, using the step recorded on the trajectory.
func Summarize(tr Trajectory) Metrics {
	return Metrics{
		MaxHeight:  MaxHeight(tr),
		Range:      Range(tr),
		FlightTime: float64(len(tr.Points)) * tr.Step,
	}
}
