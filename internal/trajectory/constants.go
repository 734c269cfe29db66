package trajectory

// Constants parameterise both integrators.
type Constants struct {
	AnalyticStep     float64 `json:"analytic_step" yaml:"analytic_step"`
	NumericStep      float64 `json:"numeric_step" yaml:"numeric_step"`
	AirDensity       float64 `json:"air_density" yaml:"air_density"`
	CrossSectionArea float64 `json:"cross_section_area" yaml:"cross_section_area"`
	SampleCap        int     `json:"sample_cap" yaml:"sample_cap"`
	// MinSpeed is the speed below which drag is treated as zero.
	MinSpeed float64 `json:"min_speed" yaml:"min_speed"`
}

// DefaultConstants returns sea-level air and the standard step sizes.
func DefaultConstants() Constants {
	return Constants{
		AnalyticStep:     0.02,
		NumericStep:      0.01,
		AirDensity:       1.225,
		CrossSectionArea: 0.01,
		SampleCap:        10000,
		MinSpeed:         1e-3,
	}
}

// StepFor returns the nominal sample interval for the given drag setting.
func (c Constants) StepFor(dragEnabled bool) float64 {
	if dragEnabled {
		return c.NumericStep
	}
	return c.AnalyticStep
}
