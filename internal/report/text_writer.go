// TextWriter prints human-friendly, optionally colorized reports.

package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"projectile-sim/internal/scenario"
	"projectile-sim/internal/trajectory"
)

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorCyan   = "\x1b[36m"
	colorGray   = "\x1b[90m"
)

// TextOptions configures a TextWriter.
type TextOptions struct {
	Color        bool
	ShowData     bool
	CanvasWidth  int
	CanvasHeight int
}

// TextWriter renders results as tables and a text-art plot.
type TextWriter struct {
	out  io.Writer
	opts TextOptions
}

// NewTextWriter creates a TextWriter writing to out (os.Stdout when nil).
func NewTextWriter(out io.Writer, opts TextOptions) *TextWriter {
	if out == nil {
		out = os.Stdout
	}
	if opts.CanvasWidth <= 0 {
		opts.CanvasWidth = 80
	}
	if opts.CanvasHeight <= 0 {
		opts.CanvasHeight = 25
	}
	return &TextWriter{out: out, opts: opts}
}

func (w *TextWriter) paint(color, s string) string {
	if !w.opts.Color {
		return s
	}
	return color + s + colorReset
}

func rule(n int) string { return strings.Repeat("─", n) }

// Write renders any result kind.
func (w *TextWriter) Write(res scenario.Result) error {
	switch {
	case res.Run != nil:
		return w.WriteRun(res.Run)
	case res.Sweep != nil:
		return w.WriteSweep(res.Sweep)
	case res.Drag != nil:
		return w.WriteDrag(res.Drag)
	case res.Planets != nil:
		return w.WritePlanets(res.Planets)
	}
	return fmt.Errorf("result %q has no payload", res.Scenario)
}

// WriteBatch renders multiple results.
func (w *TextWriter) WriteBatch(results []scenario.Result) error {
	for _, r := range results {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteRun prints parameters, metrics and the plot, followed by the sample
// table when ShowData is set.
func (w *TextWriter) WriteRun(run *scenario.RunResult) error {
	p, m := run.Params, run.Metrics
	air := "OFF"
	if p.DragEnabled {
		air = "ON"
	}

	fmt.Fprintln(w.out, "\n╔════════════════════════════════════════╗")
	fmt.Fprintln(w.out, "║   PROJECTILE MOTION SIMULATOR          ║")
	fmt.Fprintln(w.out, "╚════════════════════════════════════════╝")
	fmt.Fprintln(w.out)
	fmt.Fprintln(w.out, w.paint(colorCyan, "📊 INPUT PARAMETERS:"))
	fmt.Fprintf(w.out, "├─ Initial Velocity: %g m/s\n", p.InitialSpeed)
	fmt.Fprintf(w.out, "├─ Launch Angle: %g°\n", p.LaunchAngleDeg)
	fmt.Fprintf(w.out, "├─ Gravity: %g m/s²\n", p.Gravity)
	fmt.Fprintf(w.out, "└─ Air Resistance: %s\n\n", air)

	fmt.Fprintln(w.out, w.paint(colorCyan, "📈 RESULTS:"))
	fmt.Fprintf(w.out, "├─ Maximum Height: %.2f m\n", m.MaxHeight)
	fmt.Fprintf(w.out, "├─ Range: %.2f m\n", m.Range)
	fmt.Fprintf(w.out, "├─ Flight Time: %.2f s\n", m.FlightTime)
	if !p.DragEnabled {
		// Symmetric flight lands at launch speed.
		fmt.Fprintf(w.out, "└─ Impact Velocity: %.2f m/s\n\n", p.InitialSpeed)
	} else {
		fmt.Fprintln(w.out, "└─ (Air resistance affects impact velocity)")
		if run.Trajectory.Truncated {
			fmt.Fprintln(w.out, w.paint(colorYellow, "   (stopped at the sample cap before landing)"))
		}
		fmt.Fprintln(w.out)
	}

	w.writePlot(run)
	if w.opts.ShowData {
		return w.WriteSamples(run)
	}
	return nil
}

func (w *TextWriter) writePlot(run *scenario.RunResult) {
	width, height := w.opts.CanvasWidth, w.opts.CanvasHeight
	fmt.Fprintln(w.out, w.paint(colorCyan, "🎯 TRAJECTORY VISUALIZATION:"))
	fmt.Fprintln(w.out)
	fmt.Fprintf(w.out, "  ┌%s┐\n", rule(width))
	for _, line := range Plot(run.Trajectory, width, height) {
		fmt.Fprintf(w.out, "  │%s│\n", line)
	}
	fmt.Fprintf(w.out, "  └%s┘\n", rule(width))
	fmt.Fprintln(w.out, "  S = Start, L = Landing, * = Trajectory")
	fmt.Fprintln(w.out)
	fmt.Fprintf(w.out, "  Scale: %.1f m horizontal, %.1f m vertical\n\n", run.Metrics.Range, run.Metrics.MaxHeight)
}

// WriteSamples prints roughly ten evenly spaced samples with their times.
func (w *TextWriter) WriteSamples(run *scenario.RunResult) error {
	tr := run.Trajectory
	fmt.Fprintln(w.out, w.paint(colorCyan, "📋 TRAJECTORY DATA (sample points):"))
	fmt.Fprintln(w.out, rule(50))
	tw := tabwriter.NewWriter(w.out, 10, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Time(s)\tX(m)\tY(m)\t\n")
	step := tr.Len() / 10
	if step == 0 {
		step = 1
	}
	for i := 0; i < tr.Len(); i += step {
		pt := tr.Points[i]
		fmt.Fprintf(tw, "%.2f\t%.2f\t%.2f\t\n", float64(i)*tr.Step, pt.X, pt.Y)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w.out, rule(50))
	fmt.Fprintln(w.out)
	return nil
}

// WriteSweep prints the angle comparison table and the optimal angle.
func (w *TextWriter) WriteSweep(res *scenario.SweepResult) error {
	fmt.Fprintln(w.out, w.paint(colorCyan, "\n═══ ANGLE OPTIMIZATION ═══"))
	fmt.Fprintf(w.out, "Launch speed %g m/s, no air resistance:\n\n", res.Speed)
	fmt.Fprintln(w.out, rule(60))
	tw := tabwriter.NewWriter(w.out, 15, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Angle\tRange(m)\tMax Height(m)\t\n")
	for _, row := range res.Rows {
		fmt.Fprintf(tw, "%g°\t%.2f\t%.2f\t\n", row.AngleDeg, row.Range, row.MaxHeight)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w.out, rule(60))
	fmt.Fprintf(w.out, "%s %g° with range: %.2f m\n\n", w.paint(colorGreen, "✨ Optimal angle:"), res.BestAngleDeg, res.BestRange)
	return nil
}

// WriteDrag prints both launches side by side and the range lost to drag.
func (w *TextWriter) WriteDrag(res *scenario.DragComparison) error {
	fmt.Fprintln(w.out, w.paint(colorCyan, "\n═══ AIR RESISTANCE COMPARISON ═══"))
	fmt.Fprintf(w.out, "Launch speed %g m/s at %g°\n\n", res.Speed, res.AngleDeg)
	fmt.Fprintln(w.out, rule(70))
	tw := tabwriter.NewWriter(w.out, 20, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\tWithout Air\tWith Air\t\n")
	fmt.Fprintf(tw, "Range (m):\t%.2f\t%.2f\t\n", res.Without.Range, res.With.Range)
	fmt.Fprintf(tw, "Max Height (m):\t%.2f\t%.2f\t\n", res.Without.MaxHeight, res.With.MaxHeight)
	fmt.Fprintf(tw, "Flight Time (s):\t%.2f\t%.2f\t\n", res.Without.FlightTime, res.With.FlightTime)
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w.out, rule(70))
	if res.RangeReductionPct == nil {
		fmt.Fprintf(w.out, "\n%s n/a (no range without drag)\n\n", w.paint(colorRed, "📉 Range reduction due to air resistance:"))
		return nil
	}
	fmt.Fprintf(w.out, "\n%s %.2f%%\n\n", w.paint(colorRed, "📉 Range reduction due to air resistance:"), *res.RangeReductionPct)
	return nil
}

// WritePlanets prints range and apex per planet.
func (w *TextWriter) WritePlanets(res *scenario.PlanetComparison) error {
	fmt.Fprintln(w.out, w.paint(colorCyan, "\n═══ PLANETARY COMPARISON ═══"))
	fmt.Fprintf(w.out, "Launch speed %g m/s at %g°\n\n", res.Speed, res.AngleDeg)
	fmt.Fprintln(w.out, rule(75))
	tw := tabwriter.NewWriter(w.out, 15, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Planet\tGravity(m/s²)\tRange(m)\tMax Height(m)\t\n")
	for _, row := range res.Rows {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t\n", row.Planet, row.Gravity, row.Range, row.MaxHeight)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w.out, w.paint(colorGray, rule(75)))
	fmt.Fprintln(w.out)
	return nil
}

// Summary returns a one-line description of metrics.
func Summary(m trajectory.Metrics) string {
	return fmt.Sprintf("range=%.2fm max_height=%.2fm flight_time=%.2fs", m.Range, m.MaxHeight, m.FlightTime)
}
