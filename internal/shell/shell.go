// Package shell implements the interactive front ends: a line-oriented menu
// that works on any reader and a bubbletea TUI for terminals.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"projectile-sim/internal/logging"
	"projectile-sim/internal/report"
	"projectile-sim/internal/scenario"
)

const banner = `
    ╔═══════════════════════════════════════════════════════╗
    ║                                                       ║
    ║     PROJECTILE MOTION SIMULATOR                       ║
    ║     Physics Simulation & Analysis Tool                ║
    ║                                                       ║
    ╚═══════════════════════════════════════════════════════╝
`

// Shell drives the numbered menu over a reader and writer.
type Shell struct {
	runner *scenario.Runner
	in     *bufio.Scanner
	out    io.Writer
	opts   report.TextOptions
}

// New creates a Shell. opts.ShowData is decided per run by the user.
func New(runner *scenario.Runner, in io.Reader, out io.Writer, opts report.TextOptions) *Shell {
	return &Shell{runner: runner, in: bufio.NewScanner(in), out: out, opts: opts}
}

// Run loops over the menu until the user exits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	fmt.Fprint(s.out, banner)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.menu()
		line, err := s.readLine()
		if err != nil {
			return eofIsExit(err)
		}
		choice, _ := strconv.Atoi(strings.TrimSpace(line))
		switch choice {
		case 1:
			err = s.runSimulation(ctx)
		case 2:
			err = s.compareAngles(ctx)
		case 3:
			err = s.compareDrag(ctx)
		case 4:
			err = s.comparePlanets(ctx)
		case 5:
			fmt.Fprintln(s.out, "\n👋 Thanks for using the simulator! Goodbye!")
			fmt.Fprintln(s.out)
			return nil
		default:
			fmt.Fprintln(s.out, "\n❌ Invalid choice. Try again.")
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if !errors.Is(err, scenario.ErrInvalidParams) {
				return err
			}
			log.Debug("rejected parameters", "err", err)
			fmt.Fprintf(s.out, "\n❌ %v\n", err)
		}
		fmt.Fprint(s.out, "\nPress Enter to continue...")
		if _, err := s.readLine(); err != nil {
			return eofIsExit(err)
		}
	}
}

func eofIsExit(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Shell) menu() {
	fmt.Fprintln(s.out, "\n╔════════════════════════════════════════╗")
	fmt.Fprintln(s.out, "║          MENU OPTIONS                  ║")
	fmt.Fprintln(s.out, "╚════════════════════════════════════════╝")
	fmt.Fprintln(s.out, "1. Run new simulation")
	fmt.Fprintln(s.out, "2. Compare angles (optimize for range)")
	fmt.Fprintln(s.out, "3. Compare with/without air resistance")
	fmt.Fprintln(s.out, "4. Test different planets")
	fmt.Fprintln(s.out, "5. Exit")
	fmt.Fprint(s.out, "\nEnter choice: ")
}

func (s *Shell) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

// readFloat prompts until a number is entered.
func (s *Shell) readFloat(prompt string) (float64, error) {
	for {
		fmt.Fprint(s.out, prompt)
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(s.out, "❌ Please enter a number.")
	}
}

// readYesNo prompts until 1 or 0 is entered.
func (s *Shell) readYesNo(prompt string) (bool, error) {
	for {
		fmt.Fprint(s.out, prompt)
		line, err := s.readLine()
		if err != nil {
			return false, err
		}
		switch strings.TrimSpace(line) {
		case "1":
			return true, nil
		case "0":
			return false, nil
		}
		fmt.Fprintln(s.out, "❌ Please enter 1 or 0.")
	}
}

func (s *Shell) runSimulation(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n═══ NEW SIMULATION ═══")
	speed, err := s.readFloat("Enter initial velocity (m/s): ")
	if err != nil {
		return err
	}
	angle, err := s.readFloat("Enter launch angle (0-90 degrees): ")
	if err != nil {
		return err
	}
	drag, err := s.readYesNo("Include air resistance? (1=Yes, 0=No): ")
	if err != nil {
		return err
	}
	res, err := runSingle(ctx, s.runner, s.out, s.opts, speed, angle, drag, false)
	if err != nil {
		return err
	}
	showData, err := s.readYesNo("Show detailed trajectory data? (1=Yes, 0=No): ")
	if err != nil || !showData {
		return err
	}
	fmt.Fprintln(s.out)
	return report.NewTextWriter(s.out, s.opts).WriteSamples(res)
}

func (s *Shell) compareAngles(ctx context.Context) error {
	speed, err := s.readFloat("\nEnter velocity (m/s): ")
	if err != nil {
		return err
	}
	return runSweep(ctx, s.runner, s.out, s.opts, speed)
}

func (s *Shell) readSpeedAngle() (float64, float64, error) {
	speed, err := s.readFloat("\nEnter velocity (m/s): ")
	if err != nil {
		return 0, 0, err
	}
	angle, err := s.readFloat("Enter angle (degrees): ")
	if err != nil {
		return 0, 0, err
	}
	return speed, angle, nil
}

func (s *Shell) compareDrag(ctx context.Context) error {
	speed, angle, err := s.readSpeedAngle()
	if err != nil {
		return err
	}
	return runDrag(ctx, s.runner, s.out, s.opts, speed, angle)
}

func (s *Shell) comparePlanets(ctx context.Context) error {
	speed, angle, err := s.readSpeedAngle()
	if err != nil {
		return err
	}
	return runPlanets(ctx, s.runner, s.out, s.opts, speed, angle)
}

// The run helpers are shared by the line menu and the TUI.

func runSingle(ctx context.Context, r *scenario.Runner, out io.Writer, opts report.TextOptions, speed, angle float64, drag, showData bool) (*scenario.RunResult, error) {
	p := r.Base
	p.InitialSpeed = speed
	p.LaunchAngleDeg = angle
	p.DragEnabled = drag
	res, err := r.Single(ctx, p)
	if err != nil {
		return nil, err
	}
	opts.ShowData = showData
	return res, report.NewTextWriter(out, opts).WriteRun(res)
}

func runSweep(ctx context.Context, r *scenario.Runner, out io.Writer, opts report.TextOptions, speed float64) error {
	res, err := r.AngleSweep(ctx, speed, r.Sweep)
	if err != nil {
		return err
	}
	return report.NewTextWriter(out, opts).WriteSweep(res)
}

func runDrag(ctx context.Context, r *scenario.Runner, out io.Writer, opts report.TextOptions, speed, angle float64) error {
	res, err := r.DragComparison(ctx, speed, angle)
	if err != nil {
		return err
	}
	return report.NewTextWriter(out, opts).WriteDrag(res)
}

func runPlanets(ctx context.Context, r *scenario.Runner, out io.Writer, opts report.TextOptions, speed, angle float64) error {
	res, err := r.PlanetComparison(ctx, speed, angle, r.Planets)
	if err != nil {
		return err
	}
	return report.NewTextWriter(out, opts).WritePlanets(res)
}
