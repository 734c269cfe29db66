package report

import "projectile-sim/internal/trajectory"

// Plot draws a trajectory on a width×height character grid. The bottom row is
// the ground, '*' marks samples, 'S' the launch and 'L' the landing column.
// Axes are scaled so the range spans the width and the apex spans the height
// above ground.
func Plot(tr trajectory.Trajectory, width, height int) []string {
	if width < 2 {
		width = 2
	}
	if height < 3 {
		height = 3
	}
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}
	for j := range grid[height-1] {
		grid[height-1][j] = '─'
	}

	maxX := trajectory.Range(tr)
	maxY := trajectory.MaxHeight(tr)
	col := func(x float64) int {
		if maxX <= 0 {
			return 0
		}
		return int(x / maxX * float64(width-1))
	}
	row := func(y float64) int {
		if maxY <= 0 {
			return height - 2
		}
		return height - 2 - int(y/maxY*float64(height-2))
	}

	for _, pt := range tr.Points {
		x, y := col(pt.X), row(pt.Y)
		if x >= 0 && x < width && y >= 0 && y < height-1 {
			grid[y][x] = '*'
		}
	}

	grid[height-2][0] = 'S'
	if tr.Len() > 0 {
		if end := col(maxX); end > 0 && end < width {
			grid[height-2][end] = 'L'
		}
	}

	lines := make([]string, height)
	for i, r := range grid {
		lines[i] = string(r)
	}
	return lines
}
