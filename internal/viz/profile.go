// Package viz renders trajectory runs in the terminal.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/motionlab/internal/loop"
)

// PositionSeries extracts one joint's position over the run.
func PositionSeries(result *loop.Result, joint int) []float64 {
	series := make([]float64, 0, len(result.Points))
	for _, p := range result.Points {
		if joint < len(p.Joint.Robot.Position) {
			series = append(series, p.Joint.Robot.Position[joint])
		}
	}
	return series
}

// VelocitySeries extracts one joint's velocity over the run.
func VelocitySeries(result *loop.Result, joint int) []float64 {
	series := make([]float64, 0, len(result.Points))
	for _, p := range result.Points {
		if joint < len(p.Joint.Robot.Velocity) {
			series = append(series, p.Joint.Robot.Velocity[joint])
		}
	}
	return series
}

// Profile renders stacked position and velocity plots for one joint.
func Profile(result *loop.Result, joint, height int) string {
	pos := PositionSeries(result, joint)
	vel := VelocitySeries(result, joint)
	if len(pos) == 0 {
		return "no samples"
	}

	var b strings.Builder
	b.WriteString(asciigraph.Plot(pos,
		asciigraph.Height(height),
		asciigraph.Caption(fmt.Sprintf("joint %d position [rad]", joint)),
	))
	b.WriteString("\n\n")
	b.WriteString(asciigraph.Plot(vel,
		asciigraph.Height(height),
		asciigraph.Caption(fmt.Sprintf("joint %d velocity [rad/s]", joint)),
	))
	return b.String()
}
