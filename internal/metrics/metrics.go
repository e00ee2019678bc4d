// Package metrics accumulates per-run statistics over sampled setpoints.
package metrics

import (
	"math"

	"github.com/san-kum/motionlab/internal/trajectory"
)

// PathLength sums the Cartesian distance between consecutive samples.
type PathLength struct {
	name    string
	prev    trajectory.Vec3
	hasPrev bool
	total   float64
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (p *PathLength) Name() string { return p.name }

func (p *PathLength) Observe(pt *trajectory.PointGoal, t float64) {
	pos := pt.Cartesian.Position
	if p.hasPrev {
		d := pos.Sub(p.prev)
		p.total += math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
	}
	p.prev = pos
	p.hasPrev = true
}

func (p *PathLength) Value() float64 { return p.total }

func (p *PathLength) Reset() {
	p.prev = trajectory.Vec3{}
	p.hasPrev = false
	p.total = 0
}

// PeakVelocity tracks the largest absolute joint velocity seen.
type PeakVelocity struct {
	name string
	peak float64
}

func NewPeakVelocity() *PeakVelocity {
	return &PeakVelocity{name: "peak_velocity"}
}

func (p *PeakVelocity) Name() string { return p.name }

func (p *PeakVelocity) Observe(pt *trajectory.PointGoal, t float64) {
	for _, group := range []trajectory.AxisVector{pt.Joint.Robot, pt.Joint.External} {
		for _, v := range group.Velocity {
			if a := math.Abs(v); a > p.peak {
				p.peak = a
			}
		}
	}
}

func (p *PeakVelocity) Value() float64 { return p.peak }

func (p *PeakVelocity) Reset() { p.peak = 0 }

// Smoothness reports the mean squared joint acceleration; lower is smoother.
type Smoothness struct {
	name    string
	sum     float64
	samples int
}

func NewSmoothness() *Smoothness {
	return &Smoothness{name: "smoothness"}
}

func (s *Smoothness) Name() string { return s.name }

func (s *Smoothness) Observe(pt *trajectory.PointGoal, t float64) {
	for _, a := range pt.Joint.Robot.Acceleration {
		s.sum += a * a
		s.samples++
	}
}

func (s *Smoothness) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.sum / float64(s.samples)
}

func (s *Smoothness) Reset() {
	s.sum = 0
	s.samples = 0
}
