package trajectory

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// softRamp blends between a captured start point and a static goal with a
// cosine-shaped factor. Over normalized t in [0, 1]:
//
//	ramp down:  0.5*cos(pi*t) + 0.5        1 -> 0
//	ramp in:    0.5*cos(pi*t + pi) + 0.5   0 -> 1
//
// Ramp down shapes the angular velocity while a session decelerates to rest;
// ramp in blends positions or velocities toward a static goal.
type softRamp struct {
	duration  float64
	operation Operation
	start     PointGoal
	goal      PointGoal
	angVel    Vec3
}

func rampDownFactor(t float64) float64 {
	return 0.5*math.Cos(math.Pi*t) + 0.5
}

func rampInFactor(t float64) float64 {
	return 0.5*math.Cos(math.Pi*t+math.Pi) + 0.5
}

// rampInRate is d/dt of rampInFactor over normalized time. Zero at both
// endpoints, so ramped-in values arrive at the goal at rest.
func rampInRate(t float64) float64 {
	return 0.5 * math.Pi * math.Sin(math.Pi*t)
}

func (r *softRamp) update(start, goal *PointGoal, cond Conditions) {
	r.duration = cond.Duration
	r.operation = cond.Operation
	r.start = *start.Clone()
	r.goal = *goal.Clone()
	r.angVel = start.Cartesian.AngularVelocity

	// Same shortest-path correction as slerp: blend toward the goal's
	// nearer representative on the unit sphere.
	if quatDot(r.start.Cartesian.Orientation, r.goal.Cartesian.Orientation) < 0 {
		r.goal.Cartesian.Orientation = quat.Scale(-1, r.goal.Cartesian.Orientation)
	}
}

// snap pulls the normalized time to exactly 1 within the last half sample, so
// the final cycle of a session emits the goal rather than a value one tick
// short of it.
func (r *softRamp) snap(sampleTime, t float64) float64 {
	if sampleTime > 0 && (1-t)*r.duration < sampleTime/2 {
		return 1
	}
	return t
}

// evaluateJoint writes the blended joint values at normalized t in [0, 1].
func (r *softRamp) evaluateJoint(out *JointState, sampleTime, t float64) {
	t = r.snap(sampleTime, t)

	switch r.operation {
	case OpRampInPosition:
		f := rampInFactor(t)
		rate := rampInRate(t) / r.duration
		blendGroup(&out.Robot, r.start.Joint.Robot, r.goal.Joint.Robot, f, rate, true)
		blendGroup(&out.External, r.start.Joint.External, r.goal.Joint.External, f, rate, true)
	case OpRampInVelocity:
		f := rampInFactor(t)
		blendGroup(&out.Robot, r.start.Joint.Robot, r.goal.Joint.Robot, f, 0, false)
		blendGroup(&out.External, r.start.Joint.External, r.goal.Joint.External, f, 0, false)
	}
}

// blendGroup blends one joint group. With position true the factor applies to
// positions and rate supplies the velocity companion; otherwise the factor
// applies to velocities and positions hold the start snapshot.
func blendGroup(out *AxisVector, start, goal AxisVector, f, rate float64, position bool) {
	n := len(out.Position)
	if len(out.Velocity) > n {
		n = len(out.Velocity)
	}
	for i := 0; i < n; i++ {
		if position {
			delta := at(goal.Position, i) - at(start.Position, i)
			setAt(out.Position, i, at(start.Position, i)+f*delta)
			setAt(out.Velocity, i, rate*delta)
		} else {
			setAt(out.Position, i, at(start.Position, i))
			setAt(out.Velocity, i, lerp(at(start.Velocity, i), at(goal.Velocity, i), f))
		}
		setAt(out.Acceleration, i, 0)
	}
}

// evaluateCartesian writes the blended Cartesian values at normalized t.
func (r *softRamp) evaluateCartesian(out *CartesianState, sampleTime, t float64) {
	t = r.snap(sampleTime, t)

	switch r.operation {
	case OpRampDown:
		// Angular velocity ramps 1 -> 0; the orientation advances by the
		// closed-form integral of the factor so evaluation stays a pure
		// function of t: int_0^t fd = t/2 + sin(pi*t)/(2*pi).
		fd := rampDownFactor(t)
		out.AngularVelocity = r.angVel.Scale(fd)
		progress := r.duration * (t/2 + math.Sin(math.Pi*t)/(2*math.Pi))
		theta := r.angVel.Scale(progress)
		rot := quat.Exp(quat.Number{Imag: theta.X / 2, Jmag: theta.Y / 2, Kmag: theta.Z / 2})
		out.Orientation = quatNormalize(quat.Mul(rot, r.start.Cartesian.Orientation))

	case OpRampInPosition:
		f := rampInFactor(t)
		rate := rampInRate(t) / r.duration
		delta := r.goal.Cartesian.Position.Sub(r.start.Cartesian.Position)
		out.Position = r.start.Cartesian.Position.Add(delta.Scale(f))
		out.Velocity = delta.Scale(rate)
		out.Acceleration = Vec3{}
		out.AngularVelocity = Vec3{}
		out.Orientation = quatNormalize(quat.Add(
			quat.Scale(1-f, r.start.Cartesian.Orientation),
			quat.Scale(f, r.goal.Cartesian.Orientation),
		))

	case OpRampInVelocity:
		f := rampInFactor(t)
		out.Position = r.start.Cartesian.Position
		out.Orientation = r.start.Cartesian.Orientation
		out.Acceleration = Vec3{}
		out.Velocity = r.start.Cartesian.Velocity.Add(
			r.goal.Cartesian.Velocity.Sub(r.start.Cartesian.Velocity).Scale(f))
		out.AngularVelocity = r.start.Cartesian.AngularVelocity.Add(
			r.goal.Cartesian.AngularVelocity.Sub(r.start.Cartesian.AngularVelocity).Scale(f))
	}
}
