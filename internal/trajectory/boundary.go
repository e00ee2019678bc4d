package trajectory

// axis identifies a Cartesian coordinate slot in the polynomial array.
type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

// boundary holds the six boundary values for one scalar axis, extracted from
// a start/goal pair under the session conditions.
type boundary struct {
	duration float64

	startPos float64
	startVel float64
	startAcc float64
	goalPos  float64
	goalVel  float64
	goalAcc  float64

	spline     SplineMethod
	rampDown   bool
	rampFactor float64
}

func newBoundary(cond Conditions) boundary {
	return boundary{
		duration:   cond.Duration,
		spline:     cond.Spline,
		rampDown:   cond.Operation == OpRampDown,
		rampFactor: cond.RampDownFactor,
	}
}

// setJoint extracts the boundary values for joint i of one joint group. For
// ramp-down sessions the goal velocity is a fraction of the start velocity
// and the goal acceleration is zero, so the spline decelerates smoothly
// instead of chasing the literal goal derivatives.
func (b *boundary) setJoint(i int, start, goal AxisVector) {
	b.startPos = at(start.Position, i)
	b.startVel = at(start.Velocity, i)
	b.startAcc = at(start.Acceleration, i)
	b.goalPos = at(goal.Position, i)
	if b.rampDown {
		b.goalVel = b.rampFactor * b.startVel
		b.goalAcc = 0
	} else {
		b.goalVel = at(goal.Velocity, i)
		b.goalAcc = at(goal.Acceleration, i)
	}
}

// setCartesian extracts the boundary values for one Cartesian coordinate.
func (b *boundary) setCartesian(ax axis, start, goal CartesianState) {
	b.startPos = component(start.Position, ax)
	b.startVel = component(start.Velocity, ax)
	b.startAcc = component(start.Acceleration, ax)
	b.goalPos = component(goal.Position, ax)
	if b.rampDown {
		b.goalVel = b.rampFactor * b.startVel
		b.goalAcc = 0
	} else {
		b.goalVel = component(goal.Velocity, ax)
		b.goalAcc = component(goal.Acceleration, ax)
	}
}

func component(v Vec3, ax axis) float64 {
	switch ax {
	case axisX:
		return v.X
	case axisY:
		return v.Y
	default:
		return v.Z
	}
}
