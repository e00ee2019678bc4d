package trajectory

import "fmt"

// maxAxes is the number of polynomial slots: six robot plus six external
// joints. Cartesian x/y/z reuse the first three robot slots.
const maxAxes = 12

// cartesianAxes is how many slots a Cartesian session occupies before the
// external-joint offset.
const cartesianAxes = 3

// Interpolator produces dense intermediate states between a start and goal
// point. Update replaces the whole active session and performs all solving;
// Evaluate samples the session and is allocation-free. An Interpolator is not
// safe for concurrent use; the owning control loop serializes calls.
type Interpolator struct {
	cond     Conditions
	polys    [maxAxes]axisPolynomial
	offset   int
	robot    int
	external int
	slerp    orientSlerp
	ramp     softRamp
}

// New returns an Interpolator with no active session. Update must be called
// before Evaluate.
func New() *Interpolator {
	return &Interpolator{}
}

// Update starts a new interpolation session from start to goal under the
// given conditions, solving every engaged boundary-value problem up front.
// The previous session is discarded wholesale.
func (ip *Interpolator) Update(start, goal *PointGoal, cond Conditions) error {
	if cond.Duration <= 0 {
		return fmt.Errorf("%w: got %g s", ErrInvalidDuration, cond.Duration)
	}
	cond.RampDownFactor = clamp(cond.RampDownFactor, 0, 1)

	robot := len(start.Joint.Robot.Position)
	external := len(start.Joint.External.Position)

	offset := robot
	if cond.Mode == ModeCartesian {
		offset = cartesianAxes
	}
	if offset+external > maxAxes || robot > maxAxes {
		return fmt.Errorf("%w: %d robot + %d external joints", ErrTooManyAxes, robot, external)
	}

	switch cond.Operation {
	case OpNormal, OpRampDown:
		bc := newBoundary(cond)

		if cond.Mode == ModeJoint {
			for i := 0; i < robot; i++ {
				bc.setJoint(i, start.Joint.Robot, goal.Joint.Robot)
				if err := ip.polys[i].update(bc); err != nil {
					return err
				}
			}
		} else {
			for ax := axisX; ax <= axisZ; ax++ {
				bc.setCartesian(ax, start.Cartesian, goal.Cartesian)
				if err := ip.polys[ax].update(bc); err != nil {
					return err
				}
			}
			if cond.Operation == OpNormal {
				ip.slerp.update(start.Cartesian.Orientation, goal.Cartesian.Orientation)
			} else {
				ip.ramp.update(start, goal, cond)
			}
		}

		for i := 0; i < external; i++ {
			bc.setJoint(i, start.Joint.External, goal.Joint.External)
			if err := ip.polys[offset+i].update(bc); err != nil {
				return err
			}
		}

	case OpRampInPosition, OpRampInVelocity:
		ip.ramp.update(start, goal, cond)

	default:
		return fmt.Errorf("%w: %v", ErrUnknownOperation, cond.Operation)
	}

	ip.cond = cond
	ip.offset = offset
	ip.robot = robot
	ip.external = external
	return nil
}

// Evaluate samples the active session at time t seconds and writes the result
// into out. sampleTime is the caller's control-cycle period. t outside
// [0, Duration] is clamped: the sample clock may overrun the session by one
// cycle. Evaluating without an active session is a programming error and
// panics rather than emitting a silently wrong motion command.
func (ip *Interpolator) Evaluate(out *PointGoal, sampleTime, t float64) {
	duration := ip.cond.Duration
	if duration <= 0 {
		panic("trajectory: Evaluate called without an active session")
	}

	t = clamp(t, 0, duration)
	tau := t / duration

	switch ip.cond.Operation {
	case OpNormal, OpRampDown:
		if ip.cond.Mode == ModeJoint {
			for i := 0; i < ip.robot; i++ {
				pos, vel, acc := ip.polys[i].sample(t)
				setAt(out.Joint.Robot.Position, i, pos)
				setAt(out.Joint.Robot.Velocity, i, vel)
				setAt(out.Joint.Robot.Acceleration, i, acc)
			}
		} else {
			px, vx, ax := ip.polys[axisX].sample(t)
			py, vy, ay := ip.polys[axisY].sample(t)
			pz, vz, az := ip.polys[axisZ].sample(t)
			out.Cartesian.Position = Vec3{px, py, pz}
			out.Cartesian.Velocity = Vec3{vx, vy, vz}
			out.Cartesian.Acceleration = Vec3{ax, ay, az}
			if ip.cond.Operation == OpNormal {
				out.Cartesian.Orientation = ip.slerp.evaluate(tau)
			} else {
				ip.ramp.evaluateCartesian(&out.Cartesian, sampleTime, tau)
			}
		}
		for i := 0; i < ip.external; i++ {
			pos, vel, acc := ip.polys[ip.offset+i].sample(t)
			setAt(out.Joint.External.Position, i, pos)
			setAt(out.Joint.External.Velocity, i, vel)
			setAt(out.Joint.External.Acceleration, i, acc)
		}

	case OpRampInPosition, OpRampInVelocity:
		ip.ramp.evaluateJoint(&out.Joint, sampleTime, tau)
		ip.ramp.evaluateCartesian(&out.Cartesian, sampleTime, tau)
	}
}

// Duration returns the active session's duration in seconds. The caller uses
// it to decide when to request the next goal.
func (ip *Interpolator) Duration() float64 {
	return ip.cond.Duration
}
