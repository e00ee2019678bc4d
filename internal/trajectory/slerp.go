package trajectory

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// dotThreshold is the |q0·q1| above which the quaternions are too close for
// the trigonometric form and evaluation degrades to normalized lerp.
const dotThreshold = 0.9995

// orientSlerp interpolates rotation between two unit quaternions with
// uniform angular speed:
//
//	Slerp(q0, q1; t) = [sin((1-t)*omega)/sin(omega)]*q0 + [sin(t*omega)/sin(omega)]*q1
//
// with cos(omega) = q0·q1 and normalized t in [0, 1].
type orientSlerp struct {
	q0, q1 quat.Number
	omega  float64
	linear bool
}

// update fixes the session's quaternion pair and angle. When the dot product
// is negative the goal is negated first: q and -q are the same rotation, but
// without the sign flip slerp takes the long way around.
func (s *orientSlerp) update(start, goal quat.Number) {
	dot := quatDot(start, goal)
	if dot < 0 {
		goal = quat.Scale(-1, goal)
		dot = -dot
	}

	s.q0 = start
	s.q1 = goal
	s.linear = dot > dotThreshold
	if s.linear {
		s.omega = 0
	} else {
		s.omega = math.Acos(clamp(dot, -1, 1))
	}
}

// evaluate samples the interpolation at normalized t in [0, 1]. The result is
// renormalized so repeated evaluation cannot drift off the unit sphere.
func (s *orientSlerp) evaluate(t float64) quat.Number {
	var q quat.Number
	if s.linear {
		q = quat.Add(quat.Scale(1-t, s.q0), quat.Scale(t, s.q1))
	} else {
		sinOmega := math.Sin(s.omega)
		q = quat.Add(
			quat.Scale(math.Sin((1-t)*s.omega)/sinOmega, s.q0),
			quat.Scale(math.Sin(t*s.omega)/sinOmega, s.q1),
		)
	}
	return quatNormalize(q)
}
