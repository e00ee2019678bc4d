package trajectory

import (
	"fmt"

	"gonum.org/v1/gonum/num/quat"
)

// Mode selects which representation of a PointGoal the interpolator consumes.
type Mode int

const (
	ModeJoint Mode = iota
	ModeCartesian
)

func (m Mode) String() string {
	switch m {
	case ModeJoint:
		return "joint"
	case ModeCartesian:
		return "cartesian"
	default:
		return "unknown"
	}
}

// ParseMode converts a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "joint", "":
		return ModeJoint, nil
	case "cartesian":
		return ModeCartesian, nil
	default:
		return ModeJoint, fmt.Errorf("%w: mode %q", ErrUnknownMode, s)
	}
}

// Operation selects which sub-components an interpolation session engages.
type Operation int

const (
	// OpNormal uses spline polynomials plus slerp for orientation.
	OpNormal Operation = iota
	// OpRampDown decelerates toward a fraction of the current velocity.
	OpRampDown
	// OpRampInPosition blends positions toward a static goal.
	OpRampInPosition
	// OpRampInVelocity blends velocities toward a static goal.
	OpRampInVelocity
)

func (o Operation) String() string {
	switch o {
	case OpNormal:
		return "normal"
	case OpRampDown:
		return "ramp_down"
	case OpRampInPosition:
		return "ramp_in_position"
	case OpRampInVelocity:
		return "ramp_in_velocity"
	default:
		return "unknown"
	}
}

// ParseOperation converts a config string to an Operation.
func ParseOperation(s string) (Operation, error) {
	switch s {
	case "normal", "":
		return OpNormal, nil
	case "ramp_down":
		return OpRampDown, nil
	case "ramp_in_position":
		return OpRampInPosition, nil
	case "ramp_in_velocity":
		return OpRampInVelocity, nil
	default:
		return OpNormal, fmt.Errorf("%w: operation %q", ErrUnknownOperation, s)
	}
}

// SplineMethod selects the polynomial degree used for OpNormal sessions.
type SplineMethod int

const (
	// SplineQuintic honors position, velocity and acceleration at both ends.
	SplineQuintic SplineMethod = iota
	// SplineCubic honors position and velocity at both ends.
	SplineCubic
	// SplineLinear honors positions only.
	SplineLinear
)

func (s SplineMethod) String() string {
	switch s {
	case SplineQuintic:
		return "quintic"
	case SplineCubic:
		return "cubic"
	case SplineLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// ParseSplineMethod converts a config string to a SplineMethod.
func ParseSplineMethod(s string) (SplineMethod, error) {
	switch s {
	case "quintic", "":
		return SplineQuintic, nil
	case "cubic":
		return SplineCubic, nil
	case "linear":
		return SplineLinear, nil
	default:
		return SplineQuintic, fmt.Errorf("%w: spline %q", ErrUnknownSpline, s)
	}
}

// Conditions specifies one interpolation session.
type Conditions struct {
	// Duration of the session in seconds. Must be positive.
	Duration float64
	// Mode selects joint-space or Cartesian-space interpolation.
	Mode Mode
	// Operation selects the transition behavior for the session.
	Operation Operation
	// RampDownFactor is the fraction in [0,1] of the current velocity to
	// decelerate toward when Operation is OpRampDown.
	RampDownFactor float64
	// Spline selects the polynomial shape for OpNormal sessions.
	Spline SplineMethod
}

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Scale returns f*v.
func (v Vec3) Scale(f float64) Vec3 { return Vec3{f * v.X, f * v.Y, f * v.Z} }

// AxisVector holds per-joint values for one ordered group of joints. Slices
// may be shorter than the joint count when a field is not used in context;
// missing entries read as zero.
type AxisVector struct {
	Position     []float64
	Velocity     []float64
	Acceleration []float64
}

func newAxisVector(n int) AxisVector {
	return AxisVector{
		Position:     make([]float64, n),
		Velocity:     make([]float64, n),
		Acceleration: make([]float64, n),
	}
}

func (a AxisVector) clone() AxisVector {
	c := AxisVector{}
	if a.Position != nil {
		c.Position = append([]float64(nil), a.Position...)
	}
	if a.Velocity != nil {
		c.Velocity = append([]float64(nil), a.Velocity...)
	}
	if a.Acceleration != nil {
		c.Acceleration = append([]float64(nil), a.Acceleration...)
	}
	return c
}

// JointState holds the robot's controlled joints and any auxiliary
// ("external") joints.
type JointState struct {
	Robot    AxisVector
	External AxisVector
}

// CartesianState holds a 3D pose plus its derivatives. Orientation is a unit
// quaternion.
type CartesianState struct {
	Position        Vec3
	Orientation     quat.Number
	Velocity        Vec3
	Acceleration    Vec3
	AngularVelocity Vec3
}

// PointGoal bundles the joint-space and Cartesian-space representations of
// one motion endpoint. Both halves are populated redundantly; Conditions.Mode
// records which one the interpolator consumes.
type PointGoal struct {
	Joint     JointState
	Cartesian CartesianState
}

// NewPointGoal returns a PointGoal with joint slices sized for the given
// robot and external joint counts and an identity orientation.
func NewPointGoal(robotJoints, externalJoints int) *PointGoal {
	return &PointGoal{
		Joint: JointState{
			Robot:    newAxisVector(robotJoints),
			External: newAxisVector(externalJoints),
		},
		Cartesian: CartesianState{Orientation: quat.Number{Real: 1}},
	}
}

// Clone returns a deep copy of p.
func (p *PointGoal) Clone() *PointGoal {
	return &PointGoal{
		Joint: JointState{
			Robot:    p.Joint.Robot.clone(),
			External: p.Joint.External.clone(),
		},
		Cartesian: p.Cartesian,
	}
}

// CopyFrom overwrites p with src without allocating, as far as p's slice
// capacities reach.
func (p *PointGoal) CopyFrom(src *PointGoal) {
	copy(p.Joint.Robot.Position, src.Joint.Robot.Position)
	copy(p.Joint.Robot.Velocity, src.Joint.Robot.Velocity)
	copy(p.Joint.Robot.Acceleration, src.Joint.Robot.Acceleration)
	copy(p.Joint.External.Position, src.Joint.External.Position)
	copy(p.Joint.External.Velocity, src.Joint.External.Velocity)
	copy(p.Joint.External.Acceleration, src.Joint.External.Acceleration)
	p.Cartesian = src.Cartesian
}
