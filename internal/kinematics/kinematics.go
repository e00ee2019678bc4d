// Package kinematics evaluates a chained-transform forward-kinematic model.
// It exists so joint-space goals can carry a consistent Cartesian half; the
// trajectory core never calls into it.
package kinematics

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/num/quat"

	"github.com/san-kum/motionlab/internal/trajectory"
)

// ErrZeroAxis indicates a link whose rotation axis has no direction.
var ErrZeroAxis = errors.New("kinematics: link axis must be nonzero")

// Link is one rotary joint: a fixed translation from the previous frame
// followed by a rotation of the joint angle about Axis.
type Link struct {
	Translation trajectory.Vec3
	Axis        trajectory.Vec3
}

// Chain is an ordered sequence of links rooted at the origin.
type Chain struct {
	links []Link
}

func NewChain(links []Link) (*Chain, error) {
	normalized := make([]Link, len(links))
	for i, l := range links {
		n := math.Sqrt(l.Axis.X*l.Axis.X + l.Axis.Y*l.Axis.Y + l.Axis.Z*l.Axis.Z)
		if n == 0 {
			return nil, ErrZeroAxis
		}
		l.Axis = l.Axis.Scale(1 / n)
		normalized[i] = l
	}
	return &Chain{links: normalized}, nil
}

// Dof returns the number of joints in the chain.
func (c *Chain) Dof() int { return len(c.links) }

// Forward computes the pose of the chain tip for the given joint angles in
// radians. Missing angles read as zero.
func (c *Chain) Forward(jointPos []float64) trajectory.CartesianState {
	pos := trajectory.Vec3{}
	rot := quat.Number{Real: 1}

	for i, link := range c.links {
		pos = pos.Add(rotate(rot, link.Translation))
		angle := 0.0
		if i < len(jointPos) {
			angle = jointPos[i]
		}
		rot = quat.Mul(rot, axisAngle(link.Axis, angle))
	}

	n := quat.Abs(rot)
	if n > 0 {
		rot = quat.Scale(1/n, rot)
	}
	return trajectory.CartesianState{Position: pos, Orientation: rot}
}

func rotate(q quat.Number, v trajectory.Vec3) trajectory.Vec3 {
	r := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return trajectory.Vec3{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

func axisAngle(axis trajectory.Vec3, angle float64) quat.Number {
	s := math.Sin(angle / 2)
	return quat.Number{
		Real: math.Cos(angle / 2),
		Imag: s * axis.X,
		Jmag: s * axis.Y,
		Kmag: s * axis.Z,
	}
}
