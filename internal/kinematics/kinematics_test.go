package kinematics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/motionlab/internal/trajectory"
)

func TestForwardTwoLinkPlanar(t *testing.T) {
	// Two unit links in x, both rotating about z.
	chain, err := NewChain([]Link{
		{Translation: trajectory.Vec3{}, Axis: trajectory.Vec3{Z: 1}},
		{Translation: trajectory.Vec3{X: 1}, Axis: trajectory.Vec3{Z: 1}},
	})
	require.NoError(t, err)

	// Straight out: tip transform places the second link at x=1.
	pose := chain.Forward([]float64{0, 0})
	assert.InDelta(t, 1.0, pose.Position.X, 1e-12)
	assert.InDelta(t, 0.0, pose.Position.Y, 1e-12)

	// First joint at 90 degrees folds the arm onto +y.
	pose = chain.Forward([]float64{math.Pi / 2, 0})
	assert.InDelta(t, 0.0, pose.Position.X, 1e-12)
	assert.InDelta(t, 1.0, pose.Position.Y, 1e-12)
}

func TestForwardMissingAnglesReadZero(t *testing.T) {
	chain, err := NewChain([]Link{
		{Translation: trajectory.Vec3{Z: 0.3}, Axis: trajectory.Vec3{Z: 1}},
		{Translation: trajectory.Vec3{Z: 0.4}, Axis: trajectory.Vec3{Y: 1}},
	})
	require.NoError(t, err)

	pose := chain.Forward(nil)
	assert.InDelta(t, 0.7, pose.Position.Z, 1e-12)
}

func TestNewChainRejectsZeroAxis(t *testing.T) {
	_, err := NewChain([]Link{{Axis: trajectory.Vec3{}}})
	assert.ErrorIs(t, err, ErrZeroAxis)
}

func TestForwardOrientationUnitNorm(t *testing.T) {
	chain, err := NewChain([]Link{
		{Axis: trajectory.Vec3{X: 1}},
		{Translation: trajectory.Vec3{X: 0.2}, Axis: trajectory.Vec3{Y: 1}},
		{Translation: trajectory.Vec3{Z: 0.1}, Axis: trajectory.Vec3{Z: 1}},
	})
	require.NoError(t, err)

	pose := chain.Forward([]float64{0.4, -1.2, 2.2})
	q := pose.Orientation
	n := math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	assert.InDelta(t, 1.0, n, 1e-12)
}
