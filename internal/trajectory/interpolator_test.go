package trajectory

import (
	"errors"
	"math"
	"testing"
)

func jointTestPair() (*PointGoal, *PointGoal) {
	start := NewPointGoal(6, 0)
	goal := NewPointGoal(6, 0)
	for i := 0; i < 6; i++ {
		start.Joint.Robot.Position[i] = 0.1 * float64(i)
		goal.Joint.Robot.Position[i] = 1.0 + 0.2*float64(i)
	}
	start.Joint.Robot.Velocity[2] = 0.5
	goal.Joint.Robot.Velocity[4] = -0.3
	return start, goal
}

func TestUpdateRejectsInvalidDuration(t *testing.T) {
	start, goal := jointTestPair()
	ip := New()

	for _, d := range []float64{0, -1} {
		err := ip.Update(start, goal, Conditions{Duration: d})
		if !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("duration %g: got %v, expected ErrInvalidDuration", d, err)
		}
	}
}

func TestUpdateRejectsTooManyAxes(t *testing.T) {
	start := NewPointGoal(6, 7)
	goal := NewPointGoal(6, 7)
	err := New().Update(start, goal, Conditions{Duration: 1})
	if !errors.Is(err, ErrTooManyAxes) {
		t.Errorf("got %v, expected ErrTooManyAxes", err)
	}
}

func TestDurationContract(t *testing.T) {
	start, goal := jointTestPair()
	ip := New()
	cond := Conditions{Duration: 0.272}

	if err := ip.Update(start, goal, cond); err != nil {
		t.Fatalf("update: %v", err)
	}
	out := NewPointGoal(6, 0)
	for i := 0; i < 5; i++ {
		ip.Evaluate(out, 0.004, float64(i)*0.05)
	}
	if ip.Duration() != cond.Duration {
		t.Errorf("duration changed by evaluation: %g", ip.Duration())
	}
}

func TestJointBoundaryReproduction(t *testing.T) {
	start, goal := jointTestPair()
	ip := New()
	cond := Conditions{Duration: 1.2}
	if err := ip.Update(start, goal, cond); err != nil {
		t.Fatalf("update: %v", err)
	}

	out := NewPointGoal(6, 0)
	ip.Evaluate(out, 0.004, 0)
	for i := 0; i < 6; i++ {
		checkClose(t, "start pos", out.Joint.Robot.Position[i], start.Joint.Robot.Position[i], 1e-9)
		checkClose(t, "start vel", out.Joint.Robot.Velocity[i], start.Joint.Robot.Velocity[i], 1e-9)
	}

	ip.Evaluate(out, 0.004, cond.Duration)
	for i := 0; i < 6; i++ {
		checkClose(t, "goal pos", out.Joint.Robot.Position[i], goal.Joint.Robot.Position[i], 1e-9)
		checkClose(t, "goal vel", out.Joint.Robot.Velocity[i], goal.Joint.Robot.Velocity[i], 1e-9)
	}
}

func TestEvaluateClamping(t *testing.T) {
	start, goal := jointTestPair()
	ip := New()
	if err := ip.Update(start, goal, Conditions{Duration: 1.0}); err != nil {
		t.Fatalf("update: %v", err)
	}

	atZero := NewPointGoal(6, 0)
	early := NewPointGoal(6, 0)
	ip.Evaluate(atZero, 0.004, 0)
	ip.Evaluate(early, 0.004, -0.5)

	atEnd := NewPointGoal(6, 0)
	late := NewPointGoal(6, 0)
	ip.Evaluate(atEnd, 0.004, 1.0)
	ip.Evaluate(late, 0.004, 1.7)

	for i := 0; i < 6; i++ {
		checkClose(t, "pre-session clamp", early.Joint.Robot.Position[i], atZero.Joint.Robot.Position[i], 0)
		checkClose(t, "post-session clamp", late.Joint.Robot.Position[i], atEnd.Joint.Robot.Position[i], 0)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	start, goal := jointTestPair()
	ip := New()
	if err := ip.Update(start, goal, Conditions{Duration: 1.0}); err != nil {
		t.Fatalf("update: %v", err)
	}

	a := NewPointGoal(6, 0)
	b := NewPointGoal(6, 0)
	ip.Evaluate(a, 0.004, 0.37)
	ip.Evaluate(b, 0.004, 0.9)
	ip.Evaluate(b, 0.004, 0.37)

	for i := 0; i < 6; i++ {
		checkClose(t, "pos", b.Joint.Robot.Position[i], a.Joint.Robot.Position[i], 0)
		checkClose(t, "vel", b.Joint.Robot.Velocity[i], a.Joint.Robot.Velocity[i], 0)
		checkClose(t, "acc", b.Joint.Robot.Acceleration[i], a.Joint.Robot.Acceleration[i], 0)
	}
}

func TestCartesianSession(t *testing.T) {
	start := NewPointGoal(0, 2)
	goal := NewPointGoal(0, 2)
	start.Cartesian.Position = Vec3{0.1, 0.2, 0.3}
	goal.Cartesian.Position = Vec3{0.4, -0.1, 0.9}
	start.Cartesian.Orientation = axisAngleQuat(0, 0, 1, 0.2)
	goal.Cartesian.Orientation = axisAngleQuat(0, 1, 0, 1.1)
	// External joints share the polynomial array behind the x/y/z slots.
	start.Joint.External.Position[0] = 5.0
	goal.Joint.External.Position[0] = 6.0
	start.Joint.External.Position[1] = -1.0
	goal.Joint.External.Position[1] = -3.0

	ip := New()
	cond := Conditions{Duration: 2.0, Mode: ModeCartesian}
	if err := ip.Update(start, goal, cond); err != nil {
		t.Fatalf("update: %v", err)
	}

	out := NewPointGoal(0, 2)
	ip.Evaluate(out, 0.004, 0)
	checkClose(t, "x0", out.Cartesian.Position.X, 0.1, 1e-9)
	checkClose(t, "ext0 start", out.Joint.External.Position[0], 5.0, 1e-9)

	ip.Evaluate(out, 0.004, cond.Duration)
	checkClose(t, "xT", out.Cartesian.Position.X, 0.4, 1e-9)
	checkClose(t, "yT", out.Cartesian.Position.Y, -0.1, 1e-9)
	checkClose(t, "zT", out.Cartesian.Position.Z, 0.9, 1e-9)
	checkClose(t, "ext0 goal", out.Joint.External.Position[0], 6.0, 1e-9)
	checkClose(t, "ext1 goal", out.Joint.External.Position[1], -3.0, 1e-9)
	if d := angularDistance(out.Cartesian.Orientation, goal.Cartesian.Orientation); d > 1e-9 {
		t.Errorf("orientation off by %.2e rad at session end", d)
	}
}

func TestRampDownSessionVelocity(t *testing.T) {
	start, goal := jointTestPair()
	ip := New()
	cond := Conditions{Duration: 1.0, Operation: OpRampDown, RampDownFactor: 0.5}
	if err := ip.Update(start, goal, cond); err != nil {
		t.Fatalf("update: %v", err)
	}

	out := NewPointGoal(6, 0)
	ip.Evaluate(out, 0.004, cond.Duration)
	// Joint 2 started at 0.5 rad/s; ramp down to half of that.
	checkClose(t, "ramped vel", out.Joint.Robot.Velocity[2], 0.25, 1e-9)
	checkClose(t, "ramped acc", out.Joint.Robot.Acceleration[2], 0, 1e-9)
}

func TestRampDownFactorClamped(t *testing.T) {
	start, goal := jointTestPair()
	ip := New()
	cond := Conditions{Duration: 1.0, Operation: OpRampDown, RampDownFactor: 3.0}
	if err := ip.Update(start, goal, cond); err != nil {
		t.Fatalf("update: %v", err)
	}

	out := NewPointGoal(6, 0)
	ip.Evaluate(out, 0.004, cond.Duration)
	// Factor clamps to 1: the goal velocity is the unchanged start velocity.
	checkClose(t, "clamped factor vel", out.Joint.Robot.Velocity[2], 0.5, 1e-9)
}

func TestRampInSessionThroughInterpolator(t *testing.T) {
	start := NewPointGoal(2, 0)
	goal := NewPointGoal(2, 0)
	start.Joint.Robot.Position[0] = 1.0
	goal.Joint.Robot.Position[0] = 2.0

	ip := New()
	cond := Conditions{Duration: 0.5, Operation: OpRampInPosition}
	if err := ip.Update(start, goal, cond); err != nil {
		t.Fatalf("update: %v", err)
	}

	out := NewPointGoal(2, 0)
	ip.Evaluate(out, 0.004, 0.25)
	// Cosine blend is exactly halfway at mid-session.
	checkClose(t, "mid pos", out.Joint.Robot.Position[0], 1.5, 1e-12)

	ip.Evaluate(out, 0.004, cond.Duration)
	checkClose(t, "goal pos", out.Joint.Robot.Position[0], 2.0, 1e-12)
}

func TestEvaluateWithoutSessionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for evaluate without update")
		}
	}()
	out := NewPointGoal(1, 0)
	New().Evaluate(out, 0.004, 0)
}

func TestEvaluateAllocationFree(t *testing.T) {
	start, goal := jointTestPair()
	ip := New()
	if err := ip.Update(start, goal, Conditions{Duration: 1.0}); err != nil {
		t.Fatalf("update: %v", err)
	}

	out := NewPointGoal(6, 0)
	allocs := testing.AllocsPerRun(100, func() {
		ip.Evaluate(out, 0.004, 0.42)
	})
	if allocs != 0 {
		t.Errorf("Evaluate allocated %.1f times per call", allocs)
	}
}

func TestQuinticMidpointThroughInterpolator(t *testing.T) {
	start := NewPointGoal(1, 0)
	goal := NewPointGoal(1, 0)
	goal.Joint.Robot.Position[0] = 1.0

	ip := New()
	if err := ip.Update(start, goal, Conditions{Duration: 1.0}); err != nil {
		t.Fatalf("update: %v", err)
	}

	out := NewPointGoal(1, 0)
	ip.Evaluate(out, 0.004, 0.5)
	if math.Abs(out.Joint.Robot.Position[0]-0.5) > 1e-12 {
		t.Errorf("midpoint: got %.15f, expected 0.5", out.Joint.Robot.Position[0])
	}
}
