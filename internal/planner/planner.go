// Package planner provides simple goal suppliers for the control loop. A real
// stack would receive goals from a task-level planner; these replay configured
// segments.
package planner

import "github.com/san-kum/motionlab/internal/trajectory"

// Segment is one configured motion: a goal point and its session conditions.
type Segment struct {
	Goal trajectory.PointGoal
	Cond trajectory.Conditions
}

// Sequence replays segments in order, one per session.
type Sequence struct {
	segments []Segment
	next     int
}

func NewSequence(segments []Segment) *Sequence {
	return &Sequence{segments: segments}
}

func (s *Sequence) NextGoal(current *trajectory.PointGoal) (*trajectory.PointGoal, trajectory.Conditions, bool) {
	if s.next >= len(s.segments) {
		return nil, trajectory.Conditions{}, false
	}
	seg := &s.segments[s.next]
	s.next++
	return &seg.Goal, seg.Cond, true
}

// Reset rewinds the sequence for another run.
func (s *Sequence) Reset() { s.next = 0 }

// Hold supplies a single static goal, ramped in from the current state, then
// ends the run. Used to park the robot at a fixed point.
type Hold struct {
	goal     trajectory.PointGoal
	duration float64
	done     bool
}

func NewHold(goal trajectory.PointGoal, duration float64) *Hold {
	return &Hold{goal: goal, duration: duration}
}

func (h *Hold) NextGoal(current *trajectory.PointGoal) (*trajectory.PointGoal, trajectory.Conditions, bool) {
	if h.done {
		return nil, trajectory.Conditions{}, false
	}
	h.done = true
	return &h.goal, trajectory.Conditions{
		Duration:  h.duration,
		Operation: trajectory.OpRampInPosition,
	}, true
}
