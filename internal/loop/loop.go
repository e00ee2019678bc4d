// Package loop drives an Interpolator the way a robot communication cycle
// would: one Update per accepted goal, one Evaluate per fixed-period tick.
package loop

import (
	"context"
	"fmt"

	"github.com/san-kum/motionlab/internal/trajectory"
)

// Planner supplies the next motion goal whenever the active session has run
// out. Returning false ends the run.
type Planner interface {
	NextGoal(current *trajectory.PointGoal) (*trajectory.PointGoal, trajectory.Conditions, bool)
}

// Observer is notified once per control cycle with the evaluated setpoint.
type Observer interface {
	OnSample(p *trajectory.PointGoal, t float64)
}

// Metric accumulates a per-run statistic over the sampled setpoints.
type Metric interface {
	Name() string
	Observe(p *trajectory.PointGoal, t float64)
	Value() float64
	Reset()
}

// Config controls one run.
type Config struct {
	// SampleTime is the control-cycle period in seconds.
	SampleTime float64
	// MaxCycles bounds the run; 0 means no bound beyond the planner.
	MaxCycles int
}

// Result collects everything a run produced.
type Result struct {
	Times    []float64
	Points   []*trajectory.PointGoal
	Cycles   int
	Sessions int
	Metrics  map[string]float64
}

// Loop owns one interpolator instance and serializes Update/Evaluate on it.
type Loop struct {
	interp    *trajectory.Interpolator
	planner   Planner
	observers []Observer
	metrics   []Metric
}

func New(planner Planner) *Loop {
	return &Loop{
		interp:  trajectory.New(),
		planner: planner,
	}
}

func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }
func (l *Loop) AddMetric(m Metric)     { l.metrics = append(l.metrics, m) }

// Run executes control cycles from the given start state until the planner is
// exhausted, the cycle bound is hit, or ctx is canceled.
func (l *Loop) Run(ctx context.Context, start *trajectory.PointGoal, cfg Config) (*Result, error) {
	if cfg.SampleTime <= 0 {
		return nil, fmt.Errorf("loop: sample time must be positive, got %g", cfg.SampleTime)
	}

	for _, m := range l.metrics {
		m.Reset()
	}

	current := start.Clone()
	robot := len(current.Joint.Robot.Position)
	external := len(current.Joint.External.Position)
	out := trajectory.NewPointGoal(robot, external)
	out.CopyFrom(current)

	result := &Result{Metrics: make(map[string]float64)}

	goal, cond, ok := l.planner.NextGoal(current)
	if !ok {
		return result, nil
	}
	if err := l.interp.Update(current, goal, cond); err != nil {
		return nil, fmt.Errorf("loop: session %d: %w", result.Sessions, err)
	}
	result.Sessions++

	elapsed := 0.0
	totalT := 0.0
	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if cfg.MaxCycles > 0 && result.Cycles >= cfg.MaxCycles {
			break
		}

		// The session's final cycle samples t == duration (Evaluate clamps
		// the accumulated clock); only after that does the next goal load.
		if elapsed > l.interp.Duration()+cfg.SampleTime/2 {
			current.CopyFrom(out)
			goal, cond, ok = l.planner.NextGoal(current)
			if !ok {
				break
			}
			if err := l.interp.Update(current, goal, cond); err != nil {
				return result, fmt.Errorf("loop: session %d: %w", result.Sessions, err)
			}
			result.Sessions++
			elapsed = 0
		}

		l.interp.Evaluate(out, cfg.SampleTime, elapsed)

		for _, m := range l.metrics {
			m.Observe(out, totalT)
		}
		for _, o := range l.observers {
			o.OnSample(out, totalT)
		}

		result.Times = append(result.Times, totalT)
		result.Points = append(result.Points, out.Clone())
		result.Cycles++

		elapsed += cfg.SampleTime
		totalT += cfg.SampleTime
	}

	for _, m := range l.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
