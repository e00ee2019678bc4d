package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/motionlab/internal/kinematics"
	"github.com/san-kum/motionlab/internal/planner"
	"github.com/san-kum/motionlab/internal/trajectory"
)

const (
	DefaultSampleTime = 0.004
	DefaultJoints     = 6
	DefaultDuration   = 1.0
)

type Config struct {
	Robot    RobotConfig     `yaml:"robot"`
	Start    StartConfig     `yaml:"start"`
	Segments []SegmentConfig `yaml:"segments"`
	DataDir  string          `yaml:"data_dir"`
}

type RobotConfig struct {
	Name           string       `yaml:"name"`
	Joints         int          `yaml:"joints"`
	ExternalJoints int          `yaml:"external_joints"`
	SampleTime     float64      `yaml:"sample_time"`
	Links          []LinkConfig `yaml:"links"`
}

type LinkConfig struct {
	Translation []float64 `yaml:"translation"`
	Axis        []float64 `yaml:"axis"`
}

type StartConfig struct {
	Position []float64 `yaml:"position"`
	External []float64 `yaml:"external"`
}

type SegmentConfig struct {
	Duration       float64          `yaml:"duration"`
	Mode           string           `yaml:"mode"`
	Operation      string           `yaml:"operation"`
	Spline         string           `yaml:"spline"`
	RampDownFactor float64          `yaml:"ramp_down_factor"`
	Position       []float64        `yaml:"position"`
	Velocity       []float64        `yaml:"velocity"`
	External       []float64        `yaml:"external"`
	Cartesian      *CartesianConfig `yaml:"cartesian"`
}

type CartesianConfig struct {
	Position    []float64 `yaml:"position"`
	Orientation []float64 `yaml:"orientation"` // w, x, y, z
	Velocity    []float64 `yaml:"velocity"`
}

func DefaultConfig() *Config {
	return &Config{
		Robot: RobotConfig{
			Name:       "irb-6",
			Joints:     DefaultJoints,
			SampleTime: DefaultSampleTime,
		},
		Segments: []SegmentConfig{
			{
				Duration: DefaultDuration,
				Position: []float64{0.5, -0.3, 0.8, 0.0, 0.4, -0.2},
			},
		},
		DataDir: "runs",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Segments = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.Segments) == 0 {
		cfg.Segments = DefaultConfig().Segments
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Robot.Joints <= 0 {
		return fmt.Errorf("config: joints must be positive, got %d", c.Robot.Joints)
	}
	if c.Robot.ExternalJoints < 0 {
		return fmt.Errorf("config: external_joints must not be negative, got %d", c.Robot.ExternalJoints)
	}
	if c.Robot.SampleTime <= 0 {
		return fmt.Errorf("config: sample_time must be positive, got %g", c.Robot.SampleTime)
	}
	for i, seg := range c.Segments {
		if seg.Duration <= 0 {
			return fmt.Errorf("config: segment %d: duration must be positive, got %g", i, seg.Duration)
		}
		if seg.RampDownFactor < 0 || seg.RampDownFactor > 1 {
			return fmt.Errorf("config: segment %d: ramp_down_factor must be in [0,1], got %g", i, seg.RampDownFactor)
		}
		if _, err := seg.conditions(); err != nil {
			return fmt.Errorf("config: segment %d: %w", i, err)
		}
	}
	return nil
}

func (s *SegmentConfig) conditions() (trajectory.Conditions, error) {
	mode, err := trajectory.ParseMode(s.Mode)
	if err != nil {
		return trajectory.Conditions{}, err
	}
	op, err := trajectory.ParseOperation(s.Operation)
	if err != nil {
		return trajectory.Conditions{}, err
	}
	spline, err := trajectory.ParseSplineMethod(s.Spline)
	if err != nil {
		return trajectory.Conditions{}, err
	}
	return trajectory.Conditions{
		Duration:       s.Duration,
		Mode:           mode,
		Operation:      op,
		RampDownFactor: s.RampDownFactor,
		Spline:         spline,
	}, nil
}

// StartPoint builds the initial robot state, with the Cartesian half filled
// in by the kinematic chain when one is configured.
func (c *Config) StartPoint() *trajectory.PointGoal {
	p := trajectory.NewPointGoal(c.Robot.Joints, c.Robot.ExternalJoints)
	copy(p.Joint.Robot.Position, c.Start.Position)
	copy(p.Joint.External.Position, c.Start.External)
	if chain, err := c.Chain(); err == nil && chain != nil {
		p.Cartesian = chain.Forward(p.Joint.Robot.Position)
	}
	return p
}

// BuildSegments converts configured segments into planner segments.
func (c *Config) BuildSegments() ([]planner.Segment, error) {
	chain, err := c.Chain()
	if err != nil {
		return nil, err
	}

	segments := make([]planner.Segment, 0, len(c.Segments))
	for i, sc := range c.Segments {
		cond, err := sc.conditions()
		if err != nil {
			return nil, fmt.Errorf("config: segment %d: %w", i, err)
		}

		goal := trajectory.NewPointGoal(c.Robot.Joints, c.Robot.ExternalJoints)
		copy(goal.Joint.Robot.Position, sc.Position)
		copy(goal.Joint.Robot.Velocity, sc.Velocity)
		copy(goal.Joint.External.Position, sc.External)

		if sc.Cartesian != nil {
			applyCartesian(goal, sc.Cartesian)
		} else if chain != nil {
			goal.Cartesian = chain.Forward(goal.Joint.Robot.Position)
		}

		segments = append(segments, planner.Segment{Goal: *goal, Cond: cond})
	}
	return segments, nil
}

// Chain builds the kinematic chain, or nil when no links are configured.
func (c *Config) Chain() (*kinematics.Chain, error) {
	if len(c.Robot.Links) == 0 {
		return nil, nil
	}
	links := make([]kinematics.Link, len(c.Robot.Links))
	for i, lc := range c.Robot.Links {
		links[i] = kinematics.Link{
			Translation: vec3(lc.Translation),
			Axis:        vec3(lc.Axis),
		}
	}
	return kinematics.NewChain(links)
}

func applyCartesian(goal *trajectory.PointGoal, cc *CartesianConfig) {
	goal.Cartesian.Position = vec3(cc.Position)
	goal.Cartesian.Velocity = vec3(cc.Velocity)
	if len(cc.Orientation) == 4 {
		goal.Cartesian.Orientation.Real = cc.Orientation[0]
		goal.Cartesian.Orientation.Imag = cc.Orientation[1]
		goal.Cartesian.Orientation.Jmag = cc.Orientation[2]
		goal.Cartesian.Orientation.Kmag = cc.Orientation[3]
	}
}

func vec3(s []float64) trajectory.Vec3 {
	var v trajectory.Vec3
	if len(s) > 0 {
		v.X = s[0]
	}
	if len(s) > 1 {
		v.Y = s[1]
	}
	if len(s) > 2 {
		v.Z = s[2]
	}
	return v
}
