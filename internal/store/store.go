// Package store persists trajectory runs: one directory per run holding
// metadata and the sampled setpoints.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/motionlab/internal/loop"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Robot      string             `json:"robot"`
	Timestamp  time.Time          `json:"timestamp"`
	SampleTime float64            `json:"sample_time"`
	Cycles     int                `json:"cycles"`
	Sessions   int                `json:"sessions"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes one run to disk and returns its run ID.
func (s *Store) Save(robot string, sampleTime float64, result *loop.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", robot, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Robot:      robot,
		Timestamp:  time.Now(),
		SampleTime: sampleTime,
		Cycles:     result.Cycles,
		Sessions:   result.Sessions,
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeSamples(filepath.Join(runDir, "samples.csv"), result); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) writeSamples(path string, result *loop.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	var joints, external int
	if len(result.Points) > 0 {
		joints = len(result.Points[0].Joint.Robot.Position)
		external = len(result.Points[0].Joint.External.Position)
	}

	header := []string{"t"}
	for i := 0; i < joints; i++ {
		header = append(header, fmt.Sprintf("j%d_pos", i), fmt.Sprintf("j%d_vel", i))
	}
	for i := 0; i < external; i++ {
		header = append(header, fmt.Sprintf("e%d_pos", i), fmt.Sprintf("e%d_vel", i))
	}
	header = append(header, "x", "y", "z", "qw", "qx", "qy", "qz")
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, 0, len(header))
	for i, p := range result.Points {
		row = row[:0]
		row = append(row, formatF(result.Times[i]))
		for j := 0; j < joints; j++ {
			row = append(row, formatF(p.Joint.Robot.Position[j]), formatF(p.Joint.Robot.Velocity[j]))
		}
		for j := 0; j < external; j++ {
			row = append(row, formatF(p.Joint.External.Position[j]), formatF(p.Joint.External.Velocity[j]))
		}
		c := p.Cartesian
		row = append(row,
			formatF(c.Position.X), formatF(c.Position.Y), formatF(c.Position.Z),
			formatF(c.Orientation.Real), formatF(c.Orientation.Imag),
			formatF(c.Orientation.Jmag), formatF(c.Orientation.Kmag))
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func formatF(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns metadata for every stored run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.loadMetadata(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) loadMetadata(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(data, &meta)
	return meta, err
}

// Load returns a run's metadata and its raw sample rows.
func (s *Store) Load(runID string) (RunMetadata, [][]string, error) {
	meta, err := s.loadMetadata(runID)
	if err != nil {
		return meta, nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return meta, nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	return meta, rows, err
}
