package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/motionlab/internal/loop"
	"github.com/san-kum/motionlab/internal/trajectory"
)

func sampleResult() *loop.Result {
	result := &loop.Result{
		Cycles:   3,
		Sessions: 1,
		Metrics:  map[string]float64{"path_length": 0.42},
	}
	for i := 0; i < 3; i++ {
		p := trajectory.NewPointGoal(2, 1)
		p.Joint.Robot.Position[0] = float64(i) * 0.1
		result.Times = append(result.Times, float64(i)*0.004)
		result.Points = append(result.Points, p)
	}
	return result
}

func TestSaveLoadRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save("test-arm", 0.004, sampleResult())
	require.NoError(t, err)

	meta, rows, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "test-arm", meta.Robot)
	assert.Equal(t, 3, meta.Cycles)
	assert.InDelta(t, 0.42, meta.Metrics["path_length"], 1e-12)

	// Header plus one row per cycle; 2 joints + 1 external, 2 columns each,
	// plus t and 7 pose columns.
	require.Len(t, rows, 4)
	assert.Len(t, rows[0], 1+2*2+1*2+7)
	assert.Equal(t, "t", rows[0][0])
	assert.Equal(t, "0.1", rows[2][1])
}

func TestListSortsNewestFirst(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	_, err := st.Save("arm-a", 0.004, sampleResult())
	require.NoError(t, err)
	_, err = st.Save("arm-b", 0.004, sampleResult())
	require.NoError(t, err)

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.False(t, runs[0].Timestamp.Before(runs[1].Timestamp))
}

func TestListEmptyDir(t *testing.T) {
	runs, err := New(t.TempDir() + "/missing").List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}
