package evnet_test

import (
	"math/rand"
	"testing"

	"evnet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestInstance(t *testing.T) *evnet.Instance {
	t.Helper()
	cfg := evnet.DefaultGenConfig(12, 7)
	inst, _, err := evnet.BuildInstance(cfg, "test_instance")
	require.NoError(t, err)
	return inst
}

func TestRetuneTraffic(t *testing.T) {
	inst := buildTestInstance(t)
	distBefore := inst.Matrices.Distance
	adjBefore := inst.Matrices.Adjacency

	err := evnet.RetuneTraffic(inst, [2]float64{0.7, 0.9}, rand.New(rand.NewSource(21)))
	require.NoError(t, err)

	for _, e := range inst.Graph.Edges {
		assert.GreaterOrEqual(t, e.TrafficFactor, 0.7)
		assert.LessOrEqual(t, e.TrafficFactor, 0.9)
	}

	assert.Equal(t, distBefore, inst.Matrices.Distance, "distances must survive a retune")
	assert.Equal(t, adjBefore, inst.Matrices.Adjacency)

	// derived matrices follow the redrawn factors
	for i, row := range inst.Matrices.Distance {
		for j, d := range row {
			if d == 0 {
				assert.Zero(t, inst.Matrices.TravelTime[i][j])
				continue
			}
			tf := inst.Matrices.TrafficFactor[i][j]
			want := evnet.RoundTo(d/(50*tf)*60, 2)
			assert.Equal(t, want, inst.Matrices.TravelTime[i][j], "cell %d,%d", i, j)
		}
	}
}

func TestRetuneTrafficKeepsDepotMirror(t *testing.T) {
	inst := buildTestInstance(t)
	require.True(t, inst.DepotMirror)

	err := evnet.RetuneTraffic(inst, [2]float64{0.6, 1.0}, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	var d1, d2 *evnet.EdgeDoc
	for i := range inst.Graph.Edges {
		e := &inst.Graph.Edges[i]
		if e.From == "D" && e.To == inst.Labels[1] {
			d1 = e
		}
		if e.From == "D" && e.To == inst.Labels[2] {
			d2 = e
		}
	}
	require.NotNil(t, d1)
	require.NotNil(t, d2)
	assert.Equal(t, d2.TrafficFactor, d1.TrafficFactor)
	assert.Equal(t, d2.Distance, d1.Distance)
}

func TestRetuneTrafficRejectsBadRange(t *testing.T) {
	inst := buildTestInstance(t)
	rng := rand.New(rand.NewSource(1))

	assert.Error(t, evnet.RetuneTraffic(inst, [2]float64{0, 0.8}, rng))
	assert.Error(t, evnet.RetuneTraffic(inst, [2]float64{0.6, 1.2}, rng))
	assert.Error(t, evnet.RetuneTraffic(inst, [2]float64{0.9, 0.7}, rng))
}
