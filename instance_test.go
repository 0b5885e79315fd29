package evnet_test

import (
	"encoding/json"
	"testing"

	"evnet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInstancePipeline(t *testing.T) {
	cfg := evnet.DefaultGenConfig(18, 42)
	cfg.NumCustomers = 7
	cfg.NumBss = 4
	inst, net, err := evnet.BuildInstance(cfg, "7c_4bss_18total")
	require.NoError(t, err)

	assert.Equal(t, "7c_4bss_18total", inst.Name)
	assert.Equal(t, evnet.InstanceType, inst.Type)
	assert.Equal(t, 18, inst.NodeCount)
	assert.Equal(t, int64(42), inst.Seed)
	assert.True(t, inst.DepotMirror)
	assert.Equal(t, net.Labels, inst.Labels)

	// all six matrices carry the padded shape
	for _, m := range [][][]float64{
		inst.Matrices.Distance, inst.Matrices.TrafficFactor,
		inst.Matrices.TravelTime, inst.Matrices.EnergyDrop, inst.Matrices.EnergyBox,
	} {
		require.Len(t, m, 19)
		for _, row := range m {
			require.Len(t, row, 19)
		}
	}
	require.Len(t, inst.Matrices.Adjacency, 19)
	require.Len(t, inst.Station, 19)
	require.Len(t, inst.Customer, 19)

	// document round-trips into the same structure the raw network has
	adj, err := evnet.AdjacencyFromDocument(&inst.Graph, inst.Labels)
	require.NoError(t, err)
	edges := 0
	for _, row := range adj {
		for _, v := range row {
			edges += v
		}
	}
	assert.Equal(t, 2*len(inst.Graph.Edges), edges)

	// mirror applied: depot approaches are interchangeable
	d := inst.Matrices.Distance
	assert.Equal(t, d[0][2], d[0][1])
}

func TestBuildInstanceDeterministic(t *testing.T) {
	cfg := evnet.DefaultGenConfig(15, 77)
	a, _, err := evnet.BuildInstance(cfg, "x")
	require.NoError(t, err)
	b, _, err := evnet.BuildInstance(cfg, "x")
	require.NoError(t, err)

	aj, err := json.Marshal(a)
	require.NoError(t, err)
	bj, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, string(aj), string(bj))
}

func TestBuildInstanceNoMirror(t *testing.T) {
	cfg := evnet.DefaultGenConfig(12, 3)
	cfg.MirrorDepot = false
	inst, _, err := evnet.BuildInstance(cfg, "x")
	require.NoError(t, err)
	assert.False(t, inst.DepotMirror)
}

func TestBuildInstanceRejectsInvalidConfig(t *testing.T) {
	cfg := evnet.DefaultGenConfig(10, 1)
	cfg.TotalNodes = 2
	_, _, err := evnet.BuildInstance(cfg, "x")
	assert.Error(t, err)
}

func TestRenderExampleSections(t *testing.T) {
	cfg := evnet.DefaultGenConfig(12, 9)
	inst, _, err := evnet.BuildInstance(cfg, "x")
	require.NoError(t, err)

	out, err := evnet.RenderExample(inst)
	require.NoError(t, err)
	assert.Contains(t, out, "=== GA INPUT ===")
	assert.Contains(t, out, "=== ORDER OF NODES ===")
	assert.Contains(t, out, "=== CPLEX MATRICES ===")
	assert.Contains(t, out, "'D'")
	assert.Contains(t, out, "--- Distance (km) ---")
	assert.Contains(t, out, "--- Travel Time T (minutes) ---")
}

func TestRenderNetworkConfigSections(t *testing.T) {
	cfg := evnet.DefaultGenConfig(12, 9)
	net := generate(t, cfg)

	out := evnet.RenderNetworkConfig(cfg, net)
	assert.Contains(t, out, "table = [")
	assert.Contains(t, out, "Node 0: D (depot)")
	assert.Contains(t, out, "Seed: 9")
}
