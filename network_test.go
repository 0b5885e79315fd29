package evnet_test

import (
	"math/rand"
	"testing"

	"evnet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, cfg evnet.GenConfig) *evnet.Network {
	t.Helper()
	net, err := evnet.GenerateNetwork(cfg, rand.New(rand.NewSource(cfg.Seed)))
	require.NoError(t, err)
	return net
}

func TestGenerateNetworkReferenceScenario(t *testing.T) {
	cfg := evnet.DefaultGenConfig(18, 42)
	cfg.NumCustomers = 7
	cfg.NumBss = 4
	net := generate(t, cfg)

	assert.Equal(t, []int{1, 2}, net.Adjacency[evnet.DepotIndex])
	assert.True(t, evnet.ConnectedFromDepot(net.Adjacency))
	assert.Len(t, net.Positions, 18)
	assert.Len(t, net.Labels, 18)

	counts := map[evnet.Role]int{}
	for _, r := range net.Roles {
		counts[r]++
	}
	assert.Equal(t, 1, counts[evnet.RoleDepot])
	assert.Equal(t, 7, counts[evnet.RoleCustomer])
	assert.Equal(t, 4, counts[evnet.RoleBss])
	assert.Equal(t, 6, counts[evnet.RoleIntersection])

	assert.Equal(t, "D", net.Labels[0])
	assert.Equal(t, evnet.RoleIntersection, net.Roles[1])
	assert.Equal(t, evnet.RoleIntersection, net.Roles[2])
}

func TestGeneratedDegreesWithinBounds(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1234} {
		cfg := evnet.DefaultGenConfig(25, seed)
		net := generate(t, cfg)

		require.True(t, evnet.ConnectedFromDepot(net.Adjacency), "seed %d: graph not connected", seed)
		assert.Equal(t, []int{1, 2}, net.Adjacency[0], "seed %d: depot edges", seed)
		for i := 1; i < len(net.Adjacency); i++ {
			deg := len(net.Adjacency[i])
			assert.GreaterOrEqual(t, deg, 1, "seed %d: node %d isolated", seed, i)
			if net.ConnectorEdges == 0 {
				assert.GreaterOrEqual(t, deg, cfg.MinDegree, "seed %d: node %d under min degree", seed, i)
				assert.LessOrEqual(t, deg, cfg.MaxDegree, "seed %d: node %d over max degree", seed, i)
			}
		}
	}
}

func TestAdjacencyIsSymmetric(t *testing.T) {
	net := generate(t, evnet.DefaultGenConfig(20, 3))
	for i, nbrs := range net.Adjacency {
		for _, j := range nbrs {
			found := false
			for _, back := range net.Adjacency[j] {
				if back == i {
					found = true
				}
			}
			assert.True(t, found, "edge %d-%d missing its reverse entry", i, j)
		}
	}
}

func TestGenerationIsReproducible(t *testing.T) {
	cfg := evnet.DefaultGenConfig(30, 99)
	a := generate(t, cfg)
	b := generate(t, cfg)

	assert.Equal(t, a.Positions, b.Positions)
	assert.Equal(t, a.Roles, b.Roles)
	assert.Equal(t, a.Adjacency, b.Adjacency)
	assert.Equal(t, a.Labels, b.Labels)
}

func TestLabelCountersFollowRoles(t *testing.T) {
	cfg := evnet.DefaultGenConfig(18, 5)
	cfg.NumCustomers = 7
	cfg.NumBss = 4
	net := generate(t, cfg)

	customers, stations := 0, 0
	seen := map[string]bool{}
	for i, lbl := range net.Labels {
		require.False(t, seen[lbl], "duplicate label %s", lbl)
		seen[lbl] = true
		switch net.Roles[i] {
		case evnet.RoleCustomer:
			customers++
			assert.Regexp(t, `^C[0-9]+$`, lbl)
		case evnet.RoleBss:
			stations++
			assert.Regexp(t, `^BSS[0-9]+$`, lbl)
		case evnet.RoleIntersection:
			assert.Regexp(t, `^[0-9]+$`, lbl)
		}
	}
	assert.Equal(t, 7, customers)
	assert.Equal(t, 4, stations)
}

func TestGenerateNetworkValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	cfg := evnet.DefaultGenConfig(10, 1)
	cfg.TotalNodes = 3
	_, err := evnet.GenerateNetwork(cfg, rng)
	assert.Error(t, err)

	cfg = evnet.DefaultGenConfig(10, 1)
	cfg.NumCustomers = 6
	cfg.NumBss = 2 // 8 > 10-3
	_, err = evnet.GenerateNetwork(cfg, rng)
	assert.Error(t, err)

	cfg = evnet.DefaultGenConfig(10, 1)
	cfg.TrafficRange = [2]float64{0.5, 1.4}
	_, err = evnet.GenerateNetwork(cfg, rng)
	assert.Error(t, err)
}

func TestRatioCounts(t *testing.T) {
	customers, bss, intersections := evnet.RatioCounts(18)
	assert.Equal(t, 7, customers)
	assert.Equal(t, 4, bss)
	assert.Equal(t, 7, intersections)

	customers, bss, intersections = evnet.RatioCounts(22)
	assert.Equal(t, 9, customers)
	assert.Equal(t, 4, bss)
	assert.Equal(t, 9, intersections)
}
