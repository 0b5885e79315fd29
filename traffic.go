package evnet

import (
	"fmt"
	"math/rand"
)

// RetuneTraffic redraws every edge's traffic factor into the given range on
// an existing instance, keeps the depot mirror if the instance was built
// with it, and recomputes all derived matrices. Distances are untouched.
// Works on the document and recomputes, instead of patching the rendered
// artifacts in place.
func RetuneTraffic(inst *Instance, trafficRange [2]float64, rng *rand.Rand) error {
	if trafficRange[0] <= 0 || trafficRange[1] > 1.0 || trafficRange[1] < trafficRange[0] {
		return fmt.Errorf("invalid traffic range %v", trafficRange)
	}
	if len(inst.Labels) == 0 {
		return fmt.Errorf("instance has no label order")
	}

	for i := range inst.Graph.Edges {
		inst.Graph.Edges[i].TrafficFactor = RoundTo(uniform(rng, trafficRange[0], trafficRange[1]), 2)
	}

	n := len(inst.Labels)
	index := make(map[string]int, n)
	for i, lbl := range inst.Labels {
		index[lbl] = i
	}

	adjM := make([][]int, n)
	distM := make([][]float64, n)
	tfM := make([][]float64, n)
	for i := 0; i < n; i++ {
		adjM[i] = make([]int, n)
		distM[i] = make([]float64, n)
		tfM[i] = make([]float64, n)
	}
	for _, e := range inst.Graph.Edges {
		a, ok := index[e.From]
		if !ok {
			return fmt.Errorf("edge references unknown node %q", e.From)
		}
		b, ok := index[e.To]
		if !ok {
			return fmt.Errorf("edge references unknown node %q", e.To)
		}
		adjM[a][b], adjM[b][a] = 1, 1
		distM[a][b], distM[b][a] = e.Distance, e.Distance
		tfM[a][b], tfM[b][a] = e.TrafficFactor, e.TrafficFactor
	}

	if inst.DepotMirror {
		MirrorDepotEdges(&inst.Graph, inst.Labels, distM, tfM)
	}

	distPad := PadFloatMatrix(distM)
	tfPad := PadFloatMatrix(tfM)
	travel, edrop, ebox, err := DeriveEnergyTime(distPad, tfPad)
	if err != nil {
		return err
	}

	inst.Matrices = MatrixSet{
		Adjacency:     PadIntMatrix(adjM),
		Distance:      distPad,
		TrafficFactor: tfPad,
		TravelTime:    travel,
		EnergyDrop:    edrop,
		EnergyBox:     ebox,
	}
	return nil
}
