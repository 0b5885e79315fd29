package evnet

import (
	"fmt"
	"math/rand"
)

// InstanceType tags the artifact format version.
const InstanceType = "EVRP-BSS"

// BuildInstance runs the whole pipeline for one configuration: network
// generation, edge-value export, the depot mirror, solver padding and the
// derived energy/time matrices. The returned network carries the raw
// adjacency structure for the configuration artifact.
func BuildInstance(cfg GenConfig, name string) (*Instance, *Network, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))

	net, err := GenerateNetwork(cfg, rng)
	if err != nil {
		return nil, nil, err
	}
	if net.DegradedPlacements > 0 {
		Log(3, "%d nodes placed by fallback draw", net.DegradedPlacements)
	}
	if net.ConnectorEdges > 0 {
		Log(3, "added %d connector edges during repair", net.ConnectorEdges)
	}

	doc, adjM, distM, tfM := BuildGraphWithMatrices(net, cfg.DocumentOptions(), rng)

	mirrored := false
	if cfg.MirrorDepot {
		mirrored = MirrorDepotEdges(doc, net.Labels, distM, tfM)
		if mirrored {
			Log(3, "copied D->%s edge values onto D->%s", net.Labels[FixedIntersection2], net.Labels[FixedIntersection1])
		}
	}

	adjPad := PadIntMatrix(adjM)
	distPad := PadFloatMatrix(distM)
	tfPad := PadFloatMatrix(tfM)

	travel, edrop, ebox, err := DeriveEnergyTime(distPad, tfPad)
	if err != nil {
		return nil, nil, err
	}

	station, customer := BuildIndicatorVectors(net.Labels)

	inst := &Instance{
		Name:         name,
		Comment:      fmt.Sprintf("%d customers, %d BSS, %d nodes total", cfg.NumCustomers, cfg.NumBss, cfg.TotalNodes),
		Type:         InstanceType,
		NodeCount:    cfg.TotalNodes,
		NumCustomers: cfg.NumCustomers,
		NumBss:       cfg.NumBss,
		Seed:         cfg.Seed,
		DepotMirror:  mirrored,
		Labels:       net.Labels,
		Graph:        *doc,
		Station:      station,
		Customer:     customer,
		Matrices: MatrixSet{
			Adjacency:     adjPad,
			Distance:      distPad,
			TrafficFactor: tfPad,
			TravelTime:    travel,
			EnergyDrop:    edrop,
			EnergyBox:     ebox,
		},
	}
	return inst, net, nil
}
