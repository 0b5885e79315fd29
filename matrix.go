package evnet

import (
	"fmt"
	"math"
	"math/rand"
)

var (
	cosAlpha = math.Cos(RoadAngleDeg * math.Pi / 180)
	sinAlpha = math.Sin(RoadAngleDeg * math.Pi / 180)
)

// BuildGraphWithMatrices draws one (distance, traffic factor) pair per
// undirected edge and emits the node/edge document together with the
// symmetric Adjacency, Distance and TrafficFactor matrices. Edge direction in
// the document follows CanonicalDirection.
func BuildGraphWithMatrices(net *Network, opts DocumentOptions, rng *rand.Rand) (*GraphDoc, [][]int, [][]float64, [][]float64) {
	n := len(net.Adjacency)
	labels := net.Labels

	doc := &GraphDoc{Nodes: make(map[string]NodeDoc, n)}
	for i, lbl := range labels {
		doc.Nodes[lbl] = NodeDoc{Type: net.Roles[i]}
	}

	adjM := make([][]int, n)
	distM := make([][]float64, n)
	tfM := make([][]float64, n)
	for i := 0; i < n; i++ {
		adjM[i] = make([]int, n)
		distM[i] = make([]float64, n)
		tfM[i] = make([]float64, n)
	}

	roleOf := func(lbl string) Role { return doc.Nodes[lbl].Type }
	seen := make(map[[2]int]bool)
	for i, nbrs := range net.Adjacency {
		for _, j := range nbrs {
			if i == j {
				continue
			}
			a, b := i, j
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			if seen[key] {
				continue
			}
			seen[key] = true

			d := RoundTo(uniform(rng, opts.DistanceRange[0], opts.DistanceRange[1]), 2)
			tf := RoundTo(uniform(rng, opts.TrafficRange[0], opts.TrafficRange[1]), 2)

			adjM[a][b], adjM[b][a] = 1, 1
			distM[a][b], distM[b][a] = d, d
			tfM[a][b], tfM[b][a] = tf, tf

			from, to := CanonicalDirection(labels[i], labels[j], roleOf, opts.DirectionOverrides)
			doc.Edges = append(doc.Edges, EdgeDoc{From: from, To: to, Distance: d, TrafficFactor: tf})
		}
	}
	return doc, adjM, distM, tfM
}

// MirrorDepotEdges copies the D->2 edge values onto the D->1 edge, in the
// document and in the matrices. The research model assumes the two depot
// approaches are symmetric; whether that is physics or a solver workaround
// is an open question upstream, so the step stays explicit and optional.
// Returns false when either depot edge is missing.
func MirrorDepotEdges(doc *GraphDoc, labels []string, distM, tfM [][]float64) bool {
	var d1, d2 *EdgeDoc
	for i := range doc.Edges {
		e := &doc.Edges[i]
		if e.From != DepotLabel {
			continue
		}
		switch e.To {
		case labels[FixedIntersection1]:
			d1 = e
		case labels[FixedIntersection2]:
			d2 = e
		}
	}
	if d1 == nil || d2 == nil {
		Log(1, "depot mirror skipped: missing D->1 or D->2 edge")
		return false
	}

	d1.Distance = d2.Distance
	d1.TrafficFactor = d2.TrafficFactor

	distM[DepotIndex][FixedIntersection1] = distM[DepotIndex][FixedIntersection2]
	distM[FixedIntersection1][DepotIndex] = distM[FixedIntersection2][DepotIndex]
	tfM[DepotIndex][FixedIntersection1] = tfM[DepotIndex][FixedIntersection2]
	tfM[FixedIntersection1][DepotIndex] = tfM[FixedIntersection2][DepotIndex]
	return true
}

// PadIntMatrix applies the solver input convention: every row gains a zero
// cell, cells [0][1] and [1][0] take the pre-padding [0][2] value, the new
// cell of row 2 takes it as well, and an extra zero row carrying it at
// index 2 is appended. The (N+1)th slot is the duplicated depot used as the
// route destination.
func PadIntMatrix(m [][]int) [][]int {
	if len(m) == 0 {
		return nil
	}
	special := m[0][2]
	out := make([][]int, 0, len(m)+1)
	for _, row := range m {
		padded := make([]int, len(row)+1)
		copy(padded, row)
		out = append(out, padded)
	}
	out[0][1] = special
	out[1][0] = special
	out[2][len(out[2])-1] = special
	last := make([]int, len(out[0]))
	last[2] = special
	return append(out, last)
}

// PadFloatMatrix is PadIntMatrix for float matrices.
func PadFloatMatrix(m [][]float64) [][]float64 {
	if len(m) == 0 {
		return nil
	}
	special := m[0][2]
	out := make([][]float64, 0, len(m)+1)
	for _, row := range m {
		padded := make([]float64, len(row)+1)
		copy(padded, row)
		out = append(out, padded)
	}
	out[0][1] = special
	out[1][0] = special
	out[2][len(out[2])-1] = special
	last := make([]float64, len(out[0]))
	last[2] = special
	return append(out, last)
}

// DeriveEnergyTime computes travel time plus loaded/unloaded energy use per
// cell from the distance and traffic-factor matrices. Pure and stateless;
// cells without an edge stay zero.
func DeriveEnergyTime(distM, tfM [][]float64) (travel, edrop, ebox [][]float64, err error) {
	n := len(distM)
	if len(tfM) != n {
		return nil, nil, nil, fmt.Errorf("matrix size mismatch: distance %d, traffic %d", n, len(tfM))
	}

	travel = make([][]float64, n)
	edrop = make([][]float64, n)
	ebox = make([][]float64, n)
	for i := 0; i < n; i++ {
		rowLen := len(distM[i])
		travel[i] = make([]float64, rowLen)
		edrop[i] = make([]float64, rowLen)
		ebox[i] = make([]float64, rowLen)
		for j := 0; j < rowLen; j++ {
			d := distM[i][j]
			if d == 0 {
				continue
			}
			v0 := BaseSpeedKmh * tfM[i][j]
			travel[i][j] = RoundTo(d/v0*60, 2)

			dvDt := 0.0
			switch {
			case v0 >= 50 && v0 <= 80:
				dvDt = 0.3
			case v0 >= 81 && v0 <= 120:
				dvDt = 2
			}
			edrop[i][j] = energyUse(MassLoadedKg, v0, dvDt, d)
			ebox[i][j] = energyUse(MassBoxKg, v0, dvDt, d)
		}
	}
	return travel, edrop, ebox, nil
}

func energyUse(mass, v0, dvDt, dist float64) float64 {
	e := (1.0 / 3600) * (mass*GravityMs2*(FrictionCoeff*cosAlpha+sinAlpha) +
		dragTermFactor*(AirDensityKgM3*DragCoeff*FrontalAreaM2*v0*v0) +
		(mass+ExtraMassKg)*dvDt) * dist
	return RoundTo(e, 2)
}
