package evnet

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"

	"github.com/golang/geo/r2"
)

// GenerateNetwork runs the full generation pipeline: placement, role
// assignment, proximity edges, connectivity repair and degree validation.
// All randomness is drawn from the given source, so one seed replays the
// whole run.
func GenerateNetwork(cfg GenConfig, rng *rand.Rand) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	positions, degraded := placeNodes(cfg.TotalNodes, rng)
	roles, err := assignRoles(positions, cfg.NumCustomers, cfg.NumBss, rng)
	if err != nil {
		return nil, err
	}

	adj := buildProximityEdges(positions, cfg.MinDegree, cfg.MaxDegree, rng)

	connectors := 0
	if !ConnectedFromDepot(adj) {
		Log(3, "graph disconnected after proximity pass, repairing")
		connectors = repairConnectivity(adj, positions)
	}
	validateDegrees(adj, positions, cfg.MinDegree, cfg.MaxDegree)

	// The trim step can cut a connector edge again. Connectivity is the hard
	// invariant, the degree bounds are best effort, so reconnect once more.
	if !ConnectedFromDepot(adj) {
		connectors += repairConnectivity(adj, positions)
	}

	for i := range adj {
		sort.Ints(adj[i])
	}

	net := &Network{
		Positions:          positions,
		Roles:              roles,
		Adjacency:          adj,
		Labels:             buildLabels(roles),
		DegradedPlacements: degraded,
		ConnectorEdges:     connectors,
	}
	return net, nil
}

// placeNodes fixes the depot at (10,50) and its two intersections at (25,50)
// and (25,35), then spreads the rest by rejection sampling: a draw is kept
// when it lands farther than MinDistanceToDepot from the depot, with an
// unconstrained fallback draw once the attempt budget runs out. The fallback
// is a silent degradation, only its count is reported.
func placeNodes(n int, rng *rand.Rand) ([]r2.Point, int) {
	positions := make([]r2.Point, 0, n)
	positions = append(positions,
		r2.Point{X: 10, Y: 50},
		r2.Point{X: 25, Y: 50},
		r2.Point{X: 25, Y: 35},
	)

	degraded := 0
	for i := FixedNodeCount; i < n; i++ {
		placed := false
		for attempt := 0; attempt < PlacementAttempts; attempt++ {
			p := r2.Point{X: uniform(rng, 15, 95), Y: uniform(rng, 10, 90)}
			if Euclidean(p, positions[DepotIndex]) > MinDistanceToDepot {
				positions = append(positions, p)
				placed = true
				break
			}
		}
		if !placed {
			positions = append(positions, r2.Point{X: uniform(rng, 20, 90), Y: uniform(rng, 10, 90)})
			degraded++
		}
	}
	return positions, degraded
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// assignRoles fixes the depot and its two intersections, picks customers by
// quadrant quota, stations by k-means, and labels the rest intersections.
func assignRoles(positions []r2.Point, numCustomers, numBss int, rng *rand.Rand) ([]Role, error) {
	n := len(positions)
	roles := make([]Role, n)
	roles[DepotIndex] = RoleDepot
	roles[FixedIntersection1] = RoleIntersection
	roles[FixedIntersection2] = RoleIntersection

	available := make([]int, 0, n-FixedNodeCount)
	for i := FixedNodeCount; i < n; i++ {
		available = append(available, i)
	}
	if numCustomers+numBss > len(available) {
		return nil, fmt.Errorf("cannot fit %d customers and %d BSS in %d available nodes", numCustomers, numBss, len(available))
	}

	for _, idx := range pickCustomersByQuadrant(positions, available, numCustomers, rng) {
		roles[idx] = RoleCustomer
		available = removeValue(available, idx)
	}
	for _, idx := range pickStationsByKMeans(positions, available, numBss, rng) {
		roles[idx] = RoleBss
		available = removeValue(available, idx)
	}
	for _, idx := range available {
		roles[idx] = RoleIntersection
	}
	return roles, nil
}

// pickCustomersByQuadrant splits the candidates' bounding box at its midpoint
// and takes at most one random candidate per quadrant for spatial coverage,
// then fills the remaining quota from the shuffled pool.
func pickCustomersByQuadrant(positions []r2.Point, candidates []int, quota int, rng *rand.Rand) []int {
	if quota <= 0 || len(candidates) == 0 {
		return nil
	}

	minX, maxX := positions[candidates[0]].X, positions[candidates[0]].X
	minY, maxY := positions[candidates[0]].Y, positions[candidates[0]].Y
	for _, idx := range candidates {
		p := positions[idx]
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	midX := 0.5 * (minX + maxX)
	midY := 0.5 * (minY + maxY)

	quadrants := make([][]int, 4)
	for _, idx := range candidates {
		p := positions[idx]
		switch {
		case p.X <= midX && p.Y >= midY:
			quadrants[0] = append(quadrants[0], idx)
		case p.X > midX && p.Y >= midY:
			quadrants[1] = append(quadrants[1], idx)
		case p.X <= midX && p.Y < midY:
			quadrants[2] = append(quadrants[2], idx)
		default:
			quadrants[3] = append(quadrants[3], idx)
		}
	}

	var selected []int
	taken := make(map[int]bool)
	for _, quadrant := range quadrants {
		if len(selected) >= quota {
			break
		}
		if len(quadrant) == 0 {
			continue
		}
		chosen := quadrant[rng.Intn(len(quadrant))]
		selected = append(selected, chosen)
		taken[chosen] = true
	}

	if len(selected) < quota {
		var pool []int
		for _, idx := range candidates {
			if !taken[idx] {
				pool = append(pool, idx)
			}
		}
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		need := quota - len(selected)
		if need > len(pool) {
			need = len(pool)
		}
		selected = append(selected, pool[:need]...)
	}
	return selected
}

// pickStationsByKMeans clusters the candidate positions and takes the point
// nearest each centroid, mirroring the EVRP-BSS siting heuristic. Clusters
// that yield no free point fall back to random leftover candidates.
func pickStationsByKMeans(positions []r2.Point, candidates []int, quota int, rng *rand.Rand) []int {
	if quota <= 0 || len(candidates) == 0 {
		return nil
	}

	if len(candidates) <= quota {
		shuffled := append([]int(nil), candidates...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		if quota > len(shuffled) {
			quota = len(shuffled)
		}
		return shuffled[:quota]
	}

	coords := make([]r2.Point, len(candidates))
	for i, idx := range candidates {
		coords[i] = positions[idx]
	}

	var assigned []int
	assignedSet := make(map[int]bool)
	for _, cl := range kMeans(coords, quota, rng) {
		members := append([]int(nil), cl.Members...)
		sort.Slice(members, func(i, j int) bool {
			return Euclidean(coords[members[i]], cl.Center) < Euclidean(coords[members[j]], cl.Center)
		})
		for _, m := range members {
			node := candidates[m]
			if assignedSet[node] {
				continue
			}
			assigned = append(assigned, node)
			assignedSet[node] = true
			break
		}
	}

	if len(assigned) < quota {
		var leftovers []int
		for _, idx := range candidates {
			if !assignedSet[idx] {
				leftovers = append(leftovers, idx)
			}
		}
		rng.Shuffle(len(leftovers), func(i, j int) { leftovers[i], leftovers[j] = leftovers[j], leftovers[i] })
		need := quota - len(assigned)
		if need > len(leftovers) {
			need = len(leftovers)
		}
		assigned = append(assigned, leftovers[:need]...)
	}
	if len(assigned) > quota {
		assigned = assigned[:quota]
	}
	return assigned
}

// buildProximityEdges connects the depot triangle first, then every other
// node to its nearest eligible neighbors up to a random target degree.
func buildProximityEdges(positions []r2.Point, minDegree, maxDegree int, rng *rand.Rand) [][]int {
	n := len(positions)
	adj := make([][]int, n)

	adj[DepotIndex] = []int{FixedIntersection1, FixedIntersection2}
	adj[FixedIntersection1] = []int{DepotIndex, FixedIntersection2}
	adj[FixedIntersection2] = []int{DepotIndex, FixedIntersection1}

	type distTo struct {
		dist float64
		node int
	}

	for i := FixedNodeCount; i < n; i++ {
		neighbors := make([]distTo, 0, n-1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			neighbors = append(neighbors, distTo{Euclidean(positions[i], positions[j]), j})
		}
		sort.Slice(neighbors, func(a, b int) bool {
			if neighbors[a].dist != neighbors[b].dist {
				return neighbors[a].dist < neighbors[b].dist
			}
			return neighbors[a].node < neighbors[b].node
		})

		targetDegree := minDegree + rng.Intn(maxDegree-minDegree+1)
		for _, cand := range neighbors {
			if len(adj[i]) >= targetDegree {
				break
			}
			j := cand.node
			if j == DepotIndex || hasNeighbor(adj, i, j) || len(adj[j]) >= maxDegree {
				continue
			}
			if wouldOverlap(i, j, adj, positions) {
				continue
			}
			addEdge(adj, i, j)
		}
	}
	return adj
}

func hasNeighbor(adj [][]int, a, b int) bool {
	for _, n := range adj[a] {
		if n == b {
			return true
		}
	}
	return false
}

func addEdge(adj [][]int, a, b int) {
	adj[a] = append(adj[a], b)
	adj[b] = append(adj[b], a)
}

func removeEdge(adj [][]int, a, b int) {
	adj[a] = removeValue(adj[a], b)
	adj[b] = removeValue(adj[b], a)
}

func removeValue(list []int, v int) []int {
	for i, x := range list {
		if x == v {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func ccw(a, b, c r2.Point) bool {
	return (c.Y-a.Y)*(b.X-a.X) > (b.Y-a.Y)*(c.X-a.X)
}

// segmentsCross reports a proper intersection of segments p1-p2 and p3-p4
// via the orientation test. Callers exclude edges sharing an endpoint.
func segmentsCross(p1, p2, p3, p4 r2.Point) bool {
	return ccw(p1, p3, p4) != ccw(p2, p3, p4) && ccw(p1, p2, p3) != ccw(p1, p2, p4)
}

// wouldOverlap rejects a candidate edge once it would cross more than
// MaxEdgeCrossings already-placed edges. A few crossings are tolerated, the
// layout only has to stay mostly planar.
func wouldOverlap(a, b int, adj [][]int, positions []r2.Point) bool {
	crossings := 0
	for i := range adj {
		for _, j := range adj[i] {
			if i >= j {
				continue
			}
			if i == a || i == b || j == a || j == b {
				continue
			}
			if segmentsCross(positions[a], positions[b], positions[i], positions[j]) {
				crossings++
				if crossings > MaxEdgeCrossings {
					return true
				}
			}
		}
	}
	return false
}

// ConnectedFromDepot reports whether every node is reachable from the depot.
func ConnectedFromDepot(adj [][]int) bool {
	return len(reachableFrom(adj, DepotIndex)) == len(adj)
}

func reachableFrom(adj [][]int, start int) []int {
	visited := make([]bool, len(adj))
	queue := []int{start}
	visited[start] = true
	var order []int
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)
		for _, next := range adj[node] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return order
}

// repairConnectivity merges components by repeatedly adding the shortest
// edge between any two nodes of different components, never touching the
// depot. Greedy, not an MST over components: the requirement is full
// connectivity, not edge-count optimality. Returns the number of connector
// edges added.
func repairConnectivity(adj [][]int, positions []r2.Point) int {
	n := len(adj)
	visited := make([]bool, n)
	var components [][]int
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		component := reachableFrom(adj, start)
		for _, node := range component {
			visited[node] = true
		}
		components = append(components, component)
	}

	added := 0
	for len(components) > 1 {
		bestDist := -1.0
		bestA, bestB := -1, -1
		compA, compB := -1, -1
		for i := 0; i < len(components); i++ {
			for j := i + 1; j < len(components); j++ {
				for _, a := range components[i] {
					if a == DepotIndex {
						continue
					}
					for _, b := range components[j] {
						if b == DepotIndex {
							continue
						}
						d := Euclidean(positions[a], positions[b])
						if bestDist < 0 || d < bestDist {
							bestDist = d
							bestA, bestB = a, b
							compA, compB = i, j
						}
					}
				}
			}
		}
		if bestA < 0 {
			break
		}
		addEdge(adj, bestA, bestB)
		added++
		components[compA] = append(components[compA], components[compB]...)
		components = append(components[:compB], components[compB+1:]...)
	}
	return added
}

// validateDegrees is the satisficing repair pass: under-min nodes connect to
// their nearest eligible neighbor, over-max nodes shed their longest edge.
// The depot is never touched and nodes 1/2 keep their depot edge even if
// that leaves them at the boundary of the bound - an accepted edge case.
func validateDegrees(adj [][]int, positions []r2.Point, minDegree, maxDegree int) {
	n := len(adj)

	for i := DepotIndex + 1; i < n; i++ {
		for len(adj[i]) < minDegree {
			bestDist := -1.0
			best := -1
			for j := 0; j < n; j++ {
				if j == i || j == DepotIndex || hasNeighbor(adj, i, j) || len(adj[j]) >= maxDegree {
					continue
				}
				d := Euclidean(positions[i], positions[j])
				if bestDist < 0 || d < bestDist {
					bestDist = d
					best = j
				}
			}
			if best < 0 {
				break
			}
			addEdge(adj, i, best)
		}
	}

	for i := DepotIndex + 1; i < n; i++ {
		for len(adj[i]) > maxDegree {
			worstDist := -1.0
			worst := -1
			for _, j := range adj[i] {
				if j == DepotIndex && (i == FixedIntersection1 || i == FixedIntersection2) {
					continue
				}
				d := Euclidean(positions[i], positions[j])
				if d > worstDist {
					worstDist = d
					worst = j
				}
			}
			if worst < 0 {
				break
			}
			removeEdge(adj, i, worst)
		}
	}
}

// buildLabels derives display labels: "D" for the depot, C1.. for customers,
// BSS1.. for stations and a bare counter for intersections, all in index
// order.
func buildLabels(roles []Role) []string {
	labels := make([]string, len(roles))
	labels[DepotIndex] = DepotLabel
	intersections, customers, stations := 1, 1, 1
	for i := 1; i < len(roles); i++ {
		switch roles[i] {
		case RoleCustomer:
			labels[i] = fmt.Sprintf("C%d", customers)
			customers++
		case RoleBss:
			labels[i] = fmt.Sprintf("BSS%d", stations)
			stations++
		default:
			labels[i] = strconv.Itoa(intersections)
			intersections++
		}
	}
	return labels
}
