package evnet

import (
	"math/rand"

	"github.com/golang/geo/r2"
)

const kmeansMaxIterations = 100

type cluster struct {
	Center  r2.Point
	Members []int
}

// kMeans runs Lloyd's algorithm over 2D points with k centers seeded from the
// given source. Member indices refer to the points slice. Deterministic for a
// fixed source; a cluster that goes empty keeps its previous center.
func kMeans(points []r2.Point, k int, rng *rand.Rand) []cluster {
	if k <= 0 || len(points) == 0 {
		return nil
	}
	if k > len(points) {
		k = len(points)
	}

	centers := make([]r2.Point, k)
	for i, p := range rng.Perm(len(points))[:k] {
		centers[i] = points[p]
	}

	assignment := make([]int, len(points))
	for iter := 0; iter < kmeansMaxIterations; iter++ {
		changed := false
		for i, p := range points {
			best := 0
			bestDist := Euclidean(p, centers[0])
			for c := 1; c < k; c++ {
				if d := Euclidean(p, centers[c]); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assignment[i] != best || iter == 0 {
				assignment[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
		sums := make([]r2.Point, k)
		counts := make([]int, k)
		for i, c := range assignment {
			sums[c] = sums[c].Add(points[i])
			counts[c]++
		}
		for c := 0; c < k; c++ {
			if counts[c] > 0 {
				centers[c] = sums[c].Mul(1.0 / float64(counts[c]))
			}
		}
	}

	clusters := make([]cluster, k)
	for c := 0; c < k; c++ {
		clusters[c].Center = centers[c]
	}
	for i, c := range assignment {
		clusters[c].Members = append(clusters[c].Members, i)
	}
	return clusters
}
