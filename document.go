package evnet

import (
	"encoding/json"
	"fmt"
)

// DocumentOptions configure the exporter.
type DocumentOptions struct {
	DistanceRange      [2]float64
	TrafficRange       [2]float64
	DirectionOverrides []DirectionOverride
}

func (c GenConfig) DocumentOptions() DocumentOptions {
	return DocumentOptions{
		DistanceRange:      c.DistanceRange,
		TrafficRange:       c.TrafficRange,
		DirectionOverrides: DefaultDirectionOverrides,
	}
}

// DirectionOverride forces Source to appear as the edge's "from" side when
// paired with one of Peers (any customer when Peers is empty). These are
// historical conventions of specific study datasets, carried as data rather
// than rules. Do not generalize them.
type DirectionOverride struct {
	Source string
	Peers  []string
}

// DefaultDirectionOverrides are the label pairs baked into the original
// research exports.
var DefaultDirectionOverrides = []DirectionOverride{
	{Source: "23"},
	{Source: "24"},
	{Source: "19", Peers: []string{"C7", "C8"}},
	{Source: "20", Peers: []string{"C7", "C8"}},
}

func (o DirectionOverride) matches(source, peer string, roleOf func(string) Role) bool {
	if o.Source != source {
		return false
	}
	if len(o.Peers) == 0 {
		return roleOf(peer) == RoleCustomer
	}
	for _, p := range o.Peers {
		if p == peer {
			return true
		}
	}
	return false
}

// CanonicalDirection picks the from/to order of an undirected edge: the depot
// always leads, then the configured overrides, then customers lead on
// BSS-customer edges, and everything else keeps first-encountered order.
func CanonicalDirection(u, v string, roleOf func(string) Role, overrides []DirectionOverride) (from, to string) {
	uRole, vRole := roleOf(u), roleOf(v)
	if uRole == RoleDepot {
		return u, v
	}
	if vRole == RoleDepot {
		return v, u
	}
	for _, o := range overrides {
		if o.matches(u, v, roleOf) {
			return u, v
		}
		if o.matches(v, u, roleOf) {
			return v, u
		}
	}
	if uRole == RoleBss && vRole == RoleCustomer {
		return v, u
	}
	if uRole == RoleCustomer && vRole == RoleBss {
		return u, v
	}
	return u, v
}

// UnmarshalJSON accepts both document formats for a node: a bare role string
// and the {"type": ...} object. Anything unrecognized degrades to an
// intersection, as the original tooling did. The flexible parsing lives only
// at this boundary; internal code sees a Role.
func (n *NodeDoc) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		n.Type = Role(s)
		return nil
	}
	var obj struct {
		Type Role `json:"type"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	if obj.Type == "" {
		obj.Type = RoleIntersection
	}
	n.Type = obj.Type
	return nil
}

// AdjacencyFromDocument rebuilds the 0/1 adjacency matrix of a node/edge
// document, indexed by the given label order. Exporting a document and
// re-deriving the matrix through here reproduces the original exactly.
func AdjacencyFromDocument(doc *GraphDoc, labels []string) ([][]int, error) {
	index := make(map[string]int, len(labels))
	for i, lbl := range labels {
		index[lbl] = i
	}
	adj := make([][]int, len(labels))
	for i := range adj {
		adj[i] = make([]int, len(labels))
	}
	for _, e := range doc.Edges {
		a, ok := index[e.From]
		if !ok {
			return nil, fmt.Errorf("edge references unknown node %q", e.From)
		}
		b, ok := index[e.To]
		if !ok {
			return nil, fmt.Errorf("edge references unknown node %q", e.To)
		}
		adj[a][b], adj[b][a] = 1, 1
	}
	return adj, nil
}

// NeighborListsFromDocument is AdjacencyFromDocument in adjacency-list form,
// used by the analyzer's connectivity check.
func NeighborListsFromDocument(doc *GraphDoc, labels []string) ([][]int, error) {
	matrix, err := AdjacencyFromDocument(doc, labels)
	if err != nil {
		return nil, err
	}
	lists := make([][]int, len(matrix))
	for i, row := range matrix {
		for j, v := range row {
			if v == 1 {
				lists[i] = append(lists[i], j)
			}
		}
	}
	return lists, nil
}

// NewGAPayload wraps a graph document with the study's fixed vehicle and
// battery-module parameters.
func NewGAPayload(doc *GraphDoc) GAPayload {
	modules := make([]BatteryModule, 5)
	for i := range modules {
		modules[i] = BatteryModule{Capacity: 20, Soc: 100}
	}
	return GAPayload{
		Nodes:        doc.Nodes,
		Edges:        doc.Edges,
		BaseSpeed:    int(BaseSpeedKmh),
		Modules:      modules,
		StartingNode: DepotLabel,
		Vehicle: VehicleParams{
			BaseMass: 1500,
			F:        FrictionCoeff,
			Cx:       DragCoeff,
			A:        FrontalAreaM2,
			M:        int(ExtraMassKg),
		},
	}
}
