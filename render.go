package evnet

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const bannerRule = "======================================================================"

// RenderNetworkConfig writes the human-readable network configuration file:
// counts, the commented adjacency table and the label/type mappings.
func RenderNetworkConfig(cfg GenConfig, net *Network) string {
	var b strings.Builder

	intersections := cfg.TotalNodes - cfg.NumCustomers - cfg.NumBss - 1

	fmt.Fprintf(&b, "%s\nNETWORK CONFIGURATION\n%s\n\n", bannerRule, bannerRule)
	fmt.Fprintf(&b, "Total Nodes: %d\n", cfg.TotalNodes)
	fmt.Fprintf(&b, "Customers: %d\n", cfg.NumCustomers)
	fmt.Fprintf(&b, "BSS Stations: %d\n", cfg.NumBss)
	fmt.Fprintf(&b, "Intersections: %d\n", intersections)
	fmt.Fprintf(&b, "Depot: 1\n")
	fmt.Fprintf(&b, "Seed: %d\n", cfg.Seed)
	fmt.Fprintf(&b, "\n%s\n\n", bannerRule)

	b.WriteString("table = [\n")
	for i, neighbors := range net.Adjacency {
		fmt.Fprintf(&b, "    %s,  # Node %d: %s (%s)\n", formatIntList(neighbors), i, net.Labels[i], net.Roles[i])
	}
	b.WriteString("]\n\n")

	b.WriteString("idx2label = {\n")
	for i, lbl := range net.Labels {
		fmt.Fprintf(&b, "    %d: %q,\n", i, lbl)
	}
	b.WriteString("}\n\n")

	type labeled struct {
		label string
		role  Role
	}
	entries := make([]labeled, len(net.Labels))
	for i, lbl := range net.Labels {
		entries[i] = labeled{lbl, net.Roles[i]}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].role != entries[j].role {
			return entries[i].role < entries[j].role
		}
		return entries[i].label < entries[j].label
	})
	b.WriteString("node_types = {\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "    %q: %q,\n", e.label, string(e.role))
	}
	b.WriteString("}\n")

	return b.String()
}

// RenderExample writes the combined example artifact: GA input JSON, node
// order, indicator vectors and the six solver matrices.
func RenderExample(inst *Instance) (string, error) {
	var b strings.Builder

	graphJson, err := json.MarshalIndent(inst.Graph, "", "  ")
	if err != nil {
		return "", err
	}

	fmt.Fprintf(&b, "=== GA INPUT ===\n%s\n", graphJson)

	quoted := make([]string, len(inst.Labels))
	for i, lbl := range inst.Labels {
		quoted[i] = "'" + lbl + "'"
	}
	fmt.Fprintf(&b, "\n=== ORDER OF NODES ===\n[%s]\n", strings.Join(quoted, ", "))

	b.WriteString("\n=== CPLEX MATRICES ===\n")
	fmt.Fprintf(&b, "\nStation =  %s\n", formatIntList(inst.Station))
	fmt.Fprintf(&b, "Costumer = %s\n", formatIntList(inst.Customer))

	fmt.Fprintf(&b, "\n--- Adjacency (0/1) ---\n%s\n", FormatIntMatrix(inst.Matrices.Adjacency))
	fmt.Fprintf(&b, "\n--- Distance (km) ---\n%s\n", FormatFloatMatrix(inst.Matrices.Distance, 2))
	fmt.Fprintf(&b, "\n--- TrafficFactor ---\n%s\n", FormatFloatMatrix(inst.Matrices.TrafficFactor, 2))
	fmt.Fprintf(&b, "\n--- Travel Time T (minutes) ---\n%s\n", FormatFloatMatrix(inst.Matrices.TravelTime, 2))
	fmt.Fprintf(&b, "\n--- Energy Drop (Edrop) - with load ---\n%s\n", FormatFloatMatrix(inst.Matrices.EnergyDrop, 2))
	fmt.Fprintf(&b, "\n--- Energy Box (Ebox) - without load ---\n%s\n", FormatFloatMatrix(inst.Matrices.EnergyBox, 2))

	return b.String(), nil
}
