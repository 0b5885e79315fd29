package evnet

import (
	"fmt"
	"strings"
)

// BuildIndicatorVectors derives the 0/1 station and customer vectors from the
// label list. Both carry one trailing zero for the padded destination slot.
func BuildIndicatorVectors(labels []string) (station, customer []int) {
	station = make([]int, 0, len(labels)+1)
	customer = make([]int, 0, len(labels)+1)
	for _, lbl := range labels {
		upper := strings.ToUpper(lbl)
		s, c := 0, 0
		if strings.HasPrefix(upper, "BSS") {
			s = 1
		} else if strings.HasPrefix(upper, "C") {
			c = 1
		}
		station = append(station, s)
		customer = append(customer, c)
	}
	station = append(station, 0)
	customer = append(customer, 0)
	return station, customer
}

// RenderDAT emits the CPLEX input block: scalar constants, indicator vectors
// and the Adj/Trav/Edep/Ebox matrices in bracketed rows.
func RenderDAT(p DATParams, station, customer []int, m MatrixSet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Initial = %d; // Initial energy level at the depot\n", p.Initial)
	fmt.Fprintf(&b, "Eth = %d;\t// Minimum energy level\n", p.Eth)
	fmt.Fprintf(&b, "Cswap = %d;\t// Cost of swapping a module\n", p.Cswap)
	fmt.Fprintf(&b, "Tswap = %d;\t// Time to swap a battery module\n", p.Tswap)
	fmt.Fprintf(&b, "M = %d;\t\t// The total number of battery modules\n\n", p.Modules)
	fmt.Fprintf(&b, "S = %d;\t\t// Sourse of EV\n", p.Source)
	fmt.Fprintf(&b, "D = %d;\t\t// Destination of EV\n", p.Dest)
	fmt.Fprintf(&b, "G = %d;  // Large value\n\n", p.Large)
	fmt.Fprintf(&b, "Nodes = %d;\n", p.Nodes)
	fmt.Fprintf(&b, "Visits = %d;\n\n", p.Visits)

	fmt.Fprintf(&b, "Station =  %s;\n", formatIntList(station))
	fmt.Fprintf(&b, "Costumer = %s;\n\n", formatIntList(customer))

	fmt.Fprintf(&b, "Adj = \t[\n%s\n];\n\n", datIntMatrix(m.Adjacency))
	fmt.Fprintf(&b, "Trav =\t[\n%s\n];\n\n", datFloatMatrix(m.TravelTime, 2))
	fmt.Fprintf(&b, "Edep =\t[\n%s\n];\n\n", datFloatMatrix(m.EnergyDrop, 2))
	fmt.Fprintf(&b, "Ebox =\t[\n%s\n];\n", datFloatMatrix(m.EnergyBox, 2))

	return b.String()
}

func datIntMatrix(m [][]int) string {
	lines := make([]string, len(m))
	for i, row := range m {
		parts := make([]string, len(row))
		for j, v := range row {
			parts[j] = fmt.Sprintf("%d", v)
		}
		suffix := ","
		if i == len(m)-1 {
			suffix = ""
		}
		lines[i] = fmt.Sprintf(" [%s]%s", strings.Join(parts, ", "), suffix)
	}
	return strings.Join(lines, "\n")
}

func datFloatMatrix(m [][]float64, decimals int) string {
	lines := make([]string, len(m))
	for i, row := range m {
		parts := make([]string, len(row))
		for j, v := range row {
			parts[j] = fmt.Sprintf("%.*f", decimals, v)
		}
		suffix := ","
		if i == len(m)-1 {
			suffix = ""
		}
		lines[i] = fmt.Sprintf(" [%s]%s", strings.Join(parts, ", "), suffix)
	}
	return strings.Join(lines, "\n")
}
