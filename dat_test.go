package evnet_test

import (
	"strings"
	"testing"

	"evnet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndicatorVectors(t *testing.T) {
	labels := []string{"D", "1", "2", "C1", "BSS1", "C2", "3", "BSS2"}
	station, customer := evnet.BuildIndicatorVectors(labels)

	assert.Equal(t, []int{0, 0, 0, 0, 1, 0, 0, 1, 0}, station)
	assert.Equal(t, []int{0, 0, 0, 1, 0, 1, 0, 0, 0}, customer)

	// the trailing zero covers the padded destination slot
	require.Len(t, station, len(labels)+1)
	require.Len(t, customer, len(labels)+1)
}

func TestRenderDAT(t *testing.T) {
	p := evnet.DefaultDATParams(4)
	station := []int{0, 0, 0, 1, 0}
	customer := []int{0, 0, 1, 0, 0}
	m := evnet.MatrixSet{
		Adjacency:     [][]int{{0, 1}, {1, 0}},
		TravelTime:    [][]float64{{0, 7.5}, {7.5, 0}},
		EnergyDrop:    [][]float64{{0, 1.23}, {1.23, 0}},
		EnergyBox:     [][]float64{{0, 0.04}, {0.04, 0}},
		Distance:      [][]float64{{0, 5}, {5, 0}},
		TrafficFactor: [][]float64{{0, 0.8}, {0.8, 0}},
	}
	out := evnet.RenderDAT(p, station, customer, m)

	assert.Contains(t, out, "Initial = 100; // Initial energy level at the depot\n")
	assert.Contains(t, out, "Eth = 20;")
	assert.Contains(t, out, "Cswap = 50;")
	assert.Contains(t, out, "Tswap = 2;")
	assert.Contains(t, out, "M = 5;")
	assert.Contains(t, out, "S = 0;\t\t// Sourse of EV\n")
	assert.Contains(t, out, "D = 4;")
	assert.Contains(t, out, "G = 10000;")
	assert.Contains(t, out, "Nodes = 4;\n")
	assert.Contains(t, out, "Visits = 13;\n")

	assert.Contains(t, out, "Station =  [0, 0, 0, 1, 0];\n")
	assert.Contains(t, out, "Costumer = [0, 0, 1, 0, 0];\n")

	assert.Contains(t, out, "Adj = \t[\n [0, 1],\n [1, 0]\n];\n")
	assert.Contains(t, out, "Trav =\t[\n [0.00, 7.50],\n [7.50, 0.00]\n];\n")
	assert.Contains(t, out, "Edep =\t[\n [0.00, 1.23],\n [1.23, 0.00]\n];\n")
	assert.Contains(t, out, "Ebox =\t[\n [0.00, 0.04],\n [0.04, 0.00]\n];\n")

	// last matrix row never carries a trailing comma
	assert.False(t, strings.Contains(out, "],\n];"))
}

func TestDefaultDATParams(t *testing.T) {
	p := evnet.DefaultDATParams(22)
	assert.Equal(t, 0, p.Source)
	assert.Equal(t, 22, p.Dest)
	assert.Equal(t, 22, p.Nodes)
	assert.Equal(t, 13, p.Visits)
}
