package evnet

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/golang/geo/r2"
)

// Role of a node in the generated network.
type Role string

const (
	RoleDepot        Role = "depot"
	RoleIntersection Role = "intersection"
	RoleCustomer     Role = "customer"
	RoleBss          Role = "bss"
)

// Fixed layout of every instance: node 0 is the depot, nodes 1 and 2 are its
// two direct intersections. The depot keeps exactly these two edges.
const (
	DepotIndex         = 0
	FixedIntersection1 = 1
	FixedIntersection2 = 2
	FixedNodeCount     = 3
	DepotLabel         = "D"
	MinDistanceToDepot = 15.0
	PlacementAttempts  = 50
	MaxEdgeCrossings   = 2
	DefaultMinDegree   = 2
	DefaultMaxDegree   = 5
)

// Vehicle/road parameters of the energy model.
const (
	BaseSpeedKmh   = 50.0
	MassLoadedKg   = 1530.0
	MassBoxKg      = 5.0
	ExtraMassKg    = 100.0
	FrictionCoeff  = 0.01
	FrontalAreaM2  = 2.5
	GravityMs2     = 9.8
	RoadAngleDeg   = 0.86
	AirDensityKgM3 = 1.205
	DragCoeff      = 0.3
	// Empirical scaling of the aerodynamic term in the consumption formula.
	dragTermFactor = 0.0386
)

var validate = validator.New()

// GenConfig holds the parameters of one generation run.
type GenConfig struct {
	TotalNodes   int   `json:"total_nodes" validate:"min=4"`
	NumCustomers int   `json:"num_customers" validate:"min=0"`
	NumBss       int   `json:"num_bss" validate:"min=0"`
	Seed         int64 `json:"seed"`

	MinDegree int `json:"min_degree"`
	MaxDegree int `json:"max_degree"`

	DistanceRange [2]float64 `json:"distance_range"`
	TrafficRange  [2]float64 `json:"traffic_range"`

	// MirrorDepot copies the D->2 edge values onto D->1 after export. This
	// depot-symmetry convention comes from the research model and is applied
	// by default.
	MirrorDepot bool `json:"mirror_depot"`
}

// DefaultGenConfig fills the customer/BSS counts from the ratio policy
// (40% customers, 20% stations) and applies the standard ranges.
func DefaultGenConfig(totalNodes int, seed int64) GenConfig {
	customers, bss, _ := RatioCounts(totalNodes)
	return GenConfig{
		TotalNodes:    totalNodes,
		NumCustomers:  customers,
		NumBss:        bss,
		Seed:          seed,
		MinDegree:     DefaultMinDegree,
		MaxDegree:     DefaultMaxDegree,
		DistanceRange: [2]float64{3.0, 8.0},
		TrafficRange:  [2]float64{0.6, 1.0},
		MirrorDepot:   true,
	}
}

// RatioCounts derives the customer/BSS/intersection split from a total node
// count, keeping the 2:1:2 mix of the reference examples.
func RatioCounts(totalNodes int) (customers, bss, intersections int) {
	customers = int(float64(totalNodes)*0.4 + 0.5)
	bss = int(float64(totalNodes)*0.2 + 0.5)
	intersections = totalNodes - customers - bss
	return customers, bss, intersections
}

func (c GenConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	available := c.TotalNodes - FixedNodeCount
	if c.NumCustomers+c.NumBss > available {
		return fmt.Errorf("cannot fit %d customers and %d BSS in %d available nodes", c.NumCustomers, c.NumBss, available)
	}
	if c.MinDegree < 1 || c.MaxDegree < c.MinDegree {
		return fmt.Errorf("invalid degree bounds [%d,%d]", c.MinDegree, c.MaxDegree)
	}
	if c.DistanceRange[0] <= 0 || c.DistanceRange[1] < c.DistanceRange[0] {
		return fmt.Errorf("invalid distance range %v", c.DistanceRange)
	}
	if c.TrafficRange[0] <= 0 || c.TrafficRange[1] > 1.0 || c.TrafficRange[1] < c.TrafficRange[0] {
		return fmt.Errorf("invalid traffic range %v", c.TrafficRange)
	}
	return nil
}

// Network is the result of a generation run before edge values are drawn.
type Network struct {
	Positions []r2.Point
	Roles     []Role
	Adjacency [][]int
	Labels    []string

	// DegradedPlacements counts nodes placed by the unconstrained fallback
	// draw after the rejection-sampling budget ran out.
	DegradedPlacements int
	// ConnectorEdges counts edges added by the connectivity repair pass.
	ConnectorEdges int
}

// GraphDoc is the node/edge document consumed by the GA solver.
type GraphDoc struct {
	Nodes map[string]NodeDoc `json:"nodes"`
	Edges []EdgeDoc          `json:"edges"`
}

type NodeDoc struct {
	Type Role `json:"type"`
}

type EdgeDoc struct {
	From          string  `json:"from"`
	To            string  `json:"to"`
	Distance      float64 `json:"distance"`
	TrafficFactor float64 `json:"traffic_factor"`
}

// MatrixSet bundles the six solver matrices. In an instance artifact they are
// stored in padded (CPLEX) form.
type MatrixSet struct {
	Adjacency     [][]int     `json:"adjacency"`
	Distance      [][]float64 `json:"distance"`
	TrafficFactor [][]float64 `json:"traffic_factor"`
	TravelTime    [][]float64 `json:"travel_time"`
	EnergyDrop    [][]float64 `json:"energy_drop"`
	EnergyBox     [][]float64 `json:"energy_box"`
}

// Instance is the full generated artifact written as JSON.
type Instance struct {
	Name    string `json:"name"`
	Comment string `json:"comment,omitempty"`
	Type    string `json:"type"`

	NodeCount    int   `json:"node_count"`
	NumCustomers int   `json:"num_customers"`
	NumBss       int   `json:"num_bss"`
	Seed         int64 `json:"seed"`
	DepotMirror  bool  `json:"depot_mirror_applied"`

	Labels   []string  `json:"labels"`
	Graph    GraphDoc  `json:"graph"`
	Station  []int     `json:"station"`
	Customer []int     `json:"customer"`
	Matrices MatrixSet `json:"matrices"`

	System SysInfo `json:"system"`
}

// SysInfo saves the basic system information
type SysInfo struct {
	Platform string
	CPU      string
	RAM      string
}

// GAPayload is the JSON input of the GA solver: the graph document plus the
// vehicle and battery-module parameters of the study.
type GAPayload struct {
	Nodes        map[string]NodeDoc `json:"nodes"`
	Edges        []EdgeDoc          `json:"edges"`
	BaseSpeed    int                `json:"base_speed"`
	Modules      []BatteryModule    `json:"modules"`
	StartingNode string             `json:"starting_node"`
	Vehicle      VehicleParams      `json:"vehicle"`
}

type BatteryModule struct {
	Capacity int `json:"capacity"`
	Soc      int `json:"soc"`
}

type VehicleParams struct {
	BaseMass int     `json:"base_mass"`
	F        float64 `json:"f"`
	Cx       float64 `json:"Cx"`
	A        float64 `json:"A"`
	M        int     `json:"m"`
}

// DATParams are the scalar constants of the CPLEX DAT header.
type DATParams struct {
	Initial int
	Eth     int
	Cswap   int
	Tswap   int
	Modules int
	Source  int
	Dest    int
	Large   int
	Nodes   int
	Visits  int
}

func DefaultDATParams(totalNodes int) DATParams {
	return DATParams{
		Initial: 100,
		Eth:     20,
		Cswap:   50,
		Tswap:   2,
		Modules: 5,
		Source:  0,
		Dest:    totalNodes,
		Large:   10000,
		Nodes:   totalNodes,
		Visits:  13,
	}
}
