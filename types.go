// Package mtz holds the instance and solution documents shared by the
// command line tools, together with their file helpers.
package mtz

import "git.solver4all.com/azaryc2s/mtz/tsp"

const (
	TypeTSP  = "TSP"
	TypeATSP = "ATSP"

	WeightExplicit = "EXPLICIT"
	WeightEuc2D    = "EUC_2D"
	WeightCeil2D   = "CEIL_2D"
)

type Instance struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
	Type    string `json:"type"`

	Dimension       int         `json:"dimension"`
	DisplayDataType string      `json:"display_data_type,omitempty"`
	EdgeWeightType  string      `json:"edge_weight_type"`
	NodeCoordinates [][]float64 `json:"node_coordinates,omitempty"`
	EdgeWeights     [][]float64 `json:"edge_weights,omitempty"`
	TSPLength       float64     `json:"tsp_length"`

	Solution *Solution `json:"solution,omitempty"`
}

type Solution struct {
	Status    string     `json:"status"`
	Optimal   bool       `json:"optimal"`
	Obj       float64    `json:"obj"`
	Tour      []tsp.Edge `json:"tour"`
	RouteCost float64    `json:"route_cost"`
	Backend   string     `json:"backend"`
	Nodes     int        `json:"nodes"`

	Time    string  `json:"time"`
	System  SysInfo `json:"system"`
	Comment string  `json:"comment"`
}

// SysInfo saves the basic system information
type SysInfo struct {
	Platform string
	CPU      string
	RAM      string
}
