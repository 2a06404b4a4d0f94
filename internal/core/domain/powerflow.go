package domain

import "strings"

const (
	NODE_GRID    = "GRID"
	NODE_LOAD    = "LOAD"
	NODE_PV      = "PV"
	NODE_STORAGE = "STORAGE"
)

// STATUS_UNKNOWN is the defined status reading for a node the API did not
// report this snapshot.
const STATUS_UNKNOWN = "unknown"

// PowerFlowNode is one endpoint of the power-flow graph. ChargeLevel is
// only meaningful for STORAGE.
type PowerFlowNode struct {
	CurrentPower float64
	Status       string
	ChargeLevel  float64
}

// Connection is a directed edge of the power-flow graph. Endpoints are
// stored normalized to upper case.
type Connection struct {
	From string
	To   string
}

// PowerFlowGraph is the ephemeral snapshot model of one currentPowerFlow
// response. Node names compare case-insensitively; NewPowerFlowGraph
// normalizes keys and edge endpoints once so lookups stay plain map access.
type PowerFlowGraph struct {
	Unit        string
	Nodes       map[string]PowerFlowNode
	Connections []Connection
}

func NewPowerFlowGraph(unit string, nodes map[string]PowerFlowNode, connections []Connection) *PowerFlowGraph {
	normalized := make(map[string]PowerFlowNode, len(nodes))
	for name, node := range nodes {
		normalized[strings.ToUpper(name)] = node
	}
	edges := make([]Connection, 0, len(connections))
	for _, c := range connections {
		edges = append(edges, Connection{
			From: strings.ToUpper(c.From),
			To:   strings.ToUpper(c.To),
		})
	}
	return &PowerFlowGraph{
		Unit:        unit,
		Nodes:       normalized,
		Connections: edges,
	}
}

// Node returns the reading for name, or a defined default (power 0,
// status "unknown", charge level 0) when the node is absent from the
// snapshot. An absent node is regular, not an error.
func (g *PowerFlowGraph) Node(name string) PowerFlowNode {
	if node, ok := g.Nodes[strings.ToUpper(name)]; ok {
		if node.Status == "" {
			node.Status = STATUS_UNKNOWN
		}
		return node
	}
	return PowerFlowNode{Status: STATUS_UNKNOWN}
}

// DerivedSignals are the directional flags computed from the connection set.
type DerivedSignals struct {
	FeedToGrid    bool
	FeedToBattery bool
}

// EnergyOverview is the parsed overview endpoint payload. Power in W,
// energy aggregates in Wh.
type EnergyOverview struct {
	LastUpdateTime  string
	CurrentPower    float64
	LifeTimeEnergy  float64
	LastYearEnergy  float64
	LastMonthEnergy float64
	LastDayEnergy   float64
}

// ValueUpdate pairs a data-point key with the value to publish this run.
type ValueUpdate struct {
	Key   string
	Value any
}
