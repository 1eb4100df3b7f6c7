package graph

import (
	"encoding/json"
	"fmt"
)

// ---------------------------------------------------------------------------
// Insider Graph — known insider-wallet clusters for a token
// Fetched fresh per request from the graph provider; no long-lived state.
// ---------------------------------------------------------------------------

// Node is a wallet in the insider graph. ID is the wallet address and is
// unique per node in well-formed graphs.
type Node struct {
	ID          string  `json:"id"`
	Participant bool    `json:"participant"`
	Holdings    float64 `json:"holdings"`
}

// Edge is an association between two wallets. Endpoints may dangle
// (reference no node); lookups treat those as not found.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the insider-wallet cluster graph for a token.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Empty returns the graph substituted when the provider is unavailable.
// Every membership check against it is false.
func Empty() *Graph {
	return &Graph{Nodes: []Node{}, Edges: []Edge{}}
}

// Parse decodes a graph document. Missing nodes/edges arrays decode to nil
// slices and behave as empty; callers substitute Empty() only on decode
// failure.
func Parse(data []byte) (*Graph, error) {
	g := &Graph{}
	if err := json.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("parse insider graph: %w", err)
	}
	return g, nil
}

// Contains reports whether addr appears as a node id. This is the single
// membership test behind both the risk scorer's insider term and the
// profile's isInsider field.
func (g *Graph) Contains(addr string) bool {
	if g == nil || addr == "" {
		return false
	}
	for _, n := range g.Nodes {
		if n.ID == addr {
			return true
		}
	}
	return false
}

// ConnectionCount returns the number of nodes whose id equals addr.
// It does not traverse edges: the upstream scoring model counts id
// matches, so for unique ids the result is at most 1.
func (g *Graph) ConnectionCount(addr string) int {
	if g == nil || addr == "" {
		return 0
	}
	count := 0
	for _, n := range g.Nodes {
		if n.ID == addr {
			count++
		}
	}
	return count
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	if g == nil {
		return 0
	}
	return len(g.Nodes)
}

// EdgeCount returns the number of edges, dangling ones included.
func (g *Graph) EdgeCount() int {
	if g == nil {
		return 0
	}
	return len(g.Edges)
}
