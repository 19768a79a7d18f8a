// Package graph provides a small directed graph used to reason about room maps.
// Unlike a dependency graph it allows cycles and self-loops: a two-way door is
// a cycle, and an exit that leads back into the same room is legal.
package graph

import (
	"fmt"
	"sort"
)

// Node is a vertex in the graph.
type Node struct {
	ID   string
	Data any
}

// Graph is a directed graph keyed by node id.
type Graph struct {
	nodes   map[string]*Node
	edges   map[string][]string // from -> to
	parents map[string][]string // to -> from
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:   make(map[string]*Node),
		edges:   make(map[string][]string),
		parents: make(map[string][]string),
	}
}

// AddNode adds a node, replacing its data if it already exists.
func (g *Graph) AddNode(id string, data any) {
	if n, ok := g.nodes[id]; ok {
		n.Data = data
		return
	}
	g.nodes[id] = &Node{ID: id, Data: data}
	g.edges[id] = []string{}
	g.parents[id] = []string{}
}

// AddEdge adds a directed edge. Both nodes must exist.
func (g *Graph) AddEdge(from, to string) error {
	if _, ok := g.nodes[from]; !ok {
		return fmt.Errorf("node %q does not exist", from)
	}
	if _, ok := g.nodes[to]; !ok {
		return fmt.Errorf("node %q does not exist", to)
	}
	if !contains(g.edges[from], to) {
		g.edges[from] = append(g.edges[from], to)
	}
	if !contains(g.parents[to], from) {
		g.parents[to] = append(g.parents[to], from)
	}
	return nil
}

// GetNode returns a node by id.
func (g *Graph) GetNode(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// GetChildren returns the nodes reachable in one step from id.
func (g *Graph) GetChildren(id string) []string { return g.edges[id] }

// GetParents returns the nodes with an edge into id.
func (g *Graph) GetParents(id string) []string { return g.parents[id] }

// HasEdge reports whether from has an edge to to.
func (g *Graph) HasEdge(from, to string) bool { return contains(g.edges[from], to) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, to := range g.edges {
		count += len(to)
	}
	return count
}

// Reachable returns every node reachable from start, start included.
// An unknown start yields an empty set.
func (g *Graph) Reachable(start string) map[string]bool {
	seen := make(map[string]bool)
	if _, ok := g.nodes[start]; !ok {
		return seen
	}
	queue := []string{start}
	seen[start] = true
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range g.edges[id] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

// Unreachable returns the nodes not reachable from start, sorted.
func (g *Graph) Unreachable(start string) []string {
	seen := g.Reachable(start)
	var out []string
	for id := range g.nodes {
		if !seen[id] {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// GetLeaves returns nodes with no outgoing edges other than to themselves, sorted.
func (g *Graph) GetLeaves() []string {
	var leaves []string
	for id, to := range g.edges {
		if len(to) == 0 || (len(to) == 1 && to[0] == id) {
			leaves = append(leaves, id)
		}
	}
	sort.Strings(leaves)
	return leaves
}

func contains(ids []string, id string) bool {
	for _, s := range ids {
		if s == id {
			return true
		}
	}
	return false
}
