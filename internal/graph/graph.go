// Package graph is the static cross-sphere adjacency graph and its pathfinder.
//
// Edges are directed: a sphere listing a neighbour does not imply the
// neighbour lists it back. Neighbour order is significant, it decides which
// of several equally short paths ShortestPath returns.
package graph

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/zjrosen/spherenav/internal/sphere"
)

// ErrUnknownDomain is returned by Validate when an adjacency list mentions a
// sphere the registry does not know.
var ErrUnknownDomain = errors.New("adjacency references unknown domain")

// Validator is the part of the registry the graph checks itself against.
type Validator interface {
	IsValidDomain(id sphere.DomainID) bool
}

// Edge is a directed adjacency.
type Edge struct {
	From sphere.DomainID
	To   sphere.DomainID
}

// Graph is immutable after New and safe for concurrent readers.
type Graph struct {
	adj   map[sphere.DomainID][]sphere.DomainID
	nodes []sphere.DomainID // sorted keys, for deterministic reports
}

// New copies adj into a graph.
func New(adj map[sphere.DomainID][]sphere.DomainID) *Graph {
	g := &Graph{adj: make(map[sphere.DomainID][]sphere.DomainID, len(adj))}
	for from, to := range adj {
		g.adj[from] = slices.Clone(to)
		g.nodes = append(g.nodes, from)
	}
	sort.Slice(g.nodes, func(i, j int) bool { return g.nodes[i] < g.nodes[j] })
	return g
}

// Neighbors returns the adjacency list of d in graph order.
func (g *Graph) Neighbors(d sphere.DomainID) []sphere.DomainID {
	return slices.Clone(g.adj[d])
}

// AreDirectlyConnected reports whether b appears in a's adjacency list.
func (g *Graph) AreDirectlyConnected(a, b sphere.DomainID) bool {
	return slices.Contains(g.adj[a], b)
}

// ShortestPath returns the fewest-hop path from → to, both ends included.
// When no path exists it returns the sentinel pair [from, to]; callers that
// need to tell that apart from a real edge use Path.
func (g *Graph) ShortestPath(from, to sphere.DomainID) []sphere.DomainID {
	path, ok := g.Path(from, to)
	if !ok {
		return []sphere.DomainID{from, to}
	}
	return path
}

// Path is ShortestPath with an explicit found flag.
func (g *Graph) Path(from, to sphere.DomainID) ([]sphere.DomainID, bool) {
	if from == to {
		return []sphere.DomainID{from}, true
	}
	if g.AreDirectlyConnected(from, to) {
		return []sphere.DomainID{from, to}, true
	}

	// BFS; the first discovery of a node fixes its parent, so ties resolve
	// in neighbour-list order.
	parent := map[sphere.DomainID]sphere.DomainID{}
	visited := map[sphere.DomainID]bool{from: true}
	queue := []sphere.DomainID{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, next := range g.adj[cur] {
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = cur
			if next == to {
				return walkBack(parent, from, to), true
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}

func walkBack(parent map[sphere.DomainID]sphere.DomainID, from, to sphere.DomainID) []sphere.DomainID {
	path := []sphere.DomainID{to}
	for cur := to; cur != from; {
		cur = parent[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}

// Asymmetries lists every edge whose reverse edge is missing, ordered by
// source then by adjacency order.
func (g *Graph) Asymmetries() []Edge {
	var out []Edge
	for _, from := range g.nodes {
		for _, to := range g.adj[from] {
			if !g.AreDirectlyConnected(to, from) {
				out = append(out, Edge{From: from, To: to})
			}
		}
	}
	return out
}

// Validate checks that every sphere named in the graph is known to v.
func (g *Graph) Validate(v Validator) error {
	for _, from := range g.nodes {
		if !v.IsValidDomain(from) {
			return fmt.Errorf("%w: %q", ErrUnknownDomain, from)
		}
		for _, to := range g.adj[from] {
			if !v.IsValidDomain(to) {
				return fmt.Errorf("%w: %q (listed by %q)", ErrUnknownDomain, to, from)
			}
		}
	}
	return nil
}

// Builtin returns the adjacency of the built-in spheres.
// learning → personal has no reverse edge; Asymmetries reports it.
func Builtin() map[sphere.DomainID][]sphere.DomainID {
	return map[sphere.DomainID][]sphere.DomainID{
		sphere.Business:  {sphere.Finance, sphere.Personal, sphere.Learning, sphere.Community},
		sphere.Personal:  {sphere.Business, sphere.Health, sphere.Home, sphere.Community},
		sphere.Finance:   {sphere.Business, sphere.Home},
		sphere.Health:    {sphere.Personal, sphere.Home},
		sphere.Learning:  {sphere.Business, sphere.Personal},
		sphere.Home:      {sphere.Personal, sphere.Finance, sphere.Health},
		sphere.Community: {sphere.Personal, sphere.Business},
	}
}
