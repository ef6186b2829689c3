package query

import (
	"math"
	"sort"

	"github.com/latticekg/lattice/internal/graph"
)

// Path is a walk through the graph: the node sequence, the edges joining
// consecutive nodes, the edge count, and the summed edge weight.
type Path struct {
	Nodes  []*graph.Node
	Edges  []*graph.Edge
	Length int
	Weight float64
}

// PathOptions bounds a FindPaths enumeration.
type PathOptions struct {
	// MaxDepth caps the edge count per path; non-positive defaults to 10.
	MaxDepth int
	// Limit stops the search after that many paths; non-positive
	// defaults to 100.
	Limit int
}

// FindPaths enumerates simple paths from one node to another over outgoing
// edges, depth-first, stopping once Limit paths are found. Results are
// sorted by Length ascending; ties keep discovery order. Unknown endpoints
// yield nil.
func (e *Engine) FindPaths(from, to string, opts PathOptions) []Path {
	if _, ok := e.store.GetNode(from); !ok {
		return nil
	}
	if _, ok := e.store.GetNode(to); !ok {
		return nil
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 10
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}

	if from == to {
		return []Path{e.materialize([]string{from}, nil)}
	}

	// Explicit stack; walk depth is user-controlled, so no recursion.
	type frame struct {
		id   string
		via  *graph.Edge // edge taken to reach id; nil on the start frame
		out  []*graph.Edge
		next int
	}
	var paths []Path
	onPath := map[string]bool{from: true}
	stack := []*frame{{id: from, out: e.store.OutgoingEdges(from)}}

	for len(stack) > 0 && len(paths) < limit {
		f := stack[len(stack)-1]
		if f.next >= len(f.out) {
			stack = stack[:len(stack)-1]
			delete(onPath, f.id)
			continue
		}
		edge := f.out[f.next]
		f.next++

		if onPath[edge.TargetID] {
			continue
		}
		if _, ok := e.store.GetNode(edge.TargetID); !ok {
			continue
		}
		// Reaching edge.TargetID uses len(stack) edges.
		if len(stack) > maxDepth {
			continue
		}
		if edge.TargetID == to {
			nodeIDs := make([]string, 0, len(stack)+1)
			walk := make([]*graph.Edge, 0, len(stack))
			for i, fr := range stack {
				nodeIDs = append(nodeIDs, fr.id)
				if i > 0 {
					walk = append(walk, fr.via)
				}
			}
			nodeIDs = append(nodeIDs, to)
			walk = append(walk, edge)
			paths = append(paths, e.materialize(nodeIDs, walk))
			continue
		}
		if len(stack) >= maxDepth {
			continue
		}
		onPath[edge.TargetID] = true
		stack = append(stack, &frame{
			id:  edge.TargetID,
			via: edge,
			out: e.store.OutgoingEdges(edge.TargetID),
		})
	}

	sort.SliceStable(paths, func(i, j int) bool {
		return paths[i].Length < paths[j].Length
	})
	return paths
}

// materialize copies the current walk into a standalone Path.
func (e *Engine) materialize(nodeIDs []string, edges []*graph.Edge) Path {
	p := Path{
		Nodes:  make([]*graph.Node, 0, len(nodeIDs)),
		Edges:  append([]*graph.Edge(nil), edges...),
		Length: len(edges),
	}
	for _, id := range nodeIDs {
		n, _ := e.store.GetNode(id)
		p.Nodes = append(p.Nodes, n)
	}
	for _, edge := range edges {
		p.Weight += edge.Weight
	}
	return p
}

// FindShortestPath finds the minimum-weight path between two nodes over
// outgoing edges using Dijkstra's algorithm. Edge weights default to 1 and
// are never negative in a validated graph. The unvisited set is scanned
// linearly, so each call is O(V^2); fine for the in-memory graphs this
// store targets, not for millions of nodes. An unreachable target or
// unknown endpoint yields the zero Path.
func (e *Engine) FindShortestPath(from, to string) Path {
	if _, ok := e.store.GetNode(from); !ok {
		return Path{}
	}
	if _, ok := e.store.GetNode(to); !ok {
		return Path{}
	}

	dist := map[string]float64{from: 0}
	prev := map[string]*graph.Edge{}
	visited := map[string]bool{}

	for {
		// Pick the nearest unvisited node.
		cur := ""
		best := math.Inf(1)
		for id, d := range dist {
			if !visited[id] && d < best {
				cur, best = id, d
			}
		}
		if cur == "" {
			return Path{} // target unreachable
		}
		if cur == to {
			break
		}
		visited[cur] = true

		for _, edge := range e.store.OutgoingEdges(cur) {
			next := edge.TargetID
			if visited[next] {
				continue
			}
			if _, ok := e.store.GetNode(next); !ok {
				continue
			}
			if d := best + edge.Weight; d < getOrInf(dist, next) {
				dist[next] = d
				prev[next] = edge
			}
		}
	}

	// Rebuild by walking prev edges back from the target.
	var nodeIDs []string
	var edges []*graph.Edge
	for cur := to; cur != from; {
		edge := prev[cur]
		if edge == nil {
			break
		}
		nodeIDs = append([]string{cur}, nodeIDs...)
		edges = append([]*graph.Edge{edge}, edges...)
		cur = edge.SourceID
	}
	nodeIDs = append([]string{from}, nodeIDs...)
	return e.materialize(nodeIDs, edges)
}

func getOrInf(dist map[string]float64, id string) float64 {
	if d, ok := dist[id]; ok {
		return d
	}
	return math.Inf(1)
}

// Neighborhood is the set of nodes within a distance bound of a center,
// with each node's hop distance.
type Neighborhood struct {
	Center   string
	Nodes    []*graph.Node
	Distance map[string]int
}

// FindNeighborhood collects every node within maxDistance hops of the
// center, walking edges in both directions. The center itself is included
// at distance 0. Negative maxDistance means unbounded.
func (e *Engine) FindNeighborhood(center string, maxDistance int) Neighborhood {
	nb := Neighborhood{Center: center, Distance: map[string]int{}}
	start, ok := e.store.GetNode(center)
	if !ok {
		return nb
	}
	nb.Nodes = append(nb.Nodes, start)
	nb.Distance[center] = 0

	queue := []string{center}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := nb.Distance[cur]
		if maxDistance >= 0 && d >= maxDistance {
			continue
		}
		for _, n := range e.store.ConnectedNodes(cur) {
			if _, seen := nb.Distance[n.ID]; seen {
				continue
			}
			nb.Distance[n.ID] = d + 1
			nb.Nodes = append(nb.Nodes, n)
			queue = append(queue, n.ID)
		}
	}
	return nb
}
