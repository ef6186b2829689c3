// Package traversal implements graph walks and structural analyses over a
// graph.Store: BFS/DFS, path finding, connectivity, cycle detection,
// topological ordering, and strongly connected components.
//
// The walks and component analyses are iterative with explicit stacks so
// deep graphs cannot blow the goroutine stack. Neighbor expansion follows
// the store's edge insertion order, which makes every result deterministic
// for a given construction sequence.
//
// Everything here is read-only over the store and single-threaded by
// contract; callers serialize mutations against in-flight walks themselves.
package traversal

import "github.com/latticekg/lattice/internal/graph"

// Options controls a BFS or DFS walk.
type Options struct {
	// MaxDepth bounds the walk; negative means unbounded.
	MaxDepth int
	// VisitOnce suppresses repeat appearances of a node in the visit
	// order. When false a node is listed once per edge that reaches it,
	// though it is only ever expanded once.
	VisitOnce bool
	// FollowBidirectional also walks edges flagged bidirectional against
	// their stored direction.
	FollowBidirectional bool
}

// DefaultOptions returns an unbounded, visit-once walk that follows
// bidirectional edges both ways.
func DefaultOptions() Options {
	return Options{MaxDepth: -1, VisitOnce: true, FollowBidirectional: true}
}

// Result describes a completed walk.
type Result struct {
	Start string
	// Order lists visited node IDs in visit order, starting with Start.
	Order []string
	// Depth maps each visited node to its distance from Start at first
	// discovery.
	Depth map[string]int
	// Parent maps each visited node (except Start) to its first
	// discoverer.
	Parent map[string]string
	// Edges lists the edges traversed, in traversal order.
	Edges []*graph.Edge
}

// step is one forward move: the edge taken and the node it leads to.
type step struct {
	edge *graph.Edge
	to   string
}

// forward returns the moves available from id: outgoing edges toward their
// targets, plus, when followBidi is set, bidirectional edges walked back
// toward their sources.
func forward(s *graph.Store, id string, followBidi bool) []step {
	edges := s.OutgoingEdges(id)
	out := make([]step, 0, len(edges))
	for _, e := range edges {
		out = append(out, step{edge: e, to: e.TargetID})
	}
	if followBidi {
		for _, e := range s.IncomingEdges(id) {
			if e.Bidirectional && e.SourceID != id {
				out = append(out, step{edge: e, to: e.SourceID})
			}
		}
	}
	return out
}

// BFS walks breadth-first from start. A start ID not in the store yields a
// nil result.
func BFS(s *graph.Store, start string, opts Options) *Result {
	if _, ok := s.GetNode(start); !ok {
		return nil
	}
	res := &Result{
		Start:  start,
		Order:  []string{start},
		Depth:  map[string]int{start: 0},
		Parent: make(map[string]string),
	}

	type item struct {
		id    string
		depth int
	}
	queue := []item{{start, 0}}
	expanded := map[string]bool{start: true}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if opts.MaxDepth >= 0 && cur.depth >= opts.MaxDepth {
			continue
		}
		for _, st := range forward(s, cur.id, opts.FollowBidirectional) {
			if _, ok := s.GetNode(st.to); !ok {
				continue
			}
			_, discovered := res.Depth[st.to]
			if discovered && opts.VisitOnce {
				continue
			}
			res.Edges = append(res.Edges, st.edge)
			res.Order = append(res.Order, st.to)
			if !discovered {
				res.Depth[st.to] = cur.depth + 1
				res.Parent[st.to] = cur.id
			}
			if !expanded[st.to] {
				expanded[st.to] = true
				queue = append(queue, item{st.to, cur.depth + 1})
			}
		}
	}
	return res
}

// DFS walks depth-first from start using an explicit stack. Children are
// pushed in reverse so they come off the stack in insertion order, matching
// the recursive formulation.
func DFS(s *graph.Store, start string, opts Options) *Result {
	if _, ok := s.GetNode(start); !ok {
		return nil
	}
	res := &Result{
		Start:  start,
		Depth:  make(map[string]int),
		Parent: make(map[string]string),
	}

	type frame struct {
		id    string
		via   *graph.Edge
		from  string
		depth int
	}
	stack := []frame{{id: start}}
	expanded := make(map[string]bool)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		_, discovered := res.Depth[cur.id]
		if discovered && opts.VisitOnce {
			continue
		}
		if cur.via != nil {
			res.Edges = append(res.Edges, cur.via)
		}
		res.Order = append(res.Order, cur.id)
		if !discovered {
			res.Depth[cur.id] = cur.depth
			if cur.id != start {
				res.Parent[cur.id] = cur.from
			}
		}
		if expanded[cur.id] {
			continue
		}
		expanded[cur.id] = true

		if opts.MaxDepth >= 0 && cur.depth >= opts.MaxDepth {
			continue
		}
		moves := forward(s, cur.id, opts.FollowBidirectional)
		for i := len(moves) - 1; i >= 0; i-- {
			st := moves[i]
			if expanded[st.to] && opts.VisitOnce {
				continue
			}
			if _, ok := s.GetNode(st.to); !ok {
				continue
			}
			stack = append(stack, frame{id: st.to, via: st.edge, from: cur.id, depth: cur.depth + 1})
		}
	}
	return res
}
