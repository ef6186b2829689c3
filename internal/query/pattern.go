package query

import (
	"fmt"

	"github.com/latticekg/lattice/internal/graph"
)

// NodePattern constrains one node slot of a Pattern. A zero value matches
// any node.
type NodePattern struct {
	Type      graph.NodeType
	Predicate NodePredicate
}

func (p NodePattern) matches(n *graph.Node) bool {
	if p.Type != "" && n.Type != p.Type {
		return false
	}
	if p.Predicate != nil && !p.Predicate(n) {
		return false
	}
	return true
}

// EdgePattern constrains one edge of a Pattern, connecting node slots From
// and To by index.
type EdgePattern struct {
	Type graph.EdgeType
	From int
	To   int
}

// Pattern is a small typed template of node slots joined by edge
// constraints.
type Pattern struct {
	Nodes []NodePattern
	Edges []EdgePattern
}

// Match binds each pattern slot to a concrete node, with the edges that
// satisfied the constraints.
type Match struct {
	Nodes []*graph.Node
	Edges []*graph.Edge
}

// FindPattern matches the pattern against the graph, trying every node as
// a binding for slot 0 in insertion order.
//
// Matching is greedy: for each edge constraint the first qualifying edge
// wins and later alternatives are never revisited, so graphs with multiple
// valid bindings per slot under-report matches. This is deliberate; call
// sites depend on the conservative counts, so do not upgrade it to
// backtracking subgraph isomorphism.
func (e *Engine) FindPattern(pattern Pattern) ([]Match, error) {
	if len(pattern.Nodes) == 0 {
		return nil, fmt.Errorf("%w: pattern has no node slots", ErrInvalidQuery)
	}
	for _, ep := range pattern.Edges {
		if ep.From < 0 || ep.From >= len(pattern.Nodes) ||
			ep.To < 0 || ep.To >= len(pattern.Nodes) {
			return nil, fmt.Errorf("%w: edge references node slot out of range (%d->%d of %d)",
				ErrInvalidQuery, ep.From, ep.To, len(pattern.Nodes))
		}
	}

	var matches []Match
	for _, start := range e.store.Nodes() {
		if !pattern.Nodes[0].matches(start) {
			continue
		}
		if m, ok := e.bindFrom(start, pattern); ok {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

// bindFrom attempts one greedy binding with start in slot 0. Slots are
// filled as edge constraints reference them; an edge whose From slot is
// still empty fails the whole candidate.
func (e *Engine) bindFrom(start *graph.Node, pattern Pattern) (Match, bool) {
	bound := make([]*graph.Node, len(pattern.Nodes))
	bound[0] = start
	var edges []*graph.Edge

	for _, ep := range pattern.Edges {
		src := bound[ep.From]
		if src == nil {
			return Match{}, false
		}
		found := false
		for _, edge := range e.store.OutgoingEdges(src.ID) {
			if ep.Type != "" && edge.Type != ep.Type {
				continue
			}
			target, ok := e.store.GetNode(edge.TargetID)
			if !ok || !pattern.Nodes[ep.To].matches(target) {
				continue
			}
			if bound[ep.To] != nil && bound[ep.To].ID != target.ID {
				continue
			}
			bound[ep.To] = target
			edges = append(edges, edge)
			found = true
			break
		}
		if !found {
			return Match{}, false
		}
	}

	for _, n := range bound {
		if n == nil {
			// A slot no edge constraint ever reached stays unbound;
			// the candidate does not count as a full match.
			return Match{}, false
		}
	}
	return Match{Nodes: bound, Edges: edges}, true
}
