package graph

import "strings"

// Nodes returns all nodes in insertion order.
func (s *Store) Nodes() []*Node {
	out := make([]*Node, 0, len(s.nodeOrder))
	for _, id := range s.nodeOrder {
		out = append(out, s.nodes[id])
	}
	return out
}

// Edges returns all edges in insertion order.
func (s *Store) Edges() []*Edge {
	out := make([]*Edge, 0, len(s.edgeOrder))
	for _, id := range s.edgeOrder {
		out = append(out, s.edges[id])
	}
	return out
}

// NodesByType returns the nodes of the given type in insertion order.
func (s *Store) NodesByType(t NodeType) []*Node {
	ids := s.nodesByType[t]
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.nodes[id])
	}
	return out
}

// EdgesByType returns the edges of the given type in insertion order.
func (s *Store) EdgesByType(t EdgeType) []*Edge {
	ids := s.edgesByType[t]
	out := make([]*Edge, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.edges[id])
	}
	return out
}

// OutgoingEdges returns the edges whose source is the given node, in
// insertion order. Bidirectional edges arriving at the node are not
// included; callers that want undirected semantics consult IncomingEdges
// and check the flag themselves. Unknown IDs yield an empty slice.
func (s *Store) OutgoingEdges(nodeID string) []*Edge {
	out := make([]*Edge, 0, len(s.edgesBySource[nodeID]))
	for _, id := range s.edgesBySource[nodeID] {
		out = append(out, s.edges[id])
	}
	return out
}

// IncomingEdges returns the edges whose target is the given node, in
// insertion order.
func (s *Store) IncomingEdges(nodeID string) []*Edge {
	out := make([]*Edge, 0, len(s.edgesByTarget[nodeID]))
	for _, id := range s.edgesByTarget[nodeID] {
		out = append(out, s.edges[id])
	}
	return out
}

// ConnectedNodes returns the distinct neighbors reachable over any incident
// edge in either direction, in first-seen order. A self-loop contributes the
// node itself once.
func (s *Store) ConnectedNodes(nodeID string) []*Node {
	seen := make(map[string]struct{})
	var out []*Node
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		if n, ok := s.nodes[id]; ok {
			seen[id] = struct{}{}
			out = append(out, n)
		}
	}
	for _, eid := range s.edgesBySource[nodeID] {
		add(s.edges[eid].TargetID)
	}
	for _, eid := range s.edgesByTarget[nodeID] {
		add(s.edges[eid].SourceID)
	}
	return out
}

// FindEdgesBetween returns the edges connecting the two nodes in either
// stored direction.
func (s *Store) FindEdgesBetween(a, b string) []*Edge {
	var out []*Edge
	for _, id := range s.edgesBySource[a] {
		if e := s.edges[id]; e.TargetID == b {
			out = append(out, e)
		}
	}
	if a == b {
		return out
	}
	for _, id := range s.edgesBySource[b] {
		if e := s.edges[id]; e.TargetID == a {
			out = append(out, e)
		}
	}
	return out
}

// FindNodesByLabel returns the nodes whose label matches exactly, in
// insertion order.
func (s *Store) FindNodesByLabel(label string) []*Node {
	var out []*Node
	for _, id := range s.nodeOrder {
		if n := s.nodes[id]; n.Label == label {
			out = append(out, n)
		}
	}
	return out
}

// SearchNodes returns the nodes whose label, description, or tags contain
// the term, case-insensitive, in insertion order. An empty term matches
// nothing.
func (s *Store) SearchNodes(term string) []*Node {
	if term == "" {
		return nil
	}
	needle := strings.ToLower(term)
	var out []*Node
	for _, id := range s.nodeOrder {
		n := s.nodes[id]
		if nodeMatches(n, needle) {
			out = append(out, n)
		}
	}
	return out
}

func nodeMatches(n *Node, needle string) bool {
	if strings.Contains(strings.ToLower(n.Label), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Description), needle) {
		return true
	}
	for _, tag := range n.Metadata.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Stats computes aggregate counts over the current graph.
func (s *Store) Stats() Statistics {
	stats := Statistics{
		NodeCount:   len(s.nodes),
		EdgeCount:   len(s.edges),
		NodesByType: make(map[NodeType]int),
		EdgesByType: make(map[EdgeType]int),
	}
	for t, ids := range s.nodesByType {
		stats.NodesByType[t] = len(ids)
	}
	for t, ids := range s.edgesByType {
		stats.EdgesByType[t] = len(ids)
	}
	for _, id := range s.edgeOrder {
		if s.edges[id].Bidirectional {
			stats.BidirectionalEdges++
		}
	}
	if stats.NodeCount > 0 {
		stats.AvgOutDegree = float64(stats.EdgeCount) / float64(stats.NodeCount)
	}
	return stats
}
