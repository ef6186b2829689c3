package graph

import "time"

// Store is the single owner of all nodes and edges plus four derived
// indices (nodes by type, edges by source, edges by target, edges by type).
// Index mutations stay in lock-step with the primary maps; nothing outside
// this package mutates them directly.
//
// Thread Safety:
//
//	Store is synchronous and single-threaded by contract. It holds no
//	locks and offers no protection against a mutation racing an in-flight
//	traversal; callers in a multi-goroutine environment must serialize
//	access externally.
type Store struct {
	nodes map[string]*Node
	edges map[string]*Edge

	// nodeOrder/edgeOrder preserve insertion order so that scans and
	// traversal neighbor expansion are deterministic.
	nodeOrder []string
	edgeOrder []string

	nodesByType   map[NodeType][]string
	edgesBySource map[string][]string
	edgesByTarget map[string][]string
	edgesByType   map[EdgeType][]string
}

// NewStore creates an empty graph store.
func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.nodes = make(map[string]*Node)
	s.edges = make(map[string]*Edge)
	s.nodeOrder = s.nodeOrder[:0]
	s.edgeOrder = s.edgeOrder[:0]
	s.nodesByType = make(map[NodeType][]string)
	s.edgesBySource = make(map[string][]string)
	s.edgesByTarget = make(map[string][]string)
	s.edgesByType = make(map[EdgeType][]string)
}

// Clear resets the store to its empty state: every map, order slice, and
// index is dropped.
func (s *Store) Clear() {
	s.reset()
}

// NodeCount returns the number of nodes in the store.
func (s *Store) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of edges in the store.
func (s *Store) EdgeCount() int { return len(s.edges) }

// AddNode inserts a node, or silently overwrites the existing node with the
// same ID (by design, not guarded). The type index is updated; no validation
// of the type-specific payload happens here.
//
// The store takes ownership of the value. CreatedAt is stamped when zero,
// UpdatedAt always.
func (s *Store) AddNode(node *Node) {
	if node == nil || node.ID == "" {
		return
	}
	now := time.Now()
	if node.Metadata.CreatedAt.IsZero() {
		node.Metadata.CreatedAt = now
	}
	node.Metadata.UpdatedAt = now

	if old, exists := s.nodes[node.ID]; exists {
		// Overwrite: keep the insertion-order slot, fix the type index.
		if old.Type != node.Type {
			s.nodesByType[old.Type] = removeID(s.nodesByType[old.Type], node.ID)
			s.nodesByType[node.Type] = append(s.nodesByType[node.Type], node.ID)
		}
		s.nodes[node.ID] = node
		return
	}

	s.nodes[node.ID] = node
	s.nodeOrder = append(s.nodeOrder, node.ID)
	s.nodesByType[node.Type] = append(s.nodesByType[node.Type], node.ID)
}

// GetNode retrieves a node by ID. Absent IDs yield (nil, false), never an
// error. The returned value is the store's own; treat it as read-only.
func (s *Store) GetNode(id string) (*Node, bool) {
	node, ok := s.nodes[id]
	return node, ok
}

// NodePatch describes a partial node update. Nil fields are left untouched;
// Tags and Props overlay the existing metadata (Props merge by key).
type NodePatch struct {
	Label       *string
	Description *string
	Tags        []string
	Props       map[string]string

	Code         *CodeDetail
	Business     *BusinessDetail
	Document     *DocumentDetail
	Conversation *ConversationDetail
}

// UpdateNode shallow-merges the patch over the existing node and stamps
// UpdatedAt. No-op when the ID is absent.
func (s *Store) UpdateNode(id string, patch NodePatch) {
	node, ok := s.nodes[id]
	if !ok {
		return
	}
	if patch.Label != nil {
		node.Label = *patch.Label
	}
	if patch.Description != nil {
		node.Description = *patch.Description
	}
	if patch.Tags != nil {
		node.Metadata.Tags = mergeTags(node.Metadata.Tags, patch.Tags)
	}
	if patch.Props != nil {
		if node.Metadata.Props == nil {
			node.Metadata.Props = make(map[string]string, len(patch.Props))
		}
		for k, v := range patch.Props {
			node.Metadata.Props[k] = v
		}
	}
	if patch.Code != nil {
		node.Code = patch.Code
	}
	if patch.Business != nil {
		node.Business = patch.Business
	}
	if patch.Document != nil {
		node.Document = patch.Document
	}
	if patch.Conversation != nil {
		node.Conversation = patch.Conversation
	}
	node.Metadata.UpdatedAt = time.Now()
}

// RemoveNode removes a node and cascades: every edge for which the node is
// source or target is removed first (clearing all edge indices), then the
// node leaves the type index and the primary map. No-op when absent.
func (s *Store) RemoveNode(id string) {
	node, ok := s.nodes[id]
	if !ok {
		return
	}

	// Collect incident edge IDs before mutating the indices we iterate.
	incident := make([]string, 0, len(s.edgesBySource[id])+len(s.edgesByTarget[id]))
	incident = append(incident, s.edgesBySource[id]...)
	for _, eid := range s.edgesByTarget[id] {
		if e, ok := s.edges[eid]; ok && e.SourceID != id {
			incident = append(incident, eid)
		}
	}
	for _, eid := range incident {
		s.RemoveEdge(eid)
	}

	s.nodesByType[node.Type] = removeID(s.nodesByType[node.Type], id)
	if len(s.nodesByType[node.Type]) == 0 {
		delete(s.nodesByType, node.Type)
	}
	s.nodeOrder = removeID(s.nodeOrder, id)
	delete(s.nodes, id)
	delete(s.edgesBySource, id)
	delete(s.edgesByTarget, id)
}

// AddEdge inserts an edge, or silently overwrites the existing edge with the
// same ID. Endpoints are not checked for existence (trust the caller;
// Validate reports dangling references on demand). A zero weight is
// normalized to the default 1.0.
func (s *Store) AddEdge(edge *Edge) {
	if edge == nil || edge.ID == "" {
		return
	}
	if edge.Weight == 0 {
		edge.Weight = 1.0
	}
	now := time.Now()
	if edge.Metadata.CreatedAt.IsZero() {
		edge.Metadata.CreatedAt = now
	}
	edge.Metadata.UpdatedAt = now

	if old, exists := s.edges[edge.ID]; exists {
		s.unindexEdge(old)
		s.edges[edge.ID] = edge
		s.indexEdge(edge)
		return
	}

	s.edges[edge.ID] = edge
	s.edgeOrder = append(s.edgeOrder, edge.ID)
	s.indexEdge(edge)
}

// GetEdge retrieves an edge by ID. Absent IDs yield (nil, false).
func (s *Store) GetEdge(id string) (*Edge, bool) {
	edge, ok := s.edges[id]
	return edge, ok
}

// EdgePatch describes a partial edge update.
type EdgePatch struct {
	Type          *EdgeType
	Bidirectional *bool
	Weight        *float64
	Tags          []string
	Props         map[string]string
}

// UpdateEdge shallow-merges the patch over the existing edge and stamps
// UpdatedAt, keeping the type index consistent when the type changes.
// No-op when the ID is absent.
func (s *Store) UpdateEdge(id string, patch EdgePatch) {
	edge, ok := s.edges[id]
	if !ok {
		return
	}
	if patch.Type != nil && *patch.Type != edge.Type {
		s.edgesByType[edge.Type] = removeID(s.edgesByType[edge.Type], id)
		if len(s.edgesByType[edge.Type]) == 0 {
			delete(s.edgesByType, edge.Type)
		}
		edge.Type = *patch.Type
		s.edgesByType[edge.Type] = append(s.edgesByType[edge.Type], id)
	}
	if patch.Bidirectional != nil {
		edge.Bidirectional = *patch.Bidirectional
	}
	if patch.Weight != nil {
		edge.Weight = *patch.Weight
	}
	if patch.Tags != nil {
		edge.Metadata.Tags = mergeTags(edge.Metadata.Tags, patch.Tags)
	}
	if patch.Props != nil {
		if edge.Metadata.Props == nil {
			edge.Metadata.Props = make(map[string]string, len(patch.Props))
		}
		for k, v := range patch.Props {
			edge.Metadata.Props[k] = v
		}
	}
	edge.Metadata.UpdatedAt = time.Now()
}

// RemoveEdge removes an edge from the primary map and all three edge
// indices. No-op when absent.
func (s *Store) RemoveEdge(id string) {
	edge, ok := s.edges[id]
	if !ok {
		return
	}
	s.unindexEdge(edge)
	s.edgeOrder = removeID(s.edgeOrder, id)
	delete(s.edges, id)
}

// --- index maintenance ---

func (s *Store) indexEdge(edge *Edge) {
	s.edgesBySource[edge.SourceID] = append(s.edgesBySource[edge.SourceID], edge.ID)
	s.edgesByTarget[edge.TargetID] = append(s.edgesByTarget[edge.TargetID], edge.ID)
	s.edgesByType[edge.Type] = append(s.edgesByType[edge.Type], edge.ID)
}

func (s *Store) unindexEdge(edge *Edge) {
	s.edgesBySource[edge.SourceID] = removeID(s.edgesBySource[edge.SourceID], edge.ID)
	if len(s.edgesBySource[edge.SourceID]) == 0 {
		delete(s.edgesBySource, edge.SourceID)
	}
	s.edgesByTarget[edge.TargetID] = removeID(s.edgesByTarget[edge.TargetID], edge.ID)
	if len(s.edgesByTarget[edge.TargetID]) == 0 {
		delete(s.edgesByTarget, edge.TargetID)
	}
	s.edgesByType[edge.Type] = removeID(s.edgesByType[edge.Type], edge.ID)
	if len(s.edgesByType[edge.Type]) == 0 {
		delete(s.edgesByType, edge.Type)
	}
}

// removeID filters the first occurrence of id out of ids, in place.
func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// mergeTags overlays patch tags onto existing tags, deduplicated, keeping
// existing order first.
func mergeTags(existing, patch []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(patch))
	out := make([]string, 0, len(existing)+len(patch))
	for _, t := range existing {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	for _, t := range patch {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
