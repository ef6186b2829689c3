package graph

import "fmt"

// Issue describes one consistency problem found by Validate.
type Issue struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Kind, i.ID, i.Message)
}

// Validate scans the graph and reports every consistency issue it finds:
// dangling edge endpoints, duplicate directed edges, missing type payloads,
// and payloads that do not match the node's declared type. Mutations never
// validate; this runs only on demand and never mutates.
func (s *Store) Validate() []Issue {
	var issues []Issue

	for _, id := range s.nodeOrder {
		node := s.nodes[id]
		issues = append(issues, validateNode(node)...)
	}

	// Duplicate directed edges: a repeated (source, target, type) triple is
	// redundant unless one of the pair is bidirectional.
	seen := make(map[string]string, len(s.edgeOrder))

	for _, id := range s.edgeOrder {
		edge := s.edges[id]
		if _, ok := s.nodes[edge.SourceID]; !ok {
			issues = append(issues, Issue{
				Kind:    "edge",
				ID:      id,
				Message: fmt.Sprintf("source node %q does not exist", edge.SourceID),
			})
		}
		if _, ok := s.nodes[edge.TargetID]; !ok {
			issues = append(issues, Issue{
				Kind:    "edge",
				ID:      id,
				Message: fmt.Sprintf("target node %q does not exist", edge.TargetID),
			})
		}
		if edge.Weight < 0 {
			issues = append(issues, Issue{
				Kind:    "edge",
				ID:      id,
				Message: fmt.Sprintf("negative weight %g", edge.Weight),
			})
		}
		if !edge.Bidirectional {
			key := edge.SourceID + "\x00" + edge.TargetID + "\x00" + string(edge.Type)
			if firstID, dup := seen[key]; dup {
				issues = append(issues, Issue{
					Kind:    "edge",
					ID:      id,
					Message: fmt.Sprintf("duplicate %s edge %s -> %s (first seen as %s)", edge.Type, edge.SourceID, edge.TargetID, firstID),
				})
			} else {
				seen[key] = id
			}
		}
	}

	return issues
}

func validateNode(node *Node) []Issue {
	var issues []Issue
	report := func(format string, args ...any) {
		issues = append(issues, Issue{
			Kind:    "node",
			ID:      node.ID,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if node.Label == "" {
		report("empty label")
	}

	type payload struct {
		name    string
		present bool
	}
	payloads := []payload{
		{"code", node.Code != nil},
		{"business", node.Business != nil},
		{"document", node.Document != nil},
		{"conversation", node.Conversation != nil},
	}
	var want string
	switch node.Type {
	case NodeCode:
		want = "code"
	case NodeBusiness:
		want = "business"
	case NodeDocument:
		want = "document"
	case NodeConversation:
		want = "conversation"
	case NodeUnknown:
		want = ""
	default:
		report("unknown node type %q", node.Type)
	}

	for _, p := range payloads {
		switch {
		case p.present && p.name != want:
			report("%s payload on %s node", p.name, node.Type)
		case !p.present && p.name == want:
			report("missing %s payload", p.name)
		}
	}
	return issues
}
