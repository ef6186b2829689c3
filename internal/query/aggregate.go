package query

import (
	"fmt"

	"github.com/latticekg/lattice/internal/graph"
)

// GroupFunc maps a node to its group key.
type GroupFunc func(*graph.Node) string

// AggregateFunc reduces one group of nodes to a value.
type AggregateFunc func([]*graph.Node) any

// GroupByField builds a GroupFunc for a named node field: type, label,
// language (code nodes; others group under ""), domain, status, or format.
func GroupByField(field string) (GroupFunc, error) {
	switch field {
	case "type":
		return func(n *graph.Node) string { return string(n.Type) }, nil
	case "label":
		return func(n *graph.Node) string { return n.Label }, nil
	case "language":
		return func(n *graph.Node) string {
			if n.Code != nil {
				return n.Code.Language
			}
			return ""
		}, nil
	case "domain":
		return func(n *graph.Node) string {
			if n.Business != nil {
				return n.Business.Domain
			}
			return ""
		}, nil
	case "status":
		return func(n *graph.Node) string {
			if n.Business != nil {
				return n.Business.Status
			}
			return ""
		}, nil
	case "format":
		return func(n *graph.Node) string {
			if n.Document != nil {
				return n.Document.Format
			}
			return ""
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown group field %q", ErrInvalidQuery, field)
	}
}

// Aggregate buckets all nodes by the group function and reduces each bucket
// with the aggregator. A nil aggregator emits bucket sizes, so the values
// of a plain group-by sum to the node count. A nil group function is
// invalid.
func (e *Engine) Aggregate(group GroupFunc, agg AggregateFunc) (map[string]any, error) {
	if group == nil {
		return nil, fmt.Errorf("%w: nil group function", ErrInvalidQuery)
	}
	buckets := make(map[string][]*graph.Node)
	for _, n := range e.store.Nodes() {
		key := group(n)
		buckets[key] = append(buckets[key], n)
	}

	out := make(map[string]any, len(buckets))
	for key, nodes := range buckets {
		if agg == nil {
			out[key] = len(nodes)
			continue
		}
		out[key] = agg(nodes)
	}
	return out, nil
}
