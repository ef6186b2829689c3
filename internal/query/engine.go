// Package query is the declarative layer over a graph.Store: predicate
// search with sorting and pagination, weighted shortest paths, bounded
// neighborhoods, structural pattern matching, and grouping/aggregation.
//
// The engine only reads the store. Lookups of absent IDs yield empty
// results; ErrInvalidQuery is reserved for requests that are malformed
// regardless of graph contents.
package query

import (
	"errors"
	"fmt"
	"sort"

	"github.com/latticekg/lattice/internal/graph"
)

// ErrInvalidQuery marks a request the engine cannot evaluate: an unknown
// sort or group field, or a pattern referencing node slots that do not
// exist. Wrapped with context; test with errors.Is.
var ErrInvalidQuery = errors.New("invalid query")

// Engine evaluates queries against a store.
type Engine struct {
	store *graph.Store
}

// NewEngine creates a query engine bound to the store.
func NewEngine(store *graph.Store) *Engine {
	return &Engine{store: store}
}

// NodePredicate selects nodes. A nil predicate selects everything.
type NodePredicate func(*graph.Node) bool

// EdgePredicate selects edges. A nil predicate selects everything.
type EdgePredicate func(*graph.Edge) bool

// FindOptions shapes a FindNodes or FindEdges result.
type FindOptions struct {
	// Limit caps the result after offsetting; zero or negative means no cap.
	Limit int
	// Offset skips that many matches from the front.
	Offset int
	// OrderBy names a sort field. Nodes: id, label, type, created,
	// updated. Edges: id, type, weight. Empty keeps insertion order.
	OrderBy string
	// Descending reverses the sort.
	Descending bool
	// IncludeEdges attaches every edge touching the selected nodes.
	IncludeEdges bool
}

// NodeResult is a page of matched nodes, with their incident edges when
// requested.
type NodeResult struct {
	Nodes []*graph.Node
	// Edges holds each edge touching any result node, deduplicated, in
	// insertion order. Nil unless IncludeEdges was set.
	Edges []*graph.Edge
	// Total counts matches before pagination.
	Total int
}

// FindNodes filters all nodes through the predicate in insertion order,
// optionally sorts, paginates, and attaches incident edges.
func (e *Engine) FindNodes(pred NodePredicate, opts FindOptions) (NodeResult, error) {
	var matched []*graph.Node
	for _, n := range e.store.Nodes() {
		if pred == nil || pred(n) {
			matched = append(matched, n)
		}
	}

	if opts.OrderBy != "" {
		less, err := nodeLess(opts.OrderBy)
		if err != nil {
			return NodeResult{}, err
		}
		sort.SliceStable(matched, func(i, j int) bool {
			if opts.Descending {
				return less(matched[j], matched[i])
			}
			return less(matched[i], matched[j])
		})
	}

	res := NodeResult{Total: len(matched)}
	res.Nodes = paginate(matched, opts.Offset, opts.Limit)

	if opts.IncludeEdges {
		inResult := make(map[string]bool, len(res.Nodes))
		for _, n := range res.Nodes {
			inResult[n.ID] = true
		}
		for _, edge := range e.store.Edges() {
			if inResult[edge.SourceID] || inResult[edge.TargetID] {
				res.Edges = append(res.Edges, edge)
			}
		}
	}
	return res, nil
}

// FindEdges filters all edges through the predicate in insertion order,
// optionally sorts and paginates.
func (e *Engine) FindEdges(pred EdgePredicate, opts FindOptions) ([]*graph.Edge, error) {
	var matched []*graph.Edge
	for _, edge := range e.store.Edges() {
		if pred == nil || pred(edge) {
			matched = append(matched, edge)
		}
	}

	if opts.OrderBy != "" {
		less, err := edgeLess(opts.OrderBy)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(matched, func(i, j int) bool {
			if opts.Descending {
				return less(matched[j], matched[i])
			}
			return less(matched[i], matched[j])
		})
	}
	return paginate(matched, opts.Offset, opts.Limit), nil
}

func nodeLess(field string) (func(a, b *graph.Node) bool, error) {
	switch field {
	case "id":
		return func(a, b *graph.Node) bool { return a.ID < b.ID }, nil
	case "label":
		return func(a, b *graph.Node) bool { return a.Label < b.Label }, nil
	case "type":
		return func(a, b *graph.Node) bool { return a.Type < b.Type }, nil
	case "created":
		return func(a, b *graph.Node) bool {
			return a.Metadata.CreatedAt.Before(b.Metadata.CreatedAt)
		}, nil
	case "updated":
		return func(a, b *graph.Node) bool {
			return a.Metadata.UpdatedAt.Before(b.Metadata.UpdatedAt)
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown node sort field %q", ErrInvalidQuery, field)
	}
}

func edgeLess(field string) (func(a, b *graph.Edge) bool, error) {
	switch field {
	case "id":
		return func(a, b *graph.Edge) bool { return a.ID < b.ID }, nil
	case "type":
		return func(a, b *graph.Edge) bool { return a.Type < b.Type }, nil
	case "weight":
		return func(a, b *graph.Edge) bool { return a.Weight < b.Weight }, nil
	default:
		return nil, fmt.Errorf("%w: unknown edge sort field %q", ErrInvalidQuery, field)
	}
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
