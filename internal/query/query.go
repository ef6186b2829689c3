package query

import (
	"sort"

	"github.com/latticekg/lattice/internal/graph"
)

// Request is a composite query: node and edge filters, optional neighbor
// expansion, optional grouping, and result shaping.
type Request struct {
	// Where filters nodes; nil selects all.
	Where NodePredicate
	// WhereEdges filters edges; nil skips edge matching entirely.
	WhereEdges EdgePredicate
	// IncludeNeighbors expands the node result set by one hop in both
	// directions.
	IncludeNeighbors bool
	// GroupBy names a field to aggregate the matched nodes by.
	GroupBy string
	// Aggregator reduces each group; nil counts.
	Aggregator AggregateFunc
	// Options shapes the node result.
	Options FindOptions
	// CountOnly drops the entity lists and reports totals only.
	CountOnly bool
}

// Response carries the outcome of a composite Request.
type Response struct {
	Nodes     []*graph.Node
	Edges     []*graph.Edge
	Groups    map[string]any
	NodeTotal int
	EdgeTotal int
}

// Query evaluates a composite request: node filter, optional edge filter,
// optional one-hop neighbor expansion, optional aggregation over the
// matched nodes.
func (e *Engine) Query(req Request) (Response, error) {
	nodeRes, err := e.FindNodes(req.Where, req.Options)
	if err != nil {
		return Response{}, err
	}
	resp := Response{
		Nodes:     nodeRes.Nodes,
		Edges:     nodeRes.Edges,
		NodeTotal: nodeRes.Total,
	}

	if req.WhereEdges != nil {
		edges, err := e.FindEdges(req.WhereEdges, FindOptions{})
		if err != nil {
			return Response{}, err
		}
		resp.Edges = edges
		resp.EdgeTotal = len(edges)
	}

	if req.IncludeNeighbors {
		seen := make(map[string]bool, len(resp.Nodes))
		for _, n := range resp.Nodes {
			seen[n.ID] = true
		}
		expanded := resp.Nodes
		for _, n := range resp.Nodes {
			for _, nb := range e.store.ConnectedNodes(n.ID) {
				if !seen[nb.ID] {
					seen[nb.ID] = true
					expanded = append(expanded, nb)
				}
			}
		}
		resp.Nodes = expanded
	}

	if req.GroupBy != "" {
		group, err := GroupByField(req.GroupBy)
		if err != nil {
			return Response{}, err
		}
		groups, err := e.aggregateNodes(resp.Nodes, group, req.Aggregator)
		if err != nil {
			return Response{}, err
		}
		resp.Groups = groups
	}

	if req.CountOnly {
		resp.Nodes = nil
		resp.Edges = nil
	}
	return resp, nil
}

// aggregateNodes is Aggregate restricted to an explicit node set.
func (e *Engine) aggregateNodes(nodes []*graph.Node, group GroupFunc, agg AggregateFunc) (map[string]any, error) {
	buckets := make(map[string][]*graph.Node)
	for _, n := range nodes {
		buckets[group(n)] = append(buckets[group(n)], n)
	}
	out := make(map[string]any, len(buckets))
	for key, bucket := range buckets {
		if agg == nil {
			out[key] = len(bucket)
			continue
		}
		out[key] = agg(bucket)
	}
	return out, nil
}

// Hotspot scores a node by connectivity.
type Hotspot struct {
	Node  *graph.Node
	In    int
	Out   int
	Score int
}

// Hotspots ranks nodes by degree, weighing incoming connections double
// since a heavily depended-on node matters more than a chatty one, and
// returns the top n (all when n <= 0). Ties keep insertion order.
func (e *Engine) Hotspots(n int) []Hotspot {
	nodes := e.store.Nodes()
	spots := make([]Hotspot, 0, len(nodes))
	for _, node := range nodes {
		in := len(e.store.IncomingEdges(node.ID))
		out := len(e.store.OutgoingEdges(node.ID))
		spots = append(spots, Hotspot{Node: node, In: in, Out: out, Score: in*2 + out})
	}
	sort.SliceStable(spots, func(i, j int) bool {
		return spots[i].Score > spots[j].Score
	})
	if n > 0 && n < len(spots) {
		spots = spots[:n]
	}
	return spots
}
