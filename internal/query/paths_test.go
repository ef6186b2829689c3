package query

import (
	"fmt"
	"testing"

	"github.com/latticekg/lattice/internal/graph"
)

// weighted builds a -> b (1), b -> d (1), a -> c (5), c -> d (1): both
// routes from a to d are two hops, but a->b->d is cheapest at weight 2.
func weighted(t *testing.T) *Engine {
	t.Helper()
	s := graph.NewStore()
	for _, id := range []string{"a", "b", "c", "d"} {
		s.AddNode(&graph.Node{ID: id, Type: graph.NodeCode, Label: id,
			Code: &graph.CodeDetail{FilePath: id + ".go"}})
	}
	s.AddEdge(&graph.Edge{ID: "ab", Type: graph.EdgeCalls, SourceID: "a", TargetID: "b", Weight: 1})
	s.AddEdge(&graph.Edge{ID: "bd", Type: graph.EdgeCalls, SourceID: "b", TargetID: "d", Weight: 1})
	s.AddEdge(&graph.Edge{ID: "ac", Type: graph.EdgeCalls, SourceID: "a", TargetID: "c", Weight: 5})
	s.AddEdge(&graph.Edge{ID: "cd", Type: graph.EdgeCalls, SourceID: "c", TargetID: "d", Weight: 1})
	return NewEngine(s)
}

func TestFindShortestPathWeighted(t *testing.T) {
	e := weighted(t)
	p := e.FindShortestPath("a", "d")
	if len(p.Nodes) != 3 {
		t.Fatalf("path has %d nodes, want 3", len(p.Nodes))
	}
	wantIDs(t, ids(p.Nodes), "a", "b", "d")
	if p.Weight != 2 {
		t.Errorf("Weight = %g, want 2", p.Weight)
	}
	if p.Length != 2 {
		t.Errorf("Length = %d, want 2", p.Length)
	}
}

func TestFindShortestPathPrefersLightEdges(t *testing.T) {
	e := weighted(t)
	// Direct heavy edge vs a lighter detour.
	e.store.AddEdge(&graph.Edge{ID: "ad", Type: graph.EdgeCalls,
		SourceID: "a", TargetID: "d", Weight: 10})
	p := e.FindShortestPath("a", "d")
	if p.Weight != 2 {
		t.Errorf("Weight = %g, want detour at 2", p.Weight)
	}
}

func TestFindShortestPathUnreachable(t *testing.T) {
	e := weighted(t)
	e.store.AddNode(&graph.Node{ID: "island", Type: graph.NodeCode, Label: "island",
		Code: &graph.CodeDetail{FilePath: "i.go"}})
	p := e.FindShortestPath("a", "island")
	if len(p.Nodes) != 0 {
		t.Errorf("path to island = %v, want empty", ids(p.Nodes))
	}
	p = e.FindShortestPath("nope", "a")
	if len(p.Nodes) != 0 {
		t.Errorf("path from unknown = %v, want empty", ids(p.Nodes))
	}
}

func TestFindShortestPathSameNode(t *testing.T) {
	e := weighted(t)
	p := e.FindShortestPath("a", "a")
	wantIDs(t, ids(p.Nodes), "a")
	if p.Length != 0 || p.Weight != 0 {
		t.Errorf("Length/Weight = %d/%g, want 0/0", p.Length, p.Weight)
	}
}

func TestFindPathsSortedByLength(t *testing.T) {
	e := weighted(t)
	paths := e.FindPaths("a", "d", PathOptions{})
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2", len(paths))
	}
	for i := 1; i < len(paths); i++ {
		if paths[i-1].Length > paths[i].Length {
			t.Errorf("paths not sorted by length: %d then %d",
				paths[i-1].Length, paths[i].Length)
		}
	}
	if paths[0].Weight == 0 {
		t.Error("path weight not accumulated")
	}
}

func TestFindPathsLimit(t *testing.T) {
	e := weighted(t)
	paths := e.FindPaths("a", "d", PathOptions{Limit: 1})
	if len(paths) != 1 {
		t.Errorf("got %d paths, want 1", len(paths))
	}
}

func TestFindPathsMaxDepth(t *testing.T) {
	s := graph.NewStore()
	for _, id := range []string{"a", "b", "c"} {
		s.AddNode(&graph.Node{ID: id, Type: graph.NodeCode, Label: id,
			Code: &graph.CodeDetail{FilePath: id + ".go"}})
	}
	s.AddEdge(&graph.Edge{ID: "ab", Type: graph.EdgeCalls, SourceID: "a", TargetID: "b"})
	s.AddEdge(&graph.Edge{ID: "bc", Type: graph.EdgeCalls, SourceID: "b", TargetID: "c"})
	e := NewEngine(s)

	if paths := e.FindPaths("a", "c", PathOptions{MaxDepth: 1}); len(paths) != 0 {
		t.Errorf("got %d paths within depth 1, want 0", len(paths))
	}
	if paths := e.FindPaths("a", "c", PathOptions{MaxDepth: 2}); len(paths) != 1 {
		t.Errorf("got %d paths within depth 2, want 1", len(paths))
	}
}

func TestFindPathsSameNode(t *testing.T) {
	e := weighted(t)
	paths := e.FindPaths("a", "a", PathOptions{})
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}
	wantIDs(t, ids(paths[0].Nodes), "a")
	if paths[0].Length != 0 {
		t.Errorf("Length = %d, want 0", paths[0].Length)
	}
}

func TestFindPathsDeepChain(t *testing.T) {
	const depth = 20000
	s := graph.NewStore()
	prev := "n0"
	s.AddNode(&graph.Node{ID: prev, Type: graph.NodeUnknown, Label: prev})
	for i := 1; i <= depth; i++ {
		id := fmt.Sprintf("n%d", i)
		s.AddNode(&graph.Node{ID: id, Type: graph.NodeUnknown, Label: id})
		s.AddEdge(&graph.Edge{ID: "e" + id, Type: graph.EdgeReferences,
			SourceID: prev, TargetID: id})
		prev = id
	}
	e := NewEngine(s)

	paths := e.FindPaths("n0", prev, PathOptions{MaxDepth: depth})
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}
	if paths[0].Length != depth {
		t.Errorf("Length = %d, want %d", paths[0].Length, depth)
	}
}

func TestFindNeighborhood(t *testing.T) {
	e := weighted(t)
	nb := e.FindNeighborhood("b", 1)
	// b plus direct neighbors in both directions, outgoing first.
	wantIDs(t, ids(nb.Nodes), "b", "d", "a")
	if nb.Distance["a"] != 1 || nb.Distance["d"] != 1 || nb.Distance["b"] != 0 {
		t.Errorf("distances = %v", nb.Distance)
	}

	nb = e.FindNeighborhood("b", 2)
	if _, ok := nb.Distance["c"]; !ok {
		t.Error("c not reached at distance 2")
	}
}

func TestFindNeighborhoodUnknownCenter(t *testing.T) {
	e := weighted(t)
	nb := e.FindNeighborhood("nope", 3)
	if len(nb.Nodes) != 0 {
		t.Errorf("neighborhood of unknown center = %v", ids(nb.Nodes))
	}
}
