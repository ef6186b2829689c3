package traversal

import "testing"

func TestDetectCyclesTriangle(t *testing.T) {
	s := build(t, []string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})

	cycles := DetectCycles(s)
	if len(cycles) != 1 {
		t.Fatalf("got %d cycles %v, want 1", len(cycles), cycles)
	}
	if !equalIDs(cycles[0], []string{"a", "b", "c", "a"}) {
		t.Errorf("cycle = %v, want [a b c a]", cycles[0])
	}
}

func TestDetectCyclesAcyclic(t *testing.T) {
	s := diamond(t)
	if cycles := DetectCycles(s); len(cycles) != 0 {
		t.Errorf("acyclic graph reported cycles %v", cycles)
	}
}

func TestDetectCyclesSelfLoop(t *testing.T) {
	s := build(t, []string{"a"}, [][2]string{{"a", "a"}})
	cycles := DetectCycles(s)
	if len(cycles) != 1 || !equalIDs(cycles[0], []string{"a", "a"}) {
		t.Errorf("cycles = %v, want [[a a]]", cycles)
	}
}

func TestDetectCyclesOnePerBackEdge(t *testing.T) {
	// Two back edges into the same cycle produce two reports.
	s := build(t, []string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "b"}})
	cycles := DetectCycles(s)
	if len(cycles) != 2 {
		t.Errorf("got %d cycles %v, want 2", len(cycles), cycles)
	}
}

func TestTopologicalSort(t *testing.T) {
	s := build(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})
	order, ok := TopologicalSort(s)
	if !ok {
		t.Fatal("no order for an acyclic chain")
	}
	if !equalIDs(order, []string{"a", "b", "c"}) {
		t.Errorf("order = %v, want [a b c]", order)
	}
}

func TestTopologicalSortRespectsAllEdges(t *testing.T) {
	s := diamond(t)
	order, ok := TopologicalSort(s)
	if !ok {
		t.Fatal("no order for the diamond")
	}
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, e := range s.Edges() {
		if pos[e.SourceID] >= pos[e.TargetID] {
			t.Errorf("edge %s->%s violated by order %v", e.SourceID, e.TargetID, order)
		}
	}
}

func TestTopologicalSortCycle(t *testing.T) {
	s := build(t, []string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	if _, ok := TopologicalSort(s); ok {
		t.Error("cyclic graph produced a full order")
	}
}

func TestTopoMatchesCycleDetection(t *testing.T) {
	graphs := []*testGraph{
		{nodes: []string{"a", "b", "c"}, edges: [][2]string{{"a", "b"}, {"b", "c"}}},
		{nodes: []string{"a", "b", "c"}, edges: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}},
		{nodes: []string{"a"}, edges: [][2]string{{"a", "a"}}},
		{nodes: []string{"a", "b"}, edges: nil},
	}
	for i, g := range graphs {
		s := build(t, g.nodes, g.edges)
		_, ok := TopologicalSort(s)
		hasCycle := len(DetectCycles(s)) > 0
		if ok == hasCycle {
			t.Errorf("graph %d: topo ok=%v but hasCycle=%v", i, ok, hasCycle)
		}
	}
}

type testGraph struct {
	nodes []string
	edges [][2]string
}

func TestIsBipartite(t *testing.T) {
	// Even cycle: bipartite.
	s := build(t, []string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "a"}})
	if !IsBipartite(s) {
		t.Error("4-cycle reported non-bipartite")
	}

	// Odd cycle: not bipartite.
	s = build(t, []string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	if IsBipartite(s) {
		t.Error("3-cycle reported bipartite")
	}
}

func TestIsBipartiteEmptyAndEdgeless(t *testing.T) {
	s := build(t, nil, nil)
	if !IsBipartite(s) {
		t.Error("empty graph reported non-bipartite")
	}
	s = build(t, []string{"a", "b"}, nil)
	if !IsBipartite(s) {
		t.Error("edgeless graph reported non-bipartite")
	}
}
