package query

import (
	"errors"
	"testing"

	"github.com/latticekg/lattice/internal/graph"
)

func TestQueryComposite(t *testing.T) {
	e := knowledge(t)
	resp, err := e.Query(Request{
		Where: func(n *graph.Node) bool { return n.Type == graph.NodeCode },
		WhereEdges: func(ed *graph.Edge) bool {
			return ed.Type == graph.EdgeCalls
		},
		GroupBy: "language",
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if resp.NodeTotal != 4 {
		t.Errorf("NodeTotal = %d, want 4", resp.NodeTotal)
	}
	if resp.EdgeTotal != 2 {
		t.Errorf("EdgeTotal = %d, want 2", resp.EdgeTotal)
	}
	if resp.Groups["go"] != 3 || resp.Groups["rust"] != 1 {
		t.Errorf("Groups = %v, want go:3 rust:1", resp.Groups)
	}
}

func TestQueryIncludeNeighbors(t *testing.T) {
	e := knowledge(t)
	resp, err := e.Query(Request{
		Where:            func(n *graph.Node) bool { return n.ID == "parser" },
		IncludeNeighbors: true,
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	// parser plus lexer, emitter (outgoing) and design (incoming).
	if len(resp.Nodes) != 4 {
		t.Errorf("got %d nodes %v, want 4", len(resp.Nodes), ids(resp.Nodes))
	}
}

func TestQueryCountOnly(t *testing.T) {
	e := knowledge(t)
	resp, err := e.Query(Request{CountOnly: true})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if resp.Nodes != nil || resp.Edges != nil {
		t.Error("CountOnly left entity lists populated")
	}
	if resp.NodeTotal != 5 {
		t.Errorf("NodeTotal = %d, want 5", resp.NodeTotal)
	}
}

func TestQueryBadGroupField(t *testing.T) {
	e := knowledge(t)
	if _, err := e.Query(Request{GroupBy: "mass"}); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("err = %v, want ErrInvalidQuery", err)
	}
}

func TestHotspots(t *testing.T) {
	e := knowledge(t)
	spots := e.Hotspots(0)
	if len(spots) != 5 {
		t.Fatalf("got %d hotspots, want all 5", len(spots))
	}
	// parser: 1 in (e4), 2 out (e1 e2) -> score 4; nothing beats it.
	top := spots[0]
	if top.Node.ID != "parser" {
		t.Errorf("top hotspot = %s, want parser", top.Node.ID)
	}
	if top.Score != 4 || top.In != 1 || top.Out != 2 {
		t.Errorf("parser scored %d (in %d, out %d), want 4 (1, 2)",
			top.Score, top.In, top.Out)
	}

	if got := e.Hotspots(2); len(got) != 2 {
		t.Errorf("Hotspots(2) returned %d, want 2", len(got))
	}
}
