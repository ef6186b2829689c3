package archive

import (
	"testing"

	"github.com/latticekg/lattice/internal/graph"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := a.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return a
}

func sampleSnapshot(t *testing.T) *graph.Snapshot {
	t.Helper()
	s := graph.NewStore()
	s.AddNode(&graph.Node{ID: "a", Type: graph.NodeCode, Label: "a",
		Code: &graph.CodeDetail{FilePath: "a.go", Language: "go"}})
	s.AddNode(&graph.Node{ID: "b", Type: graph.NodeCode, Label: "b",
		Code: &graph.CodeDetail{FilePath: "b.go", Language: "go"}})
	s.AddEdge(&graph.Edge{ID: "e1", Type: graph.EdgeCalls, SourceID: "a", TargetID: "b"})
	return s.Snapshot()
}

func TestSaveLoadRoundTrip(t *testing.T) {
	a := openTestArchive(t)
	snap := sampleSnapshot(t)

	if err := a.Save("v1", snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := a.Load("v1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Nodes) != 2 || len(got.Edges) != 1 {
		t.Errorf("loaded %d nodes / %d edges, want 2/1", len(got.Nodes), len(got.Edges))
	}

	// Restoring into a store gives back a working graph.
	s := graph.NewStore()
	if err := s.Restore(got); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(s.OutgoingEdges("a")) != 1 {
		t.Error("restored graph lost its edge index")
	}
}

func TestLoadMissing(t *testing.T) {
	a := openTestArchive(t)
	if _, err := a.Load("nope"); err == nil {
		t.Error("Load of missing snapshot succeeded")
	}
	if _, err := a.Stat("nope"); err == nil {
		t.Error("Stat of missing snapshot succeeded")
	}
}

func TestSaveValidation(t *testing.T) {
	a := openTestArchive(t)
	if err := a.Save("", sampleSnapshot(t)); err == nil {
		t.Error("Save with empty name succeeded")
	}
	if err := a.Save("v1", nil); err == nil {
		t.Error("Save with nil snapshot succeeded")
	}
}

func TestListAndStat(t *testing.T) {
	a := openTestArchive(t)
	snap := sampleSnapshot(t)
	for _, name := range []string{"beta", "alpha"} {
		if err := a.Save(name, snap); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}

	entries, err := a.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "alpha" || entries[1].Name != "beta" {
		t.Fatalf("List = %+v, want alpha then beta", entries)
	}
	if entries[0].NodeCount != 2 || entries[0].EdgeCount != 1 {
		t.Errorf("entry counts = %d/%d, want 2/1", entries[0].NodeCount, entries[0].EdgeCount)
	}
	if entries[0].SavedAt.IsZero() {
		t.Error("SavedAt not stamped")
	}

	stat, err := a.Stat("beta")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if stat.Name != "beta" {
		t.Errorf("Stat.Name = %q, want beta", stat.Name)
	}
}

func TestDelete(t *testing.T) {
	a := openTestArchive(t)
	if err := a.Save("gone", sampleSnapshot(t)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := a.Delete("gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := a.Load("gone"); err == nil {
		t.Error("deleted snapshot still loads")
	}
	names, err := a.Names()
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("Names = %v, want empty", names)
	}

	// Deleting a missing name is a no-op.
	if err := a.Delete("never-existed"); err != nil {
		t.Errorf("Delete of missing name errored: %v", err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	a := openTestArchive(t)
	if err := a.Save("v1", sampleSnapshot(t)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s := graph.NewStore()
	s.AddNode(&graph.Node{ID: "solo", Type: graph.NodeBusiness, Label: "solo",
		Business: &graph.BusinessDetail{Domain: "ops"}})
	if err := a.Save("v1", s.Snapshot()); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}

	got, err := a.Load("v1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Nodes) != 1 || got.Nodes[0].ID != "solo" {
		t.Errorf("overwrite not applied: %+v", got.Nodes)
	}
}
