package graph

import (
	"testing"
	"time"
)

func codeNode(id, label string) *Node {
	return &Node{
		ID:    id,
		Type:  NodeCode,
		Label: label,
		Code:  &CodeDetail{FilePath: label + ".go", Language: "go", Kind: CodeFunction},
	}
}

func edge(id, src, dst string, t EdgeType) *Edge {
	return &Edge{ID: id, Type: t, SourceID: src, TargetID: dst}
}

func TestAddNodeStampsTimestamps(t *testing.T) {
	s := NewStore()
	s.AddNode(codeNode("n1", "parse"))

	got, ok := s.GetNode("n1")
	if !ok {
		t.Fatal("GetNode(n1) = false, want true")
	}
	if got.Metadata.CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped")
	}
	if got.Metadata.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not stamped")
	}
}

func TestAddNodeOverwrites(t *testing.T) {
	s := NewStore()
	s.AddNode(codeNode("n1", "old"))
	s.AddNode(&Node{ID: "n1", Type: NodeBusiness, Label: "new",
		Business: &BusinessDetail{Domain: "billing"}})

	got, _ := s.GetNode("n1")
	if got.Label != "new" {
		t.Errorf("Label = %q, want %q", got.Label, "new")
	}
	if got.Type != NodeBusiness {
		t.Errorf("Type = %q, want %q", got.Type, NodeBusiness)
	}
	if s.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", s.NodeCount())
	}
	if n := len(s.NodesByType(NodeCode)); n != 0 {
		t.Errorf("NodesByType(code) has %d entries after type change, want 0", n)
	}
	if n := len(s.NodesByType(NodeBusiness)); n != 1 {
		t.Errorf("NodesByType(business) has %d entries, want 1", n)
	}
}

func TestGetNodeMissing(t *testing.T) {
	s := NewStore()
	if _, ok := s.GetNode("nope"); ok {
		t.Error("GetNode(nope) = true, want false")
	}
}

func TestUpdateNodeMergesMetadata(t *testing.T) {
	s := NewStore()
	n := codeNode("n1", "parse")
	n.Metadata.Tags = []string{"hot"}
	n.Metadata.Props = map[string]string{"pkg": "lexer"}
	s.AddNode(n)
	before := n.Metadata.UpdatedAt

	time.Sleep(time.Millisecond)
	label := "parseFile"
	s.UpdateNode("n1", NodePatch{
		Label: &label,
		Tags:  []string{"hot", "entry"},
		Props: map[string]string{"owner": "core"},
	})

	got, _ := s.GetNode("n1")
	if got.Label != "parseFile" {
		t.Errorf("Label = %q, want parseFile", got.Label)
	}
	if len(got.Metadata.Tags) != 2 {
		t.Errorf("Tags = %v, want [hot entry]", got.Metadata.Tags)
	}
	if got.Metadata.Props["pkg"] != "lexer" || got.Metadata.Props["owner"] != "core" {
		t.Errorf("Props = %v, want both pkg and owner", got.Metadata.Props)
	}
	if !got.Metadata.UpdatedAt.After(before) {
		t.Error("UpdatedAt not advanced")
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	s := NewStore()
	s.AddNode(codeNode("a", "a"))
	s.AddNode(codeNode("b", "b"))
	s.AddNode(codeNode("c", "c"))
	s.AddEdge(edge("e1", "a", "b", EdgeCalls))
	s.AddEdge(edge("e2", "c", "a", EdgeCalls))
	s.AddEdge(edge("e3", "b", "c", EdgeCalls))

	s.RemoveNode("a")

	if _, ok := s.GetNode("a"); ok {
		t.Fatal("node a still present")
	}
	if _, ok := s.GetEdge("e1"); ok {
		t.Error("outgoing edge e1 survived cascade")
	}
	if _, ok := s.GetEdge("e2"); ok {
		t.Error("incoming edge e2 survived cascade")
	}
	if _, ok := s.GetEdge("e3"); !ok {
		t.Error("unrelated edge e3 removed")
	}
	if got := s.EdgeCount(); got != 1 {
		t.Errorf("EdgeCount = %d, want 1", got)
	}
}

func TestRemoveNodeSelfLoop(t *testing.T) {
	s := NewStore()
	s.AddNode(codeNode("a", "a"))
	s.AddEdge(edge("loop", "a", "a", EdgeCalls))

	s.RemoveNode("a")
	if got := s.EdgeCount(); got != 0 {
		t.Errorf("EdgeCount = %d, want 0", got)
	}
}

func TestAddEdgeDefaultsWeight(t *testing.T) {
	s := NewStore()
	s.AddEdge(edge("e1", "a", "b", EdgeCalls))

	got, ok := s.GetEdge("e1")
	if !ok {
		t.Fatal("GetEdge(e1) = false, want true")
	}
	if got.Weight != 1.0 {
		t.Errorf("Weight = %g, want 1", got.Weight)
	}
}

func TestAddEdgeOverwriteReindexes(t *testing.T) {
	s := NewStore()
	s.AddEdge(edge("e1", "a", "b", EdgeCalls))
	s.AddEdge(edge("e1", "b", "c", EdgeReferences))

	if n := len(s.OutgoingEdges("a")); n != 0 {
		t.Errorf("OutgoingEdges(a) has %d entries after overwrite, want 0", n)
	}
	if n := len(s.EdgesByType(EdgeCalls)); n != 0 {
		t.Errorf("EdgesByType(calls) has %d entries, want 0", n)
	}
	if n := len(s.EdgesByType(EdgeReferences)); n != 1 {
		t.Errorf("EdgesByType(references) has %d entries, want 1", n)
	}
	if s.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", s.EdgeCount())
	}
}

func TestUpdateEdgeTypeChange(t *testing.T) {
	s := NewStore()
	s.AddEdge(edge("e1", "a", "b", EdgeCalls))

	typ := EdgeDependsOn
	w := 2.5
	s.UpdateEdge("e1", EdgePatch{Type: &typ, Weight: &w})

	got, _ := s.GetEdge("e1")
	if got.Type != EdgeDependsOn {
		t.Errorf("Type = %q, want depends_on", got.Type)
	}
	if got.Weight != 2.5 {
		t.Errorf("Weight = %g, want 2.5", got.Weight)
	}
	if n := len(s.EdgesByType(EdgeCalls)); n != 0 {
		t.Errorf("EdgesByType(calls) has %d entries, want 0", n)
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.AddNode(codeNode("a", "a"))
	s.AddEdge(edge("e1", "a", "a", EdgeCalls))

	s.Clear()

	if s.NodeCount() != 0 || s.EdgeCount() != 0 {
		t.Errorf("after Clear: %d nodes, %d edges, want 0/0", s.NodeCount(), s.EdgeCount())
	}
	if n := len(s.Nodes()); n != 0 {
		t.Errorf("Nodes() has %d entries, want 0", n)
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	s := NewStore()
	ids := []string{"c", "a", "b"}
	for _, id := range ids {
		s.AddNode(codeNode(id, id))
	}
	got := s.Nodes()
	for i, id := range ids {
		if got[i].ID != id {
			t.Fatalf("Nodes()[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}
