package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/latticekg/lattice/internal/graph"
	"github.com/latticekg/lattice/internal/query"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}

// setupProject creates a temp project directory with a three-node cycle
// snapshot at the default path and makes it the working directory.
func setupProject(t *testing.T) *graph.Store {
	t.Helper()
	chdir(t, t.TempDir())

	store := graph.NewStore()
	for _, id := range []string{"a", "b", "c"} {
		store.AddNode(&graph.Node{
			ID:    id,
			Type:  graph.NodeCode,
			Label: id,
			Code:  &graph.CodeDetail{FilePath: id + ".go", Language: "go", Kind: graph.CodeFunction},
		})
	}
	store.AddEdge(&graph.Edge{ID: "e1", Type: graph.EdgeCalls, SourceID: "a", TargetID: "b"})
	store.AddEdge(&graph.Edge{ID: "e2", Type: graph.EdgeCalls, SourceID: "b", TargetID: "c"})
	store.AddEdge(&graph.Edge{ID: "e3", Type: graph.EdgeCalls, SourceID: "c", TargetID: "a"})

	writeSnapshot(t, store, "lattice.json")
	return store
}

func writeSnapshot(t *testing.T, store *graph.Store, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create snapshot: %v", err)
	}
	if err := store.Export(f, graph.FormatJSON); err != nil {
		t.Fatalf("export snapshot: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close snapshot: %v", err)
	}
}

func runCmd(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute %s: %v", cmd.Use, err)
	}
	return buf.String()
}

func TestStatsCommand(t *testing.T) {
	setupProject(t)

	out := runCmd(t, newStatsCmd())
	if !strings.Contains(out, "Total nodes: 3") {
		t.Errorf("stats output missing node count:\n%s", out)
	}
	if !strings.Contains(out, "Total edges: 3") {
		t.Errorf("stats output missing edge count:\n%s", out)
	}
	if !strings.Contains(out, "code") {
		t.Errorf("stats output missing type breakdown:\n%s", out)
	}
}

func TestValidateCommandClean(t *testing.T) {
	setupProject(t)

	out := runCmd(t, newValidateCmd())
	if !strings.Contains(out, "No issues found.") {
		t.Errorf("expected clean validation, got:\n%s", out)
	}
}

func TestValidateCommandReportsDangling(t *testing.T) {
	store := setupProject(t)
	store.AddEdge(&graph.Edge{ID: "e4", Type: graph.EdgeCalls, SourceID: "a", TargetID: "ghost"})
	writeSnapshot(t, store, "lattice.json")

	out := runCmd(t, newValidateCmd())
	if !strings.Contains(out, "1 issue(s) found") {
		t.Errorf("expected one issue, got:\n%s", out)
	}
}

func TestQueryFindByType(t *testing.T) {
	setupProject(t)

	out := runCmd(t, newQueryFindCmd(), "--type", "code")
	if !strings.Contains(out, "3 of 3 result(s)") {
		t.Errorf("unexpected find output:\n%s", out)
	}
}

func TestQueryFindNoResults(t *testing.T) {
	setupProject(t)

	out := runCmd(t, newQueryFindCmd(), "--type", "document")
	if !strings.Contains(out, "No results found.") {
		t.Errorf("expected empty result, got:\n%s", out)
	}
}

func TestQueryPathCommand(t *testing.T) {
	setupProject(t)

	out := runCmd(t, newQueryPathCmd(), "a", "c")
	if !strings.Contains(out, "a -> b -> c") {
		t.Errorf("unexpected path output:\n%s", out)
	}
	if !strings.Contains(out, "length 2") {
		t.Errorf("unexpected path length:\n%s", out)
	}
}

func TestAnalyzeCyclesCommand(t *testing.T) {
	setupProject(t)

	out := runCmd(t, newAnalyzeCyclesCmd())
	if !strings.Contains(out, "1 cycle(s)") {
		t.Errorf("expected one cycle, got:\n%s", out)
	}
}

func TestAnalyzeTopoReportsCycle(t *testing.T) {
	setupProject(t)

	out := runCmd(t, newAnalyzeTopoCmd())
	if !strings.Contains(out, "Graph contains cycles") {
		t.Errorf("expected cycle notice, got:\n%s", out)
	}
}

func TestAnalyzeHotspotsCommand(t *testing.T) {
	setupProject(t)

	out := runCmd(t, newAnalyzeHotspotsCmd(), "--top", "1")
	// In the three-cycle every node scores in*2+out = 3; insertion
	// order breaks the tie.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, "a") {
		t.Errorf("expected node a as top hotspot, got:\n%s", out)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	setupProject(t)

	out := runCmd(t, newExportCmd(), "--output", "graph.yaml")
	if !strings.Contains(out, "Exported 3 nodes and 3 edges") {
		t.Errorf("unexpected export output:\n%s", out)
	}

	// Wipe the working snapshot, then import the yaml export back.
	writeSnapshot(t, graph.NewStore(), "lattice.json")

	out = runCmd(t, newImportCmd(), "--input", "graph.yaml")
	if !strings.Contains(out, "Imported 3 nodes and 3 edges") {
		t.Errorf("unexpected import output:\n%s", out)
	}

	stats := runCmd(t, newStatsCmd())
	if !strings.Contains(stats, "Total nodes: 3") {
		t.Errorf("snapshot not restored after import:\n%s", stats)
	}
}

func TestInitCommand(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	out := runCmd(t, newInitCmd())
	if !strings.Contains(out, "Created") {
		t.Errorf("unexpected init output:\n%s", out)
	}
	if _, err := os.Stat(configFileName); err != nil {
		t.Errorf("config file not created: %v", err)
	}
	if _, err := os.Stat("lattice.json"); err != nil {
		t.Errorf("snapshot file not created: %v", err)
	}
}

func TestInitCommandRefusesExisting(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	runCmd(t, newInitCmd())

	cmd := newInitCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error re-initializing an existing project")
	}
}

func TestBuildNodePredicate(t *testing.T) {
	node := &graph.Node{
		ID:          "n1",
		Type:        graph.NodeCode,
		Label:       "AuthService",
		Description: "handles login",
		Metadata:    graph.Metadata{Tags: []string{"auth", "security"}},
	}

	tests := []struct {
		name                    string
		typ, label, tag, search string
		want                    bool
	}{
		{"nil matches all", "", "", "", "", true},
		{"type match", "code", "", "", "", true},
		{"type mismatch", "document", "", "", "", false},
		{"label match", "", "AuthService", "", "", true},
		{"label mismatch", "", "auth", "", "", false},
		{"tag match", "", "", "security", "", true},
		{"tag mismatch", "", "", "billing", "", false},
		{"search label", "", "", "", "authserv", true},
		{"search description", "", "", "", "LOGIN", true},
		{"search miss", "", "", "", "payments", false},
		{"combined", "code", "", "auth", "login", true},
		{"combined one fails", "code", "", "billing", "login", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := buildNodePredicate(tt.typ, tt.label, tt.tag, tt.search)
			got := pred == nil || pred(node)
			if got != tt.want {
				t.Errorf("predicate(%q,%q,%q,%q) = %v, want %v",
					tt.typ, tt.label, tt.tag, tt.search, got, tt.want)
			}
		})
	}
}

func TestParseEdgeSpec(t *testing.T) {
	tests := []struct {
		spec    string
		want    query.EdgePattern
		wantErr bool
	}{
		{"calls:0-1", query.EdgePattern{Type: graph.EdgeCalls, From: 0, To: 1}, false},
		{"*:1-2", query.EdgePattern{From: 1, To: 2}, false},
		{"documents:2-0", query.EdgePattern{Type: graph.EdgeDocuments, From: 2, To: 0}, false},
		{"calls", query.EdgePattern{}, true},
		{"calls:01", query.EdgePattern{}, true},
		{"calls:x-1", query.EdgePattern{}, true},
		{"calls:0-y", query.EdgePattern{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := parseEdgeSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseEdgeSpec(%q) expected error", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseEdgeSpec(%q): %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("parseEdgeSpec(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestQueryPatternCommand(t *testing.T) {
	setupProject(t)

	out := runCmd(t, newQueryPatternCmd(), "--node", "code", "--node", "code", "--edge", "calls:0-1")
	if !strings.Contains(out, "3 match(es)") {
		t.Errorf("expected three matches, got:\n%s", out)
	}
}

func TestQueryAggregateCommand(t *testing.T) {
	setupProject(t)

	out := runCmd(t, newQueryAggregateCmd(), "--group-by", "type")
	if !strings.Contains(out, "code") || !strings.Contains(out, "3") {
		t.Errorf("unexpected aggregate output:\n%s", out)
	}
}
