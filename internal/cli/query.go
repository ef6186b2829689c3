package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/latticekg/lattice/internal/graph"
	"github.com/latticekg/lattice/internal/query"
)

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the knowledge graph",
		Long: `Query the knowledge graph.

Subcommands cover predicate search (find), paths (path, paths),
neighborhoods, structural pattern matching, and aggregation.`,
	}

	cmd.AddCommand(newQueryFindCmd())
	cmd.AddCommand(newQueryPathCmd())
	cmd.AddCommand(newQueryPathsCmd())
	cmd.AddCommand(newQueryNeighborhoodCmd())
	cmd.AddCommand(newQueryPatternCmd())
	cmd.AddCommand(newQueryAggregateCmd())

	return cmd
}

func newQueryFindCmd() *cobra.Command {
	var (
		nodeType string
		label    string
		tag      string
		search   string
		orderBy  string
		desc     bool
		limit    int
		offset   int
		edges    bool
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find nodes matching filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			if limit == 0 {
				limit = cfg.Query.Limit
			}

			pred := buildNodePredicate(nodeType, label, tag, search)
			engine := query.NewEngine(store)
			result, err := engine.FindNodes(pred, query.FindOptions{
				Limit:        limit,
				Offset:       offset,
				OrderBy:      orderBy,
				Descending:   desc,
				IncludeEdges: edges,
			})
			if err != nil {
				return fmt.Errorf("find nodes: %w", err)
			}

			out := cmd.OutOrStdout()

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			if len(result.Nodes) == 0 {
				fmt.Fprintln(out, "No results found.")
				return nil
			}

			printNodeTable(out, result.Nodes)
			fmt.Fprintf(out, "\n%d of %d result(s)\n", len(result.Nodes), result.Total)

			if edges && len(result.Edges) > 0 {
				fmt.Fprintln(out, "\nIncident edges:")
				for _, e := range result.Edges {
					fmt.Fprintf(out, "  %s\n", formatEdge(e))
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&nodeType, "type", "", "filter by node type (code, business, document, conversation)")
	cmd.Flags().StringVar(&label, "label", "", "filter by exact label")
	cmd.Flags().StringVar(&tag, "tag", "", "filter by tag")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive substring over label, description, tags")
	cmd.Flags().StringVar(&orderBy, "order-by", "", "sort field: id, label, type, created, updated")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().IntVar(&limit, "limit", 0, "max results (default from config)")
	cmd.Flags().IntVar(&offset, "offset", 0, "skip this many results")
	cmd.Flags().BoolVar(&edges, "edges", false, "include incident edges")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")

	return cmd
}

// buildNodePredicate combines the find flags into a single predicate.
// All provided filters must hold.
func buildNodePredicate(nodeType, label, tag, search string) query.NodePredicate {
	if nodeType == "" && label == "" && tag == "" && search == "" {
		return nil
	}
	needle := strings.ToLower(search)
	return func(n *graph.Node) bool {
		if nodeType != "" && n.Type != graph.NodeType(nodeType) {
			return false
		}
		if label != "" && n.Label != label {
			return false
		}
		if tag != "" && !hasTag(n, tag) {
			return false
		}
		if needle != "" && !nodeContains(n, needle) {
			return false
		}
		return true
	}
}

func hasTag(n *graph.Node, tag string) bool {
	for _, t := range n.Metadata.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func nodeContains(n *graph.Node, needle string) bool {
	if strings.Contains(strings.ToLower(n.Label), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Description), needle) {
		return true
	}
	for _, t := range n.Metadata.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

func printNodeTable(out io.Writer, nodes []*graph.Node) {
	fmt.Fprintf(out, "%-24s  %-14s  %-30s  %s\n", "ID", "Type", "Label", "Tags")
	fmt.Fprintf(out, "%-24s  %-14s  %-30s  %s\n", "------------------------", "--------------", "------------------------------", "----")
	for _, n := range nodes {
		fmt.Fprintf(out, "%-24s  %-14s  %-30s  %s\n", n.ID, n.Type, n.Label, strings.Join(n.Metadata.Tags, ","))
	}
}

func formatEdge(e *graph.Edge) string {
	arrow := "->"
	if e.Bidirectional {
		arrow = "<->"
	}
	return fmt.Sprintf("%-12s %s %s %s (weight %.1f)", e.Type, e.SourceID, arrow, e.TargetID, e.Weight)
}
