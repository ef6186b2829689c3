package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/latticekg/lattice/internal/graph"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show graph statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			printStats(cmd.OutOrStdout(), store.Stats())
			return nil
		},
	}
}

func printStats(out io.Writer, stats graph.Statistics) {
	fmt.Fprintln(out, headerStyle.Render("Graph Statistics"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Total nodes: %d\n", stats.NodeCount)
	fmt.Fprintf(out, "  Total edges: %d\n", stats.EdgeCount)
	fmt.Fprintf(out, "  Bidirectional edges: %d\n", stats.BidirectionalEdges)
	fmt.Fprintf(out, "  Avg out-degree: %.2f\n\n", stats.AvgOutDegree)

	if len(stats.NodesByType) > 0 {
		fmt.Fprintf(out, "  Nodes by type:\n")
		for _, nt := range sortedNodeTypes(stats.NodesByType) {
			fmt.Fprintf(out, "    %-20s %d\n", nt, stats.NodesByType[nt])
		}
		fmt.Fprintln(out)
	}

	if len(stats.EdgesByType) > 0 {
		fmt.Fprintf(out, "  Edges by type:\n")
		for _, et := range sortedEdgeTypes(stats.EdgesByType) {
			fmt.Fprintf(out, "    %-20s %d\n", et, stats.EdgesByType[et])
		}
		fmt.Fprintln(out)
	}
}

func sortedNodeTypes(m map[graph.NodeType]int) []graph.NodeType {
	keys := make([]graph.NodeType, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedEdgeTypes(m map[graph.EdgeType]int) []graph.EdgeType {
	keys := make([]graph.EdgeType, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
