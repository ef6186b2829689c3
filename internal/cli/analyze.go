package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/latticekg/lattice/internal/graph"
	"github.com/latticekg/lattice/internal/query"
	"github.com/latticekg/lattice/internal/traversal"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run structural analyses over the graph",
		Long: `Run structural analyses over the graph: cycle detection, topological
ordering, strongly connected components, weak components, bridges,
articulation points, bipartiteness, and connectivity hotspots.`,
	}

	cmd.AddCommand(newAnalyzeCyclesCmd())
	cmd.AddCommand(newAnalyzeTopoCmd())
	cmd.AddCommand(newAnalyzeSCCCmd())
	cmd.AddCommand(newAnalyzeComponentsCmd())
	cmd.AddCommand(newAnalyzeBridgesCmd())
	cmd.AddCommand(newAnalyzeCutpointsCmd())
	cmd.AddCommand(newAnalyzeBipartiteCmd())
	cmd.AddCommand(newAnalyzeHotspotsCmd())

	return cmd
}

func newAnalyzeCyclesCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "Detect cycles over directed edges",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			cycles := traversal.DetectCycles(store)
			out := cmd.OutOrStdout()

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(cycles)
			}

			if len(cycles) == 0 {
				fmt.Fprintln(out, "No cycles found.")
				return nil
			}

			for i, cycle := range cycles {
				fmt.Fprintf(out, "%d. %s\n", i+1, joinLabels(store, cycle, " -> "))
			}
			fmt.Fprintf(out, "\n%d cycle(s)\n", len(cycles))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")

	return cmd
}

func newAnalyzeTopoCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "topo",
		Short: "Topologically sort the graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			order, acyclic := traversal.TopologicalSort(store)
			out := cmd.OutOrStdout()

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Order   []string `json:"order"`
					Acyclic bool     `json:"acyclic"`
				}{order, acyclic})
			}

			if !acyclic {
				fmt.Fprintln(out, "Graph contains cycles; order below covers the acyclic portion.")
				fmt.Fprintln(out)
			}
			for i, id := range order {
				fmt.Fprintf(out, "%3d. %s\n", i+1, labelFor(store, id))
			}
			fmt.Fprintf(out, "\n%d node(s) ordered\n", len(order))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")

	return cmd
}

func newAnalyzeSCCCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "scc",
		Short: "Find strongly connected components",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			components := traversal.StronglyConnectedComponents(store)
			return printComponents(cmd.OutOrStdout(), store, components, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")

	return cmd
}

func newAnalyzeComponentsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "components",
		Short: "Find weakly connected components",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			components := traversal.WeakComponents(store)
			return printComponents(cmd.OutOrStdout(), store, components, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")

	return cmd
}

func newAnalyzeBridgesCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "bridges",
		Short: "Find bridge edges whose removal disconnects the graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			bridges := traversal.Bridges(store)
			out := cmd.OutOrStdout()

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(bridges)
			}

			if len(bridges) == 0 {
				fmt.Fprintln(out, "No bridges found.")
				return nil
			}

			for _, e := range bridges {
				fmt.Fprintf(out, "  %s %s -> %s\n", e.Type, labelFor(store, e.SourceID), labelFor(store, e.TargetID))
			}
			fmt.Fprintf(out, "\n%d bridge(s)\n", len(bridges))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")

	return cmd
}

func newAnalyzeCutpointsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "cutpoints",
		Short: "Find articulation points whose removal disconnects the graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			points := traversal.ArticulationPoints(store)
			out := cmd.OutOrStdout()

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(points)
			}

			if len(points) == 0 {
				fmt.Fprintln(out, "No articulation points found.")
				return nil
			}

			for _, id := range points {
				fmt.Fprintf(out, "  %s\n", labelFor(store, id))
			}
			fmt.Fprintf(out, "\n%d articulation point(s)\n", len(points))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")

	return cmd
}

func newAnalyzeBipartiteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bipartite",
		Short: "Check whether the graph is two-colorable",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			if traversal.IsBipartite(store) {
				fmt.Fprintln(cmd.OutOrStdout(), "Graph is bipartite.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Graph is not bipartite.")
			}
			return nil
		},
	}
}

func newAnalyzeHotspotsCmd() *cobra.Command {
	var (
		top     int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "hotspots",
		Short: "Rank nodes by connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			spots := query.NewEngine(store).Hotspots(top)
			out := cmd.OutOrStdout()

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(spots)
			}

			if len(spots) == 0 {
				fmt.Fprintln(out, "Graph is empty.")
				return nil
			}

			fmt.Fprintf(out, "%-30s  %-14s  %5s  %5s  %5s\n", "Label", "Type", "In", "Out", "Score")
			fmt.Fprintf(out, "%-30s  %-14s  %5s  %5s  %5s\n", "------------------------------", "--------------", "-----", "-----", "-----")
			for _, s := range spots {
				fmt.Fprintf(out, "%-30s  %-14s  %5d  %5d  %5d\n", s.Node.Label, s.Node.Type, s.In, s.Out, s.Score)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 10, "show at most this many nodes (non-positive for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")

	return cmd
}

func printComponents(out io.Writer, store *graph.Store, components [][]string, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(components)
	}

	if len(components) == 0 {
		fmt.Fprintln(out, "Graph is empty.")
		return nil
	}

	for i, comp := range components {
		fmt.Fprintf(out, "%d. [%s]\n", i+1, joinLabels(store, comp, ", "))
	}
	fmt.Fprintf(out, "\n%d component(s)\n", len(components))
	return nil
}

func joinLabels(store *graph.Store, ids []string, sep string) string {
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = labelFor(store, id)
	}
	return strings.Join(labels, sep)
}

func labelFor(store *graph.Store, id string) string {
	if n, ok := store.GetNode(id); ok && n.Label != "" {
		return n.Label
	}
	return id
}
