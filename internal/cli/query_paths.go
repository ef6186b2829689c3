package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/latticekg/lattice/internal/query"
)

func newQueryPathCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "path FROM TO",
		Short: "Find the lowest-weight path between two nodes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			path := query.NewEngine(store).FindShortestPath(args[0], args[1])

			out := cmd.OutOrStdout()

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(path)
			}

			if len(path.Nodes) == 0 {
				fmt.Fprintf(out, "No path from %s to %s.\n", args[0], args[1])
				return nil
			}

			printPath(out, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")

	return cmd
}

func newQueryPathsCmd() *cobra.Command {
	var (
		maxDepth int
		limit    int
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:   "paths FROM TO",
		Short: "Enumerate simple paths between two nodes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			if maxDepth == 0 {
				maxDepth = cfg.Query.MaxDepth
			}
			if limit == 0 {
				limit = cfg.Query.MaxPaths
			}

			paths := query.NewEngine(store).FindPaths(args[0], args[1], query.PathOptions{
				MaxDepth: maxDepth,
				Limit:    limit,
			})

			out := cmd.OutOrStdout()

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(paths)
			}

			if len(paths) == 0 {
				fmt.Fprintf(out, "No paths from %s to %s.\n", args[0], args[1])
				return nil
			}

			for i, p := range paths {
				fmt.Fprintf(out, "%d. ", i+1)
				printPath(out, p)
			}
			fmt.Fprintf(out, "\n%d path(s)\n", len(paths))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "max edges per path (default from config)")
	cmd.Flags().IntVar(&limit, "limit", 0, "max paths to enumerate (default from config)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")

	return cmd
}

func newQueryNeighborhoodCmd() *cobra.Command {
	var (
		distance int
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:   "neighborhood NODE",
		Short: "List nodes within a hop distance of a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			nb := query.NewEngine(store).FindNeighborhood(args[0], distance)

			out := cmd.OutOrStdout()

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(nb)
			}

			if len(nb.Nodes) == 0 {
				fmt.Fprintf(out, "No node found matching %q.\n", args[0])
				return nil
			}

			fmt.Fprintf(out, "Neighborhood of %s (distance %d):\n\n", nb.Center, distance)
			for _, n := range nb.Nodes {
				fmt.Fprintf(out, "  %d  %-14s  %s\n", nb.Distance[n.ID], n.Type, n.Label)
			}
			fmt.Fprintf(out, "\n%d node(s)\n", len(nb.Nodes))
			return nil
		},
	}

	cmd.Flags().IntVar(&distance, "distance", 2, "max hop distance (negative for unbounded)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")

	return cmd
}

func printPath(out io.Writer, p query.Path) {
	labels := make([]string, len(p.Nodes))
	for i, n := range p.Nodes {
		labels[i] = n.Label
	}
	fmt.Fprintf(out, "%s  (length %d, weight %.1f)\n", strings.Join(labels, " -> "), p.Length, p.Weight)
}
