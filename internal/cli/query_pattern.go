package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/latticekg/lattice/internal/graph"
	"github.com/latticekg/lattice/internal/query"
)

func newQueryPatternCmd() *cobra.Command {
	var (
		nodeSpecs []string
		edgeSpecs []string
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:   "pattern",
		Short: "Match a structural pattern against the graph",
		Long: `Match a typed pattern of node slots joined by edge constraints.

Node slots are declared in order with repeated --node flags; '*' matches
any type. Edge constraints use --edge TYPE:FROM-TO with slot indexes,
e.g. --edge calls:0-1. Matching is greedy per start node: the first
qualifying edge binds each slot.

Example:
  lattice query pattern --node code --node code --edge calls:0-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(nodeSpecs) == 0 {
				return fmt.Errorf("at least one --node is required")
			}

			pattern := query.Pattern{}
			for _, spec := range nodeSpecs {
				np := query.NodePattern{}
				if spec != "*" {
					np.Type = graph.NodeType(spec)
				}
				pattern.Nodes = append(pattern.Nodes, np)
			}
			for _, spec := range edgeSpecs {
				ep, err := parseEdgeSpec(spec)
				if err != nil {
					return err
				}
				pattern.Edges = append(pattern.Edges, ep)
			}

			_, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			matches, err := query.NewEngine(store).FindPattern(pattern)
			if err != nil {
				return fmt.Errorf("find pattern: %w", err)
			}

			out := cmd.OutOrStdout()

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(matches)
			}

			if len(matches) == 0 {
				fmt.Fprintln(out, "No matches found.")
				return nil
			}

			for i, m := range matches {
				labels := make([]string, len(m.Nodes))
				for j, n := range m.Nodes {
					labels[j] = fmt.Sprintf("%s(%s)", n.Label, n.Type)
				}
				fmt.Fprintf(out, "%d. %s\n", i+1, strings.Join(labels, "  "))
			}
			fmt.Fprintf(out, "\n%d match(es)\n", len(matches))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&nodeSpecs, "node", nil, "node slot type, in slot order ('*' for any)")
	cmd.Flags().StringArrayVar(&edgeSpecs, "edge", nil, "edge constraint TYPE:FROM-TO (slot indexes)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")

	return cmd
}

// parseEdgeSpec parses "TYPE:FROM-TO" into an EdgePattern. TYPE may be
// '*' to match any edge type.
func parseEdgeSpec(spec string) (query.EdgePattern, error) {
	typePart, slotPart, ok := strings.Cut(spec, ":")
	if !ok {
		return query.EdgePattern{}, fmt.Errorf("invalid edge spec %q: want TYPE:FROM-TO", spec)
	}
	fromPart, toPart, ok := strings.Cut(slotPart, "-")
	if !ok {
		return query.EdgePattern{}, fmt.Errorf("invalid edge spec %q: want TYPE:FROM-TO", spec)
	}
	from, err := strconv.Atoi(fromPart)
	if err != nil {
		return query.EdgePattern{}, fmt.Errorf("invalid edge spec %q: bad slot %q", spec, fromPart)
	}
	to, err := strconv.Atoi(toPart)
	if err != nil {
		return query.EdgePattern{}, fmt.Errorf("invalid edge spec %q: bad slot %q", spec, toPart)
	}

	ep := query.EdgePattern{From: from, To: to}
	if typePart != "*" {
		ep.Type = graph.EdgeType(typePart)
	}
	return ep, nil
}

func newQueryAggregateCmd() *cobra.Command {
	var (
		groupBy string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Group nodes by a field and count them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if groupBy == "" {
				return fmt.Errorf("--group-by is required")
			}

			_, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			group, err := query.GroupByField(groupBy)
			if err != nil {
				return fmt.Errorf("aggregate: %w", err)
			}

			groups, err := query.NewEngine(store).Aggregate(group, nil)
			if err != nil {
				return fmt.Errorf("aggregate: %w", err)
			}

			out := cmd.OutOrStdout()

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(groups)
			}

			if len(groups) == 0 {
				fmt.Fprintln(out, "No nodes to aggregate.")
				return nil
			}

			keys := make([]string, 0, len(groups))
			for k := range groups {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, k := range keys {
				display := k
				if display == "" {
					display = "(none)"
				}
				fmt.Fprintf(out, "  %-20s %v\n", display, groups[k])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&groupBy, "group-by", "", "field to group by: type, label, language, domain, status, format")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")

	return cmd
}
