package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Report referential and typing issues in the graph",
		Long: `Check the loaded graph for dangling edges, empty labels, negative
weights, and type/payload mismatches. Issues are reported, never repaired.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			issues := store.Validate()
			out := cmd.OutOrStdout()

			if len(issues) == 0 {
				fmt.Fprintln(out, "No issues found.")
				return nil
			}

			for _, issue := range issues {
				fmt.Fprintf(out, "  %s\n", issue)
			}
			fmt.Fprintf(out, "\n%d issue(s) found\n", len(issues))
			return nil
		},
	}
}
