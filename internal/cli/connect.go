package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latticekg/lattice/internal/connector"
)

func newConnectCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Infer cross-domain edges",
		Long: `Infer edges across node type boundaries:

  documents   document label/description mentions a code or business label
  references  conversation mentions a code, business, or document label
  relates_to  two nodes share enough tags (threshold from config)

Inference is idempotent; re-running never duplicates edges.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			logFn := func(format string, args ...any) {
				fmt.Fprintf(out, format+"\n", args...)
			}

			before := store.EdgeCount()

			c := connector.New(store, logFn, cfg.Connector.MinSharedTags, verbose)
			if err := c.RunAll(); err != nil {
				return fmt.Errorf("connect: %w", err)
			}

			added := store.EdgeCount() - before
			if dryRun {
				fmt.Fprintf(out, "Dry run: %d edge(s) would be added.\n", added)
				return nil
			}

			if err := saveStore(cfg, store); err != nil {
				return err
			}
			fmt.Fprintf(out, "Added %d edge(s); snapshot updated.\n", added)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "infer edges without writing the snapshot")

	return cmd
}
