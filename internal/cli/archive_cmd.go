package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latticekg/lattice/internal/archive"
	"github.com/latticekg/lattice/internal/config"
)

func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Manage named snapshots in the archive database",
		Long: `Manage named snapshots. The archive is an embedded database holding
point-in-time copies of the graph, independent of the working snapshot
file; 'save' freezes the current graph, 'load' replaces it.`,
	}

	cmd.AddCommand(newArchiveSaveCmd())
	cmd.AddCommand(newArchiveLoadCmd())
	cmd.AddCommand(newArchiveListCmd())
	cmd.AddCommand(newArchiveDeleteCmd())
	cmd.AddCommand(newArchiveShowCmd())

	return cmd
}

// openArchive opens the configured archive database.
func openArchive(cfg *config.Config) (*archive.Archive, error) {
	a, err := archive.Open(cfg.Archive.Path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", cfg.Archive.Path, err)
	}
	return a, nil
}

func newArchiveSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save NAME",
		Short: "Save the current graph as a named snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			a, err := openArchive(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Save(args[0], store.Snapshot()); err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q (%d nodes, %d edges)\n",
				args[0], store.NodeCount(), store.EdgeCount())
			return nil
		},
	}
}

func newArchiveLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load NAME",
		Short: "Replace the working snapshot with an archived one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			a, err := openArchive(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			snap, err := a.Load(args[0])
			if err != nil {
				return fmt.Errorf("load snapshot: %w", err)
			}

			if err := store.Restore(snap); err != nil {
				return fmt.Errorf("restore snapshot: %w", err)
			}

			if err := saveStore(cfg, store); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %q into %s (%d nodes, %d edges)\n",
				args[0], cfg.Snapshot.Path, store.NodeCount(), store.EdgeCount())
			return nil
		},
	}
}

func newArchiveListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			a, err := openArchive(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.List()
			if err != nil {
				return fmt.Errorf("list snapshots: %w", err)
			}

			out := cmd.OutOrStdout()

			if len(entries) == 0 {
				fmt.Fprintln(out, "Archive is empty.")
				return nil
			}

			fmt.Fprintf(out, "%-20s  %-20s  %6s  %6s\n", "Name", "Saved", "Nodes", "Edges")
			fmt.Fprintf(out, "%-20s  %-20s  %6s  %6s\n", "--------------------", "--------------------", "------", "------")
			for _, e := range entries {
				fmt.Fprintf(out, "%-20s  %-20s  %6d  %6d\n",
					e.Name, e.SavedAt.Format("2006-01-02 15:04:05"), e.NodeCount, e.EdgeCount)
			}
			return nil
		},
	}
}

func newArchiveDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete an archived snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			a, err := openArchive(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Delete(args[0]); err != nil {
				return fmt.Errorf("delete snapshot: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", args[0])
			return nil
		},
	}
}

func newArchiveShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show details of an archived snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			a, err := openArchive(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			entry, err := a.Stat(args[0])
			if err != nil {
				return fmt.Errorf("stat snapshot: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:   %s\n", entry.Name)
			fmt.Fprintf(out, "Saved:  %s\n", entry.SavedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Nodes:  %d\n", entry.NodeCount)
			fmt.Fprintf(out, "Edges:  %d\n", entry.EdgeCount)
			return nil
		},
	}
}
