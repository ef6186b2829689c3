package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/latticekg/lattice/internal/config"
	"github.com/latticekg/lattice/internal/graph"
)

func newExportCmd() *cobra.Command {
	var (
		output     string
		formatName string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the graph to a file",
		Long: `Export the loaded graph to a file in json, yaml, or toml format.
If --format is omitted it is inferred from the output file extension.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}

			_, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}

			if formatName == "" {
				formatName = filepath.Ext(output)
			}
			format, err := graph.ParseFormat(formatName)
			if err != nil {
				return fmt.Errorf("export format: %w", err)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := store.Export(f, format); err != nil {
				f.Close()
				return fmt.Errorf("export: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("export: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d nodes and %d edges to %s\n",
				store.NodeCount(), store.EdgeCount(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (required)")
	cmd.Flags().StringVar(&formatName, "format", "", "export format: json, yaml, or toml")

	return cmd
}

func newImportCmd() *cobra.Command {
	var (
		input      string
		formatName string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a graph export and save it as the working snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				return fmt.Errorf("--input is required")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if formatName == "" {
				formatName = filepath.Ext(input)
			}
			format, err := graph.ParseFormat(formatName)
			if err != nil {
				return fmt.Errorf("import format: %w", err)
			}

			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("open %s: %w", input, err)
			}
			defer f.Close()

			store := graph.NewStore()
			if err := store.Import(f, format); err != nil {
				return fmt.Errorf("import %s: %w", input, err)
			}

			if err := saveStore(cfg, store); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d nodes and %d edges into %s\n",
				store.NodeCount(), store.EdgeCount(), cfg.Snapshot.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input file path (required)")
	cmd.Flags().StringVar(&formatName, "format", "", "import format: json, yaml, or toml")

	return cmd
}
