package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/latticekg/lattice/internal/config"
	"github.com/latticekg/lattice/internal/graph"
)

const configFileName = ".lattice.yaml"

func newInitCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a .lattice.yaml config file",
		Long: `Initialize a Lattice project in the current directory.

Creates a .lattice.yaml configuration file and an empty snapshot file,
and registers the project in ~/.lattice.conf for cross-project access.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}

			configPath := filepath.Join(cwd, configFileName)
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("%s already exists; project is already initialized", configPath)
			}

			if interactive {
				return runInteractiveInit(cmd, cwd)
			}

			cfg := defaultProjectConfig(filepath.Base(cwd))
			return writeProject(cmd, cwd, cfg)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "run the interactive setup wizard")

	return cmd
}

// defaultProjectConfig builds the config written by a plain init.
func defaultProjectConfig(name string) *config.Config {
	return &config.Config{
		Project:   config.ProjectConfig{Name: name},
		Snapshot:  config.SnapshotConfig{Path: "lattice.json", Format: "json"},
		Archive:   config.ArchiveConfig{Path: ".lattice-archive"},
		Query:     config.QueryConfig{MaxDepth: 10, MaxPaths: 100, Limit: 50},
		Connector: config.ConnectorConfig{MinSharedTags: 2},
		Watch:     config.WatchConfig{DebounceMS: 300},
	}
}

// writeProject writes the config file, seeds an empty snapshot if none
// exists, and registers the project.
func writeProject(cmd *cobra.Command, cwd string, cfg *config.Config) error {
	out := cmd.OutOrStdout()

	configPath := filepath.Join(cwd, configFileName)
	if err := config.WriteConfig(cfg, configPath); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	fmt.Fprintf(out, "Created %s\n", configPath)

	snapPath := cfg.Snapshot.Path
	if !filepath.IsAbs(snapPath) {
		snapPath = filepath.Join(cwd, snapPath)
	}
	if _, err := os.Stat(snapPath); os.IsNotExist(err) {
		format, err := graph.ParseFormat(cfg.Snapshot.Format)
		if err != nil {
			return fmt.Errorf("snapshot format: %w", err)
		}
		f, err := os.Create(snapPath)
		if err != nil {
			return fmt.Errorf("create snapshot file: %w", err)
		}
		if err := graph.NewStore().Export(f, format); err != nil {
			f.Close()
			return fmt.Errorf("write snapshot file: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write snapshot file: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n", snapPath)
	}

	if err := config.RegisterProject(cfg.Project.Name, cwd, snapPath); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to register project in %s: %v\n", config.RegistryPath(), err)
	} else {
		fmt.Fprintf(out, "Registered project %q in %s\n", cfg.Project.Name, config.RegistryPath())
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit .lattice.yaml to adjust snapshot path and query bounds")
	fmt.Fprintln(out, "  2. Run 'lattice import' to load an existing graph export")
	fmt.Fprintln(out, "  3. Run 'lattice stats' to inspect the graph")

	return nil
}
