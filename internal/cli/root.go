// Package cli implements the command-line interface for Lattice.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "lattice",
	Short: "Lattice - In-memory knowledge graph store and query engine",
	Long: `Lattice keeps a typed property graph of code artifacts, documents,
business concepts, and conversations in memory, persists it through
snapshots, and answers structural and pattern queries over it.

Commands:
  init       Initialize a .lattice.yaml config file
  stats      Show graph statistics
  validate   Report referential and typing issues in the graph
  query      Query the graph (find, path, paths, neighborhood, pattern, aggregate)
  analyze    Run structural analyses (cycles, topo, scc, bridges, ...)
  archive    Manage named snapshots in the archive database
  connect    Infer cross-domain edges (documents, references, relates_to)
  watch      Watch the snapshot file and reload on change`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .lattice.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	bindFlag := func(key, flag string) {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("failed to bind %s flag: %v", flag, err))
		}
	}
	bindFlag("config_file", "config")

	// Add subcommands
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newArchiveCmd())
	rootCmd.AddCommand(newConnectCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}
