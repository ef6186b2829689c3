package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/latticekg/lattice/internal/config"
)

// Style definitions for config view.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"})
	labelStyle = lipgloss.NewStyle().
			Faint(true).
			Width(18)
	valueStyle = lipgloss.NewStyle()
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View project configuration",
		Long: `View Lattice project configuration.

Displays the merged configuration (file, environment, defaults) in a
pretty-printed format.`,
		RunE: runConfigView,
	}
}

func runConfigView(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)

	// Title
	fmt.Fprintln(out, headerStyle.Render("Lattice Configuration"))
	fmt.Fprintln(out, headerStyle.Render(strings.Repeat("=", 22)))
	fmt.Fprintln(out)

	// Project
	printSection(out, "Project")
	printKV(out, "Name", cfg.Project.Name)
	fmt.Fprintln(out)

	// Snapshot
	printSection(out, "Snapshot")
	printKV(out, "Path", cfg.Snapshot.Path)
	printKV(out, "Format", cfg.Snapshot.Format)
	fmt.Fprintln(out)

	// Archive
	printSection(out, "Archive")
	printKV(out, "Path", cfg.Archive.Path)
	fmt.Fprintln(out)

	// Query Bounds
	printSection(out, "Query Bounds")
	printKV(out, "Max depth", fmt.Sprintf("%d", cfg.Query.MaxDepth))
	printKV(out, "Max paths", fmt.Sprintf("%d", cfg.Query.MaxPaths))
	printKV(out, "Result limit", fmt.Sprintf("%d", cfg.Query.Limit))
	fmt.Fprintln(out)

	// Connector
	printSection(out, "Connector")
	printKV(out, "Min shared tags", fmt.Sprintf("%d", cfg.Connector.MinSharedTags))
	fmt.Fprintln(out)

	// Watch
	printSection(out, "Watch")
	printKV(out, "Debounce", fmt.Sprintf("%dms", cfg.Watch.DebounceMS))
	fmt.Fprintln(out)

	return nil
}

func printSection(out io.Writer, title string) {
	fmt.Fprintf(out, "  %s\n", headerStyle.Render(title))
}

func printKV(out io.Writer, label, value string) {
	fmt.Fprintf(out, "    %s%s\n", labelStyle.Render(label+":"), valueStyle.Render(value))
}
