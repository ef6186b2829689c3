package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// runInteractiveInit runs the interactive TUI wizard for project initialization.
func runInteractiveInit(cmd *cobra.Command, cwd string) error {
	out := cmd.OutOrStdout()

	// Form variables
	var (
		projectName   = filepath.Base(cwd)
		snapPath      = "lattice.json"
		snapFormat    = "json"
		minSharedTags = "2"
		confirm       bool
	)

	formatOptions := []huh.Option[string]{
		huh.NewOption("JSON", "json"),
		huh.NewOption("YAML", "yaml"),
		huh.NewOption("TOML", "toml"),
	}

	form := huh.NewForm(
		// Group 1: Project Setup
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Value(&projectName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("project name cannot be empty")
					}
					return nil
				}),
		).Title("Project Setup"),

		// Group 2: Snapshot
		huh.NewGroup(
			huh.NewInput().
				Title("Snapshot path").
				Value(&snapPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("snapshot path cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Snapshot format").
				Options(formatOptions...).
				Value(&snapFormat),
		).Title("Snapshot"),

		// Group 3: Connector
		huh.NewGroup(
			huh.NewInput().
				Title("Minimum shared tags for relates_to inference").
				Value(&minSharedTags).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("must be a number >= 1")
					}
					return nil
				}),
		).Title("Connector"),

		// Group 4: Confirm
		huh.NewGroup(
			huh.NewNote().
				Title("Summary").
				DescriptionFunc(func() string {
					return fmt.Sprintf(
						"Project:     %s\n"+
							"Snapshot:    %s (%s)\n"+
							"Shared tags: %s",
						projectName, snapPath, snapFormat, minSharedTags,
					)
				}, &snapPath),
			huh.NewConfirm().
				Title("Create project?").
				Value(&confirm).
				Affirmative("Create").
				Negative("Cancel"),
		).Title("Confirm"),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if err == huh.ErrUserAborted {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		return fmt.Errorf("interactive init: %w", err)
	}

	if !confirm {
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}

	tags, err := strconv.Atoi(strings.TrimSpace(minSharedTags))
	if err != nil {
		tags = 2
	}

	cfg := defaultProjectConfig(projectName)
	cfg.Snapshot.Path = snapPath
	cfg.Snapshot.Format = snapFormat
	cfg.Connector.MinSharedTags = tags

	return writeProject(cmd, cwd, cfg)
}
