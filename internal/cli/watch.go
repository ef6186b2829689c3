package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/latticekg/lattice/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the snapshot file and reload on change",
		Long: `Watch the configured snapshot file. On each (debounced) change the
graph is reloaded and its statistics and validation issues are printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadConfigAndStore()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			w, err := watcher.New(cfg.Snapshot.Path, cfg.Watch.DebounceMS)
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer w.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				fmt.Fprintln(cmd.OutOrStdout(), "\nShutting down...")
				cancel()
			}()

			events, err := w.Start(ctx)
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watching %s (debounce %dms)\n", w.Path(), cfg.Watch.DebounceMS)
			printStats(out, store.Stats())

			for evt := range events {
				fmt.Fprintf(out, "[%s] %s %s\n", evt.Time.Format("15:04:05"), evt.Op, evt.Path)

				if evt.Op == watcher.Remove {
					fmt.Fprintln(out, "Snapshot removed; keeping last loaded graph.")
					continue
				}

				reloaded, err := loadStore(cfg)
				if err != nil {
					fmt.Fprintf(out, "Reload failed: %v\n", err)
					continue
				}
				store = reloaded

				printStats(out, store.Stats())
				if issues := store.Validate(); len(issues) > 0 {
					fmt.Fprintf(out, "  %d validation issue(s):\n", len(issues))
					for _, issue := range issues {
						fmt.Fprintf(out, "    %s\n", issue)
					}
				}
			}

			return nil
		},
	}
}
