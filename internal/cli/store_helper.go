package cli

import (
	"fmt"
	"os"

	"github.com/latticekg/lattice/internal/config"
	"github.com/latticekg/lattice/internal/graph"
)

// loadStore reads the configured snapshot into a fresh in-memory store.
// A missing snapshot file yields an empty graph, not an error, so commands
// work before the first export.
func loadStore(cfg *config.Config) (*graph.Store, error) {
	store := graph.NewStore()

	f, err := os.Open(cfg.Snapshot.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("open snapshot %s: %w", cfg.Snapshot.Path, err)
	}
	defer f.Close()

	format, err := graph.ParseFormat(cfg.Snapshot.Format)
	if err != nil {
		return nil, fmt.Errorf("snapshot format: %w", err)
	}

	if err := store.Import(f, format); err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", cfg.Snapshot.Path, err)
	}
	return store, nil
}

// saveStore writes the store back to the configured snapshot path.
func saveStore(cfg *config.Config, store *graph.Store) error {
	format, err := graph.ParseFormat(cfg.Snapshot.Format)
	if err != nil {
		return fmt.Errorf("snapshot format: %w", err)
	}

	f, err := os.Create(cfg.Snapshot.Path)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", cfg.Snapshot.Path, err)
	}

	if err := store.Export(f, format); err != nil {
		f.Close()
		return fmt.Errorf("write snapshot %s: %w", cfg.Snapshot.Path, err)
	}
	return f.Close()
}

// loadConfigAndStore is the common preamble for read-only graph commands.
func loadConfigAndStore() (*config.Config, *graph.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	store, err := loadStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}
