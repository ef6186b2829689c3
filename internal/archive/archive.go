// Package archive stores named graph snapshots in an embedded BadgerDB,
// so a project can keep checkpoints of its knowledge graph and restore or
// compare them later.
package archive

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/latticekg/lattice/internal/graph"
)

// Key prefixes for the BadgerDB key scheme.
const (
	prefixSnap = "snap:"
	prefixMeta = "meta:"
)

// Entry describes one archived snapshot.
type Entry struct {
	Name      string    `json:"name"`
	SavedAt   time.Time `json:"saved_at"`
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
}

// Archive is a named-snapshot store backed by BadgerDB.
type Archive struct {
	db *badger.DB
}

// Open opens (or creates) an archive database at path.
func Open(path string) (*Archive, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // suppress badger logs
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open archive db: %w", err)
	}
	return &Archive{db: db}, nil
}

func snapKey(name string) []byte { return []byte(prefixSnap + name) }
func metaKey(name string) []byte { return []byte(prefixMeta + name) }

// Save stores the snapshot under the given name, overwriting any previous
// snapshot with that name. Names must not be empty.
func (a *Archive) Save(name string, snap *graph.Snapshot) error {
	if name == "" {
		return fmt.Errorf("save snapshot: empty name")
	}
	if snap == nil {
		return fmt.Errorf("save snapshot %s: nil snapshot", name)
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", name, err)
	}
	meta, err := json.Marshal(Entry{
		Name:      name,
		SavedAt:   time.Now().UTC(),
		NodeCount: len(snap.Nodes),
		EdgeCount: len(snap.Edges),
	})
	if err != nil {
		return fmt.Errorf("marshal snapshot meta %s: %w", name, err)
	}
	return a.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(snapKey(name), data); err != nil {
			return err
		}
		return txn.Set(metaKey(name), meta)
	})
}

// Load retrieves the named snapshot. A missing name is an error.
func (a *Archive) Load(name string) (*graph.Snapshot, error) {
	var snap graph.Snapshot
	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapKey(name))
		if err != nil {
			return fmt.Errorf("get snapshot %s: %w", name, err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// Stat returns the metadata entry for a named snapshot.
func (a *Archive) Stat(name string) (Entry, error) {
	var entry Entry
	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(metaKey(name))
		if err != nil {
			return fmt.Errorf("get snapshot meta %s: %w", name, err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns the metadata of every archived snapshot, sorted by name.
func (a *Archive) List() ([]Entry, error) {
	var entries []Entry
	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		prefix := []byte(prefixMeta)
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.Valid(); it.Next() {
			var entry Entry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				continue
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Delete removes the named snapshot and its metadata. Deleting a missing
// name is a no-op.
func (a *Archive) Delete(name string) error {
	return a.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(snapKey(name)); err != nil {
			return err
		}
		return txn.Delete(metaKey(name))
	})
}

// Names lists just the snapshot names, sorted.
func (a *Archive) Names() ([]string, error) {
	var names []string
	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		prefix := []byte(prefixSnap)
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			names = append(names, strings.TrimPrefix(key, prefixSnap))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}
