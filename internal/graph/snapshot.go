package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"
)

// Snapshot is the serializable form of a full graph: the flat node and edge
// lists in insertion order. Restoring a snapshot rebuilds all indices.
//
// Version is written on export but optional on import; externally produced
// snapshots carry only the node and edge lists.
type Snapshot struct {
	Version int     `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Nodes   []*Node `json:"nodes" yaml:"nodes" toml:"nodes"`
	Edges   []*Edge `json:"edges" yaml:"edges" toml:"edges"`
}

// SnapshotVersion is the current snapshot format version.
const SnapshotVersion = 1

// Snapshot captures the full graph state.
func (s *Store) Snapshot() *Snapshot {
	return &Snapshot{
		Version: SnapshotVersion,
		Nodes:   s.Nodes(),
		Edges:   s.Edges(),
	}
}

// Restore replaces the store's contents with the snapshot, rebuilding every
// index from scratch. Existing state is discarded first.
func (s *Store) Restore(snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("restore: nil snapshot")
	}
	// A zero version means the field was absent; such snapshots are current.
	if snap.Version != 0 && snap.Version != SnapshotVersion {
		return fmt.Errorf("restore: unsupported snapshot version %d", snap.Version)
	}
	s.reset()
	for _, node := range snap.Nodes {
		s.AddNode(node)
	}
	for _, edge := range snap.Edges {
		s.AddEdge(edge)
	}
	return nil
}

// Format identifies a snapshot serialization codec.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat maps a user-supplied format name (or file extension) to a
// Format. The empty string defaults to JSON.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported format %q", name)
	}
}

// Export serializes the current graph to w in the given format.
func (s *Store) Export(w io.Writer, format Format) error {
	snap := s.Snapshot()
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encoding json snapshot: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encoding yaml snapshot: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("flushing yaml snapshot: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(snap); err != nil {
			return fmt.Errorf("encoding toml snapshot: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}

// Import replaces the store's contents with a snapshot decoded from r in the
// given format. On decode failure the store is left untouched.
func (s *Store) Import(r io.Reader, format Format) error {
	var snap Snapshot
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&snap); err != nil {
			return fmt.Errorf("decoding json snapshot: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
			return fmt.Errorf("decoding yaml snapshot: %w", err)
		}
	case FormatTOML:
		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("reading toml snapshot: %w", err)
		}
		if err := toml.Unmarshal(data, &snap); err != nil {
			return fmt.Errorf("decoding toml snapshot: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return s.Restore(&snap)
}
