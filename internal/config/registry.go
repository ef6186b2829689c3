package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

const registryFileName = ".lattice.conf"

// ProjectEntry is one graph project in the global registry: a display name,
// the project root directory, and the snapshot file inside it.
type ProjectEntry struct {
	Name     string `yaml:"name"`
	Root     string `yaml:"root"`
	Snapshot string `yaml:"snapshot"`
}

type registryFile struct {
	Projects []ProjectEntry `yaml:"projects"`
}

// RegistryPath returns the path to the global project registry file
// (~/.lattice.conf), or "" when the home directory cannot be resolved.
func RegistryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, registryFileName)
}

// RegisterProject adds or updates a project entry. Roots are stored in
// absolute form so later lookups compare like with like; re-registering a
// root updates its entry in place. An empty name defaults to the root's
// base name.
func RegisterProject(name, root, snapshot string) error {
	root = normalize(root)
	if name == "" {
		name = filepath.Base(root)
	}

	entries := ListProjects()
	updated := false
	for i := range entries {
		if normalize(entries[i].Root) == root {
			entries[i] = ProjectEntry{Name: name, Root: root, Snapshot: snapshot}
			updated = true
			break
		}
	}
	if !updated {
		entries = append(entries, ProjectEntry{Name: name, Root: root, Snapshot: snapshot})
	}
	return writeRegistry(entries)
}

// LookupProject resolves the project whose root contains the given path.
// Registered roots may nest; the deepest containing root wins, so a graph
// registered inside a larger workspace shadows the workspace from within
// its own tree.
func LookupProject(path string) (*ProjectEntry, bool) {
	absPath := normalize(path)

	var best *ProjectEntry
	bestDepth := -1
	entries := ListProjects()
	for i := range entries {
		root := normalize(entries[i].Root)
		if !containsPath(root, absPath) {
			continue
		}
		if depth := strings.Count(root, string(filepath.Separator)); depth > bestDepth {
			best = &entries[i]
			bestDepth = depth
		}
	}
	return best, best != nil
}

// ListProjects returns every registered project. A missing or unreadable
// registry reads as empty.
func ListProjects() []ProjectEntry {
	regPath := RegistryPath()
	if regPath == "" {
		return nil
	}
	data, err := os.ReadFile(regPath)
	if err != nil {
		return nil
	}
	var reg registryFile
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil
	}
	return reg.Projects
}

// normalize makes a path absolute and clean; on failure the cleaned input
// stands in.
func normalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// containsPath reports whether path sits at or below root. Both arguments
// must already be normalized.
func containsPath(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// writeRegistry persists the entries sorted by root so the file diffs
// cleanly between registrations.
func writeRegistry(entries []ProjectEntry) error {
	regPath := RegistryPath()
	if regPath == "" {
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Root < entries[j].Root })

	data, err := yaml.Marshal(&registryFile{Projects: entries})
	if err != nil {
		return err
	}
	return os.WriteFile(regPath, data, 0644)
}
