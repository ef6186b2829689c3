// Package connector infers cross-domain relationships after the graph is
// populated. It runs as a post-load phase, analyzing the whole graph to
// create edges between documents, conversations, and the code or business
// nodes they mention.
package connector

import (
	"fmt"
	"strings"

	"github.com/latticekg/lattice/internal/graph"
)

// Connector links nodes across type boundaries.
type Connector struct {
	store *graph.Store
	log   func(format string, args ...any)
	// minSharedTags is how many tags two nodes must share before a
	// relates_to edge is inferred.
	minSharedTags int
	verbose       bool
}

// New creates a Connector. The log function is optional.
func New(store *graph.Store, logFn func(format string, args ...any), minSharedTags int, verbose bool) *Connector {
	if logFn == nil {
		logFn = func(string, ...any) {}
	}
	if minSharedTags < 1 {
		minSharedTags = 1
	}
	return &Connector{
		store:         store,
		log:           logFn,
		minSharedTags: minSharedTags,
		verbose:       verbose,
	}
}

// RunAll executes all connection phases in order.
func (c *Connector) RunAll() error {
	if c.verbose {
		c.log("Running cross-domain connector...")
	}

	// 1. Documents that mention code or business nodes by label.
	docCount, err := c.connectDocuments()
	if err != nil {
		return fmt.Errorf("connect documents: %w", err)
	}
	if c.verbose {
		c.log("  Linked %d documents to the nodes they mention", docCount)
	}

	// 2. Conversations that reference code or documents.
	convCount, err := c.connectConversations()
	if err != nil {
		return fmt.Errorf("connect conversations: %w", err)
	}
	if c.verbose {
		c.log("  Linked %d conversation references", convCount)
	}

	// 3. Shared-tag relationships across all node types.
	tagCount, err := c.connectSharedTags()
	if err != nil {
		return fmt.Errorf("connect shared tags: %w", err)
	}
	if c.verbose {
		c.log("  Inferred %d shared-tag relationships", tagCount)
	}

	if c.verbose {
		c.log("Cross-domain connector complete.")
	}
	return nil
}

// connectDocuments creates a documents edge from each document node to
// every code or business node whose label appears in the document's label
// or description. Existing links are left alone, so re-running is safe.
func (c *Connector) connectDocuments() (int, error) {
	count := 0
	for _, doc := range c.store.NodesByType(graph.NodeDocument) {
		haystack := strings.ToLower(doc.Label + " " + doc.Description)
		for _, target := range c.mentionTargets() {
			if target.Label == "" || !strings.Contains(haystack, strings.ToLower(target.Label)) {
				continue
			}
			if c.linked(doc.ID, target.ID, graph.EdgeDocuments) {
				continue
			}
			c.store.AddEdge(&graph.Edge{
				ID:       graph.NewEdgeID(),
				Type:     graph.EdgeDocuments,
				SourceID: doc.ID,
				TargetID: target.ID,
			})
			count++
		}
	}
	return count, nil
}

// mentionTargets returns the nodes a document or conversation can mention:
// code and business nodes.
func (c *Connector) mentionTargets() []*graph.Node {
	targets := c.store.NodesByType(graph.NodeCode)
	return append(targets, c.store.NodesByType(graph.NodeBusiness)...)
}

// connectConversations creates a references edge from each conversation
// node to every code, business, or document node whose label appears in the
// conversation's label or description.
func (c *Connector) connectConversations() (int, error) {
	count := 0
	for _, conv := range c.store.NodesByType(graph.NodeConversation) {
		haystack := strings.ToLower(conv.Label + " " + conv.Description)
		targets := append(c.mentionTargets(), c.store.NodesByType(graph.NodeDocument)...)
		for _, target := range targets {
			if target.Label == "" || !strings.Contains(haystack, strings.ToLower(target.Label)) {
				continue
			}
			if c.linked(conv.ID, target.ID, graph.EdgeReferences) {
				continue
			}
			c.store.AddEdge(&graph.Edge{
				ID:       graph.NewEdgeID(),
				Type:     graph.EdgeReferences,
				SourceID: conv.ID,
				TargetID: target.ID,
			})
			count++
		}
	}
	return count, nil
}

// connectSharedTags infers a bidirectional relates_to edge between every
// node pair sharing at least minSharedTags tags. Pairs are visited in
// insertion order and each unordered pair once.
func (c *Connector) connectSharedTags() (int, error) {
	nodes := c.store.Nodes()
	count := 0
	for i, a := range nodes {
		if len(a.Metadata.Tags) == 0 {
			continue
		}
		tags := make(map[string]struct{}, len(a.Metadata.Tags))
		for _, t := range a.Metadata.Tags {
			tags[t] = struct{}{}
		}
		for _, b := range nodes[i+1:] {
			shared := 0
			for _, t := range b.Metadata.Tags {
				if _, ok := tags[t]; ok {
					shared++
				}
			}
			if shared < c.minSharedTags {
				continue
			}
			if c.linked(a.ID, b.ID, graph.EdgeRelatesTo) {
				continue
			}
			c.store.AddEdge(&graph.Edge{
				ID:            graph.NewEdgeID(),
				Type:          graph.EdgeRelatesTo,
				SourceID:      a.ID,
				TargetID:      b.ID,
				Bidirectional: true,
				Metadata:      graph.Metadata{Props: map[string]string{"shared_tags": fmt.Sprint(shared)}},
			})
			count++
		}
	}
	return count, nil
}

// linked reports whether an edge of the given type already connects the two
// nodes in either direction.
func (c *Connector) linked(a, b string, t graph.EdgeType) bool {
	for _, e := range c.store.FindEdgesBetween(a, b) {
		if e.Type == t {
			return true
		}
	}
	return false
}
