// Package graph implements the in-memory typed property graph that every
// other Lattice component reads through: heterogeneous nodes (code artifacts,
// documents, business items, conversation turns) connected by typed,
// optionally bidirectional, weighted edges.
package graph

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NodeType represents the kind of entity in the knowledge graph.
// The set is closed: the type tag determines which detail payload is valid.
type NodeType string

const (
	NodeCode         NodeType = "code"
	NodeBusiness     NodeType = "business"
	NodeDocument     NodeType = "document"
	NodeConversation NodeType = "conversation"
	NodeUnknown      NodeType = "unknown"
)

// EdgeType represents a relationship between two nodes. The set is open;
// these are the relation types Lattice producers emit.
type EdgeType string

const (
	EdgeCalls      EdgeType = "calls"
	EdgeReferences EdgeType = "references"
	EdgeFollows    EdgeType = "follows"
	EdgeRelatesTo  EdgeType = "relates_to"
	EdgeContains   EdgeType = "contains"
	EdgeDocuments  EdgeType = "documents"
	EdgeDependsOn  EdgeType = "depends_on"
)

// CodeKind is the sub-tag carried by code nodes (function, struct, file, ...).
type CodeKind string

const (
	CodeFunction CodeKind = "function"
	CodeMethod   CodeKind = "method"
	CodeStruct   CodeKind = "struct"
	CodeFile     CodeKind = "file"
	CodePackage  CodeKind = "package"
)

// Metadata holds the shared bookkeeping attached to every node and edge.
type Metadata struct {
	CreatedAt time.Time         `json:"created_at" yaml:"created_at" toml:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" yaml:"updated_at" toml:"updated_at"`
	Tags      []string          `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
	Props     map[string]string `json:"props,omitempty" yaml:"props,omitempty" toml:"props,omitempty"`
}

// CodeDetail is the payload carried by nodes of type "code".
type CodeDetail struct {
	FilePath string   `json:"file_path" yaml:"file_path" toml:"file_path"`
	Language string   `json:"language" yaml:"language" toml:"language"`
	Kind     CodeKind `json:"kind" yaml:"kind" toml:"kind"`
}

// BusinessDetail is the payload carried by nodes of type "business".
type BusinessDetail struct {
	Domain string `json:"domain" yaml:"domain" toml:"domain"`
	Owner  string `json:"owner,omitempty" yaml:"owner,omitempty" toml:"owner,omitempty"`
	Status string `json:"status,omitempty" yaml:"status,omitempty" toml:"status,omitempty"`
}

// DocumentDetail is the payload carried by nodes of type "document".
type DocumentDetail struct {
	Path    string `json:"path" yaml:"path" toml:"path"`
	Format  string `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`
	Section string `json:"section,omitempty" yaml:"section,omitempty" toml:"section,omitempty"`
}

// ConversationDetail is the payload carried by nodes of type "conversation".
type ConversationDetail struct {
	SessionID string `json:"session_id" yaml:"session_id" toml:"session_id"`
	Turn      int    `json:"turn" yaml:"turn" toml:"turn"`
	Role      string `json:"role,omitempty" yaml:"role,omitempty" toml:"role,omitempty"`
}

// Node represents an entity in the knowledge graph.
//
// Exactly one of the detail pointers should be set, the one matching Type.
// This is not enforced at insertion time (trust the caller; see
// Store.Validate); unknown-typed nodes carry no payload at all.
type Node struct {
	ID          string   `json:"id" yaml:"id" toml:"id"`
	Type        NodeType `json:"type" yaml:"type" toml:"type"`
	Label       string   `json:"label" yaml:"label" toml:"label"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Metadata    Metadata `json:"metadata" yaml:"metadata" toml:"metadata"`

	Code         *CodeDetail         `json:"code,omitempty" yaml:"code,omitempty" toml:"code,omitempty"`
	Business     *BusinessDetail     `json:"business,omitempty" yaml:"business,omitempty" toml:"business,omitempty"`
	Document     *DocumentDetail     `json:"document,omitempty" yaml:"document,omitempty" toml:"document,omitempty"`
	Conversation *ConversationDetail `json:"conversation,omitempty" yaml:"conversation,omitempty" toml:"conversation,omitempty"`
}

// Edge represents a directed relationship between two nodes. Nodes are
// referenced by id only, never by pointer, so the logical cycles of the
// graph never become ownership cycles.
//
// A bidirectional edge is a single edge with the flag set, not two physical
// edges; traversal code that wants undirected semantics must consult
// incoming edges with the flag set.
type Edge struct {
	ID            string   `json:"id" yaml:"id" toml:"id"`
	Type          EdgeType `json:"type" yaml:"type" toml:"type"`
	SourceID      string   `json:"source_id" yaml:"source_id" toml:"source_id"`
	TargetID      string   `json:"target_id" yaml:"target_id" toml:"target_id"`
	Bidirectional bool     `json:"bidirectional,omitempty" yaml:"bidirectional,omitempty" toml:"bidirectional,omitempty"`
	Weight        float64  `json:"weight" yaml:"weight" toml:"weight"`
	Metadata      Metadata `json:"metadata" yaml:"metadata" toml:"metadata"`
}

// Statistics holds aggregate statistics about the graph.
type Statistics struct {
	NodeCount          int              `json:"node_count"`
	EdgeCount          int              `json:"edge_count"`
	NodesByType        map[NodeType]int `json:"nodes_by_type"`
	EdgesByType        map[EdgeType]int `json:"edges_by_type"`
	BidirectionalEdges int              `json:"bidirectional_edges"`
	AvgOutDegree       float64          `json:"avg_out_degree"`
}

// NewNodeID generates a deterministic node ID from the type and label.
// The ID is a hex-encoded SHA-256 hash prefix to keep keys compact and
// collision-resistant; producers that index the same entity twice get the
// same ID back.
func NewNodeID(nodeType NodeType, label string) string {
	raw := fmt.Sprintf("%s:%s", nodeType, label)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", h[:12])
}

// NewEdgeID generates a random edge ID for producers that have no natural
// key for the relationship itself.
func NewEdgeID() string {
	return uuid.NewString()
}
