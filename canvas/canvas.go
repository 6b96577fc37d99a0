// Package canvas provides the circuit-design tools the agent exposes to the
// reasoning service, built on two narrow collaborator contracts: a command
// executor that mutates the design surface and a parts-catalog lookup. The
// collaborators themselves (rendering, persistence) live outside the engine.
package canvas

// Executor applies one mutation command to the design surface. It reports
// false when the surface rejected the command. The surface is a single
// shared, unsynchronized resource: the engine runs at most one command at a
// time and implementations need no locking of their own.
type Executor interface {
	Execute(command string, params map[string]any) bool
}

// Record is one parts-catalog entry.
type Record struct {
	UID         string   `json:"uid"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Catalog returns candidate records for a free-text query. Ranking and
// truncation are applied by the search tool, not the catalog.
type Catalog interface {
	Search(query string) []Record
}
