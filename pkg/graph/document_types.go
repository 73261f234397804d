package graph

// NodeRecord is one entity from the input document. Identity is immutable
// after construction; Extra carries arbitrary display fields through
// untouched.
type NodeRecord struct {
	ID    string
	Value float64
	Extra map[string]any
}

// LinkRecord is an undirected relation between two nodes. Direction, if the
// source document implies one, is presentational only.
type LinkRecord struct {
	Source string
	Target string
	Value  float64
}

// Document is the immutable input consumed once at construction. It matches
// the JSON the analysis backend produces: nodes, links, and a context index
// keyed by canonical pair key.
type Document struct {
	Nodes    []NodeRecord
	Links    []LinkRecord
	Contexts ContextIndex
}

// Resolved is the canonical form of a Document after identifier resolution:
// duplicate identifiers collapsed (last record wins), every link endpoint
// bound to a node index, and per-node degrees counted. All downstream
// construction (simulation, scene, selection) works from this form, so a
// dangling link can never survive past this point.
type Resolved struct {
	Nodes    []NodeRecord
	Links    []ResolvedLink
	Contexts ContextIndex

	index  map[string]int // identifier -> position in Nodes
	degree []int
}

// ResolvedLink is a LinkRecord with both endpoints bound to node indexes.
type ResolvedLink struct {
	LinkRecord
	SourceIndex int
	TargetIndex int
}

// NodeIndex returns the position of the node with the given identifier, or
// -1 if absent.
func (r *Resolved) NodeIndex(id string) int {
	if i, ok := r.index[id]; ok {
		return i
	}
	return -1
}

// Degree returns the number of links touching the node at the given index.
func (r *Resolved) Degree(i int) int {
	if i < 0 || i >= len(r.degree) {
		return 0
	}
	return r.degree[i]
}
