package interaction

import "github.com/stevenlee02/textnet/pkg/graph"

// MaxSnippets caps how many context snippets a link selection forwards.
const MaxSnippets = 3

// NodeSelection is what a node click forwards to the detail sink.
type NodeSelection struct {
	ID    string
	Value float64
	Extra map[string]any
}

// LinkSelection is what a link click forwards to the context sink. Found is
// false when the context index has nothing for the pair; that is a normal,
// user-visible "no context" outcome.
type LinkSelection struct {
	SourceID string
	TargetID string
	Snippets []string
	Found    bool
}

// NodeSink receives node selections. Supplied by the hosting UI.
type NodeSink func(NodeSelection)

// LinkSink receives link selections.
type LinkSink func(LinkSelection)

// Selector resolves primitive indexes back to their source records and
// dispatches to the external sinks.
type Selector struct {
	res      *graph.Resolved
	nodeSink NodeSink
	linkSink LinkSink
}

// NewSelector builds a selector over a resolved document. Nil sinks are
// allowed; selections still resolve and return.
func NewSelector(res *graph.Resolved, nodeSink NodeSink, linkSink LinkSink) *Selector {
	return &Selector{res: res, nodeSink: nodeSink, linkSink: linkSink}
}

// SelectNode resolves a node index to its record and forwards it. Returns
// false for an out-of-range index.
func (s *Selector) SelectNode(i int) (NodeSelection, bool) {
	if i < 0 || i >= len(s.res.Nodes) {
		return NodeSelection{}, false
	}
	rec := s.res.Nodes[i]
	sel := NodeSelection{ID: rec.ID, Value: rec.Value, Extra: rec.Extra}
	if s.nodeSink != nil {
		s.nodeSink(sel)
	}
	return sel, true
}

// SelectLink resolves a link index to its endpoint identifiers, looks the
// canonical pair up in the context index, and forwards up to MaxSnippets
// snippets.
func (s *Selector) SelectLink(i int) (LinkSelection, bool) {
	if i < 0 || i >= len(s.res.Links) {
		return LinkSelection{}, false
	}
	l := s.res.Links[i]
	srcID := s.res.Nodes[l.SourceIndex].ID
	tgtID := s.res.Nodes[l.TargetIndex].ID

	snippets, found := s.res.Contexts.Lookup(srcID, tgtID, MaxSnippets)
	sel := LinkSelection{SourceID: srcID, TargetID: tgtID, Snippets: snippets, Found: found}
	if s.linkSink != nil {
		s.linkSink(sel)
	}
	return sel, true
}
