package graph

import "fmt"

// Severity classifies a lint finding.
type Severity int

const (
	// SeverityWarning marks findings the engine recovers from (aliases,
	// unmatchable context keys).
	SeverityWarning Severity = iota
	// SeverityError marks findings that make construction fail.
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Finding is one lint result.
type Finding struct {
	Severity Severity
	Message  string
}

// Lint inspects a document for the conditions the engine either rejects
// (dangling link endpoints) or silently tolerates (empty documents,
// duplicate identifiers, context keys that cannot match any node pair). It
// never mutates the document.
func Lint(doc *Document) []Finding {
	var findings []Finding

	if len(doc.Nodes) == 0 && len(doc.Links) == 0 {
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			Message:  "document has no nodes and no links; the scene will be empty",
		})
	}

	seen := make(map[string]int, len(doc.Nodes))
	ids := make(map[string]bool, len(doc.Nodes))
	for i, n := range doc.Nodes {
		if first, dup := seen[n.ID]; dup {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("duplicate identifier %q (nodes %d and %d): later record aliases the earlier one", n.ID, first, i),
			})
		} else {
			seen[n.ID] = i
		}
		ids[n.ID] = true
	}

	for i, l := range doc.Links {
		if !ids[l.Source] {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Message:  fmt.Sprintf("link %d: source %q matches no node", i, l.Source),
			})
		}
		if !ids[l.Target] {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Message:  fmt.Sprintf("link %d: target %q matches no node", i, l.Target),
			})
		}
	}

	// A context key that no link can produce is dead weight: lookups built
	// from the node set will never hit it.
	reachable := make(map[string]bool, len(doc.Links))
	for _, l := range doc.Links {
		reachable[PairKey(l.Source, l.Target)] = true
	}
	for key := range doc.Contexts {
		if !reachable[key] {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("context key %q matches no link; selections will never surface it", key),
			})
		}
	}

	return findings
}
