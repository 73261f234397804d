package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type rawLink struct {
	Source string  `json:"source" validate:"required"`
	Target string  `json:"target" validate:"required"`
	Value  float64 `json:"value"`
}

type rawDocument struct {
	Nodes    []map[string]any    `json:"nodes"`
	Links    []rawLink           `json:"links" validate:"dive"`
	Contexts map[string][]string `json:"contexts"`
}

// ParseDocument decodes an input document from JSON. Nodes without an "id"
// field get a positional default ("node-<index>"); all fields other than id
// and value are carried through as Extra. Context snippets are truncated to
// MaxSnippetLen at this point so the engine never depends on the producer
// having done it.
func ParseDocument(r io.Reader) (*Document, error) {
	var raw rawDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if err := validate.Struct(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	doc := &Document{
		Nodes:    make([]NodeRecord, 0, len(raw.Nodes)),
		Links:    make([]LinkRecord, 0, len(raw.Links)),
		Contexts: NewContextIndex(raw.Contexts),
	}

	for i, fields := range raw.Nodes {
		rec := NodeRecord{ID: fmt.Sprintf("node-%d", i)}
		extra := make(map[string]any)
		for k, v := range fields {
			switch k {
			case "id":
				if s, ok := v.(string); ok && s != "" {
					rec.ID = s
				}
			case "value":
				if f, ok := v.(float64); ok {
					rec.Value = f
				}
			default:
				extra[k] = v
			}
		}
		if len(extra) > 0 {
			rec.Extra = extra
		}
		doc.Nodes = append(doc.Nodes, rec)
	}

	for _, l := range raw.Links {
		doc.Links = append(doc.Links, LinkRecord{Source: l.Source, Target: l.Target, Value: l.Value})
	}

	return doc, nil
}

// ParseDocumentFile reads and parses a document from disk.
func ParseDocumentFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return ParseDocument(f)
}

// IdentifierFunc derives the canonical identifier for a node record. A nil
// IdentifierFunc means "use the record's ID field".
type IdentifierFunc func(NodeRecord) (string, error)

// Resolve canonicalizes a document: identifiers are produced by idOf,
// duplicate identifiers collapse with the later record winning, and every
// link endpoint is bound to a node index. A link whose endpoint matches no
// node is fatal: the whole document is rejected rather than the link
// silently dropped.
func Resolve(doc *Document, idOf IdentifierFunc) (*Resolved, error) {
	if idOf == nil {
		idOf = func(n NodeRecord) (string, error) { return n.ID, nil }
	}

	res := &Resolved{
		Contexts: doc.Contexts,
		index:    make(map[string]int, len(doc.Nodes)),
	}

	for i, rec := range doc.Nodes {
		id, err := idOf(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: node %d (%q): %v", ErrAccessorFailed, i, rec.ID, err)
		}
		if id == "" {
			return nil, fmt.Errorf("%w: node %d", ErrEmptyIdentifier, i)
		}
		rec.ID = id
		if at, dup := res.index[id]; dup {
			// Alias: keep the slot, replace the record.
			res.Nodes[at] = rec
			continue
		}
		res.index[id] = len(res.Nodes)
		res.Nodes = append(res.Nodes, rec)
	}

	res.degree = make([]int, len(res.Nodes))
	for _, l := range doc.Links {
		si, ok := res.index[l.Source]
		if !ok {
			return nil, fmt.Errorf("%w: %q (source of %q -> %q)", ErrUnknownEndpoint, l.Source, l.Source, l.Target)
		}
		ti, ok := res.index[l.Target]
		if !ok {
			return nil, fmt.Errorf("%w: %q (target of %q -> %q)", ErrUnknownEndpoint, l.Target, l.Source, l.Target)
		}
		res.Links = append(res.Links, ResolvedLink{LinkRecord: l, SourceIndex: si, TargetIndex: ti})
		res.degree[si]++
		res.degree[ti]++
	}

	return res, nil
}
