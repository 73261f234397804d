package accessor

import (
	"fmt"

	"github.com/stevenlee02/textnet/pkg/graph"
)

// NodeStyle is the fully resolved visual state of one node. Radius and fill
// never change during a simulation's lifetime.
type NodeStyle struct {
	Radius float64
	Fill   string
	Title  string
}

// LinkStyle is the fully resolved visual state of one link.
type LinkStyle struct {
	Stroke string
	Width  float64
}

// Styles holds the per-node and per-link tables, indexed in parallel with
// the resolved document.
type Styles struct {
	Nodes []NodeStyle
	Links []LinkStyle
}

// ResolveStyles evaluates every configured attribute once per record. A
// failing accessor aborts the whole resolution, naming the offending record;
// partial visual state is never returned.
func ResolveStyles(cfg Config, res *graph.Resolved) (*Styles, error) {
	palette := cfg.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	st := &Styles{
		Nodes: make([]NodeStyle, len(res.Nodes)),
		Links: make([]LinkStyle, len(res.Links)),
	}

	for i, rec := range res.Nodes {
		radius := defaultRadius(rec)
		if cfg.NodeRadius.IsSet() {
			v, err := cfg.NodeRadius.Eval(rec)
			if err != nil {
				return nil, fmt.Errorf("node radius for %q: %w", rec.ID, err)
			}
			radius = v
		}

		title := rec.ID
		if cfg.NodeTitle.IsSet() {
			v, err := cfg.NodeTitle.Eval(rec)
			if err != nil {
				return nil, fmt.Errorf("node title for %q: %w", rec.ID, err)
			}
			title = v
		}

		fill := ""
		switch {
		case cfg.NodeFill.IsSet():
			v, err := cfg.NodeFill.Eval(rec)
			if err != nil {
				return nil, fmt.Errorf("node fill for %q: %w", rec.ID, err)
			}
			fill = v
		case cfg.NodeGroup.IsSet():
			g, err := cfg.NodeGroup.Eval(rec)
			if err != nil {
				return nil, fmt.Errorf("node group for %q: %w", rec.ID, err)
			}
			if g < 0 {
				g = -g
			}
			fill = palette[g%len(palette)]
		default:
			fill = palette[0]
		}

		st.Nodes[i] = NodeStyle{Radius: radius, Fill: fill, Title: title}
	}

	for i, l := range res.Links {
		stroke := "#999999"
		if cfg.LinkStroke.IsSet() {
			v, err := cfg.LinkStroke.Eval(l.LinkRecord)
			if err != nil {
				return nil, fmt.Errorf("link stroke for %q-%q: %w", l.Source, l.Target, err)
			}
			stroke = v
		}

		width := defaultStrokeWidth(l.LinkRecord)
		if cfg.LinkStrokeWidth.IsSet() {
			v, err := cfg.LinkStrokeWidth.Eval(l.LinkRecord)
			if err != nil {
				return nil, fmt.Errorf("link stroke width for %q-%q: %w", l.Source, l.Target, err)
			}
			width = v
		}

		st.Links[i] = LinkStyle{Stroke: stroke, Width: width}
	}

	return st, nil
}
