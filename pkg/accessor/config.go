package accessor

import (
	"math"

	"github.com/stevenlee02/textnet/pkg/graph"
)

// DefaultPalette colors nodes by group. Matches the categorical scheme the
// web front end used.
var DefaultPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Config is the full accessor surface. Every field is optional; unset
// attributes fall back to the defaults below.
type Config struct {
	// NodeID produces the canonical identifier for a node record.
	// Default: the record's ID field.
	NodeID Attribute[graph.NodeRecord, string]

	// NodeRadius in scene units. Default: 4 + 2*sqrt(value), so weight
	// (co-occurrence count) drives circle area roughly linearly.
	NodeRadius Attribute[graph.NodeRecord, float64]

	// NodeTitle is the hover/selection label. Default: the identifier.
	NodeTitle Attribute[graph.NodeRecord, string]

	// NodeGroup indexes into Palette when NodeFill is unset. Default: 0.
	NodeGroup Attribute[graph.NodeRecord, int]

	// NodeFill overrides palette-by-group coloring when set.
	NodeFill Attribute[graph.NodeRecord, string]

	// LinkStroke is the link color. Default: "#999999".
	LinkStroke Attribute[graph.LinkRecord, string]

	// LinkStrokeWidth in scene units. Default: sqrt(value) clamped to
	// [1, 8].
	LinkStrokeWidth Attribute[graph.LinkRecord, float64]

	// Palette used for group coloring. Default: DefaultPalette.
	Palette []string
}

// IdentifierFunc adapts the NodeID attribute for graph.Resolve.
func (c Config) IdentifierFunc() graph.IdentifierFunc {
	if !c.NodeID.IsSet() {
		return nil
	}
	return func(n graph.NodeRecord) (string, error) {
		return c.NodeID.Eval(n)
	}
}

func defaultRadius(n graph.NodeRecord) float64 {
	return 4 + 2*math.Sqrt(math.Max(n.Value, 0))
}

func defaultStrokeWidth(l graph.LinkRecord) float64 {
	w := math.Sqrt(math.Max(l.Value, 0))
	if w < 1 {
		return 1
	}
	if w > 8 {
		return 8
	}
	return w
}
