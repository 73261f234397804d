package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevenlee02/textnet/pkg/force"
	"github.com/stevenlee02/textnet/pkg/graph"
	"github.com/stevenlee02/textnet/pkg/interaction"
	"github.com/stevenlee02/textnet/pkg/metrics"
)

const scenarioJSON = `{
	"nodes": [{"id": "A", "value": 5}, {"id": "B", "value": 2}],
	"links": [{"source": "A", "target": "B", "value": 3}],
	"contexts": {"A|B": ["they met at dawn..."]}
}`

func scenarioDoc(t *testing.T, src string) *graph.Document {
	t.Helper()
	doc, err := graph.ParseDocument(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

// Scenario A: construction succeeds and selecting the link yields the
// context snippets.
func TestEndToEndLinkSelection(t *testing.T) {
	doc := scenarioDoc(t, scenarioJSON)

	var got interaction.LinkSelection
	v, err := New(doc, Options{
		LinkSink: func(l interaction.LinkSelection) { got = l },
	})
	require.NoError(t, err)
	defer v.Close()

	sel, ok := v.ClickLink(0)
	require.True(t, ok)
	assert.Equal(t, "A", sel.SourceID)
	assert.Equal(t, "B", sel.TargetID)
	assert.True(t, sel.Found)
	assert.Equal(t, []string{"they met at dawn..."}, sel.Snippets)
	assert.Equal(t, sel, got, "sink must receive the same selection")
}

// Scenario B: a link referencing an unknown node fails construction with no
// partial state exposed.
func TestEndToEndUnknownEndpointFailsConstruction(t *testing.T) {
	doc := scenarioDoc(t, `{
		"nodes": [{"id": "A", "value": 5}],
		"links": [{"source": "A", "target": "Z", "value": 1}]
	}`)

	v, err := New(doc, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrUnknownEndpoint)
	assert.Nil(t, v)
}

// Scenario C: selecting a link with no matching context key reports an
// explicit miss.
func TestEndToEndMissingContext(t *testing.T) {
	doc := scenarioDoc(t, `{
		"nodes": [{"id": "A", "value": 1}, {"id": "B", "value": 1}],
		"links": [{"source": "A", "target": "B", "value": 1}]
	}`)

	v, err := New(doc, Options{})
	require.NoError(t, err)
	defer v.Close()

	sel, ok := v.ClickLink(0)
	require.True(t, ok)
	assert.False(t, sel.Found)
	assert.Empty(t, sel.Snippets)
}

// Scenario D: duplicate identifiers alias; the later record wins and links
// bind to the survivor.
func TestEndToEndDuplicateIdentifierAliases(t *testing.T) {
	doc := scenarioDoc(t, `{
		"nodes": [{"id": "A", "value": 1}, {"id": "A", "value": 9}, {"id": "B", "value": 1}],
		"links": [{"source": "A", "target": "B", "value": 1}]
	}`)

	v, err := New(doc, Options{})
	require.NoError(t, err)
	defer v.Close()

	assert.Equal(t, 2, v.NodeCount())
	sel, ok := v.ClickNode(0)
	require.True(t, ok)
	assert.Equal(t, "A", sel.ID)
	assert.Equal(t, 9.0, sel.Value, "later duplicate must win")
}

func TestNodeSelectionForwardsExtraFields(t *testing.T) {
	doc := scenarioDoc(t, `{
		"nodes": [{"id": "Darcy", "value": 40, "aliases": ["Mr. Darcy"]}],
		"links": []
	}`)

	var got interaction.NodeSelection
	v, err := New(doc, Options{
		NodeSink: func(n interaction.NodeSelection) { got = n },
	})
	require.NoError(t, err)
	defer v.Close()

	_, ok := v.ClickNode(0)
	require.True(t, ok)
	assert.Equal(t, "Darcy", got.ID)
	assert.Contains(t, got.Extra, "aliases")
}

func TestTickProjectsScene(t *testing.T) {
	v, err := New(scenarioDoc(t, scenarioJSON), Options{})
	require.NoError(t, err)
	defer v.Close()

	require.True(t, v.Tick())

	circles, lines := v.Frame()
	require.Len(t, circles, 2)
	require.Len(t, lines, 1)

	// Line endpoints track the projected node positions.
	assert.Equal(t, circles[0].X, lines[0].X1)
	assert.Equal(t, circles[0].Y, lines[0].Y1)
	assert.Equal(t, circles[1].X, lines[0].X2)
	assert.Equal(t, circles[1].Y, lines[0].Y2)
}

func TestDragPinsAndReheats(t *testing.T) {
	v, err := New(scenarioDoc(t, scenarioJSON), Options{})
	require.NoError(t, err)
	defer v.Close()

	// Run to convergence.
	for v.Tick() {
	}
	require.Equal(t, force.Stopped, v.State())

	require.True(t, v.DragStart(0))
	assert.Equal(t, force.Warming, v.State(), "drag-start must re-heat a stopped scheduler")
	assert.True(t, v.Tick(), "re-heated view must tick again")

	v.DragMove(77, -33)
	for i := 0; i < 10; i++ {
		v.Tick()
		circles, _ := v.Frame()
		assert.Equal(t, 77.0, circles[0].X)
		assert.Equal(t, -33.0, circles[0].Y)
	}

	v.DragEnd()
	_, active := v.Dragging()
	assert.False(t, active)

	// With the target released, the scheduler cools back to a stop.
	steps := 0
	for v.Tick() {
		steps++
		require.Less(t, steps, 3000)
	}
	assert.Equal(t, force.Stopped, v.State())
}

func TestCloseInvalidatesView(t *testing.T) {
	v, err := New(scenarioDoc(t, scenarioJSON), Options{})
	require.NoError(t, err)

	v.Close()
	assert.True(t, v.Closed())
	assert.False(t, v.Tick(), "closed view must never tick")
	assert.False(t, v.DragStart(0))
	_, ok := v.ClickNode(0)
	assert.False(t, ok)

	v.Close() // idempotent
}

func TestMetricsRecorded(t *testing.T) {
	reg := metrics.NewRegistry()
	v, err := New(scenarioDoc(t, scenarioJSON), Options{Metrics: reg})
	require.NoError(t, err)
	defer v.Close()

	v.Tick()
	v.DragStart(0)
	v.DragMove(1, 1)
	v.DragEnd()
	v.ClickLink(0)
}

func TestDegenerateEmptyDocument(t *testing.T) {
	// An input document with zero nodes and zero links is legal all the
	// way through, from parsing to a converged empty scene.
	doc := scenarioDoc(t, `{"nodes":[],"links":[]}`)
	v, err := New(doc, Options{})
	require.NoError(t, err)
	defer v.Close()

	steps := 0
	for v.Tick() {
		steps++
		require.Less(t, steps, 3000)
	}
	circles, lines := v.Frame()
	assert.Empty(t, circles)
	assert.Empty(t, lines)
	assert.Equal(t, force.Stopped, v.State())
}
