package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/stevenlee02/textnet/pkg/interaction"
	"github.com/stevenlee02/textnet/pkg/logging"
	"github.com/stevenlee02/textnet/pkg/metrics"
	"github.com/stevenlee02/textnet/pkg/view"
)

const (
	frameInterval = time.Second / 30
	panelWidth    = 36
	canvasPadding = 2
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1).
			Width(panelWidth)

	panelHeadStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	snippetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	missStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginLeft(1)

	linkGlyphStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))
)

type keyMap struct {
	Reheat key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var tuiKeys = keyMap{
	Reheat: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "re-heat layout"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reheat, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Reheat, k.Help, k.Quit},
	}
}

// selectionPanel receives selections from the view's sinks. The sinks run
// synchronously inside click handling, so no locking is needed.
type selectionPanel struct {
	node    *interaction.NodeSelection
	link    *interaction.LinkSelection
	hasNode bool
	hasLink bool
}

func (p *selectionPanel) setNode(n interaction.NodeSelection) {
	p.node, p.hasNode, p.hasLink = &n, true, false
}

func (p *selectionPanel) setLink(l interaction.LinkSelection) {
	p.link, p.hasLink, p.hasNode = &l, true, false
}

type frameMsg time.Time

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

type tuiModel struct {
	v     *view.View
	panel *selectionPanel
	help  help.Model
	keys  keyMap

	width  int
	height int

	// Drag bookkeeping. pressNode is set on left press over a node and a
	// drag begins on the first motion after that.
	pressNode   int
	pressWasHit bool
	dragging    bool
}

func newTUIModel(v *view.View, panel *selectionPanel) tuiModel {
	return tuiModel{
		v:         v,
		panel:     panel,
		help:      help.New(),
		keys:      tuiKeys,
		pressNode: -1,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return frameCmd()
}

func (m tuiModel) canvasSize() (int, int) {
	w := m.width - panelWidth - 2
	h := m.height - 4
	if w < 10 {
		w = 10
	}
	if h < 5 {
		h = 5
	}
	return w, h
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case frameMsg:
		m.v.Tick()
		return m, frameCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.v.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reheat):
			m.v.Reheat()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}

	return m, nil
}

func (m tuiModel) handleMouse(msg tea.MouseMsg) tuiModel {
	// The canvas draw and the pointer math derive the same transform from
	// the current bounds, so cell coordinates invert cleanly.
	cw, ch := m.canvasSize()
	transform := m.v.Bounds().Fit(float64(cw), float64(ch), canvasPadding)
	if transform.Scale == 0 {
		return m
	}
	// The canvas starts one row below the title.
	wx, wy := transform.Invert(float64(msg.X), float64(msg.Y-1))
	slop := 1.0 / transform.Scale

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		m.pressWasHit = true
		m.pressNode = m.v.NodeAt(wx, wy, slop)
		m.dragging = false

	case tea.MouseActionMotion:
		if !m.pressWasHit || m.pressNode < 0 {
			return m
		}
		if !m.dragging {
			m.dragging = m.v.DragStart(m.pressNode)
		}
		if m.dragging {
			m.v.DragMove(wx, wy)
		}

	case tea.MouseActionRelease:
		switch {
		case m.dragging:
			m.v.DragEnd()
		case m.pressWasHit && m.pressNode >= 0:
			m.v.ClickNode(m.pressNode)
		case m.pressWasHit:
			if li := m.v.LinkAt(wx, wy, slop); li >= 0 {
				m.v.ClickLink(li)
			}
		}
		m.pressNode = -1
		m.pressWasHit = false
		m.dragging = false
	}

	return m
}

func (m tuiModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	cw, ch := m.canvasSize()
	canvas := renderCanvas(m.v, cw, ch)

	panel := panelStyle.Render(m.renderPanel(ch))
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, panel)

	var s strings.Builder
	s.WriteString(titleStyle.Render("textnet"))
	s.WriteString("\n")
	s.WriteString(body)
	s.WriteString("\n")
	s.WriteString(statusStyle.Render(m.statusLine()))
	s.WriteString("\n")
	s.WriteString(statusStyle.Render(m.help.View(m.keys)))
	return s.String()
}

func (m tuiModel) statusLine() string {
	state := m.v.State().String()
	if node, active := m.v.Dragging(); active {
		if rec, ok := m.v.Node(node); ok {
			state = "dragging " + rec.ID
		}
	}
	return fmt.Sprintf("%d nodes · %d links · alpha %.3f · %s · tick %d",
		m.v.NodeCount(), m.v.LinkCount(), m.v.Alpha(), state, m.v.Ticks())
}

func (m tuiModel) renderPanel(height int) string {
	var s strings.Builder
	s.WriteString(panelHeadStyle.Render("Selection"))
	s.WriteString("\n\n")

	p := m.panel
	switch {
	case p.hasNode:
		s.WriteString(fmt.Sprintf("● %s\n", p.node.ID))
		s.WriteString(fmt.Sprintf("value: %g\n", p.node.Value))
		for k, v := range p.node.Extra {
			s.WriteString(fmt.Sprintf("%s: %v\n", k, v))
		}

	case p.hasLink:
		s.WriteString(fmt.Sprintf("%s ↔ %s\n\n", p.link.SourceID, p.link.TargetID))
		if !p.link.Found {
			s.WriteString(missStyle.Render("no context recorded"))
			s.WriteString("\n")
			break
		}
		for i, snip := range p.link.Snippets {
			if i > 0 {
				s.WriteString("\n")
			}
			s.WriteString(snippetStyle.Render(wrapText(snip, panelWidth-4)))
			s.WriteString("\n")
		}

	default:
		s.WriteString(missStyle.Render("click a node or a link"))
		s.WriteString("\n")
	}

	// Pad so the border matches the canvas height.
	for lines := strings.Count(s.String(), "\n"); lines < height-2; lines++ {
		s.WriteString("\n")
	}
	return s.String()
}

// renderCanvas rasterizes the current frame into a cell grid: links first
// with Bresenham strokes, nodes on top.
func renderCanvas(v *view.View, width, height int) string {
	circles, lines := v.Frame()
	transform := v.Bounds().Fit(float64(width), float64(height), canvasPadding)

	glyphs := make([]rune, width*height)
	colors := make([]string, width*height)
	for i := range glyphs {
		glyphs[i] = ' '
	}
	put := func(x, y int, ch rune, col string) {
		if x < 0 || x >= width || y < 0 || y >= height {
			return
		}
		glyphs[y*width+x] = ch
		colors[y*width+x] = col
	}

	for _, l := range lines {
		x1, y1 := transform.Apply(l.X1, l.Y1)
		x2, y2 := transform.Apply(l.X2, l.Y2)
		plotLine(int(x1), int(y1), int(x2), int(y2), func(x, y int) {
			put(x, y, '·', "")
		})
	}
	for _, c := range circles {
		x, y := transform.Apply(c.X, c.Y)
		put(int(x), int(y), '●', c.Fill)
	}

	var s strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ch := glyphs[y*width+x]
			col := colors[y*width+x]
			switch {
			case ch == ' ':
				s.WriteRune(' ')
			case col != "":
				s.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(col)).Render(string(ch)))
			default:
				s.WriteString(linkGlyphStyle.Render(string(ch)))
			}
		}
		if y < height-1 {
			s.WriteString("\n")
		}
	}
	return s.String()
}

// plotLine walks the Bresenham raster of the segment.
func plotLine(x1, y1, x2, y2 int, put func(x, y int)) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	for {
		put(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func wrapText(s string, width int) string {
	if width < 8 {
		width = 8
	}
	words := strings.Fields(s)
	var out strings.Builder
	line := 0
	for i, w := range words {
		wlen := utf8.RuneCountInString(w)
		if line+wlen+1 > width && line > 0 {
			out.WriteString("\n")
			line = 0
		} else if i > 0 {
			out.WriteString(" ")
			line++
		}
		out.WriteString(w)
		line += wlen
	}
	return out.String()
}

func viewCmd() *cobra.Command {
	var metricsAddr string
	var logFile string

	cmd := &cobra.Command{
		Use:   "view <document.json>",
		Short: "Open an interactive layout of a document",
		Long: `Lay out a document with the force solver and explore it in the terminal.

Drag nodes with the mouse to pin and pull them; the layout re-heats while
a drag is active. Click a node for its record, click a link for the text
contexts behind it.

  textnet view network.json
  textnet view network.json --tuned
  textnet view network.json --metrics :9090`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			prof, err := loadProfile()
			if err != nil {
				return err
			}

			// Logging to stderr would tear the alternate screen; log to a
			// file when asked, stay quiet otherwise.
			log := logging.NewNopLogger()
			if logFile != "" {
				f, err := openLogFile(logFile)
				if err != nil {
					return err
				}
				defer f.Close()
				log = logging.NewJSONLogger(f, logging.ParseLevel(logLevel))
			}

			reg := metrics.NewRegistry()
			if metricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", reg.Handler())
				go func() {
					_ = http.ListenAndServe(metricsAddr, mux)
				}()
			}

			panel := &selectionPanel{}
			v, err := view.New(doc, view.Options{
				Profile:  &prof,
				Logger:   log,
				Metrics:  reg,
				NodeSink: panel.setNode,
				LinkSink: panel.setLink,
			})
			if err != nil {
				return err
			}
			defer v.Close()

			p := tea.NewProgram(newTUIModel(v, panel),
				tea.WithAltScreen(),
				tea.WithMouseAllMotion(),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics", "", "Serve Prometheus metrics on this address")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Append JSON logs to this file")
	return cmd
}
