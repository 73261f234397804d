package main

import (
	"fmt"
	"image/color"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/stevenlee02/textnet/pkg/logging"
	"github.com/stevenlee02/textnet/pkg/view"
)

// maxRenderSteps caps the convergence loop; a well-formed schedule stops on
// its own long before this.
const maxRenderSteps = 5000

func renderCmd() *cobra.Command {
	var out string
	var title string

	cmd := &cobra.Command{
		Use:   "render <document.json>",
		Short: "Run the layout to convergence and export an image",
		Long: `Lay out a document headlessly and write the converged diagram to an
image file. The format follows the output extension (.png, .svg, .pdf).

  textnet render network.json --out network.png
  textnet render network.json --tuned --out network.svg`,
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

			log := newLogger()
			v, err := view.New(doc, view.Options{
				Profile: &prof,
				Logger:  log,
			})
			if err != nil {
				return err
			}
			defer v.Close()

			steps := 0
			for v.Tick() {
				steps++
				if steps >= maxRenderSteps {
					log.Warn("layout did not converge", logging.Tick(v.Ticks()))
					break
				}
			}

			if err := savePlot(v, title, out); err != nil {
				return fmt.Errorf("export %s: %w", out, err)
			}
			log.Info("layout exported",
				logging.String("out", out),
				logging.Tick(v.Ticks()),
				logging.Nodes(v.NodeCount()),
				logging.Links(v.LinkCount()),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "layout.png", "Output image path")
	cmd.Flags().StringVar(&title, "title", "", "Plot title")
	return cmd
}

func savePlot(v *view.View, title, out string) error {
	circles, lines := v.Frame()

	p := plot.New()
	p.Title.Text = title
	p.HideAxes()

	for _, l := range lines {
		pl, err := plotter.NewLine(plotter.XYs{
			{X: l.X1, Y: l.Y1},
			{X: l.X2, Y: l.Y2},
		})
		if err != nil {
			return err
		}
		pl.LineStyle.Width = vg.Points(l.Width / 2)
		pl.LineStyle.Color = parseHexColor(l.Stroke, color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xFF})
		p.Add(pl)
	}

	if len(circles) > 0 {
		pts := make(plotter.XYs, len(circles))
		for i, c := range circles {
			pts[i] = plotter.XY{X: c.X, Y: c.Y}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			c := circles[i]
			return draw.GlyphStyle{
				Color:  parseHexColor(c.Fill, color.RGBA{R: 0x1F, G: 0x77, B: 0xB4, A: 0xFF}),
				Radius: vg.Points(c.Radius),
				Shape:  draw.CircleGlyph{},
			}
		}
		p.Add(sc)
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, out)
}

// parseHexColor reads "#RRGGBB"; anything else falls back.
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return fallback
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}
