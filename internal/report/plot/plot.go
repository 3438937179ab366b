// Package plot draws report charts with gonum/plot.
package plot

import (
	"fmt"
	"image/color"
	"math"

	gonum "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"retail-records/internal/domain"
	"retail-records/internal/report"
)

var (
	barColor  = color.RGBA{R: 135, G: 206, B: 235, A: 255} // skyblue
	lineColor = color.RGBA{G: 128, A: 255}                   // green
	gridColor = color.Gray{Y: 200}
)

// Renderer implements report.Renderer. Width and Height default to 12x6
// inches.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

func New() *Renderer {
	return &Renderer{Width: 12 * vg.Inch, Height: 6 * vg.Inch}
}

var _ report.Renderer = (*Renderer)(nil)

func (r *Renderer) newPlot(title, xLabel, yLabel string) *gonum.Plot {
	p := gonum.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Y.Min = 0
	return p
}

// Bar draws one bar per label with labels rotated under the axis.
func (r *Renderer) Bar(path string, c report.BarChart) error {
	if len(c.Labels) != len(c.Values) {
		return fmt.Errorf("bar chart: %d labels for %d values", len(c.Labels), len(c.Values))
	}
	p := r.newPlot(c.Title, c.XLabel, c.YLabel)

	bars, err := plotter.NewBarChart(plotter.Values(c.Values), vg.Points(30))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(c.Labels...)

	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	return r.save(p, path)
}

// Line draws the series as a line with circle markers over a dashed grid,
// with dates on the X axis.
func (r *Renderer) Line(path string, c report.LineChart) error {
	if len(c.Times) != len(c.Values) {
		return fmt.Errorf("line chart: %d times for %d values", len(c.Times), len(c.Values))
	}
	p := r.newPlot(c.Title, c.XLabel, c.YLabel)

	pts := make(plotter.XYs, len(c.Times))
	for i, t := range c.Times {
		pts[i].X = float64(t.Unix())
		pts[i].Y = c.Values[i]
	}

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Vertical.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	grid.Horizontal.Color = gridColor
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(grid)

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("line chart: %w", err)
	}
	line.Color = lineColor
	points.Shape = draw.CircleGlyph{}
	points.Color = lineColor
	p.Add(line, points)

	p.X.Tick.Marker = gonum.TimeTicks{Format: domain.DateLayout}
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	return r.save(p, path)
}

func (r *Renderer) save(p *gonum.Plot, path string) error {
	if err := p.Save(r.Width, r.Height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
