package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/nurpe/checkbook-insights/internal/model"
)

var ErrUnknownChart = errors.New("unknown chart")

var (
	accent = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	muted  = color.RGBA{R: 0xc7, G: 0xc7, B: 0xc7, A: 0xff}
	alert  = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

type builder func(model.Insights) (*plot.Plot, error)

// Renderer turns view payloads into PNG charts. It keeps no per-call state
// and is safe for concurrent use.
type Renderer struct {
	width    vg.Length
	height   vg.Length
	builders map[string]builder
}

func NewRenderer() *Renderer {
	return &Renderer{
		width:  10 * vg.Inch,
		height: 6 * vg.Inch,
		builders: map[string]builder{
			model.ViewBQ1:        topCommitments,
			model.ViewBQ2:        categoryStats,
			model.ViewBQ3:        categoryVendors,
			model.ViewBQ4:        contractCodes,
			model.ViewBQ5:        nationalVsLocal,
			model.ViewBQ6:        distributions,
			model.ViewBQ7:        coverage,
			model.ViewBQ8:        correlation,
			model.ViewBQ9:        industryHeatmap,
			model.ViewBQ10:       concentration,
			model.ViewBQ11:       industryDensity,
			model.ViewHistogram:  histogram,
			model.ViewComparison: comparison,
		},
	}
}

// Render draws the named chart and encodes it as PNG.
func (r *Renderer) Render(name string, insights model.Insights) ([]byte, error) {
	build, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChart, name)
	}
	p, err := build(insights)
	if err != nil {
		return nil, err
	}
	if info, ok := model.LookupView(name); ok {
		p.Title.Text = info.Title
	}
	p.Title.TextStyle.Font.Size = vg.Points(14)

	writer, err := p.WriterTo(r.width, r.height, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func emptyPlot() (*plot.Plot, error) {
	p := plot.New()
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0.5, Y: 0.5}},
		Labels: []string{"no data"},
	})
	if err != nil {
		return nil, err
	}
	p.Add(labels)
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	p.HideAxes()
	return p, nil
}

// horizontalBars plots one bar per label, first label on top.
func horizontalBars(labels []string, values []float64, fill color.Color) (*plot.Plot, error) {
	p := plot.New()
	n := len(values)
	reversed := make(plotter.Values, n)
	names := make([]string, n)
	for i := range values {
		reversed[n-1-i] = values[i]
		names[n-1-i] = labels[i]
	}
	bars, err := plotter.NewBarChart(reversed, vg.Points(barWidth(n)))
	if err != nil {
		return nil, err
	}
	bars.Horizontal = true
	bars.Color = fill
	bars.LineStyle.Width = vg.Length(0)
	p.Add(plotter.NewGrid(), bars)
	p.NominalY(names...)
	return p, nil
}

func verticalBars(labels []string, values []float64, fill color.Color) (*plot.Plot, error) {
	p := plot.New()
	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(barWidth(len(values))))
	if err != nil {
		return nil, err
	}
	bars.Color = fill
	bars.LineStyle.Width = vg.Length(0)
	p.Add(plotter.NewGrid(), bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	return p, nil
}

func barWidth(n int) float64 {
	switch {
	case n > 20:
		return 8
	case n > 10:
		return 12
	default:
		return 20
	}
}

// percentTicks labels a fractional axis as percentages.
type percentTicks struct{}

func (percentTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = fmt.Sprintf("%.0f%%", ticks[i].Value*100)
		}
	}
	return ticks
}
