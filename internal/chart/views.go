package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/nurpe/checkbook-insights/internal/analysis"
	"github.com/nurpe/checkbook-insights/internal/model"
)

func topCommitments(in model.Insights) (*plot.Plot, error) {
	if len(in.TopCommitments) == 0 {
		return emptyPlot()
	}
	labels := make([]string, len(in.TopCommitments))
	values := make([]float64, len(in.TopCommitments))
	for i, row := range in.TopCommitments {
		labels[i] = fmt.Sprintf("%s (%s)", row.Company, row.Category)
		values[i] = row.MaxCommitment
	}
	p, err := horizontalBars(labels, values, accent)
	if err != nil {
		return nil, err
	}
	p.X.Label.Text = "SDO Commitment %"
	p.X.Tick.Marker = percentTicks{}
	p.X.Min = 0
	return p, nil
}

func categoryStats(in model.Insights) (*plot.Plot, error) {
	if len(in.CategoryStats) == 0 {
		return emptyPlot()
	}
	labels := make([]string, len(in.CategoryStats))
	values := make([]float64, len(in.CategoryStats))
	for i, row := range in.CategoryStats {
		labels[i] = row.Label
		values[i] = row.Mean
	}
	p, err := horizontalBars(labels, values, accent)
	if err != nil {
		return nil, err
	}
	p.X.Label.Text = "Average SDO %"
	p.X.Tick.Marker = percentTicks{}
	p.X.Min = 0
	return p, nil
}

func categoryVendors(in model.Insights) (*plot.Plot, error) {
	if len(in.CategoryVendors) == 0 {
		return emptyPlot()
	}
	labels := make([]string, len(in.CategoryVendors))
	values := make([]float64, len(in.CategoryVendors))
	for i, row := range in.CategoryVendors {
		labels[i] = fmt.Sprintf("%s (%.1f%%)", row.Label, row.Share*100)
		values[i] = float64(row.Vendors)
	}
	p, err := horizontalBars(labels, values, accent)
	if err != nil {
		return nil, err
	}
	p.X.Label.Text = "Unique Vendors"
	return p, nil
}

func contractCodes(in model.Insights) (*plot.Plot, error) {
	if len(in.ContractCodes) == 0 {
		return emptyPlot()
	}
	labels := make([]string, len(in.ContractCodes))
	values := make([]float64, len(in.ContractCodes))
	for i, row := range in.ContractCodes {
		labels[i] = row.Code
		values[i] = float64(row.Vendors)
	}
	p, err := verticalBars(labels, values, accent)
	if err != nil {
		return nil, err
	}
	p.X.Label.Text = "Contract Code"
	p.Y.Label.Text = "Unique Vendors"
	return p, nil
}

// stackedTypes draws one horizontal stacked bar per industry row.
func stackedTypes(m model.IndustryTypeMatrix) (*plot.Plot, error) {
	if len(m.Rows) == 0 {
		return emptyPlot()
	}
	p := plot.New()
	names := make([]string, len(m.Rows))
	for i, row := range m.Rows {
		names[i] = row.Industry
	}

	var below *plotter.BarChart
	for j, typ := range m.Types {
		values := make(plotter.Values, len(m.Rows))
		for i := range m.Rows {
			values[i] = float64(m.Count(i, typ))
		}
		bars, err := plotter.NewBarChart(values, vg.Points(barWidth(len(values))))
		if err != nil {
			return nil, err
		}
		bars.Horizontal = true
		bars.Color = plotutil.Color(j)
		bars.LineStyle.Width = vg.Length(0)
		if below != nil {
			bars.StackOn(below)
		}
		below = bars
		p.Add(bars)
		p.Legend.Add(string(typ), bars)
	}
	p.NominalY(names...)
	p.Legend.Top = true
	p.X.Label.Text = "Number of Companies"
	return p, nil
}

func nationalVsLocal(in model.Insights) (*plot.Plot, error) {
	return stackedTypes(analysis.SortedByType(in.IndustryTypes, model.CompanyTypeNationalAndLocal))
}

func distributions(in model.Insights) (*plot.Plot, error) {
	if len(in.Distributions) == 0 {
		return emptyPlot()
	}
	p := plot.New()
	labels := make([]string, len(in.Distributions))
	var outliers plotter.XYs
	for i, d := range in.Distributions {
		labels[i] = d.Label
		box, err := plotter.NewBoxPlot(vg.Points(20), float64(i), plotter.Values(d.Values))
		if err != nil {
			return nil, err
		}
		box.FillColor = accent
		p.Add(box)
		for _, v := range d.Outliers {
			outliers = append(outliers, plotter.XY{X: float64(i), Y: v})
		}
	}
	if len(outliers) > 0 {
		scatter, err := plotter.NewScatter(outliers)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Color = alert
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(2)
		p.Add(scatter)
		p.Legend.Add("outlier", scatter)
	}
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = 0.6
	p.X.Tick.Label.XAlign = draw.XRight
	p.Y.Label.Text = "SDO Commitment %"
	p.Y.Tick.Marker = percentTicks{}
	return p, nil
}

func coverage(in model.Insights) (*plot.Plot, error) {
	if len(in.Coverage) == 0 {
		return emptyPlot()
	}
	p := plot.New()
	names := make([]string, len(in.Coverage))
	has := make(plotter.Values, len(in.Coverage))
	missing := make(plotter.Values, len(in.Coverage))
	for i, row := range in.Coverage {
		names[i] = fmt.Sprintf("%s (%.0f%%)", row.Label, row.Rate*100)
		has[i] = float64(row.HasSDO)
		missing[i] = float64(row.NoSDO)
	}
	width := vg.Points(barWidth(len(names)))
	hasBars, err := plotter.NewBarChart(has, width)
	if err != nil {
		return nil, err
	}
	hasBars.Horizontal = true
	hasBars.Color = accent
	hasBars.LineStyle.Width = vg.Length(0)

	missingBars, err := plotter.NewBarChart(missing, width)
	if err != nil {
		return nil, err
	}
	missingBars.Horizontal = true
	missingBars.Color = muted
	missingBars.LineStyle.Width = vg.Length(0)
	missingBars.StackOn(hasBars)

	p.Add(hasBars, missingBars)
	p.Legend.Add("Has SDO", hasBars)
	p.Legend.Add("No SDO", missingBars)
	p.Legend.Top = true
	p.NominalY(names...)
	p.X.Label.Text = "Number of Vendors"
	return p, nil
}

func correlation(in model.Insights) (*plot.Plot, error) {
	view := in.Correlation
	if len(view.Points) == 0 {
		return emptyPlot()
	}
	p := plot.New()
	points := make(plotter.XYs, len(view.Points))
	labels := make([]string, len(view.Points))
	for i, pt := range view.Points {
		points[i] = plotter.XY{X: float64(pt.Vendors), Y: pt.MeanCommitment}
		labels[i] = pt.Category
	}
	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = accent
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(5)

	names, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: labels})
	if err != nil {
		return nil, err
	}
	p.Add(plotter.NewGrid(), scatter, names)

	if fit := view.Fit; fit != nil {
		line := plotter.NewFunction(func(x float64) float64 { return fit.Intercept + fit.Slope*x })
		line.Color = alert
		line.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("r = %.3f, p = %.4f", fit.R, fit.PValue), line)
		p.Legend.Top = true
	}
	p.X.Label.Text = "Number of Unique Vendors"
	p.Y.Label.Text = "Average SDO %"
	p.Y.Tick.Marker = percentTicks{}
	return p, nil
}

// typeGrid adapts the industry matrix to plotter.GridXYZ.
type typeGrid struct {
	m model.IndustryTypeMatrix
}

func (g typeGrid) Dims() (c, r int)   { return len(g.m.Types), len(g.m.Rows) }
func (g typeGrid) Z(c, r int) float64 { return float64(g.m.Count(r, g.m.Types[c])) }
func (g typeGrid) X(c int) float64    { return float64(c) }
func (g typeGrid) Y(r int) float64    { return float64(r) }

func industryHeatmap(in model.Insights) (*plot.Plot, error) {
	m := in.IndustryTypes
	if len(m.Rows) == 0 || len(m.Types) == 0 {
		return emptyPlot()
	}
	grid := typeGrid{m: m}
	heat := plotter.NewHeatMap(grid, palette.Heat(12, 1))
	if heat.Max == heat.Min {
		heat.Max = heat.Min + 1
	}

	var cells plotter.XYs
	var counts []string
	types := make([]string, len(m.Types))
	for c, typ := range m.Types {
		types[c] = string(typ)
		for r := range m.Rows {
			cells = append(cells, plotter.XY{X: float64(c), Y: float64(r)})
			counts = append(counts, fmt.Sprintf("%d", m.Count(r, typ)))
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: cells, Labels: counts})
	if err != nil {
		return nil, err
	}

	industries := make([]string, len(m.Rows))
	for i, row := range m.Rows {
		industries[i] = row.Industry
	}
	p := plot.New()
	p.Add(heat, labels)
	p.NominalX(types...)
	p.NominalY(industries...)
	return p, nil
}

func concentration(in model.Insights) (*plot.Plot, error) {
	view := in.Concentration
	if view.Total == 0 {
		return emptyPlot()
	}
	labels := make([]string, 0, len(view.Top)+1)
	values := make([]float64, 0, len(view.Top)+1)
	for _, row := range view.Top {
		labels = append(labels, fmt.Sprintf("%s (%.1f%%)", row.Company, row.Share*100))
		values = append(values, float64(row.Contracts))
	}
	if view.RestCompanies > 0 {
		share := float64(view.Rest) / float64(view.Total)
		labels = append(labels, fmt.Sprintf("Others, %d companies (%.1f%%)", view.RestCompanies, share*100))
		values = append(values, float64(view.Rest))
	}
	p, err := horizontalBars(labels, values, accent)
	if err != nil {
		return nil, err
	}
	p.X.Label.Text = "Contract Codes"
	return p, nil
}

func industryDensity(in model.Insights) (*plot.Plot, error) {
	if len(in.IndustryDensity) == 0 {
		return emptyPlot()
	}
	labels := make([]string, len(in.IndustryDensity))
	values := make([]float64, len(in.IndustryDensity))
	for i, row := range in.IndustryDensity {
		labels[i] = row.Industry
		values[i] = float64(row.Companies)
	}
	p, err := horizontalBars(labels, values, accent)
	if err != nil {
		return nil, err
	}
	p.X.Label.Text = "Number of Companies"
	return p, nil
}

func histogram(in model.Insights) (*plot.Plot, error) {
	if len(in.Histogram) == 0 {
		return emptyPlot()
	}
	bins := make([]plotter.HistogramBin, len(in.Histogram))
	for i, b := range in.Histogram {
		bins[i] = plotter.HistogramBin{Min: b.Lower, Max: b.Upper, Weight: float64(b.Count)}
	}
	hist := &plotter.Histogram{
		Bins:      bins,
		Width:     in.Histogram[0].Upper - in.Histogram[0].Lower,
		FillColor: accent,
		LineStyle: plotter.DefaultLineStyle,
	}
	p := plot.New()
	p.Add(plotter.NewGrid(), hist)
	p.X.Label.Text = "SDO Commitment %"
	p.X.Tick.Marker = percentTicks{}
	p.Y.Label.Text = "Number of Vendors"
	return p, nil
}

// comparison draws the normalized metrics as grouped bars, one group per
// metric and one colour per category.
func comparison(in model.Insights) (*plot.Plot, error) {
	view := in.Comparison
	if len(view.Categories) == 0 {
		return emptyPlot()
	}
	p := plot.New()
	width := vg.Points(14)
	n := len(view.Categories)
	for i, c := range view.Categories {
		bars, err := plotter.NewBarChart(plotter.Values(c.Normalized), width)
		if err != nil {
			return nil, err
		}
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = vg.Length(0)
		bars.Offset = vg.Length(float64(i)-float64(n-1)/2) * width
		p.Add(bars)
		p.Legend.Add(c.Label, bars)
	}
	p.NominalX(view.Metrics...)
	p.Legend.Top = true
	p.Y.Label.Text = "Relative to best category"
	p.Y.Tick.Marker = percentTicks{}
	p.Y.Min, p.Y.Max = 0, 1.05
	return p, nil
}
