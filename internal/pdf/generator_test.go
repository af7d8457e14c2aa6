package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/checkbook-insights/internal/analysis"
	"github.com/nurpe/checkbook-insights/internal/model"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 6))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func sampleDocument(t *testing.T) model.ReportDocument {
	v := 0.35
	high := 2.0
	records := []model.VendorRecord{
		{ContractCode: "ITE1", Company: "Acme Société", SDOCommitment: &v, Category: "ITE"},
		{ContractCode: "ITS1", Company: "Bolt", SDOCommitment: &high, Category: "ITS"},
		{ContractCode: "FAC1", Company: "Core", Category: "FAC"},
	}
	companies := []model.CategorizedCompany{
		{Industry: "Finance", Company: "A", Type: model.CompanyTypeLocal},
	}
	insights := analysis.New(analysis.DefaultPolicy()).Compute(records, companies)

	charts := map[string][]byte{}
	for _, view := range model.Views() {
		charts[view.Name] = tinyPNG(t)
	}
	return model.ReportDocument{
		Title:       "SDO Vendor & Company Analysis",
		Subtitle:    "Test run",
		GeneratedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		Insights:    insights,
		Charts:      charts,
	}
}

func TestGenerate(t *testing.T) {
	g, err := NewGenerator()
	require.NoError(t, err)

	content, err := g.Generate(sampleDocument(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestGenerateWithoutCharts(t *testing.T) {
	g, err := NewGenerator()
	require.NoError(t, err)

	doc := sampleDocument(t)
	doc.Charts = nil
	content, err := g.Generate(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestKeyFiguresLimit(t *testing.T) {
	var in model.Insights
	for i := 0; i < 30; i++ {
		in.ContractCodes = append(in.ContractCodes, model.ContractCodeCount{Code: "C", Vendors: i})
	}
	table := keyFigures(model.ViewBQ4, in, 10)
	assert.Len(t, table.rows, 10)
	assert.Len(t, table.headers, len(table.widths))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 40))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 20))
}
