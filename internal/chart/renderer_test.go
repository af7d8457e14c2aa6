package chart

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/checkbook-insights/internal/analysis"
	"github.com/nurpe/checkbook-insights/internal/model"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func sampleInsights() model.Insights {
	var records []model.VendorRecord
	for i, category := range []string{"ITE", "ITS", "ITT", "FAC"} {
		for j := 0; j < 12; j++ {
			v := float64((i+j)%10) / 10
			records = append(records, model.VendorRecord{
				ContractCode:  fmt.Sprintf("%s%d", category, j%3),
				Company:       fmt.Sprintf("Company %d", (i*7+j)%15),
				SDOCommitment: &v,
				Category:      category,
			})
		}
	}
	high := 4.0
	records = append(records, model.VendorRecord{ContractCode: "ITE9", Company: "Outlier", SDOCommitment: &high, Category: "ITE"})

	companies := []model.CategorizedCompany{
		{Industry: "Finance", Company: "A", Type: model.CompanyTypeNationalAndLocal},
		{Industry: "Finance", Company: "B", Type: model.CompanyTypeLocal},
		{Industry: "Retail", Company: "C", Type: model.CompanyTypeSgcTarget},
	}
	return analysis.New(analysis.DefaultPolicy()).Compute(records, companies)
}

func TestRenderEveryView(t *testing.T) {
	renderer := NewRenderer()
	insights := sampleInsights()

	for _, view := range model.Views() {
		t.Run(view.Name, func(t *testing.T) {
			content, err := renderer.Render(view.Name, insights)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(content, pngSignature))
		})
	}
}

func TestRenderEmptyInsights(t *testing.T) {
	renderer := NewRenderer()

	for _, view := range model.Views() {
		content, err := renderer.Render(view.Name, model.Insights{})
		require.NoError(t, err, view.Name)
		assert.True(t, bytes.HasPrefix(content, pngSignature), view.Name)
	}
}

func TestRenderUnknownChart(t *testing.T) {
	_, err := NewRenderer().Render("pie", model.Insights{})
	assert.ErrorIs(t, err, ErrUnknownChart)
}

func TestPercentTicks(t *testing.T) {
	for _, tick := range (percentTicks{}).Ticks(0, 1) {
		if tick.Label == "" {
			continue
		}
		assert.Contains(t, tick.Label, "%")
	}
}
