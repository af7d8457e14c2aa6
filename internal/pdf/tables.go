package pdf

import (
	"fmt"

	"github.com/nurpe/checkbook-insights/internal/analysis"
	"github.com/nurpe/checkbook-insights/internal/model"
)

type table struct {
	headers []string
	widths  []float64
	rows    [][]string
}

func keyFigures(view string, in model.Insights, limit int) table {
	var t table
	switch view {
	case model.ViewBQ1:
		t = table{headers: []string{"Company", "Category", "Max SDO", "Contracts"}, widths: []float64{80, 40, 30, 30}}
		for _, r := range in.TopCommitments {
			t.rows = append(t.rows, []string{r.Company, r.Category, formatPercent(r.MaxCommitment), fmt.Sprintf("%d", r.ContractCount)})
		}
	case model.ViewBQ2:
		t = table{headers: []string{"Category", "Mean", "Median", "Std", "Rows"}, widths: []float64{80, 25, 25, 25, 25}}
		for _, r := range in.CategoryStats {
			t.rows = append(t.rows, []string{r.Label, formatPercent(r.Mean), formatPercent(r.Median), formatPercent(r.Std), fmt.Sprintf("%d", r.Count)})
		}
	case model.ViewBQ3:
		t = table{headers: []string{"Category", "Vendors", "Share"}, widths: []float64{100, 40, 40}}
		for _, r := range in.CategoryVendors {
			t.rows = append(t.rows, []string{r.Label, fmt.Sprintf("%d", r.Vendors), formatPercent(r.Share)})
		}
	case model.ViewBQ4:
		t = table{headers: []string{"Contract code", "Vendors"}, widths: []float64{100, 40}}
		for _, r := range in.ContractCodes {
			t.rows = append(t.rows, []string{r.Code, fmt.Sprintf("%d", r.Vendors)})
		}
	case model.ViewBQ5, model.ViewBQ9:
		m := in.IndustryTypes
		if view == model.ViewBQ5 {
			m = analysis.SortedByType(m, model.CompanyTypeNationalAndLocal)
		}
		t = table{headers: []string{"Industry"}, widths: []float64{75}}
		for _, typ := range m.Types {
			t.headers = append(t.headers, string(typ))
			t.widths = append(t.widths, 35)
		}
		for i, r := range m.Rows {
			row := []string{r.Industry}
			for _, typ := range m.Types {
				row = append(row, fmt.Sprintf("%d", m.Count(i, typ)))
			}
			t.rows = append(t.rows, row)
		}
	case model.ViewBQ6:
		t = table{headers: []string{"Category", "Q1", "Median", "Q3", "Upper fence", "Outliers"}, widths: []float64{60, 22, 22, 22, 30, 24}}
		for _, r := range in.Distributions {
			t.rows = append(t.rows, []string{r.Label, formatPercent(r.Q1), formatPercent(r.Median), formatPercent(r.Q3), formatPercent(r.UpperFence), fmt.Sprintf("%d", len(r.Outliers))})
		}
	case model.ViewBQ7:
		t = table{headers: []string{"Category", "Has SDO", "No SDO", "Rate"}, widths: []float64{90, 30, 30, 30}}
		for _, r := range in.Coverage {
			t.rows = append(t.rows, []string{r.Label, fmt.Sprintf("%d", r.HasSDO), fmt.Sprintf("%d", r.NoSDO), formatPercent(r.Rate)})
		}
	case model.ViewBQ8:
		t = table{headers: []string{"Category", "Vendors", "Mean SDO"}, widths: []float64{100, 40, 40}}
		for _, r := range in.Correlation.Points {
			t.rows = append(t.rows, []string{r.Label, fmt.Sprintf("%d", r.Vendors), formatPercent(r.MeanCommitment)})
		}
		if fit := in.Correlation.Fit; fit != nil && len(t.rows) > 0 {
			t.rows = append(t.rows, []string{"Pearson r / p-value", formatAmount(fit.R, 3), formatAmount(fit.PValue, 4)})
		}
	case model.ViewBQ10:
		t = table{headers: []string{"Company", "Contract codes", "Share"}, widths: []float64{100, 40, 40}}
		for _, r := range in.Concentration.Top {
			t.rows = append(t.rows, []string{r.Company, fmt.Sprintf("%d", r.Contracts), formatPercent(r.Share)})
		}
		if in.Concentration.RestCompanies > 0 {
			t.rows = append(t.rows, []string{fmt.Sprintf("Others (%d companies)", in.Concentration.RestCompanies), fmt.Sprintf("%d", in.Concentration.Rest), formatPercent(1 - in.Concentration.TopShare)})
		}
		return t
	case model.ViewBQ11:
		t = table{headers: []string{"Industry", "Companies"}, widths: []float64{100, 40}}
		for _, r := range in.IndustryDensity {
			t.rows = append(t.rows, []string{r.Industry, fmt.Sprintf("%d", r.Companies)})
		}
	}
	if limit > 0 && len(t.rows) > limit {
		t.rows = t.rows[:limit]
	}
	return t
}
