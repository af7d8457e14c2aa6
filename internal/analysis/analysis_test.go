package analysis

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/checkbook-insights/internal/model"
)

func sdo(v float64) *float64 {
	return &v
}

func rec(category, company, code string, commitment *float64) model.VendorRecord {
	label, _ := model.CategoryLabel(category)
	return model.VendorRecord{
		ContractCode:  code,
		Company:       company,
		Category:      category,
		CategoryLabel: label,
		SDOCommitment: commitment,
	}
}

func TestCap(t *testing.T) {
	inputs := []float64{-1, 0, 0.3, 0.999, 1, 1.0001, 7.5, math.MaxFloat64}
	for _, x := range inputs {
		t.Run(fmt.Sprintf("%g", x), func(t *testing.T) {
			once := Cap(x, 1.0)
			assert.Equal(t, once, Cap(once, 1.0), "idempotent")
			if x <= 1.0 {
				assert.Equal(t, x, once)
			} else {
				assert.Equal(t, 1.0, once)
			}
		})
	}
}

func TestQuantileLinearInterpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.75, quantile(sorted, 0.25), 1e-12)
	assert.InDelta(t, 2.5, quantile(sorted, 0.5), 1e-12)
	assert.InDelta(t, 3.25, quantile(sorted, 0.75), 1e-12)
	assert.Equal(t, 5.0, quantile([]float64{5}, 0.75))
	assert.True(t, math.IsNaN(quantile(nil, 0.5)))
}

func TestPolicyValidate(t *testing.T) {
	require.NoError(t, DefaultPolicy().Validate())

	p := DefaultPolicy()
	p.CommitmentCap = 0
	assert.ErrorIs(t, p.Validate(), ErrInvalidPolicy)

	p = DefaultPolicy()
	p.MinCorrelationCategories = 2
	assert.ErrorIs(t, p.Validate(), ErrInvalidPolicy)
}

func TestTopCommitments(t *testing.T) {
	records := []model.VendorRecord{
		rec("ITE", "Acme", "ITE1", sdo(0.3)),
		rec("ITE", "Acme", "ITE2", sdo(0.5)),
		rec("ITS", "Bolt", "ITS1", sdo(2.0)),
		rec("ITS", "Crux", "ITS1", sdo(1.0)),
		rec("ITT", "Dyno", "ITT1", sdo(0.5)),
		rec("ITT", "Echo", "ITT1", nil),
		rec("ITT", "Fern", "ITT1", sdo(0)),
		rec("FAC", "Gale", "FAC1", sdo(0.9)),
	}
	agg := New(DefaultPolicy())

	t.Run("ranking", func(t *testing.T) {
		top := agg.TopCommitments(records, []string{"ITE", "ITS", "ITT"}, 15)
		require.Len(t, top, 4)

		assert.Equal(t, "Bolt", top[0].Company)
		assert.Equal(t, 1.0, top[0].MaxCommitment, "capped")
		assert.Equal(t, "Crux", top[1].Company, "ties keep first appearance")
		assert.Equal(t, "Acme", top[2].Company)
		assert.Equal(t, 0.5, top[2].MaxCommitment)
		assert.Equal(t, 2, top[2].ContractCount)
		assert.Equal(t, "Dyno", top[3].Company)
		assert.Equal(t, "IT Equipment & Services", top[2].CategoryLabel)
	})

	t.Run("bounded and descending", func(t *testing.T) {
		for n := 1; n <= 6; n++ {
			top := agg.TopCommitments(records, nil, n)
			assert.LessOrEqual(t, len(top), n)
			for i := 1; i < len(top); i++ {
				assert.GreaterOrEqual(t, top[i-1].MaxCommitment, top[i].MaxCommitment)
			}
		}
	})

	t.Run("single category filter", func(t *testing.T) {
		top := agg.TopCommitments(records, []string{"ITT"}, 15)
		require.Len(t, top, 1)
		assert.Equal(t, "Dyno", top[0].Company)
	})
}

func TestCategoryCommitmentStats(t *testing.T) {
	records := []model.VendorRecord{
		rec("ITE", "A", "1", sdo(0.2)),
		rec("ITE", "B", "1", sdo(0.4)),
		rec("ITE", "C", "1", sdo(3.0)),
		rec("FAC", "D", "2", sdo(0.1)),
		rec("FAC", "E", "2", nil),
		rec("FAC", "F", "2", sdo(0)),
	}

	stats := New(DefaultPolicy()).CategoryCommitmentStats(records)
	require.Len(t, stats, 2)

	assert.Equal(t, "FAC", stats[0].Category, "ascending by mean")
	assert.Equal(t, 1, stats[0].Count)
	assert.Equal(t, 0.0, stats[0].Std)

	ite := stats[1]
	assert.Equal(t, "ITE", ite.Category)
	assert.Equal(t, 3, ite.Count)
	assert.InDelta(t, (0.2+0.4+1.0)/3, ite.Mean, 1e-12)
	assert.InDelta(t, 0.4, ite.Median, 1e-12)
	assert.InDelta(t, 0.4163331998932265, ite.Std, 1e-9)
}

func TestCategoryVendorCounts(t *testing.T) {
	records := []model.VendorRecord{
		rec("ITE", "A", "1", nil),
		rec("ITE", "A", "2", nil),
		rec("ITE", "B", "2", nil),
		rec("FAC", "C", "3", nil),
	}

	counts := New(DefaultPolicy()).CategoryVendorCounts(records)
	require.Len(t, counts, 2)
	assert.Equal(t, model.CategoryVendorCount{Category: "ITE", Label: "IT Equipment & Services", Vendors: 2, Share: 2.0 / 3}, counts[0])
	assert.Equal(t, 1, counts[1].Vendors)
	assert.InDelta(t, 1.0, counts[0].Share+counts[1].Share, 1e-12)
}

func TestContractCodeVendorCounts(t *testing.T) {
	records := []model.VendorRecord{
		rec("ITS", "A", "ITS55", nil),
		rec("ITS", "B", "ITS55", nil),
		rec("ITS", "B", "ITS55", nil),
		rec("ITS", "C", "ITS56", nil),
		rec("ITS", "D", "ABCDEFGHIJKLMNO", nil),
		rec("ITS", "E", "ABCDEFGHIJKLMNOP", nil),
		rec("ITS", "F", "FAC1", nil),
	}
	agg := New(DefaultPolicy())

	counts := agg.ContractCodeVendorCounts(records, 25)
	assert.Equal(t, []model.ContractCodeCount{
		{Code: "ITS55", Vendors: 2},
		{Code: "ABCDEFGHIJKLMNO", Vendors: 1},
		{Code: "FAC1", Vendors: 1},
		{Code: "ITS56", Vendors: 1},
	}, counts)

	assert.Len(t, agg.ContractCodeVendorCounts(records, 2), 2)
}

func TestIndustryTypeMatrix(t *testing.T) {
	companies := []model.CategorizedCompany{
		{Industry: "Retail", Company: "A", Type: model.CompanyTypeNationalAndLocal},
		{Industry: "Retail", Company: "B", Type: model.CompanyTypeNationalAndLocal},
		{Industry: "Finance", Company: "C", Type: model.CompanyTypeLocal},
		{Industry: "Finance", Company: "D", Type: model.CompanyTypeSgcTarget},
	}

	m := New(DefaultPolicy()).IndustryTypeMatrix(companies)
	assert.Equal(t, model.CompanyTypes(), m.Types)
	require.Len(t, m.Rows, 2)
	assert.Equal(t, "Finance", m.Rows[0].Industry)
	assert.Equal(t, []int{0, 1, 1}, m.Rows[0].Counts)
	assert.Equal(t, []int{2, 0, 0}, m.Rows[1].Counts)
	assert.Equal(t, 0, m.Count(1, model.CompanyTypeSgcTarget))

	sorted := SortedByType(m, model.CompanyTypeNationalAndLocal)
	assert.Equal(t, "Finance", sorted.Rows[0].Industry)
	sorted = SortedByType(m, model.CompanyTypeLocal)
	assert.Equal(t, "Retail", sorted.Rows[0].Industry)
	assert.Equal(t, "Finance", m.Rows[0].Industry, "input untouched")
}

func TestIndustryCompanyDensity(t *testing.T) {
	companies := []model.CategorizedCompany{
		{Industry: "Retail", Company: "A", Type: model.CompanyTypeNationalAndLocal},
		{Industry: "Retail", Company: "A", Type: model.CompanyTypeLocal},
		{Industry: "Retail", Company: "B", Type: model.CompanyTypeLocal},
		{Industry: "Finance", Company: "C", Type: model.CompanyTypeLocal},
	}

	density := New(DefaultPolicy()).IndustryCompanyDensity(companies)
	assert.Equal(t, []model.IndustryDensity{
		{Industry: "Finance", Companies: 1},
		{Industry: "Retail", Companies: 2},
	}, density)
}

func outlierFixture() []model.VendorRecord {
	var records []model.VendorRecord
	for i := 0; i < 9; i++ {
		records = append(records, rec("ITE", fmt.Sprintf("E%d", i), "ITE1", sdo(0.10+float64(i)*0.01)))
	}
	records = append(records, rec("ITE", "E9", "ITE1", sdo(0.95)))
	for i := 0; i < 9; i++ {
		records = append(records, rec("FAC", fmt.Sprintf("F%d", i), "FAC1", sdo(0.5)))
	}
	records = append(records, rec("FAC", "F9", "FAC1", nil))
	for i := 0; i < 12; i++ {
		records = append(records, rec("MED", fmt.Sprintf("M%d", i), "MED1", sdo(1.5)))
	}
	return records
}

func TestCommitmentOutliers(t *testing.T) {
	dists := New(DefaultPolicy()).CommitmentOutliers(outlierFixture())
	require.Len(t, dists, 2, "FAC has only 9 eligible rows")

	assert.Equal(t, "MED", dists[0].Category, "highest median first")
	assert.Equal(t, 1.0, dists[0].Median, "values are capped")
	assert.Empty(t, dists[0].Outliers)

	ite := dists[1]
	assert.Equal(t, 10, ite.Count)
	assert.InDelta(t, 0.1225, ite.Q1, 1e-9)
	assert.InDelta(t, 0.1675, ite.Q3, 1e-9)
	assert.InDelta(t, 0.045, ite.IQR, 1e-9)
	assert.InDelta(t, 0.235, ite.UpperFence, 1e-9)
	assert.Equal(t, []float64{0.95}, ite.Outliers)
}

func TestCommitmentOutliersThresholdMonotonic(t *testing.T) {
	records := outlierFixture()
	previous := map[string]bool{}
	for threshold := 1; threshold <= 14; threshold++ {
		p := DefaultPolicy()
		p.MinCategoryRows = threshold
		included := map[string]bool{}
		for _, d := range New(p).CommitmentOutliers(records) {
			assert.GreaterOrEqual(t, d.Count, threshold)
			included[d.Category] = true
		}
		if threshold > 1 {
			for category := range included {
				assert.True(t, previous[category], "raising the threshold added %s", category)
			}
		}
		previous = included
	}
}

func TestCoverageRates(t *testing.T) {
	records := []model.VendorRecord{
		rec("ITE", "A", "1", sdo(0.2)),
		rec("ITE", "B", "1", sdo(0)),
		rec("ITE", "C", "1", nil),
		rec("ITE", "D", "1", sdo(-0.1)),
		rec("FAC", "E", "2", nil),
		rec("FAC", "F", "2", nil),
	}

	coverage := New(DefaultPolicy()).CoverageRates(records)
	require.Len(t, coverage, 2)
	for _, c := range coverage {
		assert.Equal(t, c.Total, c.HasSDO+c.NoSDO)
	}
	assert.Equal(t, "FAC", coverage[0].Category)
	assert.Equal(t, 0.0, coverage[0].Rate)
	assert.Equal(t, 3, coverage[1].HasSDO)
	assert.Equal(t, 0.75, coverage[1].Rate)
}

func TestVendorCommitmentCorrelation(t *testing.T) {
	agg := New(DefaultPolicy())

	t.Run("too few categories", func(t *testing.T) {
		view := agg.VendorCommitmentCorrelation([]model.VendorRecord{
			rec("ITE", "A", "1", sdo(0.2)),
			rec("ITS", "B", "1", sdo(0.4)),
		})
		assert.Len(t, view.Points, 2)
		assert.Nil(t, view.Fit)
	})

	t.Run("perfect fit", func(t *testing.T) {
		view := agg.VendorCommitmentCorrelation([]model.VendorRecord{
			rec("AAA", "A1", "1", sdo(0.2)),
			rec("AAA", "A9", "1", sdo(1.5)),
			rec("BBB", "B1", "1", sdo(0.4)),
			rec("BBB", "B2", "1", sdo(0.4)),
			rec("CCC", "C1", "1", sdo(0.6)),
			rec("CCC", "C2", "1", sdo(0.6)),
			rec("CCC", "C3", "1", sdo(0.6)),
			rec("CCC", "C4", "1", nil),
		})
		require.Len(t, view.Points, 3)
		assert.Equal(t, 1, view.Points[0].Vendors, "rows above the cap are excluded, not capped")
		assert.InDelta(t, 0.2, view.Points[0].MeanCommitment, 1e-12)

		require.NotNil(t, view.Fit)
		assert.InDelta(t, 1.0, view.Fit.R, 1e-9)
		assert.InDelta(t, 0.2, view.Fit.Slope, 1e-9)
		assert.InDelta(t, 0.0, view.Fit.Intercept, 1e-9)
		assert.InDelta(t, 0.0, view.Fit.PValue, 1e-6)
		assert.Equal(t, 3, view.Fit.N)
	})

	t.Run("p value", func(t *testing.T) {
		p := correlationPValue(0.5, 10)
		assert.InDelta(t, 0.1411, p, 1e-3)
	})
}

func TestITConcentration(t *testing.T) {
	var records []model.VendorRecord
	for i := 0; i < 12; i++ {
		company := fmt.Sprintf("C%02d", i)
		for c := 0; c <= i; c++ {
			records = append(records, rec("ITS", company, fmt.Sprintf("ITS%d", c), nil))
		}
	}
	records = append(records,
		rec("ITE", "C00", "ITE1", nil),
		rec("ITE", "C00", "ITE1", nil),
		rec("FAC", "Outside", "FAC1", nil),
	)

	view := New(DefaultPolicy()).ITConcentration(records)
	require.Len(t, view.Top, 10)
	assert.Equal(t, "C11", view.Top[0].Company)
	assert.Equal(t, 12, view.Top[0].Contracts)
	assert.Equal(t, 12, view.Companies)
	assert.Equal(t, 2, view.RestCompanies)

	topSum := 0
	for _, c := range view.Top {
		topSum += c.Contracts
	}
	assert.Equal(t, view.Total, topSum+view.Rest)
	assert.Equal(t, 79, view.Total)
	assert.InDelta(t, float64(topSum)/79, view.TopShare, 1e-12)
}

func TestCategoryComparison(t *testing.T) {
	records := []model.VendorRecord{
		rec("ITE", "A", "1", sdo(0.2)),
		rec("ITE", "B", "1", sdo(0.4)),
		rec("ITS", "C", "1", sdo(0.8)),
		rec("ITS", "D", "1", nil),
	}

	view := New(DefaultPolicy()).CategoryComparison(records)
	assert.Equal(t, model.ComparisonMetrics(), view.Metrics)
	require.Len(t, view.Categories, 3)

	ite, its, itt := view.Categories[0], view.Categories[1], view.Categories[2]
	assert.InDelta(t, 0.3, ite.Values[0], 1e-12)
	assert.Equal(t, 2.0, ite.Values[3])
	assert.Equal(t, 1.0, ite.Values[4])
	assert.Equal(t, 0.5, its.Values[4])

	assert.Equal(t, 1.0, its.Normalized[0])
	assert.InDelta(t, 0.375, ite.Normalized[0], 1e-12)
	assert.Equal(t, 1.0, ite.Normalized[3])
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, itt.Normalized, "no data normalizes to zero")
}

func TestCommitmentHistogram(t *testing.T) {
	p := DefaultPolicy()
	p.HistogramBins = 4
	records := []model.VendorRecord{
		rec("ITE", "A", "1", sdo(0.1)),
		rec("ITE", "B", "1", sdo(0.25)),
		rec("ITE", "C", "1", sdo(1.0)),
		rec("ITE", "D", "1", sdo(4.0)),
		rec("ITE", "E", "1", sdo(0)),
		rec("ITE", "F", "1", nil),
	}

	bins := New(p).CommitmentHistogram(records)
	require.Len(t, bins, 4)
	assert.Equal(t, []int{1, 1, 0, 2}, []int{bins[0].Count, bins[1].Count, bins[2].Count, bins[3].Count})
	assert.Equal(t, 1.0, bins[3].Upper)
}

func TestComputeIsPureAndUnaliased(t *testing.T) {
	records := outlierFixture()
	companies := []model.CategorizedCompany{
		{Industry: "Retail", Company: "A", Type: model.CompanyTypeLocal},
	}
	before := append([]model.VendorRecord(nil), records...)

	agg := New(DefaultPolicy())
	first := agg.Compute(records, companies)
	first.Distributions[0].Values[0] = 99
	first.IndustryTypes.Rows[0].Counts[0] = 99

	second := agg.Compute(records, companies)
	assert.NotEqual(t, 99.0, second.Distributions[0].Values[0])
	assert.NotEqual(t, 99, second.IndustryTypes.Rows[0].Counts[0])
	assert.Equal(t, before, records)

	assert.Equal(t, 32, second.Summary.VendorRecords)
	assert.Equal(t, 1, second.Summary.Industries)
	assert.Equal(t, 3, second.Summary.Categories)
	assert.Equal(t, 10, second.Summary.ITVendors)
}
