package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/nurpe/checkbook-insights/internal/model"
)

// TopCommitments ranks (company, category) pairs by their best capped
// commitment within the given categories. Ties keep first-appearance order.
// An empty category list means every category.
func (a *Aggregator) TopCommitments(records []model.VendorRecord, categories []string, n int) []model.CompanyCommitment {
	type key struct{ company, category string }
	type group struct {
		row       model.CompanyCommitment
		contracts stringSet
	}

	index := map[key]int{}
	groups := make([]*group, 0)
	for _, r := range records {
		if !eligible(r) {
			continue
		}
		if len(categories) > 0 && !containsString(categories, r.Category) {
			continue
		}
		value := Cap(*r.SDOCommitment, a.policy.CommitmentCap)
		k := key{r.Company, r.Category}
		pos, ok := index[k]
		if !ok {
			groups = append(groups, &group{
				row: model.CompanyCommitment{
					Company:       r.Company,
					Category:      r.Category,
					CategoryLabel: r.DisplayCategory(),
					MaxCommitment: value,
				},
				contracts: stringSet{},
			})
			pos = len(groups) - 1
			index[k] = pos
		}
		g := groups[pos]
		if value > g.row.MaxCommitment {
			g.row.MaxCommitment = value
		}
		g.contracts.add(r.ContractCode)
	}

	result := make([]model.CompanyCommitment, 0, len(groups))
	for _, g := range groups {
		g.row.ContractCount = len(g.contracts)
		result = append(result, g.row)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].MaxCommitment > result[j].MaxCommitment
	})
	if n > 0 && len(result) > n {
		result = result[:n]
	}
	return result
}

// cappedByCategory groups capped eligible commitments by category.
func (a *Aggregator) cappedByCategory(records []model.VendorRecord) map[string][]float64 {
	groups := map[string][]float64{}
	for _, r := range records {
		if !eligible(r) {
			continue
		}
		groups[r.Category] = append(groups[r.Category], Cap(*r.SDOCommitment, a.policy.CommitmentCap))
	}
	return groups
}

// CategoryCommitmentStats returns mean, median and spread of capped
// commitments per category, ascending by mean.
func (a *Aggregator) CategoryCommitmentStats(records []model.VendorRecord) []model.CategoryStats {
	groups := a.cappedByCategory(records)
	result := make([]model.CategoryStats, 0, len(groups))
	for _, category := range sortedKeys(groups) {
		values := groups[category]
		row := model.CategoryStats{
			Category: category,
			Label:    model.DisplayCategory(category),
			Mean:     mean(values),
			Median:   median(values),
			Count:    len(values),
		}
		if len(values) > 1 {
			row.Std = stat.StdDev(values, nil)
		}
		result = append(result, row)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Mean < result[j].Mean
	})
	return result
}

// CommitmentOutliers builds a box-plot summary for every category with at
// least MinCategoryRows eligible rows and flags values beyond the IQR fences.
// Categories come ordered by median, highest first.
func (a *Aggregator) CommitmentOutliers(records []model.VendorRecord) []model.CategoryDistribution {
	groups := a.cappedByCategory(records)
	result := make([]model.CategoryDistribution, 0, len(groups))
	for _, category := range sortedKeys(groups) {
		values := append([]float64(nil), groups[category]...)
		if len(values) < a.policy.MinCategoryRows {
			continue
		}
		sort.Float64s(values)

		q1 := quantile(values, 0.25)
		q3 := quantile(values, 0.75)
		iqr := q3 - q1
		lower := q1 - a.policy.OutlierIQRFactor*iqr
		upper := q3 + a.policy.OutlierIQRFactor*iqr

		outliers := make([]float64, 0)
		for _, v := range values {
			if v < lower || v > upper {
				outliers = append(outliers, v)
			}
		}

		result = append(result, model.CategoryDistribution{
			Category:   category,
			Label:      model.DisplayCategory(category),
			Count:      len(values),
			Min:        values[0],
			Q1:         q1,
			Median:     quantile(values, 0.5),
			Q3:         q3,
			Max:        values[len(values)-1],
			IQR:        iqr,
			LowerFence: lower,
			UpperFence: upper,
			Outliers:   outliers,
			Values:     values,
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Median > result[j].Median
	})
	return result
}

// VendorCommitmentCorrelation pairs each category's distinct vendor count with
// its mean commitment. Rows whose raw commitment exceeds the cap are left out
// entirely rather than capped. Fit stays nil below MinCorrelationCategories
// points or when either axis has no variance.
func (a *Aggregator) VendorCommitmentCorrelation(records []model.VendorRecord) model.CorrelationView {
	values := map[string][]float64{}
	vendors := map[string]stringSet{}
	for _, r := range records {
		if !eligible(r) || *r.SDOCommitment > a.policy.CommitmentCap {
			continue
		}
		values[r.Category] = append(values[r.Category], *r.SDOCommitment)
		if vendors[r.Category] == nil {
			vendors[r.Category] = stringSet{}
		}
		vendors[r.Category].add(r.Company)
	}

	points := make([]model.CorrelationPoint, 0, len(values))
	for _, category := range sortedKeys(values) {
		points = append(points, model.CorrelationPoint{
			Category:       category,
			Label:          model.DisplayCategory(category),
			Vendors:        len(vendors[category]),
			MeanCommitment: mean(values[category]),
		})
	}

	view := model.CorrelationView{Points: points}
	if len(points) < a.policy.MinCorrelationCategories {
		return view
	}
	view.Fit = fitLine(points)
	return view
}

func fitLine(points []model.CorrelationPoint) *model.LinearFit {
	x := make([]float64, len(points))
	y := make([]float64, len(points))
	for i, p := range points {
		x[i] = float64(p.Vendors)
		y[i] = p.MeanCommitment
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return nil
	}

	r := stat.Correlation(x, y, nil)
	intercept, slope := stat.LinearRegression(x, y, nil, false)
	return &model.LinearFit{
		R:         r,
		PValue:    correlationPValue(r, len(points)),
		Slope:     slope,
		Intercept: intercept,
		N:         len(points),
	}
}

// correlationPValue is the two-sided p-value of Pearson's r under the null of
// no correlation.
func correlationPValue(r float64, n int) float64 {
	df := float64(n - 2)
	if df <= 0 {
		return math.NaN()
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.Survival(math.Abs(t))
}

// CategoryComparison scores the comparison categories on five metrics and
// normalizes each metric by its maximum across them, so the best category
// reads 1.0 on every axis.
func (a *Aggregator) CategoryComparison(records []model.VendorRecord) model.ComparisonView {
	metrics := model.ComparisonMetrics()
	categories := a.policy.ComparisonCategories

	rows := make([]model.CategoryComparison, 0, len(categories))
	for _, category := range categories {
		var capped []float64
		total, withData := 0, 0
		for _, r := range records {
			if r.Category != category {
				continue
			}
			total++
			if r.SDOCommitment != nil {
				withData++
			}
			if eligible(r) {
				capped = append(capped, Cap(*r.SDOCommitment, a.policy.CommitmentCap))
			}
		}

		coverage := 0.0
		if total > 0 {
			coverage = float64(withData) / float64(total)
		}
		med := 0.0
		if len(capped) > 0 {
			med = median(capped)
		}
		rows = append(rows, model.CategoryComparison{
			Category: category,
			Label:    model.DisplayCategory(category),
			Values: []float64{
				mean(capped),
				med,
				maxOf(capped),
				float64(len(capped)),
				coverage,
			},
		})
	}

	for m := range metrics {
		best := 0.0
		for _, row := range rows {
			if row.Values[m] > best {
				best = row.Values[m]
			}
		}
		for i := range rows {
			if rows[i].Normalized == nil {
				rows[i].Normalized = make([]float64, len(metrics))
			}
			if best > 0 {
				rows[i].Normalized[m] = rows[i].Values[m] / best
			}
		}
	}

	return model.ComparisonView{Metrics: metrics, Categories: rows}
}

// CommitmentHistogram bins capped eligible commitments into equal-width bins
// spanning [0, cap]. The cap itself lands in the last bin.
func (a *Aggregator) CommitmentHistogram(records []model.VendorRecord) []model.HistogramBin {
	bins := a.policy.HistogramBins
	limit := a.policy.CommitmentCap
	width := limit / float64(bins)

	result := make([]model.HistogramBin, bins)
	for i := range result {
		result[i].Lower = float64(i) * width
		result[i].Upper = float64(i+1) * width
	}
	result[bins-1].Upper = limit

	for _, r := range records {
		if !eligible(r) {
			continue
		}
		idx := int(Cap(*r.SDOCommitment, limit) / width)
		if idx >= bins {
			idx = bins - 1
		}
		result[idx].Count++
	}
	return result
}

// mean is 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}
