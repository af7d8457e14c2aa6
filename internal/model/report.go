package model

import "time"

type CompanyCommitment struct {
	Company       string  `json:"company"`
	Category      string  `json:"category"`
	CategoryLabel string  `json:"category_label"`
	MaxCommitment float64 `json:"max_commitment"`
	ContractCount int     `json:"contract_count"`
}

type CategoryStats struct {
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Std      float64 `json:"std"`
	Count    int     `json:"count"`
}

type CategoryVendorCount struct {
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Vendors  int     `json:"vendors"`
	Share    float64 `json:"share"`
}

type ContractCodeCount struct {
	Code    string `json:"code"`
	Vendors int    `json:"vendors"`
}

type IndustryTypeRow struct {
	Industry string `json:"industry"`
	// Counts is aligned with IndustryTypeMatrix.Types.
	Counts []int `json:"counts"`
}

type IndustryTypeMatrix struct {
	Types []CompanyType     `json:"types"`
	Rows  []IndustryTypeRow `json:"rows"`
}

// Count returns the cell for industry row i and company type t, 0 when absent.
func (m IndustryTypeMatrix) Count(i int, t CompanyType) int {
	if i < 0 || i >= len(m.Rows) {
		return 0
	}
	for j, typ := range m.Types {
		if typ == t && j < len(m.Rows[i].Counts) {
			return m.Rows[i].Counts[j]
		}
	}
	return 0
}

type CategoryDistribution struct {
	Category   string    `json:"category"`
	Label      string    `json:"label"`
	Count      int       `json:"count"`
	Min        float64   `json:"min"`
	Q1         float64   `json:"q1"`
	Median     float64   `json:"median"`
	Q3         float64   `json:"q3"`
	Max        float64   `json:"max"`
	IQR        float64   `json:"iqr"`
	LowerFence float64   `json:"lower_fence"`
	UpperFence float64   `json:"upper_fence"`
	Outliers   []float64 `json:"outliers"`
	Values     []float64 `json:"values"`
}

type CoverageRate struct {
	Category string  `json:"category"`
	Label    string  `json:"label"`
	HasSDO   int     `json:"has_sdo"`
	NoSDO    int     `json:"no_sdo"`
	Total    int     `json:"total"`
	Rate     float64 `json:"rate"`
}

type CorrelationPoint struct {
	Category       string  `json:"category"`
	Label          string  `json:"label"`
	Vendors        int     `json:"vendors"`
	MeanCommitment float64 `json:"mean_commitment"`
}

type LinearFit struct {
	R         float64 `json:"r"`
	PValue    float64 `json:"p_value"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	N         int     `json:"n"`
}

type CorrelationView struct {
	Points []CorrelationPoint `json:"points"`
	// Fit is nil when too few categories qualify.
	Fit *LinearFit `json:"fit"`
}

type CompanyShare struct {
	Company   string  `json:"company"`
	Contracts int     `json:"contracts"`
	Share     float64 `json:"share"`
}

type ConcentrationView struct {
	Top           []CompanyShare `json:"top"`
	Rest          int            `json:"rest"`
	RestCompanies int            `json:"rest_companies"`
	Total         int            `json:"total"`
	Companies     int            `json:"companies"`
	TopShare      float64        `json:"top_share"`
}

type IndustryDensity struct {
	Industry  string `json:"industry"`
	Companies int    `json:"companies"`
}

const (
	MetricMeanSDO      = "Avg SDO"
	MetricMedianSDO    = "Median SDO"
	MetricMaxSDO       = "Max SDO"
	MetricVendorCount  = "Vendor Count"
	MetricCoverageRate = "Coverage Rate"
)

// ComparisonMetrics lists the compared metrics in display order.
func ComparisonMetrics() []string {
	return []string{MetricMeanSDO, MetricMedianSDO, MetricMaxSDO, MetricVendorCount, MetricCoverageRate}
}

type CategoryComparison struct {
	Category   string    `json:"category"`
	Label      string    `json:"label"`
	Values     []float64 `json:"values"`
	Normalized []float64 `json:"normalized"`
}

type ComparisonView struct {
	Metrics    []string             `json:"metrics"`
	Categories []CategoryComparison `json:"categories"`
}

type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

type Summary struct {
	TotalVendors       int     `json:"total_vendors"`
	MeanCommitment     float64 `json:"mean_commitment"`
	Categories         int     `json:"categories"`
	ITVendors          int     `json:"it_vendors"`
	Industries         int     `json:"industries"`
	VendorRecords      int     `json:"vendor_records"`
	CategorizedRecords int     `json:"categorized_records"`
}

// Insights bundles every derived view computed from one pair of base tables.
type Insights struct {
	Summary         Summary                `json:"summary"`
	TopCommitments  []CompanyCommitment    `json:"top_commitments"`
	CategoryStats   []CategoryStats        `json:"category_stats"`
	CategoryVendors []CategoryVendorCount  `json:"category_vendors"`
	ContractCodes   []ContractCodeCount    `json:"contract_codes"`
	IndustryTypes   IndustryTypeMatrix     `json:"industry_types"`
	Distributions   []CategoryDistribution `json:"distributions"`
	Coverage        []CoverageRate         `json:"coverage"`
	Correlation     CorrelationView        `json:"correlation"`
	Concentration   ConcentrationView      `json:"concentration"`
	IndustryDensity []IndustryDensity      `json:"industry_density"`
	Comparison      ComparisonView         `json:"comparison"`
	Histogram       []HistogramBin         `json:"histogram"`
}

// Clone returns a deep copy so callers never share backing arrays.
func (in Insights) Clone() Insights {
	out := in
	out.TopCommitments = append([]CompanyCommitment(nil), in.TopCommitments...)
	out.CategoryStats = append([]CategoryStats(nil), in.CategoryStats...)
	out.CategoryVendors = append([]CategoryVendorCount(nil), in.CategoryVendors...)
	out.ContractCodes = append([]ContractCodeCount(nil), in.ContractCodes...)
	out.IndustryTypes.Types = append([]CompanyType(nil), in.IndustryTypes.Types...)
	out.IndustryTypes.Rows = make([]IndustryTypeRow, len(in.IndustryTypes.Rows))
	for i, row := range in.IndustryTypes.Rows {
		out.IndustryTypes.Rows[i] = IndustryTypeRow{Industry: row.Industry, Counts: append([]int(nil), row.Counts...)}
	}
	out.Distributions = make([]CategoryDistribution, len(in.Distributions))
	for i, d := range in.Distributions {
		d.Outliers = append([]float64(nil), d.Outliers...)
		d.Values = append([]float64(nil), d.Values...)
		out.Distributions[i] = d
	}
	out.Coverage = append([]CoverageRate(nil), in.Coverage...)
	out.Correlation.Points = append([]CorrelationPoint(nil), in.Correlation.Points...)
	if in.Correlation.Fit != nil {
		fit := *in.Correlation.Fit
		out.Correlation.Fit = &fit
	}
	out.Concentration.Top = append([]CompanyShare(nil), in.Concentration.Top...)
	out.IndustryDensity = append([]IndustryDensity(nil), in.IndustryDensity...)
	out.Comparison.Metrics = append([]string(nil), in.Comparison.Metrics...)
	out.Comparison.Categories = make([]CategoryComparison, len(in.Comparison.Categories))
	for i, c := range in.Comparison.Categories {
		c.Values = append([]float64(nil), c.Values...)
		c.Normalized = append([]float64(nil), c.Normalized...)
		out.Comparison.Categories[i] = c
	}
	out.Histogram = append([]HistogramBin(nil), in.Histogram...)
	return out
}

// ReportDocument is everything the static report needs.
type ReportDocument struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Insights    Insights
	// Charts maps chart name to PNG bytes.
	Charts map[string][]byte
}
