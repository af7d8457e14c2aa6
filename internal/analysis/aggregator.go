package analysis

import "github.com/nurpe/checkbook-insights/internal/model"

// Aggregator derives the business-question views from the two base tables.
// It holds no state besides its policy; every call returns fresh slices.
type Aggregator struct {
	policy Policy
}

func New(policy Policy) *Aggregator {
	return &Aggregator{policy: policy}
}

func (a *Aggregator) Policy() Policy {
	p := a.policy
	p.ITCategories = append([]string(nil), a.policy.ITCategories...)
	p.ComparisonCategories = append([]string(nil), a.policy.ComparisonCategories...)
	return p
}

// Compute runs every view with the policy defaults.
func (a *Aggregator) Compute(records []model.VendorRecord, companies []model.CategorizedCompany) model.Insights {
	return model.Insights{
		Summary:         a.Summary(records, companies),
		TopCommitments:  a.TopCommitments(records, a.policy.ITCategories, a.policy.TopCompanies),
		CategoryStats:   a.CategoryCommitmentStats(records),
		CategoryVendors: a.CategoryVendorCounts(records),
		ContractCodes:   a.ContractCodeVendorCounts(records, a.policy.TopContractCodes),
		IndustryTypes:   a.IndustryTypeMatrix(companies),
		Distributions:   a.CommitmentOutliers(records),
		Coverage:        a.CoverageRates(records),
		Correlation:     a.VendorCommitmentCorrelation(records),
		Concentration:   a.ITConcentration(records),
		IndustryDensity: a.IndustryCompanyDensity(companies),
		Comparison:      a.CategoryComparison(records),
		Histogram:       a.CommitmentHistogram(records),
	}
}

// Summary computes the headline figures shown above every surface.
func (a *Aggregator) Summary(records []model.VendorRecord, companies []model.CategorizedCompany) model.Summary {
	vendors := stringSet{}
	itVendors := stringSet{}
	categories := stringSet{}
	var capped []float64
	for _, r := range records {
		vendors.add(r.Company)
		categories.add(r.Category)
		if containsString(a.policy.ITCategories, r.Category) {
			itVendors.add(r.Company)
		}
		if eligible(r) {
			capped = append(capped, Cap(*r.SDOCommitment, a.policy.CommitmentCap))
		}
	}
	industries := stringSet{}
	for _, c := range companies {
		industries.add(c.Industry)
	}

	return model.Summary{
		TotalVendors:       len(vendors),
		MeanCommitment:     mean(capped),
		Categories:         len(categories),
		ITVendors:          len(itVendors),
		Industries:         len(industries),
		VendorRecords:      len(records),
		CategorizedRecords: len(companies),
	}
}
