package analysis

import (
	"sort"
	"unicode/utf8"

	"github.com/nurpe/checkbook-insights/internal/model"
)

func distinctBy(records []model.VendorRecord, key, value func(model.VendorRecord) string, keep func(model.VendorRecord) bool) map[string]stringSet {
	groups := map[string]stringSet{}
	for _, r := range records {
		if keep != nil && !keep(r) {
			continue
		}
		k := key(r)
		if groups[k] == nil {
			groups[k] = stringSet{}
		}
		groups[k].add(value(r))
	}
	return groups
}

func byCategory(r model.VendorRecord) string     { return r.Category }
func byCompany(r model.VendorRecord) string      { return r.Company }
func byContractCode(r model.VendorRecord) string { return r.ContractCode }

// CategoryVendorCounts counts distinct companies per category, largest first,
// with each category's share of the summed counts.
func (a *Aggregator) CategoryVendorCounts(records []model.VendorRecord) []model.CategoryVendorCount {
	groups := distinctBy(records, byCategory, byCompany, nil)

	total := 0
	result := make([]model.CategoryVendorCount, 0, len(groups))
	for _, category := range sortedKeys(groups) {
		count := len(groups[category])
		total += count
		result = append(result, model.CategoryVendorCount{
			Category: category,
			Label:    model.DisplayCategory(category),
			Vendors:  count,
		})
	}
	for i := range result {
		if total > 0 {
			result[i].Share = float64(result[i].Vendors) / float64(total)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Vendors > result[j].Vendors
	})
	return result
}

// ContractCodeVendorCounts counts distinct companies per contract code.
// Codes longer than MaxContractCodeLen characters are corrupted cells and are
// skipped.
func (a *Aggregator) ContractCodeVendorCounts(records []model.VendorRecord, n int) []model.ContractCodeCount {
	groups := distinctBy(records, byContractCode, byCompany, func(r model.VendorRecord) bool {
		return utf8.RuneCountInString(r.ContractCode) <= a.policy.MaxContractCodeLen
	})

	result := make([]model.ContractCodeCount, 0, len(groups))
	for _, code := range sortedKeys(groups) {
		result = append(result, model.ContractCodeCount{Code: code, Vendors: len(groups[code])})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Vendors > result[j].Vendors
	})
	if n > 0 && len(result) > n {
		result = result[:n]
	}
	return result
}

// CoverageRates splits every category's rows into those with a numeric
// commitment and those without. Zero and negative commitments count as data.
func (a *Aggregator) CoverageRates(records []model.VendorRecord) []model.CoverageRate {
	groups := map[string]*model.CoverageRate{}
	for _, r := range records {
		row, ok := groups[r.Category]
		if !ok {
			row = &model.CoverageRate{Category: r.Category, Label: model.DisplayCategory(r.Category)}
			groups[r.Category] = row
		}
		row.Total++
		if r.HasCommitment() {
			row.HasSDO++
		} else {
			row.NoSDO++
		}
	}

	result := make([]model.CoverageRate, 0, len(groups))
	for _, category := range sortedKeys(groups) {
		row := *groups[category]
		row.Rate = float64(row.HasSDO) / float64(row.Total)
		result = append(result, row)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Rate < result[j].Rate
	})
	return result
}

// ITConcentration measures how many distinct contract codes each IT company
// holds and how much of the total the leading companies account for.
func (a *Aggregator) ITConcentration(records []model.VendorRecord) model.ConcentrationView {
	groups := distinctBy(records, byCompany, byContractCode, func(r model.VendorRecord) bool {
		return containsString(a.policy.ITCategories, r.Category)
	})

	all := make([]model.CompanyShare, 0, len(groups))
	total := 0
	for _, company := range sortedKeys(groups) {
		count := len(groups[company])
		total += count
		all = append(all, model.CompanyShare{Company: company, Contracts: count})
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Contracts > all[j].Contracts
	})

	n := a.policy.TopConcentration
	if n > len(all) {
		n = len(all)
	}
	top := all[:n]
	topSum := 0
	for i := range top {
		topSum += top[i].Contracts
		if total > 0 {
			top[i].Share = float64(top[i].Contracts) / float64(total)
		}
	}

	view := model.ConcentrationView{
		Top:           top,
		Rest:          total - topSum,
		RestCompanies: len(all) - n,
		Total:         total,
		Companies:     len(all),
	}
	if total > 0 {
		view.TopShare = float64(topSum) / float64(total)
	}
	return view
}
