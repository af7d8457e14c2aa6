package analysis

import (
	"sort"

	"github.com/nurpe/checkbook-insights/internal/model"
)

// IndustryTypeMatrix cross-tabulates categorized companies by industry and
// company type. Every type column is present; absent pairs are zero.
func (a *Aggregator) IndustryTypeMatrix(companies []model.CategorizedCompany) model.IndustryTypeMatrix {
	types := model.CompanyTypes()
	column := make(map[model.CompanyType]int, len(types))
	for i, t := range types {
		column[t] = i
	}

	counts := map[string][]int{}
	for _, c := range companies {
		row, ok := counts[c.Industry]
		if !ok {
			row = make([]int, len(types))
			counts[c.Industry] = row
		}
		if idx, ok := column[c.Type]; ok {
			row[idx]++
		}
	}

	rows := make([]model.IndustryTypeRow, 0, len(counts))
	for _, industry := range sortedKeys(counts) {
		rows = append(rows, model.IndustryTypeRow{Industry: industry, Counts: counts[industry]})
	}
	return model.IndustryTypeMatrix{Types: types, Rows: rows}
}

// SortedByType returns a copy of m with industries ascending by the t column.
func SortedByType(m model.IndustryTypeMatrix, t model.CompanyType) model.IndustryTypeMatrix {
	out := model.IndustryTypeMatrix{
		Types: append([]model.CompanyType(nil), m.Types...),
		Rows:  make([]model.IndustryTypeRow, len(m.Rows)),
	}
	for i, row := range m.Rows {
		out.Rows[i] = model.IndustryTypeRow{Industry: row.Industry, Counts: append([]int(nil), row.Counts...)}
	}
	col := -1
	for i, typ := range out.Types {
		if typ == t {
			col = i
		}
	}
	if col < 0 {
		return out
	}
	sort.SliceStable(out.Rows, func(i, j int) bool {
		return out.Rows[i].Counts[col] < out.Rows[j].Counts[col]
	})
	return out
}

// IndustryCompanyDensity counts distinct companies per industry, smallest first.
func (a *Aggregator) IndustryCompanyDensity(companies []model.CategorizedCompany) []model.IndustryDensity {
	groups := map[string]stringSet{}
	for _, c := range companies {
		if groups[c.Industry] == nil {
			groups[c.Industry] = stringSet{}
		}
		groups[c.Industry].add(c.Company)
	}

	result := make([]model.IndustryDensity, 0, len(groups))
	for _, industry := range sortedKeys(groups) {
		result = append(result, model.IndustryDensity{Industry: industry, Companies: len(groups[industry])})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Companies < result[j].Companies
	})
	return result
}
