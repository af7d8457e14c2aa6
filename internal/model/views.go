package model

const (
	ViewSummary    = "summary"
	ViewBQ1        = "bq1"
	ViewBQ2        = "bq2"
	ViewBQ3        = "bq3"
	ViewBQ4        = "bq4"
	ViewBQ5        = "bq5"
	ViewBQ6        = "bq6"
	ViewBQ7        = "bq7"
	ViewBQ8        = "bq8"
	ViewBQ9        = "bq9"
	ViewBQ10       = "bq10"
	ViewBQ11       = "bq11"
	ViewHistogram  = "histogram"
	ViewComparison = "comparison"
)

type Tab string

const (
	TabIT       Tab = "IT Sector SDO"
	TabCross    Tab = "Cross-Category"
	TabCoverage Tab = "Vendor Coverage"
	TabIndustry Tab = "Industry Analysis"
)

func Tabs() []Tab {
	return []Tab{TabIT, TabCross, TabCoverage, TabIndustry}
}

// ViewInfo describes one chartable view for the presentation surfaces.
type ViewInfo struct {
	Name     string
	Title    string
	Question string
	Tab      Tab
	// Report marks views that get a section in the static report.
	Report bool
}

func Views() []ViewInfo {
	return []ViewInfo{
		{ViewBQ1, "BQ1: Top 15 IT Companies by SDO Commitment", "Which IT companies commit the most to supplier diversity?", TabIT, true},
		{ViewBQ2, "BQ2: Average SDO Commitment by Procurement Category", "How does average SDO commitment vary across procurement categories?", TabCross, true},
		{ViewBQ3, "BQ3: Vendor Distribution Across Procurement Categories", "How are vendors distributed across procurement categories?", TabCoverage, true},
		{ViewBQ4, "BQ4: Top Contract Sub-Categories by Vendor Count", "Which contract sub-categories have the most vendors?", TabCoverage, true},
		{ViewBQ5, "BQ5: National vs Local Company Presence by Industry", "Which industries have the strongest national and local presence?", TabIndustry, true},
		{ViewBQ6, "BQ6: SDO Commitment Distribution & Outliers by Category", "Which categories show unusual SDO commitments?", TabCross, true},
		{ViewBQ7, "BQ7: SDO Coverage - Vendors with Valid SDO vs Missing", "What share of vendors in each category report an SDO commitment?", TabCoverage, true},
		{ViewBQ8, "BQ8: Vendor Count vs Average SDO Commitment", "Do categories with more vendors commit more to supplier diversity?", TabCross, true},
		{ViewBQ9, "BQ9: Industry Diversity - National vs Local vs SGC Target", "How diverse is each industry across company types?", TabIndustry, true},
		{ViewBQ10, "BQ10: IT Sector Vendor Concentration", "How concentrated are IT contracts among vendors?", TabIT, true},
		{ViewBQ11, "BQ11: Company Density by Industry Sector", "Which industry sectors have the fewest categorized companies?", TabIndustry, true},
		{ViewHistogram, "Overall SDO Commitment Distribution (All Categories)", "", TabCross, false},
		{ViewComparison, "IT Sub-Category Comparison", "", TabIT, false},
	}
}

func LookupView(name string) (ViewInfo, bool) {
	for _, v := range Views() {
		if v.Name == name {
			return v, true
		}
	}
	return ViewInfo{}, false
}

// BQ1Variant names the chart for one IT sub-category filter, e.g. "bq1-ITS".
func BQ1Variant(category string) string {
	if category == "" || category == "All" {
		return ViewBQ1
	}
	return ViewBQ1 + "-" + category
}
