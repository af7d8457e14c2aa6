package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/checkbook-insights/internal/analysis"
	"github.com/nurpe/checkbook-insights/internal/model"
)

const (
	summarySheet  = "Summary"
	maxSheetName  = 31
	tableStartRow = 3
	// built-in excel number format "0.00%"
	percentNumFmt = 10
)

type sheet struct {
	name    string
	title   string
	headers []string
	// percent lists zero-based columns holding fractions.
	percent []int
	rows    [][]any
}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes a summary sheet plus one sheet per view.
func (g *Generator) Generate(insights model.Insights) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	headerStyle, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	percentStyle, err := file.NewStyle(&excelize.Style{NumFmt: percentNumFmt})
	if err != nil {
		return nil, err
	}
	styles := tableStyles{header: headerStyle, percent: percentStyle}

	if err := writeTable(file, summarySheet, summaryTable(insights.Summary), styles); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, s := range viewTables(insights) {
		name := buildSheetName(s.name, usedNames)
		usedNames[name] = struct{}{}

		if _, err := file.NewSheet(name); err != nil {
			return nil, err
		}
		if err := writeTable(file, name, s, styles); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type tableStyles struct {
	header  int
	percent int
}

func writeTable(file *excelize.File, name string, s sheet, styles tableStyles) error {
	set := func(cell string, value any) error {
		return file.SetCellValue(name, cell, value)
	}
	if err := set("A1", s.title); err != nil {
		return err
	}
	_ = file.SetCellStyle(name, "A1", "A1", styles.header)

	header := make([]any, len(s.headers))
	for i, h := range s.headers {
		header[i] = h
	}
	start, err := excelize.CoordinatesToCellName(1, tableStartRow)
	if err != nil {
		return err
	}
	if err := file.SetSheetRow(name, start, &header); err != nil {
		return err
	}
	end, _ := excelize.CoordinatesToCellName(len(s.headers), tableStartRow)
	_ = file.SetCellStyle(name, start, end, styles.header)

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, tableStartRow+1+i)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}

	if len(s.rows) > 0 {
		for _, col := range s.percent {
			from, _ := excelize.CoordinatesToCellName(col+1, tableStartRow+1)
			to, _ := excelize.CoordinatesToCellName(col+1, tableStartRow+len(s.rows))
			_ = file.SetCellStyle(name, from, to, styles.percent)
		}
	}

	first, _ := excelize.ColumnNumberToName(1)
	_ = file.SetColWidth(name, first, first, 45)
	if len(s.headers) > 1 {
		second, _ := excelize.ColumnNumberToName(2)
		last, _ := excelize.ColumnNumberToName(len(s.headers))
		_ = file.SetColWidth(name, second, last, 16)
	}
	return nil
}

func summaryTable(s model.Summary) sheet {
	return sheet{
		name:    summarySheet,
		title:   "SDO Vendor & Company Analysis",
		headers: []string{"Metric", "Value"},
		rows: [][]any{
			{"Total vendors", s.TotalVendors},
			{"Average SDO commitment", s.MeanCommitment},
			{"Procurement categories", s.Categories},
			{"IT sector vendors", s.ITVendors},
			{"Industries", s.Industries},
			{"Vendor records", s.VendorRecords},
			{"Categorized company records", s.CategorizedRecords},
		},
	}
}

func viewTables(in model.Insights) []sheet {
	title := func(name string) string {
		info, _ := model.LookupView(name)
		return info.Title
	}
	var sheets []sheet

	bq1 := sheet{name: "BQ1 Top IT Companies", title: title(model.ViewBQ1),
		headers: []string{"Company", "Category", "Category name", "Max SDO", "Contracts"}, percent: []int{3}}
	for _, r := range in.TopCommitments {
		bq1.rows = append(bq1.rows, []any{r.Company, r.Category, r.CategoryLabel, r.MaxCommitment, r.ContractCount})
	}
	sheets = append(sheets, bq1)

	bq2 := sheet{name: "BQ2 SDO by Category", title: title(model.ViewBQ2),
		headers: []string{"Category", "Code", "Mean", "Median", "Std", "Rows"}, percent: []int{2, 3, 4}}
	for _, r := range in.CategoryStats {
		bq2.rows = append(bq2.rows, []any{r.Label, r.Category, r.Mean, r.Median, r.Std, r.Count})
	}
	sheets = append(sheets, bq2)

	bq3 := sheet{name: "BQ3 Vendor Distribution", title: title(model.ViewBQ3),
		headers: []string{"Category", "Code", "Vendors", "Share"}, percent: []int{3}}
	for _, r := range in.CategoryVendors {
		bq3.rows = append(bq3.rows, []any{r.Label, r.Category, r.Vendors, r.Share})
	}
	sheets = append(sheets, bq3)

	bq4 := sheet{name: "BQ4 Contract Codes", title: title(model.ViewBQ4),
		headers: []string{"Contract code", "Vendors"}}
	for _, r := range in.ContractCodes {
		bq4.rows = append(bq4.rows, []any{r.Code, r.Vendors})
	}
	sheets = append(sheets, bq4)

	sheets = append(sheets,
		matrixSheet("BQ5 National vs Local", title(model.ViewBQ5), analysis.SortedByType(in.IndustryTypes, model.CompanyTypeNationalAndLocal)),
	)

	bq6 := sheet{name: "BQ6 Outliers", title: title(model.ViewBQ6),
		headers: []string{"Category", "Rows", "Min", "Q1", "Median", "Q3", "Max", "IQR", "Lower fence", "Upper fence", "Outliers"},
		percent: []int{2, 3, 4, 5, 6, 7, 8, 9}}
	for _, r := range in.Distributions {
		bq6.rows = append(bq6.rows, []any{r.Label, r.Count, r.Min, r.Q1, r.Median, r.Q3, r.Max, r.IQR, r.LowerFence, r.UpperFence, len(r.Outliers)})
	}
	sheets = append(sheets, bq6)

	bq7 := sheet{name: "BQ7 SDO Coverage", title: title(model.ViewBQ7),
		headers: []string{"Category", "Has SDO", "No SDO", "Total", "Rate"}, percent: []int{4}}
	for _, r := range in.Coverage {
		bq7.rows = append(bq7.rows, []any{r.Label, r.HasSDO, r.NoSDO, r.Total, r.Rate})
	}
	sheets = append(sheets, bq7)

	bq8 := sheet{name: "BQ8 Vendors vs SDO", title: title(model.ViewBQ8),
		headers: []string{"Category", "Vendors", "Mean SDO"}, percent: []int{2}}
	for _, r := range in.Correlation.Points {
		bq8.rows = append(bq8.rows, []any{r.Label, r.Vendors, r.MeanCommitment})
	}
	if fit := in.Correlation.Fit; fit != nil {
		bq8.rows = append(bq8.rows,
			[]any{},
			[]any{"Pearson r", fit.R},
			[]any{"p-value", fit.PValue},
			[]any{"Slope", fit.Slope},
			[]any{"Intercept", fit.Intercept},
		)
	}
	sheets = append(sheets, bq8)

	sheets = append(sheets, matrixSheet("BQ9 Industry Diversity", title(model.ViewBQ9), in.IndustryTypes))

	bq10 := sheet{name: "BQ10 IT Concentration", title: title(model.ViewBQ10),
		headers: []string{"Company", "Contract codes", "Share"}, percent: []int{2}}
	for _, r := range in.Concentration.Top {
		bq10.rows = append(bq10.rows, []any{r.Company, r.Contracts, r.Share})
	}
	if in.Concentration.RestCompanies > 0 {
		bq10.rows = append(bq10.rows, []any{
			fmt.Sprintf("Others (%d companies)", in.Concentration.RestCompanies),
			in.Concentration.Rest,
			1 - in.Concentration.TopShare,
		})
	}
	sheets = append(sheets, bq10)

	bq11 := sheet{name: "BQ11 Company Density", title: title(model.ViewBQ11),
		headers: []string{"Industry", "Companies"}}
	for _, r := range in.IndustryDensity {
		bq11.rows = append(bq11.rows, []any{r.Industry, r.Companies})
	}
	sheets = append(sheets, bq11)

	hist := sheet{name: "SDO Histogram", title: title(model.ViewHistogram),
		headers: []string{"From", "To", "Vendors"}, percent: []int{0, 1}}
	for _, b := range in.Histogram {
		hist.rows = append(hist.rows, []any{b.Lower, b.Upper, b.Count})
	}
	sheets = append(sheets, hist)

	cmp := sheet{name: "IT Comparison", title: title(model.ViewComparison),
		headers: append([]string{"Category"}, in.Comparison.Metrics...)}
	for _, c := range in.Comparison.Categories {
		row := []any{c.Label}
		for _, v := range c.Values {
			row = append(row, v)
		}
		cmp.rows = append(cmp.rows, row)
	}
	sheets = append(sheets, cmp)

	return sheets
}

func matrixSheet(name, title string, m model.IndustryTypeMatrix) sheet {
	s := sheet{name: name, title: title, headers: []string{"Industry"}}
	for _, t := range m.Types {
		s.headers = append(s.headers, string(t))
	}
	for i, r := range m.Rows {
		row := []any{r.Industry}
		for _, t := range m.Types {
			row = append(row, m.Count(i, t))
		}
		s.rows = append(s.rows, row)
	}
	return s
}

func buildSheetName(name string, used map[string]struct{}) string {
	base := sanitizeSheetName(name)
	if runes := []rune(base); len(runes) > maxSheetName {
		base = string(runes[:maxSheetName])
	}

	nameCandidate := base
	counter := 2
	for {
		if _, exists := used[nameCandidate]; !exists {
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := []rune(base)
		if len(trimmed)+len(suffix) > maxSheetName {
			trimmed = trimmed[:maxSheetName-len(suffix)]
		}
		nameCandidate = string(trimmed) + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Sheet"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = replacer.Replace(value)
	value = strings.TrimSpace(value)
	if value == "" {
		return "Sheet"
	}
	return value
}
