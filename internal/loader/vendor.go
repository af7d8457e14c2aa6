package loader

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/checkbook-insights/internal/model"
)

const vendorColumns = 7

const (
	colContractCode = iota
	colContactName
	colCompany
	colRole
	colEmail
	colPhone
	colCommitment
)

// DefaultSkipSheets are workbook tabs that hold reference material, not vendors.
func DefaultSkipSheets() []string {
	return []string{"Abbreviations"}
}

// DefaultMetadataPhrases mark boilerplate rows mixed into the vendor sheets.
// Matching is a case-insensitive substring test, so a real vendor whose name
// contains one of these is dropped as well.
func DefaultMetadataPhrases() []string {
	return []string{
		"Master Contract",
		"Solicitation Enabled",
		"Master MBPO",
		"Bid and Contract",
		"Category and Vendor",
		"Category Development",
		"Mass Gov",
		"OSD Help Desk",
		"N/A",
	}
}

type VendorOptions struct {
	SkipSheets      []string
	MetadataPhrases []string
}

func DefaultVendorOptions() VendorOptions {
	return VendorOptions{
		SkipSheets:      DefaultSkipSheets(),
		MetadataPhrases: DefaultMetadataPhrases(),
	}
}

// LoadVendorTable reads every category sheet of the vendor workbook and
// returns the concatenated vendor rows, sheets in workbook order.
func LoadVendorTable(path string, opts VendorOptions) ([]model.VendorRecord, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	skip := normalizeSheetNames(opts.SkipSheets)
	records := make([]model.VendorRecord, 0)

	for _, sheet := range file.GetSheetList() {
		if _, ok := skip[strings.TrimSpace(sheet)]; ok {
			continue
		}
		rows, err := file.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, &LoadError{Path: path, Sheet: sheet, Err: err}
		}
		sheetRecords, err := parseVendorSheet(sheet, rows, opts.MetadataPhrases)
		if err != nil {
			return nil, &LoadError{Path: path, Sheet: sheet, Err: err}
		}
		records = append(records, sheetRecords...)
	}
	return records, nil
}

func parseVendorSheet(sheet string, rows [][]string, phrases []string) ([]model.VendorRecord, error) {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width < vendorColumns {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrTooFewColumns, width, vendorColumns)
	}

	category := strings.TrimSpace(sheet)
	label, _ := model.CategoryLabel(category)

	result := make([]model.VendorRecord, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if blankRow(row, vendorColumns) {
			continue
		}
		company := cell(row, colCompany)
		if matchesAny(company, phrases) {
			continue
		}
		result = append(result, model.VendorRecord{
			ContractCode:  cleanText(cell(row, colContractCode)),
			ContactName:   cleanText(cell(row, colContactName)),
			Company:       cleanText(company),
			Role:          cell(row, colRole),
			Email:         cell(row, colEmail),
			Phone:         cell(row, colPhone),
			SDOCommitment: ParseCommitment(cell(row, colCommitment)),
			Category:      category,
			CategoryLabel: label,
		})
	}
	return result, nil
}
