package loader

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/checkbook-insights/internal/model"
)

// The first two rows of an industry sheet are the bucket caption and the
// column header.
const categorizedHeaderRows = 2

var typeColumns = []struct {
	index int
	typ   model.CompanyType
}{
	{1, model.CompanyTypeNationalAndLocal},
	{2, model.CompanyTypeLocal},
	{3, model.CompanyTypeSgcTarget},
}

// LoadCategorizedTable expands the three company-type columns of every
// industry sheet into one row per (industry, company, type).
func LoadCategorizedTable(path string) ([]model.CategorizedCompany, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	result := make([]model.CategorizedCompany, 0)
	for _, sheet := range file.GetSheetList() {
		rows, err := file.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, &LoadError{Path: path, Sheet: sheet, Err: err}
		}
		result = append(result, parseCategorizedSheet(sheet, rows)...)
	}
	return result, nil
}

func parseCategorizedSheet(sheet string, rows [][]string) []model.CategorizedCompany {
	industry := strings.TrimSpace(sheet)
	result := make([]model.CategorizedCompany, 0)
	if len(rows) <= categorizedHeaderRows {
		return result
	}
	for _, col := range typeColumns {
		for _, row := range rows[categorizedHeaderRows:] {
			company := strings.TrimSpace(cell(row, col.index))
			if company == "" || company == "nan" {
				continue
			}
			result = append(result, model.CategorizedCompany{
				Industry: industry,
				Company:  company,
				Type:     col.typ,
			})
		}
	}
	return result
}
