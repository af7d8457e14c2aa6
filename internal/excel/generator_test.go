package excel

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/checkbook-insights/internal/analysis"
	"github.com/nurpe/checkbook-insights/internal/model"
)

func TestGenerate(t *testing.T) {
	a, b := 0.4, 0.8
	records := []model.VendorRecord{
		{ContractCode: "ITE1", Company: "Acme", SDOCommitment: &a, Category: "ITE"},
		{ContractCode: "ITS1", Company: "Bolt", SDOCommitment: &b, Category: "ITS"},
		{ContractCode: "ITS2", Company: "Bolt", Category: "ITS"},
	}
	companies := []model.CategorizedCompany{
		{Industry: "Finance", Company: "A", Type: model.CompanyTypeNationalAndLocal},
	}
	insights := analysis.New(analysis.DefaultPolicy()).Compute(records, companies)

	content, err := NewGenerator().Generate(insights)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	assert.Equal(t, summarySheet, sheets[0])
	assert.Len(t, sheets, 14)
	for _, name := range sheets {
		assert.LessOrEqual(t, utf8.RuneCountInString(name), maxSheetName)
	}

	value, err := file.GetCellValue(summarySheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "2", value)

	top, err := file.GetRows("BQ1 Top IT Companies")
	require.NoError(t, err)
	require.Len(t, top, 5)
	assert.Equal(t, "Bolt", top[3][0])
	assert.Equal(t, "Acme", top[4][0])
}

func TestBuildSheetName(t *testing.T) {
	used := map[string]struct{}{}
	long := strings.Repeat("x", 40)

	first := buildSheetName(long, used)
	used[first] = struct{}{}
	second := buildSheetName(long, used)

	assert.Len(t, first, maxSheetName)
	assert.Len(t, second, maxSheetName)
	assert.True(t, strings.HasSuffix(second, "-2"))
	assert.Equal(t, "a-b-c", buildSheetName("a/b:c", map[string]struct{}{}))
	assert.Equal(t, "Sheet", sanitizeSheetName("  "))
}
