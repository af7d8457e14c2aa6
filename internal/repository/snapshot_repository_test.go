package repository

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/checkbook-insights/internal/model"
)

func TestVendorInsertsBatches(t *testing.T) {
	runID := uuid.New()
	v := 0.5
	records := make([]model.VendorRecord, batchSize+3)
	records[0] = model.VendorRecord{Company: "Acme", SDOCommitment: &v, Category: "ITE"}

	stmts := vendorInserts(runID, records)
	require.Len(t, stmts, 2)
	assert.Len(t, stmts[0].args, batchSize*11)
	assert.Len(t, stmts[1].args, 3*11)
	assert.Equal(t, batchSize, strings.Count(stmts[0].sql, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"))
	assert.True(t, strings.HasPrefix(stmts[0].sql, "INSERT INTO vendor_records (run_id, position,"))

	assert.Equal(t, runID, stmts[0].args[0])
	assert.Equal(t, 0, stmts[0].args[1])
	assert.Equal(t, "Acme", stmts[0].args[4])
	assert.Equal(t, &v, stmts[0].args[8])
	assert.Equal(t, batchSize, stmts[1].args[1])
}

func TestCompanyInserts(t *testing.T) {
	companies := []model.CategorizedCompany{
		{Industry: "Finance", Company: "A", Type: model.CompanyTypeSgcTarget},
	}
	stmts := companyInserts(uuid.New(), companies)
	require.Len(t, stmts, 1)
	assert.Equal(t, "SGC Target", stmts[0].args[4])
	assert.Contains(t, stmts[0].sql, "VALUES (?, ?, ?, ?, ?)")
}

func TestBatchedEmpty(t *testing.T) {
	assert.Empty(t, companyInserts(uuid.New(), nil))
}
