package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/checkbook-insights/internal/model"
)

// Rows per INSERT; keeps bind parameters well under the postgres limit.
const batchSize = 500

type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save stores both base tables under a new run and returns it.
func (r *SnapshotRepository) Save(
	ctx context.Context,
	vendorFile, categorizedFile string,
	records []model.VendorRecord,
	companies []model.CategorizedCompany,
) (*model.LoadRun, error) {
	run := model.LoadRun{
		ID:              uuid.New(),
		VendorFile:      vendorFile,
		CategorizedFile: categorizedFile,
		VendorRows:      len(records),
		CategorizedRows: len(companies),
		CreatedAt:       time.Now().UTC(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
			INSERT INTO load_runs (id, vendor_file, categorized_file, vendor_rows, categorized_rows, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, run.ID, run.VendorFile, run.CategorizedFile, run.VendorRows, run.CategorizedRows, run.CreatedAt).Error; err != nil {
			return err
		}
		for _, stmt := range vendorInserts(run.ID, records) {
			if err := tx.Exec(stmt.sql, stmt.args...).Error; err != nil {
				return err
			}
		}
		for _, stmt := range companyInserts(run.ID, companies) {
			if err := tx.Exec(stmt.sql, stmt.args...).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	return &run, nil
}

func (r *SnapshotRepository) LatestRun(ctx context.Context) (*model.LoadRun, error) {
	var run model.LoadRun
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, vendor_file, categorized_file, vendor_rows, categorized_rows, created_at
		FROM load_runs
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&run).Error; err != nil {
		return nil, err
	}
	if run.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &run, nil
}

// Load reads a run back in its original row order.
func (r *SnapshotRepository) Load(ctx context.Context, runID uuid.UUID) ([]model.VendorRecord, []model.CategorizedCompany, error) {
	var records []model.VendorRecord
	if err := r.db.WithContext(ctx).Raw(`
		SELECT contract_code, contact_name, company, role, email, phone,
			sdo_commitment, category, category_label
		FROM vendor_records
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID).Scan(&records).Error; err != nil {
		return nil, nil, err
	}

	var rows []struct {
		Industry    string
		Company     string
		CompanyType string
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT industry, company, company_type
		FROM categorized_companies
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID).Scan(&rows).Error; err != nil {
		return nil, nil, err
	}
	companies := make([]model.CategorizedCompany, 0, len(rows))
	for _, row := range rows {
		typ, err := model.ParseCompanyType(row.CompanyType)
		if err != nil {
			return nil, nil, err
		}
		companies = append(companies, model.CategorizedCompany{Industry: row.Industry, Company: row.Company, Type: typ})
	}
	return records, companies, nil
}

type statement struct {
	sql  string
	args []any
}

func vendorInserts(runID uuid.UUID, records []model.VendorRecord) []statement {
	const columns = "run_id, position, contract_code, contact_name, company, role, email, phone, sdo_commitment, category, category_label"
	return batched("vendor_records", columns, 11, len(records), func(i int) []any {
		r := records[i]
		return []any{runID, i, r.ContractCode, r.ContactName, r.Company, r.Role, r.Email, r.Phone, r.SDOCommitment, r.Category, r.CategoryLabel}
	})
}

func companyInserts(runID uuid.UUID, companies []model.CategorizedCompany) []statement {
	const columns = "run_id, position, industry, company, company_type"
	return batched("categorized_companies", columns, 5, len(companies), func(i int) []any {
		c := companies[i]
		return []any{runID, i, c.Industry, c.Company, string(c.Type)}
	})
}

func batched(table, columns string, width, n int, row func(int) []any) []statement {
	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", width), ", ") + ")"
	var result []statement
	for start := 0; start < n; start += batchSize {
		end := min(start+batchSize, n)
		values := make([]string, 0, end-start)
		args := make([]any, 0, (end-start)*width)
		for i := start; i < end; i++ {
			values = append(values, placeholder)
			args = append(args, row(i)...)
		}
		result = append(result, statement{
			sql:  fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", table, columns, strings.Join(values, ", ")),
			args: args,
		})
	}
	return result
}
