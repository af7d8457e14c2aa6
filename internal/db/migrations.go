package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS load_runs (
		id UUID PRIMARY KEY,
		vendor_file TEXT NOT NULL,
		categorized_file TEXT NOT NULL,
		vendor_rows INTEGER NOT NULL,
		categorized_rows INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS vendor_records (
		run_id UUID NOT NULL REFERENCES load_runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		contract_code TEXT NOT NULL,
		contact_name TEXT NOT NULL,
		company TEXT NOT NULL,
		role TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		sdo_commitment DOUBLE PRECISION,
		category TEXT NOT NULL,
		category_label TEXT NOT NULL,
		PRIMARY KEY (run_id, position)
	);`,
	`CREATE TABLE IF NOT EXISTS categorized_companies (
		run_id UUID NOT NULL REFERENCES load_runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		industry TEXT NOT NULL,
		company TEXT NOT NULL,
		company_type TEXT NOT NULL,
		PRIMARY KEY (run_id, position)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_load_runs_created_at ON load_runs (created_at DESC);`,
	`CREATE INDEX IF NOT EXISTS idx_vendor_records_category ON vendor_records (run_id, category);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
