package model

import (
	"time"

	"github.com/google/uuid"
)

// LoadRun identifies one persisted copy of the two base tables.
type LoadRun struct {
	ID              uuid.UUID `json:"id"`
	VendorFile      string    `json:"vendor_file"`
	CategorizedFile string    `json:"categorized_file"`
	VendorRows      int       `json:"vendor_rows"`
	CategorizedRows int       `json:"categorized_rows"`
	CreatedAt       time.Time `json:"created_at"`
}
