package model

import "strings"

// VendorRecord is one vendor contact row of a procurement category sheet.
type VendorRecord struct {
	ContractCode  string   `json:"contract_code"`
	ContactName   string   `json:"contact_name"`
	Company       string   `json:"company"`
	Role          string   `json:"role"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	SDOCommitment *float64 `json:"sdo_commitment"`
	Category      string   `json:"category"`
	CategoryLabel string   `json:"category_label,omitempty"`
}

// HasCommitment reports whether the source cell held a numeric commitment.
func (r VendorRecord) HasCommitment() bool {
	return r.SDOCommitment != nil
}

// DisplayCategory is the label when the category code is known, the raw code otherwise.
func (r VendorRecord) DisplayCategory() string {
	if r.CategoryLabel != "" {
		return r.CategoryLabel
	}
	return r.Category
}

var categoryLabels = map[string]string{
	"ITE": "IT Equipment & Services",
	"ITS": "IT Software & Services",
	"ITT": "Telecom & Networking",
	"FAC": "Facilities General",
	"VEH": "Vehicle Acquisition & Maint.",
	"GRO": "Food & Food Service",
	"LND": "Facility Landscaping",
	"MED": "Health & Medical",
	"MRO": "Maintenance, Repair & Ops",
	"OFF": "Office Supplies",
	"PRF": "Professional Services",
	"PSE": "Public Safety & Security",
	"SFC": "Sustainable Facilities",
	"TRD": "Tradespersons",
	"WMR": "Waste Mgmt & Recycling",
}

// CategoryLabel returns the human-readable label for a category code and
// whether the code is known.
func CategoryLabel(code string) (string, bool) {
	label, ok := categoryLabels[strings.TrimSpace(code)]
	return label, ok
}

// DisplayCategory returns the category label, falling back to the code.
func DisplayCategory(code string) string {
	if label, ok := CategoryLabel(code); ok {
		return label
	}
	return code
}

// CategoryCodes lists the known category codes in a stable order.
func CategoryCodes() []string {
	return []string{
		"ITE", "ITS", "ITT", "FAC", "VEH", "GRO", "LND", "MED",
		"MRO", "OFF", "PRF", "PSE", "SFC", "TRD", "WMR",
	}
}
