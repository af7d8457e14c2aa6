package model

import "fmt"

type CompanyType string

const (
	CompanyTypeNationalAndLocal CompanyType = "National & Local"
	CompanyTypeLocal            CompanyType = "Local"
	CompanyTypeSgcTarget        CompanyType = "SGC Target"
)

// CompanyTypes lists the buckets in sheet column order.
func CompanyTypes() []CompanyType {
	return []CompanyType{
		CompanyTypeNationalAndLocal,
		CompanyTypeLocal,
		CompanyTypeSgcTarget,
	}
}

func ParseCompanyType(raw string) (CompanyType, error) {
	for _, t := range CompanyTypes() {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown company type %q", raw)
}

type CategorizedCompany struct {
	Industry string      `json:"industry"`
	Company  string      `json:"company"`
	Type     CompanyType `json:"type"`
}
