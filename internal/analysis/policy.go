package analysis

import (
	"errors"
	"fmt"
)

// Policy holds the named constants every view is parameterised by.
type Policy struct {
	// CommitmentCap bounds commitments in averaging views; raw values above it
	// are data-entry artifacts.
	CommitmentCap float64
	// MinCategoryRows is the eligible-row count a category needs before it
	// gets a distribution.
	MinCategoryRows          int
	TopCompanies             int
	TopContractCodes         int
	DashboardContractCodes   int
	MaxContractCodeLen       int
	TopConcentration         int
	MinCorrelationCategories int
	OutlierIQRFactor         float64
	HistogramBins            int
	ITCategories             []string
	ComparisonCategories     []string
}

func DefaultPolicy() Policy {
	return Policy{
		CommitmentCap:            1.0,
		MinCategoryRows:          10,
		TopCompanies:             15,
		TopContractCodes:         25,
		DashboardContractCodes:   20,
		MaxContractCodeLen:       15,
		TopConcentration:         10,
		MinCorrelationCategories: 3,
		OutlierIQRFactor:         1.5,
		HistogramBins:            50,
		ITCategories:             []string{"ITE", "ITS", "ITT"},
		ComparisonCategories:     []string{"ITE", "ITS", "ITT"},
	}
}

var ErrInvalidPolicy = errors.New("invalid analysis policy")

func (p Policy) Validate() error {
	switch {
	case p.CommitmentCap <= 0:
		return fmt.Errorf("%w: commitment cap must be positive", ErrInvalidPolicy)
	case p.MinCategoryRows < 1:
		return fmt.Errorf("%w: category threshold must be at least 1", ErrInvalidPolicy)
	case p.TopCompanies < 1, p.TopContractCodes < 1, p.DashboardContractCodes < 1, p.TopConcentration < 1:
		return fmt.Errorf("%w: top-N sizes must be positive", ErrInvalidPolicy)
	case p.MaxContractCodeLen < 1:
		return fmt.Errorf("%w: contract code length must be positive", ErrInvalidPolicy)
	case p.MinCorrelationCategories < 3:
		return fmt.Errorf("%w: correlation needs at least 3 categories", ErrInvalidPolicy)
	case p.OutlierIQRFactor < 0:
		return fmt.Errorf("%w: IQR factor must not be negative", ErrInvalidPolicy)
	case p.HistogramBins < 1:
		return fmt.Errorf("%w: histogram needs at least one bin", ErrInvalidPolicy)
	case len(p.ITCategories) == 0:
		return fmt.Errorf("%w: IT categories are required", ErrInvalidPolicy)
	}
	return nil
}
