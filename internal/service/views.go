package service

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nurpe/checkbook-insights/internal/analysis"
	"github.com/nurpe/checkbook-insights/internal/model"
)

// ViewQuery carries the dashboard filters. Zero values keep the defaults
// of the precomputed view set.
type ViewQuery struct {
	Category string
	Top      int
}

// View returns the JSON payload for one named view.
func (s *InsightsService) View(name string, query ViewQuery) (any, error) {
	insights, err := s.filtered(query)
	if err != nil {
		return nil, err
	}

	switch name {
	case model.ViewSummary:
		return insights.Summary, nil
	case model.ViewBQ1:
		return insights.TopCommitments, nil
	case model.ViewBQ2:
		return insights.CategoryStats, nil
	case model.ViewBQ3:
		return insights.CategoryVendors, nil
	case model.ViewBQ4:
		return insights.ContractCodes, nil
	case model.ViewBQ5:
		return analysis.SortedByType(insights.IndustryTypes, model.CompanyTypeNationalAndLocal), nil
	case model.ViewBQ6:
		return insights.Distributions, nil
	case model.ViewBQ7:
		return insights.Coverage, nil
	case model.ViewBQ8:
		return insights.Correlation, nil
	case model.ViewBQ9:
		return insights.IndustryTypes, nil
	case model.ViewBQ10:
		return insights.Concentration, nil
	case model.ViewBQ11:
		return insights.IndustryDensity, nil
	case model.ViewHistogram:
		return insights.Histogram, nil
	case model.ViewComparison:
		return insights.Comparison, nil
	}
	return nil, fmt.Errorf("%w: view %q", ErrNotFound, name)
}

// Chart renders one named chart as PNG.
func (s *InsightsService) Chart(name string, query ViewQuery) ([]byte, error) {
	if _, ok := model.LookupView(name); !ok {
		return nil, fmt.Errorf("%w: chart %q", ErrNotFound, name)
	}
	insights, err := s.filtered(query)
	if err != nil {
		return nil, err
	}
	content, err := s.charts.Render(name, insights)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return content, nil
}

// ChartSet renders every chart plus the BQ1 sub-category variants.
func (s *InsightsService) ChartSet(ctx context.Context) (map[string][]byte, error) {
	base, err := s.Insights()
	if err != nil {
		return nil, err
	}

	type job struct {
		key      string
		name     string
		insights model.Insights
	}
	var jobs []job
	for _, v := range model.Views() {
		jobs = append(jobs, job{key: v.Name, name: v.Name, insights: base})
	}
	for _, category := range s.aggregator.Policy().ITCategories {
		insights, err := s.filtered(ViewQuery{Category: category})
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job{key: model.BQ1Variant(category), name: model.ViewBQ1, insights: insights})
	}

	var mu sync.Mutex
	charts := make(map[string][]byte, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := s.charts.Render(j.name, j.insights)
			if err != nil {
				return fmt.Errorf("render %s: %w", j.key, err)
			}
			mu.Lock()
			charts[j.key] = content
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.log.Debug().Int("charts", len(charts)).Msg("charts rendered")
	return charts, nil
}

// Report assembles the document behind the static report.
func (s *InsightsService) Report(ctx context.Context) (model.ReportDocument, error) {
	insights, err := s.Insights()
	if err != nil {
		return model.ReportDocument{}, err
	}
	charts, err := s.ChartSet(ctx)
	if err != nil {
		return model.ReportDocument{}, err
	}
	return model.ReportDocument{
		Title:       reportTitle,
		Subtitle:    "Massachusetts Open Checkbook - Supplier Diversity Program",
		GeneratedAt: s.now(),
		Insights:    insights,
		Charts:      charts,
	}, nil
}

func (s *InsightsService) ExportXLSX() (*ExportResult, error) {
	insights, err := s.Insights()
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(insights)
	if err != nil {
		return nil, fmt.Errorf("generate xlsx: %w", err)
	}
	return &ExportResult{
		FileName:    s.buildFileName("xlsx"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     content,
	}, nil
}

func (s *InsightsService) ExportPDF(ctx context.Context) (*ExportResult, error) {
	doc, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(doc)
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return &ExportResult{
		FileName:    s.buildFileName("pdf"),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

func (s *InsightsService) filtered(query ViewQuery) (model.Insights, error) {
	insights, err := s.Insights()
	if err != nil {
		return model.Insights{}, err
	}
	if query.Category != "" {
		top, err := s.TopCommitments(query.Category)
		if err != nil {
			return model.Insights{}, err
		}
		insights.TopCommitments = top
	}
	if query.Top != 0 {
		codes, err := s.ContractCodes(query.Top)
		if err != nil {
			return model.Insights{}, err
		}
		insights.ContractCodes = codes
	}
	return insights, nil
}
