package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nurpe/checkbook-insights/internal/analysis"
	"github.com/nurpe/checkbook-insights/internal/config"
	"github.com/nurpe/checkbook-insights/internal/loader"
	"github.com/nurpe/checkbook-insights/internal/model"
)

const (
	CategoryAll = "All"

	reportTitle = "SDO Vendor & Company Analysis"
)

type ChartRenderer interface {
	Render(name string, insights model.Insights) ([]byte, error)
}

type ExcelGenerator interface {
	Generate(insights model.Insights) ([]byte, error)
}

type PDFGenerator interface {
	Generate(doc model.ReportDocument) ([]byte, error)
}

type Source struct {
	VendorFile      string
	CategorizedFile string
	Vendor          loader.VendorOptions
}

func SourceFromConfig(cfg *config.Config) Source {
	return Source{
		VendorFile:      cfg.Data.VendorFile,
		CategorizedFile: cfg.Data.CategorizedFile,
		Vendor: loader.VendorOptions{
			SkipSheets:      cfg.Data.SkipSheets,
			MetadataPhrases: cfg.Data.MetadataPhrases,
		},
	}
}

type viewCache struct {
	once     sync.Once
	insights model.Insights
}

type InsightsService struct {
	source     Source
	aggregator *analysis.Aggregator
	charts     ChartRenderer
	excel      ExcelGenerator
	pdf        PDFGenerator
	log        zerolog.Logger
	now        func() time.Time

	mu        sync.RWMutex
	records   []model.VendorRecord
	companies []model.CategorizedCompany
	loaded    bool
	cache     *viewCache
}

type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

func NewInsightsService(
	source Source,
	policy analysis.Policy,
	charts ChartRenderer,
	excel ExcelGenerator,
	pdf PDFGenerator,
	log zerolog.Logger,
) *InsightsService {
	return &InsightsService{
		source:     source,
		aggregator: analysis.New(policy),
		charts:     charts,
		excel:      excel,
		pdf:        pdf,
		log:        log,
		now:        time.Now,
	}
}

// Load reads both workbooks concurrently and replaces the base tables.
// The cached view set is dropped so the next Insights call recomputes it.
func (s *InsightsService) Load(ctx context.Context) error {
	var (
		records   []model.VendorRecord
		companies []model.CategorizedCompany
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		started := time.Now()
		loaded, err := loader.LoadVendorTable(s.source.VendorFile, s.source.Vendor)
		if err != nil {
			return err
		}
		records = loaded
		s.log.Info().
			Str("path", s.source.VendorFile).
			Int("rows", len(loaded)).
			Dur("took", time.Since(started)).
			Msg("vendor table loaded")
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		started := time.Now()
		loaded, err := loader.LoadCategorizedTable(s.source.CategorizedFile)
		if err != nil {
			return err
		}
		companies = loaded
		s.log.Info().
			Str("path", s.source.CategorizedFile).
			Int("rows", len(loaded)).
			Dur("took", time.Since(started)).
			Msg("categorized table loaded")
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.Replace(records, companies)
	return nil
}

// Replace installs already loaded base tables, e.g. from a snapshot.
func (s *InsightsService) Replace(records []model.VendorRecord, companies []model.CategorizedCompany) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]model.VendorRecord(nil), records...)
	s.companies = append([]model.CategorizedCompany(nil), companies...)
	s.loaded = true
	s.cache = &viewCache{}
	observeTables(len(records), len(companies))
}

func (s *InsightsService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *InsightsService) Policy() analysis.Policy {
	return s.aggregator.Policy()
}

// Tables returns copies of the base tables.
func (s *InsightsService) Tables() ([]model.VendorRecord, []model.CategorizedCompany, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, nil, ErrNotLoaded
	}
	records := append([]model.VendorRecord(nil), s.records...)
	for i := range records {
		if v := records[i].SDOCommitment; v != nil {
			c := *v
			records[i].SDOCommitment = &c
		}
	}
	return records, append([]model.CategorizedCompany(nil), s.companies...), nil
}

// Insights returns the full view set, computed once per load.
func (s *InsightsService) Insights() (model.Insights, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return model.Insights{}, ErrNotLoaded
	}
	cache := s.cache
	cache.once.Do(func() {
		started := time.Now()
		cache.insights = s.aggregator.Compute(s.records, s.companies)
		s.log.Debug().Dur("took", time.Since(started)).Msg("views computed")
	})
	return cache.insights.Clone(), nil
}

// TopCommitments ranks companies within one category, or across every IT
// category when category is empty or "All".
func (s *InsightsService) TopCommitments(category string) ([]model.CompanyCommitment, error) {
	categories, err := s.resolveCategory(category)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	policy := s.aggregator.Policy()
	return s.aggregator.TopCommitments(s.records, categories, policy.TopCompanies), nil
}

func (s *InsightsService) ContractCodes(n int) ([]model.ContractCodeCount, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: top must be positive", ErrInvalidInput)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	return s.aggregator.ContractCodeVendorCounts(s.records, n), nil
}

func (s *InsightsService) resolveCategory(category string) ([]string, error) {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, CategoryAll) {
		return s.aggregator.Policy().ITCategories, nil
	}
	code := strings.ToUpper(category)
	if _, ok := model.CategoryLabel(code); !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	return []string{code}, nil
}

func (s *InsightsService) buildFileName(ext string) string {
	return fmt.Sprintf("%s-%s.%s", sanitizeFileName(strings.ToLower(reportTitle)), s.now().Format("20060102"), ext)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	collapsed := strings.Join(strings.FieldsFunc(string(result), func(r rune) bool { return r == '-' }), "-")
	return collapsed
}
