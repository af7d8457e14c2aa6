package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/nurpe/checkbook-insights/internal/analysis"
	"github.com/nurpe/checkbook-insights/internal/loader"
)

type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type DataConfig struct {
	VendorFile      string
	CategorizedFile string
	SkipSheets      []string
	MetadataPhrases []string
}

type OutputConfig struct {
	Dir string
}

type Config struct {
	Environment string
	LogLevel    string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Data        DataConfig
	Output      OutputConfig
	Analysis    analysis.Policy
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		HTTP: HTTPConfig{
			Host:           v.GetString("HTTP_HOST"),
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Data: DataConfig{
			VendorFile:      v.GetString("DATA_VENDOR_FILE"),
			CategorizedFile: v.GetString("DATA_CATEGORIZED_FILE"),
			SkipSheets:      parseList(v.GetString("DATA_SKIP_SHEETS")),
			MetadataPhrases: parseList(v.GetString("DATA_METADATA_PHRASES")),
		},
		Output: OutputConfig{
			Dir: v.GetString("OUTPUT_DIR"),
		},
		Analysis: analysis.DefaultPolicy(),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "127.0.0.1"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8050
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"*"}
	}
	if cfg.Data.VendorFile == "" {
		cfg.Data.VendorFile = "Copy of Vendor Contact Details (1).xlsx"
	}
	if cfg.Data.CategorizedFile == "" {
		cfg.Data.CategorizedFile = "List of Categorized_Companies (1).xlsx"
	}
	if len(cfg.Data.SkipSheets) == 0 {
		cfg.Data.SkipSheets = loader.DefaultSkipSheets()
	}
	if len(cfg.Data.MetadataPhrases) == 0 {
		cfg.Data.MetadataPhrases = loader.DefaultMetadataPhrases()
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "output"
	}
	applyPolicyOverrides(v, &cfg.Analysis)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyPolicyOverrides(v *viper.Viper, p *analysis.Policy) {
	if v.IsSet("ANALYSIS_COMMITMENT_CAP") {
		p.CommitmentCap = v.GetFloat64("ANALYSIS_COMMITMENT_CAP")
	}
	if v.IsSet("ANALYSIS_MIN_CATEGORY_ROWS") {
		p.MinCategoryRows = v.GetInt("ANALYSIS_MIN_CATEGORY_ROWS")
	}
	if v.IsSet("ANALYSIS_TOP_COMPANIES") {
		p.TopCompanies = v.GetInt("ANALYSIS_TOP_COMPANIES")
	}
	if v.IsSet("ANALYSIS_TOP_CONTRACT_CODES") {
		p.TopContractCodes = v.GetInt("ANALYSIS_TOP_CONTRACT_CODES")
	}
	if v.IsSet("ANALYSIS_DASHBOARD_CONTRACT_CODES") {
		p.DashboardContractCodes = v.GetInt("ANALYSIS_DASHBOARD_CONTRACT_CODES")
	}
	if v.IsSet("ANALYSIS_MAX_CONTRACT_CODE_LEN") {
		p.MaxContractCodeLen = v.GetInt("ANALYSIS_MAX_CONTRACT_CODE_LEN")
	}
	if v.IsSet("ANALYSIS_TOP_CONCENTRATION") {
		p.TopConcentration = v.GetInt("ANALYSIS_TOP_CONCENTRATION")
	}
	if v.IsSet("ANALYSIS_HISTOGRAM_BINS") {
		p.HistogramBins = v.GetInt("ANALYSIS_HISTOGRAM_BINS")
	}
	if it := parseList(v.GetString("ANALYSIS_IT_CATEGORIES")); len(it) > 0 {
		p.ITCategories = it
	}
	if cmp := parseList(v.GetString("ANALYSIS_COMPARISON_CATEGORIES")); len(cmp) > 0 {
		p.ComparisonCategories = cmp
	}
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Data.VendorFile) == "" {
		return fmt.Errorf("DATA_VENDOR_FILE is required")
	}
	if strings.TrimSpace(cfg.Data.CategorizedFile) == "" {
		return fmt.Errorf("DATA_CATEGORIZED_FILE is required")
	}
	if cfg.HTTP.Port < 0 || cfg.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", cfg.HTTP.Port)
	}
	if err := cfg.Analysis.Validate(); err != nil {
		return err
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
