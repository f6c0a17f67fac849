package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Logging     LoggingConfig   `toml:"logging"`
	Storage     StorageConfig   `toml:"storage"`
	NBB         NBBConfig       `toml:"nbb"`
	KBO         KBOConfig       `toml:"kbo"`
	Geocoding   GeocodingConfig `toml:"geocoding"`
	Financial   FinancialConfig `toml:"financial"`
	Company     CompanyConfig   `toml:"company"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=trace debug info warn error"` // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`                                             // "stdout", "file"
	TimeFormat string   `toml:"time_format"`                                        // Time format for logs (default: "15:04:05")
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Enabled        bool   `toml:"enabled"`          // Cache financial results between runs
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// NBBConfig configures the National Bank of Belgium (CBSO) deposit API
type NBBConfig struct {
	BaseURL    string `toml:"base_url" validate:"required,url"`
	PageSize   int    `toml:"page_size" validate:"gte=1,lte=100"` // Number of deposits requested per company
	Timeout    string `toml:"timeout"`                            // HTTP timeout (default: "30s")
	RateLimit  int    `toml:"rate_limit" validate:"gte=1"`        // Requests per second
	UserAgents bool   `toml:"user_agents"`                        // Rotate browser user agents
}

// KBOConfig configures the Crossroads Bank for Enterprises public search site
type KBOConfig struct {
	BaseURL   string `toml:"base_url" validate:"required,url"`
	Language  string `toml:"language" validate:"oneof=fr nl de en"`
	Timeout   string `toml:"timeout"`
	RateLimit int    `toml:"rate_limit" validate:"gte=1"`
}

// GeocodingConfig configures the Nominatim address lookup
type GeocodingConfig struct {
	Enabled   bool   `toml:"enabled"`
	BaseURL   string `toml:"base_url" validate:"required,url"`
	Timeout   string `toml:"timeout"`
	RateLimit int    `toml:"rate_limit" validate:"gte=1"` // Nominatim usage policy: 1 request per second
}

// FinancialConfig configures the annual account extraction pipeline
type FinancialConfig struct {
	MicroModels       []string `toml:"micro_models"`       // Model codes filed by micro companies
	AbbreviatedModels []string `toml:"abbreviated_models"` // Model codes filed by small companies
	CacheTTL          string   `toml:"cache_ttl"`          // How long a cached result is served (default: "24h")
	TempDir           string   `toml:"temp_dir"`           // Directory for temporary PDF files (default: os.TempDir())
}

// CompanyConfig configures the company record builder
type CompanyConfig struct {
	Workers     int    `toml:"workers" validate:"gte=1"` // Size of the extraction worker pool
	TaskTimeout string `toml:"task_timeout"`             // Timeout per extraction task (default: "30s")
}

// SchedulerConfig configures the watchlist refresher
type SchedulerConfig struct {
	Schedule  string   `toml:"schedule"`                                 // Cron schedule with seconds field
	Watchlist []string `toml:"watchlist" validate:"dive,len=10,numeric"` // VAT numbers refreshed on every run
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"file"},
			TimeFormat: "15:04:05",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Enabled: true,
				Path:    "./data",
			},
		},
		NBB: NBBConfig{
			BaseURL:    "https://consult.cbso.nbb.be/api",
			PageSize:   10,
			Timeout:    "30s",
			RateLimit:  5,
			UserAgents: true,
		},
		KBO: KBOConfig{
			BaseURL:   "https://kbopub.economie.fgov.be/kbopub",
			Language:  "fr",
			Timeout:   "30s",
			RateLimit: 2,
		},
		Geocoding: GeocodingConfig{
			Enabled:   true,
			BaseURL:   "https://nominatim.openstreetmap.org",
			Timeout:   "10s",
			RateLimit: 1,
		},
		Financial: FinancialConfig{
			MicroModels:       []string{"m07-f", "m08-f", "m87-f", "m88-f"},
			AbbreviatedModels: []string{"m02-f", "m05-f", "m82-f", "m85-f"},
			CacheTTL:          "24h",
		},
		Company: CompanyConfig{
			Workers:     3,
			TaskTimeout: "30s",
		},
		Scheduler: SchedulerConfig{
			Schedule: "0 0 3 * * *", // Every day at 03:00
		},
	}
}

// LoadFromFiles loads configuration with priority: default -> file1 -> file2 -> ... -> .env -> env
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// Unmarshal into config (merges with existing values, later values override)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// A missing .env is the normal case
	_ = godotenv.Load()

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the struct tags and the cron schedule
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Scheduler.Schedule != "" {
		parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		if _, err := parser.Parse(c.Scheduler.Schedule); err != nil {
			return fmt.Errorf("invalid scheduler schedule %q: %w", c.Scheduler.Schedule, err)
		}
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("VATSCOPE_ENV"); env != "" {
		config.Environment = env
	}

	// Logging configuration
	if level := os.Getenv("VATSCOPE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("VATSCOPE_LOG_OUTPUT"); output != "" {
		if outputs := splitList(output); len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Storage configuration
	if badgerPath := os.Getenv("VATSCOPE_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if enabled := os.Getenv("VATSCOPE_BADGER_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			config.Storage.Badger.Enabled = b
		}
	}

	// NBB configuration
	if baseURL := os.Getenv("VATSCOPE_NBB_BASE_URL"); baseURL != "" {
		config.NBB.BaseURL = baseURL
	}
	if rateLimit := os.Getenv("VATSCOPE_NBB_RATE_LIMIT"); rateLimit != "" {
		if rl, err := strconv.Atoi(rateLimit); err == nil {
			config.NBB.RateLimit = rl
		}
	}
	if timeout := os.Getenv("VATSCOPE_NBB_TIMEOUT"); timeout != "" {
		config.NBB.Timeout = timeout
	}

	// KBO configuration
	if baseURL := os.Getenv("VATSCOPE_KBO_BASE_URL"); baseURL != "" {
		config.KBO.BaseURL = baseURL
	}
	if language := os.Getenv("VATSCOPE_KBO_LANGUAGE"); language != "" {
		config.KBO.Language = language
	}

	// Geocoding configuration
	if enabled := os.Getenv("VATSCOPE_GEOCODING_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			config.Geocoding.Enabled = b
		}
	}
	if baseURL := os.Getenv("VATSCOPE_GEOCODING_BASE_URL"); baseURL != "" {
		config.Geocoding.BaseURL = baseURL
	}

	// Financial configuration
	if ttl := os.Getenv("VATSCOPE_FINANCIAL_CACHE_TTL"); ttl != "" {
		config.Financial.CacheTTL = ttl
	}
	if tempDir := os.Getenv("VATSCOPE_FINANCIAL_TEMP_DIR"); tempDir != "" {
		config.Financial.TempDir = tempDir
	}

	// Company configuration
	if workers := os.Getenv("VATSCOPE_COMPANY_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil {
			config.Company.Workers = w
		}
	}
	if timeout := os.Getenv("VATSCOPE_COMPANY_TASK_TIMEOUT"); timeout != "" {
		config.Company.TaskTimeout = timeout
	}

	// Scheduler configuration
	if schedule := os.Getenv("VATSCOPE_SCHEDULER_SCHEDULE"); schedule != "" {
		config.Scheduler.Schedule = schedule
	}
	if watchlist := os.Getenv("VATSCOPE_SCHEDULER_WATCHLIST"); watchlist != "" {
		config.Scheduler.Watchlist = splitList(watchlist)
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, logLevel string, noCache bool) {
	if logLevel != "" {
		config.Logging.Level = logLevel
	}
	if noCache {
		config.Storage.Badger.Enabled = false
	}
}

// ParseDuration parses a duration string, returning fallback when empty or invalid
func ParseDuration(value string, fallback time.Duration) time.Duration {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// splitList splits a comma-separated value and drops empty entries
func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
