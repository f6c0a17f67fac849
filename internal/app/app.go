package app

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vatscope/internal/common"
	"github.com/ternarybob/vatscope/internal/httpclient"
	"github.com/ternarybob/vatscope/internal/interfaces"
	"github.com/ternarybob/vatscope/internal/kbo"
	"github.com/ternarybob/vatscope/internal/nbb"
	"github.com/ternarybob/vatscope/internal/services/company"
	"github.com/ternarybob/vatscope/internal/services/financial"
	"github.com/ternarybob/vatscope/internal/services/geocode"
	"github.com/ternarybob/vatscope/internal/services/pdf"
	"github.com/ternarybob/vatscope/internal/services/scheduler"
	"github.com/ternarybob/vatscope/internal/services/transform"
	"github.com/ternarybob/vatscope/internal/storage"
	"github.com/ternarybob/vatscope/internal/worker"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Financial result cache, nil when disabled
	Storage      interfaces.FinancialResultStorage
	closeStorage func() error

	// External sources
	DepositClient  *nbb.Client
	RegistryClient *kbo.Client
	Geocoder       interfaces.Geocoder

	// Services
	TransformService *transform.Service
	PDFExtractor     *pdf.Extractor
	PDFService       *pdf.Service
	FinancialService *financial.Service
	CompanyBuilder   *company.Builder
	SchedulerService *scheduler.Service
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initStorage(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if err := app.initServices(); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	logger.Debug().
		Bool("cache", app.Storage != nil).
		Bool("geocoding", app.Geocoder != nil).
		Int("watchlist", len(cfg.Scheduler.Watchlist)).
		Msg("Application initialized")

	return app, nil
}

func (a *App) initStorage() error {
	store, closeFn, err := storage.NewFinancialResultStorage(a.Logger, a.Config)
	if err != nil {
		return err
	}
	a.Storage = store
	a.closeStorage = closeFn
	return nil
}

func (a *App) initServices() error {
	cfg := a.Config

	// 1. Deposit API
	a.DepositClient = nbb.NewClient(
		nbb.WithBaseURL(cfg.NBB.BaseURL),
		nbb.WithHTTPClient(httpclient.NewDefaultHTTPClient(common.ParseDuration(cfg.NBB.Timeout, nbb.DefaultTimeout))),
		nbb.WithLogger(a.Logger),
		nbb.WithRateLimit(cfg.NBB.RateLimit),
		nbb.WithPageSize(cfg.NBB.PageSize),
		nbb.WithUserAgentRotation(cfg.NBB.UserAgents),
	)

	// 2. Registry pages, rendered to markdown for the general information text
	a.TransformService = transform.NewService(a.Logger)
	registryHTTP, err := httpclient.NewBrowserHTTPClient(common.ParseDuration(cfg.KBO.Timeout, kbo.DefaultTimeout))
	if err != nil {
		return fmt.Errorf("failed to create registry HTTP client: %w", err)
	}
	a.RegistryClient = kbo.NewClient(
		kbo.WithBaseURL(cfg.KBO.BaseURL),
		kbo.WithLanguage(cfg.KBO.Language),
		kbo.WithHTTPClient(registryHTTP),
		kbo.WithLogger(a.Logger),
		kbo.WithRateLimit(cfg.KBO.RateLimit),
		kbo.WithMarkdownConverter(a.TransformService),
	)

	// 3. Address lookup
	if cfg.Geocoding.Enabled {
		a.Geocoder = geocode.NewService(
			cfg.Geocoding.BaseURL,
			common.ParseDuration(cfg.Geocoding.Timeout, geocode.DefaultTimeout),
			cfg.Geocoding.RateLimit,
			a.Logger,
		)
	}

	// 4. Financial pipeline
	a.PDFExtractor = pdf.NewExtractor(cfg.Financial.TempDir, a.Logger)
	a.PDFService = pdf.NewService(a.Logger)
	a.FinancialService = financial.NewService(
		a.DepositClient,
		a.PDFExtractor,
		a.Storage,
		financial.NewClassifier(cfg.Financial.MicroModels, cfg.Financial.AbbreviatedModels),
		common.ParseDuration(cfg.Financial.CacheTTL, 24*time.Hour),
		a.Logger,
	)

	// 5. Company record builder
	pool := worker.NewPool(a.Logger, cfg.Company.Workers, common.ParseDuration(cfg.Company.TaskTimeout, 30*time.Second))
	a.CompanyBuilder = company.NewBuilder(a.FinancialService, a.RegistryClient, a.Geocoder, pool, a.Logger)

	// 6. Watchlist refresher, started by the watch command
	a.SchedulerService = scheduler.NewService(a.FinancialService, a.Storage, cfg.Scheduler.Watchlist, a.Logger)

	return nil
}

// Close releases the scheduler and the cache database
func (a *App) Close() error {
	if a.SchedulerService != nil {
		if err := a.SchedulerService.Stop(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to stop scheduler service")
		}
	}

	if a.closeStorage != nil {
		closeFn := a.closeStorage
		a.closeStorage = nil
		if err := closeFn(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Debug().Msg("Storage closed")
	}
	return nil
}
