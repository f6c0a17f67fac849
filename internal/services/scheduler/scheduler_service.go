package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vatscope/internal/interfaces"
	"github.com/ternarybob/vatscope/internal/services/financial"
)

// JobName is the name of the watchlist refresh job
const JobName = "watchlist-refresh"

// DefaultSchedule refreshes the watchlist every day at 03:00
const DefaultSchedule = "0 0 3 * * *"

// Service re-runs the financial pipeline for a watchlist of VAT numbers on a cron
// schedule, dropping the cached result first so every run reaches the deposit API
type Service struct {
	financials interfaces.FinancialService
	storage    interfaces.FinancialResultStorage
	watchlist  []string
	cron       *cron.Cron
	logger     arbor.ILogger

	mu           sync.Mutex // Protects the fields below
	running      bool
	isProcessing bool
	schedule     string
	entryID      cron.EntryID
	lastRun      *time.Time
	lastError    string

	runMu      sync.Mutex // Serialises refresh runs
	ctx        context.Context
	cancel     context.CancelFunc
	vatTimeout time.Duration
}

var _ interfaces.SchedulerService = (*Service)(nil)

// NewService creates a new watchlist refresher. storage may be nil when caching is disabled.
func NewService(
	financials interfaces.FinancialService,
	storage interfaces.FinancialResultStorage,
	watchlist []string,
	logger arbor.ILogger,
) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		financials: financials,
		storage:    storage,
		watchlist:  append([]string(nil), watchlist...),
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		vatTimeout: 2 * time.Minute,
	}
}

// Start begins the scheduler with the given cron expression (seconds field first)
func (s *Service) Start(cronExpr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if cronExpr == "" {
		cronExpr = DefaultSchedule
	}

	entryID, err := s.cron.AddFunc(cronExpr, s.runScheduledTask)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	if s.ctx.Err() != nil {
		s.ctx, s.cancel = context.WithCancel(context.Background())
	}
	s.entryID = entryID
	s.schedule = cronExpr
	s.cron.Start()
	s.running = true

	s.logger.Info().
		Str("cron_expr", cronExpr).
		Int("watchlist", len(s.watchlist)).
		Msg("Scheduler started")
	return nil
}

// Stop halts the scheduler, cancelling a refresh in progress
func (s *Service) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.cron.Remove(s.entryID)
	s.cancel()
	s.mu.Unlock()

	stopCtx := s.cron.Stop()

	select {
	case <-stopCtx.Done():
		s.logger.Info().Msg("Scheduler stopped")
		return nil
	case <-time.After(30 * time.Second):
		return fmt.Errorf("timed out waiting for refresh to finish")
	}
}

// TriggerNow runs the refresh immediately and returns the joined per-company errors
func (s *Service) TriggerNow() error {
	s.logger.Info().Msg("Manual refresh trigger requested")
	return s.refresh()
}

// IsRunning returns true if the scheduler is active
func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Status returns the status of the refresh job
func (s *Service) Status() *interfaces.JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := &interfaces.JobStatus{
		Name:      JobName,
		Schedule:  s.schedule,
		LastRun:   s.lastRun,
		IsRunning: s.isProcessing,
		LastError: s.lastError,
	}
	if s.running {
		if next := s.cron.Entry(s.entryID).Next; !next.IsZero() {
			status.NextRun = &next
		}
	}
	return status
}

func (s *Service) runScheduledTask() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("panic", fmt.Sprintf("%v", r)).
				Msg("Recovered from panic in scheduled refresh")
		}
	}()

	if err := s.refresh(); err != nil {
		s.logger.Warn().Err(err).Msg("Scheduled refresh finished with errors")
	}
}

// refresh re-extracts every company of the watchlist, skipping when a run is in progress
func (s *Service) refresh() error {
	s.mu.Lock()
	if s.isProcessing {
		s.mu.Unlock()
		s.logger.Debug().Msg("Refresh already in progress, skipping this cycle")
		return nil
	}
	s.isProcessing = true
	ctx := s.ctx
	s.mu.Unlock()

	s.runMu.Lock()
	defer s.runMu.Unlock()

	start := time.Now()
	var errs []error
	refreshed := 0

	for _, raw := range s.watchlist {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if err := s.refreshOne(ctx, raw); err != nil {
			errs = append(errs, err)
			continue
		}
		refreshed++
	}

	err := errors.Join(errs...)
	finished := time.Now()

	s.mu.Lock()
	s.isProcessing = false
	s.lastRun = &finished
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	s.mu.Unlock()

	s.logger.Info().
		Int("refreshed", refreshed).
		Int("failed", len(errs)).
		Int64("duration_ms", finished.Sub(start).Milliseconds()).
		Msg("Watchlist refresh completed")
	return err
}

func (s *Service) refreshOne(parent context.Context, raw string) error {
	vat, err := financial.NormalizeVATNumber(raw)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(parent, s.vatTimeout)
	defer cancel()

	if s.storage != nil {
		if err := s.storage.DeleteFinancialResult(ctx, vat); err != nil {
			s.logger.Warn().Err(err).Str("vat_number", vat).Msg("Failed to drop cached financial result")
		}
	}

	result, err := s.financials.GetSizeAndFinancialData(ctx, vat)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", vat, err)
	}

	size := "unknown"
	if result.Size != nil {
		size = result.Size.String()
	}
	s.logger.Debug().
		Str("vat_number", vat).
		Str("company_size", size).
		Msg("Financial data refreshed")
	return nil
}
