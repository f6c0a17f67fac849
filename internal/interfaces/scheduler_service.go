package interfaces

import "time"

// JobStatus represents the current status of a scheduled job
type JobStatus struct {
	Name      string
	Schedule  string
	LastRun   *time.Time
	NextRun   *time.Time
	IsRunning bool
	LastError string
}

// SchedulerService manages cron-based refreshes
type SchedulerService interface {
	// Start the scheduler with a cron expression
	Start(cronExpr string) error

	// Stop the scheduler
	Stop() error

	// TriggerNow runs the refresh immediately
	TriggerNow() error

	// IsRunning returns true if scheduler is active
	IsRunning() bool

	// Status returns the status of the refresh job
	Status() *JobStatus
}
