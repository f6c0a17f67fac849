package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vatscope/internal/common"
)

// Task is a named unit of work run by the pool
type Task struct {
	Name string
	Run  func(ctx context.Context) (any, error)
}

// Result is the outcome of one task
type Result struct {
	Name     string
	Value    any
	Err      error
	Duration time.Duration
}

// Pool runs a batch of tasks on a fixed number of workers, each task bounded by
// its own timeout. A task that panics or overruns its timeout yields an error
// result without blocking the batch.
type Pool struct {
	logger      arbor.ILogger
	numWorkers  int
	taskTimeout time.Duration
}

func NewPool(logger arbor.ILogger, numWorkers int, taskTimeout time.Duration) *Pool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &Pool{
		logger:      logger,
		numWorkers:  numWorkers,
		taskTimeout: taskTimeout,
	}
}

// Run executes tasks and returns their results in task order
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	results := make([]Result, len(tasks))
	if len(tasks) == 0 {
		return results
	}

	workers := p.numWorkers
	if workers > len(tasks) {
		workers = len(tasks)
	}

	p.logger.Debug().
		Int("num_workers", workers).
		Int("num_tasks", len(tasks)).
		Msg("Starting worker pool")

	queue := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		workerID := i
		common.SafeGo(p.logger, fmt.Sprintf("worker-%d", workerID), func() {
			defer wg.Done()
			for idx := range queue {
				results[idx] = p.execute(ctx, workerID, tasks[idx])
			}
		}, nil)
	}

	for idx := range tasks {
		queue <- idx
	}
	close(queue)
	wg.Wait()

	return results
}

// execute runs one task in its own goroutine so a task ignoring its context
// still releases the worker at the deadline
func (p *Pool) execute(ctx context.Context, workerID int, task Task) Result {
	taskCtx := ctx
	cancel := func() {}
	if p.taskTimeout > 0 {
		taskCtx, cancel = context.WithTimeout(ctx, p.taskTimeout)
	}
	defer cancel()

	start := time.Now()
	done := make(chan Result, 1)

	common.SafeGo(p.logger, "task-"+task.Name, func() {
		value, err := task.Run(taskCtx)
		done <- Result{Name: task.Name, Value: value, Err: err}
	}, func(recovered interface{}) {
		done <- Result{Name: task.Name, Err: fmt.Errorf("panic: %v", recovered)}
	})

	var result Result
	select {
	case result = <-done:
	case <-taskCtx.Done():
		result = Result{Name: task.Name, Err: taskCtx.Err()}
	}
	result.Duration = time.Since(start)

	if result.Err != nil {
		p.logger.Warn().
			Err(result.Err).
			Int("worker_id", workerID).
			Str("task", task.Name).
			Msg("Task failed")
	} else {
		p.logger.Debug().
			Int("worker_id", workerID).
			Str("task", task.Name).
			Int64("duration_ms", result.Duration.Milliseconds()).
			Msg("Task completed")
	}
	return result
}
