package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func TestPool_RunKeepsTaskOrder(t *testing.T) {
	pool := NewPool(arbor.NewLogger(), 3, time.Second)

	tasks := make([]Task, 6)
	for i := range tasks {
		n := i
		tasks[i] = Task{
			Name: fmt.Sprintf("task-%d", n),
			Run: func(ctx context.Context) (any, error) {
				time.Sleep(time.Duration(6-n) * time.Millisecond)
				return n * n, nil
			},
		}
	}

	results := pool.Run(context.Background(), tasks)
	require.Len(t, results, 6)
	for i, result := range results {
		assert.Equal(t, fmt.Sprintf("task-%d", i), result.Name)
		assert.NoError(t, result.Err)
		assert.Equal(t, i*i, result.Value)
	}
}

func TestPool_LimitsConcurrency(t *testing.T) {
	pool := NewPool(arbor.NewLogger(), 2, time.Second)

	var running, peak int32
	tasks := make([]Task, 8)
	for i := range tasks {
		tasks[i] = Task{
			Name: fmt.Sprintf("task-%d", i),
			Run: func(ctx context.Context) (any, error) {
				now := atomic.AddInt32(&running, 1)
				for {
					old := atomic.LoadInt32(&peak)
					if now <= old || atomic.CompareAndSwapInt32(&peak, old, now) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil, nil
			},
		}
	}

	pool.Run(context.Background(), tasks)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestPool_TaskTimeout(t *testing.T) {
	pool := NewPool(arbor.NewLogger(), 2, 50*time.Millisecond)

	block := make(chan struct{})
	t.Cleanup(func() { close(block) })

	results := pool.Run(context.Background(), []Task{
		{Name: "stuck", Run: func(ctx context.Context) (any, error) {
			<-block
			return nil, nil
		}},
		{Name: "fast", Run: func(ctx context.Context) (any, error) {
			return "ok", nil
		}},
	})

	assert.ErrorIs(t, results[0].Err, context.DeadlineExceeded)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, "ok", results[1].Value)
}

func TestPool_TaskPanicBecomesError(t *testing.T) {
	pool := NewPool(arbor.NewLogger(), 1, time.Second)

	results := pool.Run(context.Background(), []Task{
		{Name: "boom", Run: func(ctx context.Context) (any, error) {
			panic("kaboom")
		}},
		{Name: "after", Run: func(ctx context.Context) (any, error) {
			return 1, nil
		}},
	})

	require.Error(t, results[0].Err)
	assert.Contains(t, results[0].Err.Error(), "kaboom")
	assert.NoError(t, results[1].Err)
}

func TestPool_TaskError(t *testing.T) {
	sentinel := errors.New("failed")
	results := NewPool(arbor.NewLogger(), 3, time.Second).Run(context.Background(), []Task{
		{Name: "bad", Run: func(ctx context.Context) (any, error) { return nil, sentinel }},
	})
	assert.ErrorIs(t, results[0].Err, sentinel)
}

func TestPool_NoTasks(t *testing.T) {
	assert.Empty(t, NewPool(arbor.NewLogger(), 3, time.Second).Run(context.Background(), nil))
}
