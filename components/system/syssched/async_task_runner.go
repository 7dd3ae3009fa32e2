package syssched

import (
	"context"
	"sync"
	"time"

	"github.com/open-control-systems/local-clock/components/status"
)

// AsyncTaskRunnerParams represents various options for AsyncTaskRunner.
type AsyncTaskRunnerParams struct {
	// UpdateInterval - how often to run the task.
	UpdateInterval time.Duration

	// ExitOnSuccess stops the runner after the first successful task run.
	ExitOnSuccess bool
}

// AsyncTaskRunner periodically runs task in the standalone goroutine.
//
// Remarks:
//   - The task is run immediately after Start(), then on every UpdateInterval.
type AsyncTaskRunner struct {
	ctx     context.Context
	task    Task
	handler ErrorHandler
	params  AsyncTaskRunnerParams

	mu     sync.Mutex
	cancel context.CancelFunc
	doneCh chan struct{}
}

// NewAsyncTaskRunner is an initialization of AsyncTaskRunner.
//
// Parameters:
//   - ctx - parent context, the runner exits when it's done.
//   - task to run periodically.
//   - handler to handle task errors, can be nil.
//   - params - various runner options.
func NewAsyncTaskRunner(
	ctx context.Context,
	task Task,
	handler ErrorHandler,
	params AsyncTaskRunnerParams,
) *AsyncTaskRunner {
	return &AsyncTaskRunner{
		ctx:     ctx,
		task:    task,
		handler: handler,
		params:  params,
	}
}

// Start begins asynchronous task processing.
func (r *AsyncTaskRunner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.doneCh != nil {
		return status.StatusInvalidState
	}

	ctx, cancel := context.WithCancel(r.ctx)

	r.cancel = cancel
	r.doneCh = make(chan struct{})

	go r.run(ctx, r.doneCh)

	return nil
}

// Stop ends asynchronous task processing and waits until the goroutine exits.
//
// Remarks:
//   - The runner can be started again after Stop().
func (r *AsyncTaskRunner) Stop() error {
	r.mu.Lock()
	cancel := r.cancel
	doneCh := r.doneCh
	r.cancel = nil
	r.doneCh = nil
	r.mu.Unlock()

	if doneCh == nil {
		return nil
	}

	cancel()
	<-doneCh

	return nil
}

func (r *AsyncTaskRunner) run(ctx context.Context, doneCh chan struct{}) {
	defer close(doneCh)

	if r.runTask() && r.params.ExitOnSuccess {
		return
	}

	ticker := time.NewTicker(r.params.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if r.runTask() && r.params.ExitOnSuccess {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (r *AsyncTaskRunner) runTask() bool {
	if err := r.task.Run(); err != nil {
		if r.handler != nil {
			r.handler.HandleError(err)
		}

		return false
	}

	return true
}
