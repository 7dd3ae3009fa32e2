package syssched

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/local-clock/components/status"
)

type testAsyncTaskRunnerTask struct {
	mu           sync.Mutex
	err          error
	callCount    int
	successCount int
}

func (t *testAsyncTaskRunnerTask) Run() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.callCount++

	if t.err == nil {
		t.successCount++
	}

	return t.err
}

func (t *testAsyncTaskRunnerTask) getSuccessCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.successCount
}

func (t *testAsyncTaskRunnerTask) getCallCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.callCount
}

func (t *testAsyncTaskRunnerTask) setError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.err = err
}

type testAsyncTaskRunnerErrorHandler struct {
	mu   sync.Mutex
	errs []error
}

func (h *testAsyncTaskRunnerErrorHandler) HandleError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.errs = append(h.errs, err)
}

func (h *testAsyncTaskRunnerErrorHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.errs)
}

func TestAsyncTaskRunnerExitOnSuccess(t *testing.T) {
	task := &testAsyncTaskRunnerTask{
		err: status.StatusNotSupported,
	}
	handler := &testAsyncTaskRunnerErrorHandler{}

	runner := NewAsyncTaskRunner(context.Background(), task, handler, AsyncTaskRunnerParams{
		UpdateInterval: time.Millisecond * 10,
		ExitOnSuccess:  true,
	})
	require.Nil(t, runner.Start())

	for task.getCallCount() < 2 {
		time.Sleep(time.Millisecond * 5)
	}

	task.setError(nil)

	for task.getSuccessCount() < 1 {
		time.Sleep(time.Millisecond * 5)
	}

	calls := task.getCallCount()
	time.Sleep(time.Millisecond * 50)
	require.Equal(t, calls, task.getCallCount())
	require.Equal(t, 1, task.getSuccessCount())
	require.GreaterOrEqual(t, handler.count(), 2)

	require.Nil(t, runner.Stop())
}

func TestAsyncTaskRunnerRunImmediately(t *testing.T) {
	task := &testAsyncTaskRunnerTask{}

	runner := NewAsyncTaskRunner(context.Background(), task, nil, AsyncTaskRunnerParams{
		UpdateInterval: time.Hour,
	})
	require.Nil(t, runner.Start())

	for task.getCallCount() < 1 {
		time.Sleep(time.Millisecond * 5)
	}

	require.Nil(t, runner.Stop())
	require.Equal(t, 1, task.getCallCount())
}

func TestAsyncTaskRunnerStartTwice(t *testing.T) {
	runner := NewAsyncTaskRunner(context.Background(), &testAsyncTaskRunnerTask{}, nil,
		AsyncTaskRunnerParams{UpdateInterval: time.Hour})

	require.Nil(t, runner.Start())
	require.Equal(t, status.StatusInvalidState, runner.Start())
	require.Nil(t, runner.Stop())
	require.Nil(t, runner.Stop())

	require.Nil(t, runner.Start())
	require.Nil(t, runner.Stop())
}

func TestAsyncTaskRunnerParentContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	task := &testAsyncTaskRunnerTask{}

	runner := NewAsyncTaskRunner(ctx, task, nil, AsyncTaskRunnerParams{
		UpdateInterval: time.Millisecond,
	})
	require.Nil(t, runner.Start())

	cancel()
	require.Nil(t, runner.Stop())
}
