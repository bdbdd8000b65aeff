package tasks

import (
	"context"
	"sync"
	"testing"
	"time"
)

// MockTask records executions and fails the first failures runs
type MockTask struct {
	Task
	mu       sync.Mutex
	runs     int
	failures int
	done     chan struct{}
}

func newMockTask(failures int) *MockTask {
	return &MockTask{
		Task:     NewTask(TaskTypeBuildSite, "test-site"),
		failures: failures,
		done:     make(chan struct{}, 10),
	}
}

func (m *MockTask) Execute(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs++
	if m.runs <= m.failures {
		return &testError{"mock error"}
	}
	m.done <- struct{}{}
	return nil
}

func (m *MockTask) Runs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}

func TestNewScheduler(t *testing.T) {
	scheduler := NewScheduler(func() TaskInterface { return newMockTask(0) }, time.Second, 0)

	if scheduler == nil {
		t.Fatal("Expected scheduler to be created")
	}
	if scheduler.workerCount != 1 {
		t.Errorf("Expected worker count to be at least 1, got %d", scheduler.workerCount)
	}
}

func TestSchedulerExecutesEnqueuedTask(t *testing.T) {
	scheduler := NewScheduler(func() TaskInterface { return newMockTask(0) }, 0, 1)
	scheduler.Start()
	defer scheduler.Stop()

	task := newMockTask(0)
	if err := scheduler.EnqueueTask(task); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	select {
	case <-task.done:
	case <-time.After(2 * time.Second):
		t.Fatal("Task was not executed")
	}
	if task.StartedAt == nil {
		t.Error("Expected task to be started")
	}
}

func TestSchedulerRetriesFailedTask(t *testing.T) {
	scheduler := NewScheduler(func() TaskInterface { return newMockTask(0) }, 0, 1)
	scheduler.Start()
	defer scheduler.Stop()

	task := newMockTask(1)
	if err := scheduler.EnqueueTask(task); err != nil {
		t.Fatal(err)
	}

	select {
	case <-task.done:
	case <-time.After(5 * time.Second):
		t.Fatal("Task was not retried")
	}
	if task.Runs() != 2 {
		t.Errorf("Expected 2 runs, got %d", task.Runs())
	}
	if task.GetRetryCount() != 1 {
		t.Errorf("Expected retry count 1, got %d", task.GetRetryCount())
	}
}

func TestSchedulerTicker(t *testing.T) {
	tasks := make(chan *MockTask, 10)
	scheduler := NewScheduler(func() TaskInterface {
		task := newMockTask(0)
		tasks <- task
		return task
	}, 20*time.Millisecond, 1)
	scheduler.Start()
	defer scheduler.Stop()

	select {
	case task := <-tasks:
		select {
		case <-task.done:
		case <-time.After(2 * time.Second):
			t.Fatal("Scheduled task was not executed")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Ticker did not create a task")
	}
}

func TestEnqueueAfterStop(t *testing.T) {
	scheduler := NewScheduler(func() TaskInterface { return newMockTask(0) }, 0, 1)
	scheduler.Start()
	scheduler.Stop()

	if err := scheduler.EnqueueTask(newMockTask(0)); err == nil {
		t.Error("Expected error when enqueueing on a stopped scheduler")
	}
}

func TestRetryDelay(t *testing.T) {
	tests := map[int]time.Duration{
		0:  time.Second,
		1:  time.Second,
		2:  2 * time.Second,
		3:  4 * time.Second,
		6:  30 * time.Second,
		40: 30 * time.Second,
	}

	for retries, expected := range tests {
		if got := RetryDelay(retries); got != expected {
			t.Errorf("RetryDelay(%d): expected %v, got %v", retries, expected, got)
		}
	}
}

func TestTaskRetryBookkeeping(t *testing.T) {
	task := NewTask(TaskTypeBuildSite, "site")

	if task.GetDuration() != 0 {
		t.Error("Unstarted task should have zero duration")
	}
	for i := 0; i < DefaultMaxRetries; i++ {
		if !task.CanRetry() {
			t.Fatalf("Expected retry %d to be allowed", i+1)
		}
		task.IncrementRetryCount()
	}
	if task.CanRetry() {
		t.Error("Expected retries to be exhausted")
	}
	if task.GetSite() != "site" || task.GetType() != TaskTypeBuildSite || task.GetID() == "" {
		t.Errorf("Unexpected task fields: %+v", task)
	}
}
