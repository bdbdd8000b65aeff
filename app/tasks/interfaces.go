package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application and the API to queue site rebuilds.
// Example usage:
//
//	scheduler := NewScheduler(newBuildTask, interval, workerCount)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(newBuildTask())
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// TaskFactory creates a fresh task for every scheduled run.
type TaskFactory func() TaskInterface
