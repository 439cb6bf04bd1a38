// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"skill-match-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler handles one activated job and completes or fails it itself.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

type Worker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

type WorkerOptions struct {
	TaskType      string
	MaxJobsActive int
	Timeout       time.Duration
}

// StartWorker opens a job worker for opts.TaskType that dispatches to handler.
func StartWorker(client zbc.Client, opts WorkerOptions, handler JobHandler, log logger.Logger) *Worker {
	builder := client.NewJobWorker().
		JobType(opts.TaskType).
		Handler(handler.Handle).
		MaxJobsActive(opts.MaxJobsActive)
	if opts.Timeout > 0 {
		builder = builder.Timeout(ActivationTimeout(opts.Timeout))
	}

	w := &Worker{
		worker:   builder.Open(),
		logger:   log,
		taskType: opts.TaskType,
	}
	log.Info("Worker started", map[string]interface{}{
		"taskType":      opts.TaskType,
		"maxJobsActive": opts.MaxJobsActive,
	})
	return w
}

func (w *Worker) TaskType() string {
	return w.taskType
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker", map[string]interface{}{"taskType": w.taskType})
	w.worker.Close()
	w.worker.AwaitClose()
}

// CommandTimeout bounds a complete, fail or throw command.
const CommandTimeout = 10 * time.Second

// ActivationTimeout is how long the broker leaves a job with this worker:
// the handler's own timeout plus time to resolve the job afterwards.
func ActivationTimeout(handlerTimeout time.Duration) time.Duration {
	return handlerTimeout + CommandTimeout
}

// CommandContext returns the context a job is resolved on. It is detached
// from the job's own deadline so a job that ran out of time can still be
// failed.
func CommandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), CommandTimeout)
}
