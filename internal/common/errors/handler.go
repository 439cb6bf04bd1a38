// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// Outcome is the command a failed matching job is resolved with.
type Outcome string

const (
	// OutcomeRetry hands the job back to the broker with fewer retries.
	OutcomeRetry Outcome = "retry"
	// OutcomeThrow raises a BPMN error the process can catch.
	OutcomeThrow Outcome = "throw"
)

// ErrorHandler resolves failed jobs on behalf of the matching workers.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Decide picks the outcome for a job with jobRetries left. Retryable codes
// are retried while the job has more than one attempt remaining.
func Decide(bpmnErr *BPMNError, jobRetries int32) Outcome {
	if bpmnErr.Retries > 0 && jobRetries > 1 {
		return OutcomeRetry
	}
	return OutcomeThrow
}

// HandleJobError sends the fail or throw command for err and reports which
// one it chose.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) Outcome {
	stdErr := Normalize(err)
	bpmnErr := ConvertToBPMNError(stdErr)
	outcome := Decide(bpmnErr, job.Retries)

	h.logError(job, stdErr, bpmnErr, outcome)

	variables, _ := json.Marshal(bpmnErr.ToErrorVariables())
	var sendErr error
	switch outcome {
	case OutcomeRetry:
		sendErr = h.retry(ctx, client, job, bpmnErr, string(variables))
	default:
		sendErr = h.throw(ctx, client, job, bpmnErr, string(variables))
	}
	if sendErr != nil {
		h.logger.Error("Failed to resolve failed job", map[string]interface{}{
			"jobKey":  job.Key,
			"outcome": string(outcome),
			"error":   sendErr.Error(),
		})
	}
	return outcome
}

// Normalize returns the StandardError in err's chain, or wraps err as an
// internal error.
func Normalize(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return NewInternalError(err)
}

// RetriesLeft is what the failed job is handed back with: one less than it
// had, never above the code's own budget.
func RetriesLeft(jobRetries int32, budget int) int32 {
	left := jobRetries - 1
	if left > int32(budget) {
		left = int32(budget)
	}
	if left < 0 {
		left = 0
	}
	return left
}

func (h *ErrorHandler) retry(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, variables string) error {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(RetriesLeft(job.Retries, bpmnErr.Retries)).
		ErrorMessage(bpmnErr.Message)

	withVars, err := cmd.VariablesFromString(variables)
	if err != nil {
		_, err = cmd.Send(ctx)
		return err
	}
	_, err = withVars.Send(ctx)
	return err
}

func (h *ErrorHandler) throw(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, variables string) error {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	withVars, err := cmd.VariablesFromString(variables)
	if err != nil {
		_, err = cmd.Send(ctx)
		return err
	}
	_, err = withVars.Send(ctx)
	return err
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, bpmnErr *BPMNError, outcome Outcome) {
	h.logger.Error("Matching job failed", map[string]interface{}{
		"jobKey":        job.Key,
		"jobType":       job.Type,
		"errorCode":     string(stdErr.Code),
		"errorCategory": GetErrorCategory(stdErr.Code),
		"message":       bpmnErr.Message,
		"details":       stdErr.Details,
		"outcome":       string(outcome),
		"retries":       RetriesLeft(job.Retries, bpmnErr.Retries),
		"workflowKey":   job.ProcessInstanceKey,
	})
}
