// internal/workers/matching/rank-users-for-project/handler.go
package rankusersforproject

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skill-match-workers/internal/common/camunda"
	"skill-match-workers/internal/common/config"
	"skill-match-workers/internal/common/errors"
	"skill-match-workers/internal/common/logger"
	"skill-match-workers/internal/common/metrics"
	"skill-match-workers/internal/common/observability"
	"skill-match-workers/internal/common/validation"
	"skill-match-workers/internal/corpus"
	"skill-match-workers/internal/matching"
	"skill-match-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "rank-users-for-project"

type Handler struct {
	config       *Config
	engine       *matching.Engine
	corpus       corpus.Provider
	registry     *registry.ActivityRegistry
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Engine        *matching.Engine
	Corpus        corpus.Provider
	Registry      *registry.ActivityRegistry
	Observability *observability.Observability
	Logger        logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	cfg := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.Engine == nil || opts.Corpus == nil {
		return nil, fmt.Errorf("%s requires an engine and a corpus provider", TaskType)
	}

	reg := opts.Registry
	if reg == nil {
		var err error
		if reg, err = registry.Default(); err != nil {
			return nil, err
		}
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = logger.ForTask(log, TaskType)

	return &Handler{
		config:       cfg,
		engine:       opts.Engine,
		corpus:       opts.Corpus,
		registry:     reg,
		obs:          opts.Observability,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}, nil
}

func (h *Handler) Config() *Config {
	return h.config
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("Processing job", map[string]interface{}{
		"jobKey":      job.GetKey(),
		"workflowKey": job.GetProcessInstanceKey(),
	})

	input, err := h.parseInput(job.GetVariables())
	if err != nil {
		h.failJob(client, job, err, startTime)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	output, err := h.Execute(ctx, input)
	cancel()
	if err != nil {
		h.failJob(client, job, err, startTime)
		return
	}

	h.completeJob(client, job, output, startTime)
}

// Execute ranks candidate users for input.ProjectID. A project without
// skills yields an empty result, not an error.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || input.ProjectID == "" {
		return nil, errors.NewInvalidMatchRequestError("projectId is required")
	}

	var opts matching.UserRankingOptions
	if input.Limit != nil {
		if *input.Limit < 0 {
			return nil, errors.NewInvalidMatchRequestError(fmt.Sprintf("limit must not be negative, got %d", *input.Limit))
		}
		opts.Limit = *input.Limit
	}

	snapshot, err := h.corpus.LoadSnapshot(ctx)
	if err != nil {
		if _, ok := errors.AsStandardError(err); ok {
			return nil, err
		}
		return nil, errors.NewCorpusUnavailableError("corpus", err)
	}

	resp, err := h.engine.RankUsersForProject(ctx, input.ProjectID, snapshot, opts)
	if err != nil {
		return nil, err
	}

	metrics.ObserveRanking(resp.Meta.Algorithm, resp.Meta.TotalCandidates, resp.Meta.MatchedCandidates)
	if h.obs != nil {
		h.obs.RecordRanking(ctx, resp.Meta.Algorithm, resp.Meta.TotalCandidates, resp.Meta.MatchedCandidates)
	}

	return &Output{Matches: resp.Matches, Meta: resp.Meta}, nil
}

func (h *Handler) parseInput(variables string) (*Input, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(variables), &raw); err != nil {
		return nil, errors.NewParseError(err)
	}
	if err := validation.ValidateActivityInput(h.registry, TaskType, raw); err != nil {
		return nil, err
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewParseError(err)
	}
	return &input, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output, startTime time.Time) {
	ctx, cancel := camunda.CommandContext()
	defer cancel()

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		h.failJob(client, job, errors.NewInternalError(err), startTime)
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("Failed to send complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	duration := time.Since(startTime)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(duration.Seconds())
	if h.obs != nil {
		h.obs.RecordJobProcessed(ctx, TaskType, "completed")
		h.obs.RecordJobDuration(ctx, TaskType, duration, "completed")
	}

	h.logger.Info("Job completed", map[string]interface{}{
		"jobKey":     job.GetKey(),
		"projectId":  output.Meta.ProjectID,
		"matched":    output.Meta.MatchedCandidates,
		"requestId":  output.Meta.RequestID,
		"durationMs": duration.Milliseconds(),
	})
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error, startTime time.Time) {
	ctx, cancel := camunda.CommandContext()
	defer cancel()

	stdErr := errors.Normalize(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	if h.obs != nil {
		h.obs.RecordJobProcessed(ctx, TaskType, "failed")
		h.obs.RecordJobDuration(ctx, TaskType, time.Since(startTime), "failed")
	}
	h.errorHandler.HandleJobError(ctx, client, job, stdErr)
}
