// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skill-match-workers/internal/common/camunda"
	"skill-match-workers/internal/common/config"
	"skill-match-workers/internal/common/database"
	"skill-match-workers/internal/common/logger"
	"skill-match-workers/internal/common/observability"
	"skill-match-workers/internal/corpus"
	"skill-match-workers/internal/matching"
	"skill-match-workers/pkg/registry"

	epm "skill-match-workers/internal/workers/matching/explain-project-match"
	rpu "skill-match-workers/internal/workers/matching/rank-projects-for-user"
	rup "skill-match-workers/internal/workers/matching/rank-users-for-project"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format).With(zap.String("service", cfg.Observability.ServiceName))
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	log.Info("Starting worker manager...", map[string]interface{}{
		"environment":   cfg.App.Environment,
		"projectSource": cfg.Matching.ProjectSource,
	})

	ctx := context.Background()

	obs := observability.New(cfg.Observability, log, prometheus.DefaultRegisterer)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		obs.Shutdown(shutdownCtx)
	}()

	// --- Zeebe ---
	zeebe, err := camunda.NewClientWithConfig(ctx, camunda.ClientConfigFrom(cfg.Camunda))
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	log.Info("Zeebe client connected successfully", nil)

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.OpenPostgres(ctx, cfg.Database.Postgres)
		return err
	}, 15, 2*time.Second, log, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()

	// --- Redis ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.OpenRedis(ctx, cfg.Database.Redis)
		return err
	}, 10, 2*time.Second, log, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()

	readiness := map[string]database.Pinger{
		"postgres": pg,
		"redis":    redis,
		"zeebe":    zeebe,
	}

	// --- Elasticsearch (only when it serves projects) ---
	var projects corpus.ProjectSource
	if cfg.Matching.ProjectSource == config.ProjectSourceElasticsearch {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.OpenElasticsearch(ctx, cfg.Database.Elasticsearch, cfg.Matching.ElasticsearchIndex)
			return err
		}, 15, 2*time.Second, log, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		projects = corpus.NewElasticsearchProjectSource(esClient.Client, esClient.Index(), log)
		readiness["elasticsearch"] = esClient
	}

	// --- Corpus + engine ---
	loader := corpus.NewLoader(
		corpus.NewPostgresProvider(pg.DB, projects, log),
		corpus.NewRedisIDFCache(redis.Client, config.GetDuration(cfg.Matching.IDFCacheTTL)),
		log,
	)
	engine := matching.NewEngine(&matching.Config{
		DefaultLimit:      cfg.Matching.DefaultLimit,
		MaxLimit:          cfg.Matching.MaxLimit,
		Parallelism:       cfg.Matching.Parallelism,
		ParallelThreshold: cfg.Matching.ParallelThreshold,
	}, log, matching.WithTracer(obs.Tracer("skill-match-workers/matching")))

	reg, err := registry.Default()
	if err != nil {
		zapLog.Fatal("activity registry failed to load", zap.Error(err))
	}

	workers, err := startWorkers(zeebe, cfg, engine, loader, reg, obs, log)
	if err != nil {
		zapLog.Fatal("worker registration failed", zap.Error(err))
	}
	taskTypes := make([]string, 0, len(workers))
	for _, w := range workers {
		taskTypes = append(taskTypes, w.TaskType())
	}
	log.Info("Workers registered", map[string]interface{}{"taskTypes": taskTypes})

	// --- Health & Metrics Server ---
	server := &http.Server{
		Addr:              cfg.Observability.MetricsAddr,
		Handler:           newHealthMux(readiness, log),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Health/Metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutdown signal received, stopping workers...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping health server", map[string]interface{}{"error": err.Error()})
	}
	if err := zeebe.Close(); err != nil {
		log.Error("Error closing Zeebe client", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Worker manager stopped gracefully", nil)
}

type registeredHandler struct {
	taskType string
	handler  camunda.JobHandler
}

func startWorkers(
	zeebe *camunda.Client,
	cfg *config.Config,
	engine *matching.Engine,
	source corpus.Provider,
	reg *registry.ActivityRegistry,
	obs *observability.Observability,
	log logger.Logger,
) ([]*camunda.Worker, error) {
	rankProjects, err := rpu.NewHandler(rpu.HandlerOptions{
		AppConfig: cfg, Engine: engine, Corpus: source, Registry: reg, Observability: obs, Logger: log,
	})
	if err != nil {
		return nil, err
	}
	rankUsers, err := rup.NewHandler(rup.HandlerOptions{
		AppConfig: cfg, Engine: engine, Corpus: source, Registry: reg, Observability: obs, Logger: log,
	})
	if err != nil {
		return nil, err
	}
	explain, err := epm.NewHandler(epm.HandlerOptions{
		AppConfig: cfg, Engine: engine, Corpus: source, Registry: reg, Observability: obs, Logger: log,
	})
	if err != nil {
		return nil, err
	}

	handlers := []registeredHandler{
		{rpu.TaskType, rankProjects},
		{rup.TaskType, rankUsers},
		{epm.TaskType, explain},
	}

	var workers []*camunda.Worker
	for _, h := range handlers {
		if !config.IsWorkerEnabled(cfg, h.taskType) {
			log.Info("Worker disabled", map[string]interface{}{"taskType": h.taskType})
			continue
		}
		wc := config.GetWorkerConfig(cfg, h.taskType)
		workers = append(workers, camunda.StartWorker(zeebe.GetClient(), camunda.WorkerOptions{
			TaskType:      h.taskType,
			MaxJobsActive: wc.MaxJobsActive,
			Timeout:       config.GetDuration(wc.Timeout),
		}, h.handler, log))
	}
	return workers, nil
}
