// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	RankingCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matching_ranking_candidates",
			Help:    "Number of candidates scored per ranking call",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"algorithm"},
	)

	RankingMatches = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matching_ranking_matches",
			Help:    "Number of results returned per ranking call",
			Buckets: []float64{0, 1, 5, 10, 25, 50},
		},
		[]string{"algorithm"},
	)

	CorpusLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "matching_corpus_load_duration_seconds",
			Help: "Duration of corpus snapshot loads in seconds",
		},
		[]string{"status"},
	)

	IDFCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_idf_cache_lookups_total",
			Help: "IDF cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)
)

// ObserveRanking records the size of one ranking call.
func ObserveRanking(algorithm string, candidates, matched int) {
	RankingCandidates.WithLabelValues(algorithm).Observe(float64(candidates))
	RankingMatches.WithLabelValues(algorithm).Observe(float64(matched))
}
