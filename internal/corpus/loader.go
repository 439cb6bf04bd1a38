package corpus

import (
	"context"
	"time"

	"skill-match-workers/internal/common/logger"
	"skill-match-workers/internal/common/metrics"
	"skill-match-workers/internal/matching"
	"skill-match-workers/internal/models"
)

// Loader wraps a Provider and fills snapshot.IDF from the cache, computing
// and storing it on a miss. Cache failures never fail a load.
type Loader struct {
	provider Provider
	cache    IDFCache
	logger   logger.Logger
}

func NewLoader(provider Provider, cache IDFCache, log logger.Logger) *Loader {
	return &Loader{
		provider: provider,
		cache:    cache,
		logger:   logger.Component(log, "corpus-loader"),
	}
}

func (l *Loader) LoadSnapshot(ctx context.Context) (*models.CorpusSnapshot, error) {
	start := time.Now()
	snapshot, err := l.provider.LoadSnapshot(ctx)
	if err != nil {
		metrics.CorpusLoadDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, err
	}
	metrics.CorpusLoadDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	// A provider that already set IDF (including the degraded empty map)
	// is authoritative and is not cached.
	if snapshot.IDF != nil || l.cache == nil {
		return snapshot, nil
	}

	idf, ok, err := l.cache.Get(ctx)
	switch {
	case err != nil:
		metrics.IDFCacheLookups.WithLabelValues("error").Inc()
		l.logger.Warn("IDF cache read failed", map[string]interface{}{"error": err.Error()})
	case ok:
		metrics.IDFCacheLookups.WithLabelValues("hit").Inc()
		snapshot.IDF = idf
		return snapshot, nil
	default:
		metrics.IDFCacheLookups.WithLabelValues("miss").Inc()
	}

	snapshot.IDF = matching.ComputeIDF(snapshot)
	if err := l.cache.Set(ctx, snapshot.IDF); err != nil {
		l.logger.Warn("IDF cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return snapshot, nil
}

// Invalidate drops the cached IDF so the next load recomputes it.
func (l *Loader) Invalidate(ctx context.Context) error {
	if l.cache == nil {
		return nil
	}
	return l.cache.Invalidate(ctx)
}
