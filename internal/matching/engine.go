// Package matching ranks projects for a user and users for a project from a
// corpus snapshot. Every call is computed from the snapshot it is given and
// keeps no state between calls.
package matching

import (
	"time"

	"skill-match-workers/internal/common/logger"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultLimit             = 10
	MaxLimit                 = 50
	DefaultMinScore          = 0.1
	DefaultParallelism       = 8
	DefaultParallelThreshold = 64

	tracerName = "skill-match-workers/matching"
)

type Config struct {
	DefaultLimit      int
	MaxLimit          int
	Parallelism       int
	ParallelThreshold int
}

func DefaultConfig() *Config {
	return &Config{
		DefaultLimit:      DefaultLimit,
		MaxLimit:          MaxLimit,
		Parallelism:       DefaultParallelism,
		ParallelThreshold: DefaultParallelThreshold,
	}
}

type Engine struct {
	config *Config
	logger logger.Logger
	tracer trace.Tracer
	now    func() time.Time
	newID  func() string
}

type Option func(*Engine)

func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithRequestIDs(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

func NewEngine(config *Config, log logger.Logger, opts ...Option) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	e := &Engine{
		config: config,
		logger: logger.Component(log, "matching-engine"),
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// effectiveLimit applies the default to a zero limit and the hard cap to
// anything above it.
func (e *Engine) effectiveLimit(limit int) int {
	if limit <= 0 {
		limit = e.config.DefaultLimit
		if limit <= 0 {
			limit = DefaultLimit
		}
	}
	maxLimit := e.config.MaxLimit
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}
