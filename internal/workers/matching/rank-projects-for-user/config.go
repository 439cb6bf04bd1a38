// internal/workers/matching/rank-projects-for-user/config.go
package rankprojectsforuser

import (
	"fmt"
	"time"

	"skill-match-workers/internal/common/config"
	"skill-match-workers/internal/matching"
)

type Config struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxJobsActive   int           `mapstructure:"max_jobs_active"`
	Timeout         time.Duration `mapstructure:"timeout"`
	DefaultMinScore float64       `mapstructure:"default_min_score"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		MaxJobsActive:   5,
		Timeout:         30 * time.Second,
		DefaultMinScore: matching.DefaultMinScore,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.DefaultMinScore < 0 || c.DefaultMinScore > 1 {
		return fmt.Errorf("default_min_score must be between 0 and 1")
	}
	return nil
}

func createConfigFromAppConfig(appCfg *config.Config, custom *Config) *Config {
	if custom != nil {
		return custom
	}
	cfg := DefaultConfig()
	if appCfg == nil {
		return cfg
	}

	wc := config.GetWorkerConfig(appCfg, TaskType)
	cfg.Enabled = wc.Enabled
	cfg.MaxJobsActive = wc.MaxJobsActive
	cfg.Timeout = config.GetDuration(wc.Timeout)
	cfg.DefaultMinScore = appCfg.Matching.DefaultMinScore
	return cfg
}
