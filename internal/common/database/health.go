package database

import (
	"context"
	"sort"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckAll pings every dependency with its own timeout and returns the
// failures keyed by name. An empty map means everything is reachable.
func CheckAll(ctx context.Context, timeout time.Duration, deps map[string]Pinger) map[string]error {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	failures := make(map[string]error)
	for _, name := range names {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		if err := deps[name].Ping(pingCtx); err != nil {
			failures[name] = err
		}
		cancel()
	}
	return failures
}
