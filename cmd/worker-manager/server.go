package main

import (
	"encoding/json"
	"net/http"
	"time"

	"skill-match-workers/internal/common/database"
	"skill-match-workers/internal/common/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const readinessTimeout = 2 * time.Second

func newHealthMux(deps map[string]database.Pinger, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		failures := database.CheckAll(r.Context(), readinessTimeout, deps)
		if len(failures) > 0 {
			details := make(map[string]string, len(failures))
			for name, err := range failures {
				details[name] = err.Error()
			}
			log.Warn("Readiness check failed", map[string]interface{}{"failures": details})
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":   "not ready",
				"failures": details,
				"time":     time.Now().Format(time.RFC3339),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
