package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"marketpulse/internal/analytics"
	"marketpulse/internal/metrics"
	"marketpulse/internal/mw"
)

type computeFunc func(ctx context.Context, actorID, period string) (any, error)

// serve wraps one analytics computation: it resolves the actor, bounds the
// whole fan-out by timeout and maps failures to a single error response.
func serve(role, metric string, timeout time.Duration, compute computeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		actor, ok := mw.ActorFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		period := r.URL.Query().Get("period")
		if _, known := analytics.ParsePeriod(period); !known && period != "" {
			metrics.UnknownPeriodTotal.Inc()
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		start := time.Now()
		result, err := compute(ctx, actor.ID, period)
		metrics.OverviewDuration.WithLabelValues(role, metric).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.OverviewFailuresTotal.WithLabelValues(role, metric).Inc()
			slog.Error("analytics request failed", "role", role, "metric", metric, "actor", actor.ID, "error", err)
			switch {
			case errors.Is(err, context.DeadlineExceeded):
				http.Error(w, "analytics timed out", http.StatusGatewayTimeout)
			case errors.Is(err, analytics.ErrRetrieval):
				http.Error(w, "analytics unavailable", http.StatusInternalServerError)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}
