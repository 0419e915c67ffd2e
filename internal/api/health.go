package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"infinite-experiment/crewcenter/internal/common"
	"infinite-experiment/crewcenter/internal/db/repositories"
	"infinite-experiment/crewcenter/internal/metrics"
	"infinite-experiment/crewcenter/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

const healthProbeKey = "HEALTH_probe"

type probe func(ctx context.Context) error

func runProbe(ctx context.Context, p probe, okDetails string) entities.ProbeResult {
	start := time.Now()
	err := p(ctx)
	res := entities.ProbeResult{Status: "ok", Details: okDetails, LatencyMS: time.Since(start).Milliseconds()}
	if err != nil {
		res.Status = "down"
		res.Details = err.Error()
	}
	return res
}

func cacheProbe(cache common.CacheInterface) probe {
	return func(context.Context) error {
		var got string
		cache.Set(healthProbeKey, "ok", time.Minute)
		if !cache.Load(healthProbeKey, &got) || got != "ok" {
			return errors.New("cache round trip failed")
		}
		return nil
	}
}

// HealthCheckHandler handles GET /healthCheck. It answers 503 when the report
// store or the cache is unreachable.
func HealthCheckHandler(
	db *sqlx.DB,
	pinger *repositories.PirepDuplicateRepo,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
	upSince time.Time,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		resp := entities.HealthCheckResponse{
			Services: map[string]entities.ProbeResult{
				"database": runProbe(ctx, pinger.Ping, "Report store reachable"),
				"cache":    runProbe(ctx, cacheProbe(cache), "Cache reachable"),
			},
			UpSince: upSince,
			Uptime:  time.Since(upSince).Round(time.Second).String(),
		}

		if metricsReg != nil {
			stats := db.Stats()
			metricsReg.DBConnections.WithLabelValues("open").Set(float64(stats.OpenConnections))
			metricsReg.DBConnections.WithLabelValues("in_use").Set(float64(stats.InUse))
			metricsReg.DBConnections.WithLabelValues("idle").Set(float64(stats.Idle))
		}

		code := http.StatusOK
		resp.Status = "ok"
		if !resp.Healthy() {
			code = http.StatusServiceUnavailable
			resp.Status = "down"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
