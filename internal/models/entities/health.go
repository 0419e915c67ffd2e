package entities

import "time"

// ProbeResult is the outcome of one dependency check
type ProbeResult struct {
	Status    string `json:"status"`
	Details   string `json:"details"`
	LatencyMS int64  `json:"latency_ms"`
}

type HealthCheckResponse struct {
	Status   string                 `json:"status"`
	Services map[string]ProbeResult `json:"services"`
	UpSince  time.Time              `json:"up_since"`
	Uptime   string                 `json:"uptime"`
}

// Healthy reports whether every probe passed
func (h HealthCheckResponse) Healthy() bool {
	for _, p := range h.Services {
		if p.Status != "ok" {
			return false
		}
	}
	return true
}
