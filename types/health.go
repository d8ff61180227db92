package types

// HealthStatus is the state of the service or one of its dependencies.
// UP and DOWN are per dependency; DEGRADED means the service answers but
// the cache is unreachable, so every read goes to the backing store.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "UP"
	HealthStatusDown     HealthStatus = "DOWN"
	HealthStatusDegraded HealthStatus = "DEGRADED"
)

// Component names reported in HealthCheck.Components.
const (
	HealthComponentStore = "store"
	HealthComponentCache = "cache"
)

type HealthComponent struct {
	Status  HealthStatus `json:"status"`
	Details string       `json:"details,omitempty"`
}

// HealthCheck is the body of the health endpoints. Status is DOWN when the
// store is down, DEGRADED when only the cache is, and UP otherwise.
type HealthCheck struct {
	Status     HealthStatus               `json:"status"`
	Components map[string]HealthComponent `json:"components"`
	Version    string                     `json:"version"`
	Timestamp  string                     `json:"timestamp"`
	Uptime     string                     `json:"uptime"`
	// UptimeSeconds is Uptime in whole seconds, for machine consumers.
	UptimeSeconds int64 `json:"uptime_seconds"`
}
