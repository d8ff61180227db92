package services

import (
	"context"
	"time"

	"github.com/NomadCrew/splitly-backend/logger"
	"github.com/NomadCrew/splitly-backend/types"
	"go.uber.org/zap"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService struct {
	store     Pinger
	cache     Pinger
	version   string
	startTime time.Time
	log       *zap.SugaredLogger
}

// NewHealthService checks the backing store and the cache store. Either may be
// nil when the dependency cannot be probed.
func NewHealthService(store, cache Pinger, version string) *HealthService {
	return &HealthService{
		store:     store,
		cache:     cache,
		version:   version,
		startTime: time.Now(),
		log:       logger.GetLogger(),
	}
}

// CheckHealth reports DOWN when the backing store is unreachable. A cache
// outage only degrades the service since every read falls back to the store.
func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := make(map[string]types.HealthComponent)
	overallStatus := types.HealthStatusUp

	storeStatus := h.check(ctx, types.HealthComponentStore, h.store, types.HealthStatusDown)
	components[types.HealthComponentStore] = storeStatus
	if storeStatus.Status == types.HealthStatusDown {
		overallStatus = types.HealthStatusDown
	}

	cacheStatus := h.check(ctx, types.HealthComponentCache, h.cache, types.HealthStatusDegraded)
	components[types.HealthComponentCache] = cacheStatus
	if cacheStatus.Status == types.HealthStatusDegraded && overallStatus != types.HealthStatusDown {
		overallStatus = types.HealthStatusDegraded
	}

	uptime := time.Since(h.startTime)
	return types.HealthCheck{
		Status:        overallStatus,
		Components:    components,
		Version:       h.version,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime / time.Second),
	}
}

func (h *HealthService) check(ctx context.Context, name string, p Pinger, failed types.HealthStatus) types.HealthComponent {
	if p == nil {
		return types.HealthComponent{Status: types.HealthStatusUp, Details: "not probed"}
	}
	if err := p.Ping(ctx); err != nil {
		h.log.Errorw("Health check failed", "component", name, "error", err)
		return types.HealthComponent{
			Status:  failed,
			Details: name + " connection failed",
		}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}
