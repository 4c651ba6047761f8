package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const healthcheckInterval = 15 * time.Second

const pingTimeout = 5 * time.Second

// Pinger is anything that can be probed for reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MonitorRewriterHealth periodically probes the remote rewrite service and
// keeps the shared health flag current. The rephrase engine consults the
// flag to skip remote calls while the service is down.
func MonitorRewriterHealth(ctx context.Context, healthy *atomic.Bool, remote Pinger) {
	probe := func() {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()

		err := remote.Ping(pingCtx)
		wasHealthy := healthy.Load()
		healthy.Store(err == nil)

		if err != nil && wasHealthy {
			slog.Warn("[HealthCheck] Rewrite service is unhealthy",
				slog.String("error", err.Error()))
		} else if err == nil && !wasHealthy {
			slog.Info("[HealthCheck] Rewrite service recovered")
		}
	}

	probe()

	ticker := time.NewTicker(healthcheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe()
		}
	}
}
