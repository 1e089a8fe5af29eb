package controllers

import (
	"net/http"
	"time"

	"github.com/craftloop/craftloop-backend/api/responses"
	"github.com/craftloop/craftloop-backend/pkg/db"
	"github.com/craftloop/craftloop-backend/pkg/logger"
	"github.com/craftloop/craftloop-backend/pkg/redis"
)

type HealthController struct {
	db    db.Pinger
	cache redis.Pinger
	logg  *logger.Logger
}

func NewHealthController(dbPinger db.Pinger, cachePinger redis.Pinger, logg *logger.Logger) *HealthController {
	return &HealthController{db: dbPinger, cache: cachePinger, logg: logg}
}

// Live only confirms the process is serving requests.
func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	responses.WriteData(w, http.StatusOK, map[string]any{"status": "ok"})
}

// Check reports readiness of the datastore dependencies. Any failing check
// degrades the overall status and the response code.
func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 2*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if c.db != nil {
		if err := c.db.Ping(ctx); err != nil {
			checks["database"] = "down"
			healthy = false
			c.logg.Warn(r.Context(), "database health check failed")
		} else {
			checks["database"] = "ok"
		}
	}
	if c.cache != nil {
		if err := c.cache.Ping(ctx); err != nil {
			checks["redis"] = "down"
			healthy = false
			c.logg.Warn(r.Context(), "redis health check failed")
		} else {
			checks["redis"] = "ok"
		}
	}

	status := "ok"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	responses.WriteData(w, code, map[string]any{
		"status": status,
		"checks": checks,
	})
}
