package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController reports process liveness and the reachability of the
// backing stores.
type HealthController struct {
	probes map[string]func(context.Context) error
}

// NewHealthController creates a HealthController over named dependency
// probes, each a ping against one backing store.
func NewHealthController(probes map[string]func(context.Context) error) *HealthController {
	return &HealthController{probes: probes}
}

// Health runs every dependency probe and returns 200 when all pass, 503
// with the per-dependency breakdown otherwise.
func (ctrl HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := gin.H{}
	for name, probe := range ctrl.probes {
		if err := probe(ctx); err != nil {
			status = http.StatusServiceUnavailable
			deps[name] = "unreachable"
			continue
		}
		deps[name] = "ok"
	}

	body := gin.H{"status": "ok"}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	if len(deps) > 0 {
		body["dependencies"] = deps
	}

	c.JSON(status, body)
}
