package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check probes one dependency. A nil error means healthy.
type Check func(ctx context.Context) error

// Handler reports liveness plus per-dependency status. Degraded
// dependencies are reported but do not fail the endpoint; the process
// is still serving.
type Handler struct {
	checks map[string]Check
}

func NewHandler(checks map[string]Check) *Handler {
	return &Handler{checks: checks}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health", h.Health)
}

func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	components := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			components[name] = err.Error()
			status = "degraded"
		} else {
			components[name] = "ok"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     status,
		"components": components,
		"time":       time.Now().UTC().Format(time.RFC3339),
	})
}
