package obs

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandlers exposes liveness and readiness probes. Mode, when
// set, reports the active reservation backend so monitoring can tell a
// healthy live session from a degraded fallback one.
type HealthHandlers struct {
	Ready func() error
	Mode  func() string
}

func (h HealthHandlers) Livez(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h HealthHandlers) Readyz(c *gin.Context) {
	body := gin.H{"status": "ok"}
	if h.Mode != nil {
		body["mode"] = h.Mode()
	}
	if h.Ready != nil {
		if err := h.Ready(); err != nil {
			body["status"] = "not ready"
			body["error"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
	}
	c.JSON(http.StatusOK, body)
}
