package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	ready    func() bool
	surfaces []string
}

// NewHealthHandler reports ready once ready() holds; surfaces lists the mounted API surfaces
func NewHealthHandler(ready func() bool, surfaces ...string) *HealthHandler {
	return &HealthHandler{
		ready:    ready,
		surfaces: surfaces,
	}
}

func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	if h.ready != nil && !h.ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"reason": "fixture store not loaded",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"surfaces": h.surfaces,
	})
}
