package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthHandler reports the capability set, installed versions and backing service health.
func (h *WorkerHandler) HealthHandler(c *gin.Context) {
	resp := gin.H{
		"status":       "ok",
		"capabilities": h.caps,
	}
	if h.lifecycle != nil {
		if v, ok := h.lifecycle.Active(); ok {
			resp["active"] = v
		}
		if v, ok := h.lifecycle.Waiting(); ok {
			resp["waiting"] = v
		}
		resp["clients"] = h.lifecycle.Clients()
	}
	if h.health != nil {
		resp["dependencies"] = h.health.Status()
		if !h.health.Healthy() {
			resp["status"] = "degraded"
		}
	}
	if h.liveTags != nil {
		tags, err := h.liveTags.Tags(c.Request.Context())
		if err != nil {
			getLogger(c, h.logger).Warn("listing live notifications failed", zap.Error(err))
			resp["status"] = "degraded"
		} else {
			resp["liveNotifications"] = tags
		}
	}
	c.JSON(http.StatusOK, resp)
}
