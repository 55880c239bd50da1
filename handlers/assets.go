package handlers

import (
	"errors"
	"net/http"

	"vaxremind/services/events"
	"vaxremind/services/offline"
	"vaxremind/utils"

	"github.com/gin-gonic/gin"
)

// AssetHandler serves the app shell cache first, falling back to the origin.
func (h *WorkerHandler) AssetHandler(c *gin.Context) {
	logger := getLogger(c, h.logger)
	path := c.Param("path")
	if path == "" {
		path = "/"
	}

	res, err := h.registry.Dispatch(c.Request.Context(), events.Event{Kind: events.KindFetch, Path: path})
	if err != nil {
		if errors.Is(err, offline.ErrNetworkUnavailable) {
			utils.JSONError(c, logger, http.StatusServiceUnavailable, "resource unavailable offline", err.Error())
			return
		}
		utils.JSONError(c, logger, http.StatusInternalServerError, "failed to serve resource", err.Error())
		return
	}

	resource, ok := res.(*offline.Resource)
	if !ok || resource == nil {
		utils.JSONError(c, logger, http.StatusInternalServerError, "failed to serve resource", "empty response")
		return
	}
	if resource.FromCache {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.Data(http.StatusOK, resource.ContentType, resource.Body)
}
