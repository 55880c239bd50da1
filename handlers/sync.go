package handlers

import (
	"net/http"

	"vaxremind/services/events"
	"vaxremind/services/tasks"
	"vaxremind/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SyncHandler registers a one-shot sync for the tag. With a queue the pass runs in the worker,
// otherwise it runs before the response is written.
func (h *WorkerHandler) SyncHandler(c *gin.Context) {
	logger := getLogger(c, h.logger)
	tag := c.Param("tag")

	if h.queue != nil {
		task, opts, err := tasks.NewSyncTask(tag, false)
		if err != nil {
			utils.JSONError(c, logger, http.StatusBadRequest, "invalid sync request", err.Error())
			return
		}
		info, err := h.queue.EnqueueContext(c.Request.Context(), task, opts...)
		if err != nil {
			logger.Error("failed to enqueue sync", zap.String("tag", tag), zap.Error(err))
			utils.JSONError(c, logger, http.StatusServiceUnavailable, "failed to enqueue sync", err.Error())
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"tag": tag, "queued": true, "taskId": info.ID})
		return
	}

	if _, err := h.registry.Dispatch(c.Request.Context(), events.Event{Kind: events.KindSync, Tag: tag}); err != nil {
		utils.JSONError(c, logger, http.StatusInternalServerError, "sync failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"tag": tag, "queued": false})
}
