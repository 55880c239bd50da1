package handlers

import (
	"net/http"

	"vaxremind/services/events"
	"vaxremind/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageHandler forwards a foreground message to the bridge.
// Malformed or unrecognized messages are accepted and ignored.
func (h *WorkerHandler) MessageHandler(c *gin.Context) {
	logger := getLogger(c, h.logger)
	raw, err := c.GetRawData()
	if err != nil {
		utils.JSONError(c, logger, http.StatusBadRequest, "failed to read message", err.Error())
		return
	}

	if _, err := h.registry.Dispatch(c.Request.Context(), events.Event{Kind: events.KindMessage, Message: raw}); err != nil {
		logger.Error("message handling failed", zap.Error(err))
		utils.JSONError(c, logger, http.StatusInternalServerError, "failed to handle message", err.Error())
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}
