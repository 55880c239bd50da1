package handlers

import (
	"encoding/json"
	"net/http"

	"vaxremind/models"
	"vaxremind/services/actions"
	"vaxremind/services/events"
	"vaxremind/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PushHandler shows a push-originated notification. An empty or unparseable body uses the defaults.
func (h *WorkerHandler) PushHandler(c *gin.Context) {
	logger := getLogger(c, h.logger)

	var payload models.PushPayload
	if raw, err := c.GetRawData(); err == nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			logger.Debug("unparseable push payload, using defaults", zap.Error(err))
			payload = models.PushPayload{}
		}
	}

	if _, err := h.registry.Dispatch(c.Request.Context(), events.Event{Kind: events.KindPush, Push: payload}); err != nil {
		utils.JSONError(c, logger, http.StatusBadGateway, "failed to show push notification", err.Error())
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "shown"})
}

// NotificationClickHandler routes a click and answers with the page to open.
func (h *WorkerHandler) NotificationClickHandler(c *gin.Context) {
	logger := getLogger(c, h.logger)

	var click models.NotificationClick
	if err := c.ShouldBindJSON(&click); err != nil {
		utils.JSONError(c, logger, http.StatusBadRequest, "invalid notification click", err.Error())
		return
	}
	nav, err := h.route(c, click)
	if err != nil {
		utils.JSONError(c, logger, http.StatusInternalServerError, "failed to route notification click", err.Error())
		return
	}
	c.JSON(http.StatusOK, nav)
}

// NotificationOpenHandler routes a click carried in the query string and redirects to the page.
func (h *WorkerHandler) NotificationOpenHandler(c *gin.Context) {
	logger := getLogger(c, h.logger)

	click := models.NotificationClick{
		Action: c.Query("action"),
		Tag:    c.Query("tag"),
		Data:   models.NotificationData{ReminderID: c.Query("id")},
	}
	nav, err := h.route(c, click)
	if err != nil {
		utils.JSONError(c, logger, http.StatusInternalServerError, "failed to route notification click", err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, nav.URL)
}

func (h *WorkerHandler) route(c *gin.Context, click models.NotificationClick) (actions.Navigation, error) {
	res, err := h.registry.Dispatch(c.Request.Context(), events.Event{Kind: events.KindNotificationClick, Click: click})
	if err != nil {
		return actions.Navigation{}, err
	}
	nav, _ := res.(actions.Navigation)
	return nav, nil
}
