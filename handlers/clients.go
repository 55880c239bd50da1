package handlers

import (
	"net/http"

	"vaxremind/utils"

	"github.com/gin-gonic/gin"
)

// ConnectClientHandler attaches a foreground client. When client authentication is enabled the
// response carries the bearer token for the message endpoint.
func (h *WorkerHandler) ConnectClientHandler(c *gin.Context) {
	logger := getLogger(c, h.logger)
	id := h.lifecycle.ClientConnected()

	resp := gin.H{"clientId": id}
	if len(h.clientSecret) > 0 {
		token, err := utils.GenerateClientToken(h.clientSecret, id, h.tokenTTL)
		if err != nil {
			h.lifecycle.ClientDisconnected(id)
			utils.JSONError(c, logger, http.StatusInternalServerError, "failed to issue client token", err.Error())
			return
		}
		resp["token"] = token
	}
	c.JSON(http.StatusCreated, resp)
}

// DisconnectClientHandler detaches a foreground client. The last detach lets a waiting version activate.
func (h *WorkerHandler) DisconnectClientHandler(c *gin.Context) {
	logger := getLogger(c, h.logger)
	id := c.Param("id")
	if !h.lifecycle.ClientDisconnected(id) {
		utils.JSONError(c, logger, http.StatusNotFound, "client not found", id)
		return
	}
	c.Status(http.StatusNoContent)
}
