package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Secret for foreground client tokens. Empty disables client authentication.
	ClientSecret []byte

	HealthHandler gin.HandlerFunc

	// Foreground bridge endpoints
	ConnectClientHandler    gin.HandlerFunc
	DisconnectClientHandler gin.HandlerFunc
	MessageHandler          gin.HandlerFunc

	// Background trigger endpoints
	SyncHandler gin.HandlerFunc
	PushHandler gin.HandlerFunc

	// Notification interaction endpoints
	NotificationClickHandler gin.HandlerFunc
	NotificationOpenHandler  gin.HandlerFunc

	// Offline app shell
	AssetHandler gin.HandlerFunc
}

// NewHandlerBundle exposes every WorkerHandler endpoint.
func NewHandlerBundle(h *WorkerHandler) *HandlerBundle {
	return &HandlerBundle{
		ClientSecret:             h.clientSecret,
		HealthHandler:            h.HealthHandler,
		ConnectClientHandler:     h.ConnectClientHandler,
		DisconnectClientHandler:  h.DisconnectClientHandler,
		MessageHandler:           h.MessageHandler,
		SyncHandler:              h.SyncHandler,
		PushHandler:              h.PushHandler,
		NotificationClickHandler: h.NotificationClickHandler,
		NotificationOpenHandler:  h.NotificationOpenHandler,
		AssetHandler:             h.AssetHandler,
	}
}
