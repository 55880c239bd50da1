package routes

import (
	"net/http"
	"time"

	"vaxremind/handlers"
	"vaxremind/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers the health endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
	r.HEAD("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
}

// RegisterClientRoutes registers the foreground bridge endpoints.
func RegisterClientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/clients", hb.ConnectClientHandler)
		api.DELETE("/clients/:id", hb.DisconnectClientHandler)

		// Protected routes (require a client token when a secret is configured)
		protected := api.Group("")
		protected.Use(middleware.ClientAuthMiddleware(hb.ClientSecret))
		protected.POST("/messages", hb.MessageHandler)
	}
}

// RegisterTriggerRoutes registers the background sync and push triggers.
func RegisterTriggerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/sync/:tag", hb.SyncHandler)
		api.POST("/push", hb.PushHandler)
	}
}

// RegisterNotificationRoutes registers the notification interaction endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/notifications/click", hb.NotificationClickHandler)
	r.GET("/notifications/open", hb.NotificationOpenHandler)
}

// RegisterAppRoutes registers the offline app shell.
func RegisterAppRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/app/*path", hb.AssetHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Cache"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterClientRoutes(r, hb)
	RegisterTriggerRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterAppRoutes(r, hb)
}
