package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sharath018/secret-santa-backend/config"
	_ "github.com/sharath018/secret-santa-backend/docs"
	"github.com/sharath018/secret-santa-backend/internal/assignment"
	"github.com/sharath018/secret-santa-backend/internal/event"
	"github.com/sharath018/secret-santa-backend/internal/message"
	"github.com/sharath018/secret-santa-backend/internal/notification"
	"github.com/sharath018/secret-santa-backend/internal/participant"
	"github.com/sharath018/secret-santa-backend/internal/reports"
	"github.com/sharath018/secret-santa-backend/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups every HTTP handler the API exposes.
type Handlers struct {
	Event        *event.Handler
	Participant  *participant.Handler
	Assignment   *assignment.Handler
	Message      *message.Handler
	Notification *notification.Handler
	Reports      *reports.Handler
}

func Setup(r *gin.Engine, cfg *config.Config, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter(300, time.Minute)) // Global rate limit per IP
	api.Use(middleware.AuditMiddleware())             // Captures IP for the audit trail

	// ========== Public ==========
	api.POST("/events", h.Event.CreateEvent)
	api.GET("/events/code/:code", h.Event.GetByJoinCode)
	api.GET("/events/:id", h.Event.GetEventDetails)
	api.GET("/events/:id/participants", h.Participant.List)
	api.POST("/participants/join",
		middleware.RateLimiter(int64(cfg.JoinRateLimit), time.Minute), // guessing join codes
		h.Participant.Join,
	)

	// ========== Caller identified by X-User-Email ==========
	protected := api.Group("")
	protected.Use(middleware.RequireCaller())

	protected.GET("/me/events", h.Event.ListMyEvents)

	eventRoutes := protected.Group("/events/:id")
	{
		eventRoutes.PUT("", h.Event.UpdateEvent)
		eventRoutes.DELETE("", h.Event.DeleteEvent)
		eventRoutes.GET("/audit-logs", h.Event.ListAuditLogs)

		eventRoutes.GET("/participants/me", h.Participant.GetMe)
		eventRoutes.PUT("/participants/me/wishlist", h.Participant.UpdateWishlist)
		eventRoutes.PUT("/participants/me/status", h.Participant.UpdateStatus)
		eventRoutes.DELETE("/participants/:email", h.Participant.Remove)
		eventRoutes.POST("/invitations", h.Participant.Invite)

		eventRoutes.POST("/draw", h.Assignment.Draw)
		eventRoutes.POST("/reset", h.Assignment.Reset)
		eventRoutes.GET("/assignments/me", h.Assignment.GetMine)
		eventRoutes.GET("/assignments", h.Assignment.List)

		eventRoutes.POST("/messages", h.Message.Send)
		eventRoutes.GET("/messages", h.Message.List)

		eventRoutes.GET("/notifications", h.Notification.ListByEvent)
		eventRoutes.GET("/roster/export", h.Reports.ExportRoster)
	}

	protected.DELETE("/messages/:id", h.Message.Delete)
}
