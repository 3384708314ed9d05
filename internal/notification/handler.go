package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sharath018/secret-santa-backend/internal/event"
	"github.com/sharath018/secret-santa-backend/middleware"
)

type Handler struct {
	Service Service
	Events  *event.Service
}

func NewHandler(s Service, events *event.Service) *Handler {
	return &Handler{Service: s, Events: events}
}

// ===========================
// 📨 Delivery log - GET /events/:id/notifications (organizer only)
func (h *Handler) ListByEvent(c *gin.Context) {
	ctx := c.Request.Context()
	ev, err := h.Events.CheckOrganizer(ctx, c.Param("id"), middleware.CallerEmail(c), "view notifications")
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	logs, err := h.Service.ListByEvent(ctx, ev.ID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	if logs == nil {
		logs = []NotificationLog{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": logs})
}
