package event

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sharath018/secret-santa-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// CreateEvent handles POST /events
// @Summary Create an event
// @Tags Event
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event"
// @Success 201 {object} CreateEventResponse
// @Failure 400 {object} gin.H
// @Router /events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	res, err := h.Service.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ===========================
// 🔍 Get Event By Join Code - GET /events/code/:code
func (h *Handler) GetByJoinCode(c *gin.Context) {
	ev, err := h.Service.GetByJoinCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

// ===========================
// 🔍 Get Event Details - GET /events/:id
func (h *Handler) GetEventDetails(c *gin.Context) {
	details, err := h.Service.GetEventDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// ===========================
// 📄 My Events - GET /me/events
func (h *Handler) ListMyEvents(c *gin.Context) {
	events, err := h.Service.ListMyEvents(c.Request.Context(), middleware.CallerEmail(c))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// ===========================
// 🛠 Update Event - PUT /events/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	if err := h.Service.UpdateEvent(c.Request.Context(), c.Param("id"), middleware.CallerEmail(c), &req); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event updated successfully"})
}

// ===========================
// ❌ Delete Event - DELETE /events/:id
func (h *Handler) DeleteEvent(c *gin.Context) {
	if err := h.Service.DeleteEvent(c.Request.Context(), c.Param("id"), middleware.CallerEmail(c)); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted successfully"})
}

// ===========================
// 🧾 Audit Trail - GET /events/:id/audit-logs?page=&limit=
func (h *Handler) ListAuditLogs(c *gin.Context) {
	ctx := c.Request.Context()
	ev, err := h.Service.CheckOrganizer(ctx, c.Param("id"), middleware.CallerEmail(c), "view the audit trail")
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	logs, err := h.Service.AuditSvc.ListByEvent(ctx, ev.ID, page, limit)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
