package assignment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sharath018/secret-santa-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// Draw handles POST /events/:id/draw
// @Summary Draw Secret Santa assignments
// @Description Organizer only. Pairs every accepted participant with someone other than themselves, once per event until reset.
// @Tags Assignment
// @Produce json
// @Param id path string true "Event ID"
// @Param X-User-Email header string true "Caller email"
// @Success 200 {object} DrawResult
// @Failure 403 {object} gin.H
// @Failure 404 {object} gin.H
// @Failure 409 {object} gin.H
// @Failure 503 {object} gin.H
// @Router /events/{id}/draw [post]
func (h *Handler) Draw(c *gin.Context) {
	res, err := h.Service.Draw(c.Request.Context(), c.Param("id"), middleware.CallerEmail(c))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Reset handles POST /events/:id/reset
// @Summary Reset assignments
// @Tags Assignment
// @Produce json
// @Param id path string true "Event ID"
// @Param X-User-Email header string true "Caller email"
// @Success 200 {object} ResetResult
// @Failure 403 {object} gin.H
// @Router /events/{id}/reset [post]
func (h *Handler) Reset(c *gin.Context) {
	res, err := h.Service.Reset(c.Request.Context(), c.Param("id"), middleware.CallerEmail(c))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetMine handles GET /events/:id/assignments/me
// @Summary Get the caller's own assignment
// @Tags Assignment
// @Produce json
// @Param id path string true "Event ID"
// @Param X-User-Email header string true "Caller email"
// @Success 200 {object} gin.H "assignment is null before the draw"
// @Router /events/{id}/assignments/me [get]
func (h *Handler) GetMine(c *gin.Context) {
	mine, err := h.Service.GetMyAssignment(c.Request.Context(), c.Param("id"), middleware.CallerEmail(c))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignment": mine})
}

// ===========================
// 📄 All Assignments - GET /events/:id/assignments
func (h *Handler) List(c *gin.Context) {
	assignments, err := h.Service.GetEventAssignments(c.Request.Context(), c.Param("id"), middleware.CallerEmail(c))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}
