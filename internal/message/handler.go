package message

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

// ===========================
// 💬 Send Message - POST /events/:id/messages
func (h *Handler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	m, err := h.Service.Send(c.Request.Context(), c.Param("id"), req.SenderName, middleware.CallerEmail(c), req.Content)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// ===========================
// 📄 List Messages - GET /events/:id/messages
func (h *Handler) List(c *gin.Context) {
	messages, err := h.Service.List(c.Request.Context(), c.Param("id"), middleware.CallerEmail(c))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// ===========================
// ❌ Delete Message - DELETE /messages/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id"), middleware.CallerEmail(c)); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}
