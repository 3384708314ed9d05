package reports

import (
	"fmt"
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
// 📊 Roster Export - GET /events/:id/roster/export?format=xlsx|pdf|csv
func (h *Handler) ExportRoster(c *gin.Context) {
	data, filename, contentType, err := h.Service.ExportRoster(c.Request.Context(), c.Param("id"),
		middleware.CallerEmail(c), c.DefaultQuery("format", FormatExcel))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
