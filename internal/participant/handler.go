package participant

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

// Join handles POST /participants/join
// @Summary Join an event by code
// @Tags Participant
// @Accept json
// @Produce json
// @Param join body JoinRequest true "Join request"
// @Success 201 {object} models.Participant
// @Failure 404 {object} gin.H
// @Failure 409 {object} gin.H
// @Router /participants/join [post]
func (h *Handler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	p, err := h.Service.Join(c.Request.Context(), req.JoinCode, req.Name, req.Email)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ===========================
// 📄 List Participants - GET /events/:id/participants
func (h *Handler) List(c *gin.Context) {
	participants, err := h.Service.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"participants": participants})
}

// ===========================
// 🔍 Own Participant - GET /events/:id/participants/me
func (h *Handler) GetMe(c *gin.Context) {
	p, err := h.Service.Get(c.Request.Context(), c.Param("id"), middleware.CallerEmail(c))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrParticipantNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// ===========================
// 🎁 Update Wishlist - PUT /events/:id/participants/me/wishlist
func (h *Handler) UpdateWishlist(c *gin.Context) {
	var req UpdateWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	if err := h.Service.UpdateWishlist(c.Request.Context(), c.Param("id"), middleware.CallerEmail(c), req.Wishlist); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "wishlist updated"})
}

// ===========================
// ✅ Update Status - PUT /events/:id/participants/me/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	if err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), middleware.CallerEmail(c), req.Status); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

// ===========================
// ❌ Remove Participant - DELETE /events/:id/participants/:email
func (h *Handler) Remove(c *gin.Context) {
	if err := h.Service.Remove(c.Request.Context(), c.Param("id"), c.Param("email"), middleware.CallerEmail(c)); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "participant removed"})
}

// ===========================
// 📨 Send Invitations - POST /events/:id/invitations
func (h *Handler) Invite(c *gin.Context) {
	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	res, err := h.Service.Invite(c.Request.Context(), c.Param("id"), middleware.CallerEmail(c), req.Emails)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
