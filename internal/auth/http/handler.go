package http

import (
	"errors"
	"net/http"

	"github.com/archplans/plan-portal/internal/auth"
	"github.com/archplans/plan-portal/internal/backend"
	"github.com/archplans/plan-portal/internal/logging"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	profiles *auth.ProfileService
}

func New(profiles *auth.ProfileService) *Handler {
	return &Handler{profiles: profiles}
}

// GetProfile returns the current user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	profile := auth.CurrentProfile(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile, "isAdmin": profile.Admin()})
}

// DeleteAccount permanently removes the signed-in account.
func (h *Handler) DeleteAccount(c *gin.Context) {
	token := auth.AccessToken(c)
	if err := h.profiles.DeleteAccount(c.Request.Context(), token); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		logging.FromContext(c.Request.Context()).LogError("delete_account", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// ResetPassword sets a new password using an emailed reset token.
// POST /auth/reset-password/:token
func (h *Handler) ResetPassword(c *gin.Context) {
	var body resetPasswordRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	err := h.profiles.ResetPassword(c.Request.Context(), c.Param("token"), body.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "password updated"})
	case errors.Is(err, auth.ErrInvalidPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, backend.ErrNotFound), errors.Is(err, backend.ErrUnauthorized):
		c.JSON(http.StatusBadRequest, gin.H{"error": "reset link is invalid or has expired"})
	default:
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			c.JSON(http.StatusBadRequest, gin.H{"error": apiErr.Message})
			return
		}
		logging.FromContext(c.Request.Context()).LogError("reset_password", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to reset password"})
	}
}
