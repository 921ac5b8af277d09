package http

import (
	"errors"
	"net/http"

	"github.com/archplans/plan-portal/internal/auth"
	"github.com/archplans/plan-portal/internal/catalog/domain"
	"github.com/archplans/plan-portal/internal/favorites"
	"github.com/archplans/plan-portal/internal/logging"
	"github.com/archplans/plan-portal/internal/session"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	favorites *favorites.Service
	profiles  auth.ProfileResolver
}

func New(svc *favorites.Service, profiles auth.ProfileResolver) *Handler {
	return &Handler{favorites: svc, profiles: profiles}
}

// owner keys favorites by user when signed in and by session otherwise.
func owner(c *gin.Context) string {
	if p := auth.CurrentProfile(c); p != nil && p.UserID() != "" {
		return "user:" + p.UserID()
	}
	if sid := session.ID(c); sid != "" {
		return "session:" + sid
	}
	return ""
}

func (h *Handler) ListFavorites(c *gin.Context) {
	plans, err := h.favorites.List(c.Request.Context(), owner(c))
	if err != nil {
		if errors.Is(err, favorites.ErrInvalidOwner) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logging.FromContext(c.Request.Context()).LogError("list_favorites", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load favorites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans, "total": len(plans)})
}

// ToggleFavorite flips a plan in or out of the caller's favorites.
// POST /favorites/:planId
func (h *Handler) ToggleFavorite(c *gin.Context) {
	planID := c.Param("planId")
	on, err := h.favorites.Toggle(c.Request.Context(), owner(c), planID)
	if err != nil {
		switch {
		case errors.Is(err, favorites.ErrInvalidOwner):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		default:
			logging.FromContext(c.Request.Context()).LogError("toggle_favorite", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to update favorites"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"planId": planID, "favorite": on})
}
