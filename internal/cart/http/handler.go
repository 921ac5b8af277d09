package http

import (
	"errors"
	"net/http"

	"github.com/archplans/plan-portal/internal/cart/service"
	"github.com/archplans/plan-portal/internal/catalog/domain"
	"github.com/archplans/plan-portal/internal/logging"
	"github.com/archplans/plan-portal/internal/session"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	cart *service.CartService
}

func New(cart *service.CartService) *Handler {
	return &Handler{cart: cart}
}

type addItemRequest struct {
	PlanID string `json:"planId" binding:"required"`
}

func (h *Handler) GetCart(c *gin.Context) {
	view, err := h.cart.List(c.Request.Context(), session.ID(c))
	if err != nil {
		logging.FromContext(c.Request.Context()).LogError("get_cart", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddItem adds a plan to the session's cart.
// POST /cart {"planId": "..."}
func (h *Handler) AddItem(c *gin.Context) {
	var body addItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "planId is required"})
		return
	}

	view, err := h.cart.Add(c.Request.Context(), session.ID(c), body.PlanID)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
		logging.FromContext(c.Request.Context()).LogError("add_to_cart", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to add to cart"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) RemoveItem(c *gin.Context) {
	view, err := h.cart.Remove(c.Request.Context(), session.ID(c), c.Param("planId"))
	if err != nil {
		logging.FromContext(c.Request.Context()).LogError("remove_from_cart", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to remove from cart"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.cart.Clear(c.Request.Context(), session.ID(c)); err != nil {
		logging.FromContext(c.Request.Context()).LogError("clear_cart", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, service.CartView{Items: []service.CartItem{}})
}
