package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/archplans/plan-portal/internal/catalog/domain"
	"github.com/archplans/plan-portal/internal/catalog/service"
	"github.com/archplans/plan-portal/internal/logging"
	"github.com/gin-gonic/gin"
)

const unavailableWarning = "catalog temporarily unavailable"

// Handler serves the public catalog
type Handler struct {
	catalog *service.CatalogService
}

func New(catalog *service.CatalogService) *Handler {
	return &Handler{catalog: catalog}
}

// ListPlans filters and sorts the catalog.
// GET /plans?category=&minRooms=&minFloors=&featured=&newListing=&customizable=&premium=&minPrice=&maxPrice=&q=&sort=
func (h *Handler) ListPlans(c *gin.Context) {
	cfg, err := ParseFilterConfig(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plans, err := h.catalog.Browse(c.Request.Context(), cfg)
	if err != nil {
		logging.FromContext(c.Request.Context()).LogError("list_plans", err)
		c.JSON(http.StatusOK, gin.H{"plans": []domain.PlanRecord{}, "total": 0, "warning": unavailableWarning})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans, "total": len(plans)})
}

// GetPlan returns a single plan
func (h *Handler) GetPlan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plan ID is required"})
		return
	}

	plan, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
		logging.FromContext(c.Request.Context()).LogError("get_plan", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to get plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

func (h *Handler) Featured(c *gin.Context) {
	plans, err := h.catalog.Featured(c.Request.Context())
	if err != nil {
		logging.FromContext(c.Request.Context()).LogError("featured_plans", err)
		c.JSON(http.StatusOK, gin.H{"plans": []domain.PlanRecord{}, "warning": unavailableWarning})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *Handler) Trending(c *gin.Context) {
	plans, err := h.catalog.Trending(c.Request.Context())
	if err != nil {
		logging.FromContext(c.Request.Context()).LogError("trending_plans", err)
		c.JSON(http.StatusOK, gin.H{"plans": []domain.PlanRecord{}, "warning": unavailableWarning})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *Handler) Categories(c *gin.Context) {
	cats, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		logging.FromContext(c.Request.Context()).LogError("list_categories", err)
		c.JSON(http.StatusOK, gin.H{"categories": []domain.Category{}, "warning": unavailableWarning})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

// ParseFilterConfig reads a FilterConfig from the query string. Absent
// parameters leave the matching predicate inactive.
func ParseFilterConfig(c *gin.Context) (domain.FilterConfig, error) {
	var (
		cfg domain.FilterConfig
		err error
	)

	cfg.Category = strings.TrimSpace(c.Query("category"))
	if cfg.Category != "" && !strings.EqualFold(cfg.Category, domain.CategoryAll) {
		g, ok := domain.ParseCategoryGroup(cfg.Category)
		if !ok {
			return cfg, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, cfg.Category)
		}
		cfg.Category = string(g)
	}

	if cfg.MinRooms, err = queryInt(c, "minRooms"); err != nil {
		return cfg, err
	}
	if cfg.MinFloors, err = queryInt(c, "minFloors"); err != nil {
		return cfg, err
	}
	if cfg.MinPrice, err = queryFloat(c, "minPrice"); err != nil {
		return cfg, err
	}
	if v := strings.TrimSpace(c.Query("maxPrice")); v != "" {
		maxPrice, err := queryFloat(c, "maxPrice")
		if err != nil {
			return cfg, err
		}
		cfg.MaxPrice = &maxPrice
	}
	if cfg.MaxPrice != nil && cfg.MinPrice > *cfg.MaxPrice {
		return cfg, fmt.Errorf("minPrice must not exceed maxPrice")
	}

	cfg.Featured = queryBool(c, "featured")
	cfg.NewListing = queryBool(c, "newListing")
	cfg.Customizable = queryBool(c, "customizable")
	cfg.Premium = queryBool(c, "premium")

	cfg.Query = c.Query("q")
	if cfg.Query == "" {
		cfg.Query = c.Query("search")
	}

	if cfg.Sort, err = domain.ParseSortKey(c.Query("sort")); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func queryInt(c *gin.Context, key string) (int, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return n, nil
}

func queryFloat(c *gin.Context, key string) (float64, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number", key)
	}
	return f, nil
}

func queryBool(c *gin.Context, key string) bool {
	b, _ := strconv.ParseBool(c.Query(key))
	return b
}
