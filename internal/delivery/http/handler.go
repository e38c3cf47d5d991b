package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nutritool/backend/internal/domain"
)

// NutrientService is what the handlers need from the ranking layer
type NutrientService interface {
	Columns() []string
	Foods() []domain.FoodRecord
	Report() *domain.RunReport
	TopFoods(ctx context.Context, column string, n int) ([]domain.RankedFood, error)
	DefaultN() int
	MaxN() int
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service NutrientService
}

// NewHandler creates a new HTTP handler
func NewHandler(service NutrientService) *Handler {
	return &Handler{service: service}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nutritool-backend",
		"version": "1.0.0",
	})
}

// ListNutrients returns every column a ranking can be keyed on
func (h *Handler) ListNutrients(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"columns":  h.service.Columns(),
		"defaultN": h.service.DefaultN(),
		"maxN":     h.service.MaxN(),
	})
}

// ListFoods returns the cleaned, enriched table
func (h *Handler) ListFoods(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	foods := h.service.Foods()
	c.JSON(http.StatusOK, gin.H{
		"count": len(foods),
		"foods": foods,
	})
}

// TopFoods handles GET /foods/top?nutrient=<column>&n=<count>
func (h *Handler) TopFoods(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	column := c.Query("nutrient")
	n := h.service.DefaultN()
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid_request", "n must be an integer")
			return
		}
		n = parsed
	}

	ranked, err := h.service.TopFoods(c.Request.Context(), column, n)
	if err != nil {
		var unknown *domain.UnknownColumnError
		var outOfRange *domain.RangeError
		switch {
		case errors.As(err, &unknown):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":       err.Error(),
				"code":        "unknown_column",
				"suggestions": unknown.Suggestions,
			})
		case errors.As(err, &outOfRange):
			respondError(c, http.StatusBadRequest, "out_of_range", err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "internal_error", "failed to rank foods")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"nutrient": column,
		"n":        n,
		"foods":    ranked,
	})
}

// RunReport returns the pipeline run that built the served table
func (h *Handler) RunReport(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	c.JSON(http.StatusOK, h.service.Report())
}

func (h *Handler) ready(c *gin.Context) bool {
	if h.service == nil {
		respondError(c, http.StatusServiceUnavailable, "not_configured", "nutrient data not configured")
		return false
	}
	return true
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error": message,
		"code":  code,
	})
}
