package handlers

import (
	"net/http"

	"supply-demand/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ParameterHandler describes the controls that can be swept
type ParameterHandler struct{}

// NewParameterHandler creates a new parameter handler
func NewParameterHandler() *ParameterHandler {
	return &ParameterHandler{}
}

// parameterInfo mirrors the slider ranges; names match analysis.Parameters.
var parameterInfo = []models.ParameterInfo{
	{Name: "demand_intercept", Description: "Price buyers pay for the first unit", Min: 10, Max: 30, Step: 1, Default: 22},
	{Name: "demand_slope", Description: "How fast the demand price falls per unit", Min: 0.5, Max: 3, Step: 0.1, Default: 1},
	{Name: "demand_shift", Description: "Parallel shift of the demand line", Min: -5, Max: 5, Step: 0.5, Default: 0},
	{Name: "supply_intercept", Description: "Price sellers need for the first unit", Min: 0, Max: 15, Step: 1, Default: 6},
	{Name: "supply_slope", Description: "How fast the supply price rises per unit", Min: 0.5, Max: 3, Step: 0.1, Default: 1},
	{Name: "supply_shift", Description: "Parallel shift of the supply line", Min: -5, Max: 5, Step: 0.5, Default: 0},
	{Name: "tax", Description: "Per-unit tax on sellers (switches the tax on)", Min: 0, Max: 10, Step: 0.5, Default: 7},
	{Name: "subsidy", Description: "Per-unit subsidy for sellers (switches the subsidy on)", Min: 0, Max: 10, Step: 0.5, Default: 7},
	{Name: "ceiling", Description: "Maximum legal price (switches the ceiling on)", Min: 0, Max: 20, Step: 0.5, Default: 8},
	{Name: "floor", Description: "Minimum legal price (switches the floor on)", Min: 0, Max: 20, Step: 0.5, Default: 16},
}

// ListParameters handles GET /api/v1/parameters
func (h *ParameterHandler) ListParameters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"parameters": parameterInfo})
}
