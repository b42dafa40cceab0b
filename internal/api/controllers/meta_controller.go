package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripcrew/internal/models/response_models"
	"tripcrew/internal/services"
)

const (
	serviceName    = "travel-planner-api"
	serviceVersion = "1.0.0"
)

type MetaController struct {
	plannerService services.PlannerServiceInterface
}

func NewMetaController(plannerService services.PlannerServiceInterface) *MetaController {
	return &MetaController{plannerService: plannerService}
}

func (mc *MetaController) RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Travel Planner API",
		"version": serviceVersion,
		"endpoints": gin.H{
			"POST /plan":                "Create a travel plan",
			"GET /plans/:id":            "Fetch an archived travel plan",
			"GET /destinations/popular": "List popular destinations",
			"GET /health":               "Health check",
			"GET /metrics":              "Prometheus metrics",
		},
	})
}

func (mc *MetaController) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
}

func (mc *MetaController) PopularDestinationsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, response_models.PopularDestinationsResponse{
		Destinations: mc.plannerService.PopularDestinations(),
	})
}
