package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripcrew/internal/models/request_models"
	"tripcrew/internal/services"
	"tripcrew/pkg/utils"
)

type PlanController struct {
	plannerService services.PlannerServiceInterface
	planService    services.PlanServiceInterface
}

func NewPlanController(plannerService services.PlannerServiceInterface, planService services.PlanServiceInterface) *PlanController {
	return &PlanController{
		plannerService: plannerService,
		planService:    planService,
	}
}

// CreatePlanHandler runs the full pipeline. A successful plan is returned as
// the bare document so clients can read it without unwrapping.
func (pc *PlanController) CreatePlanHandler(c *gin.Context) {
	var req request_models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	plan, err := pc.plannerService.CreatePlan(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (pc *PlanController) GetPlanHandler(c *gin.Context) {
	plan, err := pc.planService.GetPlanByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}
