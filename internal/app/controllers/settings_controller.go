package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/akash/placementhub/internal/app/models/dto"
	"github.com/akash/placementhub/internal/app/services"
	"github.com/akash/placementhub/internal/middleware"
)

// SettingsController handles placement cell configuration endpoints
type SettingsController struct {
	settingsService *services.SettingsService
}

// NewSettingsController creates a new SettingsController
func NewSettingsController(settingsService *services.SettingsService) *SettingsController {
	return &SettingsController{settingsService: settingsService}
}

// GetBranchThresholds retrieves the per-branch CGPA thresholds
// @Summary Get branch thresholds
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.BranchThresholds} "Thresholds"
// @Router /settings/branch-thresholds [get]
func (c *SettingsController) GetBranchThresholds(ctx *gin.Context) {
	thresholds, err := c.settingsService.GetBranchThresholds(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, thresholds)
}

// UpdateBranchThresholds replaces the per-branch CGPA thresholds
// @Summary Update branch thresholds
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateBranchThresholdsRequest true "Thresholds by branch"
// @Success 200 {object} dto.APIResponse{data=models.BranchThresholds} "Updated thresholds"
// @Failure 400 {object} dto.ErrorResponse "Threshold out of range"
// @Router /settings/branch-thresholds [put]
func (c *SettingsController) UpdateBranchThresholds(ctx *gin.Context) {
	var req dto.UpdateBranchThresholdsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid thresholds data", err)
		return
	}

	thresholds, err := c.settingsService.UpdateBranchThresholds(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, thresholds)
}
