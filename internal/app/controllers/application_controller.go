package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/akash/placementhub/internal/app/models/dto"
	"github.com/akash/placementhub/internal/app/services"
	"github.com/akash/placementhub/internal/middleware"
)

// ApplicationController handles application lifecycle endpoints
type ApplicationController struct {
	applicationService *services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService) *ApplicationController {
	return &ApplicationController{applicationService: applicationService}
}

// Apply submits an application for the acting student
// @Summary Apply to a drive
// @Description Submits an application. The drive must be published and the student must satisfy its eligibility criteria.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApplyRequest true "Target drive"
// @Success 201 {object} dto.APIResponse{data=models.Application} "Application submitted"
// @Failure 400 {object} dto.ErrorResponse "Drive not open for applications"
// @Failure 403 {object} dto.ErrorResponse "Eligibility criteria not met"
// @Failure 409 {object} dto.ErrorResponse "Already applied"
// @Router /applications [post]
func (c *ApplicationController) Apply(ctx *gin.Context) {
	var req dto.ApplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid application data", err)
		return
	}

	app, err := c.applicationService.Apply(ctx, middleware.Actor(ctx), req.DriveID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	created(ctx, app)
}

// ListApplications lists applications with filters
// @Summary List applications
// @Description Lists applications filtered by drive, student, status or branch. Students only see their own; branch admins only their branch.
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param driveId query int false "Filter by drive"
// @Param studentId query int false "Filter by student"
// @Param status query string false "Filter by overall status"
// @Param branch query string false "Filter by student branch"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Applications"
// @Router /applications [get]
func (c *ApplicationController) ListApplications(ctx *gin.Context) {
	var filter dto.ApplicationListFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		bindError(ctx, "Invalid filter parameters", err)
		return
	}

	apps, pagination, err := c.applicationService.List(ctx, middleware.Actor(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, dto.PaginatedResponse{Items: apps, Pagination: *pagination})
}

// MyApplications lists the acting student's applications
// @Summary List own applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Application} "Applications"
// @Router /applications/mine [get]
func (c *ApplicationController) MyApplications(ctx *gin.Context) {
	actor := middleware.Actor(ctx)

	apps, err := c.applicationService.ListMine(ctx, actor.SubjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, apps)
}

// MyStats aggregates the acting student's application counts
// @Summary Own application stats
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationStatsResponse} "Stats"
// @Router /applications/mine/stats [get]
func (c *ApplicationController) MyStats(ctx *gin.Context) {
	actor := middleware.Actor(ctx)

	stats, err := c.applicationService.MyStats(ctx, actor.SubjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, stats)
}

// GetApplication retrieves one application
// @Summary Get application by ID
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Application"
// @Failure 403 {object} dto.ErrorResponse "Outside your scope"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id} [get]
func (c *ApplicationController) GetApplication(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}

	app, err := c.applicationService.Get(ctx, middleware.Actor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, app)
}

// UpdateStatus applies a direct overall status change
// @Summary Update application status
// @Description Sets the overall status directly and records the change in the status history. The student is notified.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Updated application"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id}/status [put]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid status data", err)
		return
	}

	app, err := c.applicationService.UpdateStatus(ctx, middleware.Actor(ctx), id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, app)
}

// UpdateRoundStatus records an interview round judgement
// @Summary Update round status
// @Description Judges one interview round. Acceptance advances the candidate or, in the final round, accepts the application; rejection rejects it.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateRoundStatusRequest true "Round judgement"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Updated application"
// @Failure 400 {object} dto.ErrorResponse "Round out of range"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id}/round-status [put]
func (c *ApplicationController) UpdateRoundStatus(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}

	var req dto.UpdateRoundStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid round data", err)
		return
	}

	app, err := c.applicationService.UpdateRoundStatus(ctx, middleware.Actor(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, app)
}

// BulkUpdateStatus applies one status to many applications
// @Summary Bulk update application status
// @Description Applies one status to many applications. Rows fail independently and failures are listed in the response.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkStatusUpdateRequest true "Applications and status"
// @Success 200 {object} dto.APIResponse{data=dto.BulkStatusUpdateResponse} "Bulk result"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /applications/bulk-status [post]
func (c *ApplicationController) BulkUpdateStatus(ctx *gin.Context) {
	var req dto.BulkStatusUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid bulk update data", err)
		return
	}

	resp, err := c.applicationService.BulkUpdateStatus(ctx, middleware.Actor(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, resp)
}

// Withdraw removes an application
// @Summary Withdraw application
// @Description Students withdraw their own pending applications; branch admins any application of their branch; main admins any.
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Application withdrawn"
// @Failure 400 {object} dto.ErrorResponse "Application no longer pending"
// @Failure 403 {object} dto.ErrorResponse "Outside your scope"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id} [delete]
func (c *ApplicationController) Withdraw(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}

	if err := c.applicationService.Withdraw(ctx, middleware.Actor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, dto.SuccessResponse{Message: "Application withdrawn"})
}

// DriveStats aggregates application counts for a drive
// @Summary Application stats for a drive
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationStatsResponse} "Stats"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Router /drives/{id}/stats [get]
func (c *ApplicationController) DriveStats(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}

	stats, err := c.applicationService.Stats(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, stats)
}
