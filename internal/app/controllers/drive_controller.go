package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/akash/placementhub/internal/app/models/dto"
	"github.com/akash/placementhub/internal/app/services"
	"github.com/akash/placementhub/internal/middleware"
)

// DriveController handles recruitment drive endpoints
type DriveController struct {
	driveService *services.DriveService
}

// NewDriveController creates a new DriveController
func NewDriveController(driveService *services.DriveService) *DriveController {
	return &DriveController{driveService: driveService}
}

// CreateDrive creates a drive in draft status
// @Summary Create drive
// @Description Creates a drive in draft status. Branch admins can only open drives for their own branch.
// @Tags drives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDriveRequest true "Drive details"
// @Success 201 {object} dto.APIResponse{data=models.Drive} "Drive created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /drives [post]
func (c *DriveController) CreateDrive(ctx *gin.Context) {
	var req dto.CreateDriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid drive data", err)
		return
	}

	drive, err := c.driveService.Create(ctx, req, middleware.Actor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	created(ctx, drive)
}

// ListDrives lists drives with filters
// @Summary List drives
// @Description Lists drives with status and company filters. Students only see published drives; students and branch admins only drives covering their branch.
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param companyId query int false "Filter by company"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Drives"
// @Router /drives [get]
func (c *DriveController) ListDrives(ctx *gin.Context) {
	var filter dto.DriveListFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		bindError(ctx, "Invalid filter parameters", err)
		return
	}

	actor := middleware.Actor(ctx)
	drives, pagination, err := c.driveService.List(ctx, filter, actor.Role, actor.Branch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, dto.PaginatedResponse{Items: drives, Pagination: *pagination})
}

// GetDrive retrieves one drive
// @Summary Get drive by ID
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Success 200 {object} dto.APIResponse{data=models.Drive} "Drive"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Router /drives/{id} [get]
func (c *DriveController) GetDrive(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}

	actor := middleware.Actor(ctx)
	drive, err := c.driveService.Get(ctx, id, actor.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, drive)
}

// UpdateDrive edits a drive
// @Summary Update drive
// @Tags drives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Param request body dto.UpdateDriveRequest true "Drive fields"
// @Success 200 {object} dto.APIResponse{data=models.Drive} "Updated drive"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Router /drives/{id} [put]
func (c *DriveController) UpdateDrive(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}

	var req dto.UpdateDriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid drive data", err)
		return
	}

	drive, err := c.driveService.Update(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, drive)
}

// PublishDrive opens a drive for applications
// @Summary Publish drive
// @Description Publishes a draft drive and notifies every eligible student.
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Success 200 {object} dto.APIResponse{data=models.Drive} "Published drive"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Failure 409 {object} dto.ErrorResponse "Drive already published"
// @Router /drives/{id}/publish [post]
func (c *DriveController) PublishDrive(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}

	drive, err := c.driveService.Publish(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, drive)
}

// EligibleStudents lists students who qualify for a drive
// @Summary List eligible students
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Student} "Eligible students"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Router /drives/{id}/eligible-students [get]
func (c *DriveController) EligibleStudents(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}

	students, err := c.driveService.EligibleStudents(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, students)
}

// CheckEligibility reports whether the acting student qualifies
// @Summary Check own eligibility
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Success 200 {object} dto.APIResponse{data=dto.EligibilityCheckResponse} "Eligibility verdict"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Router /drives/{id}/eligibility [get]
func (c *DriveController) CheckEligibility(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}

	actor := middleware.Actor(ctx)
	result, err := c.driveService.CheckEligibility(ctx, id, actor.SubjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, result)
}

// DeleteDrive removes a drive
// @Summary Delete drive
// @Description Removes a drive. Drives with applications cannot be deleted.
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Drive deleted"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Failure 409 {object} dto.ErrorResponse "Drive has applications"
// @Router /drives/{id} [delete]
func (c *DriveController) DeleteDrive(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}

	if err := c.driveService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, dto.SuccessResponse{Message: "Drive deleted"})
}
