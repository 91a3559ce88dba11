package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/akash/placementhub/internal/app/models/dto"
	"github.com/akash/placementhub/internal/app/services"
	"github.com/akash/placementhub/internal/middleware"
)

// StudentController handles student record endpoints
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// CreateStudent registers a student record
// @Summary Create student
// @Description Registers a student. Without an explicit password the student logs in with their date of birth as ddmmyyyy.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student details"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Registration ID already exists"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid student data", err)
		return
	}

	student, err := c.studentService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	created(ctx, student)
}

// ListStudents lists students with filters
// @Summary List students
// @Description Lists students with branch, year and search filters. Branch admins only see their own branch.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param branch query string false "Filter by branch"
// @Param year query string false "Filter by passout year"
// @Param search query string false "Search by name, registration ID or email"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Students"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	var filter dto.StudentListFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		bindError(ctx, "Invalid filter parameters", err)
		return
	}

	actor := middleware.Actor(ctx)
	students, pagination, err := c.studentService.List(ctx, filter, actor.Role, actor.Branch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, dto.PaginatedResponse{Items: students, Pagination: *pagination})
}

// GetStudent retrieves one student
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}

	student, err := c.studentService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, student)
}

// GetProfile retrieves the acting student's own record
// @Summary Get own profile
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Student} "Profile"
// @Router /students/me [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	actor := middleware.Actor(ctx)

	student, err := c.studentService.Get(ctx, actor.SubjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, student)
}

// UpdateProfile edits the acting student's own record
// @Summary Update own profile
// @Description Edits contact and profile fields. Identity and academic-standing fields stay admin-only.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateStudentSelfRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /students/me [put]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateStudentSelfRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid profile data", err)
		return
	}

	actor := middleware.Actor(ctx)
	student, err := c.studentService.UpdateSelf(ctx, actor.SubjectID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, student)
}

// UpdateStudent edits a student record as admin
// @Summary Update student
// @Description Admin edit covering identity and academic-standing fields. Branch admins are limited to their own branch.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentAdminRequest true "Student fields"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Updated student"
// @Failure 403 {object} dto.ErrorResponse "Student outside your branch"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}

	var req dto.UpdateStudentAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid student data", err)
		return
	}

	actor := middleware.Actor(ctx)
	student, err := c.studentService.UpdateAdmin(ctx, id, req, actor.Role, actor.Branch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, student)
}

// DeleteStudent removes a student record
// @Summary Delete student
// @Description Removes a student together with their applications, notifications and device tokens.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Student deleted"
// @Failure 403 {object} dto.ErrorResponse "Student outside your branch"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}

	actor := middleware.Actor(ctx)
	if err := c.studentService.Delete(ctx, id, actor.Role, actor.Branch); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, dto.SuccessResponse{Message: "Student deleted"})
}
