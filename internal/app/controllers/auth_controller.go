package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/akash/placementhub/internal/app/models"
	"github.com/akash/placementhub/internal/app/models/dto"
	"github.com/akash/placementhub/internal/app/services"
	"github.com/akash/placementhub/internal/middleware"
)

// AuthController handles authentication endpoints
type AuthController struct {
	authService    *services.AuthService
	studentService *services.StudentService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, studentService *services.StudentService) *AuthController {
	return &AuthController{authService: authService, studentService: studentService}
}

// AdminLogin authenticates an admin
// @Summary Admin login
// @Description Authenticates an admin by email and password. The very first login on an empty system creates the main admin account.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Admin credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Authenticated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/admin/login [post]
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid login data", err)
		return
	}

	resp, err := c.authService.AdminLogin(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, resp)
}

// StudentLogin authenticates a student
// @Summary Student login
// @Description Authenticates a student by registration identifier. The default password is the date of birth as ddmmyyyy.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.StudentLoginRequest true "Student credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Authenticated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/student/login [post]
func (c *AuthController) StudentLogin(ctx *gin.Context) {
	var req dto.StudentLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid login data", err)
		return
	}

	resp, err := c.authService.StudentLogin(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, resp)
}

// RegisterStudent registers a student and opens a session
// @Summary Student registration
// @Description Registers a student by registration ID. A record pre-loaded by the placement cell is completed rather than duplicated. Returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterStudentRequest true "Student details"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "Registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /auth/student/register [post]
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid registration data", err)
		return
	}

	student, err := c.studentService.Register(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.authService.IssueStudentToken(student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	created(ctx, resp)
}

// Me echoes the caller's session claims
// @Summary Current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Session claims"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	actor := middleware.Actor(ctx)

	ok(ctx, gin.H{
		"subjectId": actor.SubjectID,
		"role":      actor.Role,
		"email":     ctx.GetString(middleware.ContextEmail),
		"branch":    actor.Branch,
	})
}

// CreateAdmin adds an admin account
// @Summary Create admin account
// @Description Creates a main or branch admin account. Main admins only.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAdminRequest true "Admin account details"
// @Success 201 {object} dto.APIResponse{data=models.Admin} "Admin created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /auth/admins [post]
func (c *AuthController) CreateAdmin(ctx *gin.Context) {
	var req dto.CreateAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid admin data", err)
		return
	}

	admin, err := c.authService.CreateAdmin(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	created(ctx, admin)
}

// ListAdmins lists admin accounts
// @Summary List admin accounts
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Admin} "Admins"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /auth/admins [get]
func (c *AuthController) ListAdmins(ctx *gin.Context) {
	admins, err := c.authService.ListAdmins(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, admins)
}

// DeleteAdmin removes an admin account
// @Summary Delete admin account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Admin deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid admin ID"
// @Failure 404 {object} dto.ErrorResponse "Admin not found"
// @Router /auth/admins/{id} [delete]
func (c *AuthController) DeleteAdmin(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}

	callerID := ctx.GetInt64(middleware.ContextSubjectID)
	if err := c.authService.DeleteAdmin(ctx, callerID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, dto.SuccessResponse{Message: "Admin deleted"})
}

// ChangePassword rotates the caller's password
// @Summary Change own password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Password changed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Current password is wrong"
// @Router /auth/password [post]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid password data", err)
		return
	}

	actor := middleware.Actor(ctx)
	var err error
	if actor.Role == models.RoleStudent {
		err = c.authService.ChangeStudentPassword(ctx, actor.SubjectID, req)
	} else {
		err = c.authService.ChangeAdminPassword(ctx, actor.SubjectID, req)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, dto.SuccessResponse{Message: "Password changed"})
}
