package dto

import "github.com/akash/placementhub/internal/app/models"

// AdminLoginRequest represents admin login credentials
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// StudentLoginRequest represents student login credentials.
// Password defaults to the DOB in ddmmyyyy form until changed.
type StudentLoginRequest struct {
	RegdID   string `json:"regdId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  interface{}   `json:"user"`
}

// CreateAdminRequest represents a request to add an admin account.
// Branch is required for branch admins and ignored for main admins.
type CreateAdminRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Name     string      `json:"name" binding:"required"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     models.Role `json:"role" binding:"required,oneof=main-admin branch-admin"`
	Branch   string      `json:"branch,omitempty"`
}

// ChangePasswordRequest represents a password change for the caller's account
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}
