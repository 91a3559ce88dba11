package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/akash/placementhub/internal/app/models"
	"github.com/akash/placementhub/internal/app/models/dto"
	"github.com/akash/placementhub/internal/app/repositories"
	"github.com/akash/placementhub/internal/pkg/apperrors"
	"github.com/akash/placementhub/internal/pkg/auth"
)

// AuthService handles authentication for admins and students
type AuthService struct {
	adminRepo   *repositories.AdminRepository
	studentRepo *repositories.StudentRepository
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	adminRepo *repositories.AdminRepository,
	studentRepo *repositories.StudentRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		adminRepo:   adminRepo,
		studentRepo: studentRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// AdminLogin authenticates an admin by email and password. When no admin
// account exists yet, the first login bootstraps a main admin with the
// submitted credentials.
func (s *AuthService) AdminLogin(ctx context.Context, req dto.AdminLoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrAdminNotFound) {
			return nil, fmt.Errorf("error looking up admin: %w", err)
		}

		count, countErr := s.adminRepo.Count(ctx)
		if countErr != nil {
			return nil, countErr
		}
		if count > 0 {
			return nil, apperrors.ErrInvalidCredentials
		}

		admin, err = s.bootstrapFirstAdmin(ctx, email, req.Password)
		if err != nil {
			return nil, err
		}
	} else {
		if admin.Status != "active" {
			return nil, apperrors.ErrAccountDisabled
		}
		if !auth.CheckPassword(admin.PasswordHash, req.Password) {
			return nil, apperrors.ErrInvalidCredentials
		}
	}

	token, expiresIn, err := s.jwtService.GenerateAdminToken(admin.ID, admin.Email, string(admin.Role), admin.Branch)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info().Str("email", admin.Email).Str("role", string(admin.Role)).Msg("Admin logged in")

	return &dto.AuthResponse{
		Token: dto.TokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresIn: expiresIn},
		User:  admin,
	}, nil
}

func (s *AuthService) bootstrapFirstAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	admin := &models.Admin{
		Email:        email,
		Name:         "Main Admin",
		PasswordHash: hash,
		Role:         models.RoleMainAdmin,
		Status:       "active",
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", email).Msg("Bootstrapped first main admin account")
	return admin, nil
}

// StudentLogin authenticates a student by registration identifier. A
// student who never changed their password logs in with their date of
// birth in ddmmyyyy form; the first such login stores a proper hash.
func (s *AuthService) StudentLogin(ctx context.Context, req dto.StudentLoginRequest) (*dto.AuthResponse, error) {
	student, err := s.studentRepo.GetByRegdID(ctx, strings.TrimSpace(req.RegdID))
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if student.PasswordHash != "" {
		if !auth.CheckPassword(student.PasswordHash, req.Password) {
			return nil, apperrors.ErrInvalidCredentials
		}
	} else {
		if student.DOB == nil || req.Password != auth.DOBPassword(*student.DOB) {
			return nil, apperrors.ErrInvalidCredentials
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		if err := s.studentRepo.UpdatePassword(ctx, student.ID, hash); err != nil {
			s.logger.Warn().Err(err).Int64("studentId", student.ID).Msg("Failed to store password hash on first login")
		}
	}

	s.logger.Info().Str("regdId", student.RegdID).Msg("Student logged in")
	return s.IssueStudentToken(student)
}

// IssueStudentToken creates a session token for an authenticated student.
func (s *AuthService) IssueStudentToken(student *models.Student) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateStudentToken(student.ID, student.Branch)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresIn: expiresIn},
		User:  student,
	}, nil
}

// CreateAdmin adds an admin account. Only main admins may call this;
// branch admins must carry a branch.
func (s *AuthService) CreateAdmin(ctx context.Context, req dto.CreateAdminRequest) (*models.Admin, error) {
	if req.Role == models.RoleBranchAdmin && strings.TrimSpace(req.Branch) == "" {
		return nil, apperrors.NewValidationError("branch is required for branch admins")
	}
	if req.Role == models.RoleMainAdmin {
		req.Branch = ""
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	admin := &models.Admin{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         req.Role,
		Branch:       req.Branch,
		Status:       "active",
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", admin.Email).Str("role", string(admin.Role)).Msg("Admin account created")
	return admin, nil
}

// ListAdmins returns all admin accounts
func (s *AuthService) ListAdmins(ctx context.Context) ([]*models.Admin, error) {
	return s.adminRepo.GetAll(ctx)
}

// DeleteAdmin removes an admin account. An admin cannot delete itself.
func (s *AuthService) DeleteAdmin(ctx context.Context, callerID, id int64) error {
	if callerID == id {
		return apperrors.NewBadRequestError("you cannot delete your own account")
	}
	return s.adminRepo.Delete(ctx, id)
}

// ChangeAdminPassword rotates the caller's own password
func (s *AuthService) ChangeAdminPassword(ctx context.Context, adminID int64, req dto.ChangePasswordRequest) error {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(admin.PasswordHash, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	return s.adminRepo.UpdatePassword(ctx, adminID, hash)
}

// ChangeStudentPassword rotates the caller's own password
func (s *AuthService) ChangeStudentPassword(ctx context.Context, studentID int64, req dto.ChangePasswordRequest) error {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return err
	}

	current := req.CurrentPassword
	if student.PasswordHash != "" {
		if !auth.CheckPassword(student.PasswordHash, current) {
			return apperrors.ErrInvalidCredentials
		}
	} else if student.DOB == nil || current != auth.DOBPassword(*student.DOB) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	return s.studentRepo.UpdatePassword(ctx, studentID, hash)
}
