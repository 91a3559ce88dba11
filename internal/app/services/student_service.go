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
	"github.com/akash/placementhub/internal/pkg/helpers"
)

// StudentService handles student record management
type StudentService struct {
	studentRepo *repositories.StudentRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo *repositories.StudentRepository, logger zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// Create registers a student. When no explicit password is supplied the
// default login password is the date of birth in ddmmyyyy form, checked
// lazily at first login.
func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	dob, ok := helpers.ParseFlexibleDate(req.DOB)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unrecognised date of birth '%s'", req.DOB))
	}

	student := &models.Student{
		RegdID:    strings.ToUpper(strings.TrimSpace(req.RegdID)),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Branch:    strings.ToUpper(strings.TrimSpace(req.Branch)),
		Year:      req.Year,
		Gender:    req.Gender,
		DOB:       &dob,
		CGPA:      req.CGPA,
		College:   req.College,
	}

	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		student.PasswordHash = hash
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Str("regdId", student.RegdID).Str("branch", student.Branch).Msg("Student created")
	return student, nil
}

// Register upserts a student by registration ID. A record pre-loaded by
// the placement cell is completed with the submitted details; an unknown
// registration ID creates a fresh record.
func (s *StudentService) Register(ctx context.Context, req dto.RegisterStudentRequest) (*models.Student, error) {
	regdID := strings.ToUpper(strings.TrimSpace(req.RegdID))

	student, err := s.studentRepo.GetByRegdID(ctx, regdID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, err
		}
		student, err = s.Create(ctx, req.CreateStudentRequest)
		if err != nil {
			return nil, err
		}
	} else {
		updates := map[string]interface{}{
			"first_name": strings.TrimSpace(req.FirstName),
			"last_name":  strings.TrimSpace(req.LastName),
			"email":      strings.ToLower(strings.TrimSpace(req.Email)),
			"phone":      strings.TrimSpace(req.Phone),
		}
		if req.Year != "" {
			updates["year"] = req.Year
		}
		if req.Gender != "" {
			updates["gender"] = req.Gender
		}
		if req.College != "" {
			updates["college"] = req.College
		}
		if req.CGPA != nil {
			updates["cgpa"] = *req.CGPA
		}
		if dob, ok := helpers.ParseFlexibleDate(req.DOB); ok {
			updates["dob"] = dob
		}
		if err := s.studentRepo.Update(ctx, student.ID, updates); err != nil {
			return nil, err
		}
	}

	if err := s.applyRelations(ctx, student.ID, req.Addresses, req.Education); err != nil {
		return nil, err
	}

	s.logger.Info().Str("regdId", regdID).Msg("Student registered")
	return s.Get(ctx, student.ID)
}

// Get retrieves a student with addresses and education records attached
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if student.Addresses, err = s.studentRepo.GetAddresses(ctx, id); err != nil {
		return nil, err
	}
	if student.Education, err = s.studentRepo.GetEducation(ctx, id); err != nil {
		return nil, err
	}

	return student, nil
}

// List retrieves students with filtering and pagination. Branch admins
// are restricted to their own branch regardless of the requested filter.
func (s *StudentService) List(ctx context.Context, filter dto.StudentListFilter, actorRole models.Role, actorBranch string) ([]models.Student, *dto.PaginationInfo, error) {
	if actorRole == models.RoleBranchAdmin {
		filter.Branch = actorBranch
	}

	page, pageSize := helpers.NormalizePagination(filter.Page, filter.Size)
	students, total, err := s.studentRepo.GetAll(ctx, filter, page, pageSize)
	if err != nil {
		return nil, nil, err
	}

	pagination := helpers.NewPaginationInfo(total, page, pageSize)
	return students, &pagination, nil
}

// UpdateSelf applies the profile fields a student may edit themselves
func (s *StudentService) UpdateSelf(ctx context.Context, studentID int64, req dto.UpdateStudentSelfRequest) (*models.Student, error) {
	updates := map[string]interface{}{}
	setString := func(col string, v *string) {
		if v != nil {
			updates[col] = strings.TrimSpace(*v)
		}
	}

	setString("first_name", req.FirstName)
	setString("last_name", req.LastName)
	setString("father_name", req.FatherName)
	setString("alt_email", req.AltEmail)
	setString("phone", req.Phone)
	setString("alt_phone", req.AltPhone)
	setString("gender", req.Gender)
	setString("nationality", req.Nationality)
	setString("resume_url", req.ResumeURL)
	setString("aadhar_number", req.AadharNumber)
	setString("pan_card", req.PANCard)
	if req.BreakInStudies != nil {
		updates["break_in_studies"] = *req.BreakInStudies
	}

	if err := s.studentRepo.Update(ctx, studentID, updates); err != nil {
		return nil, err
	}
	if err := s.applyRelations(ctx, studentID, req.Addresses, req.Education); err != nil {
		return nil, err
	}

	return s.Get(ctx, studentID)
}

// UpdateAdmin applies an admin edit, which additionally covers identity
// and academic-standing fields. Branch admins may only touch students in
// their own branch.
func (s *StudentService) UpdateAdmin(ctx context.Context, studentID int64, req dto.UpdateStudentAdminRequest, actorRole models.Role, actorBranch string) (*models.Student, error) {
	if err := s.checkBranchScope(ctx, studentID, actorRole, actorBranch); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setString := func(col string, v *string) {
		if v != nil {
			updates[col] = strings.TrimSpace(*v)
		}
	}

	setString("first_name", req.FirstName)
	setString("last_name", req.LastName)
	setString("father_name", req.FatherName)
	setString("alt_email", req.AltEmail)
	setString("phone", req.Phone)
	setString("alt_phone", req.AltPhone)
	setString("gender", req.Gender)
	setString("nationality", req.Nationality)
	setString("resume_url", req.ResumeURL)
	setString("aadhar_number", req.AadharNumber)
	setString("pan_card", req.PANCard)
	setString("email", req.Email)
	setString("year", req.Year)
	setString("college", req.College)
	if req.RegdID != nil {
		updates["regd_id"] = strings.ToUpper(strings.TrimSpace(*req.RegdID))
	}
	if req.Branch != nil {
		updates["branch"] = strings.ToUpper(strings.TrimSpace(*req.Branch))
	}
	if req.DOB != nil {
		dob, ok := helpers.ParseFlexibleDate(*req.DOB)
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unrecognised date of birth '%s'", *req.DOB))
		}
		updates["dob"] = dob
	}
	if req.CGPA != nil {
		updates["cgpa"] = *req.CGPA
	}
	if req.BreakInStudies != nil {
		updates["break_in_studies"] = *req.BreakInStudies
	}
	if req.HasBacklogs != nil {
		updates["has_backlogs"] = *req.HasBacklogs
	}

	if err := s.studentRepo.Update(ctx, studentID, updates); err != nil {
		return nil, err
	}
	if err := s.applyRelations(ctx, studentID, req.Addresses, req.Education); err != nil {
		return nil, err
	}

	return s.Get(ctx, studentID)
}

func (s *StudentService) applyRelations(ctx context.Context, studentID int64, addresses []dto.AddressInput, education []dto.EducationInput) error {
	if addresses != nil {
		rows := make([]models.Address, 0, len(addresses))
		for _, a := range addresses {
			rows = append(rows, models.Address{
				StudentID: studentID,
				Kind:      a.Kind,
				Line1:     a.Line1,
				Line2:     a.Line2,
				City:      a.City,
				State:     a.State,
				Pincode:   a.Pincode,
			})
		}
		if err := s.studentRepo.ReplaceAddresses(ctx, studentID, rows); err != nil {
			return err
		}
	}

	if education != nil {
		rows := make([]models.EducationRecord, 0, len(education))
		for _, e := range education {
			rows = append(rows, models.EducationRecord{
				StudentID:   studentID,
				Level:       e.Level,
				Institution: e.Institution,
				Board:       e.Board,
				YearOfPass:  e.YearOfPass,
				Percentage:  e.Percentage,
			})
		}
		if err := s.studentRepo.ReplaceEducation(ctx, studentID, rows); err != nil {
			return err
		}
	}

	return nil
}

func (s *StudentService) checkBranchScope(ctx context.Context, studentID int64, actorRole models.Role, actorBranch string) error {
	if actorRole != models.RoleBranchAdmin {
		return nil
	}
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if student.Branch != actorBranch {
		return apperrors.NewForbiddenError("student belongs to a different branch")
	}
	return nil
}

// Delete removes a student and, through cascades, their applications,
// notifications and device tokens.
func (s *StudentService) Delete(ctx context.Context, studentID int64, actorRole models.Role, actorBranch string) error {
	if err := s.checkBranchScope(ctx, studentID, actorRole, actorBranch); err != nil {
		return err
	}

	if err := s.studentRepo.Delete(ctx, studentID); err != nil {
		return err
	}

	s.logger.Info().Int64("studentId", studentID).Msg("Student deleted")
	return nil
}
