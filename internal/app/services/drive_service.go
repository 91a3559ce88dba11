package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/akash/placementhub/internal/app/models"
	"github.com/akash/placementhub/internal/app/models/dto"
	"github.com/akash/placementhub/internal/app/placement"
	"github.com/akash/placementhub/internal/app/repositories"
	"github.com/akash/placementhub/internal/pkg/apperrors"
	"github.com/akash/placementhub/internal/pkg/helpers"
)

// Notifier persists notifications for students and pushes them to their
// registered devices. NotificationService is the production implementation.
type Notifier interface {
	Notify(ctx context.Context, notifications []models.Notification) error
}

// DriveService handles recruitment drive management
type DriveService struct {
	driveRepo   *repositories.DriveRepository
	studentRepo *repositories.StudentRepository
	notifier    Notifier
	logger      zerolog.Logger
}

// NewDriveService creates a new DriveService
func NewDriveService(
	driveRepo *repositories.DriveRepository,
	studentRepo *repositories.StudentRepository,
	notifier Notifier,
	logger zerolog.Logger,
) *DriveService {
	return &DriveService{
		driveRepo:   driveRepo,
		studentRepo: studentRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

func validateRounds(totalRounds int, roundNames []string) error {
	if totalRounds < 1 {
		return apperrors.NewValidationError("a drive needs at least one round")
	}
	if len(roundNames) > totalRounds {
		return apperrors.NewValidationError(
			fmt.Sprintf("%d round names given for %d rounds", len(roundNames), totalRounds))
	}
	return nil
}

// Create registers a new drive in draft status. Branch admins can only
// open drives for their own branch.
func (s *DriveService) Create(ctx context.Context, req dto.CreateDriveRequest, actor placement.ActorContext) (*models.Drive, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError("drive title cannot be empty")
	}
	if err := validateRounds(req.TotalRounds, req.RoundNames); err != nil {
		return nil, err
	}

	drive := &models.Drive{
		CompanyID:   req.CompanyID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      models.DriveDraft,
		TotalRounds: req.TotalRounds,
		RoundNames:  req.RoundNames,
	}
	if req.Eligibility != nil {
		drive.Eligibility = *req.Eligibility
	}
	if actor.Role == models.RoleBranchAdmin && actor.Branch != "" {
		drive.Eligibility.Branches = []string{actor.Branch}
	}

	if err := s.driveRepo.Create(ctx, drive); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("driveId", drive.ID).Str("title", drive.Title).Msg("Drive created")
	return drive, nil
}

// Get retrieves a drive. Students can only see published drives.
func (s *DriveService) Get(ctx context.Context, id int64, actorRole models.Role) (*models.Drive, error) {
	drive, err := s.driveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole == models.RoleStudent && drive.Status != models.DrivePublished {
		return nil, apperrors.ErrDriveNotFound
	}
	return drive, nil
}

// List retrieves drives with filtering and pagination. Students are
// pinned to published drives regardless of the requested filter, and
// students and branch admins only see drives covering their branch.
func (s *DriveService) List(ctx context.Context, filter dto.DriveListFilter, actorRole models.Role, actorBranch string) ([]models.Drive, *dto.PaginationInfo, error) {
	if actorRole == models.RoleStudent {
		filter.Status = string(models.DrivePublished)
	}
	if actorRole != models.RoleMainAdmin {
		filter.Branch = actorBranch
	}

	page, pageSize := helpers.NormalizePagination(filter.Page, filter.Size)
	drives, total, err := s.driveRepo.GetAll(ctx, filter, page, pageSize)
	if err != nil {
		return nil, nil, err
	}

	pagination := helpers.NewPaginationInfo(total, page, pageSize)
	return drives, &pagination, nil
}

// Update edits a drive's details
func (s *DriveService) Update(ctx context.Context, id int64, req dto.UpdateDriveRequest) (*models.Drive, error) {
	drive, err := s.driveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CompanyID != nil {
		drive.CompanyID = req.CompanyID
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperrors.NewValidationError("drive title cannot be empty")
		}
		drive.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		drive.Description = *req.Description
	}
	if req.Eligibility != nil {
		drive.Eligibility = *req.Eligibility
	}
	if req.TotalRounds != nil {
		drive.TotalRounds = *req.TotalRounds
	}
	if req.RoundNames != nil {
		drive.RoundNames = req.RoundNames
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown drive status '%s'", *req.Status))
		}
		drive.Status = *req.Status
	}
	if err := validateRounds(drive.TotalRounds, drive.RoundNames); err != nil {
		return nil, err
	}

	if err := s.driveRepo.Update(ctx, drive); err != nil {
		return nil, err
	}
	return drive, nil
}

// Publish opens a draft drive for applications and notifies every
// eligible student.
func (s *DriveService) Publish(ctx context.Context, id int64) (*models.Drive, error) {
	drive, err := s.driveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if drive.Status == models.DrivePublished {
		return nil, apperrors.NewConflictError("drive is already published")
	}

	now := time.Now()
	if err := s.driveRepo.MarkPublished(ctx, id, now); err != nil {
		return nil, err
	}
	drive.Status = models.DrivePublished
	drive.PublishDate = &now

	recipients, err := s.eligibleStudents(ctx, drive)
	if err != nil {
		// The drive is out; a failed fan-out should not roll it back.
		s.logger.Error().Err(err).Int64("driveId", id).Msg("Failed to resolve eligible students for publish fan-out")
		return drive, nil
	}

	notifications := make([]models.Notification, 0, len(recipients))
	for _, student := range recipients {
		notifications = append(notifications, models.Notification{
			StudentID: student.ID,
			Type:      models.NotificationDrivePublished,
			Title:     "New Drive Published",
			Message:   fmt.Sprintf("%s is now open for applications", drive.Title),
			Data: map[string]string{
				"driveId": fmt.Sprintf("%d", drive.ID),
			},
		})
	}

	if err := s.notifier.Notify(ctx, notifications); err != nil {
		s.logger.Error().Err(err).Int64("driveId", id).Msg("Failed to notify students about published drive")
	}

	s.logger.Info().Int64("driveId", id).Int("recipients", len(recipients)).Msg("Drive published")
	return drive, nil
}

func (s *DriveService) eligibleStudents(ctx context.Context, drive *models.Drive) ([]models.Student, error) {
	students, err := s.studentRepo.ListByBranches(ctx, drive.Eligibility.Branches)
	if err != nil {
		return nil, err
	}

	eligible := students[:0]
	for _, student := range students {
		if placement.Matches(&student, drive.Eligibility) {
			eligible = append(eligible, student)
		}
	}
	return eligible, nil
}

// EligibleStudents lists the students who currently qualify for a drive
func (s *DriveService) EligibleStudents(ctx context.Context, id int64) ([]models.Student, error) {
	drive, err := s.driveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.eligibleStudents(ctx, drive)
}

// CheckEligibility reports whether one student qualifies for a drive
func (s *DriveService) CheckEligibility(ctx context.Context, driveID, studentID int64) (*dto.EligibilityCheckResponse, error) {
	drive, err := s.driveRepo.GetByID(ctx, driveID)
	if err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if err := placement.CheckEligibility(student, drive.Eligibility); err != nil {
		return &dto.EligibilityCheckResponse{Eligible: false, Reason: err.Error()}, nil
	}
	return &dto.EligibilityCheckResponse{Eligible: true}, nil
}

// Delete removes a drive. Drives with applications cannot be deleted.
func (s *DriveService) Delete(ctx context.Context, id int64) error {
	count, err := s.driveRepo.CountApplications(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrDriveHasApplications
	}

	if err := s.driveRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("driveId", id).Msg("Drive deleted")
	return nil
}
