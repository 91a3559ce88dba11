package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/akash/placementhub/internal/app/models"
	"github.com/akash/placementhub/internal/app/models/dto"
	"github.com/akash/placementhub/internal/app/placement"
	"github.com/akash/placementhub/internal/pkg/apperrors"
	"github.com/akash/placementhub/internal/pkg/helpers"
)

// ApplicationStore is the persistence surface the application service
// needs. ApplicationRepository is the production implementation.
type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	GetAll(ctx context.Context, filter dto.ApplicationListFilter, page, pageSize int) ([]models.Application, int64, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, driveID int64) (*dto.ApplicationStatsResponse, error)
	StatsByStudent(ctx context.Context, studentID int64) (*dto.ApplicationStatsResponse, error)
}

// DriveStore resolves drives for lifecycle operations
type DriveStore interface {
	GetByID(ctx context.Context, id int64) (*models.Drive, error)
}

// StudentStore resolves students for scope checks and eligibility
type StudentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// ApplicationService handles the application lifecycle
type ApplicationService struct {
	apps     ApplicationStore
	drives   DriveStore
	students StudentStore
	engine   *placement.Engine
	notifier Notifier
	logger   zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	apps ApplicationStore,
	drives DriveStore,
	students StudentStore,
	engine *placement.Engine,
	notifier Notifier,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		apps:     apps,
		drives:   drives,
		students: students,
		engine:   engine,
		notifier: notifier,
		logger:   logger,
	}
}

// Apply submits an application for the acting student. The drive must be
// published and the student must satisfy its eligibility criteria.
func (s *ApplicationService) Apply(ctx context.Context, actor placement.ActorContext, driveID int64) (*models.Application, error) {
	drive, err := s.drives.GetByID(ctx, driveID)
	if err != nil {
		return nil, err
	}
	if drive.Status != models.DrivePublished {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidState, "drive is not open for applications")
	}

	student, err := s.students.GetByID(ctx, actor.SubjectID)
	if err != nil {
		return nil, err
	}
	if err := placement.CheckEligibility(student, drive.Eligibility); err != nil {
		return nil, err
	}

	app := &models.Application{
		DriveID:       driveID,
		StudentID:     student.ID,
		Status:        models.ApplicationPending,
		StatusHistory: []models.StatusEntry{},
		CurrentRound:  1,
		RoundStatus:   []models.RoundEntry{},
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("driveId", driveID).Int64("studentId", student.ID).Msg("Application submitted")
	return app, nil
}

// Get retrieves an application. Students only see their own; branch
// admins only those of students in their branch.
func (s *ApplicationService) Get(ctx context.Context, actor placement.ActorContext, id int64) (*models.Application, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkScope(ctx, actor, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) checkScope(ctx context.Context, actor placement.ActorContext, app *models.Application) error {
	switch actor.Role {
	case models.RoleStudent:
		if actor.SubjectID != app.StudentID {
			return apperrors.NewForbiddenError("application belongs to another student")
		}
	case models.RoleBranchAdmin:
		student, err := s.students.GetByID(ctx, app.StudentID)
		if err != nil {
			return err
		}
		if student.Branch != actor.Branch {
			return apperrors.NewForbiddenError("application belongs to a student outside your branch")
		}
	}
	return nil
}

// List retrieves applications with filtering and pagination, clamped to
// the actor's visibility.
func (s *ApplicationService) List(ctx context.Context, actor placement.ActorContext, filter dto.ApplicationListFilter) ([]models.Application, *dto.PaginationInfo, error) {
	switch actor.Role {
	case models.RoleStudent:
		filter.StudentID = actor.SubjectID
	case models.RoleBranchAdmin:
		filter.Branch = actor.Branch
	}

	page, pageSize := helpers.NormalizePagination(filter.Page, filter.Size)
	apps, total, err := s.apps.GetAll(ctx, filter, page, pageSize)
	if err != nil {
		return nil, nil, err
	}

	pagination := helpers.NewPaginationInfo(total, page, pageSize)
	return apps, &pagination, nil
}

// ListMine retrieves the acting student's applications
func (s *ApplicationService) ListMine(ctx context.Context, studentID int64) ([]models.Application, error) {
	return s.apps.ListByStudent(ctx, studentID)
}

// UpdateStatus applies a direct overall status change and notifies the
// student.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor placement.ActorContext, id int64, status models.ApplicationStatus) (*models.Application, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkScope(ctx, actor, app); err != nil {
		return nil, err
	}

	drive, err := s.drives.GetByID(ctx, app.DriveID)
	if err != nil {
		return nil, err
	}

	draft, err := s.engine.ApplyStatusChange(app, drive, status, actor)
	if err != nil {
		return nil, err
	}
	if err := s.apps.Update(ctx, app); err != nil {
		return nil, err
	}

	s.dispatch(ctx, draft)
	return app, nil
}

// UpdateRoundStatus records the judgement of one interview round and
// derives the overall status from it.
func (s *ApplicationService) UpdateRoundStatus(ctx context.Context, actor placement.ActorContext, id int64, req dto.UpdateRoundStatusRequest) (*models.Application, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkScope(ctx, actor, app); err != nil {
		return nil, err
	}

	drive, err := s.drives.GetByID(ctx, app.DriveID)
	if err != nil {
		return nil, err
	}

	draft, err := s.engine.ApplyRoundStatusChange(app, drive, req.Round, req.Status, actor)
	if err != nil {
		return nil, err
	}
	if err := s.apps.Update(ctx, app); err != nil {
		return nil, err
	}

	s.dispatch(ctx, draft)
	return app, nil
}

// BulkUpdateStatus applies one status to many applications. Rows fail
// independently; the response counts successes and lists failures.
func (s *ApplicationService) BulkUpdateStatus(ctx context.Context, actor placement.ActorContext, req dto.BulkStatusUpdateRequest) (*dto.BulkStatusUpdateResponse, error) {
	resp := &dto.BulkStatusUpdateResponse{Requested: len(req.ApplicationIDs)}

	for _, id := range req.ApplicationIDs {
		if _, err := s.UpdateStatus(ctx, actor, id, req.Status); err != nil {
			resp.Failures = append(resp.Failures, dto.BulkFailure{ApplicationID: id, Reason: err.Error()})
			continue
		}
		resp.SuccessCount++
	}

	s.logger.Info().
		Int("requested", resp.Requested).
		Int("succeeded", resp.SuccessCount).
		Str("status", string(req.Status)).
		Msg("Bulk status update finished")
	return resp, nil
}

// Withdraw removes an application under the role rules: students their
// own pending ones, branch admins within their branch, main admins any.
func (s *ApplicationService) Withdraw(ctx context.Context, actor placement.ActorContext, id int64) error {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return err
	}

	var student *models.Student
	if actor.Role == models.RoleBranchAdmin {
		if student, err = s.students.GetByID(ctx, app.StudentID); err != nil {
			return err
		}
	}

	if err := s.engine.CanWithdraw(app, student, actor); err != nil {
		return err
	}
	if err := s.apps.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("applicationId", id).Str("role", string(actor.Role)).Msg("Application withdrawn")
	return nil
}

// Stats aggregates application counts for a drive
func (s *ApplicationService) Stats(ctx context.Context, driveID int64) (*dto.ApplicationStatsResponse, error) {
	if _, err := s.drives.GetByID(ctx, driveID); err != nil {
		return nil, err
	}
	return s.apps.Stats(ctx, driveID)
}

// MyStats aggregates the acting student's application counts
func (s *ApplicationService) MyStats(ctx context.Context, studentID int64) (*dto.ApplicationStatsResponse, error) {
	return s.apps.StatsByStudent(ctx, studentID)
}

func (s *ApplicationService) dispatch(ctx context.Context, draft *placement.NotificationDraft) {
	if draft == nil {
		return
	}
	err := s.notifier.Notify(ctx, []models.Notification{{
		StudentID: draft.StudentID,
		Type:      draft.Type,
		Title:     draft.Title,
		Message:   draft.Message,
		Data:      draft.Data,
	}})
	if err != nil {
		s.logger.Error().Err(err).Int64("studentId", draft.StudentID).Msgf("Failed to deliver %s notification", draft.Type)
	}
}
