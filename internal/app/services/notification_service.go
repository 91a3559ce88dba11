package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/akash/placementhub/internal/app/models"
	"github.com/akash/placementhub/internal/app/models/dto"
	"github.com/akash/placementhub/internal/app/repositories"
	"github.com/akash/placementhub/internal/pkg/apperrors"
	"github.com/akash/placementhub/internal/pkg/helpers"
	"github.com/akash/placementhub/internal/pkg/push"
)

// NotificationService handles stored notifications, broadcasts and push
// delivery to registered devices.
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	deviceTokenRepo  *repositories.DeviceTokenRepository
	studentRepo      *repositories.StudentRepository
	applicationRepo  *repositories.ApplicationRepository
	dispatcher       push.Dispatcher
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo *repositories.NotificationRepository,
	deviceTokenRepo *repositories.DeviceTokenRepository,
	studentRepo *repositories.StudentRepository,
	applicationRepo *repositories.ApplicationRepository,
	dispatcher push.Dispatcher,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		deviceTokenRepo:  deviceTokenRepo,
		studentRepo:      studentRepo,
		applicationRepo:  applicationRepo,
		dispatcher:       dispatcher,
		logger:           logger,
	}
}

// Notify stores notifications and pushes them to the students' devices.
// Push delivery runs in the background; storage failures are returned.
func (s *NotificationService) Notify(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	if err := s.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		return err
	}

	studentIDs := make([]int64, 0, len(notifications))
	for _, n := range notifications {
		studentIDs = append(studentIDs, n.StudentID)
	}

	// All notifications in one batch share title and message, so one
	// push call covers every device.
	first := notifications[0]
	go s.pushToStudents(studentIDs, first.Title, first.Message, first.Data)

	return nil
}

// pushToStudents runs detached from the request; delivery failures are
// logged and invalid tokens pruned.
func (s *NotificationService) pushToStudents(studentIDs []int64, title, message string, data map[string]string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tokens, err := s.deviceTokenRepo.ListByStudents(ctx, studentIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load device tokens for push")
		return
	}
	if len(tokens) == 0 {
		return
	}

	tokenStrings := make([]string, 0, len(tokens))
	for _, t := range tokens {
		tokenStrings = append(tokenStrings, t.Token)
	}

	result, err := s.dispatcher.Send(ctx, push.Message{
		Tokens: tokenStrings,
		Title:  title,
		Body:   message,
		Data:   data,
	})
	if err != nil {
		s.logger.Error().Err(err).Int("tokens", len(tokenStrings)).Msg("Push delivery failed")
		return
	}

	if len(result.InvalidTokens) > 0 {
		if err := s.deviceTokenRepo.DeleteByTokens(ctx, result.InvalidTokens); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to prune invalid device tokens")
		}
	}
	if len(result.DeliveredTokens) > 0 {
		if err := s.deviceTokenRepo.TouchLastUsed(ctx, result.DeliveredTokens); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to update device token timestamps")
		}
	}
}

// ListMine retrieves the acting student's notifications
func (s *NotificationService) ListMine(ctx context.Context, studentID int64, filter dto.NotificationListFilter) ([]models.Notification, *dto.PaginationInfo, error) {
	page, pageSize := helpers.NormalizePagination(filter.Page, filter.Size)
	notifications, total, err := s.notificationRepo.ListByStudent(ctx, studentID, filter, page, pageSize)
	if err != nil {
		return nil, nil, err
	}

	pagination := helpers.NewPaginationInfo(total, page, pageSize)
	return notifications, &pagination, nil
}

// UnreadCount returns the student's unread notification count
func (s *NotificationService) UnreadCount(ctx context.Context, studentID int64) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, studentID)
}

// MarkRead flags one of the student's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, studentID, id int64) error {
	return s.notificationRepo.MarkRead(ctx, studentID, id)
}

// MarkAllRead flags all of the student's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, studentID int64) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, studentID)
}

// Broadcast sends an announcement to the selected audience. Branch admins
// are clamped to their own branch whatever audience they request.
func (s *NotificationService) Broadcast(ctx context.Context, req dto.BroadcastRequest, actorRole models.Role, actorBranch string) (*dto.BroadcastResponse, error) {
	if actorRole == models.RoleBranchAdmin {
		req.Audience = dto.BroadcastAudience{Branches: []string{actorBranch}}
	}

	studentIDs, err := s.resolveAudience(ctx, req.Audience)
	if err != nil {
		return nil, err
	}

	notifications := make([]models.Notification, 0, len(studentIDs))
	for _, id := range studentIDs {
		notifications = append(notifications, models.Notification{
			StudentID: id,
			Type:      models.NotificationAnnouncement,
			Title:     req.Title,
			Message:   req.Message,
		})
	}

	if err := s.Notify(ctx, notifications); err != nil {
		return nil, err
	}

	s.logger.Info().Int("recipients", len(studentIDs)).Str("title", req.Title).Msg("Broadcast sent")
	return &dto.BroadcastResponse{Recipients: len(studentIDs)}, nil
}

func (s *NotificationService) resolveAudience(ctx context.Context, audience dto.BroadcastAudience) ([]int64, error) {
	switch {
	case audience.All:
		students, err := s.studentRepo.ListByBranches(ctx, nil)
		if err != nil {
			return nil, err
		}
		ids := make([]int64, 0, len(students))
		for _, st := range students {
			ids = append(ids, st.ID)
		}
		return ids, nil

	case len(audience.Branches) > 0:
		students, err := s.studentRepo.ListByBranches(ctx, audience.Branches)
		if err != nil {
			return nil, err
		}
		ids := make([]int64, 0, len(students))
		for _, st := range students {
			ids = append(ids, st.ID)
		}
		return ids, nil

	case len(audience.RegdIDs) > 0:
		return s.studentRepo.GetIDsByRegdIDs(ctx, audience.RegdIDs)

	case audience.DriveID != nil:
		status := ""
		if audience.Status != nil {
			status = *audience.Status
		}
		return s.applicationRepo.ListStudentIDsByDriveStatus(ctx, *audience.DriveID, status)
	}

	return nil, apperrors.NewValidationError("broadcast audience is empty")
}

// Update edits the title or message of a stored notification
func (s *NotificationService) Update(ctx context.Context, id int64, req dto.UpdateNotificationRequest) (*models.Notification, error) {
	n, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Message != nil {
		n.Message = *req.Message
	}

	if err := s.notificationRepo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Delete removes a stored notification
func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	return s.notificationRepo.Delete(ctx, id)
}

// DeleteBulk removes a set of notifications and reports the count
func (s *NotificationService) DeleteBulk(ctx context.Context, ids []int64) (int64, error) {
	return s.notificationRepo.DeleteBulk(ctx, ids)
}

// RegisterDeviceToken stores or refreshes a push token for the student
func (s *NotificationService) RegisterDeviceToken(ctx context.Context, studentID int64, req dto.RegisterDeviceTokenRequest) (*models.DeviceToken, error) {
	token := &models.DeviceToken{
		StudentID: studentID,
		Token:     req.Token,
		Platform:  req.Platform,
	}
	if err := s.deviceTokenRepo.Upsert(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// RemoveDeviceToken deletes one of the student's push tokens
func (s *NotificationService) RemoveDeviceToken(ctx context.Context, studentID int64, token string) error {
	if token == "" {
		return apperrors.NewValidationError("token cannot be empty")
	}
	return s.deviceTokenRepo.DeleteForStudent(ctx, studentID, token)
}

var _ Notifier = (*NotificationService)(nil)
