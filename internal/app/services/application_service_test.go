package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akash/placementhub/internal/app/models"
	"github.com/akash/placementhub/internal/app/models/dto"
	"github.com/akash/placementhub/internal/app/placement"
	"github.com/akash/placementhub/internal/pkg/apperrors"
)

type fakeAppStore struct {
	apps   map[int64]*models.Application
	nextID int64
}

func newFakeAppStore() *fakeAppStore {
	return &fakeAppStore{apps: map[int64]*models.Application{}, nextID: 1}
}

func (f *fakeAppStore) Create(_ context.Context, app *models.Application) error {
	for _, existing := range f.apps {
		if existing.DriveID == app.DriveID && existing.StudentID == app.StudentID {
			return apperrors.ErrDuplicateApplication
		}
	}
	app.ID = f.nextID
	f.nextID++
	clone := *app
	f.apps[app.ID] = &clone
	return nil
}

func (f *fakeAppStore) GetByID(_ context.Context, id int64) (*models.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	clone := *app
	return &clone, nil
}

func (f *fakeAppStore) GetAll(_ context.Context, filter dto.ApplicationListFilter, _, _ int) ([]models.Application, int64, error) {
	var out []models.Application
	for _, app := range f.apps {
		if filter.StudentID > 0 && app.StudentID != filter.StudentID {
			continue
		}
		if filter.DriveID > 0 && app.DriveID != filter.DriveID {
			continue
		}
		out = append(out, *app)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAppStore) ListByStudent(_ context.Context, studentID int64) ([]models.Application, error) {
	var out []models.Application
	for _, app := range f.apps {
		if app.StudentID == studentID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (f *fakeAppStore) Update(_ context.Context, app *models.Application) error {
	if _, ok := f.apps[app.ID]; !ok {
		return apperrors.ErrApplicationNotFound
	}
	clone := *app
	f.apps[app.ID] = &clone
	return nil
}

func (f *fakeAppStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.apps[id]; !ok {
		return apperrors.ErrApplicationNotFound
	}
	delete(f.apps, id)
	return nil
}

func (f *fakeAppStore) Stats(_ context.Context, driveID int64) (*dto.ApplicationStatsResponse, error) {
	stats := &dto.ApplicationStatsResponse{DriveID: driveID}
	for _, app := range f.apps {
		if app.DriveID != driveID {
			continue
		}
		stats.Total++
		switch app.Status {
		case models.ApplicationPending:
			stats.Pending++
		case models.ApplicationAccepted:
			stats.Accepted++
		case models.ApplicationRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

func (f *fakeAppStore) StatsByStudent(_ context.Context, studentID int64) (*dto.ApplicationStatsResponse, error) {
	stats := &dto.ApplicationStatsResponse{}
	for _, app := range f.apps {
		if app.StudentID != studentID {
			continue
		}
		stats.Total++
		switch app.Status {
		case models.ApplicationPending:
			stats.Pending++
		case models.ApplicationAccepted:
			stats.Accepted++
		case models.ApplicationRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

type fakeDriveStore struct {
	drives map[int64]*models.Drive
}

func (f *fakeDriveStore) GetByID(_ context.Context, id int64) (*models.Drive, error) {
	drive, ok := f.drives[id]
	if !ok {
		return nil, apperrors.ErrDriveNotFound
	}
	return drive, nil
}

type fakeStudentStore struct {
	students map[int64]*models.Student
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

type captureNotifier struct {
	sent []models.Notification
}

func (c *captureNotifier) Notify(_ context.Context, notifications []models.Notification) error {
	c.sent = append(c.sent, notifications...)
	return nil
}

type serviceFixture struct {
	svc      *ApplicationService
	apps     *fakeAppStore
	notifier *captureNotifier
}

func newFixture() *serviceFixture {
	cgpa := 8.2
	drives := &fakeDriveStore{drives: map[int64]*models.Drive{
		7: {
			ID:          7,
			Title:       "SDE Campus Drive 2026",
			Status:      models.DrivePublished,
			TotalRounds: 2,
			RoundNames:  []string{"Aptitude Test", "Technical Interview"},
			Eligibility: models.EligibilityCriteria{MinCGPA: 7.0, Branches: []string{"CSE"}},
		},
		8: {ID: 8, Title: "Draft Drive", Status: models.DriveDraft, TotalRounds: 1},
	}}
	students := &fakeStudentStore{students: map[int64]*models.Student{
		42: {ID: 42, RegdID: "21BD1A0501", Branch: "CSE", CGPA: &cgpa},
		43: {ID: 43, RegdID: "21BD1A0502", Branch: "ECE", CGPA: &cgpa},
	}}

	apps := newFakeAppStore()
	notifier := &captureNotifier{}
	svc := NewApplicationService(apps, drives, students, placement.NewEngine(), notifier, zerolog.Nop())
	return &serviceFixture{svc: svc, apps: apps, notifier: notifier}
}

func studentActor(id int64) placement.ActorContext {
	return placement.ActorContext{Role: models.RoleStudent, SubjectID: id, Branch: "CSE"}
}

func mainAdminActor() placement.ActorContext {
	return placement.ActorContext{Role: models.RoleMainAdmin, SubjectID: 1}
}

func TestApply(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	app, err := fx.svc.Apply(ctx, studentActor(42), 7)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.Equal(t, 1, app.CurrentRound)

	// Applying twice to the same drive is a conflict.
	_, err = fx.svc.Apply(ctx, studentActor(42), 7)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateApplication)
}

func TestApplyDraftDriveRejected(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Apply(context.Background(), studentActor(42), 8)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestApplyIneligibleStudentRejected(t *testing.T) {
	fx := newFixture()

	// Student 43 is in ECE; the drive only takes CSE.
	_, err := fx.svc.Apply(context.Background(), studentActor(43), 7)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUpdateRoundStatusNotifiesStudent(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	app, err := fx.svc.Apply(ctx, studentActor(42), 7)
	require.NoError(t, err)

	updated, err := fx.svc.UpdateRoundStatus(ctx, mainAdminActor(), app.ID, dto.UpdateRoundStatusRequest{
		Round:  1,
		Status: models.RoundAccepted,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.CurrentRound)

	require.Len(t, fx.notifier.sent, 1)
	sent := fx.notifier.sent[0]
	assert.Equal(t, int64(42), sent.StudentID)
	assert.Equal(t, models.NotificationRoundUpdate, sent.Type)
	assert.Equal(t, "Aptitude Test Accepted", sent.Title)

	// The stored row reflects the transition.
	stored, err := fx.apps.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.CurrentRound)
	assert.Len(t, stored.RoundStatus, 1)
}

func TestBulkUpdateStatusPartialFailure(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 4; i++ {
		drive := int64(7)
		app := &models.Application{DriveID: drive, StudentID: int64(100 + i), Status: models.ApplicationPending, CurrentRound: 1}
		require.NoError(t, fx.apps.Create(ctx, app))
		ids = append(ids, app.ID)
	}
	ids = append(ids, 9999) // does not exist

	resp, err := fx.svc.BulkUpdateStatus(ctx, mainAdminActor(), dto.BulkStatusUpdateRequest{
		ApplicationIDs: ids,
		Status:         models.ApplicationAccepted,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Requested)
	assert.Equal(t, 4, resp.SuccessCount)
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, int64(9999), resp.Failures[0].ApplicationID)

	for _, id := range ids[:4] {
		stored, err := fx.apps.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationAccepted, stored.Status)
		assert.Len(t, stored.StatusHistory, 1)
	}
}

func TestWithdraw(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	app, err := fx.svc.Apply(ctx, studentActor(42), 7)
	require.NoError(t, err)

	// Another student cannot withdraw it.
	err = fx.svc.Withdraw(ctx, studentActor(43), app.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// Branch admin of a different branch cannot either.
	err = fx.svc.Withdraw(ctx, placement.ActorContext{Role: models.RoleBranchAdmin, SubjectID: 5, Branch: "ECE"}, app.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// The owner can, while it is still pending.
	require.NoError(t, fx.svc.Withdraw(ctx, studentActor(42), app.ID))

	_, err = fx.apps.GetByID(ctx, app.ID)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestListScopesStudentToOwnApplications(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	_, err := fx.svc.Apply(ctx, studentActor(42), 7)
	require.NoError(t, err)
	require.NoError(t, fx.apps.Create(ctx, &models.Application{DriveID: 7, StudentID: 77, Status: models.ApplicationPending, CurrentRound: 1}))

	apps, pagination, err := fx.svc.List(ctx, studentActor(42), dto.ApplicationListFilter{})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, int64(42), apps[0].StudentID)
	assert.Equal(t, int64(1), pagination.TotalItems)
}
