package placement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akash/placementhub/internal/app/models"
	"github.com/akash/placementhub/internal/pkg/apperrors"
)

var testClock = func() time.Time {
	return time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
}

func newTestDrive(rounds int, names ...string) *models.Drive {
	return &models.Drive{
		ID:          7,
		Title:       "SDE Campus Drive 2026",
		Status:      models.DrivePublished,
		TotalRounds: rounds,
		RoundNames:  names,
	}
}

func newTestApplication() *models.Application {
	return &models.Application{
		ID:           101,
		DriveID:      7,
		StudentID:    42,
		Status:       models.ApplicationPending,
		CurrentRound: 1,
	}
}

func adminActor() ActorContext {
	return ActorContext{Role: models.RoleMainAdmin, SubjectID: 9}
}

func TestApplyRoundStatusChange_FullAcceptance(t *testing.T) {
	engine := NewEngineWithClock(testClock)
	drive := newTestDrive(3, "Aptitude Test", "Technical Interview", "HR Round")
	app := newTestApplication()

	for round := 1; round <= 2; round++ {
		_, err := engine.ApplyRoundStatusChange(app, drive, round, models.RoundAccepted, adminActor())
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationPending, app.Status)
		assert.Equal(t, round+1, app.CurrentRound)
	}

	draft, err := engine.ApplyRoundStatusChange(app, drive, 3, models.RoundAccepted, adminActor())
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationAccepted, app.Status)
	assert.Equal(t, 3, app.CurrentRound)
	assert.Len(t, app.RoundStatus, 3)
	assert.Equal(t, "HR Round Accepted", draft.Title)
	assert.Equal(t, "You have been accepted in HR Round for SDE Campus Drive 2026", draft.Message)

	// The round path never writes the status history.
	assert.Empty(t, app.StatusHistory)
}

func TestApplyRoundStatusChange_RejectionKeepsCurrentRound(t *testing.T) {
	engine := NewEngineWithClock(testClock)
	drive := newTestDrive(3)
	app := newTestApplication()

	_, err := engine.ApplyRoundStatusChange(app, drive, 1, models.RoundAccepted, adminActor())
	require.NoError(t, err)
	require.Equal(t, 2, app.CurrentRound)

	draft, err := engine.ApplyRoundStatusChange(app, drive, 2, models.RoundRejected, adminActor())
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationRejected, app.Status)
	assert.Equal(t, 2, app.CurrentRound)
	assert.Equal(t, "Round 2 Rejected", draft.Title)
	assert.Equal(t, "You have been rejected in Round 2 for SDE Campus Drive 2026", draft.Message)
}

func TestApplyRoundStatusChange_SingleRoundDrive(t *testing.T) {
	engine := NewEngineWithClock(testClock)
	drive := newTestDrive(1, "Walk-in Interview")
	app := newTestApplication()

	_, err := engine.ApplyRoundStatusChange(app, drive, 1, models.RoundAccepted, adminActor())
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationAccepted, app.Status)
	assert.Equal(t, 1, app.CurrentRound)
}

func TestApplyRoundStatusChange_RejudgeAppendsEntry(t *testing.T) {
	engine := NewEngineWithClock(testClock)
	drive := newTestDrive(2)
	app := newTestApplication()

	_, err := engine.ApplyRoundStatusChange(app, drive, 1, models.RoundRejected, adminActor())
	require.NoError(t, err)
	require.Equal(t, models.ApplicationRejected, app.Status)

	// Judging the same round again appends rather than rewriting.
	_, err = engine.ApplyRoundStatusChange(app, drive, 1, models.RoundAccepted, adminActor())
	require.NoError(t, err)

	assert.Len(t, app.RoundStatus, 2)
	assert.Equal(t, models.RoundRejected, app.RoundStatus[0].Status)
	assert.Equal(t, models.RoundAccepted, app.RoundStatus[1].Status)
	assert.Equal(t, 2, app.CurrentRound)

	// A non-final acceptance never touches the overall status, so the
	// earlier rejection stands.
	assert.Equal(t, models.ApplicationRejected, app.Status)
}

func TestApplyRoundStatusChange_RejudgeEarlierRoundKeepsRejection(t *testing.T) {
	engine := NewEngineWithClock(testClock)
	drive := newTestDrive(3)
	app := newTestApplication()

	_, err := engine.ApplyRoundStatusChange(app, drive, 1, models.RoundAccepted, adminActor())
	require.NoError(t, err)
	_, err = engine.ApplyRoundStatusChange(app, drive, 2, models.RoundRejected, adminActor())
	require.NoError(t, err)
	require.Equal(t, models.ApplicationRejected, app.Status)

	_, err = engine.ApplyRoundStatusChange(app, drive, 1, models.RoundAccepted, adminActor())
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationRejected, app.Status)
	assert.Len(t, app.RoundStatus, 3)
}

func TestApplyRoundStatusChange_RoundOutOfRange(t *testing.T) {
	engine := NewEngineWithClock(testClock)
	drive := newTestDrive(2)
	app := newTestApplication()

	for _, round := range []int{0, -1, 3} {
		_, err := engine.ApplyRoundStatusChange(app, drive, round, models.RoundAccepted, adminActor())
		assert.ErrorIs(t, err, apperrors.ErrInvalidRound)
	}
	assert.Empty(t, app.RoundStatus)
}

func TestApplyRoundStatusChange_RecordsActorAndRoundName(t *testing.T) {
	engine := NewEngineWithClock(testClock)
	drive := newTestDrive(2, "Aptitude Test")
	app := newTestApplication()
	actor := ActorContext{Role: models.RoleBranchAdmin, SubjectID: 17, Branch: "CSE"}

	_, err := engine.ApplyRoundStatusChange(app, drive, 1, models.RoundAccepted, actor)
	require.NoError(t, err)

	entry := app.LatestRoundEntry()
	require.NotNil(t, entry)
	assert.Equal(t, 1, entry.Round)
	assert.Equal(t, "Aptitude Test", entry.RoundName)
	assert.Equal(t, testClock(), entry.UpdatedAt)
	require.NotNil(t, entry.UpdatedBy)
	assert.Equal(t, int64(17), *entry.UpdatedBy)
}

func TestApplyStatusChange_AppendsHistory(t *testing.T) {
	engine := NewEngineWithClock(testClock)
	drive := newTestDrive(3)
	app := newTestApplication()

	draft, err := engine.ApplyStatusChange(app, drive, models.ApplicationAccepted, adminActor())
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationAccepted, app.Status)
	require.Len(t, app.StatusHistory, 1)
	assert.Equal(t, models.ApplicationAccepted, app.StatusHistory[0].Status)
	require.NotNil(t, app.StatusHistory[0].ChangedBy)
	assert.Equal(t, int64(9), *app.StatusHistory[0].ChangedBy)

	// The direct path leaves the round record alone.
	assert.Empty(t, app.RoundStatus)
	assert.Equal(t, 1, app.CurrentRound)

	assert.Equal(t, "Application Status Updated", draft.Title)
	assert.Equal(t, "Your application for SDE Campus Drive 2026 is now accepted", draft.Message)
	assert.Equal(t, models.NotificationApplicationStatus, draft.Type)
}

func TestApplyStatusChange_RejectsUnknownStatus(t *testing.T) {
	engine := NewEngineWithClock(testClock)
	drive := newTestDrive(3)
	app := newTestApplication()

	_, err := engine.ApplyStatusChange(app, drive, models.ApplicationStatus("shortlisted"), adminActor())
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, app.StatusHistory)
}

func TestCanWithdraw(t *testing.T) {
	engine := NewEngine()
	app := newTestApplication()
	student := &models.Student{ID: 42, Branch: "CSE"}

	tests := []struct {
		name    string
		actor   ActorContext
		status  models.ApplicationStatus
		wantErr error
	}{
		{
			name:   "student withdraws own pending application",
			actor:  ActorContext{Role: models.RoleStudent, SubjectID: 42},
			status: models.ApplicationPending,
		},
		{
			name:    "student cannot withdraw another student's application",
			actor:   ActorContext{Role: models.RoleStudent, SubjectID: 43},
			status:  models.ApplicationPending,
			wantErr: apperrors.ErrPermissionDenied,
		},
		{
			name:    "student cannot withdraw once accepted",
			actor:   ActorContext{Role: models.RoleStudent, SubjectID: 42},
			status:  models.ApplicationAccepted,
			wantErr: apperrors.ErrInvalidState,
		},
		{
			name:   "branch admin within branch",
			actor:  ActorContext{Role: models.RoleBranchAdmin, SubjectID: 9, Branch: "CSE"},
			status: models.ApplicationAccepted,
		},
		{
			name:    "branch admin outside branch",
			actor:   ActorContext{Role: models.RoleBranchAdmin, SubjectID: 9, Branch: "ECE"},
			status:  models.ApplicationPending,
			wantErr: apperrors.ErrPermissionDenied,
		},
		{
			name:   "main admin always",
			actor:  ActorContext{Role: models.RoleMainAdmin, SubjectID: 1},
			status: models.ApplicationRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.Status = tt.status
			err := engine.CanWithdraw(app, student, tt.actor)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
