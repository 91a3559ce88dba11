package placement

import (
	"fmt"
	"time"

	"github.com/akash/placementhub/internal/app/models"
	"github.com/akash/placementhub/internal/pkg/apperrors"
)

// ActorContext identifies who is performing a lifecycle operation.
// SubjectID is the admin or student id from the session claims.
type ActorContext struct {
	Role      models.Role
	SubjectID int64
	Branch    string
}

// NotificationDraft describes a notification the caller should persist
// and dispatch for the affected student.
type NotificationDraft struct {
	StudentID int64
	Type      models.NotificationType
	Title     string
	Message   string
	Data      map[string]string
}

// Engine applies application lifecycle transitions in memory. Callers
// persist the mutated application and the returned notification draft.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an engine using the wall clock.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock creates an engine with an injected clock for tests.
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// ApplyStatusChange sets the overall status directly and appends an audit
// entry to the status history. CurrentRound and RoundStatus are untouched.
func (e *Engine) ApplyStatusChange(app *models.Application, drive *models.Drive, status models.ApplicationStatus, actor ActorContext) (*NotificationDraft, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown application status '%s'", status))
	}

	ts := e.now()
	actorID := actor.SubjectID
	app.Status = status
	app.StatusHistory = append(app.StatusHistory, models.StatusEntry{
		Status:    status,
		ChangedAt: ts,
		ChangedBy: &actorID,
	})
	app.UpdatedAt = ts

	return &NotificationDraft{
		StudentID: app.StudentID,
		Type:      models.NotificationApplicationStatus,
		Title:     "Application Status Updated",
		Message:   fmt.Sprintf("Your application for %s is now %s", drive.Title, status),
		Data: map[string]string{
			"applicationId": fmt.Sprintf("%d", app.ID),
			"driveId":       fmt.Sprintf("%d", app.DriveID),
			"status":        string(status),
		},
	}, nil
}

// ApplyRoundStatusChange judges a single interview round and derives the
// overall status from the outcome:
//
//   - rejected: the application is rejected and the current round stays put
//   - accepted before the final round: the candidate advances one round and
//     the overall status is left as-is
//   - accepted in the final round: the application is accepted
//
// Round entries are append-only, so judging the same round twice leaves
// both entries in the record. The status history is not written here.
func (e *Engine) ApplyRoundStatusChange(app *models.Application, drive *models.Drive, round int, outcome models.RoundOutcome, actor ActorContext) (*NotificationDraft, error) {
	if round < 1 || round > drive.TotalRounds {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidRound,
			fmt.Sprintf("round %d is out of range for a drive with %d rounds", round, drive.TotalRounds))
	}
	if !outcome.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown round outcome '%s'", outcome))
	}

	ts := e.now()
	actorID := actor.SubjectID
	roundName := drive.RoundName(round)

	app.RoundStatus = append(app.RoundStatus, models.RoundEntry{
		Round:     round,
		Status:    outcome,
		RoundName: roundName,
		UpdatedAt: ts,
		UpdatedBy: &actorID,
	})

	switch {
	case outcome == models.RoundRejected:
		app.Status = models.ApplicationRejected
	case round < drive.TotalRounds:
		app.CurrentRound = round + 1
	default:
		app.Status = models.ApplicationAccepted
	}
	app.UpdatedAt = ts

	verdict := "Rejected"
	if outcome == models.RoundAccepted {
		verdict = "Accepted"
	}
	return &NotificationDraft{
		StudentID: app.StudentID,
		Type:      models.NotificationRoundUpdate,
		Title:     fmt.Sprintf("%s %s", roundName, verdict),
		Message:   fmt.Sprintf("You have been %s in %s for %s", outcome, roundName, drive.Title),
		Data: map[string]string{
			"applicationId": fmt.Sprintf("%d", app.ID),
			"driveId":       fmt.Sprintf("%d", app.DriveID),
			"round":         fmt.Sprintf("%d", round),
			"status":        string(outcome),
		},
	}, nil
}

// CanWithdraw decides whether the actor may withdraw the application.
// Students may withdraw their own pending applications, branch admins any
// application of a student in their branch, main admins any application.
func (e *Engine) CanWithdraw(app *models.Application, student *models.Student, actor ActorContext) error {
	switch actor.Role {
	case models.RoleMainAdmin:
		return nil
	case models.RoleBranchAdmin:
		if student == nil || student.Branch != actor.Branch {
			return apperrors.NewForbiddenError("application belongs to a student outside your branch")
		}
		return nil
	case models.RoleStudent:
		if actor.SubjectID != app.StudentID {
			return apperrors.NewForbiddenError("you can only withdraw your own applications")
		}
		if app.Status != models.ApplicationPending {
			return apperrors.NewCustomError(apperrors.ErrInvalidState,
				fmt.Sprintf("cannot withdraw an application that is %s", app.Status))
		}
		return nil
	}
	return apperrors.NewForbiddenError("unknown role")
}
