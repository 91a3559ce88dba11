package models

import "time"

// StatusEntry is one audit record in an application's status history.
// JSON keys match the persisted JSONB shape.
type StatusEntry struct {
	Status    ApplicationStatus `json:"status"`
	ChangedAt time.Time         `json:"changed_at"`
	ChangedBy *int64            `json:"changed_by"`
}

// RoundEntry is one judged interview round. Entries are append-only:
// re-judging a round appends a new entry rather than rewriting the old one.
type RoundEntry struct {
	Round     int          `json:"round"`
	Status    RoundOutcome `json:"status"`
	RoundName string       `json:"round_name"`
	UpdatedAt time.Time    `json:"updated_at"`
	UpdatedBy *int64       `json:"updated_by"`
}

// Application defines the application model based on the 'applications' table.
// CurrentRound is the 1-based round the candidate sits in next.
type Application struct {
	ID            int64             `json:"id" db:"id" example:"1"`
	DriveID       int64             `json:"driveId" db:"drive_id" example:"7"`
	StudentID     int64             `json:"studentId" db:"student_id" example:"42"`
	Status        ApplicationStatus `json:"status" db:"status" example:"pending"`
	StatusHistory []StatusEntry     `json:"statusHistory" db:"status_history"`
	CurrentRound  int               `json:"currentRound" db:"current_round" example:"1"`
	RoundStatus   []RoundEntry      `json:"roundStatus" db:"round_status"`
	AppliedAt     time.Time         `json:"appliedAt" db:"applied_at"`
	UpdatedAt     time.Time         `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
	Drive   *Drive   `json:"drive,omitempty"`
}

// LatestRoundEntry returns the most recently appended round entry, or nil
// when no round has been judged yet.
func (a *Application) LatestRoundEntry() *RoundEntry {
	if len(a.RoundStatus) == 0 {
		return nil
	}
	return &a.RoundStatus[len(a.RoundStatus)-1]
}
