package dto

import "github.com/akash/placementhub/internal/app/models"

// ApplyRequest represents a student applying to a drive
type ApplyRequest struct {
	DriveID int64 `json:"driveId" binding:"required,min=1"`
}

// UpdateApplicationStatusRequest represents a direct overall status change
type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required,oneof=pending accepted rejected"`
}

// UpdateRoundStatusRequest represents the judgement of one interview round
type UpdateRoundStatusRequest struct {
	Round  int                 `json:"round" binding:"required,min=1"`
	Status models.RoundOutcome `json:"status" binding:"required,oneof=accepted rejected"`
}

// BulkStatusUpdateRequest represents a status change applied to many
// applications at once. Rows are processed independently.
type BulkStatusUpdateRequest struct {
	ApplicationIDs []int64                  `json:"applicationIds" binding:"required,min=1"`
	Status         models.ApplicationStatus `json:"status" binding:"required,oneof=pending accepted rejected"`
}

// BulkFailure reports one application that could not be updated
type BulkFailure struct {
	ApplicationID int64  `json:"applicationId"`
	Reason        string `json:"reason"`
}

// BulkStatusUpdateResponse summarises a bulk status change
type BulkStatusUpdateResponse struct {
	Requested    int           `json:"requested"`
	SuccessCount int           `json:"successCount"`
	Failures     []BulkFailure `json:"failures,omitempty"`
}

// ApplicationListFilter captures query parameters for listing applications
type ApplicationListFilter struct {
	DriveID   int64  `form:"driveId"`
	StudentID int64  `form:"studentId"`
	Status    string `form:"status"`
	Branch    string `form:"branch"`
	Page      int    `form:"page"`
	Size      int    `form:"size"`
}

// ApplicationStatsResponse aggregates application counts, either for a
// drive or for one student's applications.
type ApplicationStatsResponse struct {
	DriveID  int64 `json:"driveId,omitempty"`
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}
