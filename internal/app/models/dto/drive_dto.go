package dto

import "github.com/akash/placementhub/internal/app/models"

// CreateDriveRequest represents a request to create a recruitment drive.
// Drives start in draft status; publishing is a separate operation.
type CreateDriveRequest struct {
	CompanyID   *int64                      `json:"companyId,omitempty"`
	Title       string                      `json:"title" binding:"required"`
	Description string                      `json:"description,omitempty"`
	Eligibility *models.EligibilityCriteria `json:"eligibility,omitempty"`
	TotalRounds int                         `json:"totalRounds" binding:"required,min=1"`
	RoundNames  []string                    `json:"roundNames,omitempty"`
}

// UpdateDriveRequest represents a drive detail update
type UpdateDriveRequest struct {
	CompanyID   *int64                      `json:"companyId,omitempty"`
	Title       *string                     `json:"title,omitempty"`
	Description *string                     `json:"description,omitempty"`
	Eligibility *models.EligibilityCriteria `json:"eligibility,omitempty"`
	TotalRounds *int                        `json:"totalRounds,omitempty" binding:"omitempty,min=1"`
	RoundNames  []string                    `json:"roundNames,omitempty"`
	Status      *models.DriveStatus         `json:"status,omitempty"`
}

// DriveListFilter captures query parameters for listing drives.
// Branch is not client-settable; services fill it to restrict the
// listing to drives whose eligibility covers the caller's branch.
type DriveListFilter struct {
	Status    string `form:"status"`
	CompanyID int64  `form:"companyId"`
	Branch    string `form:"-"`
	Page      int    `form:"page"`
	Size      int    `form:"size"`
}

// EligibilityCheckResponse reports whether the caller may apply to a drive
type EligibilityCheckResponse struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}
