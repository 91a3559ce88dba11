package models

import (
	"strconv"
	"time"
)

// EligibilityCriteria is the structured predicate stored in drives.eligibility.
// JSON keys match the persisted shape; an empty criteria matches every student.
type EligibilityCriteria struct {
	MinCGPA                 float64  `json:"min_cgpa"`
	Branches                []string `json:"branches"`
	ProfileCompleteRequired bool     `json:"profileCompleteRequired,omitempty"`
	NoBacklogsRequired      bool     `json:"noBacklogsRequired,omitempty"`
}

// Drive defines the recruitment drive model based on the 'drives' table
type Drive struct {
	ID          int64               `json:"id" db:"id" example:"1"`
	CompanyID   *int64              `json:"companyId,omitempty" db:"company_id"`
	Title       string              `json:"title" db:"title" example:"SDE Campus Drive 2026"`
	Description string              `json:"description,omitempty" db:"description"`
	Status      DriveStatus         `json:"status" db:"status" example:"published"`
	Eligibility EligibilityCriteria `json:"eligibility" db:"eligibility"`
	TotalRounds int                 `json:"totalRounds" db:"total_rounds" example:"3"`
	RoundNames  []string            `json:"roundNames" db:"round_names"`
	PublishDate *time.Time          `json:"publishDate,omitempty" db:"publish_date"`
	CreatedAt   time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time           `json:"updatedAt" db:"updated_at"`

	// Relation (populated when needed)
	Company *Company `json:"company,omitempty"`
}

// RoundName returns the configured name for a 1-based round number,
// falling back to "Round <n>" when none was set.
func (d *Drive) RoundName(round int) string {
	if round >= 1 && round <= len(d.RoundNames) && d.RoundNames[round-1] != "" {
		return d.RoundNames[round-1]
	}
	return "Round " + strconv.Itoa(round)
}
