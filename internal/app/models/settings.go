package models

import "time"

// Setting is one key/value row in the 'settings' table. Values are JSONB
// and interpreted per key.
type Setting struct {
	Key       string    `json:"key" db:"key" example:"branch_thresholds"`
	Value     []byte    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// SettingBranchThresholds is the key for per-branch CGPA threshold overrides.
const SettingBranchThresholds = "branch_thresholds"

// BranchThresholds maps branch code to the minimum CGPA the placement cell
// enforces for that branch.
type BranchThresholds map[string]float64
