package dto

// UpdateBranchThresholdsRequest replaces the per-branch CGPA thresholds
type UpdateBranchThresholdsRequest struct {
	Thresholds map[string]float64 `json:"thresholds" binding:"required"`
}
