package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/akash/placementhub/internal/app/models"
	"github.com/akash/placementhub/internal/app/models/dto"
	"github.com/akash/placementhub/internal/app/repositories"
	"github.com/akash/placementhub/internal/pkg/apperrors"
)

// SettingsService handles placement cell configuration
type SettingsService struct {
	settingsRepo *repositories.SettingsRepository
	logger       zerolog.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo *repositories.SettingsRepository, logger zerolog.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// GetBranchThresholds retrieves the per-branch CGPA thresholds. A missing
// setting row reads as an empty map.
func (s *SettingsService) GetBranchThresholds(ctx context.Context) (models.BranchThresholds, error) {
	setting, err := s.settingsRepo.Get(ctx, models.SettingBranchThresholds)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return models.BranchThresholds{}, nil
		}
		return nil, err
	}

	var thresholds models.BranchThresholds
	if err := json.Unmarshal(setting.Value, &thresholds); err != nil {
		return nil, fmt.Errorf("error decoding branch thresholds: %w", err)
	}
	return thresholds, nil
}

// UpdateBranchThresholds replaces the per-branch CGPA thresholds
func (s *SettingsService) UpdateBranchThresholds(ctx context.Context, req dto.UpdateBranchThresholdsRequest) (models.BranchThresholds, error) {
	for branch, threshold := range req.Thresholds {
		if threshold < 0 || threshold > 10 {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("threshold %.2f for branch %s must be between 0 and 10", threshold, branch))
		}
	}

	value, err := json.Marshal(req.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("error encoding branch thresholds: %w", err)
	}
	if err := s.settingsRepo.Upsert(ctx, models.SettingBranchThresholds, value); err != nil {
		return nil, err
	}

	s.logger.Info().Int("branches", len(req.Thresholds)).Msg("Branch thresholds updated")
	return models.BranchThresholds(req.Thresholds), nil
}
