package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/akash/placementhub/internal/app/models"
	"github.com/akash/placementhub/internal/app/models/dto"
	"github.com/akash/placementhub/internal/app/repositories"
	"github.com/akash/placementhub/internal/pkg/apperrors"
)

// CompanyService handles company registry operations
type CompanyService struct {
	companyRepo *repositories.CompanyRepository
	logger      zerolog.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo *repositories.CompanyRepository, logger zerolog.Logger) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// Upsert registers a company, merging info into an existing row when the
// name is already known.
func (s *CompanyService) Upsert(ctx context.Context, req dto.CreateCompanyRequest) (*models.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("company name cannot be empty")
	}

	company := &models.Company{Name: name, Info: req.Info}
	if err := s.companyRepo.Upsert(ctx, company); err != nil {
		return nil, err
	}

	s.logger.Info().Str("name", company.Name).Int64("id", company.ID).Msg("Company upserted")
	return company, nil
}

// Get retrieves a company by ID
func (s *CompanyService) Get(ctx context.Context, id int64) (*models.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}

// List retrieves all companies
func (s *CompanyService) List(ctx context.Context) ([]models.Company, error) {
	return s.companyRepo.GetAll(ctx)
}

// Update edits a company's name or info
func (s *CompanyService) Update(ctx context.Context, id int64, req dto.UpdateCompanyRequest) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("company name cannot be empty")
		}
		company.Name = name
	}
	if req.Info != nil {
		company.Info = req.Info
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Delete removes a company. Companies with drives cannot be deleted.
func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	count, err := s.companyRepo.CountDrives(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrCompanyHasDrives
	}

	if err := s.companyRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("companyId", id).Msg("Company deleted")
	return nil
}
