package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/akash/placementhub/internal/app/models"
	"github.com/akash/placementhub/internal/app/repositories"
	"github.com/akash/placementhub/internal/pkg/apperrors"
)

// CreateDefaultData ensures baseline rows exist. It always seeds an empty
// branch threshold setting and, when demo is set, a handful of demo students
// and a company for local development. Everything here is idempotent.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger, demo bool) error {
	repos := repositories.NewRepositories(dbPool)

	if err := ensureBranchThresholds(ctx, repos, lgr); err != nil {
		return err
	}

	if !demo {
		return nil
	}

	lgr.Info().Msg("Seeding demo data...")
	var finalErr error

	company := &models.Company{
		Name: "Hexaview Labs",
		Info: map[string]string{"location": "Hyderabad", "website": "https://hexaview.example"},
	}
	if err := repos.CompanyRepository.Upsert(ctx, company); err != nil {
		lgr.Error().Err(err).Msg("Error seeding demo company")
		finalErr = errors.Join(finalErr, err)
	}

	for _, student := range demoStudents() {
		err := repos.StudentRepository.Create(ctx, student)
		if err != nil &&
			!errors.Is(err, apperrors.ErrRegdIDAlreadyExists) &&
			!errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Str("regdId", student.RegdID).Msg("Error seeding demo student")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}

func ensureBranchThresholds(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	_, err := repos.SettingsRepository.Get(ctx, models.SettingBranchThresholds)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return err
	}

	if err := repos.SettingsRepository.Upsert(ctx, models.SettingBranchThresholds, []byte(`{}`)); err != nil {
		lgr.Error().Err(err).Msg("Error seeding branch thresholds setting")
		return err
	}
	return nil
}

func demoStudents() []*models.Student {
	cgpa := func(v float64) *float64 { return &v }
	dob := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}

	return []*models.Student{
		{
			RegdID:    "21BD1A0501",
			FirstName: "Ananya",
			LastName:  "Rao",
			Email:     "ananya@college.edu",
			Branch:    "CSE",
			CGPA:      cgpa(8.4),
			Year:      "2026",
			DOB:       dob(2003, time.July, 14),
		},
		{
			RegdID:    "21BD1A0402",
			FirstName: "Ravi",
			LastName:  "Teja",
			Email:     "ravi@college.edu",
			Branch:    "ECE",
			CGPA:      cgpa(7.1),
			Year:      "2026",
			DOB:       dob(2003, time.January, 2),
		},
	}
}
