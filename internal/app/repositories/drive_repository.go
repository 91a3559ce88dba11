package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akash/placementhub/internal/app/models"
	"github.com/akash/placementhub/internal/app/models/dto"
	"github.com/akash/placementhub/internal/pkg/apperrors"
)

// DriveRepository handles database operations for recruitment drives
type DriveRepository struct {
	db *pgxpool.Pool
}

// NewDriveRepository creates a new drive repository
func NewDriveRepository(db *pgxpool.Pool) *DriveRepository {
	return &DriveRepository{db: db}
}

// Create inserts a new drive in draft status
func (r *DriveRepository) Create(ctx context.Context, drive *models.Drive) error {
	eligibility, err := json.Marshal(drive.Eligibility)
	if err != nil {
		return fmt.Errorf("error encoding eligibility: %w", err)
	}
	roundNames, err := json.Marshal(drive.RoundNames)
	if err != nil {
		return fmt.Errorf("error encoding round names: %w", err)
	}

	query := `
		INSERT INTO drives (company_id, title, description, status, eligibility, total_rounds, round_names)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query,
		drive.CompanyID,
		drive.Title,
		drive.Description,
		drive.Status,
		eligibility,
		drive.TotalRounds,
		roundNames,
	).Scan(&drive.ID, &drive.CreatedAt, &drive.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating drive: %w", err)
	}

	return nil
}

func scanDrive(row pgx.Row) (*models.Drive, error) {
	var d models.Drive
	var eligibility, roundNames []byte

	err := row.Scan(
		&d.ID,
		&d.CompanyID,
		&d.Title,
		&d.Description,
		&d.Status,
		&eligibility,
		&d.TotalRounds,
		&roundNames,
		&d.PublishDate,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(eligibility) > 0 {
		if err := json.Unmarshal(eligibility, &d.Eligibility); err != nil {
			return nil, fmt.Errorf("error decoding eligibility: %w", err)
		}
	}
	if len(roundNames) > 0 {
		if err := json.Unmarshal(roundNames, &d.RoundNames); err != nil {
			return nil, fmt.Errorf("error decoding round names: %w", err)
		}
	}

	return &d, nil
}

// GetByID retrieves a drive by ID with its company, when linked
func (r *DriveRepository) GetByID(ctx context.Context, id int64) (*models.Drive, error) {
	query := `
		SELECT id, company_id, title, description, status, eligibility, total_rounds,
			round_names, publish_date, created_at, updated_at
		FROM drives
		WHERE id = $1
	`

	drive, err := scanDrive(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDriveNotFound
		}
		return nil, fmt.Errorf("error retrieving drive: %w", err)
	}

	if drive.CompanyID != nil {
		company, err := NewCompanyRepository(r.db).GetByID(ctx, *drive.CompanyID)
		if err == nil {
			drive.Company = company
		} else if !errors.Is(err, apperrors.ErrCompanyNotFound) {
			return nil, err
		}
	}

	return drive, nil
}

// GetAll retrieves drives with filtering and pagination
func (r *DriveRepository) GetAll(ctx context.Context, filter dto.DriveListFilter, page, pageSize int) ([]models.Drive, int64, error) {
	query := squirrel.Select(
		"id", "company_id", "title", "description", "status", "eligibility",
		"total_rounds", "round_names", "publish_date", "created_at", "updated_at").
		From("drives").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CompanyID > 0 {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if filter.Branch != "" {
		branchJSON, err := json.Marshal([]string{filter.Branch})
		if err != nil {
			return nil, 0, fmt.Errorf("error encoding branch filter: %w", err)
		}
		// Open eligibility (no branches listed) covers every branch.
		query = query.Where(
			"(eligibility->'branches' IS NULL OR eligibility->'branches' = 'null' OR eligibility->'branches' = '[]' OR eligibility->'branches' @> ?)",
			string(branchJSON),
		)
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("created_at DESC").Limit(uint64(pageSize)).Offset(uint64(offset))

	countQuery := query.Column("COUNT(*) OVER()")
	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var drives []models.Drive
	var total int64

	for rows.Next() {
		var d models.Drive
		var eligibility, roundNames []byte
		err := rows.Scan(
			&d.ID,
			&d.CompanyID,
			&d.Title,
			&d.Description,
			&d.Status,
			&eligibility,
			&d.TotalRounds,
			&roundNames,
			&d.PublishDate,
			&d.CreatedAt,
			&d.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		if len(eligibility) > 0 {
			if err := json.Unmarshal(eligibility, &d.Eligibility); err != nil {
				return nil, 0, fmt.Errorf("error decoding eligibility: %w", err)
			}
		}
		if len(roundNames) > 0 {
			if err := json.Unmarshal(roundNames, &d.RoundNames); err != nil {
				return nil, 0, fmt.Errorf("error decoding round names: %w", err)
			}
		}
		drives = append(drives, d)
	}

	return drives, total, rows.Err()
}

// Update rewrites the mutable fields of a drive
func (r *DriveRepository) Update(ctx context.Context, drive *models.Drive) error {
	eligibility, err := json.Marshal(drive.Eligibility)
	if err != nil {
		return fmt.Errorf("error encoding eligibility: %w", err)
	}
	roundNames, err := json.Marshal(drive.RoundNames)
	if err != nil {
		return fmt.Errorf("error encoding round names: %w", err)
	}

	query := `
		UPDATE drives
		SET company_id = $1, title = $2, description = $3, status = $4,
			eligibility = $5, total_rounds = $6, round_names = $7, updated_at = NOW()
		WHERE id = $8
	`

	tag, err := r.db.Exec(ctx, query,
		drive.CompanyID,
		drive.Title,
		drive.Description,
		drive.Status,
		eligibility,
		drive.TotalRounds,
		roundNames,
		drive.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating drive: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDriveNotFound
	}

	return nil
}

// MarkPublished flips a drive to published and stamps the publish date
func (r *DriveRepository) MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	query := `
		UPDATE drives
		SET status = $1, publish_date = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := r.db.Exec(ctx, query, models.DrivePublished, publishedAt, id)
	if err != nil {
		return fmt.Errorf("error publishing drive: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDriveNotFound
	}

	return nil
}

// CountApplications returns how many applications reference the drive
func (r *DriveRepository) CountApplications(ctx context.Context, id int64) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE drive_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting drive applications: %w", err)
	}
	return count, nil
}

// Delete removes a drive
func (r *DriveRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM drives WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting drive: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDriveNotFound
	}
	return nil
}
