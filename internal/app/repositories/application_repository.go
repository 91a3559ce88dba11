package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akash/placementhub/internal/app/models"
	"github.com/akash/placementhub/internal/app/models/dto"
	"github.com/akash/placementhub/internal/pkg/apperrors"
	"github.com/akash/placementhub/internal/pkg/dberrors"
)

// ApplicationRepository handles database operations for applications
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a new application. A student can hold at most one
// application per drive.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	statusHistory, err := json.Marshal(app.StatusHistory)
	if err != nil {
		return fmt.Errorf("error encoding status history: %w", err)
	}
	roundStatus, err := json.Marshal(app.RoundStatus)
	if err != nil {
		return fmt.Errorf("error encoding round status: %w", err)
	}

	query := `
		INSERT INTO applications (drive_id, student_id, status, status_history, current_round, round_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, applied_at, updated_at
	`

	err = r.db.QueryRow(ctx, query,
		app.DriveID,
		app.StudentID,
		app.Status,
		statusHistory,
		app.CurrentRound,
		roundStatus,
	).Scan(&app.ID, &app.AppliedAt, &app.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDuplicateApplication
		}
		return fmt.Errorf("error creating application: %w", err)
	}

	return nil
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	var a models.Application
	var statusHistory, roundStatus []byte

	err := row.Scan(
		&a.ID,
		&a.DriveID,
		&a.StudentID,
		&a.Status,
		&statusHistory,
		&a.CurrentRound,
		&roundStatus,
		&a.AppliedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(statusHistory) > 0 {
		if err := json.Unmarshal(statusHistory, &a.StatusHistory); err != nil {
			return nil, fmt.Errorf("error decoding status history: %w", err)
		}
	}
	if len(roundStatus) > 0 {
		if err := json.Unmarshal(roundStatus, &a.RoundStatus); err != nil {
			return nil, fmt.Errorf("error decoding round status: %w", err)
		}
	}

	return &a, nil
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	query := `
		SELECT id, drive_id, student_id, status, status_history, current_round, round_status, applied_at, updated_at
		FROM applications
		WHERE id = $1
	`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	return app, nil
}

// GetAll retrieves applications with filtering and pagination. Branch
// filtering joins through the students table.
func (r *ApplicationRepository) GetAll(ctx context.Context, filter dto.ApplicationListFilter, page, pageSize int) ([]models.Application, int64, error) {
	query := squirrel.Select(
		"a.id", "a.drive_id", "a.student_id", "a.status", "a.status_history",
		"a.current_round", "a.round_status", "a.applied_at", "a.updated_at").
		From("applications a").
		Join("students s ON s.id = a.student_id").
		PlaceholderFormat(squirrel.Dollar)

	if filter.DriveID > 0 {
		query = query.Where("a.drive_id = ?", filter.DriveID)
	}
	if filter.StudentID > 0 {
		query = query.Where("a.student_id = ?", filter.StudentID)
	}
	if filter.Status != "" {
		query = query.Where("a.status = ?", filter.Status)
	}
	if filter.Branch != "" {
		query = query.Where("s.branch = ?", filter.Branch)
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("a.applied_at DESC").Limit(uint64(pageSize)).Offset(uint64(offset))

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

	var apps []models.Application
	var total int64

	for rows.Next() {
		var a models.Application
		var statusHistory, roundStatus []byte
		err := rows.Scan(
			&a.ID,
			&a.DriveID,
			&a.StudentID,
			&a.Status,
			&statusHistory,
			&a.CurrentRound,
			&roundStatus,
			&a.AppliedAt,
			&a.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		if len(statusHistory) > 0 {
			if err := json.Unmarshal(statusHistory, &a.StatusHistory); err != nil {
				return nil, 0, fmt.Errorf("error decoding status history: %w", err)
			}
		}
		if len(roundStatus) > 0 {
			if err := json.Unmarshal(roundStatus, &a.RoundStatus); err != nil {
				return nil, 0, fmt.Errorf("error decoding round status: %w", err)
			}
		}
		apps = append(apps, a)
	}

	return apps, total, rows.Err()
}

// ListByStudent retrieves all applications of one student, newest first
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Application, error) {
	query := `
		SELECT id, drive_id, student_id, status, status_history, current_round, round_status, applied_at, updated_at
		FROM applications
		WHERE student_id = $1
		ORDER BY applied_at DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}

	return apps, rows.Err()
}

// Update persists the lifecycle fields of an application
func (r *ApplicationRepository) Update(ctx context.Context, app *models.Application) error {
	statusHistory, err := json.Marshal(app.StatusHistory)
	if err != nil {
		return fmt.Errorf("error encoding status history: %w", err)
	}
	roundStatus, err := json.Marshal(app.RoundStatus)
	if err != nil {
		return fmt.Errorf("error encoding round status: %w", err)
	}

	query := `
		UPDATE applications
		SET status = $1, status_history = $2, current_round = $3, round_status = $4, updated_at = $5
		WHERE id = $6
	`

	tag, err := r.db.Exec(ctx, query,
		app.Status,
		statusHistory,
		app.CurrentRound,
		roundStatus,
		app.UpdatedAt,
		app.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}

	return nil
}

// Delete removes an application
func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// Stats aggregates application counts for a drive by overall status
func (r *ApplicationRepository) Stats(ctx context.Context, driveID int64) (*dto.ApplicationStatsResponse, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'accepted'),
			COUNT(*) FILTER (WHERE status = 'rejected')
		FROM applications
		WHERE drive_id = $1
	`

	stats := dto.ApplicationStatsResponse{DriveID: driveID}
	err := r.db.QueryRow(ctx, query, driveID).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.Accepted,
		&stats.Rejected,
	)
	if err != nil {
		return nil, fmt.Errorf("error aggregating application stats: %w", err)
	}

	return &stats, nil
}

// StatsByStudent aggregates one student's application counts by overall status
func (r *ApplicationRepository) StatsByStudent(ctx context.Context, studentID int64) (*dto.ApplicationStatsResponse, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'accepted'),
			COUNT(*) FILTER (WHERE status = 'rejected')
		FROM applications
		WHERE student_id = $1
	`

	var stats dto.ApplicationStatsResponse
	err := r.db.QueryRow(ctx, query, studentID).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.Accepted,
		&stats.Rejected,
	)
	if err != nil {
		return nil, fmt.Errorf("error aggregating student application stats: %w", err)
	}

	return &stats, nil
}

// ListStudentIDsByDriveStatus returns the students holding an application
// on the drive, optionally narrowed to one overall status.
func (r *ApplicationRepository) ListStudentIDsByDriveStatus(ctx context.Context, driveID int64, status string) ([]int64, error) {
	query := squirrel.Select("student_id").
		From("applications").
		Where("drive_id = ?", driveID).
		PlaceholderFormat(squirrel.Dollar)

	if status != "" {
		query = query.Where("status = ?", status)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
