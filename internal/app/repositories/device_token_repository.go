package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akash/placementhub/internal/app/models"
)

// DeviceTokenRepository handles database operations for push device tokens
type DeviceTokenRepository struct {
	db *pgxpool.Pool
}

// NewDeviceTokenRepository creates a new device token repository
func NewDeviceTokenRepository(db *pgxpool.Pool) *DeviceTokenRepository {
	return &DeviceTokenRepository{db: db}
}

// Upsert registers a token for a student. Re-registering an existing
// token bumps its last_used_at instead of duplicating the row.
func (r *DeviceTokenRepository) Upsert(ctx context.Context, t *models.DeviceToken) error {
	query := `
		INSERT INTO device_tokens (student_id, token, platform)
		VALUES ($1, $2, $3)
		ON CONFLICT (token) DO UPDATE
			SET student_id = EXCLUDED.student_id,
				platform = EXCLUDED.platform,
				last_used_at = NOW()
		RETURNING id, created_at, last_used_at
	`

	err := r.db.QueryRow(ctx, query, t.StudentID, t.Token, t.Platform).
		Scan(&t.ID, &t.CreatedAt, &t.LastUsedAt)
	if err != nil {
		return fmt.Errorf("error upserting device token: %w", err)
	}

	return nil
}

// ListByStudents retrieves the tokens registered for the given students
func (r *DeviceTokenRepository) ListByStudents(ctx context.Context, studentIDs []int64) ([]models.DeviceToken, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	sql, args, err := squirrel.Select("id", "student_id", "token", "platform", "created_at", "last_used_at").
		From("device_tokens").
		Where(squirrel.Eq{"student_id": studentIDs}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []models.DeviceToken
	for rows.Next() {
		var t models.DeviceToken
		if err := rows.Scan(&t.ID, &t.StudentID, &t.Token, &t.Platform, &t.CreatedAt, &t.LastUsedAt); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}

	return tokens, rows.Err()
}

// TouchLastUsed bumps the last delivery timestamp for the given tokens
func (r *DeviceTokenRepository) TouchLastUsed(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	sql, args, err := squirrel.Update("device_tokens").
		Set("last_used_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"token": tokens}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error touching device tokens: %w", err)
	}
	return nil
}

// DeleteByTokens prunes tokens the push provider reported as invalid
func (r *DeviceTokenRepository) DeleteByTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	sql, args, err := squirrel.Delete("device_tokens").
		Where(squirrel.Eq{"token": tokens}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error pruning device tokens: %w", err)
	}
	return nil
}

// DeleteForStudent removes a specific token owned by a student
func (r *DeviceTokenRepository) DeleteForStudent(ctx context.Context, studentID int64, token string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM device_tokens WHERE student_id = $1 AND token = $2`, studentID, token)
	if err != nil {
		return fmt.Errorf("error deleting device token: %w", err)
	}
	return nil
}
