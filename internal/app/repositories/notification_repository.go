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
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a single notification
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	data, err := json.Marshal(n.Data)
	if err != nil {
		return fmt.Errorf("error encoding notification data: %w", err)
	}

	query := `
		INSERT INTO notifications (student_id, type, title, message, data, read)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err = r.db.QueryRow(ctx, query, n.StudentID, n.Type, n.Title, n.Message, data, n.Read).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

// CreateBatch inserts notifications for many students in one round trip
func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, n := range notifications {
		data, err := json.Marshal(n.Data)
		if err != nil {
			return fmt.Errorf("error encoding notification data: %w", err)
		}
		batch.Queue(`
			INSERT INTO notifications (student_id, type, title, message, data, read)
			VALUES ($1, $2, $3, $4, $5, false)`,
			n.StudentID, n.Type, n.Title, n.Message, data)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range notifications {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("error inserting notification batch: %w", err)
		}
	}

	return nil
}

// GetByID retrieves a notification by ID
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	query := `
		SELECT id, student_id, type, title, message, data, read, created_at
		FROM notifications
		WHERE id = $1
	`

	var n models.Notification
	var data []byte
	err := r.db.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.StudentID, &n.Type, &n.Title, &n.Message, &data, &n.Read, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("error retrieving notification: %w", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &n.Data); err != nil {
			return nil, fmt.Errorf("error decoding notification data: %w", err)
		}
	}

	return &n, nil
}

// ListByStudent retrieves a student's notifications, newest first
func (r *NotificationRepository) ListByStudent(ctx context.Context, studentID int64, filter dto.NotificationListFilter, page, pageSize int) ([]models.Notification, int64, error) {
	query := squirrel.Select("id", "student_id", "type", "title", "message", "data", "read", "created_at").
		From("notifications").
		Where("student_id = ?", studentID).
		PlaceholderFormat(squirrel.Dollar)

	if filter.Unread {
		query = query.Where("read = false")
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

	var notifications []models.Notification
	var total int64

	for rows.Next() {
		var n models.Notification
		var data []byte
		if err := rows.Scan(&n.ID, &n.StudentID, &n.Type, &n.Title, &n.Message, &data, &n.Read, &n.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &n.Data); err != nil {
				return nil, 0, fmt.Errorf("error decoding notification data: %w", err)
			}
		}
		notifications = append(notifications, n)
	}

	return notifications, total, rows.Err()
}

// CountUnread returns the number of unread notifications for a student
func (r *NotificationRepository) CountUnread(ctx context.Context, studentID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE student_id = $1 AND read = false`, studentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead flags one notification of a student as read
func (r *NotificationRepository) MarkRead(ctx context.Context, studentID, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND student_id = $2`, id, studentID)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead flags every notification of a student as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, studentID int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = true WHERE student_id = $1 AND read = false`, studentID)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Update edits the title or message of a stored notification
func (r *NotificationRepository) Update(ctx context.Context, n *models.Notification) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET title = $1, message = $2 WHERE id = $3`, n.Title, n.Message, n.ID)
	if err != nil {
		return fmt.Errorf("error updating notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// Delete removes a notification
func (r *NotificationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// DeleteBulk removes a set of notifications by id and reports how many
// rows actually went away.
func (r *NotificationRepository) DeleteBulk(ctx context.Context, ids []int64) (int64, error) {
	sql, args, err := squirrel.Delete("notifications").
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}
