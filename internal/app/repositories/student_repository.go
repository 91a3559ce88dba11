package repositories

import (
	"context"
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

const studentColumns = `id, regd_id, first_name, last_name, father_name, email, alt_email,
	phone, alt_phone, branch, cgpa, year, gender, dob, nationality, college, resume_url,
	aadhar_number, pan_card, password_hash, break_in_studies, has_backlogs, created_at, updated_at`

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID,
		&s.RegdID,
		&s.FirstName,
		&s.LastName,
		&s.FatherName,
		&s.Email,
		&s.AltEmail,
		&s.Phone,
		&s.AltPhone,
		&s.Branch,
		&s.CGPA,
		&s.Year,
		&s.Gender,
		&s.DOB,
		&s.Nationality,
		&s.College,
		&s.ResumeURL,
		&s.AadharNumber,
		&s.PANCard,
		&s.PasswordHash,
		&s.BreakInStudies,
		&s.HasBacklogs,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student record
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (regd_id, first_name, last_name, father_name, email, alt_email,
			phone, alt_phone, branch, cgpa, year, gender, dob, nationality, college, resume_url,
			aadhar_number, pan_card, password_hash, break_in_studies, has_backlogs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		student.RegdID,
		student.FirstName,
		student.LastName,
		student.FatherName,
		student.Email,
		student.AltEmail,
		student.Phone,
		student.AltPhone,
		student.Branch,
		student.CGPA,
		student.Year,
		student.Gender,
		student.DOB,
		student.Nationality,
		student.College,
		student.ResumeURL,
		student.AadharNumber,
		student.PANCard,
		student.PasswordHash,
		student.BreakInStudies,
		student.HasBacklogs,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_regd_id_key") {
			return apperrors.ErrRegdIDAlreadyExists
		}
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE id = $1`, studentColumns)

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByRegdID retrieves a student by registration identifier
func (r *StudentRepository) GetByRegdID(ctx context.Context, regdID string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE regd_id = $1`, studentColumns)

	student, err := scanStudent(r.db.QueryRow(ctx, query, regdID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetAll retrieves students with filtering and pagination
func (r *StudentRepository) GetAll(ctx context.Context, filter dto.StudentListFilter, page, pageSize int) ([]models.Student, int64, error) {
	query := squirrel.Select(studentColumns).
		From("students").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Branch != "" {
		query = query.Where("branch = ?", filter.Branch)
	}
	if filter.Year != "" {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.MinCGPA > 0 {
		query = query.Where("cgpa >= ?", filter.MinCGPA)
	}
	if filter.HasBacklogs != nil {
		query = query.Where("has_backlogs = ?", *filter.HasBacklogs)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"(regd_id ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?)",
			pattern, pattern, pattern, pattern,
		)
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("regd_id").Limit(uint64(pageSize)).Offset(uint64(offset))

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

	var students []models.Student
	var total int64

	for rows.Next() {
		var s models.Student
		err := rows.Scan(
			&s.ID,
			&s.RegdID,
			&s.FirstName,
			&s.LastName,
			&s.FatherName,
			&s.Email,
			&s.AltEmail,
			&s.Phone,
			&s.AltPhone,
			&s.Branch,
			&s.CGPA,
			&s.Year,
			&s.Gender,
			&s.DOB,
			&s.Nationality,
			&s.College,
			&s.ResumeURL,
			&s.AadharNumber,
			&s.PANCard,
			&s.PasswordHash,
			&s.BreakInStudies,
			&s.HasBacklogs,
			&s.CreatedAt,
			&s.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		students = append(students, s)
	}

	return students, total, rows.Err()
}

// ListByBranches retrieves full student rows for the given branches.
// An empty branch list returns every student.
func (r *StudentRepository) ListByBranches(ctx context.Context, branches []string) ([]models.Student, error) {
	query := squirrel.Select(studentColumns).
		From("students").
		PlaceholderFormat(squirrel.Dollar)

	if len(branches) > 0 {
		query = query.Where(squirrel.Eq{"branch": branches})
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

	var students []models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}

	return students, rows.Err()
}

// GetIDsByRegdIDs resolves registration identifiers to student ids
func (r *StudentRepository) GetIDsByRegdIDs(ctx context.Context, regdIDs []string) ([]int64, error) {
	sql, args, err := squirrel.Select("id").
		From("students").
		Where(squirrel.Eq{"regd_id": regdIDs}).
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

// Update applies a partial update built by the service layer
func (r *StudentRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	sql, args, err := squirrel.Update("students").
		SetMap(updates).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_regd_id_key") {
			return apperrors.ErrRegdIDAlreadyExists
		}
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// UpdatePassword replaces the stored password hash for a student
func (r *StudentRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE students SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("error updating student password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student. Applications, notifications, addresses and
// education records go with it through foreign key cascades.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// GetAddresses retrieves a student's stored addresses
func (r *StudentRepository) GetAddresses(ctx context.Context, studentID int64) ([]models.Address, error) {
	query := `
		SELECT id, student_id, kind, line1, line2, city, state, pincode
		FROM student_addresses
		WHERE student_id = $1
		ORDER BY kind
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []models.Address
	for rows.Next() {
		var a models.Address
		if err := rows.Scan(&a.ID, &a.StudentID, &a.Kind, &a.Line1, &a.Line2, &a.City, &a.State, &a.Pincode); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}

	return addresses, rows.Err()
}

// ReplaceAddresses swaps a student's addresses for the given set
func (r *StudentRepository) ReplaceAddresses(ctx context.Context, studentID int64, addresses []models.Address) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM student_addresses WHERE student_id = $1`, studentID); err != nil {
		return fmt.Errorf("error clearing addresses: %w", err)
	}

	for _, a := range addresses {
		_, err := tx.Exec(ctx, `
			INSERT INTO student_addresses (student_id, kind, line1, line2, city, state, pincode)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			studentID, a.Kind, a.Line1, a.Line2, a.City, a.State, a.Pincode)
		if err != nil {
			return fmt.Errorf("error inserting address: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetEducation retrieves a student's education records
func (r *StudentRepository) GetEducation(ctx context.Context, studentID int64) ([]models.EducationRecord, error) {
	query := `
		SELECT id, student_id, level, institution, board, year_of_pass, percentage
		FROM student_education
		WHERE student_id = $1
		ORDER BY level
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.EducationRecord
	for rows.Next() {
		var e models.EducationRecord
		if err := rows.Scan(&e.ID, &e.StudentID, &e.Level, &e.Institution, &e.Board, &e.YearOfPass, &e.Percentage); err != nil {
			return nil, err
		}
		records = append(records, e)
	}

	return records, rows.Err()
}

// ReplaceEducation swaps a student's education records for the given set
func (r *StudentRepository) ReplaceEducation(ctx context.Context, studentID int64, records []models.EducationRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM student_education WHERE student_id = $1`, studentID); err != nil {
		return fmt.Errorf("error clearing education records: %w", err)
	}

	for _, e := range records {
		_, err := tx.Exec(ctx, `
			INSERT INTO student_education (student_id, level, institution, board, year_of_pass, percentage)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			studentID, e.Level, e.Institution, e.Board, e.YearOfPass, e.Percentage)
		if err != nil {
			return fmt.Errorf("error inserting education record: %w", err)
		}
	}

	return tx.Commit(ctx)
}
