package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akash/placementhub/internal/app/models"
	"github.com/akash/placementhub/internal/pkg/apperrors"
)

// CompanyRepository handles database operations for companies
type CompanyRepository struct {
	db *pgxpool.Pool
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Upsert inserts a company or, when the name is already registered,
// merges the new info into the existing row.
func (r *CompanyRepository) Upsert(ctx context.Context, company *models.Company) error {
	info, err := json.Marshal(company.Info)
	if err != nil {
		return fmt.Errorf("error encoding company info: %w", err)
	}

	query := `
		INSERT INTO companies (name, info)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET info = companies.info || EXCLUDED.info
		RETURNING id, created_at
	`

	if err := r.db.QueryRow(ctx, query, company.Name, info).Scan(&company.ID, &company.CreatedAt); err != nil {
		return fmt.Errorf("error upserting company: %w", err)
	}

	return nil
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	query := `
		SELECT id, name, info, created_at
		FROM companies
		WHERE id = $1
	`

	var company models.Company
	var info []byte
	err := r.db.QueryRow(ctx, query, id).Scan(&company.ID, &company.Name, &info, &company.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("error retrieving company: %w", err)
	}

	if len(info) > 0 {
		if err := json.Unmarshal(info, &company.Info); err != nil {
			return nil, fmt.Errorf("error decoding company info: %w", err)
		}
	}

	return &company, nil
}

// GetAll retrieves all companies ordered by name
func (r *CompanyRepository) GetAll(ctx context.Context) ([]models.Company, error) {
	query := `
		SELECT id, name, info, created_at
		FROM companies
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var company models.Company
		var info []byte
		if err := rows.Scan(&company.ID, &company.Name, &info, &company.CreatedAt); err != nil {
			return nil, err
		}
		if len(info) > 0 {
			if err := json.Unmarshal(info, &company.Info); err != nil {
				return nil, fmt.Errorf("error decoding company info: %w", err)
			}
		}
		companies = append(companies, company)
	}

	return companies, rows.Err()
}

// Update applies a name or info change to a company
func (r *CompanyRepository) Update(ctx context.Context, company *models.Company) error {
	info, err := json.Marshal(company.Info)
	if err != nil {
		return fmt.Errorf("error encoding company info: %w", err)
	}

	tag, err := r.db.Exec(ctx, `UPDATE companies SET name = $1, info = $2 WHERE id = $3`,
		company.Name, info, company.ID)
	if err != nil {
		return fmt.Errorf("error updating company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}

	return nil
}

// CountDrives returns how many drives reference the company
func (r *CompanyRepository) CountDrives(ctx context.Context, id int64) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM drives WHERE company_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting company drives: %w", err)
	}
	return count, nil
}

// Delete removes a company
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}
	return nil
}
