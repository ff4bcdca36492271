package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourusername/careertrack-api/internal/model"
)

// ApplicationRepo persists free-standing application records. Applications
// carry a client-supplied title/company/type and have no foreign key into
// any listing table.
type ApplicationRepo struct {
	pool *pgxpool.Pool
}

func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

// ListByUser returns all of a user's applications, newest application first.
func (r *ApplicationRepo) ListByUser(ctx context.Context, userID string) ([]model.Application, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, title, company, type, status, location, salary_range,
		       applied_at, deadline, interview_date, notes, created_at, updated_at
		FROM applications
		WHERE user_id = $1
		ORDER BY applied_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		var a model.Application
		err := rows.Scan(
			&a.ID, &a.UserID, &a.Title, &a.Company, &a.Type, &a.Status,
			&a.Location, &a.SalaryRange, &a.AppliedAt, &a.Deadline,
			&a.InterviewDate, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning application row: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// Create inserts a new application record.
func (r *ApplicationRepo) Create(ctx context.Context, a *model.Application) (*model.Application, error) {
	var created model.Application
	err := r.pool.QueryRow(ctx, `
		INSERT INTO applications (user_id, title, company, type, status, location,
		                          salary_range, deadline, interview_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, user_id, title, company, type, status, location, salary_range,
		          applied_at, deadline, interview_date, notes, created_at, updated_at
	`, a.UserID, a.Title, a.Company, a.Type, a.Status, a.Location,
		a.SalaryRange, a.Deadline, a.InterviewDate, a.Notes,
	).Scan(
		&created.ID, &created.UserID, &created.Title, &created.Company,
		&created.Type, &created.Status, &created.Location, &created.SalaryRange,
		&created.AppliedAt, &created.Deadline, &created.InterviewDate,
		&created.Notes, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating application: %w", err)
	}
	return &created, nil
}
