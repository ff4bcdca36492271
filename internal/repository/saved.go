package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourusername/careertrack-api/internal/model"
)

// SavedOpportunityRepo persists bookmarked external listings, keyed by the
// user and the listing's external job id.
type SavedOpportunityRepo struct {
	pool *pgxpool.Pool
}

func NewSavedOpportunityRepo(pool *pgxpool.Pool) *SavedOpportunityRepo {
	return &SavedOpportunityRepo{pool: pool}
}

// ListByUser returns all opportunities the user has saved, newest first.
func (r *SavedOpportunityRepo) ListByUser(ctx context.Context, userID string) ([]model.SavedOpportunity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, job_id, title, company, type, created_at
		FROM saved_opportunities
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing saved opportunities: %w", err)
	}
	defer rows.Close()

	var saved []model.SavedOpportunity
	for rows.Next() {
		var s model.SavedOpportunity
		err := rows.Scan(&s.ID, &s.UserID, &s.JobID, &s.Title, &s.Company, &s.Type, &s.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning saved opportunity row: %w", err)
		}
		saved = append(saved, s)
	}
	return saved, rows.Err()
}

// FindByJobID returns the user's saved entry for an external job id, or
// (nil, nil) when the listing isn't saved.
func (r *SavedOpportunityRepo) FindByJobID(ctx context.Context, userID, jobID string) (*model.SavedOpportunity, error) {
	var s model.SavedOpportunity
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, job_id, title, company, type, created_at
		FROM saved_opportunities
		WHERE user_id = $1 AND job_id = $2
	`, userID, jobID).Scan(&s.ID, &s.UserID, &s.JobID, &s.Title, &s.Company, &s.Type, &s.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding saved opportunity: %w", err)
	}
	return &s, nil
}

// Create saves a listing for the user.
func (r *SavedOpportunityRepo) Create(ctx context.Context, s *model.SavedOpportunity) (*model.SavedOpportunity, error) {
	var created model.SavedOpportunity
	err := r.pool.QueryRow(ctx, `
		INSERT INTO saved_opportunities (user_id, job_id, title, company, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, job_id, title, company, type, created_at
	`, s.UserID, s.JobID, s.Title, s.Company, s.Type,
	).Scan(&created.ID, &created.UserID, &created.JobID, &created.Title,
		&created.Company, &created.Type, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("saving opportunity: %w", err)
	}
	return &created, nil
}

// Delete removes a saved listing. Returns false when nothing was saved
// under that job id.
func (r *SavedOpportunityRepo) Delete(ctx context.Context, userID, jobID string) (bool, error) {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM saved_opportunities WHERE user_id = $1 AND job_id = $2
	`, userID, jobID)
	if err != nil {
		return false, fmt.Errorf("deleting saved opportunity: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
