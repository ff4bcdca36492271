package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourusername/careertrack-api/internal/model"
)

// ProfileRepo persists profile aggregates. The profile row and its
// education rows are one consistency boundary: every write that touches
// both runs in a single transaction.
type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

const profileColumns = `id, user_id, profile_picture, first_name, last_name, age, date_of_birth,
	       address, city, state, country, phone, skills, preferred_job_roles,
	       bio, current_position, experience, linkedin_url, github_url, leetcode_url,
	       portfolio_url, twitter_url, resume_url, resume_file_name,
	       is_profile_complete, profile_views, created_at, updated_at`

func scanProfile(row pgx.Row) (*model.Profile, error) {
	var p model.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.ProfilePicture, &p.FirstName, &p.LastName,
		&p.Age, &p.DateOfBirth, &p.Address, &p.City, &p.State, &p.Country,
		&p.Phone, &p.Skills, &p.PreferredJobRoles, &p.Bio, &p.CurrentRole,
		&p.Experience, &p.LinkedinURL, &p.GithubURL, &p.LeetcodeURL,
		&p.PortfolioURL, &p.TwitterURL, &p.ResumeURL, &p.ResumeFileName,
		&p.IsProfileComplete, &p.ProfileViews, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByUser returns the profile with its education entries ordered by
// start date descending, or (nil, nil) when the user has no profile.
func (r *ProfileRepo) FindByUser(ctx context.Context, userID string) (*model.Profile, error) {
	p, err := scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding profile: %w", err)
	}

	education, err := r.listEducation(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Education = education
	return p, nil
}

func (r *ProfileRepo) listEducation(ctx context.Context, profileID uuid.UUID) ([]model.Education, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, profile_id, institution, degree, field_of_study, start_date,
		       end_date, is_currently_studying, grade, description
		FROM education
		WHERE profile_id = $1
		ORDER BY start_date DESC
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("listing education: %w", err)
	}
	defer rows.Close()

	education := []model.Education{}
	for rows.Next() {
		var e model.Education
		err := rows.Scan(
			&e.ID, &e.ProfileID, &e.Institution, &e.Degree, &e.FieldOfStudy,
			&e.StartDate, &e.EndDate, &e.IsCurrentlyStudying, &e.Grade, &e.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning education row: %w", err)
		}
		education = append(education, e)
	}
	return education, rows.Err()
}

// Create inserts the profile row and its education rows in one transaction,
// then re-fetches the aggregate post-commit so generated ids and ordering
// come back from the database. A unique violation on user_id propagates
// wrapped for the service layer to classify.
func (r *ProfileRepo) Create(ctx context.Context, p *model.Profile, education []model.Education) (*model.Profile, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var profileID string
	err = tx.QueryRow(ctx, `
		INSERT INTO profiles (user_id, profile_picture, first_name, last_name, age,
		                      date_of_birth, address, city, state, country, phone,
		                      skills, preferred_job_roles, bio, current_position, experience,
		                      linkedin_url, github_url, leetcode_url, portfolio_url,
		                      twitter_url, resume_url, resume_file_name, is_profile_complete)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24)
		RETURNING id
	`, p.UserID, p.ProfilePicture, p.FirstName, p.LastName, p.Age,
		p.DateOfBirth, p.Address, p.City, p.State, p.Country, p.Phone,
		p.Skills, p.PreferredJobRoles, p.Bio, p.CurrentRole, p.Experience,
		p.LinkedinURL, p.GithubURL, p.LeetcodeURL, p.PortfolioURL,
		p.TwitterURL, p.ResumeURL, p.ResumeFileName, p.IsProfileComplete,
	).Scan(&profileID)
	if err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}

	if err := insertEducation(ctx, tx, profileID, education); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return r.FindByUser(ctx, p.UserID)
}

// Update applies the change set to the profile row and, when education is
// non-nil, replaces the whole education collection, all inside one
// transaction so readers never observe new root fields with stale entries.
// Returns (nil, nil) when no profile exists for the user.
func (r *ProfileRepo) Update(ctx context.Context, userID string, changes model.ProfileChanges, education *[]model.Education) (*model.Profile, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	set := []string{"updated_at = now()"}
	args := []any{userID}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if changes.FirstName != nil {
		add("first_name", *changes.FirstName)
	}
	if changes.LastName != nil {
		add("last_name", *changes.LastName)
	}
	if changes.Skills != nil {
		add("skills", *changes.Skills)
	}
	if changes.PreferredJobRoles != nil {
		add("preferred_job_roles", *changes.PreferredJobRoles)
	}
	if changes.Age != nil {
		add("age", *changes.Age)
	}
	if changes.DateOfBirth != nil {
		add("date_of_birth", *changes.DateOfBirth)
	}
	if changes.Address != nil {
		add("address", *changes.Address)
	}
	if changes.City != nil {
		add("city", *changes.City)
	}
	if changes.State != nil {
		add("state", *changes.State)
	}
	if changes.Country != nil {
		add("country", *changes.Country)
	}
	if changes.Phone != nil {
		add("phone", *changes.Phone)
	}
	if changes.Bio != nil {
		add("bio", *changes.Bio)
	}
	if changes.CurrentRole != nil {
		add("current_position", *changes.CurrentRole)
	}
	if changes.Experience != nil {
		add("experience", *changes.Experience)
	}
	if changes.LinkedinURL != nil {
		add("linkedin_url", *changes.LinkedinURL)
	}
	if changes.GithubURL != nil {
		add("github_url", *changes.GithubURL)
	}
	if changes.LeetcodeURL != nil {
		add("leetcode_url", *changes.LeetcodeURL)
	}
	if changes.PortfolioURL != nil {
		add("portfolio_url", *changes.PortfolioURL)
	}
	if changes.TwitterURL != nil {
		add("twitter_url", *changes.TwitterURL)
	}
	if changes.ProfilePicture != nil {
		add("profile_picture", *changes.ProfilePicture)
	}
	if changes.ResumeURL != nil {
		add("resume_url", *changes.ResumeURL)
	}
	if changes.ResumeFileName != nil {
		add("resume_file_name", *changes.ResumeFileName)
	}

	query := "UPDATE profiles SET " + strings.Join(set, ", ") + " WHERE user_id = $1 RETURNING id"

	var profileID string
	err = tx.QueryRow(ctx, query, args...).Scan(&profileID)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	if education != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM education WHERE profile_id = $1`, profileID); err != nil {
			return nil, fmt.Errorf("clearing education: %w", err)
		}
		if err := insertEducation(ctx, tx, profileID, *education); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return r.FindByUser(ctx, userID)
}

// Delete removes the profile; education rows cascade via the foreign key.
// Returns false when the user had no profile.
func (r *ProfileRepo) Delete(ctx context.Context, userID string) (bool, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return false, fmt.Errorf("deleting profile: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// IncrementViews bumps the view counter and returns the new value. The
// wrapped pgx.ErrNoRows lets the caller distinguish a missing profile.
func (r *ProfileRepo) IncrementViews(ctx context.Context, userID string) (int, error) {
	var views int
	err := r.pool.QueryRow(ctx, `
		UPDATE profiles SET profile_views = profile_views + 1
		WHERE user_id = $1
		RETURNING profile_views
	`, userID).Scan(&views)
	if err != nil {
		return 0, fmt.Errorf("incrementing profile views: %w", err)
	}
	return views, nil
}

func insertEducation(ctx context.Context, tx pgx.Tx, profileID string, education []model.Education) error {
	for _, e := range education {
		_, err := tx.Exec(ctx, `
			INSERT INTO education (profile_id, institution, degree, field_of_study,
			                       start_date, end_date, is_currently_studying, grade, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, profileID, e.Institution, e.Degree, e.FieldOfStudy,
			e.StartDate, e.EndDate, e.IsCurrentlyStudying, e.Grade, e.Description)
		if err != nil {
			return fmt.Errorf("inserting education row: %w", err)
		}
	}
	return nil
}
