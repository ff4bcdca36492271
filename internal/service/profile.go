package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yourusername/careertrack-api/internal/model"
)

// pgUniqueViolation is the SQLSTATE for a unique constraint violation.
const pgUniqueViolation = "23505"

// ProfileStore is the persistence contract for profile aggregates. The
// postgres implementation lives in internal/repository; tests substitute a
// mock. Create and Update are transactional: the profile row and its
// education rows commit or roll back together.
type ProfileStore interface {
	// FindByUser returns the profile with its education collection ordered
	// by start date descending, or (nil, nil) when none exists.
	FindByUser(ctx context.Context, userID string) (*model.Profile, error)

	// Create inserts the profile and its education rows in one transaction
	// and returns the re-fetched aggregate.
	Create(ctx context.Context, p *model.Profile, education []model.Education) (*model.Profile, error)

	// Update applies the change set and, when education is non-nil, replaces
	// the whole education collection, all in one transaction. Returns
	// (nil, nil) when no profile exists for the user.
	Update(ctx context.Context, userID string, changes model.ProfileChanges, education *[]model.Education) (*model.Profile, error)

	// Delete removes the profile; education rows cascade. Returns false when
	// nothing was deleted.
	Delete(ctx context.Context, userID string) (bool, error)

	// IncrementViews bumps the view counter and returns the new value.
	IncrementViews(ctx context.Context, userID string) (int, error)
}

// ProfileInput is the profile payload as submitted by the client. Pointer
// fields distinguish a provided value from an omitted key; JSON null decodes
// to nil just like an omitted key, so both mean "not provided".
type ProfileInput struct {
	ProfilePicture    *string           `json:"profilePicture"`
	FirstName         *string           `json:"firstName"`
	LastName          *string           `json:"lastName"`
	Age               *int              `json:"age"`
	DateOfBirth       *string           `json:"dateOfBirth"`
	Address           *string           `json:"address"`
	City              *string           `json:"city"`
	State             *string           `json:"state"`
	Country           *string           `json:"country"`
	Phone             *string           `json:"phone"`
	Skills            *[]string         `json:"skills"`
	PreferredJobRoles *[]string         `json:"preferredJobRoles"`
	Bio               *string           `json:"bio"`
	CurrentRole       *string           `json:"currentRole"`
	Experience        *string           `json:"experience"`
	LinkedinURL       *string           `json:"linkedinUrl"`
	GithubURL         *string           `json:"githubUrl"`
	LeetcodeURL       *string           `json:"leetcodeUrl"`
	PortfolioURL      *string           `json:"portfolioUrl"`
	TwitterURL        *string           `json:"twitterUrl"`
	ResumeURL         *string           `json:"resumeUrl"`
	ResumeFileName    *string           `json:"resumeFileName"`
	Education         *[]EducationInput `json:"education"`
}

// EducationInput is a single submitted education entry. Entries are never
// addressed individually; the whole list replaces the stored collection.
type EducationInput struct {
	Institution         string  `json:"institution"`
	Degree              string  `json:"degree"`
	FieldOfStudy        string  `json:"fieldOfStudy"`
	StartDate           string  `json:"startDate"`
	EndDate             *string `json:"endDate"`
	IsCurrentlyStudying bool    `json:"isCurrentlyStudying"`
	Grade               *string `json:"grade"`
	Description         *string `json:"description"`
}

// ProfileService reconciles submitted profile payloads against persisted
// state. One profile per user; the education collection is owned by the
// profile and replaced wholesale on update.
type ProfileService struct {
	store ProfileStore
}

func NewProfileService(store ProfileStore) *ProfileService {
	return &ProfileService{store: store}
}

// Get fetches the caller's profile. ErrProfileNotFound is an expected
// outcome, not a failure: callers use it to route between the create and
// view flows.
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	p, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// Create builds a new profile aggregate from the payload. The store's
// unique constraint on user_id is the double-create enforcement point; a
// unique violation surfaces as ErrProfileExists.
func (s *ProfileService) Create(ctx context.Context, userID string, in ProfileInput) (*model.Profile, error) {
	firstName := strings.TrimSpace(deref(in.FirstName))
	lastName := strings.TrimSpace(deref(in.LastName))
	if firstName == "" {
		return nil, &ValidationError{Field: "firstName", Reason: "required"}
	}
	if lastName == "" {
		return nil, &ValidationError{Field: "lastName", Reason: "required"}
	}

	p := &model.Profile{
		UserID:            userID,
		ProfilePicture:    deref(in.ProfilePicture),
		FirstName:         firstName,
		LastName:          lastName,
		Address:           deref(in.Address),
		City:              deref(in.City),
		State:             deref(in.State),
		Country:           deref(in.Country),
		Phone:             deref(in.Phone),
		Skills:            derefSlice(in.Skills),
		PreferredJobRoles: derefSlice(in.PreferredJobRoles),
		Bio:               deref(in.Bio),
		CurrentRole:       deref(in.CurrentRole),
		Experience:        deref(in.Experience),
		LinkedinURL:       deref(in.LinkedinURL),
		GithubURL:         deref(in.GithubURL),
		LeetcodeURL:       deref(in.LeetcodeURL),
		PortfolioURL:      deref(in.PortfolioURL),
		TwitterURL:        deref(in.TwitterURL),
		ResumeURL:         deref(in.ResumeURL),
		ResumeFileName:    deref(in.ResumeFileName),
		// Set unconditionally on creation and never recomputed afterwards.
		IsProfileComplete: true,
	}

	// Zero age and empty birth date are treated as "not provided" on
	// creation, matching the update-side truthiness rule.
	if in.Age != nil && *in.Age != 0 {
		age := *in.Age
		p.Age = &age
	}
	if in.DateOfBirth != nil && *in.DateOfBirth != "" {
		dob, err := parseDate(*in.DateOfBirth)
		if err != nil {
			return nil, &ValidationError{Field: "dateOfBirth", Reason: "not a valid date"}
		}
		p.DateOfBirth = &dob
	}

	var education []model.Education
	if in.Education != nil {
		var err error
		education, err = parseEducation(*in.Education)
		if err != nil {
			return nil, err
		}
	}

	created, err := s.store.Create(ctx, p, education)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrProfileExists
		}
		return nil, err
	}
	return created, nil
}

// Update merges a partial payload into the existing aggregate. Not an
// upsert: a missing profile is ErrProfileNotFound.
//
// Reconciliation policy, field by field:
//   - firstName, lastName, skills, preferredJobRoles overwrite whenever the
//     key is provided, empty values included.
//   - age and dateOfBirth overwrite only for a provided non-zero / non-empty
//     value, so age:0 or a null date leaves the stored value alone.
//   - the remaining optional string fields overwrite on provision, empty
//     string included, which is how a client clears a city or bio.
//   - asset fields (profilePicture, resumeUrl, resumeFileName) are only ever
//     set by a prior upload and are never cleared implicitly.
//   - an education key, even an empty list, replaces the whole collection;
//     an absent key leaves it untouched.
func (s *ProfileService) Update(ctx context.Context, userID string, in ProfileInput) (*model.Profile, error) {
	existing, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProfileNotFound
	}

	changes, err := buildChanges(in)
	if err != nil {
		return nil, err
	}

	var education *[]model.Education
	if in.Education != nil {
		parsed, err := parseEducation(*in.Education)
		if err != nil {
			return nil, err
		}
		education = &parsed
	}

	updated, err := s.store.Update(ctx, userID, changes, education)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Deleted between the existence check and the write.
		return nil, ErrProfileNotFound
	}
	return updated, nil
}

// Delete removes the aggregate; education rows go with it via the cascading
// foreign key.
func (s *ProfileService) Delete(ctx context.Context, userID string) error {
	deleted, err := s.store.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProfileNotFound
	}
	return nil
}

// IncrementViews records an external "profile viewed" signal.
func (s *ProfileService) IncrementViews(ctx context.Context, userID string) (int, error) {
	views, err := s.store.IncrementViews(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrProfileNotFound
		}
		return 0, err
	}
	return views, nil
}

// buildChanges translates the payload into a change set per the
// reconciliation policy documented on Update.
func buildChanges(in ProfileInput) (model.ProfileChanges, error) {
	ch := model.ProfileChanges{
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Skills:            in.Skills,
		PreferredJobRoles: in.PreferredJobRoles,
		Address:           in.Address,
		City:              in.City,
		State:             in.State,
		Country:           in.Country,
		Phone:             in.Phone,
		Bio:               in.Bio,
		CurrentRole:       in.CurrentRole,
		Experience:        in.Experience,
		LinkedinURL:       in.LinkedinURL,
		GithubURL:         in.GithubURL,
		LeetcodeURL:       in.LeetcodeURL,
		PortfolioURL:      in.PortfolioURL,
		TwitterURL:        in.TwitterURL,
		ProfilePicture:    in.ProfilePicture,
		ResumeURL:         in.ResumeURL,
		ResumeFileName:    in.ResumeFileName,
	}

	if in.Age != nil && *in.Age != 0 {
		age := *in.Age
		ch.Age = &age
	}
	if in.DateOfBirth != nil && *in.DateOfBirth != "" {
		dob, err := parseDate(*in.DateOfBirth)
		if err != nil {
			return model.ProfileChanges{}, &ValidationError{Field: "dateOfBirth", Reason: "not a valid date"}
		}
		ch.DateOfBirth = &dob
	}

	return ch, nil
}

func parseEducation(inputs []EducationInput) ([]model.Education, error) {
	education := make([]model.Education, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in.Institution) == "" {
			return nil, &ValidationError{Field: "education.institution", Reason: "required"}
		}
		if strings.TrimSpace(in.Degree) == "" {
			return nil, &ValidationError{Field: "education.degree", Reason: "required"}
		}
		if strings.TrimSpace(in.FieldOfStudy) == "" {
			return nil, &ValidationError{Field: "education.fieldOfStudy", Reason: "required"}
		}

		start, err := parseDate(in.StartDate)
		if err != nil {
			return nil, &ValidationError{Field: "education.startDate", Reason: "not a valid date"}
		}

		entry := model.Education{
			Institution:         in.Institution,
			Degree:              in.Degree,
			FieldOfStudy:        in.FieldOfStudy,
			StartDate:           start,
			IsCurrentlyStudying: in.IsCurrentlyStudying,
			Grade:               deref(in.Grade),
			Description:         deref(in.Description),
		}

		if in.EndDate != nil && *in.EndDate != "" {
			end, err := parseDate(*in.EndDate)
			if err != nil {
				return nil, &ValidationError{Field: "education.endDate", Reason: "not a valid date"}
			}
			entry.EndDate = &end
		}

		education = append(education, entry)
	}
	return education, nil
}

// parseDate accepts the two formats clients actually send: full RFC 3339
// timestamps and bare YYYY-MM-DD dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefSlice(s *[]string) []string {
	if s == nil {
		return []string{}
	}
	return *s
}
