package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a user's professional profile together with its owned
// education entries. One profile per authenticated user.
type Profile struct {
	ID     uuid.UUID `json:"id"`
	UserID string    `json:"userId"`

	// Basic details
	ProfilePicture string     `json:"profilePicture,omitempty"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Age            *int       `json:"age,omitempty"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Address        string     `json:"address,omitempty"`
	City           string     `json:"city,omitempty"`
	State          string     `json:"state,omitempty"`
	Country        string     `json:"country,omitempty"`
	Phone          string     `json:"phone,omitempty"`

	// Professional details
	Skills            []string `json:"skills"`
	PreferredJobRoles []string `json:"preferredJobRoles"`
	Bio               string   `json:"bio,omitempty"`
	CurrentRole       string   `json:"currentRole,omitempty"`
	Experience        string   `json:"experience,omitempty"`

	// Social links
	LinkedinURL  string `json:"linkedinUrl,omitempty"`
	GithubURL    string `json:"githubUrl,omitempty"`
	LeetcodeURL  string `json:"leetcodeUrl,omitempty"`
	PortfolioURL string `json:"portfolioUrl,omitempty"`
	TwitterURL   string `json:"twitterUrl,omitempty"`

	// Resume
	ResumeURL      string `json:"resumeUrl,omitempty"`
	ResumeFileName string `json:"resumeFileName,omitempty"`

	IsProfileComplete bool      `json:"isProfileComplete"`
	ProfileViews      int       `json:"profileViews"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`

	// Owned collection, ordered by start date descending
	Education []Education `json:"education"`
}

// Education is a single education entry owned by a profile. Rows are only
// ever written as part of a profile create/update, never addressed directly.
type Education struct {
	ID                  uuid.UUID  `json:"id"`
	ProfileID           uuid.UUID  `json:"-"`
	Institution         string     `json:"institution"`
	Degree              string     `json:"degree"`
	FieldOfStudy        string     `json:"fieldOfStudy"`
	StartDate           time.Time  `json:"startDate"`
	EndDate             *time.Time `json:"endDate,omitempty"`
	IsCurrentlyStudying bool       `json:"isCurrentlyStudying"`
	Grade               string     `json:"grade,omitempty"`
	Description         string     `json:"description,omitempty"`
}

// Application is a free-standing application record. It carries the job
// details the client supplied at apply time and has no foreign key into
// any listing table.
type Application struct {
	ID            uuid.UUID  `json:"id"`
	UserID        string     `json:"userId"`
	Title         string     `json:"title"`
	Company       string     `json:"company"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	Location      string     `json:"location,omitempty"`
	SalaryRange   string     `json:"salaryRange,omitempty"`
	AppliedAt     time.Time  `json:"appliedAt"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	InterviewDate *time.Time `json:"interviewDate,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// SavedOpportunity is a bookmarked external listing, keyed by the user and
// the listing's external job id.
type SavedOpportunity struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"userId"`
	JobID     string    `json:"jobId"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}
