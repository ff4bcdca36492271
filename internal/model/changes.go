package model

import "time"

// ProfileChanges is the computed change set for a partial profile update.
// A nil field means "leave the stored value alone"; a non-nil field is
// written as-is, empty values included. The reconciliation policy that
// decides which payload fields become changes lives in the service layer;
// the repository only applies whatever is set here.
type ProfileChanges struct {
	FirstName         *string
	LastName          *string
	Skills            *[]string
	PreferredJobRoles *[]string

	Age         *int
	DateOfBirth *time.Time
	Address     *string
	City        *string
	State       *string
	Country     *string
	Phone       *string
	Bio         *string
	CurrentRole *string
	Experience  *string

	LinkedinURL  *string
	GithubURL    *string
	LeetcodeURL  *string
	PortfolioURL *string
	TwitterURL   *string

	ProfilePicture *string
	ResumeURL      *string
	ResumeFileName *string
}
