package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"club-portal/security"
)

type TeamMember struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Bio         string `json:"bio"`
	ImageURL    string `json:"image_url,omitempty"`
	LinkedinURL string `json:"linkedin_url,omitempty"`
	GithubURL   string `json:"github_url,omitempty"`
	Email       string `json:"email,omitempty"`
}

type TeamMemberForm struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Bio         string `json:"bio"`
	ImageURL    string `json:"image_url"`
	LinkedinURL string `json:"linkedin_url"`
	GithubURL   string `json:"github_url"`
	Email       string `json:"email"`
}

func (f *TeamMemberForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Name, validation.Required, validation.RuneLength(1, security.MaxTextLength)),
		validation.Field(&f.Role, validation.Required, validation.RuneLength(1, security.MaxTextLength)),
		validation.Field(&f.Bio, validation.RuneLength(0, security.MaxTextLength)),
		validation.Field(&f.ImageURL, urlRule),
		validation.Field(&f.LinkedinURL, urlRule),
		validation.Field(&f.GithubURL, urlRule),
		validation.Field(&f.Email, emailRule),
	)
}

// RoleBio derives a default bio from a member's role when none was written.
func RoleBio(role string) string {
	r := strings.ToLower(role)
	switch {
	case strings.Contains(r, "president"):
		return "A strategic leader driving the core vision and initiatives of the team."
	case strings.Contains(r, "secretary"):
		return "The organizational backbone of the team, managing communications and operational workflow."
	case strings.Contains(r, "security"):
		return "Expert in security practices, safeguarding our systems and leading security-focused initiatives."
	case strings.Contains(r, "technical"):
		return "The engineering force behind the team, turning technical challenges into working solutions."
	case strings.Contains(r, "event"):
		return "Organizing and managing events, workshops and competitions."
	case strings.Contains(r, "coordinator"):
		return "Coordinating activities and supporting team communications and outreach."
	default:
		return "Contributing expertise to drive the team's initiatives forward."
	}
}

// DefaultRoster is the static in-application team, served when the
// team_members collection has no rows yet.
var DefaultRoster = []TeamMember{
	{ID: "static-1", Name: "Club President", Role: "President", Bio: RoleBio("President")},
	{ID: "static-2", Name: "Club Vice President", Role: "Vice President", Bio: RoleBio("Vice President")},
	{ID: "static-3", Name: "Club Secretary", Role: "Secretary", Bio: RoleBio("Secretary")},
	{ID: "static-4", Name: "Security Lead", Role: "Security Lead", Bio: RoleBio("Security Lead")},
	{ID: "static-5", Name: "Technical Lead", Role: "Technical Lead", Bio: RoleBio("Technical Lead")},
	{ID: "static-6", Name: "Events Lead", Role: "Event Management Lead", Bio: RoleBio("Event Management Lead")},
}
