package models

import (
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"club-portal/security"
)

// MaxRank bounds caller-supplied winner ranks. Ranks are not checked for
// uniqueness within an event; shared ranks are allowed.
const MaxRank = 1000

type Winner struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	PlayerName  string    `json:"player_name"`
	TeamName    string    `json:"team_name,omitempty"`
	Rank        int       `json:"rank"`
	ImageURL    string    `json:"image_url,omitempty"`
	TeamMembers string    `json:"team_members,omitempty"` // newline-delimited
	Created     time.Time `json:"created"`
}

type WinnerForm struct {
	EventID     string `json:"event_id"`
	PlayerName  string `json:"player_name"`
	TeamName    string `json:"team_name"`
	Rank        string `json:"rank"`
	ImageURL    string `json:"image_url"`
	TeamMembers string `json:"team_members"`
}

func (f *WinnerForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.EventID, validation.Required),
		validation.Field(&f.PlayerName, validation.Required, validation.RuneLength(1, security.MaxTextLength)),
		validation.Field(&f.TeamName, validation.RuneLength(0, security.MaxTextLength)),
		validation.Field(&f.Rank, validation.Required, boundedIntRule(1, MaxRank)),
		validation.Field(&f.ImageURL, urlRule),
		validation.Field(&f.TeamMembers, validation.RuneLength(0, security.MaxTextLength)),
	)
}

// RankValue parses the validated rank field.
func (f *WinnerForm) RankValue() int {
	n, _ := strconv.Atoi(strings.TrimSpace(f.Rank))
	return n
}
