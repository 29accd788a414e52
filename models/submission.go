package models

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"club-portal/security"
)

// Registration is immutable once created and readable only by
// administrators.
type Registration struct {
	ID       string    `json:"id"`
	EventID  string    `json:"event_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	TeamName string    `json:"team_name,omitempty"`
	Created  time.Time `json:"created"`
}

type RegistrationForm struct {
	EventID  string `json:"event_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	TeamName string `json:"team_name"`
}

func (f *RegistrationForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.EventID, validation.Required),
		validation.Field(&f.Name, validation.Required, validation.RuneLength(1, security.MaxTextLength)),
		validation.Field(&f.Email, validation.Required, emailRule),
		validation.Field(&f.TeamName, validation.RuneLength(0, security.MaxTextLength)),
	)
}

// ContactMessage shares the Registration invariants: insert-only from the
// public side, admin-only read.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Reference string    `json:"reference,omitempty"`
	Created   time.Time `json:"created"`
}

type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (f *ContactForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Name, validation.Required, validation.RuneLength(1, security.MaxTextLength)),
		validation.Field(&f.Email, validation.Required, emailRule),
		validation.Field(&f.Message, validation.Required, validation.RuneLength(1, security.MaxTextLength)),
	)
}

var emailRule = validation.By(func(value interface{}) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	if !security.ValidateEmail(raw) {
		return errors.New("must be a valid email address")
	}
	return nil
})
