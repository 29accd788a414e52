package models

import (
	"errors"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"club-portal/security"
)

// Event statuses are caller-chosen and never derived from the event date.
const (
	EventStatusUpcoming = "upcoming"
	EventStatusActive   = "active"
	EventStatusPast     = "past"
)

type Event struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Date             string    `json:"date"` // YYYY-MM-DD
	Time             string    `json:"time"` // HH:MM
	Location         string    `json:"location"`
	Status           string    `json:"status"`
	Attendees        int       `json:"attendees"`
	ImageURL         string    `json:"image_url,omitempty"`
	RegistrationLink string    `json:"registration_link,omitempty"`
	Created          time.Time `json:"created"`
	Updated          time.Time `json:"updated"`
}

// EventForm carries untrusted caller input for event creation and update.
// Numeric fields arrive as strings and are validated locally before any
// store call is made.
type EventForm struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	Location         string `json:"location"`
	Status           string `json:"status"`
	Attendees        string `json:"attendees"`
	ImageURL         string `json:"image_url"`
	RegistrationLink string `json:"registration_link"`
}

func (f *EventForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Title, validation.Required, validation.RuneLength(1, security.MaxTextLength)),
		validation.Field(&f.Description, validation.Required, validation.RuneLength(1, security.MaxTextLength)),
		validation.Field(&f.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&f.Time, validation.Required, validation.Date("15:04")),
		validation.Field(&f.Location, validation.Required, validation.RuneLength(1, security.MaxTextLength)),
		validation.Field(&f.Status, validation.Required, validation.In(EventStatusUpcoming, EventStatusActive, EventStatusPast)),
		validation.Field(&f.Attendees, validation.Required, boundedIntRule(0, -1)),
		validation.Field(&f.ImageURL, urlRule),
		validation.Field(&f.RegistrationLink, urlRule),
	)
}

// AttendeeCount parses the validated attendees field.
func (f *EventForm) AttendeeCount() int {
	n, _ := strconv.Atoi(strings.TrimSpace(f.Attendees))
	return n
}

// urlRule accepts empty values (optional fields) and otherwise requires an
// absolute http/https URL.
var urlRule = validation.By(func(value interface{}) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	if !security.ValidateURL(raw) {
		return errors.New("must be an absolute http or https URL")
	}
	return nil
})

// boundedIntRule validates a string field as a whole number within
// [min, max]. A negative max means unbounded above. Empty values are left to
// the Required rule.
func boundedIntRule(min, max int) validation.Rule {
	return validation.By(func(value interface{}) error {
		raw, _ := value.(string)
		if raw == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return errors.New("must be a whole number")
		}
		if n < min {
			return errors.New("must be at least " + strconv.Itoa(min))
		}
		if max >= 0 && n > max {
			return errors.New("must be at most " + strconv.Itoa(max))
		}
		return nil
	})
}
