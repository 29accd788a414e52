package store

import (
	"context"
	"strconv"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"club-portal/models"
	"club-portal/policy"
	"club-portal/security"
	"club-portal/utils"
)

var submissionOrderFields = map[string]bool{
	"created": true,
	"email":   true,
}

// CreateRegistration stores a public event registration. No authentication
// is required; the record is immutable once created and no public read
// operation exists.
func (s *Store) CreateRegistration(ctx context.Context, form *models.RegistrationForm) (*models.Registration, error) {
	if err := form.Validate(); err != nil {
		return nil, validationError(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, unavailableError(err)
	}

	collection, err := s.app.FindCollectionByNameOrId(policy.CollectionRegistrations)
	if err != nil {
		return nil, unavailableError(err)
	}

	record := core.NewRecord(collection)
	record.Set("event_id", form.EventID)
	record.Set("name", security.Sanitize(form.Name))
	record.Set("email", security.NormalizeEmail(form.Email))
	record.Set("team_name", security.Sanitize(form.TeamName))

	if err := s.app.Save(record); err != nil {
		return nil, storeError(err)
	}

	registration := registrationFromRecord(record)
	return &registration, nil
}

// ListRegistrations is the administrator's inbox view. Non-administrators
// receive an authorization error, never rows.
func (s *Store) ListRegistrations(ctx context.Context, actor *core.Record, ord Ordering) ([]models.Registration, error) {
	if !s.admin.Allowed(actor) {
		return nil, unauthorizedError()
	}
	if err := ctx.Err(); err != nil {
		return nil, unavailableError(err)
	}

	sort, err := ord.sortExpr(submissionOrderFields, "-created")
	if err != nil {
		return nil, validationError(err)
	}

	records, err := s.app.FindRecordsByFilter(policy.CollectionRegistrations, allFilter, sort, 0, 0)
	if err != nil {
		return nil, storeError(err)
	}

	registrations := make([]models.Registration, 0, len(records))
	for _, record := range records {
		registrations = append(registrations, registrationFromRecord(record))
	}
	return registrations, nil
}

// CreateContactMessage stores a public contact-form submission and assigns a
// short reference code the sender can quote later.
func (s *Store) CreateContactMessage(ctx context.Context, form *models.ContactForm) (*models.ContactMessage, error) {
	if err := form.Validate(); err != nil {
		return nil, validationError(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, unavailableError(err)
	}

	collection, err := s.app.FindCollectionByNameOrId(policy.CollectionContact)
	if err != nil {
		return nil, unavailableError(err)
	}

	reference, err := utils.GenerateCode(4)
	if err != nil {
		return nil, unavailableError(err)
	}

	record := core.NewRecord(collection)
	record.Set("name", security.Sanitize(form.Name))
	record.Set("email", security.NormalizeEmail(form.Email))
	record.Set("message", security.Sanitize(form.Message))
	record.Set("reference", reference)

	if err := s.app.Save(record); err != nil {
		return nil, storeError(err)
	}

	message := contactMessageFromRecord(record)
	return &message, nil
}

func (s *Store) ListContactMessages(ctx context.Context, actor *core.Record, ord Ordering) ([]models.ContactMessage, error) {
	if !s.admin.Allowed(actor) {
		return nil, unauthorizedError()
	}
	if err := ctx.Err(); err != nil {
		return nil, unavailableError(err)
	}

	sort, err := ord.sortExpr(submissionOrderFields, "-created")
	if err != nil {
		return nil, validationError(err)
	}

	records, err := s.app.FindRecordsByFilter(policy.CollectionContact, allFilter, sort, 0, 0)
	if err != nil {
		return nil, storeError(err)
	}

	messages := make([]models.ContactMessage, 0, len(records))
	for _, record := range records {
		messages = append(messages, contactMessageFromRecord(record))
	}
	return messages, nil
}

// EventRegistrationCount is one row of the admin dashboard aggregate.
type EventRegistrationCount struct {
	EventID       string `json:"event_id"`
	Title         string `json:"title"`
	Registrations int    `json:"registrations"`
}

// SubmissionStats aggregates registrations per event plus submission totals
// for the admin dashboard.
func (s *Store) SubmissionStats(ctx context.Context, actor *core.Record) (map[string]any, error) {
	if !s.admin.Allowed(actor) {
		return nil, unauthorizedError()
	}
	if err := ctx.Err(); err != nil {
		return nil, unavailableError(err)
	}

	var rows []dbx.NullStringMap
	err := s.app.DB().
		NewQuery(`
			SELECT e.id AS event_id, e.title AS title, COUNT(r.id) AS registrations
			FROM events e
			LEFT JOIN registrations r ON r.event_id = e.id
			GROUP BY e.id
			ORDER BY e.date DESC`).
		All(&rows)
	if err != nil {
		return nil, unavailableError(err)
	}

	perEvent := make([]EventRegistrationCount, 0, len(rows))
	totalRegistrations := 0
	for _, row := range rows {
		count, _ := strconv.Atoi(row["registrations"].String)
		totalRegistrations += count
		perEvent = append(perEvent, EventRegistrationCount{
			EventID:       row["event_id"].String,
			Title:         row["title"].String,
			Registrations: count,
		})
	}

	totalMessages, err := s.app.CountRecords(policy.CollectionContact)
	if err != nil {
		return nil, unavailableError(err)
	}

	return map[string]any{
		"events":              perEvent,
		"total_registrations": totalRegistrations,
		"total_messages":      totalMessages,
	}, nil
}

func registrationFromRecord(record *core.Record) models.Registration {
	return models.Registration{
		ID:       record.Id,
		EventID:  record.GetString("event_id"),
		Name:     record.GetString("name"),
		Email:    record.GetString("email"),
		TeamName: record.GetString("team_name"),
		Created:  record.GetDateTime("created").Time(),
	}
}

func contactMessageFromRecord(record *core.Record) models.ContactMessage {
	return models.ContactMessage{
		ID:        record.Id,
		Name:      record.GetString("name"),
		Email:     record.GetString("email"),
		Message:   record.GetString("message"),
		Reference: record.GetString("reference"),
		Created:   record.GetDateTime("created").Time(),
	}
}
