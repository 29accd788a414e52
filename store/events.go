package store

import (
	"context"

	"github.com/pocketbase/pocketbase/core"

	"club-portal/models"
	"club-portal/policy"
	"club-portal/security"
)

var eventOrderFields = map[string]bool{
	"date":    true,
	"title":   true,
	"status":  true,
	"created": true,
}

// ListEvents returns every event, newest event date first unless the caller
// orders otherwise. Events are public.
func (s *Store) ListEvents(ctx context.Context, ord Ordering) ([]models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailableError(err)
	}

	sort, err := ord.sortExpr(eventOrderFields, "-date")
	if err != nil {
		return nil, validationError(err)
	}

	records, err := s.app.FindRecordsByFilter(policy.CollectionEvents, allFilter, sort, 0, 0)
	if err != nil {
		return nil, storeError(err)
	}

	events := make([]models.Event, 0, len(records))
	for _, record := range records {
		events = append(events, eventFromRecord(record))
	}
	return events, nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailableError(err)
	}

	record, err := s.app.FindRecordById(policy.CollectionEvents, id)
	if err != nil {
		return nil, notFoundError(err)
	}

	event := eventFromRecord(record)
	return &event, nil
}

// CreateEvent persists a new event for an administrator caller. The status
// is stored exactly as submitted; it is never derived from the date.
func (s *Store) CreateEvent(ctx context.Context, actor *core.Record, form *models.EventForm) (*models.Event, error) {
	if !s.admin.Allowed(actor) {
		return nil, unauthorizedError()
	}
	if err := form.Validate(); err != nil {
		return nil, validationError(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, unavailableError(err)
	}

	collection, err := s.app.FindCollectionByNameOrId(policy.CollectionEvents)
	if err != nil {
		return nil, unavailableError(err)
	}

	record := core.NewRecord(collection)
	applyEventForm(record, form)

	if err := s.app.Save(record); err != nil {
		return nil, storeError(err)
	}

	event := eventFromRecord(record)
	return &event, nil
}

func (s *Store) UpdateEvent(ctx context.Context, actor *core.Record, id string, form *models.EventForm) (*models.Event, error) {
	if !s.admin.Allowed(actor) {
		return nil, unauthorizedError()
	}
	if err := form.Validate(); err != nil {
		return nil, validationError(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, unavailableError(err)
	}

	record, err := s.app.FindRecordById(policy.CollectionEvents, id)
	if err != nil {
		return nil, notFoundError(err)
	}

	applyEventForm(record, form)

	if err := s.app.Save(record); err != nil {
		return nil, storeError(err)
	}

	event := eventFromRecord(record)
	return &event, nil
}

func (s *Store) DeleteEvent(ctx context.Context, actor *core.Record, id string) error {
	if !s.admin.Allowed(actor) {
		return unauthorizedError()
	}
	if err := ctx.Err(); err != nil {
		return unavailableError(err)
	}

	record, err := s.app.FindRecordById(policy.CollectionEvents, id)
	if err != nil {
		return notFoundError(err)
	}

	if err := s.app.Delete(record); err != nil {
		return storeError(err)
	}
	return nil
}

// CreateEventWithWinners creates an event and its winners in one
// multi-statement transaction, so a failure while linking winners leaves no
// orphaned event behind.
func (s *Store) CreateEventWithWinners(ctx context.Context, actor *core.Record, eventForm *models.EventForm, winnerForms []models.WinnerForm) (*models.Event, []models.Winner, error) {
	if !s.admin.Allowed(actor) {
		return nil, nil, unauthorizedError()
	}
	if err := eventForm.Validate(); err != nil {
		return nil, nil, validationError(err)
	}
	for i := range winnerForms {
		// The relation is assigned inside the transaction; validate the
		// rest of the form before anything is written.
		pending := winnerForms[i]
		pending.EventID = "pending"
		if err := pending.Validate(); err != nil {
			return nil, nil, validationError(err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, unavailableError(err)
	}

	var event models.Event
	winners := make([]models.Winner, 0, len(winnerForms))

	txErr := s.app.RunInTransaction(func(txApp core.App) error {
		eventCollection, err := txApp.FindCollectionByNameOrId(policy.CollectionEvents)
		if err != nil {
			return err
		}

		eventRecord := core.NewRecord(eventCollection)
		applyEventForm(eventRecord, eventForm)
		if err := txApp.Save(eventRecord); err != nil {
			return err
		}
		event = eventFromRecord(eventRecord)

		winnerCollection, err := txApp.FindCollectionByNameOrId(policy.CollectionWinners)
		if err != nil {
			return err
		}

		for i := range winnerForms {
			form := winnerForms[i]
			form.EventID = eventRecord.Id

			winnerRecord := core.NewRecord(winnerCollection)
			applyWinnerForm(winnerRecord, &form)
			if err := txApp.Save(winnerRecord); err != nil {
				return err
			}
			winners = append(winners, winnerFromRecord(winnerRecord))
		}
		return nil
	})
	if txErr != nil {
		return nil, nil, storeError(txErr)
	}

	return &event, winners, nil
}

func applyEventForm(record *core.Record, form *models.EventForm) {
	record.Set("title", security.Sanitize(form.Title))
	record.Set("description", security.Sanitize(form.Description))
	record.Set("date", form.Date)
	record.Set("time", form.Time)
	record.Set("location", security.Sanitize(form.Location))
	record.Set("status", form.Status)
	record.Set("attendees", form.AttendeeCount())
	record.Set("image_url", security.SanitizeURL(form.ImageURL))
	record.Set("registration_link", security.SanitizeURL(form.RegistrationLink))
}

func eventFromRecord(record *core.Record) models.Event {
	return models.Event{
		ID:               record.Id,
		Title:            record.GetString("title"),
		Description:      record.GetString("description"),
		Date:             record.GetString("date"),
		Time:             record.GetString("time"),
		Location:         record.GetString("location"),
		Status:           record.GetString("status"),
		Attendees:        record.GetInt("attendees"),
		ImageURL:         record.GetString("image_url"),
		RegistrationLink: record.GetString("registration_link"),
		Created:          record.GetDateTime("created").Time(),
		Updated:          record.GetDateTime("updated").Time(),
	}
}
