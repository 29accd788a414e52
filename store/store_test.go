package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-portal/models"
	"club-portal/security"
)

// newTestStore builds a facade with no backing app. Every test below
// exercises a path that must reject the request before any store access, so
// reaching the nil app would panic and fail the test.
func newTestStore() *Store {
	return New(nil, security.NewAdminChecker([]string{"admin@club.example"}))
}

func actor(email string) *core.Record {
	collection := core.NewAuthCollection("users")
	record := core.NewRecord(collection)
	record.SetEmail(email)
	return record
}

func adminActor() *core.Record   { return actor("admin@club.example") }
func visitorActor() *core.Record { return actor("visitor@club.example") }

func validEventForm() *models.EventForm {
	return &models.EventForm{
		Title:       "Capture The Flag",
		Description: "Annual intra-club CTF",
		Date:        "2026-03-14",
		Time:        "18:30",
		Location:    "Lab 2",
		Status:      models.EventStatusUpcoming,
		Attendees:   "0",
	}
}

func TestCreateEvent_RejectsNonAdmin(t *testing.T) {
	s := newTestStore()

	_, err := s.CreateEvent(context.Background(), visitorActor(), validEventForm())
	assert.Equal(t, KindUnauthorized, KindOf(err))

	_, err = s.CreateEvent(context.Background(), nil, validEventForm())
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestCreateEvent_ValidatesBeforeStoreAccess(t *testing.T) {
	s := newTestStore()

	form := validEventForm()
	form.Attendees = "-3"
	_, err := s.CreateEvent(context.Background(), adminActor(), form)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestUpdateEvent_RejectsNonAdmin(t *testing.T) {
	s := newTestStore()
	_, err := s.UpdateEvent(context.Background(), visitorActor(), "evt1", validEventForm())
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestDeleteEvent_RejectsNonAdmin(t *testing.T) {
	s := newTestStore()
	err := s.DeleteEvent(context.Background(), nil, "evt1")
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestListEvents_RejectsUnknownOrderField(t *testing.T) {
	s := newTestStore()
	_, err := s.ListEvents(context.Background(), Ordering{Field: "attendees; DROP TABLE"})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestListEvents_CancelledContext(t *testing.T) {
	s := newTestStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListEvents(ctx, Ordering{})
	assert.Equal(t, KindUnavailable, KindOf(err))
}

func TestCreateEventWithWinners_ValidatesWinnersUpFront(t *testing.T) {
	s := newTestStore()

	winners := []models.WinnerForm{
		{PlayerName: "Alice", Rank: "1"},
		{PlayerName: "Bob", Rank: "1001"},
	}
	_, _, err := s.CreateEventWithWinners(context.Background(), adminActor(), validEventForm(), winners)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestCreateEventWithWinners_RejectsNonAdmin(t *testing.T) {
	s := newTestStore()
	_, _, err := s.CreateEventWithWinners(context.Background(), visitorActor(), validEventForm(), nil)
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestCreateWinner_RejectsNonAdminAndInvalidRank(t *testing.T) {
	s := newTestStore()

	form := &models.WinnerForm{EventID: "evt1", PlayerName: "Alice", Rank: "3"}
	_, err := s.CreateWinner(context.Background(), visitorActor(), form)
	assert.Equal(t, KindUnauthorized, KindOf(err))

	form.Rank = "0"
	_, err = s.CreateWinner(context.Background(), adminActor(), form)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestListRegistrations_AdminOnly(t *testing.T) {
	s := newTestStore()

	_, err := s.ListRegistrations(context.Background(), visitorActor(), Ordering{})
	assert.Equal(t, KindUnauthorized, KindOf(err))

	_, err = s.ListRegistrations(context.Background(), nil, Ordering{})
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestListContactMessages_AdminOnly(t *testing.T) {
	s := newTestStore()
	_, err := s.ListContactMessages(context.Background(), visitorActor(), Ordering{})
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestSubmissionStats_AdminOnly(t *testing.T) {
	s := newTestStore()
	_, err := s.SubmissionStats(context.Background(), nil)
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestCreateRegistration_ValidatesBeforeStoreAccess(t *testing.T) {
	s := newTestStore()

	form := &models.RegistrationForm{EventID: "evt1", Name: "Bob", Email: "bad"}
	_, err := s.CreateRegistration(context.Background(), form)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestCreateContactMessage_ValidatesBeforeStoreAccess(t *testing.T) {
	s := newTestStore()

	form := &models.ContactForm{Name: "", Email: "carol@example.com", Message: "hi"}
	_, err := s.CreateContactMessage(context.Background(), form)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestTeamMemberWrites_AdminOnly(t *testing.T) {
	s := newTestStore()
	form := &models.TeamMemberForm{Name: "Dana", Role: "Security Lead"}

	_, err := s.CreateTeamMember(context.Background(), visitorActor(), form)
	assert.Equal(t, KindUnauthorized, KindOf(err))

	_, err = s.UpdateTeamMember(context.Background(), nil, "tm1", form)
	assert.Equal(t, KindUnauthorized, KindOf(err))

	err = s.DeleteTeamMember(context.Background(), visitorActor(), "tm1")
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestOrdering_SortExpr(t *testing.T) {
	allowed := map[string]bool{"date": true, "title": true}

	sort, err := Ordering{}.sortExpr(allowed, "-date")
	require.NoError(t, err)
	assert.Equal(t, "-date", sort)

	sort, err = Ordering{Field: "title"}.sortExpr(allowed, "-date")
	require.NoError(t, err)
	assert.Equal(t, "title", sort)

	sort, err = Ordering{Field: "date", Desc: true}.sortExpr(allowed, "-date")
	require.NoError(t, err)
	assert.Equal(t, "-date", sort)

	_, err = Ordering{Field: "secret_field"}.sortExpr(allowed, "-date")
	assert.Error(t, err)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnauthorized, KindOf(unauthorizedError()))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(0), KindOf(nil))
}

func TestRateLimited(t *testing.T) {
	err := RateLimited(90 * time.Second)
	assert.Equal(t, KindRateLimited, KindOf(err))
	assert.Equal(t, 90*time.Second, err.RetryAfter)
}

func TestStoreError_Mapping(t *testing.T) {
	assert.Equal(t, KindValidation, storeError(validation.Errors{"title": errors.New("required")}).Kind)
	assert.Equal(t, KindNotFound, storeError(sql.ErrNoRows).Kind)
	assert.Equal(t, KindUnavailable, storeError(errors.New("disk on fire")).Kind)
}

func TestUnauthorizedError_DoesNotLeakPolicyDetail(t *testing.T) {
	err := unauthorizedError()
	assert.Equal(t, "operation not permitted", err.Error())
}
