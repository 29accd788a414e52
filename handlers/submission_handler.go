package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"club-portal/models"
	"club-portal/monitoring"
	"club-portal/notify"
	"club-portal/store"
)

// SubmissionHandler covers the public submission forms (registration,
// contact) and the administrator's read-only inbox over them.
type SubmissionHandler struct {
	app      *pocketbase.PocketBase
	store    *store.Store
	notifier *notify.Notifier
}

func NewSubmissionHandler(app *pocketbase.PocketBase, st *store.Store, notifier *notify.Notifier) *SubmissionHandler {
	return &SubmissionHandler{
		app:      app,
		store:    st,
		notifier: notifier,
	}
}

// Register accepts a public event registration. No authentication is
// required; the stored record is immutable and hidden from public reads.
func (h *SubmissionHandler) Register(e *core.RequestEvent) error {
	var form models.RegistrationForm
	if err := e.BindBody(&form); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	registration, err := h.store.CreateRegistration(e.Request.Context(), &form)
	if err != nil {
		return apiError(err)
	}

	monitoring.TrackSubmission("registration")
	h.notifier.SubmissionReceived(e.Request.Context(), "registration", registration.ID)

	return e.JSON(http.StatusCreated, map[string]any{"message": "Registration received"})
}

// Contact accepts a public contact-form submission and returns the assigned
// reference code.
func (h *SubmissionHandler) Contact(e *core.RequestEvent) error {
	var form models.ContactForm
	if err := e.BindBody(&form); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	message, err := h.store.CreateContactMessage(e.Request.Context(), &form)
	if err != nil {
		return apiError(err)
	}

	monitoring.TrackSubmission("contact")
	h.notifier.SubmissionReceived(e.Request.Context(), "contact", message.ID)

	return e.JSON(http.StatusCreated, map[string]any{
		"message":   "Message sent",
		"reference": message.Reference,
	})
}

// ListRegistrations is the admin inbox over registrations.
func (h *SubmissionHandler) ListRegistrations(e *core.RequestEvent) error {
	registrations, err := h.store.ListRegistrations(e.Request.Context(), e.Auth, orderingFromRequest(e))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"registrations": registrations})
}

// ListMessages is the admin inbox over contact messages.
func (h *SubmissionHandler) ListMessages(e *core.RequestEvent) error {
	messages, err := h.store.ListContactMessages(e.Request.Context(), e.Auth, orderingFromRequest(e))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"messages": messages})
}

// Stats serves the admin dashboard aggregate.
func (h *SubmissionHandler) Stats(e *core.RequestEvent) error {
	stats, err := h.store.SubmissionStats(e.Request.Context(), e.Auth)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, stats)
}
