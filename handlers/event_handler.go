package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"club-portal/models"
	"club-portal/monitoring"
	"club-portal/store"
)

type EventHandler struct {
	app   *pocketbase.PocketBase
	store *store.Store
}

func NewEventHandler(app *pocketbase.PocketBase, st *store.Store) *EventHandler {
	return &EventHandler{app: app, store: st}
}

// List is the public event listing, newest event date first by default.
func (h *EventHandler) List(e *core.RequestEvent) error {
	events, err := h.store.ListEvents(e.Request.Context(), orderingFromRequest(e))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"events": events})
}

func (h *EventHandler) Get(e *core.RequestEvent) error {
	event, err := h.store.GetEvent(e.Request.Context(), e.Request.PathValue("id"))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, event)
}

func (h *EventHandler) Create(e *core.RequestEvent) error {
	var form models.EventForm
	if err := e.BindBody(&form); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	event, err := h.store.CreateEvent(e.Request.Context(), e.Auth, &form)
	if err != nil {
		monitoring.TrackRecordOp("events", "create", "failure")
		return apiError(err)
	}

	monitoring.TrackRecordOp("events", "create", "success")
	return e.JSON(http.StatusCreated, event)
}

func (h *EventHandler) Update(e *core.RequestEvent) error {
	var form models.EventForm
	if err := e.BindBody(&form); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	event, err := h.store.UpdateEvent(e.Request.Context(), e.Auth, e.Request.PathValue("id"), &form)
	if err != nil {
		monitoring.TrackRecordOp("events", "update", "failure")
		return apiError(err)
	}

	monitoring.TrackRecordOp("events", "update", "success")
	return e.JSON(http.StatusOK, event)
}

func (h *EventHandler) Delete(e *core.RequestEvent) error {
	if err := h.store.DeleteEvent(e.Request.Context(), e.Auth, e.Request.PathValue("id")); err != nil {
		monitoring.TrackRecordOp("events", "delete", "failure")
		return apiError(err)
	}

	monitoring.TrackRecordOp("events", "delete", "success")
	return e.JSON(http.StatusOK, map[string]any{"message": "Event deleted"})
}

// CreateWithWinners creates an event and its winners in a single
// transaction.
func (h *EventHandler) CreateWithWinners(e *core.RequestEvent) error {
	var req struct {
		Event   models.EventForm    `json:"event"`
		Winners []models.WinnerForm `json:"winners"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	event, winners, err := h.store.CreateEventWithWinners(e.Request.Context(), e.Auth, &req.Event, req.Winners)
	if err != nil {
		monitoring.TrackRecordOp("events", "create_with_winners", "failure")
		return apiError(err)
	}

	monitoring.TrackRecordOp("events", "create_with_winners", "success")
	return e.JSON(http.StatusCreated, map[string]any{
		"event":   event,
		"winners": winners,
	})
}
