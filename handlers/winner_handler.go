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

type WinnerHandler struct {
	app   *pocketbase.PocketBase
	store *store.Store
}

func NewWinnerHandler(app *pocketbase.PocketBase, st *store.Store) *WinnerHandler {
	return &WinnerHandler{app: app, store: st}
}

// List is the public hall of fame, best rank first by default.
func (h *WinnerHandler) List(e *core.RequestEvent) error {
	winners, err := h.store.ListWinners(e.Request.Context(), orderingFromRequest(e))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"winners": winners})
}

func (h *WinnerHandler) Create(e *core.RequestEvent) error {
	var form models.WinnerForm
	if err := e.BindBody(&form); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	winner, err := h.store.CreateWinner(e.Request.Context(), e.Auth, &form)
	if err != nil {
		monitoring.TrackRecordOp("winners", "create", "failure")
		return apiError(err)
	}

	monitoring.TrackRecordOp("winners", "create", "success")
	return e.JSON(http.StatusCreated, winner)
}

func (h *WinnerHandler) Update(e *core.RequestEvent) error {
	var form models.WinnerForm
	if err := e.BindBody(&form); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	winner, err := h.store.UpdateWinner(e.Request.Context(), e.Auth, e.Request.PathValue("id"), &form)
	if err != nil {
		monitoring.TrackRecordOp("winners", "update", "failure")
		return apiError(err)
	}

	monitoring.TrackRecordOp("winners", "update", "success")
	return e.JSON(http.StatusOK, winner)
}

func (h *WinnerHandler) Delete(e *core.RequestEvent) error {
	if err := h.store.DeleteWinner(e.Request.Context(), e.Auth, e.Request.PathValue("id")); err != nil {
		monitoring.TrackRecordOp("winners", "delete", "failure")
		return apiError(err)
	}

	monitoring.TrackRecordOp("winners", "delete", "success")
	return e.JSON(http.StatusOK, map[string]any{"message": "Winner deleted"})
}
