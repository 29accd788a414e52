package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"club-portal/models"
	"club-portal/monitoring"
	"club-portal/store"
	"club-portal/utils"
)

const rosterCacheKey = "team:roster"

// TeamHandler serves the team roster. The roster changes rarely, so the
// public response is memoized in the short-lived cache and invalidated on
// every admin write.
type TeamHandler struct {
	app   *pocketbase.PocketBase
	store *store.Store
	cache *utils.SessionCache
}

func NewTeamHandler(app *pocketbase.PocketBase, st *store.Store, cache *utils.SessionCache) *TeamHandler {
	return &TeamHandler{app: app, store: st, cache: cache}
}

func (h *TeamHandler) List(e *core.RequestEvent) error {
	if cached, ok := h.cache.Get(rosterCacheKey); ok {
		e.Response.Header().Set("Content-Type", "application/json")
		e.Response.WriteHeader(http.StatusOK)
		_, err := e.Response.Write([]byte(cached))
		return err
	}

	members, err := h.store.ListTeam(e.Request.Context())
	if err != nil {
		return apiError(err)
	}

	body, err := json.Marshal(map[string]any{"members": members})
	if err != nil {
		return apiError(err)
	}
	h.cache.Set(rosterCacheKey, string(body))

	e.Response.Header().Set("Content-Type", "application/json")
	e.Response.WriteHeader(http.StatusOK)
	_, err = e.Response.Write(body)
	return err
}

func (h *TeamHandler) Create(e *core.RequestEvent) error {
	var form models.TeamMemberForm
	if err := e.BindBody(&form); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	member, err := h.store.CreateTeamMember(e.Request.Context(), e.Auth, &form)
	if err != nil {
		monitoring.TrackRecordOp("team_members", "create", "failure")
		return apiError(err)
	}

	h.cache.Remove(rosterCacheKey)
	monitoring.TrackRecordOp("team_members", "create", "success")
	return e.JSON(http.StatusCreated, member)
}

func (h *TeamHandler) Update(e *core.RequestEvent) error {
	var form models.TeamMemberForm
	if err := e.BindBody(&form); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	member, err := h.store.UpdateTeamMember(e.Request.Context(), e.Auth, e.Request.PathValue("id"), &form)
	if err != nil {
		monitoring.TrackRecordOp("team_members", "update", "failure")
		return apiError(err)
	}

	h.cache.Remove(rosterCacheKey)
	monitoring.TrackRecordOp("team_members", "update", "success")
	return e.JSON(http.StatusOK, member)
}

func (h *TeamHandler) Delete(e *core.RequestEvent) error {
	if err := h.store.DeleteTeamMember(e.Request.Context(), e.Auth, e.Request.PathValue("id")); err != nil {
		monitoring.TrackRecordOp("team_members", "delete", "failure")
		return apiError(err)
	}

	h.cache.Remove(rosterCacheKey)
	monitoring.TrackRecordOp("team_members", "delete", "success")
	return e.JSON(http.StatusOK, map[string]any{"message": "Team member removed"})
}
