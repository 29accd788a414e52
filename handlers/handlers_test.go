package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-portal/security"
	"club-portal/store"
)

func apiErrorStatus(t *testing.T, err error) int {
	t.Helper()
	var apiErr *router.ApiError
	require.ErrorAs(t, err, &apiErr)
	return apiErr.Status
}

func TestApiError_StatusCodes(t *testing.T) {
	validationErr := &store.Error{Kind: store.KindValidation, Message: "validation failed"}
	assert.Equal(t, http.StatusBadRequest, apiErrorStatus(t, apiError(validationErr)))

	authErr := &store.Error{Kind: store.KindUnauthorized, Message: "operation not permitted"}
	assert.Equal(t, http.StatusForbidden, apiErrorStatus(t, apiError(authErr)))

	rateErr := &store.Error{Kind: store.KindRateLimited, Message: "too many requests"}
	assert.Equal(t, http.StatusTooManyRequests, apiErrorStatus(t, apiError(rateErr)))

	missingErr := &store.Error{Kind: store.KindNotFound, Message: "record not found"}
	assert.Equal(t, http.StatusNotFound, apiErrorStatus(t, apiError(missingErr)))

	assert.Equal(t, http.StatusServiceUnavailable, apiErrorStatus(t, apiError(errors.New("plain"))))
}

func TestApiError_DoesNotLeakAuthorizationDetail(t *testing.T) {
	authErr := &store.Error{Kind: store.KindUnauthorized, Message: "operation not permitted", Err: errors.New("caller is not in the admin set")}
	err := apiError(authErr)

	var apiErr *router.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "Operation not permitted")
	assert.NotContains(t, apiErr.Message, "admin set")
}

func TestApiError_RateLimitedCarriesRetrySeconds(t *testing.T) {
	err := apiError(store.RateLimited(90 * time.Second))

	var apiErr *router.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	assert.Contains(t, apiErr.Message, "90 seconds")
}

func TestAuthHandler_PasswordCheck(t *testing.T) {
	h := &AuthHandler{}

	e := &core.RequestEvent{}
	e.Request = httptest.NewRequest(http.MethodPost, "/api/v1/dev/password-check",
		strings.NewReader(`{"password":"abc"}`))
	e.Request.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.Response = rec

	require.NoError(t, h.PasswordCheck(e))

	var check security.PasswordCheck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &check))
	assert.False(t, check.Valid)
	assert.Len(t, check.Errors, 4)
}

func requestEventFor(target string) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.Request = httptest.NewRequest(http.MethodGet, target, nil)
	e.Response = httptest.NewRecorder()
	return e
}

func TestOrderingFromRequest(t *testing.T) {
	assert.Equal(t, store.Ordering{}, orderingFromRequest(requestEventFor("/api/v1/events")))

	assert.Equal(t,
		store.Ordering{Field: "title"},
		orderingFromRequest(requestEventFor("/api/v1/events?sort=title")))

	assert.Equal(t,
		store.Ordering{Field: "date", Desc: true},
		orderingFromRequest(requestEventFor("/api/v1/events?sort=-date")))
}
