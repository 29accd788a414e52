package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"club-portal/monitoring"
	"club-portal/security"
	"club-portal/store"
)

// authCollection is the auth collection administrators sign in against.
const authCollection = "users"

type AuthHandler struct {
	app     *pocketbase.PocketBase
	limiter security.Limiter
	admin   *security.AdminChecker
}

func NewAuthHandler(app *pocketbase.PocketBase, limiter security.Limiter, admin *security.AdminChecker) *AuthHandler {
	return &AuthHandler{
		app:     app,
		limiter: limiter,
		admin:   admin,
	}
}

// Login authenticates by email and password. The rate limiter is consulted
// first: while a key is limited the credential check is never issued.
func (h *AuthHandler) Login(e *core.RequestEvent) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	email := security.NormalizeEmail(security.Sanitize(req.Email))
	if !security.ValidateEmail(email) || req.Password == "" {
		monitoring.TrackLoginAttempt("invalid")
		return apis.NewBadRequestError("Please provide a valid email and password", nil)
	}

	ctx := e.Request.Context()

	if h.limiter.IsLimited(ctx, email) {
		monitoring.TrackRateLimited("login")
		monitoring.TrackLoginAttempt("rate_limited")
		return apiError(store.RateLimited(h.limiter.RemainingTime(ctx, email)))
	}

	record, err := h.app.FindAuthRecordByEmail(authCollection, email)
	if err != nil || !record.ValidatePassword(req.Password) {
		monitoring.TrackLoginAttempt("failure")
		// Same message for unknown email and wrong password.
		return apis.NewBadRequestError("Invalid email or password", nil)
	}

	token, err := record.NewAuthToken()
	if err != nil {
		monitoring.TrackLoginAttempt("failure")
		return apis.NewApiError(http.StatusServiceUnavailable, "Login failed, please try again", nil)
	}

	monitoring.TrackLoginAttempt("success")

	return e.JSON(http.StatusOK, map[string]any{
		"token": token,
		"user":  h.identity(record),
	})
}

// PasswordCheck reports every password rule a candidate violates. Registered
// in development only, for operators provisioning administrator accounts.
func (h *AuthHandler) PasswordCheck(e *core.RequestEvent) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	return e.JSON(http.StatusOK, security.CheckPassword(req.Password))
}

// Logout acknowledges a token discard. Tokens are stateless; the client
// forgets the token and the session ends.
func (h *AuthHandler) Logout(e *core.RequestEvent) error {
	return e.JSON(http.StatusOK, map[string]any{"message": "Logged out"})
}

// Session reports the caller's current identity. The admin flag is a UX
// hint only; enforcement happens in the store rules and the facade.
func (h *AuthHandler) Session(e *core.RequestEvent) error {
	if e.Auth == nil {
		return e.JSON(http.StatusOK, map[string]any{"authenticated": false})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          h.identity(e.Auth),
	})
}

func (h *AuthHandler) identity(record *core.Record) map[string]any {
	return map[string]any{
		"id":      record.Id,
		"email":   record.Email(),
		"created": record.GetDateTime("created").Time(),
		"admin":   h.admin.Allowed(record),
	}
}
