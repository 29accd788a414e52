package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"club-portal/store"
)

// apiError translates a facade error into an HTTP response. Authorization
// and store failures stay generic; only validation errors carry detail back
// to the caller.
func apiError(err error) error {
	switch store.KindOf(err) {
	case store.KindValidation:
		return apis.NewBadRequestError("Validation failed", err)
	case store.KindUnauthorized:
		return apis.NewForbiddenError("Operation not permitted", nil)
	case store.KindRateLimited:
		var se *store.Error
		if errors.As(err, &se) && se.RetryAfter > 0 {
			seconds := int(math.Ceil(se.RetryAfter.Seconds()))
			return apis.NewApiError(http.StatusTooManyRequests,
				fmt.Sprintf("Too many attempts. Please try again in %d seconds.", seconds), nil)
		}
		return apis.NewApiError(http.StatusTooManyRequests, "Too many requests", nil)
	case store.KindNotFound:
		return apis.NewNotFoundError("Record not found", nil)
	default:
		return apis.NewApiError(http.StatusServiceUnavailable, "Operation failed, please try again", nil)
	}
}

// orderingFromRequest reads an optional "sort" query parameter; a leading
// "-" selects descending order.
func orderingFromRequest(e *core.RequestEvent) store.Ordering {
	raw := e.Request.URL.Query().Get("sort")
	if raw == "" {
		return store.Ordering{}
	}
	if strings.HasPrefix(raw, "-") {
		return store.Ordering{Field: raw[1:], Desc: true}
	}
	return store.Ordering{Field: raw}
}
