package security

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// MaxTextLength is the upper bound applied to every sanitized free-text field.
const MaxTextLength = 500

// MaxEmailLength mirrors the RFC 5321 address limit.
const MaxEmailLength = 254

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Sanitize strips angle brackets, trims surrounding whitespace and caps the
// result at MaxTextLength runes. It is pure, total and idempotent.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}

	cleaned := strings.NewReplacer("<", "", ">", "").Replace(text)
	cleaned = strings.TrimSpace(cleaned)

	if runes := []rune(cleaned); len(runes) > MaxTextLength {
		cleaned = string(runes[:MaxTextLength])
	}

	// Truncation may expose trailing whitespace again.
	return strings.TrimSpace(cleaned)
}

// ValidateURL accepts only absolute http/https URLs. Anything else, including
// javascript:, data: and relative paths, is rejected.
func ValidateURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// SanitizeURL returns a normalized form of the URL, or "" when it fails
// ValidateURL.
func SanitizeURL(raw string) string {
	if !ValidateURL(raw) {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.String()
}

// ValidateEmail performs a structural check: non-empty local and domain
// parts around a single "@", a dotted domain and a bounded total length.
// It is intentionally permissive on RFC edge cases.
func ValidateEmail(email string) bool {
	if len(email) > MaxEmailLength {
		return false
	}
	return emailPattern.MatchString(email)
}

// PasswordCheck reports every rule a candidate password violates rather than
// stopping at the first.
type PasswordCheck struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// CheckPassword enforces a minimum length of 8 and the presence of upper,
// lower, digit and symbol character classes.
func CheckPassword(password string) PasswordCheck {
	var errs []string

	if len(password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	if !hasUpper {
		errs = append(errs, "password must contain an uppercase letter")
	}
	if !hasLower {
		errs = append(errs, "password must contain a lowercase letter")
	}
	if !hasDigit {
		errs = append(errs, "password must contain a number")
	}
	if !hasSymbol {
		errs = append(errs, "password must contain a special character")
	}

	return PasswordCheck{Valid: len(errs) == 0, Errors: errs}
}

// NormalizeEmail lowercases and trims an email for use as a lookup or
// rate-limit key. It performs no validation.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
