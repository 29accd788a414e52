package security

import (
	"github.com/pocketbase/pocketbase/core"
)

// AdminChecker decides whether an authenticated record belongs to one of the
// configured administrator identities. It is the sole authorization predicate
// for moderated collections and always fails closed.
type AdminChecker struct {
	emails map[string]struct{}
}

// NewAdminChecker builds the checker from the configured administrator email
// list. Emails are compared after normalization (trim + lowercase).
func NewAdminChecker(adminEmails []string) *AdminChecker {
	emails := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		if normalized := NormalizeEmail(email); normalized != "" {
			emails[normalized] = struct{}{}
		}
	}
	return &AdminChecker{emails: emails}
}

// Allowed reports whether the record is an administrator. A nil record, an
// empty email or any mismatch yields false, never an error.
func (c *AdminChecker) Allowed(record *core.Record) bool {
	if record == nil {
		return false
	}
	email := NormalizeEmail(record.Email())
	if email == "" {
		return false
	}
	_, ok := c.emails[email]
	return ok
}

// Emails returns the normalized administrator emails, ordered arbitrarily.
// Used to compile store-side access rules.
func (c *AdminChecker) Emails() []string {
	emails := make([]string, 0, len(c.emails))
	for email := range c.emails {
		emails = append(emails, email)
	}
	return emails
}
