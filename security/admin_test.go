package security

import (
	"testing"

	"github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/assert"
)

func authRecord(email string) *core.Record {
	collection := core.NewAuthCollection("users")
	record := core.NewRecord(collection)
	record.SetEmail(email)
	return record
}

func TestAdminChecker_Allowed(t *testing.T) {
	checker := NewAdminChecker([]string{"admin@club.example", " Second@Club.Example "})

	assert.True(t, checker.Allowed(authRecord("admin@club.example")))
	assert.True(t, checker.Allowed(authRecord("ADMIN@club.example")))
	assert.True(t, checker.Allowed(authRecord("second@club.example")))

	assert.False(t, checker.Allowed(authRecord("other@club.example")))
	assert.False(t, checker.Allowed(authRecord("admin@club.example.evil.com")))
	assert.False(t, checker.Allowed(authRecord("")))
	assert.False(t, checker.Allowed(nil))
}

func TestAdminChecker_NoAdminsConfigured(t *testing.T) {
	checker := NewAdminChecker(nil)
	assert.False(t, checker.Allowed(authRecord("admin@club.example")))
}

func TestAdminChecker_Emails(t *testing.T) {
	checker := NewAdminChecker([]string{"A@x.com", "", "b@x.com "})
	assert.ElementsMatch(t, []string{"a@x.com", "b@x.com"}, checker.Emails())
}
