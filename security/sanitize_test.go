package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_StripsAngleBrackets(t *testing.T) {
	assert.Equal(t, "scriptalert(1)/script", Sanitize("<script>alert(1)</script>"))
	assert.Equal(t, "hello", Sanitize("  hello  "))
	assert.Equal(t, "a b c", Sanitize("a <b> c"))
}

func TestSanitize_EmptyAndWhitespaceOnly(t *testing.T) {
	assert.Equal(t, "", Sanitize(""))
	assert.Equal(t, "", Sanitize("   \t\n  "))
	assert.Equal(t, "", Sanitize("<><><>"))
}

func TestSanitize_TruncatesByRunes(t *testing.T) {
	long := strings.Repeat("a", MaxTextLength+100)
	assert.Len(t, Sanitize(long), MaxTextLength)

	// Multi-byte input must be cut on rune boundaries, not bytes.
	wide := strings.Repeat("é", MaxTextLength+10)
	got := Sanitize(wide)
	assert.Equal(t, MaxTextLength, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "é"))
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"<b>bold</b> text  ",
		strings.Repeat("x ", 400),
		"  plain  ",
		strings.Repeat("a", 499) + " b",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}

func TestValidateURL(t *testing.T) {
	assert.True(t, ValidateURL("https://example.com/events"))
	assert.True(t, ValidateURL("http://example.com"))

	assert.False(t, ValidateURL("javascript:alert(1)"))
	assert.False(t, ValidateURL("data:text/html,hi"))
	assert.False(t, ValidateURL("ftp://example.com/file"))
	assert.False(t, ValidateURL("/relative/path"))
	assert.False(t, ValidateURL("https://"))
	assert.False(t, ValidateURL(""))
	assert.False(t, ValidateURL("not a url"))
}

func TestSanitizeURL(t *testing.T) {
	assert.Equal(t, "https://example.com/x", SanitizeURL("https://example.com/x"))
	assert.Equal(t, "", SanitizeURL("javascript:alert(1)"))
	assert.Equal(t, "", SanitizeURL(""))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("user@example.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.example.org"))

	assert.False(t, ValidateEmail(""))
	assert.False(t, ValidateEmail("no-at-sign"))
	assert.False(t, ValidateEmail("user@nodot"))
	assert.False(t, ValidateEmail("user @example.com"))
	assert.False(t, ValidateEmail("user@exam ple.com"))
	assert.False(t, ValidateEmail(strings.Repeat("a", 250)+"@x.com"))
}

func TestCheckPassword_Valid(t *testing.T) {
	check := CheckPassword("Str0ng!pass")
	assert.True(t, check.Valid)
	assert.Empty(t, check.Errors)
}

func TestCheckPassword_ReportsAllViolations(t *testing.T) {
	check := CheckPassword("abc")
	assert.False(t, check.Valid)
	// short, no upper, no digit, no symbol
	assert.Len(t, check.Errors, 4)
}

func TestCheckPassword_SingleViolation(t *testing.T) {
	check := CheckPassword("str0ng!pass")
	assert.False(t, check.Valid)
	assert.Equal(t, []string{"password must contain an uppercase letter"}, check.Errors)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
}
