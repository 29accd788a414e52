package utils

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCache_SetGet(t *testing.T) {
	cache := NewSessionCache(time.Hour)

	cache.Set("roster", `{"members":[]}`)
	got, ok := cache.Get("roster")
	assert.True(t, ok)
	assert.Equal(t, `{"members":[]}`, got)
}

func TestSessionCache_MissingKey(t *testing.T) {
	cache := NewSessionCache(time.Hour)
	_, ok := cache.Get("nope")
	assert.False(t, ok)
}

func TestSessionCache_ExpiresAfterTTL(t *testing.T) {
	cache := NewSessionCache(time.Hour)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	cache.Set("roster", "cached")

	current = current.Add(59 * time.Minute)
	_, ok := cache.Get("roster")
	assert.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = cache.Get("roster")
	assert.False(t, ok)

	// The expired entry is gone even if time moves backwards again.
	current = current.Add(-2 * time.Minute)
	_, ok = cache.Get("roster")
	assert.False(t, ok)
}

func TestSessionCache_Remove(t *testing.T) {
	cache := NewSessionCache(time.Hour)
	cache.Set("roster", "cached")
	cache.Remove("roster")
	_, ok := cache.Get("roster")
	assert.False(t, ok)
}

func TestSessionCache_DropsCorruptEntries(t *testing.T) {
	cache := NewSessionCache(time.Hour)
	cache.items["bad"] = "not base64!!!"
	_, ok := cache.Get("bad")
	assert.False(t, ok)
	_, exists := cache.items["bad"]
	assert.False(t, exists)
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(4)
	require.NoError(t, err)
	assert.Len(t, code, 8)
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]+$`), code)

	other, err := GenerateCode(4)
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}

func TestCircuitBreaker_PassesThroughSuccess(t *testing.T) {
	cb := NewCircuitBreaker("test")
	err := cb.Execute(context.Background(), func() error { return nil })
	assert.NoError(t, err)
}

func TestCircuitBreaker_ReturnsUnderlyingError(t *testing.T) {
	cb := NewCircuitBreaker("test")
	wantErr := errors.New("publish failed")
	err := cb.Execute(context.Background(), func() error { return wantErr })
	assert.Equal(t, wantErr, err)
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker("test")
	fail := func() error { return errors.New("down") }

	for i := 0; i < 5; i++ {
		_ = cb.Execute(context.Background(), fail)
	}

	err := cb.Execute(context.Background(), fail)
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestCircuitBreaker_SuccessResetsFailureStreak(t *testing.T) {
	cb := NewCircuitBreaker("test")
	fail := func() error { return errors.New("down") }
	ok := func() error { return nil }

	for i := 0; i < 4; i++ {
		_ = cb.Execute(context.Background(), fail)
	}
	require.NoError(t, cb.Execute(context.Background(), ok))

	// The streak restarted, so the next failure does not trip the breaker.
	err := cb.Execute(context.Background(), fail)
	assert.NotErrorIs(t, err, ErrCircuitOpen)
}
