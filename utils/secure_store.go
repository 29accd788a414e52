package utils

import (
	"encoding/base64"
	"encoding/json"
	"sync"
	"time"
)

// SessionCache is a short-lived cache for non-sensitive values. Entries are
// stored base64-encoded with a timestamp and discarded lazily on read once
// expired. The encoding is reversible, not encryption: this cache is not a
// security boundary and must never hold secrets.
type SessionCache struct {
	mu    sync.Mutex
	items map[string]string
	ttl   time.Duration

	now func() time.Time
}

type cacheEnvelope struct {
	Data      string `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

func NewSessionCache(ttl time.Duration) *SessionCache {
	return &SessionCache{
		items: make(map[string]string),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *SessionCache) Set(key, value string) {
	encoded, err := json.Marshal(cacheEnvelope{
		Data:      value,
		Timestamp: c.now().UnixMilli(),
	})
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = base64.StdEncoding.EncodeToString(encoded)
}

// Get returns the cached value, or ("", false) when the key is unknown,
// expired or undecodable. Expired and corrupt entries are removed.
func (c *SessionCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	encoded, ok := c.items[key]
	if !ok {
		return "", false
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		delete(c.items, key)
		return "", false
	}

	var envelope cacheEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		delete(c.items, key)
		return "", false
	}

	if c.now().UnixMilli()-envelope.Timestamp > c.ttl.Milliseconds() {
		delete(c.items, key)
		return "", false
	}

	return envelope.Data, true
}

func (c *SessionCache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}
