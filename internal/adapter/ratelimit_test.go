//go:build unit

package adapter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestLoginLimiter_PerClient(t *testing.T) {
	l := NewLoginLimiter(rate.Every(time.Hour), 2, time.Minute)

	assert.True(t, l.Allow("10.0.0.66"))
	assert.True(t, l.Allow("10.0.0.66"))
	assert.False(t, l.Allow("10.0.0.66"))

	assert.True(t, l.Allow("10.0.0.7"), "other clients keep their own budget")
	assert.Equal(t, 2, l.Len())
}

func TestLoginLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Unix(1700000000, 0)
	l := NewLoginLimiter(rate.Every(time.Hour), 1, time.Minute)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.66"))
	assert.False(t, l.Allow("10.0.0.66"))

	now = now.Add(30 * time.Second)
	assert.True(t, l.Allow("10.0.0.7"))
	assert.Equal(t, 2, l.Len())

	now = now.Add(2 * time.Minute)
	assert.True(t, l.Allow("10.0.0.8"))
	assert.Equal(t, 1, l.Len(), "idle clients are dropped")

	assert.True(t, l.Allow("10.0.0.66"), "an evicted client starts with a fresh budget")
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.9:51000"
	assert.Equal(t, "203.0.113.9", clientIP(r))

	r.Header.Set("X-Forwarded-For", " 198.51.100.4 , 10.0.0.1")
	assert.Equal(t, "198.51.100.4", clientIP(r))

	r = httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "pipe"
	assert.Equal(t, "pipe", clientIP(r))
}
