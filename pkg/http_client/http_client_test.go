//go:build unit

package http_client

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHTTPClient_Defaults(t *testing.T) {
	c := CreateHTTPClient(Options{})
	assert.Equal(t, 10*time.Second, c.Timeout)
	_, ok := c.Transport.(*http.Transport)
	assert.True(t, ok)

	c = CreateHTTPClient(Options{Timeout: time.Second})
	assert.Equal(t, time.Second, c.Timeout)
}

func TestCreateHTTPClient_UserAgent(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.UserAgent())
	}))
	defer srv.Close()

	c := CreateHTTPClient(Options{UserAgent: "plant-pal/test"})

	resp, err := c.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "custom")
	resp, err = c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, []string{"plant-pal/test", "custom"}, got)
}
