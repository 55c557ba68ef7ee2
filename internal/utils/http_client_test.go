package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient()

	require.NotNil(t, client)
	require.NotNil(t, client.Client)
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient()
	client2 := NewHTTPClient()

	assert.NotSame(t, client1.Client, client2.Client)
}

func TestHTTPClient_SendsUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	resp, err := NewHTTPClient().R().Get(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, UserAgent, got)
}

func TestHTTPClient_DoesNotFollowRedirects(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))
	defer srv.Close()

	_, err := NewHTTPClient().R().Get(srv.URL)
	require.Error(t, err)
	assert.Equal(t, 1, hits)
}
