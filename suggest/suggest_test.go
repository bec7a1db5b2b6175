// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package suggest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIdeas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v1/ideas", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ideasRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Rudolph", req.Name)

		json.NewEncoder(w).Encode(ideasResponse{Ideas: []string{"Red nose polish", "Carrot subscription box"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	ideas := c.Ideas(context.Background(), "Rudolph")
	assert.Equal(t, []string{"Red nose polish", "Carrot subscription box"}, ideas)
}

func TestClientFallbackWhenUnconfigured(t *testing.T) {
	c := NewClient("", "")
	assert.Equal(t, FallbackIdeas, c.Ideas(context.Background(), "Rudolph"))

	c = NewClient("http://localhost:1", "")
	assert.Equal(t, FallbackIdeas, c.Ideas(context.Background(), "Rudolph"))
}

func TestClientFallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	assert.Equal(t, FallbackIdeas, c.Ideas(context.Background(), "Rudolph"))
}

func TestClientFallbackOnBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	assert.Equal(t, FallbackIdeas, c.Ideas(context.Background(), "Rudolph"))
}

func TestClientFallbackOnEmptyIdeas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ideasResponse{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	assert.Equal(t, FallbackIdeas, c.Ideas(context.Background(), "Rudolph"))
}

func TestClientFallbackWhenUnreachable(t *testing.T) {
	// Closed server: connection refused must degrade, not error out
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "test-key")
	assert.Equal(t, FallbackIdeas, c.Ideas(context.Background(), "Rudolph"))
}

func TestStaticProvider(t *testing.T) {
	s := Static{List: []string{"Socks"}}
	assert.Equal(t, []string{"Socks"}, s.Ideas(context.Background(), "anyone"))

	empty := Static{}
	assert.Equal(t, FallbackIdeas, empty.Ideas(context.Background(), "anyone"))
}
