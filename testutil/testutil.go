// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/jingle-draw/auth"
	"github.com/danielhkuo/jingle-draw/cliparse"
	"github.com/danielhkuo/jingle-draw/db"
	"github.com/danielhkuo/jingle-draw/models"
	"github.com/danielhkuo/jingle-draw/store"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. A single connection keeps the :memory: database alive for
// the life of the test.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3319,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		SessionSalt:  "test-session-salt",
	}
}

// NewTestRand returns a deterministic rand source for reproducible draws
func NewTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

// CreateTestMember inserts a member and returns it. groupID may be
// empty for a member with no group.
func CreateTestMember(t *testing.T, st *store.Store, cfg cliparse.Config, email, displayName, groupID string) models.Member {
	t.Helper()

	member := models.Member{
		ID:             uuid.NewString(),
		Email:          auth.NormalizeEmail(email),
		DisplayName:    displayName,
		Avatar:         "🎄",
		PasswordDigest: auth.PasswordDigest(auth.NormalizeEmail(email), "password", cfg.SessionSalt),
		CreatedAt:      time.Now().UTC(),
	}
	if groupID != "" {
		member.GroupID = &groupID
	}

	if err := st.PutMember(context.Background(), member); err != nil {
		t.Fatalf("Failed to create test member: %v", err)
	}
	return member
}

// CreateTestGroup inserts a group with the given join code
func CreateTestGroup(t *testing.T, st *store.Store, name, joinCode string) models.Group {
	t.Helper()

	group := models.Group{
		ID:        uuid.NewString(),
		Name:      name,
		JoinCode:  joinCode,
		CreatedAt: time.Now().UTC(),
	}
	if err := st.PutGroup(context.Background(), group); err != nil {
		t.Fatalf("Failed to create test group: %v", err)
	}
	return group
}

// CreateTestSession opens a session for a member and returns the token
func CreateTestSession(t *testing.T, st *store.Store, memberID string) string {
	t.Helper()

	token, err := auth.GenerateSessionToken()
	if err != nil {
		t.Fatalf("Failed to generate session token: %v", err)
	}
	if err := st.PutSession(context.Background(), token, memberID); err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}
	return token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
