// Copyright (c) 2026 Abhishek Sirothia.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abhishek-Sirothia/bio-poll/models"
)

func TestEnrollFace(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	cfg := getTestConfig()
	handler := NewVoterHandler(conn, cfg)

	t.Run("first enrollment creates profile", func(t *testing.T) {
		token := signTestToken(t, "fresh-voter", "fresh@example.com")

		req := jsonRequest("POST", "/profile/face", models.EnrollFaceRequest{DisplayName: "Fresh Voter"})
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		authed(cfg, handler.EnrollFace)(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var resp models.EnrollFaceResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !resp.FaceRegistered {
			t.Error("Expected face_registered true")
		}

		var registered bool
		var displayName string
		err := conn.QueryRow(`
			SELECT face_registered, display_name FROM profile WHERE voter_id = 'fresh-voter'
		`).Scan(&registered, &displayName)
		if err != nil {
			t.Fatalf("Failed to query profile: %v", err)
		}
		if !registered {
			t.Error("Expected face_registered stored as true")
		}
		if displayName != "Fresh Voter" {
			t.Errorf("Expected display name stored, got %s", displayName)
		}
	})

	t.Run("re-enrollment updates existing profile", func(t *testing.T) {
		voterID, token := createTestVoter(t, conn, "existing@example.com", false)

		req := jsonRequest("POST", "/profile/face", models.EnrollFaceRequest{})
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		authed(cfg, handler.EnrollFace)(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var registered bool
		var count int
		if err := conn.QueryRow("SELECT face_registered FROM profile WHERE voter_id = $1", voterID).Scan(&registered); err != nil {
			t.Fatalf("Failed to query profile: %v", err)
		}
		if !registered {
			t.Error("Expected face_registered flipped to true")
		}
		if err := conn.QueryRow("SELECT COUNT(*) FROM profile WHERE voter_id = $1", voterID).Scan(&count); err != nil {
			t.Fatalf("Failed to count profiles: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected a single profile row, got %d", count)
		}
	})

	t.Run("no session", func(t *testing.T) {
		req := jsonRequest("POST", "/profile/face", models.EnrollFaceRequest{})
		w := httptest.NewRecorder()

		authed(cfg, handler.EnrollFace)(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	})
}

func TestGetMe(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	cfg := getTestConfig()
	handler := NewVoterHandler(conn, cfg)

	t.Run("existing profile", func(t *testing.T) {
		voterID, token := createTestVoter(t, conn, "me@example.com", true)

		req := jsonRequest("GET", "/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		authed(cfg, handler.GetMe)(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var profile models.Profile
		if err := json.NewDecoder(w.Body).Decode(&profile); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if profile.VoterID != voterID {
			t.Errorf("Expected voter %s, got %s", voterID, profile.VoterID)
		}
		if !profile.FaceRegistered {
			t.Error("Expected face_registered true")
		}
	})

	t.Run("no profile yet", func(t *testing.T) {
		token := signTestToken(t, "nobody-voter", "nobody@example.com")

		req := jsonRequest("GET", "/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		authed(cfg, handler.GetMe)(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestListVoters(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	cfg := getTestConfig()
	handler := NewVoterHandler(conn, cfg)

	_, adminToken := createTestAdmin(t, conn)
	createTestVoter(t, conn, "one@example.com", true)
	_, voterToken := createTestVoter(t, conn, "two@example.com", false)

	t.Run("admin sees enrollment state", func(t *testing.T) {
		req := jsonRequest("GET", "/voters", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		w := httptest.NewRecorder()

		authed(cfg, handler.ListVoters)(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var voters []models.VoterSummary
		if err := json.NewDecoder(w.Body).Decode(&voters); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(voters) != 2 {
			t.Fatalf("Expected 2 voters, got %d", len(voters))
		}
		for _, v := range voters {
			if v.EnrolledAgo == "" {
				t.Errorf("Expected enrolled_ago for voter %s", v.VoterID)
			}
		}
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		req := jsonRequest("GET", "/voters", nil)
		req.Header.Set("Authorization", "Bearer "+voterToken)
		w := httptest.NewRecorder()

		authed(cfg, handler.ListVoters)(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("Expected status 403, got %d", w.Code)
		}
	})
}
