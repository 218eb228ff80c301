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

func TestGetResultsGate(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	cfg := getTestConfig()
	handler := NewResultsHandler(conn, cfg)

	tests := []struct {
		name           string
		status         string
		published      bool
		expectedStatus int
	}{
		{"withheld while active", models.StatusActive, false, http.StatusForbidden},
		{"withheld even after ending", models.StatusEnded, false, http.StatusForbidden},
		{"published while active", models.StatusActive, true, http.StatusOK},
		{"published after ending", models.StatusEnded, true, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			electionID := createTestElection(t, conn, tt.status, tt.published)
			addTestCandidate(t, conn, electionID, "Alice")

			req := jsonRequest("GET", "/elections/"+electionID+"/results", nil)
			req.SetPathValue("id", electionID)
			w := httptest.NewRecorder()

			handler.GetResults(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}

	t.Run("election not found", func(t *testing.T) {
		req := jsonRequest("GET", "/elections/missing/results", nil)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.GetResults(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestGetResultsBody(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	cfg := getTestConfig()
	handler := NewResultsHandler(conn, cfg)

	electionID := createTestElection(t, conn, models.StatusEnded, true)
	alice := addTestCandidate(t, conn, electionID, "Alice")
	bob := addTestCandidate(t, conn, electionID, "Bob")

	castBallots(t, conn, electionID, alice, 3)
	castBallots(t, conn, electionID, bob, 1)

	req := jsonRequest("GET", "/elections/"+electionID+"/results", nil)
	req.SetPathValue("id", electionID)
	w := httptest.NewRecorder()

	handler.GetResults(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var resp models.ResultsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.TotalVotes != 4 {
		t.Errorf("Expected 4 total votes, got %d", resp.TotalVotes)
	}
	if resp.WinnerID != alice {
		t.Errorf("Expected winner %s, got %s", alice, resp.WinnerID)
	}
	if len(resp.Rows) != 2 || resp.Rows[0].CandidateID != alice {
		t.Errorf("Expected Alice leading the tally, got %+v", resp.Rows)
	}
	if resp.ComputedAt.IsZero() {
		t.Error("Expected a computed_at timestamp")
	}
}

func TestGetResultsNoWinnerWithoutBallots(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	cfg := getTestConfig()
	handler := NewResultsHandler(conn, cfg)

	electionID := createTestElection(t, conn, models.StatusEnded, true)
	addTestCandidate(t, conn, electionID, "Alice")

	req := jsonRequest("GET", "/elections/"+electionID+"/results", nil)
	req.SetPathValue("id", electionID)
	w := httptest.NewRecorder()

	handler.GetResults(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var resp models.ResultsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.WinnerID != "" {
		t.Errorf("Expected no winner with zero ballots, got %s", resp.WinnerID)
	}
	if resp.TotalVotes != 0 {
		t.Errorf("Expected 0 total votes, got %d", resp.TotalVotes)
	}
}

func TestUnpublishWithholdsResultsAgain(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	cfg := getTestConfig()
	handler := NewResultsHandler(conn, cfg)

	electionID := createTestElection(t, conn, models.StatusEnded, true)
	addTestCandidate(t, conn, electionID, "Alice")

	get := func() int {
		req := jsonRequest("GET", "/elections/"+electionID+"/results", nil)
		req.SetPathValue("id", electionID)
		w := httptest.NewRecorder()
		handler.GetResults(w, req)
		return w.Code
	}

	if code := get(); code != http.StatusOK {
		t.Fatalf("Expected status 200 while published, got %d", code)
	}

	if _, err := conn.Exec("UPDATE election SET results_published = FALSE WHERE id = $1", electionID); err != nil {
		t.Fatalf("Failed to withdraw publication: %v", err)
	}

	if code := get(); code != http.StatusForbidden {
		t.Errorf("Expected status 403 after withdrawal, got %d", code)
	}
}

func TestGetBallotCount(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	cfg := getTestConfig()
	handler := NewResultsHandler(conn, cfg)

	// Turnout stays visible while results are withheld
	electionID := createTestElection(t, conn, models.StatusActive, false)
	alice := addTestCandidate(t, conn, electionID, "Alice")
	castBallots(t, conn, electionID, alice, 3)

	req := jsonRequest("GET", "/elections/"+electionID+"/ballot-count", nil)
	req.SetPathValue("id", electionID)
	w := httptest.NewRecorder()

	handler.GetBallotCount(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var resp models.BallotCountResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.BallotCount != 3 {
		t.Errorf("Expected 3 ballots, got %d", resp.BallotCount)
	}

	t.Run("election not found", func(t *testing.T) {
		req := jsonRequest("GET", "/elections/missing/ballot-count", nil)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.GetBallotCount(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}
