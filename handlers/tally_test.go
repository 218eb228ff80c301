// Copyright (c) 2026 Abhishek Sirothia.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Abhishek-Sirothia/bio-poll/models"
)

// castBallots inserts n ballots for a candidate, each from a fresh voter.
func castBallots(t *testing.T, conn *sql.DB, electionID, candidateID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		voterID, _ := createTestVoter(t, conn, fmt.Sprintf("%s-%d@example.com", candidateID[:8], i), true)
		_, err := conn.Exec(`
			INSERT INTO ballot (id, election_id, candidate_id, voter_id, receipt, verified, cast_at)
			VALUES ($1, $2, $3, $4, $5, TRUE, $6)
		`, uuid.NewString(), electionID, candidateID, voterID, "VR-"+uuid.NewString(), time.Now())
		if err != nil {
			t.Fatalf("Failed to insert ballot: %v", err)
		}
	}
}

func TestComputeTally(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	electionID := createTestElection(t, conn, models.StatusEnded, true)
	alice := addTestCandidate(t, conn, electionID, "Alice")
	bob := addTestCandidate(t, conn, electionID, "Bob")
	carol := addTestCandidate(t, conn, electionID, "Carol")

	// 10 ballots split 5/3/2
	castBallots(t, conn, electionID, alice, 5)
	castBallots(t, conn, electionID, bob, 3)
	castBallots(t, conn, electionID, carol, 2)

	rows, total, err := ComputeTally(conn, electionID)
	if err != nil {
		t.Fatalf("ComputeTally failed: %v", err)
	}

	if total != 10 {
		t.Errorf("Expected 10 total votes, got %d", total)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 tally rows, got %d", len(rows))
	}

	expected := []struct {
		candidateID string
		votes       int
		percentage  float64
		rank        int
	}{
		{alice, 5, 50.0, 1},
		{bob, 3, 30.0, 2},
		{carol, 2, 20.0, 3},
	}

	sum := 0.0
	for i, want := range expected {
		got := rows[i]
		if got.CandidateID != want.candidateID {
			t.Errorf("Row %d: expected candidate %s, got %s", i, want.candidateID, got.CandidateID)
		}
		if got.Votes != want.votes {
			t.Errorf("Row %d: expected %d votes, got %d", i, want.votes, got.Votes)
		}
		if math.Abs(got.Percentage-want.percentage) > 0.001 {
			t.Errorf("Row %d: expected %.1f%%, got %.3f%%", i, want.percentage, got.Percentage)
		}
		if got.Rank != want.rank {
			t.Errorf("Row %d: expected rank %d, got %d", i, want.rank, got.Rank)
		}
		sum += got.Percentage
	}

	if math.Abs(sum-100.0) > 0.001 {
		t.Errorf("Percentages must sum to 100, got %.3f", sum)
	}
}

func TestComputeTallyNoBallots(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	electionID := createTestElection(t, conn, models.StatusActive, false)
	addTestCandidate(t, conn, electionID, "Alice")
	addTestCandidate(t, conn, electionID, "Bob")

	rows, total, err := ComputeTally(conn, electionID)
	if err != nil {
		t.Fatalf("ComputeTally failed: %v", err)
	}

	if total != 0 {
		t.Errorf("Expected 0 total votes, got %d", total)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected a row per candidate, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Votes != 0 {
			t.Errorf("Candidate %s: expected 0 votes, got %d", row.Name, row.Votes)
		}
		if row.Percentage != 0 {
			t.Errorf("Candidate %s: expected 0%% with no ballots, got %.3f", row.Name, row.Percentage)
		}
	}
}

func TestComputeTallyTieOrder(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	electionID := createTestElection(t, conn, models.StatusEnded, true)
	zed := addTestCandidate(t, conn, electionID, "Zed")
	amy := addTestCandidate(t, conn, electionID, "Amy")

	castBallots(t, conn, electionID, zed, 2)
	castBallots(t, conn, electionID, amy, 2)

	rows, _, err := ComputeTally(conn, electionID)
	if err != nil {
		t.Fatalf("ComputeTally failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	// Ties break alphabetically so repeated reads agree
	if rows[0].Name != "Amy" || rows[1].Name != "Zed" {
		t.Errorf("Expected tie broken by name, got %s then %s", rows[0].Name, rows[1].Name)
	}
	if rows[0].Rank != 1 || rows[1].Rank != 2 {
		t.Errorf("Expected ranks 1 and 2, got %d and %d", rows[0].Rank, rows[1].Rank)
	}
}
