// Copyright (c) 2026 Abhishek Sirothia.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/Abhishek-Sirothia/bio-poll/models"
)

// ComputeTally aggregates the raw ballot rows of an election into
// per-candidate counts and percentages. Nothing is stored: the tally is
// recomputed from scratch on every call. Candidates with no votes are
// included at 0. Percentages are count/total*100, or 0 for all rows
// when the election has no ballots.
func ComputeTally(db *sql.DB, electionID string) ([]models.TallyRow, int, error) {
	candidates, err := getCandidates(db, electionID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get candidates: %w", err)
	}

	counts, err := getBallotCounts(db, electionID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get ballot counts: %w", err)
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	rows := make([]models.TallyRow, 0, len(candidates))
	for _, c := range candidates {
		row := models.TallyRow{
			CandidateID: c.ID,
			Name:        c.Name,
			Party:       c.Party,
			Votes:       counts[c.ID],
		}
		if total > 0 {
			row.Percentage = float64(row.Votes) / float64(total) * 100
		}
		rows = append(rows, row)
	}

	// Descending by count; name then ID keep ties stable.
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Votes != b.Votes {
			return a.Votes > b.Votes
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.CandidateID < b.CandidateID
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows, total, nil
}

// getBallotCounts groups an election's ballots by candidate.
func getBallotCounts(db *sql.DB, electionID string) (map[string]int, error) {
	rows, err := db.Query(`
		SELECT candidate_id, COUNT(*)
		FROM ballot
		WHERE election_id = $1
		GROUP BY candidate_id
	`, electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var candidateID string
		var n int
		if err := rows.Scan(&candidateID, &n); err != nil {
			return nil, err
		}
		counts[candidateID] = n
	}
	return counts, rows.Err()
}
