// Copyright (c) 2026 Abhishek Sirothia.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/Abhishek-Sirothia/bio-poll/cliparse"
	"github.com/Abhishek-Sirothia/bio-poll/middleware"
	"github.com/Abhishek-Sirothia/bio-poll/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /elections/{id}/results
// Returns 403 until an administrator publishes results, regardless of
// election status. The tally is not computed at all while withheld.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	election, err := getElection(h.db, electionID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !election.ResultsPublished {
		middleware.ErrorResponse(w, http.StatusForbidden, "Results have not been published")
		return
	}

	rows, total, err := ComputeTally(h.db, electionID)
	if err != nil {
		slog.Error("failed to compute tally", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute results")
		return
	}

	response := models.ResultsResponse{
		Election:   election,
		Rows:       rows,
		TotalVotes: total,
		ComputedAt: time.Now(),
	}
	if total > 0 && len(rows) > 0 {
		response.WinnerID = rows[0].CandidateID
	}

	middleware.JSONResponse(w, http.StatusOK, response)
}

// GetBallotCount handles GET /elections/{id}/ballot-count
// Turnout is visible even while results are withheld.
func (h *ResultsHandler) GetBallotCount(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	var exists bool
	err := h.db.QueryRow("SELECT EXISTS(SELECT 1 FROM election WHERE id = $1)", electionID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}

	var count int
	err = h.db.QueryRow("SELECT COUNT(*) FROM ballot WHERE election_id = $1", electionID).Scan(&count)
	if err != nil {
		slog.Error("failed to count ballots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BallotCountResponse{
		BallotCount: count,
	})
}
