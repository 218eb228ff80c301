// Copyright (c) 2026 Abhishek Sirothia.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Abhishek-Sirothia/bio-poll/auth"
	"github.com/Abhishek-Sirothia/bio-poll/cliparse"
	"github.com/Abhishek-Sirothia/bio-poll/faceverify"
	"github.com/Abhishek-Sirothia/bio-poll/middleware"
	"github.com/Abhishek-Sirothia/bio-poll/models"
)

type VotingHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	verifier faceverify.Verifier
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config, verifier faceverify.Verifier) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg, verifier: verifier}
}

// isUniqueViolation reports whether err is a unique-constraint failure.
// Covers both drivers: pq exposes code 23505, the sqlite driver only a
// message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// CastVote handles POST /elections/{id}/ballots
//
// Preconditions run in order: enrolled face, active election, candidate
// belongs to the election, no prior ballot. The identity re-check then
// holds a capture session which is released on every exit path. The
// final INSERT relies on the UNIQUE (election_id, voter_id) constraint
// as the only duplicate enforcement; a violation is surfaced as a
// conflict, never retried. A concurrent duplicate leaves no trace.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Session required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	// Voter must have completed face enrollment before casting.
	var faceRegistered bool
	err := h.db.QueryRow(`
		SELECT face_registered FROM profile WHERE voter_id = $1
	`, session.VoterID).Scan(&faceRegistered)

	if err == sql.ErrNoRows || (err == nil && !faceRegistered) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Face enrollment required before voting")
		return
	}
	if err != nil {
		slog.Error("failed to query profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Election must exist and be accepting votes.
	var status string
	err = h.db.QueryRow("SELECT status FROM election WHERE id = $1", electionID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusActive {
		middleware.ErrorResponse(w, http.StatusConflict, "Election is not open for voting")
		return
	}

	// Candidate must belong to this election.
	var candidateExists bool
	err = h.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM candidate
			WHERE id = $1 AND election_id = $2
		)
	`, req.CandidateID, electionID).Scan(&candidateExists)

	if err != nil {
		slog.Error("failed to query candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !candidateExists {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Candidate does not belong to this election")
		return
	}

	// Courtesy pre-check; the INSERT's unique constraint is the real
	// enforcement under concurrency.
	var alreadyVoted bool
	err = h.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM ballot
			WHERE election_id = $1 AND voter_id = $2
		)
	`, electionID, session.VoterID).Scan(&alreadyVoted)

	if err != nil {
		slog.Error("failed to query ballots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if alreadyVoted {
		middleware.ErrorResponse(w, http.StatusConflict, "A ballot has already been cast for this election")
		return
	}

	// Identity re-verification against the enrolled face template.
	capture, err := h.verifier.Begin(r.Context(), session.VoterID)
	if err != nil {
		slog.Warn("failed to begin face verification", "error", err, "voter", session.VoterID)
		middleware.ErrorResponse(w, http.StatusForbidden, "Identity verification unavailable")
		return
	}
	defer capture.Close()

	result, err := capture.Verify(r.Context())
	if err != nil || !result.Accepted() {
		slog.Warn("face verification rejected", "error", err, "voter", session.VoterID)
		middleware.ErrorResponse(w, http.StatusForbidden, "Identity verification failed")
		return
	}

	castAt := time.Now()
	receipt, err := auth.GenerateReceipt(castAt)
	if err != nil {
		slog.Error("failed to generate receipt", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	ballotID := uuid.NewString()

	// Single attempt. A unique violation here means a duplicate cast
	// raced us in, not a transient fault.
	_, err = h.db.Exec(`
		INSERT INTO ballot (id, election_id, candidate_id, voter_id, receipt, verified, cast_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6)
	`, ballotID, electionID, req.CandidateID, session.VoterID, receipt, castAt)

	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "A ballot has already been cast for this election")
			return
		}
		slog.Error("failed to insert ballot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	slog.Info("ballot cast", "election_id", electionID, "ballot_id", ballotID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		BallotID: ballotID,
		Receipt:  receipt,
		CastAt:   castAt,
	})
}

// GetMyBallot handles GET /elections/{id}/my-ballot
// Lets a voter re-read their own receipt after casting.
func (h *VotingHandler) GetMyBallot(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Session required")
		return
	}

	var ballot models.Ballot
	err := h.db.QueryRow(`
		SELECT id, election_id, candidate_id, voter_id, receipt, verified, cast_at
		FROM ballot
		WHERE election_id = $1 AND voter_id = $2
	`, electionID, session.VoterID).Scan(
		&ballot.ID, &ballot.ElectionID, &ballot.CandidateID,
		&ballot.VoterID, &ballot.Receipt, &ballot.Verified, &ballot.CastAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "No ballot cast for this election")
		return
	}
	if err != nil {
		slog.Error("failed to query ballot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ballot)
}
