// Copyright (c) 2026 Abhishek Sirothia.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/Abhishek-Sirothia/bio-poll/auth"
	"github.com/Abhishek-Sirothia/bio-poll/cliparse"
	"github.com/Abhishek-Sirothia/bio-poll/middleware"
	"github.com/Abhishek-Sirothia/bio-poll/models"
)

// validTransitions is the admin-driven election state machine. The
// start/end timestamps are descriptive only; nothing moves an election
// automatically.
var validTransitions = map[string]map[string]bool{
	models.StatusScheduled: {models.StatusActive: true},
	models.StatusActive:    {models.StatusPaused: true, models.StatusEnded: true},
	models.StatusPaused:    {models.StatusActive: true},
	models.StatusEnded:     {},
}

type ElectionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewElectionHandler(db *sql.DB, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{db: db, cfg: cfg}
}

// requireAdmin checks that the request's session belongs to a voter
// holding the admin role. Writes the error response itself.
func requireAdmin(db *sql.DB, w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Session required")
		return auth.Session{}, false
	}

	var isAdmin bool
	err := db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM user_role
			WHERE voter_id = $1 AND role = $2
		)
	`, session.VoterID, models.RoleAdmin).Scan(&isAdmin)

	if err != nil {
		slog.Error("failed to query roles", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return auth.Session{}, false
	}

	if !isAdmin {
		middleware.ErrorResponse(w, http.StatusForbidden, "Admin role required")
		return auth.Session{}, false
	}

	return session, true
}

// CreateElection handles POST /elections
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	session, ok := requireAdmin(h.db, w, r)
	if !ok {
		return
	}

	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	electionID := uuid.NewString()

	_, err := h.db.Exec(`
		INSERT INTO election (id, title, description, starts_at, ends_at, status, results_published, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
	`, electionID, req.Title, req.Description, req.StartsAt, req.EndsAt, models.StatusScheduled, time.Now())

	if err != nil {
		slog.Error("failed to insert election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	slog.Info("election created", "election_id", electionID, "admin", session.VoterID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateElectionResponse{
		ElectionID: electionID,
	})
}

// ListElections handles GET /elections
func (h *ElectionHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, title, description, starts_at, ends_at, status, results_published, created_at
		FROM election
		ORDER BY created_at DESC
	`)
	if err != nil {
		slog.Error("failed to query elections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	elections := []models.Election{}
	for rows.Next() {
		var e models.Election
		var description sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &description, &e.StartsAt, &e.EndsAt,
			&e.Status, &e.ResultsPublished, &e.CreatedAt); err != nil {
			slog.Error("failed to scan election", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		e.Description = description.String
		elections = append(elections, e)
	}

	middleware.JSONResponse(w, http.StatusOK, elections)
}

// GetElection handles GET /elections/{id}
// Returns the election and its candidates; never any tally data.
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
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

	candidates, err := getCandidates(h.db, electionID)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	response := models.ElectionWithCandidates{
		Election:   election,
		Candidates: candidates,
	}
	if election.EndsAt != nil {
		response.EndsIn = humanize.Time(*election.EndsAt)
	}

	middleware.JSONResponse(w, http.StatusOK, response)
}

// TransitionStatus handles POST /elections/{id}/status
func (h *ElectionHandler) TransitionStatus(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	session, ok := requireAdmin(h.db, w, r)
	if !ok {
		return
	}

	var req models.TransitionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if _, known := validTransitions[req.Status]; !known {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be one of: scheduled, active, paused, ended")
		return
	}

	var current string
	err := h.db.QueryRow("SELECT status FROM election WHERE id = $1", electionID).Scan(&current)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !validTransitions[current][req.Status] {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot transition from "+current+" to "+req.Status)
		return
	}

	_, err = h.db.Exec("UPDATE election SET status = $1 WHERE id = $2", req.Status, electionID)
	if err != nil {
		slog.Error("failed to update election status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update election")
		return
	}

	slog.Info("election transitioned", "election_id", electionID, "from", current, "to", req.Status, "admin", session.VoterID)

	middleware.JSONResponse(w, http.StatusOK, models.TransitionResponse{
		ElectionID: electionID,
		Status:     req.Status,
	})
}

// PublishResults handles POST /elections/{id}/publish
// Toggles the results gate; independent of election status.
func (h *ElectionHandler) PublishResults(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	session, ok := requireAdmin(h.db, w, r)
	if !ok {
		return
	}

	var req models.PublishResultsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := h.db.Exec("UPDATE election SET results_published = $1 WHERE id = $2", req.Published, electionID)
	if err != nil {
		slog.Error("failed to update results_published", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update election")
		return
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}

	slog.Info("results publication changed", "election_id", electionID, "published", req.Published, "admin", session.VoterID)

	middleware.JSONResponse(w, http.StatusOK, models.PublishResultsResponse{
		ElectionID: electionID,
		Published:  req.Published,
	})
}

// DeleteElection handles DELETE /elections/{id}
// Allowed from any state; candidates and ballots cascade.
func (h *ElectionHandler) DeleteElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	session, ok := requireAdmin(h.db, w, r)
	if !ok {
		return
	}

	result, err := h.db.Exec("DELETE FROM election WHERE id = $1", electionID)
	if err != nil {
		slog.Error("failed to delete election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete election")
		return
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}

	slog.Info("election deleted", "election_id", electionID, "admin", session.VoterID)

	w.WriteHeader(http.StatusNoContent)
}

// AddCandidate handles POST /elections/{id}/candidates
func (h *ElectionHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	session, ok := requireAdmin(h.db, w, r)
	if !ok {
		return
	}

	var req models.CreateCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
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

	candidateID := uuid.NewString()

	_, err = h.db.Exec(`
		INSERT INTO candidate (id, election_id, name, party, manifesto, photo_url, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7)
	`, candidateID, electionID, req.Name, req.Party, req.Manifesto, req.PhotoURL, time.Now())

	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	slog.Info("candidate added", "election_id", electionID, "candidate_id", candidateID, "admin", session.VoterID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateCandidateResponse{
		CandidateID: candidateID,
	})
}

// DeleteCandidate handles DELETE /elections/{id}/candidates/{candidateID}
// Rejected while ballots reference the candidate; ballots are immutable.
func (h *ElectionHandler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	candidateID := r.PathValue("candidateID")
	if electionID == "" || candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id and candidate_id are required")
		return
	}

	session, ok := requireAdmin(h.db, w, r)
	if !ok {
		return
	}

	var ballotCount int
	err := h.db.QueryRow("SELECT COUNT(*) FROM ballot WHERE candidate_id = $1", candidateID).Scan(&ballotCount)
	if err != nil {
		slog.Error("failed to count ballots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if ballotCount > 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Candidate has recorded ballots; delete the election instead")
		return
	}

	result, err := h.db.Exec(`
		DELETE FROM candidate WHERE id = $1 AND election_id = $2
	`, candidateID, electionID)
	if err != nil {
		slog.Error("failed to delete candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete candidate")
		return
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	slog.Info("candidate deleted", "election_id", electionID, "candidate_id", candidateID, "admin", session.VoterID)

	w.WriteHeader(http.StatusNoContent)
}

// getElection loads one election row.
func getElection(db *sql.DB, electionID string) (models.Election, error) {
	var e models.Election
	var description sql.NullString
	err := db.QueryRow(`
		SELECT id, title, description, starts_at, ends_at, status, results_published, created_at
		FROM election
		WHERE id = $1
	`, electionID).Scan(&e.ID, &e.Title, &description, &e.StartsAt, &e.EndsAt,
		&e.Status, &e.ResultsPublished, &e.CreatedAt)
	if err != nil {
		return models.Election{}, err
	}
	e.Description = description.String
	return e, nil
}

// getCandidates loads all candidates for an election, ordered by name.
func getCandidates(db *sql.DB, electionID string) ([]models.Candidate, error) {
	rows, err := db.Query(`
		SELECT id, election_id, name, party, manifesto, photo_url
		FROM candidate
		WHERE election_id = $1
		ORDER BY name, id
	`, electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Name, &c.Party, &c.Manifesto, &c.PhotoURL); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
