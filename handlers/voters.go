// Copyright (c) 2026 Abhishek Sirothia.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Abhishek-Sirothia/bio-poll/cliparse"
	"github.com/Abhishek-Sirothia/bio-poll/middleware"
	"github.com/Abhishek-Sirothia/bio-poll/models"
)

type VoterHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoterHandler(db *sql.DB, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{db: db, cfg: cfg}
}

// EnrollFace handles POST /profile/face
// Performs the simulated face enrollment: creates the profile row if
// needed and marks the voter as face-registered. Enrollment is a
// precondition for casting a ballot.
func (h *VoterHandler) EnrollFace(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Session required")
		return
	}

	var req models.EnrollFaceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = session.Email
	}

	// Find-or-create, then flag enrollment.
	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM profile WHERE voter_id = $1)
	`, session.VoterID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if exists {
		_, err = h.db.Exec(`
			UPDATE profile SET face_registered = TRUE, display_name = $1 WHERE voter_id = $2
		`, displayName, session.VoterID)
	} else {
		_, err = h.db.Exec(`
			INSERT INTO profile (voter_id, email, display_name, face_registered, created_at)
			VALUES ($1, $2, $3, TRUE, $4)
		`, session.VoterID, session.Email, displayName, time.Now())
	}

	if err != nil {
		slog.Error("failed to enroll face", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to enroll")
		return
	}

	slog.Info("face enrolled", "voter_id", session.VoterID)

	middleware.JSONResponse(w, http.StatusOK, models.EnrollFaceResponse{
		VoterID:        session.VoterID,
		FaceRegistered: true,
	})
}

// GetMe handles GET /profile
func (h *VoterHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Session required")
		return
	}

	var profile models.Profile
	err := h.db.QueryRow(`
		SELECT voter_id, email, display_name, face_registered, created_at
		FROM profile
		WHERE voter_id = $1
	`, session.VoterID).Scan(
		&profile.VoterID, &profile.Email, &profile.DisplayName,
		&profile.FaceRegistered, &profile.CreatedAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Profile not found; enroll first")
		return
	}
	if err != nil {
		slog.Error("failed to query profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, profile)
}

// ListVoters handles GET /voters
// Admin view of all voters and their face-registration status.
func (h *VoterHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(h.db, w, r); !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT voter_id, email, display_name, face_registered, created_at
		FROM profile
		ORDER BY created_at DESC
	`)
	if err != nil {
		slog.Error("failed to query profiles", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	voters := []models.VoterSummary{}
	for rows.Next() {
		var v models.VoterSummary
		var createdAt time.Time
		if err := rows.Scan(&v.VoterID, &v.Email, &v.DisplayName, &v.FaceRegistered, &createdAt); err != nil {
			slog.Error("failed to scan profile", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		v.EnrolledAgo = humanize.Time(createdAt)
		voters = append(voters, v)
	}

	middleware.JSONResponse(w, http.StatusOK, voters)
}
