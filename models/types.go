// Copyright (c) 2026 Abhishek Sirothia.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Election status constants
const (
	StatusScheduled = "scheduled"
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusEnded     = "ended"
)

// Role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Request types

type CreateElectionRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

type TransitionRequest struct {
	Status string `json:"status"`
}

type PublishResultsRequest struct {
	Published bool `json:"published"`
}

type CreateCandidateRequest struct {
	Name      string `json:"name"`
	Party     string `json:"party"`
	Manifesto string `json:"manifesto"`
	PhotoURL  string `json:"photo_url"`
}

type EnrollFaceRequest struct {
	DisplayName string `json:"display_name"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidate_id"`
}

// Response types

type CreateElectionResponse struct {
	ElectionID string `json:"election_id"`
}

type TransitionResponse struct {
	ElectionID string `json:"election_id"`
	Status     string `json:"status"`
}

type PublishResultsResponse struct {
	ElectionID string `json:"election_id"`
	Published  bool   `json:"published"`
}

type CreateCandidateResponse struct {
	CandidateID string `json:"candidate_id"`
}

type EnrollFaceResponse struct {
	VoterID        string `json:"voter_id"`
	FaceRegistered bool   `json:"face_registered"`
}

type CastVoteResponse struct {
	BallotID string    `json:"ballot_id"`
	Receipt  string    `json:"receipt"`
	CastAt   time.Time `json:"cast_at"`
}

type BallotCountResponse struct {
	BallotCount int `json:"ballot_count"`
}

// Domain types

type Election struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	StartsAt         *time.Time `json:"starts_at,omitempty"`
	EndsAt           *time.Time `json:"ends_at,omitempty"`
	Status           string     `json:"status"`
	ResultsPublished bool       `json:"results_published"`
	CreatedAt        time.Time  `json:"created_at"`
}

type Candidate struct {
	ID         string  `json:"id"`
	ElectionID string  `json:"election_id"`
	Name       string  `json:"name"`
	Party      *string `json:"party,omitempty"`
	Manifesto  *string `json:"manifesto,omitempty"`
	PhotoURL   *string `json:"photo_url,omitempty"`
}

type ElectionWithCandidates struct {
	Election   Election    `json:"election"`
	Candidates []Candidate `json:"candidates"`
	EndsIn     string      `json:"ends_in,omitempty"`
}

type Ballot struct {
	ID          string    `json:"id"`
	ElectionID  string    `json:"election_id"`
	CandidateID string    `json:"candidate_id"`
	VoterID     string    `json:"-"` // Never expose in JSON
	Receipt     string    `json:"receipt"`
	Verified    bool      `json:"verified"`
	CastAt      time.Time `json:"cast_at"`
}

type Profile struct {
	VoterID        string    `json:"voter_id"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"display_name"`
	FaceRegistered bool      `json:"face_registered"`
	CreatedAt      time.Time `json:"created_at"`
}

// VoterSummary is the admin view of a voter's enrollment state.
type VoterSummary struct {
	VoterID        string `json:"voter_id"`
	Email          string `json:"email"`
	DisplayName    string `json:"display_name"`
	FaceRegistered bool   `json:"face_registered"`
	EnrolledAgo    string `json:"enrolled_ago"`
}

// Tally types

type TallyRow struct {
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	Party       *string `json:"party,omitempty"`
	Votes       int     `json:"votes"`
	Percentage  float64 `json:"percentage"`
	Rank        int     `json:"rank"` // 1-indexed ranking
}

type ResultsResponse struct {
	Election   Election   `json:"election"`
	Rows       []TallyRow `json:"rows"`
	TotalVotes int        `json:"total_votes"`
	ComputedAt time.Time  `json:"computed_at"`
	WinnerID   string     `json:"winner_id,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
