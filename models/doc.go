// Copyright (c) 2026 Abhishek Sirothia.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateElectionRequest: title, description, starts_at, ends_at
  - TransitionRequest: status
  - PublishResultsRequest: published
  - CreateCandidateRequest: name, party, manifesto, photo_url
  - EnrollFaceRequest: display_name
  - CastVoteRequest: candidate_id

# Response Types

Types for JSON responses:

  - CreateElectionResponse: election_id
  - TransitionResponse: election_id, status
  - PublishResultsResponse: election_id, published
  - CreateCandidateResponse: candidate_id
  - EnrollFaceResponse: voter_id, face_registered
  - CastVoteResponse: ballot_id, receipt, cast_at
  - ResultsResponse: election, rows, total_votes, winner_id
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Election: election metadata and lifecycle state
  - Candidate: a choice within one election
  - Ballot: one voter's recorded choice (immutable once written)
  - Profile: voter identity and face-enrollment state
  - TallyRow: derived per-candidate count and percentage

# Constants

Status values:

	StatusScheduled = "scheduled"
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusEnded     = "ended"

Roles:

	RoleUser  = "user"
	RoleAdmin = "admin"
*/
package models
