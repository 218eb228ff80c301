// Copyright (c) 2026 Abhishek Sirothia.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the bio-poll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, verifier)

# Endpoints

Health:

	GET /health

Election management (admin role, bearer token):

	POST   /elections                              - Create election
	POST   /elections/{id}/status                  - Transition status
	POST   /elections/{id}/publish                 - Publish/withdraw results
	DELETE /elections/{id}                         - Delete (cascades)
	POST   /elections/{id}/candidates              - Add candidate
	DELETE /elections/{id}/candidates/{candidateID} - Delete candidate
	GET    /voters                                 - List voters

Voting (bearer token):

	POST /profile/face              - Face enrollment
	GET  /profile                   - Own profile
	POST /elections/{id}/ballots    - Cast a vote
	GET  /elections/{id}/my-ballot  - Own ballot and receipt

Public reads:

	GET /elections                   - List elections
	GET /elections/{id}              - Election and candidates
	GET /elections/{id}/results      - Tally (403 until published)
	GET /elections/{id}/ballot-count - Turnout

# Handler Initialization

The router creates handler instances with dependency injection:

	electionHandler := handlers.NewElectionHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg, verifier)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	voterHandler := handlers.NewVoterHandler(db, cfg)

Authenticated routes are wrapped in RequireSession inside WithLogging.
*/
package router
