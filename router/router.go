// Copyright (c) 2026 Abhishek Sirothia.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/Abhishek-Sirothia/bio-poll/cliparse"
	"github.com/Abhishek-Sirothia/bio-poll/faceverify"
	"github.com/Abhishek-Sirothia/bio-poll/handlers"
	"github.com/Abhishek-Sirothia/bio-poll/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, verifier faceverify.Verifier) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg, verifier)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	voterHandler := handlers.NewVoterHandler(db, cfg)

	secret := cfg.JWTSecret
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireSession(secret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election management (admin role required)
	mux.HandleFunc("POST /elections", authed(electionHandler.CreateElection))
	mux.HandleFunc("POST /elections/{id}/status", authed(electionHandler.TransitionStatus))
	mux.HandleFunc("POST /elections/{id}/publish", authed(electionHandler.PublishResults))
	mux.HandleFunc("DELETE /elections/{id}", authed(electionHandler.DeleteElection))
	mux.HandleFunc("POST /elections/{id}/candidates", authed(electionHandler.AddCandidate))
	mux.HandleFunc("DELETE /elections/{id}/candidates/{candidateID}", authed(electionHandler.DeleteCandidate))
	mux.HandleFunc("GET /voters", authed(voterHandler.ListVoters))

	// Voter operations (session required)
	mux.HandleFunc("POST /profile/face", authed(voterHandler.EnrollFace))
	mux.HandleFunc("GET /profile", authed(voterHandler.GetMe))
	mux.HandleFunc("POST /elections/{id}/ballots", authed(votingHandler.CastVote))
	mux.HandleFunc("GET /elections/{id}/my-ballot", authed(votingHandler.GetMyBallot))

	// Public reads
	mux.HandleFunc("GET /elections", middleware.WithLogging(electionHandler.ListElections))
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(electionHandler.GetElection))
	mux.HandleFunc("GET /elections/{id}/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /elections/{id}/ballot-count", middleware.WithLogging(resultsHandler.GetBallotCount))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("bio-poll API v1"))
	})

	return mux
}
