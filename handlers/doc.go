// Copyright (c) 2026 Abhishek Sirothia.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the bio-poll API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - ElectionHandler: Election and candidate lifecycle (admin)
  - VotingHandler: Ballot casting with identity re-verification
  - ResultsHandler: Tally computation behind the publication gate
  - VoterHandler: Face enrollment and the admin voter listing

Handlers are created via constructor functions that accept *sql.DB and
Config; the voting handler also takes a faceverify.Verifier:

	votingHandler := handlers.NewVotingHandler(db, cfg, verifier)

# Election Lifecycle

Elections move between four states, admin-triggered only:

	scheduled → active
	active    → paused | ended
	paused    → active

Votes are accepted only while active. Deletion is allowed from any
state and cascades to candidates and ballots.

# Cast Flow

A cast runs its preconditions in order (enrolled face, active election,
candidate belongs to election, no prior ballot), re-verifies the
voter's identity through a capture session that is released on every
exit path, then INSERTs exactly once. The UNIQUE (election_id,
voter_id) constraint is the sole duplicate enforcement; a violation is
returned as 409 and never retried.

# Tally

The tally is derived, never stored:

	rows, total, err := handlers.ComputeTally(db, electionID)

Counts group raw ballot rows by candidate; percentage is
count/total*100 with 0 for an empty election. Results return 403 until
the administrator publishes them, regardless of election status.
*/
package handlers
