// Copyright (c) 2026 Abhishek Sirothia.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - profile: Voter identity and face-enrollment flag
  - user_role: Voter-to-role mapping (user, admin)
  - election: Election metadata and lifecycle state
  - candidate: Candidates per election
  - ballot: One ballot per voter per election

# Relationships

	election 1──* candidate
	election 1──* ballot
	candidate 1──* ballot

Deleting an election cascades to its candidates and ballots. The
candidate reference on ballot does NOT cascade, so a candidate with
recorded ballots cannot be deleted on its own.

# Constraints

  - ballot UNIQUE (election_id, voter_id): one vote per voter per election
  - ballot.receipt UNIQUE: receipts are unique across the whole store
  - user_role UNIQUE (voter_id, role)
  - election.status CHECK: scheduled, active, paused, ended

The ballot uniqueness constraint is the serialization point for
concurrent duplicate casts; the application never retries on it.
*/
package db
