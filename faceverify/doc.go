// Copyright (c) 2026 Abhishek Sirothia.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package faceverify defines the identity re-check that runs before a
ballot is accepted.

# Contract

A Verifier compares a live capture against the voter's enrolled face
template and reports a confidence score. Casts proceed only when the
result clears MatchThreshold; everything else fails closed.

	session, err := verifier.Begin(ctx, voterID)
	if err != nil {
		return err
	}
	defer session.Close()

	result, err := session.Verify(ctx)
	if err != nil || !result.Accepted() {
		// reject the cast
	}

The capture session wraps the media resource and MUST be closed on
every exit path - success, failure, and cancellation. Close is
idempotent so a deferred call is always safe.

# Simulated Verifier

The shipped implementation performs no real matching: it waits a
configured delay and reports a full-confidence match. A production
deployment replaces it with an actual comparison against the stored
template behind the same interface.

	verifier := faceverify.NewSimulated(cfg.FaceVerifyDelay)

Simulated.OpenSessions exposes the count of unreleased sessions so
tests can assert the release contract.
*/
package faceverify
