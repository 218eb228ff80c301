// Copyright (c) 2026 Abhishek Sirothia.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session verification and token generation utilities.

# Session Tokens

Voters authenticate against an external auth service which issues HS256
JWTs. This package verifies them and extracts the voter identity:

	session, err := auth.ParseSessionToken(tokenString, secret)
	// session.VoterID, session.Email

The subject claim is the voter ID. SignSessionToken mints tokens with
the same shape for tests and local development.

# Receipts

Ballot receipts combine the cast timestamp with a 4-byte random suffix:

	receipt, err := auth.GenerateReceipt(time.Now())
	// "VR-20260830T141502-9f3a2b1c"

The receipt is a user-facing confirmation token only. The ballot table's
UNIQUE constraint is what guarantees receipts never collide.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
