// Copyright (c) 2026 Abhishek Sirothia.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the bio-poll API server.

bio-poll is an online-voting backend: voters enroll a face template,
cast one verified ballot per election, and read published tallies;
administrators drive the election lifecycle and the results gate.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 4217 -d "postgres://..." -jwt-secret "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): Database connection string
  - JWT_SECRET (-jwt-secret): Secret the auth service signs tokens with

Optional settings:

  - PORT (-p): Server port (default: 4217)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - FACE_VERIFY_DELAY_MS (-face-delay-ms): Simulated verification delay

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (elections, voting, results, voters)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Sessions, CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Session token verification and receipt generation
  - faceverify: Simulated identity re-check behind a Verifier interface
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
