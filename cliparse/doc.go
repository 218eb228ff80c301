/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4217)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - JWTSecret: Secret the external auth service signs tokens with (required)
  - FaceVerifyDelay: Simulated face verification delay (default: 3s)

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	-jwt-secret    Session token secret
	-face-delay-ms Face verification delay in milliseconds

# Environment Variables

Flags fall back to environment variables:

	PORT                 → -p
	DATABASE_URL         → -d
	DATABASE_TYPE        → -t
	JWT_SECRET           → -jwt-secret
	FACE_VERIFY_DELAY_MS → -face-delay-ms

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - JWT_SECRET must be provided
  - DATABASE_TYPE must be sqlite or postgres when set
*/
package cliparse
