// Copyright (c) 2026 Abhishek Sirothia.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrNoSubject    = errors.New("session token has no subject")
)

// Session identifies an authenticated voter. Tokens are issued by the
// external auth service; this server only verifies them.
type Session struct {
	VoterID string
	Email   string
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ParseSessionToken verifies an HS256 access token and extracts the
// voter identity from it. The subject claim carries the voter ID.
func ParseSessionToken(tokenString, secret string) (Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Session{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || claims.Subject == "" {
		return Session{}, ErrNoSubject
	}

	return Session{VoterID: claims.Subject, Email: claims.Email}, nil
}

// SignSessionToken mints an HS256 access token for a voter. The auth
// service does this in production; the server uses it in tests and
// local development.
func SignSessionToken(voterID, email, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   voterID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateReceipt creates a confirmation token for a cast ballot,
// derived from the cast timestamp plus a random suffix. Unique with
// high probability; the database enforces actual uniqueness. This is a
// user-facing confirmation string, not a proof of inclusion.
func GenerateReceipt(castAt time.Time) (string, error) {
	suffix, err := GenerateID(4)
	if err != nil {
		return "", fmt.Errorf("failed to generate receipt suffix: %w", err)
	}
	return fmt.Sprintf("VR-%s-%s", castAt.UTC().Format("20060102T150405"), suffix), nil
}
