// Package auth resolves the authenticated principal from bearer tokens
// minted by the hosted auth service.
//
// Authentication is optional everywhere in this service: an absent, expired,
// or malformed token resolves to the anonymous principal rather than an
// error, and the content stores then degrade to empty collections and no-op
// writes.
package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal identifies the calling user.
type Principal struct {
	UserID string
}

// Anonymous reports whether no authenticated user is present.
func (p Principal) Anonymous() bool {
	return p.UserID == ""
}

// Verifier validates bearer tokens against the shared HMAC secret.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier creates a verifier for the given secret.
func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret, now: time.Now}
}

type accessClaims struct {
	jwt.RegisteredClaims
}

// Verify parses and validates a raw token, returning the principal it names.
func (v *Verifier) Verify(rawToken string) (Principal, error) {
	if v == nil || len(v.secret) == 0 {
		return Principal{}, fmt.Errorf("verifier is not configured")
	}

	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return v.now() }))
	if err != nil {
		return Principal{}, fmt.Errorf("parse token: %w", err)
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return Principal{}, fmt.Errorf("token has no subject")
	}
	return Principal{UserID: subject}, nil
}

// FromRequest resolves the principal carried by the request's Authorization
// header. Requests without a valid bearer token resolve to the anonymous
// principal.
func (v *Verifier) FromRequest(r *http.Request) Principal {
	header := r.Header.Get("Authorization")
	rawToken, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return Principal{}
	}
	principal, err := v.Verify(strings.TrimSpace(rawToken))
	if err != nil {
		return Principal{}
	}
	return principal
}
