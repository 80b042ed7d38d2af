// Package api implements the Motion REST API using chi.
package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/komumoyu/Motion/internal/identity"
)

// ParseSubject verifies an HS256 token and returns its subject claim.
func ParseSubject(secret, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("api: parse token: %w", err)
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("api: token has no subject")
	}
	return sub, nil
}

// IssueToken signs an HS256 token for the given subject. Used by the CLI
// token command and by tests.
func IssueToken(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("api: sign token: %w", err)
	}
	return signed, nil
}

// IdentityMiddleware resolves the caller identity from the request.
//
// With a "Authorization: Bearer <jwt>" header the token subject becomes the
// principal; a malformed or mis-signed token is rejected with 401. A request
// without the header passes through anonymous, because published documents
// are readable without credentials.
//
// When insecure is true the X-User-Id header is trusted instead, which keeps
// local development and the test suite free of token plumbing.
func IdentityMiddleware(secret string, insecure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if insecure {
				if uid := r.Header.Get("X-User-Id"); uid != "" {
					r = r.WithContext(identity.WithPrincipal(r.Context(), identity.Principal{Subject: uid}))
				}
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !strings.HasPrefix(auth, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorBody("malformed authorization header"))
				return
			}
			sub, err := ParseSubject(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorBody("invalid token"))
				return
			}
			r = r.WithContext(identity.WithPrincipal(r.Context(), identity.Principal{Subject: sub}))
			next.ServeHTTP(w, r)
		})
	}
}
