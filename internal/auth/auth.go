// Package auth signs and verifies access tokens and derives what gets
// stored for passwords and refresh tokens. Nothing here touches storage.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Issuer is stamped into every access token and required on the way back in.
const Issuer = "appointment-scheduler"

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

var (
	ErrBadToken        = errors.New("invalid token")
	ErrPasswordTooLong = errors.New("password longer than 72 bytes")
)

var parser = jwt.NewParser(
	jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	jwt.WithIssuer(Issuer),
	jwt.WithExpirationRequired(),
	jwt.WithIssuedAt(),
)

func HashPassword(pw string) (string, error) {
	if len(pw) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

// PasswordMatches reports whether pw hashes to hash. A malformed hash never
// matches.
func PasswordMatches(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Claims carry the user id in the standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string { return c.Subject }

// NewAccessToken signs an HS256 token for userID valid for ttl.
func NewAccessToken(userID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := Claims{jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    Issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// VerifyAccessToken checks signature, algorithm, issuer and lifetime. Every
// failure wraps ErrBadToken.
func VerifyAccessToken(raw, secret string) (*Claims, error) {
	var c Claims
	_, err := parser.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("%w: no subject", ErrBadToken)
	}
	return &c, nil
}

// NewRefreshToken returns an opaque token for the client and the digest to
// persist in its place.
func NewRefreshToken() (raw, digest string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("read random: %w", err)
	}
	raw = base64.RawURLEncoding.EncodeToString(b)
	return raw, RefreshDigest(raw), nil
}

// RefreshDigest is the lookup key for a refresh token presented by a client.
func RefreshDigest(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
