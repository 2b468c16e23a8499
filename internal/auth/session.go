package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vibefy/internal/domain"
)

const (
	// CookieName is the cookie carrying the signed session token.
	CookieName = "vibe_session"
	// DefaultTTL is the lifetime of a session when none is configured.
	DefaultTTL = 30 * 24 * time.Hour

	issuer = "vibefy"
)

// ErrInvalidSession is returned for tokens that are malformed, forged or expired.
var ErrInvalidSession = errors.New("invalid session")

// Session is the identity recovered from a valid token.
type Session struct {
	UserID    int64
	Email     string
	ExpiresAt time.Time
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionIssuer mints and validates HMAC-signed session tokens.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionIssuer(secret string, ttl time.Duration) (*SessionIssuer, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SessionIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// TTL is the lifetime of minted sessions.
func (s *SessionIssuer) TTL() time.Duration {
	return s.ttl
}

// Mint returns a signed token bound to the user's id.
func (s *SessionIssuer) Mint(user *domain.User) (string, time.Time, error) {
	if user == nil || user.ID <= 0 {
		return "", time.Time{}, errors.New("mint session: user id is required")
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := sessionClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return token, expiresAt, nil
}

// Validate checks the signature, issuer and expiry of a token.
func (s *SessionIssuer) Validate(raw string) (*Session, error) {
	if raw == "" {
		return nil, ErrInvalidSession
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, ErrInvalidSession
	}

	return &Session{
		UserID:    userID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
