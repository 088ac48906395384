package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/GigiaaaChen/synapse-tasks/internal/core/domain"
)

// DefaultTokenTTL is the lifetime main wires in when SYNAPSE_TOKEN_TTL is
// not set.
const DefaultTokenTTL = 24 * time.Hour

var ErrTokenInvalid = errors.New("token is invalid or expired")

// TokenService issues the HS256 bearer tokens the API authenticates with.
// Validation pins the issuer and re-checks that the subject still exists, so
// a deleted account loses access before its token expires.
type TokenService struct {
	secret   []byte
	issuer   string
	ttl      time.Duration
	userRepo domain.UserRepository
}

func NewTokenService(secret, issuer string, ttl time.Duration, userRepo domain.UserRepository) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		ttl:      ttl,
		userRepo: userRepo,
	}
}

func (s *TokenService) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken returns the user id a well-formed token was issued to.
// Signature, issuer, and expiry failures all collapse into ErrTokenInvalid;
// the caller has no business telling an attacker which check failed.
func (s *TokenService) ValidateToken(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", ErrTokenInvalid
	}
	if claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := s.userRepo.GetByID(ctx, claims.Subject); err != nil {
		return "", fmt.Errorf("token subject lookup: %w", err)
	}
	return claims.Subject, nil
}
