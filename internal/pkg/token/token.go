package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// ErrInvalidToken is the only failure a caller sees from verification.
// Bad signature, expired, wrong type and malformed input are deliberately
// indistinguishable at this boundary.
var ErrInvalidToken = errors.New("invalid token")

// Service issues and verifies signed bearer tokens (HS256, shared secret).
// Verification is stateless; revocation is the session layer's problem.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type Claims struct {
	TokenType string `json:"type"`
	jwtlib.RegisteredClaims
}

// AccessClaims is what the auth middleware needs from a verified access
// token: the account id and the jti used as the revocation-set key.
type AccessClaims struct {
	Subject string
	JTI     string
}

func New(secret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *Service) IssueAccessToken(userID string) (string, error) {
	return s.issue(userID, typeAccess, s.accessTTL)
}

func (s *Service) IssueRefreshToken(userID string) (string, error) {
	return s.issue(userID, typeRefresh, s.refreshTTL)
}

func (s *Service) issue(userID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		TokenType: tokenType,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) VerifyAccessToken(tokenStr string) (*AccessClaims, error) {
	claims, err := s.verify(tokenStr, typeAccess)
	if err != nil {
		return nil, err
	}
	return &AccessClaims{Subject: claims.Subject, JTI: claims.ID}, nil
}

func (s *Service) VerifyRefreshToken(tokenStr string) (string, error) {
	claims, err := s.verify(tokenStr, typeRefresh)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *Service) verify(tokenStr, wantType string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	}, jwtlib.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.TokenType != wantType || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
