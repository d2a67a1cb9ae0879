package session

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what can be read from a bearer token without its key.
// It is for display only; the server alone decides whether a token is valid.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an exp claim that is behind now.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}

// ParseTokenInfo decodes the claims of a JWT without verifying its signature.
func ParseTokenInfo(token string) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	var info TokenInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}

// TokenInfo decodes the current bearer token.
func (s *Store) TokenInfo() (TokenInfo, error) {
	token := s.Token()
	if token == "" {
		return TokenInfo{}, common.ErrNoSession
	}
	return ParseTokenInfo(token)
}
