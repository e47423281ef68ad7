// Package jwt issues and validates the signed bearer tokens that back
// every authenticated request. Tokens are compact HS256 JWTs whose
// subject is the user ID; there is no server-side revocation, a token
// stays valid until its expiry.
package jwt

import (
	"errors"
	"time"

	jwtstd "github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// TokenError represents token related errors.
type TokenError string

func (e TokenError) Error() string {
	return string(e)
}

const (
	// DefaultAccessTokenExpire is the access-token lifetime.
	DefaultAccessTokenExpire = time.Hour * 24

	ErrNeedSigningKey = TokenError("cannot sign token without signing key")
	ErrInvalidToken   = TokenError("invalid token")
	ErrTokenExpired   = TokenError("token expired")
	ErrMissingSubject = TokenError("token has no subject")
)

// TokenManager handles token operations.
type TokenManager struct {
	key string
}

// NewTokenManager creates a new TokenManager instance.
func NewTokenManager(key string) *TokenManager {
	return &TokenManager{key: key}
}

// validateKey validates the signing key.
func (tm *TokenManager) validateKey() error {
	if tm.key == "" {
		return ErrNeedSigningKey
	}
	return nil
}

// GenerateAccessToken generates an access token for the given subject
// with the default 24h expiry.
func (tm *TokenManager) GenerateAccessToken(subject string) (string, error) {
	return tm.GenerateAccessTokenWithExpiry(subject, DefaultAccessTokenExpire)
}

// GenerateAccessTokenWithExpiry generates an access token with a
// custom expiration duration.
func (tm *TokenManager) GenerateAccessTokenWithExpiry(subject string, expiry time.Duration) (string, error) {
	if err := tm.validateKey(); err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwtstd.MapClaims{
		"jti": gonanoid.Must(),
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(expiry).Unix(),
	}

	t := jwtstd.NewWithClaims(jwtstd.SigningMethodHS256, claims)
	return t.SignedString([]byte(tm.key))
}

// ValidateToken validates a token string and returns the parsed token.
func (tm *TokenManager) ValidateToken(tokenString string) (*jwtstd.Token, error) {
	if err := tm.validateKey(); err != nil {
		return nil, err
	}

	token, err := jwtstd.Parse(tokenString, func(token *jwtstd.Token) (any, error) {
		if _, ok := token.Method.(*jwtstd.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(tm.key), nil
	})
	if err != nil {
		if errors.Is(err, jwtstd.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return token, nil
}

// DecodeToken decodes a token into its claims.
func (tm *TokenManager) DecodeToken(tokenString string) (map[string]any, error) {
	token, err := tm.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwtstd.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Subject validates a token and extracts its subject.
func (tm *TokenManager) Subject(tokenString string) (string, error) {
	claims, err := tm.DecodeToken(tokenString)
	if err != nil {
		return "", err
	}
	sub := GetSubjectFromToken(claims)
	if sub == "" {
		return "", ErrMissingSubject
	}
	return sub, nil
}

// GetSubjectFromToken extracts the subject (sub) from token claims.
func GetSubjectFromToken(claims map[string]any) string {
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}

// GetTokenIDFromToken extracts the JWT ID (jti) from token claims.
func GetTokenIDFromToken(claims map[string]any) string {
	if jti, ok := claims["jti"].(string); ok {
		return jti
	}
	return ""
}

// GetExpirationFromToken extracts the expiration time from token claims.
func GetExpirationFromToken(claims map[string]any) time.Time {
	if exp, ok := claims["exp"].(float64); ok && exp > 0 {
		return time.Unix(int64(exp), 0)
	}
	return time.Time{}
}

// GetIssuedAtFromToken extracts the issued-at time from token claims.
func GetIssuedAtFromToken(claims map[string]any) time.Time {
	if iat, ok := claims["iat"].(float64); ok && iat > 0 {
		return time.Unix(int64(iat), 0)
	}
	return time.Time{}
}
