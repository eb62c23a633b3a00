package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrOpaqueToken marks a bearer token that is not a JWT. The gateway
	// cannot bound its lifetime locally.
	ErrOpaqueToken = errors.New("token is not a JWT")
	// ErrTokenExpired marks a JWT whose exp claim has passed.
	ErrTokenExpired = errors.New("token expired")
)

// TokenClaims are the unverified claims the gateway reads from a bearer token.
// Verification is the Remote Complaint Service's job.
type TokenClaims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// TokenInspector reads claims without checking signatures.
type TokenInspector struct {
	parser *jwt.Parser
	now    func() time.Time
}

// NewTokenInspector builds an inspector using the wall clock.
func NewTokenInspector() *TokenInspector {
	return &TokenInspector{parser: jwt.NewParser(), now: time.Now}
}

// Inspect returns the token's claims. Expired tokens yield ErrTokenExpired
// together with the claims; non-JWT tokens yield ErrOpaqueToken.
func (i *TokenInspector) Inspect(token string) (TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil {
		return TokenClaims{}, ErrOpaqueToken
	}

	var out TokenClaims
	out.Subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	switch role := claims["role"].(type) {
	case string:
		out.Role = role
	case []interface{}:
		if len(role) > 0 {
			out.Role, _ = role[0].(string)
		}
	}
	if out.Role == "" {
		if roles, ok := claims["roles"].([]interface{}); ok && len(roles) > 0 {
			out.Role, _ = roles[0].(string)
		}
	}

	if !out.ExpiresAt.IsZero() && !i.now().Before(out.ExpiresAt) {
		return out, ErrTokenExpired
	}
	return out, nil
}
