package session

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of credential claims the console cares about. The
// client holds no signing keys, so claims are extracted without signature
// verification; the backend remains the authority and a 401 on the next
// request is the actual validation.
type Claims struct {
	Subject string
	Email   string
	Expiry  time.Time
}

// CredentialClaims parses the bearer credential as a JWT and extracts its
// claims. Opaque (non-JWT) credentials return an error and callers fall
// back to the cache's own expiry bookkeeping.
func CredentialClaims(rawToken string) (*Claims, error) {
	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("[CredentialClaims] parse: %w", err)
	}

	mapClaims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, fmt.Errorf("[CredentialClaims] unexpected claims type")
	}

	claims := &Claims{}
	if sub, err := mapClaims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.Expiry = exp.Time
	}
	return claims, nil
}
