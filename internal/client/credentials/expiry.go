package credentials

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

var parser = jwt.NewParser()

// ExpiresAt decodes the exp claim of token. ok is false when the token
// carries no exp claim.
func ExpiresAt(token string) (exp time.Time, ok bool, err error) {
	var claims jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false, nil
	}
	return claims.ExpiresAt.Time, true, nil
}

// Expired reports whether token must be refreshed before use at now.
// Undecodable tokens count as expired; tokens without exp never expire here.
func Expired(token string, now time.Time) bool {
	exp, ok, err := ExpiresAt(token)
	if err != nil {
		return true
	}
	if !ok {
		return false
	}
	return !now.Before(exp)
}
