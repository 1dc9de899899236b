package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiringSoon reports whether a bearer token's exp claim falls
// within the expiry buffer. The signature is not validated here; the
// token came from our own cache and only its lifetime matters. Tokens
// that cannot be parsed are treated as expiring so a fresh one gets
// fetched.
func TokenExpiringSoon(tokenString string) bool {
	if tokenString == "" {
		return true
	}

	token, _, err := new(jwt.Parser).ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return true
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}

	return time.Now().Add(TokenExpiryBuffer * time.Second).After(exp.Time)
}
