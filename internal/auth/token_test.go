package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"ms-checkout/internal/auth"
)

func signedToken(t *testing.T, exp time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "checkout-service",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

func TestTokenExpiringSoon(t *testing.T) {
	fresh := signedToken(t, time.Now().Add(1*time.Hour))
	assert.False(t, auth.TokenExpiringSoon(fresh))

	expired := signedToken(t, time.Now().Add(-1*time.Minute))
	assert.True(t, auth.TokenExpiringSoon(expired))

	// Inside the refresh buffer counts as expiring.
	almost := signedToken(t, time.Now().Add((auth.TokenExpiryBuffer-10)*time.Second))
	assert.True(t, auth.TokenExpiringSoon(almost))
}

func TestTokenExpiringSoonGarbageInput(t *testing.T) {
	assert.True(t, auth.TokenExpiringSoon(""))
	assert.True(t, auth.TokenExpiringSoon("not-a-jwt"))
}

func TestTokenExpiringSoonMissingExp(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"})
	signed, err := token.SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	assert.True(t, auth.TokenExpiringSoon(signed))
}
