package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	tok, exp, err := m.GenerateAccessToken(TokenSubject{
		UserID: "u1", Email: "a@b.com", Name: "Ann", Company: "Shipper", Role: "Admin",
	}, "sess-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "Shipper", claims.Company)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, "sess-1", claims.ID)
}

func TestJWTRejectsForeignSecret(t *testing.T) {
	tok, _, err := NewJWTManager("one", time.Hour).GenerateAccessToken(TokenSubject{UserID: "u1"}, "x")
	require.NoError(t, err)

	_, err = NewJWTManager("two", time.Hour).ParseAccessToken(tok)
	assert.Error(t, err)
}

func TestJWTRejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)
	tok, _, err := m.GenerateAccessToken(TokenSubject{UserID: "u1"}, "x")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTRejectsNoneAlg(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u1"})
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTManager("secret", time.Hour).ParseAccessToken(s)
	assert.Error(t, err)
}
