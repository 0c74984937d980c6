package service

import (
	"testing"
	"time"

	"github.com/Dan9191/trade-prices/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	a := NewAuth(&config.Config{JWTSecret: "jwt-secret", AdminPasswordHash: string(hash)}, quietLogger())
	now := time.Now()
	a.now = func() time.Time { return now }

	token, err := a.Login("s3cret")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte("jwt-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, now.Add(24*time.Hour).Unix(), claims.ExpiresAt.Unix())

	_, err = a.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuth_Disabled(t *testing.T) {
	a := NewAuth(&config.Config{JWTSecret: "jwt-secret"}, quietLogger())
	_, err := a.Login("anything")
	assert.ErrorIs(t, err, ErrAdminDisabled)
}
