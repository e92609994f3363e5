package services

import (
	"testing"
	"time"

	"census-otp-service/internal/domain/models"
	"census-otp-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(testutil.TestConfig())
	account := &models.Account{MobileNumber: "9999999999"}
	account.ID = 7

	token, err := svc.GenerateToken(account)
	require.NoError(t, err)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "9999999999", claims.MobileNumber)
	assert.Equal(t, RoleAccount, claims.Role)
}

func TestJWTService_RejectsOtherSecret(t *testing.T) {
	cfg := testutil.TestConfig()
	token, err := NewJWTService(cfg).GenerateToken(&models.Account{MobileNumber: "9"})
	require.NoError(t, err)

	other := testutil.TestConfig()
	other.JWTSecretKey = "another-secret"
	_, err = NewJWTService(other).ExtractClaims(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	cfg := testutil.TestConfig()
	cfg.JWTTTL = -time.Minute
	svc := NewJWTService(cfg)
	// Non-positive TTLs fall back to the default.
	assert.Equal(t, 24*time.Hour, svc.ttl)

	svc.ttl = -time.Minute
	token, err := svc.GenerateToken(&models.Account{MobileNumber: "9"})
	require.NoError(t, err)

	_, err = svc.ExtractClaims(token)
	assert.Error(t, err)
}
