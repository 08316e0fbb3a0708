package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/jobboard/internal/models"
)

func testUser() *models.User {
	return &models.User{ID: "0d4f8c1e-9d7b-4b8e-8a55-2f0c8a1e6b11", Email: "ana@example.com", Role: models.RoleEmployer}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	iss := NewTokenIssuer("s3cret", time.Hour)
	raw, err := iss.Issue(testUser())
	require.NoError(t, err)

	p, err := iss.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, models.Principal{UserID: testUser().ID, Email: "ana@example.com", Role: models.RoleEmployer}, p)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	raw, err := NewTokenIssuer("s3cret", time.Hour).Issue(testUser())
	require.NoError(t, err)

	_, err = NewTokenIssuer("other", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	iss := NewTokenIssuer("s3cret", time.Minute)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	raw, err := iss.Issue(testUser())
	require.NoError(t, err)

	_, err = NewTokenIssuer("s3cret", time.Minute).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		ID:               "u1",
		Role:             models.RoleJobSeeker,
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = NewTokenIssuer("s3cret", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		ID:               "u1",
		Role:             "admin",
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = NewTokenIssuer("s3cret", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpiry(t *testing.T) {
	d, err := ParseExpiry("")
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, d)

	d, err = ParseExpiry("3d")
	require.NoError(t, err)
	assert.Equal(t, 72*time.Hour, d)

	d, err = ParseExpiry("90m")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	for _, bad := range []string{"xd", "-1d", "soon", "-5m"} {
		_, err = ParseExpiry(bad)
		assert.Error(t, err, bad)
	}
}
