package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", 43200*time.Minute)

	token, err := svc.Issue("a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims.Email())
	require.WithinDuration(t, time.Now().Add(30*24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenService_FreshTokenPerIssue(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("test-secret", time.Hour).WithClock(fixedClock(issuedAt))

	first, err := svc.Issue("a@x.com")
	require.NoError(t, err)

	later := svc.WithClock(fixedClock(issuedAt.Add(2 * time.Second)))
	second, err := later.Issue("a@x.com")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	claims, err := later.Verify(second)
	require.NoError(t, err)
	require.True(t, issuedAt.Add(2*time.Second+time.Hour).Equal(claims.ExpiresAt.Time))
}

func TestTokenService_Expiry(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("test-secret", time.Hour).WithClock(fixedClock(issuedAt))

	token, err := svc.Issue("a@x.com")
	require.NoError(t, err)

	_, err = svc.WithClock(fixedClock(issuedAt.Add(time.Hour - time.Second))).Verify(token)
	require.NoError(t, err)

	_, err = svc.WithClock(fixedClock(issuedAt.Add(time.Hour))).Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.WithClock(fixedClock(issuedAt.Add(48 * time.Hour))).Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsForeignSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Hour).Issue("a@x.com")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", time.Hour).Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsMalformed(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue("a@x.com")
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	for _, bad := range []string{
		"",
		"garbage",
		parts[0] + "." + parts[1],
		parts[0] + ".eyJzdWIiOiJldmlsQHguY29tIn0." + parts[2],
	} {
		_, err := svc.Verify(bad)
		require.ErrorIs(t, err, ErrInvalidToken, "token %q", bad)
	}
}

func TestTokenService_RejectsMissingClaims(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := noSubject.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "a@x.com"})
	signed, err = noExpiry.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "a@x.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}
