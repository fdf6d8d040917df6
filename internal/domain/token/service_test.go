package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndVerify(t *testing.T) {
	svc, err := New(Config{Secret: testSecret})
	require.NoError(t, err)

	signed, expiresAt, err := svc.Issue("user-42")
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.True(t, expiresAt.After(time.Now()))

	userID, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestNewRejectsShortSecret(t *testing.T) {
	_, err := New(Config{Secret: "too-short"})
	assert.ErrorIs(t, err, ErrInvalidSecretLength)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc, err := New(Config{Secret: testSecret})
	require.NoError(t, err)

	_, err = svc.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, err := New(Config{Secret: testSecret})
	require.NoError(t, err)
	verifier, err := New(Config{Secret: "ffffffffffffffffffffffffffffffff"})
	require.NoError(t, err)

	signed, _, err := issuer.Issue("user-42")
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc, err := New(Config{Secret: testSecret, TTL: -time.Minute})
	require.NoError(t, err)

	signed, _, err := svc.Issue("user-42")
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
