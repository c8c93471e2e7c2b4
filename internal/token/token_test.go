package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmarin7/messagely/internal/token"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := token.NewIssuer("secret")

	signed, err := issuer.Issue("alice")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := issuer.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestIssuer_WrongKey(t *testing.T) {
	signed, err := token.NewIssuer("secret").Issue("alice")
	require.NoError(t, err)

	_, err = token.NewIssuer("other-secret").Parse(signed)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestIssuer_Garbage(t *testing.T) {
	issuer := token.NewIssuer("secret")

	_, err := issuer.Parse("not-a-token")
	assert.ErrorIs(t, err, token.ErrInvalidToken)

	_, err = issuer.Parse("")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}
