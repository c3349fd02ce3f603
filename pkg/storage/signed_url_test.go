package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedURLRoundTrip(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Minute)

	token, expiresAt, err := signer.Generate("export-1", "reports/2024-03-01/G1.csv")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	exportID, relPath, _, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "export-1", exportID)
	assert.Equal(t, "reports/2024-03-01/G1.csv", relPath)
}

func TestSignedURLRejectsTampering(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Minute)

	token, _, err := signer.Generate("export-1", "reports/day.pdf")
	require.NoError(t, err)

	_, _, _, err = signer.Parse(token + "x")
	assert.Error(t, err)

	other := NewSignedURLSigner("different", time.Minute)
	_, _, _, err = other.Parse(token)
	assert.Error(t, err)
}

func TestSignedURLRejectsExpired(t *testing.T) {
	signer := &SignedURLSigner{secret: []byte("secret"), ttl: -time.Minute}

	token, _, err := signer.Generate("export-1", "reports/day.pdf")
	require.NoError(t, err)

	_, _, _, err = signer.Parse(token)
	assert.Error(t, err)
}
