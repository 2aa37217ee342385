package testutil

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"
)

// GenerateSolanaKeypair returns a fresh random signing key.
func GenerateSolanaKeypair(t *testing.T) ed25519.PrivateKey {
	_, p, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return p
}

// GenerateSolanaKeypairs returns n fresh random signing keys.
func GenerateSolanaKeypairs(t *testing.T, n int) []ed25519.PrivateKey {
	keys := make([]ed25519.PrivateKey, n)
	for i := range keys {
		keys[i] = GenerateSolanaKeypair(t)
	}
	return keys
}

// GenerateSolanaKeys returns n fresh random public keys.
func GenerateSolanaKeys(t *testing.T, n int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, n)
	for i := 0; i < n; i++ {
		p, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = p
	}
	return keys
}

// PublicKeys returns the public halves of keys.
func PublicKeys(keys ...ed25519.PrivateKey) []ed25519.PublicKey {
	pubs := make([]ed25519.PublicKey, len(keys))
	for i, key := range keys {
		pubs[i] = key.Public().(ed25519.PublicKey)
	}
	return pubs
}
