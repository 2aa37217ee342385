package token

import (
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4alls/Mostro-MVP-Program/pkg/solana"
	"github.com/4alls/Mostro-MVP-Program/pkg/solana/system"
)

func TestGetAssociatedAccount(t *testing.T) {
	// Values taken from the spl reference implementation.
	wallet, err := base58.Decode("4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM")
	require.NoError(t, err)
	mint, err := base58.Decode("8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh")
	require.NoError(t, err)

	actual, bump, err := GetAssociatedAccount(wallet, mint)
	require.NoError(t, err)
	assert.Equal(t, "H7MQwEzt97tUJryocn3qaEoy2ymWstwyEk1i9Yv3EmuZ", base58.Encode(actual))

	recreated, err := solana.CreateProgramAddress(AssociatedTokenAccountProgramKey, wallet, ProgramKey, mint, []byte{bump})
	require.NoError(t, err)
	assert.EqualValues(t, actual, recreated)
}

func TestCreateAssociatedTokenAccount(t *testing.T) {
	keys := make([]ed25519.PublicKey, 3)
	for i := range keys {
		pub, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = pub
	}

	expectedAddr, _, err := GetAssociatedAccount(keys[1], keys[2])
	require.NoError(t, err)

	for _, idempotent := range []bool{false, true} {
		instruction, addr, err := CreateAssociatedTokenAccount(keys[0], keys[1], keys[2], idempotent)
		require.NoError(t, err)
		assert.Equal(t, expectedAddr, addr)

		if idempotent {
			assert.Equal(t, []byte{commandCreateIdempotent}, instruction.Data)
		} else {
			assert.Equal(t, []byte{commandCreate}, instruction.Data)
		}

		require.Len(t, instruction.Accounts, 6)
		assert.True(t, instruction.Accounts[0].IsSigner)
		assert.True(t, instruction.Accounts[0].IsWritable)
		assert.False(t, instruction.Accounts[1].IsSigner)
		assert.True(t, instruction.Accounts[1].IsWritable)
		for i := 2; i < len(instruction.Accounts); i++ {
			assert.False(t, instruction.Accounts[i].IsSigner)
			assert.False(t, instruction.Accounts[i].IsWritable)
		}

		assert.EqualValues(t, system.ProgramKey, instruction.Accounts[4].PublicKey)
		assert.EqualValues(t, ProgramKey, instruction.Accounts[5].PublicKey)
	}
}
