package solana

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Taken from: https://github.com/solana-labs/solana/blob/14339dec0a960e8161d1165b6a8e5cfb73e78f23/sdk/src/transaction.rs#L523
const sdkGenerated = "AUc7Cbu+gZalFSGeSFdukHhP7oSGaSdmdNEd5ZokaSysdoMWfIOzjrAbdaBZZuDMAfyNAogAJdrhgVya+jthsgoBAAEDnON0wdcmjhYIDuXvd10F2qEjAyEAJGSe/CGhYbk+WWMBAQEEBQYHCAkJCQkJCQkJCQkJCQkJCQkIBwYFBAEBAQICAgQFBgcICQEBAQEBAQEBAQEBAQEBCQgHBgUEAgICAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABAgIAAQMBAgM="

var (
	sdkProgram = ed25519.PublicKey{2, 2, 2, 4, 5, 6, 7, 8, 9, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 9, 8, 7, 6, 5, 4, 2, 2, 2}
	sdkTo      = ed25519.PublicKey{1, 1, 1, 4, 5, 6, 7, 8, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 8, 7, 6, 5, 4, 1, 1, 1}
)

func TestTransaction_CrossImpl(t *testing.T) {
	// The upstream keypair bytes do not carry a matching public key, which is
	// reproduced here so the encoding matches byte for byte.
	keypair := ed25519.PrivateKey{48, 83, 2, 1, 1, 48, 5, 6, 3, 43, 101, 112, 4, 34, 4, 32, 255, 101, 36, 24, 124, 23,
		167, 21, 132, 204, 155, 5, 185, 58, 121, 75, 156, 227, 116, 193, 215, 38, 142, 22, 8,
		14, 229, 239, 119, 93, 5, 218, 161, 35, 3, 33, 0, 36, 100, 158, 252, 33, 161, 97, 185,
		62, 89, 99}
	payer := keypair.Public().(ed25519.PublicKey)

	tx := NewTransaction(
		payer,
		NewInstruction(
			sdkProgram,
			[]byte{1, 2, 3},
			NewAccountMeta(payer, true),
			NewAccountMeta(sdkTo, false),
		),
	)
	require.NoError(t, tx.Sign(keypair))

	expected, err := base64.StdEncoding.DecodeString(sdkGenerated)
	require.NoError(t, err)
	assert.Equal(t, expected, tx.Marshal())

	var decoded Transaction
	require.NoError(t, decoded.Unmarshal(expected))
	assert.Equal(t, tx.Signatures, decoded.Signatures)
	assert.Equal(t, tx.Message.Instructions, decoded.Message.Instructions)
}

func TestTransaction_Ordering(t *testing.T) {
	payer, program := generateKey(t), generateKey(t)
	keys := generateKeys(t, 4)
	data := []byte{1, 2, 3}

	tx := NewTransaction(
		public(payer),
		NewInstruction(
			public(program),
			data,
			NewReadonlyAccountMeta(public(keys[0]), true),
			NewReadonlyAccountMeta(public(keys[1]), false),
			NewAccountMeta(public(keys[2]), false),
			NewAccountMeta(public(keys[3]), true),
		),
	)

	// Signing order does not matter.
	require.NoError(t, tx.Sign(keys[0], keys[3], payer))
	require.NoError(t, tx.VerifySignatures())

	require.Len(t, tx.Signatures, 3)
	require.Len(t, tx.Message.Accounts, 6)
	assert.EqualValues(t, 3, tx.Message.Header.NumSignatures)
	assert.EqualValues(t, 1, tx.Message.Header.NumReadonlySigned)
	assert.EqualValues(t, 2, tx.Message.Header.NumReadOnly)

	message := tx.Message.Marshal()
	assert.True(t, ed25519.Verify(public(payer), message, tx.Signatures[0][:]))
	assert.True(t, ed25519.Verify(public(keys[3]), message, tx.Signatures[1][:]))
	assert.True(t, ed25519.Verify(public(keys[0]), message, tx.Signatures[2][:]))

	assert.Equal(t, []ed25519.PublicKey{
		public(payer),
		public(keys[3]),
		public(keys[0]),
		public(keys[2]),
		public(keys[1]),
		public(program),
	}, tx.Message.Accounts)
	assert.Equal(t, []ed25519.PublicKey{public(payer), public(keys[3]), public(keys[0])}, tx.RequiredSigners())

	assert.Equal(t, byte(5), tx.Message.Instructions[0].ProgramIndex)
	assert.Equal(t, data, tx.Message.Instructions[0].Data)
	assert.Equal(t, []byte{2, 4, 3, 1}, tx.Message.Instructions[0].Accounts)
	assert.Equal(t, tx.Signatures[0], tx.Signature())
}

func TestTransaction_DuplicateKeys(t *testing.T) {
	payer, program := generateKey(t), generateKey(t)
	keys := generateKeys(t, 4)
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(public(keys[i]), public(keys[j])) < 0
	})

	tx := NewTransaction(
		public(payer),
		NewInstruction(
			public(program),
			nil,
			NewReadonlyAccountMeta(public(keys[0]), true),
			NewReadonlyAccountMeta(public(keys[1]), false),
			NewAccountMeta(public(keys[2]), false),
			NewAccountMeta(public(keys[3]), true),
			// promotes keys[0] to writable and keys[1] to signer
			NewAccountMeta(public(keys[0]), false),
			NewReadonlyAccountMeta(public(keys[1]), true),
			// weaker references leave keys[2] and keys[3] untouched
			NewReadonlyAccountMeta(public(keys[2]), false),
			NewReadonlyAccountMeta(public(keys[3]), false),
		),
	)
	require.NoError(t, tx.Sign(keys[0], keys[1], keys[3], payer))

	require.Len(t, tx.Message.Accounts, 6)
	assert.EqualValues(t, 4, tx.Message.Header.NumSignatures)
	assert.EqualValues(t, 1, tx.Message.Header.NumReadonlySigned)
	assert.EqualValues(t, 1, tx.Message.Header.NumReadOnly)

	assert.Equal(t, public(payer), tx.Message.Accounts[0])
	assert.Equal(t, public(keys[0]), tx.Message.Accounts[1])
	assert.Equal(t, public(keys[3]), tx.Message.Accounts[2])
	assert.Equal(t, public(keys[1]), tx.Message.Accounts[3])
	assert.Equal(t, public(keys[2]), tx.Message.Accounts[4])
	assert.Equal(t, public(program), tx.Message.Accounts[5])
	assert.Len(t, tx.Message.Instructions[0].Accounts, 8)
}

func TestTransaction_Signers(t *testing.T) {
	payer, program, other := generateKey(t), generateKey(t), generateKey(t)
	cosigner := generateKey(t)

	tx := NewTransaction(
		public(payer),
		NewInstruction(public(program), nil, NewReadonlyAccountMeta(public(cosigner), true)),
	)

	err := tx.Sign(other)
	assert.True(t, errors.Is(err, ErrUnknownSigner))

	require.NoError(t, tx.Sign(payer))
	err = tx.VerifySignatures()
	assert.True(t, errors.Is(err, ErrMissingSignature))

	require.NoError(t, tx.Sign(cosigner))
	assert.NoError(t, tx.VerifySignatures())
}

func TestTransaction_InvalidEncoding(t *testing.T) {
	payer, program := generateKey(t), generateKey(t)

	tx := NewTransaction(
		public(payer),
		NewInstruction(public(program), nil, NewAccountMeta(public(payer), true)),
	)
	tx.Message.Instructions[0].ProgramIndex = 2

	var decoded Transaction
	assert.Error(t, decoded.Unmarshal(tx.Marshal()))

	tx.Message.Instructions[0].ProgramIndex = 1
	tx.Message.Instructions[0].Accounts = []byte{7}
	assert.Error(t, decoded.Unmarshal(tx.Marshal()))

	raw := tx.Marshal()
	assert.Error(t, decoded.Unmarshal(raw[:len(raw)-1]))
}

func TestTransaction_EmptyAccount(t *testing.T) {
	payer, program := generateKey(t), generateKey(t)

	tx := NewTransaction(
		public(payer),
		NewInstruction(public(program), []byte{1, 2, 3}, NewAccountMeta(nil, false)),
	)
	require.NoError(t, tx.Sign(payer))

	var decoded Transaction
	require.NoError(t, decoded.Unmarshal(tx.Marshal()))
	assert.Equal(t, make([]byte, ed25519.PublicKeySize), []byte(decoded.Message.Accounts[1]))
}

func generateKey(t *testing.T) ed25519.PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return priv
}

func generateKeys(t *testing.T, n int) []ed25519.PrivateKey {
	keys := make([]ed25519.PrivateKey, n)
	for i := range keys {
		keys[i] = generateKey(t)
	}
	return keys
}

func public(priv ed25519.PrivateKey) ed25519.PublicKey {
	return priv.Public().(ed25519.PublicKey)
}
