package solana

import (
	"bytes"
	"crypto/ed25519"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

var (
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	ErrInvalidKeypair  = errors.New("invalid keypair")
)

// KeypairFromMnemonic derives the keypair the ledger CLI recovers from a
// BIP39 mnemonic without a derivation path: the first 32 bytes of the BIP39
// seed are used as the ed25519 seed.
func KeypairFromMnemonic(mnemonic, passphrase string) (ed25519.PrivateKey, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidMnemonic, err.Error())
	}
	return ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize]), nil
}

// KeypairFromBase58 decodes a base58 encoded 64 byte secret key, the format
// wallets export keys in. The public half must match the seed.
func KeypairFromBase58(encoded string) (ed25519.PrivateKey, error) {
	decoded, err := base58.Decode(strings.TrimSpace(encoded))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKeypair, err.Error())
	}
	if len(decoded) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(ErrInvalidKeypair, "invalid length: %d", len(decoded))
	}

	key := ed25519.NewKeyFromSeed(decoded[:ed25519.SeedSize])
	if !bytes.Equal(key, decoded) {
		return nil, errors.Wrap(ErrInvalidKeypair, "public key does not match seed")
	}
	return key, nil
}
