package solana

import (
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"
	"math"

	"github.com/jdgcs/ed25519/edwards25519"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32

	pdaMarker = "ProgramDerivedAddress"
)

var (
	ErrTooManySeeds          = errors.New("too many seeds")
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")
	ErrInvalidPublicKey      = errors.New("invalid public key")
	ErrNoViableBump          = errors.New("unable to find a viable program address bump seed")
)

var (
	programHashCtor = sha256.New
)

// AddressDerivationError is returned when a program address cannot be derived
// from the provided program and seeds.
type AddressDerivationError struct {
	Program ed25519.PublicKey
	Seeds   [][]byte
	Err     error
}

func (e *AddressDerivationError) Error() string {
	return fmt.Sprintf("cannot derive program address for %s with %d seeds: %v", base58.Encode(e.Program), len(e.Seeds), e.Err)
}

func (e *AddressDerivationError) Unwrap() error {
	return e.Err
}

func newAddressDerivationError(program ed25519.PublicKey, seeds [][]byte, err error) error {
	return errors.WithStack(&AddressDerivationError{
		Program: program,
		Seeds:   seeds,
		Err:     err,
	})
}

// CreateProgramAddress hashes the seeds and program into a candidate address.
//
// Program addresses must _not_ lie on the ed25519 curve, so that no private key
// can sign for them. A candidate that decodes as a valid curve point yields
// ErrInvalidPublicKey.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L158
func CreateProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	if len(seeds) > maxSeeds {
		return nil, ErrTooManySeeds
	}

	h := programHashCtor()
	for _, s := range seeds {
		if len(s) > maxSeedLength {
			return nil, ErrMaxSeedLengthExceeded
		}
		h.Write(s)
	}
	h.Write(program)
	h.Write([]byte(pdaMarker))

	var candidate [32]byte
	copy(candidate[:], h.Sum(nil))

	// golang.org/x/crypto keeps its point type internal, so the curve check
	// relies on the decoder from jdgcs/ed25519.
	//
	// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L182-L187
	var point edwards25519.ExtendedGroupElement
	if point.FromBytes(&candidate) {
		return nil, ErrInvalidPublicKey
	}

	return candidate[:], nil
}

// FindProgramAddressAndBump returns the first off-curve address for the seeds,
// searching bump seeds from 255 downwards, along with the bump that produced it.
//
// Any failure is reported as an *AddressDerivationError.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L234
func FindProgramAddressAndBump(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	if len(program) != ed25519.PublicKeySize {
		return nil, 0, newAddressDerivationError(program, seeds, ErrInvalidPublicKey)
	}

	// One slot is reserved for the bump itself.
	if len(seeds) >= maxSeeds {
		return nil, 0, newAddressDerivationError(program, seeds, ErrTooManySeeds)
	}

	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)

	bump := []byte{math.MaxUint8}
	withBump[len(seeds)] = bump

	for i := 0; i < math.MaxUint8; i++ {
		pub, err := CreateProgramAddress(program, withBump...)
		switch err {
		case nil:
			return pub, bump[0], nil
		case ErrInvalidPublicKey:
			bump[0]--
		default:
			return nil, 0, newAddressDerivationError(program, seeds, err)
		}
	}

	return nil, 0, newAddressDerivationError(program, seeds, ErrNoViableBump)
}

// FindProgramAddress is FindProgramAddressAndBump without the bump.
func FindProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	pub, _, err := FindProgramAddressAndBump(program, seeds...)
	return pub, err
}
