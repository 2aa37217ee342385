// Package system holds the address of the native system program.
package system

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

// ProgramKey is the address of the system program.
//
// https://explorer.solana.com/address/11111111111111111111111111111111
var ProgramKey = mustDecode("11111111111111111111111111111111")

func mustDecode(s string) ed25519.PublicKey {
	decoded, err := base58.Decode(s)
	if err != nil {
		panic(err)
	}
	return decoded
}
