// Package token holds the SPL Token program identity and the associated
// token account helpers used when wiring token accounts into instructions.
package token

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

// ProgramKey is the address of the SPL Token program.
//
// Current key: TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA
var ProgramKey = mustDecode("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")

// AssociatedTokenAccountProgramKey is the address of the associated token
// account program.
//
// Current key: ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL
var AssociatedTokenAccountProgramKey = mustDecode("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")

func mustDecode(s string) ed25519.PublicKey {
	decoded, err := base58.Decode(s)
	if err != nil {
		panic(err)
	}
	return decoded
}
