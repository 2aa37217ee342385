package mostro

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/4alls/Mostro-MVP-Program/pkg/solana/system"
	"github.com/4alls/Mostro-MVP-Program/pkg/solana/token"
)

var (
	ErrInvalidAccountData  = errors.New("unexpected account data")
	ErrInvalidAccountOwner = errors.New("account is not owned by the program")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("2SYi3NFHTnCXHEzxNpa8nEyehkmZPyikbCarmxngSdTn")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var (
	SYSTEM_PROGRAM_ID           = system.ProgramKey
	SPL_TOKEN_PROGRAM_ID        = token.ProgramKey
	ASSOCIATED_TOKEN_PROGRAM_ID = token.AssociatedTokenAccountProgramKey
)

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
