package mostro

import (
	"crypto/ed25519"

	"github.com/4alls/Mostro-MVP-Program/pkg/solana"
	"github.com/4alls/Mostro-MVP-Program/pkg/solana/token"
)

var (
	ConfigPrefix   = []byte("config")
	ArtistPrefix   = []byte("artist")
	VaultPrefix    = []byte("vault")
	ProposalPrefix = []byte("artist_proposal")
	VotePrefix     = []byte("vote")
)

func programOrDefault(program ed25519.PublicKey) ed25519.PublicKey {
	if len(program) == 0 {
		return PROGRAM_ID
	}
	return program
}

type GetConfigAddressArgs struct {
	Program ed25519.PublicKey
}

// GetConfigAddress derives the platform configuration singleton.
func GetConfigAddress(args *GetConfigAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programOrDefault(args.Program),
		ConfigPrefix,
	)
}

type GetArtistAddressArgs struct {
	Program ed25519.PublicKey
	Name    string
}

func GetArtistAddress(args *GetArtistAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programOrDefault(args.Program),
		ArtistPrefix,
		[]byte(args.Name),
	)
}

type GetVaultAddressArgs struct {
	Program ed25519.PublicKey
	Name    string
}

// GetVaultAddress derives the authority holding an artist's bonding curve
// funds.
func GetVaultAddress(args *GetVaultAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programOrDefault(args.Program),
		VaultPrefix,
		[]byte(args.Name),
	)
}

type GetProposalAddressArgs struct {
	Program    ed25519.PublicKey
	Name       string
	ProposalID uint64
}

func GetProposalAddress(args *GetProposalAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programOrDefault(args.Program),
		ProposalPrefix,
		[]byte(args.Name),
		uint64Seed(args.ProposalID),
	)
}

type GetVoteAddressArgs struct {
	Program  ed25519.PublicKey
	Proposal ed25519.PublicKey
	Voter    ed25519.PublicKey
}

// GetVoteAddress derives the record of a voter's ballot on a proposal.
func GetVoteAddress(args *GetVoteAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programOrDefault(args.Program),
		VotePrefix,
		args.Proposal,
		args.Voter,
	)
}

type GetAssociatedTokenAddressArgs struct {
	Wallet ed25519.PublicKey
	Mint   ed25519.PublicKey
}

// GetAssociatedTokenAddress derives a wallet's associated token account for
// mint. It is owned by the associated token program, not this program.
func GetAssociatedTokenAddress(args *GetAssociatedTokenAddressArgs) (ed25519.PublicKey, uint8, error) {
	return token.GetAssociatedAccount(args.Wallet, args.Mint)
}
