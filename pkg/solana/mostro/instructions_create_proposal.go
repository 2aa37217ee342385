package mostro

import (
	"crypto/ed25519"

	"github.com/4alls/Mostro-MVP-Program/pkg/solana"
)

var createProposalInstructionDiscriminator = []byte{132, 116, 68, 174, 216, 160, 198, 22}

var CreateProposalAccountContract = mustAccountContract(
	OperationCreateProposal,
	AccountRole{Name: "fee_payer", IsWritable: true, IsSigner: true},
	AccountRole{Name: "artist", IsWritable: true},
	AccountRole{Name: "proposal", IsWritable: true},
	AccountRole{Name: "artist_authority", IsSigner: true},
	AccountRole{Name: "token_mint"},
	AccountRole{Name: "system_program"},
)

type CreateProposalInstructionArgs struct {
	Name           string
	ProposalID     uint64
	Title          string
	NumberOfTokens uint64
}

type CreateProposalInstructionAccounts struct {
	FeePayer        ed25519.PublicKey
	ArtistAuthority ed25519.PublicKey
	TokenMint       ed25519.PublicKey
}

func ResolveCreateProposalAccounts(
	program ed25519.PublicKey,
	accounts *CreateProposalInstructionAccounts,
	name string,
	proposalID uint64,
) ([]AccountRef, error) {
	if accounts == nil {
		accounts = &CreateProposalInstructionAccounts{}
	}
	err := requireIdentifiers(
		OperationCreateProposal,
		identifier{"program", program},
		identifier{"fee_payer", accounts.FeePayer},
		identifier{"artist_authority", accounts.ArtistAuthority},
		identifier{"token_mint", accounts.TokenMint},
	)
	if err != nil {
		return nil, err
	}
	if len(name) == 0 {
		return nil, newMissingIdentifierError(OperationCreateProposal, "name")
	}

	artist, _, err := GetArtistAddress(&GetArtistAddressArgs{Program: program, Name: name})
	if err != nil {
		return nil, err
	}
	proposal, _, err := GetProposalAddress(&GetProposalAddressArgs{
		Program:    program,
		Name:       name,
		ProposalID: proposalID,
	})
	if err != nil {
		return nil, err
	}

	return CreateProposalAccountContract.resolve(
		accounts.FeePayer,
		artist,
		proposal,
		accounts.ArtistAuthority,
		accounts.TokenMint,
		SYSTEM_PROGRAM_ID,
	), nil
}

func NewCreateProposalRequest(
	program ed25519.PublicKey,
	args *CreateProposalInstructionArgs,
	accounts []AccountRef,
	extra ...solana.AccountMeta,
) (*Request, error) {
	if args == nil {
		return nil, newMissingIdentifierError(OperationCreateProposal, "args")
	}

	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(createProposalInstructionDiscriminator)+
		stringSize(args.Name)+
		8+ // proposal_id
		stringSize(args.Title)+
		8) // number_of_tokens

	putDiscriminator(data, createProposalInstructionDiscriminator, &offset)
	putString(data, args.Name, &offset)
	putUint64(data, args.ProposalID, &offset)
	putString(data, args.Title, &offset)
	putUint64(data, args.NumberOfTokens, &offset)

	return newRequest(CreateProposalAccountContract, program, data, accounts, createProposalKeys(program, args.Name, args.ProposalID), extra)
}

func NewCreateProposalInstruction(
	program ed25519.PublicKey,
	accounts *CreateProposalInstructionAccounts,
	args *CreateProposalInstructionArgs,
	extra ...solana.AccountMeta,
) (*Request, error) {
	if args == nil {
		return nil, newMissingIdentifierError(OperationCreateProposal, "args")
	}

	resolved, err := ResolveCreateProposalAccounts(program, accounts, args.Name, args.ProposalID)
	if err != nil {
		return nil, err
	}
	return NewCreateProposalRequest(program, args, resolved, extra...)
}

func createProposalKeys(program ed25519.PublicKey, name string, proposalID uint64) keyDeriver {
	return func(_ []AccountRef) (map[int]ed25519.PublicKey, error) {
		artist, _, err := GetArtistAddress(&GetArtistAddressArgs{Program: program, Name: name})
		if err != nil {
			return nil, err
		}
		proposal, _, err := GetProposalAddress(&GetProposalAddressArgs{
			Program:    program,
			Name:       name,
			ProposalID: proposalID,
		})
		if err != nil {
			return nil, err
		}

		return map[int]ed25519.PublicKey{
			1: artist,
			2: proposal,
			5: SYSTEM_PROGRAM_ID,
		}, nil
	}
}
