package mostro

import (
	"crypto/ed25519"

	"github.com/4alls/Mostro-MVP-Program/pkg/solana"
)

var executeProposalInstructionDiscriminator = []byte{186, 60, 116, 133, 108, 128, 111, 28}

var ExecuteProposalAccountContract = mustAccountContract(
	OperationExecuteProposal,
	AccountRole{Name: "fee_payer", IsWritable: true, IsSigner: true},
	AccountRole{Name: "config"},
	AccountRole{Name: "artist", IsWritable: true},
	AccountRole{Name: "proposal", IsWritable: true},
	AccountRole{Name: "artist_authority", IsWritable: true},
	AccountRole{Name: "artist_token_account", IsWritable: true},
	AccountRole{Name: "bonding_curve_vault", IsWritable: true},
	AccountRole{Name: "bonding_curve_token_account", IsWritable: true},
	AccountRole{Name: "token_mint"},
	AccountRole{Name: "source", IsWritable: true},
	AccountRole{Name: "mint"},
	AccountRole{Name: "destination", IsWritable: true},
	AccountRole{Name: "authority", IsSigner: true},
	AccountRole{Name: "token_program"},
)

type ExecuteProposalInstructionArgs struct {
	Name       string
	ProposalID uint64
}

type ExecuteProposalInstructionAccounts struct {
	FeePayer                 ed25519.PublicKey
	ArtistAuthority          ed25519.PublicKey
	ArtistTokenAccount       ed25519.PublicKey
	BondingCurveTokenAccount ed25519.PublicKey
	TokenMint                ed25519.PublicKey
	Source                   ed25519.PublicKey
	Mint                     ed25519.PublicKey
	Destination              ed25519.PublicKey
	Authority                ed25519.PublicKey
}

func ResolveExecuteProposalAccounts(
	program ed25519.PublicKey,
	accounts *ExecuteProposalInstructionAccounts,
	name string,
	proposalID uint64,
) ([]AccountRef, error) {
	if accounts == nil {
		accounts = &ExecuteProposalInstructionAccounts{}
	}
	err := requireIdentifiers(
		OperationExecuteProposal,
		identifier{"program", program},
		identifier{"fee_payer", accounts.FeePayer},
		identifier{"artist_authority", accounts.ArtistAuthority},
		identifier{"artist_token_account", accounts.ArtistTokenAccount},
		identifier{"bonding_curve_token_account", accounts.BondingCurveTokenAccount},
		identifier{"token_mint", accounts.TokenMint},
		identifier{"source", accounts.Source},
		identifier{"mint", accounts.Mint},
		identifier{"destination", accounts.Destination},
		identifier{"authority", accounts.Authority},
	)
	if err != nil {
		return nil, err
	}
	if len(name) == 0 {
		return nil, newMissingIdentifierError(OperationExecuteProposal, "name")
	}

	config, _, err := GetConfigAddress(&GetConfigAddressArgs{Program: program})
	if err != nil {
		return nil, err
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
	vault, _, err := GetVaultAddress(&GetVaultAddressArgs{Program: program, Name: name})
	if err != nil {
		return nil, err
	}

	return ExecuteProposalAccountContract.resolve(
		accounts.FeePayer,
		config,
		artist,
		proposal,
		accounts.ArtistAuthority,
		accounts.ArtistTokenAccount,
		vault,
		accounts.BondingCurveTokenAccount,
		accounts.TokenMint,
		accounts.Source,
		accounts.Mint,
		accounts.Destination,
		accounts.Authority,
		SPL_TOKEN_PROGRAM_ID,
	), nil
}

func NewExecuteProposalRequest(
	program ed25519.PublicKey,
	args *ExecuteProposalInstructionArgs,
	accounts []AccountRef,
	extra ...solana.AccountMeta,
) (*Request, error) {
	if args == nil {
		return nil, newMissingIdentifierError(OperationExecuteProposal, "args")
	}

	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(executeProposalInstructionDiscriminator)+
		stringSize(args.Name)+
		8) // proposal_id

	putDiscriminator(data, executeProposalInstructionDiscriminator, &offset)
	putString(data, args.Name, &offset)
	putUint64(data, args.ProposalID, &offset)

	return newRequest(ExecuteProposalAccountContract, program, data, accounts, executeProposalKeys(program, args.Name, args.ProposalID), extra)
}

func NewExecuteProposalInstruction(
	program ed25519.PublicKey,
	accounts *ExecuteProposalInstructionAccounts,
	args *ExecuteProposalInstructionArgs,
	extra ...solana.AccountMeta,
) (*Request, error) {
	if args == nil {
		return nil, newMissingIdentifierError(OperationExecuteProposal, "args")
	}

	resolved, err := ResolveExecuteProposalAccounts(program, accounts, args.Name, args.ProposalID)
	if err != nil {
		return nil, err
	}
	return NewExecuteProposalRequest(program, args, resolved, extra...)
}

func executeProposalKeys(program ed25519.PublicKey, name string, proposalID uint64) keyDeriver {
	return func(_ []AccountRef) (map[int]ed25519.PublicKey, error) {
		config, _, err := GetConfigAddress(&GetConfigAddressArgs{Program: program})
		if err != nil {
			return nil, err
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
		vault, _, err := GetVaultAddress(&GetVaultAddressArgs{Program: program, Name: name})
		if err != nil {
			return nil, err
		}

		return map[int]ed25519.PublicKey{
			1:  config,
			2:  artist,
			3:  proposal,
			6:  vault,
			13: SPL_TOKEN_PROGRAM_ID,
		}, nil
	}
}
