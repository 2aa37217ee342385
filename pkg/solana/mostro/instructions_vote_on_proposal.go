package mostro

import (
	"crypto/ed25519"

	"github.com/4alls/Mostro-MVP-Program/pkg/solana"
)

var voteOnProposalInstructionDiscriminator = []byte{188, 239, 13, 88, 119, 199, 251, 119}

var VoteOnProposalAccountContract = mustAccountContract(
	OperationVoteOnProposal,
	AccountRole{Name: "fee_payer", IsWritable: true, IsSigner: true},
	AccountRole{Name: "proposal", IsWritable: true},
	AccountRole{Name: "vote", IsWritable: true},
	AccountRole{Name: "voter", IsSigner: true},
	AccountRole{Name: "voter_token_account"},
	AccountRole{Name: "token_mint"},
	AccountRole{Name: "system_program"},
)

type VoteOnProposalInstructionArgs struct {
	Name       string
	ProposalID uint64
	VoteChoice bool
}

type VoteOnProposalInstructionAccounts struct {
	FeePayer          ed25519.PublicKey
	Voter             ed25519.PublicKey
	VoterTokenAccount ed25519.PublicKey
	TokenMint         ed25519.PublicKey
}

// ResolveVoteOnProposalAccounts resolves the vote record from the derived
// proposal address and the voter.
func ResolveVoteOnProposalAccounts(
	program ed25519.PublicKey,
	accounts *VoteOnProposalInstructionAccounts,
	name string,
	proposalID uint64,
) ([]AccountRef, error) {
	if accounts == nil {
		accounts = &VoteOnProposalInstructionAccounts{}
	}
	err := requireIdentifiers(
		OperationVoteOnProposal,
		identifier{"program", program},
		identifier{"fee_payer", accounts.FeePayer},
		identifier{"voter", accounts.Voter},
		identifier{"voter_token_account", accounts.VoterTokenAccount},
		identifier{"token_mint", accounts.TokenMint},
	)
	if err != nil {
		return nil, err
	}
	if len(name) == 0 {
		return nil, newMissingIdentifierError(OperationVoteOnProposal, "name")
	}

	proposal, _, err := GetProposalAddress(&GetProposalAddressArgs{
		Program:    program,
		Name:       name,
		ProposalID: proposalID,
	})
	if err != nil {
		return nil, err
	}
	vote, _, err := GetVoteAddress(&GetVoteAddressArgs{
		Program:  program,
		Proposal: proposal,
		Voter:    accounts.Voter,
	})
	if err != nil {
		return nil, err
	}

	return VoteOnProposalAccountContract.resolve(
		accounts.FeePayer,
		proposal,
		vote,
		accounts.Voter,
		accounts.VoterTokenAccount,
		accounts.TokenMint,
		SYSTEM_PROGRAM_ID,
	), nil
}

func NewVoteOnProposalRequest(
	program ed25519.PublicKey,
	args *VoteOnProposalInstructionArgs,
	accounts []AccountRef,
	extra ...solana.AccountMeta,
) (*Request, error) {
	if args == nil {
		return nil, newMissingIdentifierError(OperationVoteOnProposal, "args")
	}

	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(voteOnProposalInstructionDiscriminator)+
		stringSize(args.Name)+
		8+ // proposal_id
		1) // vote_choice

	putDiscriminator(data, voteOnProposalInstructionDiscriminator, &offset)
	putString(data, args.Name, &offset)
	putUint64(data, args.ProposalID, &offset)
	putBool(data, args.VoteChoice, &offset)

	return newRequest(VoteOnProposalAccountContract, program, data, accounts, voteOnProposalKeys(program, args.Name, args.ProposalID), extra)
}

func NewVoteOnProposalInstruction(
	program ed25519.PublicKey,
	accounts *VoteOnProposalInstructionAccounts,
	args *VoteOnProposalInstructionArgs,
	extra ...solana.AccountMeta,
) (*Request, error) {
	if args == nil {
		return nil, newMissingIdentifierError(OperationVoteOnProposal, "args")
	}

	resolved, err := ResolveVoteOnProposalAccounts(program, accounts, args.Name, args.ProposalID)
	if err != nil {
		return nil, err
	}
	return NewVoteOnProposalRequest(program, args, resolved, extra...)
}

// voteOnProposalKeys derives the vote record from the voter position.
func voteOnProposalKeys(program ed25519.PublicKey, name string, proposalID uint64) keyDeriver {
	return func(accounts []AccountRef) (map[int]ed25519.PublicKey, error) {
		proposal, _, err := GetProposalAddress(&GetProposalAddressArgs{
			Program:    program,
			Name:       name,
			ProposalID: proposalID,
		})
		if err != nil {
			return nil, err
		}
		vote, _, err := GetVoteAddress(&GetVoteAddressArgs{
			Program:  program,
			Proposal: proposal,
			Voter:    accounts[3].PublicKey,
		})
		if err != nil {
			return nil, err
		}

		return map[int]ed25519.PublicKey{
			1: proposal,
			2: vote,
			6: SYSTEM_PROGRAM_ID,
		}, nil
	}
}
