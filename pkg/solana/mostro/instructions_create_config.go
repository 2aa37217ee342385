package mostro

import (
	"crypto/ed25519"

	"github.com/4alls/Mostro-MVP-Program/pkg/solana"
)

var createConfigInstructionDiscriminator = []byte{201, 207, 243, 114, 75, 111, 47, 189}

const (
	CreateConfigInstructionArgsSize = (1 + // percentage_bonding_curve
		1 + // percentage_artist
		1 + // percentage_mostro
		8) // number_of_sol_to_migrate
)

// CreateConfigAccountContract is the role table of create_config.
var CreateConfigAccountContract = mustAccountContract(
	OperationCreateConfig,
	AccountRole{Name: "fee_payer", IsWritable: true, IsSigner: true},
	AccountRole{Name: "config", IsWritable: true},
	AccountRole{Name: "admin", IsSigner: true},
	AccountRole{Name: "system_program"},
)

type CreateConfigInstructionArgs struct {
	PercentageBondingCurve uint8
	PercentageArtist       uint8
	PercentageMostro       uint8
	NumberOfSolToMigrate   uint64
}

type CreateConfigInstructionAccounts struct {
	FeePayer ed25519.PublicKey
	Admin    ed25519.PublicKey
}

func ResolveCreateConfigAccounts(program ed25519.PublicKey, accounts *CreateConfigInstructionAccounts) ([]AccountRef, error) {
	if accounts == nil {
		accounts = &CreateConfigInstructionAccounts{}
	}
	err := requireIdentifiers(
		OperationCreateConfig,
		identifier{"program", program},
		identifier{"fee_payer", accounts.FeePayer},
		identifier{"admin", accounts.Admin},
	)
	if err != nil {
		return nil, err
	}

	config, _, err := GetConfigAddress(&GetConfigAddressArgs{Program: program})
	if err != nil {
		return nil, err
	}

	return CreateConfigAccountContract.resolve(
		accounts.FeePayer,
		config,
		accounts.Admin,
		SYSTEM_PROGRAM_ID,
	), nil
}

func NewCreateConfigRequest(
	program ed25519.PublicKey,
	args *CreateConfigInstructionArgs,
	accounts []AccountRef,
	extra ...solana.AccountMeta,
) (*Request, error) {
	if args == nil {
		return nil, newMissingIdentifierError(OperationCreateConfig, "args")
	}

	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(createConfigInstructionDiscriminator)+CreateConfigInstructionArgsSize)

	putDiscriminator(data, createConfigInstructionDiscriminator, &offset)
	putUint8(data, args.PercentageBondingCurve, &offset)
	putUint8(data, args.PercentageArtist, &offset)
	putUint8(data, args.PercentageMostro, &offset)
	putUint64(data, args.NumberOfSolToMigrate, &offset)

	return newRequest(CreateConfigAccountContract, program, data, accounts, createConfigKeys(program), extra)
}

// NewCreateConfigInstruction resolves the accounts of create_config and builds
// the request in one step.
func NewCreateConfigInstruction(
	program ed25519.PublicKey,
	accounts *CreateConfigInstructionAccounts,
	args *CreateConfigInstructionArgs,
	extra ...solana.AccountMeta,
) (*Request, error) {
	resolved, err := ResolveCreateConfigAccounts(program, accounts)
	if err != nil {
		return nil, err
	}
	return NewCreateConfigRequest(program, args, resolved, extra...)
}

func createConfigKeys(program ed25519.PublicKey) keyDeriver {
	return func(_ []AccountRef) (map[int]ed25519.PublicKey, error) {
		config, _, err := GetConfigAddress(&GetConfigAddressArgs{Program: program})
		if err != nil {
			return nil, err
		}
		return map[int]ed25519.PublicKey{
			1: config,
			3: SYSTEM_PROGRAM_ID,
		}, nil
	}
}
