package mostro

import (
	"crypto/ed25519"

	"github.com/4alls/Mostro-MVP-Program/pkg/solana"
)

var createArtistInstructionDiscriminator = []byte{19, 246, 64, 224, 207, 250, 83, 11}

// CreateArtistAccountContract is the role table of create_artist. The SPL
// token program is passed twice, once for the mint initialization and once
// for the associated token account creation.
var CreateArtistAccountContract = mustAccountContract(
	OperationCreateArtist,
	AccountRole{Name: "fee_payer", IsWritable: true, IsSigner: true},
	AccountRole{Name: "config"},
	AccountRole{Name: "artist", IsWritable: true},
	AccountRole{Name: "artist_authority", IsSigner: true},
	AccountRole{Name: "token_mint", IsWritable: true, IsSigner: true},
	AccountRole{Name: "bonding_curve_vault"},
	AccountRole{Name: "bonding_curve_token_account", IsWritable: true, IsSigner: true},
	AccountRole{Name: "artist_token_account", IsWritable: true, IsSigner: true},
	AccountRole{Name: "mostro_token_account", IsWritable: true, IsSigner: true},
	AccountRole{Name: "system_program"},
	AccountRole{Name: "mint", IsWritable: true},
	AccountRole{Name: "funding", IsWritable: true, IsSigner: true},
	AccountRole{Name: "assoc_token_account", IsWritable: true},
	AccountRole{Name: "wallet"},
	AccountRole{Name: "spl_token_program"},
	AccountRole{Name: "owner", IsSigner: true},
	AccountRole{Name: "token_program"},
	AccountRole{Name: "associated_token_program"},
)

type CreateArtistInstructionArgs struct {
	Name        string
	Description string
}

type CreateArtistInstructionAccounts struct {
	FeePayer                 ed25519.PublicKey
	ArtistAuthority          ed25519.PublicKey
	TokenMint                ed25519.PublicKey
	BondingCurveTokenAccount ed25519.PublicKey
	ArtistTokenAccount       ed25519.PublicKey
	MostroTokenAccount       ed25519.PublicKey
	Mint                     ed25519.PublicKey
	Funding                  ed25519.PublicKey
	Wallet                   ed25519.PublicKey
	Owner                    ed25519.PublicKey
}

func ResolveCreateArtistAccounts(program ed25519.PublicKey, accounts *CreateArtistInstructionAccounts, name string) ([]AccountRef, error) {
	if accounts == nil {
		accounts = &CreateArtistInstructionAccounts{}
	}
	err := requireIdentifiers(
		OperationCreateArtist,
		identifier{"program", program},
		identifier{"fee_payer", accounts.FeePayer},
		identifier{"artist_authority", accounts.ArtistAuthority},
		identifier{"token_mint", accounts.TokenMint},
		identifier{"bonding_curve_token_account", accounts.BondingCurveTokenAccount},
		identifier{"artist_token_account", accounts.ArtistTokenAccount},
		identifier{"mostro_token_account", accounts.MostroTokenAccount},
		identifier{"mint", accounts.Mint},
		identifier{"funding", accounts.Funding},
		identifier{"wallet", accounts.Wallet},
		identifier{"owner", accounts.Owner},
	)
	if err != nil {
		return nil, err
	}
	if len(name) == 0 {
		return nil, newMissingIdentifierError(OperationCreateArtist, "name")
	}

	config, _, err := GetConfigAddress(&GetConfigAddressArgs{Program: program})
	if err != nil {
		return nil, err
	}
	artist, _, err := GetArtistAddress(&GetArtistAddressArgs{Program: program, Name: name})
	if err != nil {
		return nil, err
	}
	vault, _, err := GetVaultAddress(&GetVaultAddressArgs{Program: program, Name: name})
	if err != nil {
		return nil, err
	}
	assocTokenAccount, _, err := GetAssociatedTokenAddress(&GetAssociatedTokenAddressArgs{
		Wallet: accounts.Wallet,
		Mint:   accounts.Mint,
	})
	if err != nil {
		return nil, err
	}

	return CreateArtistAccountContract.resolve(
		accounts.FeePayer,
		config,
		artist,
		accounts.ArtistAuthority,
		accounts.TokenMint,
		vault,
		accounts.BondingCurveTokenAccount,
		accounts.ArtistTokenAccount,
		accounts.MostroTokenAccount,
		SYSTEM_PROGRAM_ID,
		accounts.Mint,
		accounts.Funding,
		assocTokenAccount,
		accounts.Wallet,
		SPL_TOKEN_PROGRAM_ID,
		accounts.Owner,
		SPL_TOKEN_PROGRAM_ID,
		ASSOCIATED_TOKEN_PROGRAM_ID,
	), nil
}

func NewCreateArtistRequest(
	program ed25519.PublicKey,
	args *CreateArtistInstructionArgs,
	accounts []AccountRef,
	extra ...solana.AccountMeta,
) (*Request, error) {
	if args == nil {
		return nil, newMissingIdentifierError(OperationCreateArtist, "args")
	}

	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(createArtistInstructionDiscriminator)+
		stringSize(args.Name)+
		stringSize(args.Description))

	putDiscriminator(data, createArtistInstructionDiscriminator, &offset)
	putString(data, args.Name, &offset)
	putString(data, args.Description, &offset)

	return newRequest(CreateArtistAccountContract, program, data, accounts, createArtistKeys(program, args.Name), extra)
}

func NewCreateArtistInstruction(
	program ed25519.PublicKey,
	accounts *CreateArtistInstructionAccounts,
	args *CreateArtistInstructionArgs,
	extra ...solana.AccountMeta,
) (*Request, error) {
	if args == nil {
		return nil, newMissingIdentifierError(OperationCreateArtist, "args")
	}

	resolved, err := ResolveCreateArtistAccounts(program, accounts, args.Name)
	if err != nil {
		return nil, err
	}
	return NewCreateArtistRequest(program, args, resolved, extra...)
}

// createArtistKeys also derives the associated token account from the wallet
// and mint positions.
func createArtistKeys(program ed25519.PublicKey, name string) keyDeriver {
	return func(accounts []AccountRef) (map[int]ed25519.PublicKey, error) {
		config, _, err := GetConfigAddress(&GetConfigAddressArgs{Program: program})
		if err != nil {
			return nil, err
		}
		artist, _, err := GetArtistAddress(&GetArtistAddressArgs{Program: program, Name: name})
		if err != nil {
			return nil, err
		}
		vault, _, err := GetVaultAddress(&GetVaultAddressArgs{Program: program, Name: name})
		if err != nil {
			return nil, err
		}
		assocTokenAccount, _, err := GetAssociatedTokenAddress(&GetAssociatedTokenAddressArgs{
			Wallet: accounts[13].PublicKey,
			Mint:   accounts[10].PublicKey,
		})
		if err != nil {
			return nil, err
		}

		return map[int]ed25519.PublicKey{
			1:  config,
			2:  artist,
			5:  vault,
			9:  SYSTEM_PROGRAM_ID,
			12: assocTokenAccount,
			14: SPL_TOKEN_PROGRAM_ID,
			16: SPL_TOKEN_PROGRAM_ID,
			17: ASSOCIATED_TOKEN_PROGRAM_ID,
		}, nil
	}
}
