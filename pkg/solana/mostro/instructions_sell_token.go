package mostro

import (
	"crypto/ed25519"

	"github.com/4alls/Mostro-MVP-Program/pkg/solana"
)

var sellTokenInstructionDiscriminator = []byte{109, 61, 40, 187, 230, 176, 135, 174}

var SellTokenAccountContract = mustAccountContract(
	OperationSellToken,
	AccountRole{Name: "fee_payer", IsWritable: true, IsSigner: true},
	AccountRole{Name: "config"},
	AccountRole{Name: "artist", IsWritable: true},
	AccountRole{Name: "seller", IsWritable: true, IsSigner: true},
	AccountRole{Name: "seller_token_account", IsWritable: true},
	AccountRole{Name: "bonding_curve_vault"},
	AccountRole{Name: "bonding_curve_token_account", IsWritable: true},
	AccountRole{Name: "token_mint"},
	AccountRole{Name: "source", IsWritable: true},
	AccountRole{Name: "mint"},
	AccountRole{Name: "destination", IsWritable: true},
	AccountRole{Name: "authority", IsSigner: true},
	AccountRole{Name: "token_program"},
)

type SellTokenInstructionArgs struct {
	Name        string
	TokenAmount uint64
}

type SellTokenInstructionAccounts struct {
	FeePayer                 ed25519.PublicKey
	Seller                   ed25519.PublicKey
	SellerTokenAccount       ed25519.PublicKey
	BondingCurveTokenAccount ed25519.PublicKey
	TokenMint                ed25519.PublicKey
	Source                   ed25519.PublicKey
	Mint                     ed25519.PublicKey
	Destination              ed25519.PublicKey
	Authority                ed25519.PublicKey
}

func ResolveSellTokenAccounts(program ed25519.PublicKey, accounts *SellTokenInstructionAccounts, name string) ([]AccountRef, error) {
	if accounts == nil {
		accounts = &SellTokenInstructionAccounts{}
	}
	err := requireIdentifiers(
		OperationSellToken,
		identifier{"program", program},
		identifier{"fee_payer", accounts.FeePayer},
		identifier{"seller", accounts.Seller},
		identifier{"seller_token_account", accounts.SellerTokenAccount},
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
		return nil, newMissingIdentifierError(OperationSellToken, "name")
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

	return SellTokenAccountContract.resolve(
		accounts.FeePayer,
		config,
		artist,
		accounts.Seller,
		accounts.SellerTokenAccount,
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

func NewSellTokenRequest(
	program ed25519.PublicKey,
	args *SellTokenInstructionArgs,
	accounts []AccountRef,
	extra ...solana.AccountMeta,
) (*Request, error) {
	if args == nil {
		return nil, newMissingIdentifierError(OperationSellToken, "args")
	}

	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(sellTokenInstructionDiscriminator)+
		stringSize(args.Name)+
		8) // token_amount

	putDiscriminator(data, sellTokenInstructionDiscriminator, &offset)
	putString(data, args.Name, &offset)
	putUint64(data, args.TokenAmount, &offset)

	return newRequest(SellTokenAccountContract, program, data, accounts, sellTokenKeys(program, args.Name), extra)
}

func NewSellTokenInstruction(
	program ed25519.PublicKey,
	accounts *SellTokenInstructionAccounts,
	args *SellTokenInstructionArgs,
	extra ...solana.AccountMeta,
) (*Request, error) {
	if args == nil {
		return nil, newMissingIdentifierError(OperationSellToken, "args")
	}

	resolved, err := ResolveSellTokenAccounts(program, accounts, args.Name)
	if err != nil {
		return nil, err
	}
	return NewSellTokenRequest(program, args, resolved, extra...)
}

func sellTokenKeys(program ed25519.PublicKey, name string) keyDeriver {
	return func(_ []AccountRef) (map[int]ed25519.PublicKey, error) {
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

		return map[int]ed25519.PublicKey{
			1:  config,
			2:  artist,
			5:  vault,
			12: SPL_TOKEN_PROGRAM_ID,
		}, nil
	}
}
