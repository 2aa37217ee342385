package mostro

import (
	"crypto/ed25519"

	"github.com/4alls/Mostro-MVP-Program/pkg/solana"
)

var buyTokenInstructionDiscriminator = []byte{138, 127, 14, 91, 38, 87, 115, 105}

var BuyTokenAccountContract = mustAccountContract(
	OperationBuyToken,
	AccountRole{Name: "fee_payer", IsWritable: true, IsSigner: true},
	AccountRole{Name: "config"},
	AccountRole{Name: "artist", IsWritable: true},
	AccountRole{Name: "buyer", IsWritable: true, IsSigner: true},
	AccountRole{Name: "buyer_token_account", IsWritable: true, IsSigner: true},
	AccountRole{Name: "bonding_curve_vault"},
	AccountRole{Name: "bonding_curve_token_account", IsWritable: true},
	AccountRole{Name: "token_mint"},
	AccountRole{Name: "system_program"},
	AccountRole{Name: "source", IsWritable: true},
	AccountRole{Name: "mint"},
	AccountRole{Name: "destination", IsWritable: true},
	AccountRole{Name: "authority", IsSigner: true},
	AccountRole{Name: "token_program"},
)

type BuyTokenInstructionArgs struct {
	Name      string
	SolAmount uint64
}

type BuyTokenInstructionAccounts struct {
	FeePayer                 ed25519.PublicKey
	Buyer                    ed25519.PublicKey
	BuyerTokenAccount        ed25519.PublicKey
	BondingCurveTokenAccount ed25519.PublicKey
	TokenMint                ed25519.PublicKey
	Source                   ed25519.PublicKey
	Mint                     ed25519.PublicKey
	Destination              ed25519.PublicKey
	Authority                ed25519.PublicKey
}

func ResolveBuyTokenAccounts(program ed25519.PublicKey, accounts *BuyTokenInstructionAccounts, name string) ([]AccountRef, error) {
	if accounts == nil {
		accounts = &BuyTokenInstructionAccounts{}
	}
	err := requireIdentifiers(
		OperationBuyToken,
		identifier{"program", program},
		identifier{"fee_payer", accounts.FeePayer},
		identifier{"buyer", accounts.Buyer},
		identifier{"buyer_token_account", accounts.BuyerTokenAccount},
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
		return nil, newMissingIdentifierError(OperationBuyToken, "name")
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

	return BuyTokenAccountContract.resolve(
		accounts.FeePayer,
		config,
		artist,
		accounts.Buyer,
		accounts.BuyerTokenAccount,
		vault,
		accounts.BondingCurveTokenAccount,
		accounts.TokenMint,
		SYSTEM_PROGRAM_ID,
		accounts.Source,
		accounts.Mint,
		accounts.Destination,
		accounts.Authority,
		SPL_TOKEN_PROGRAM_ID,
	), nil
}

func NewBuyTokenRequest(
	program ed25519.PublicKey,
	args *BuyTokenInstructionArgs,
	accounts []AccountRef,
	extra ...solana.AccountMeta,
) (*Request, error) {
	if args == nil {
		return nil, newMissingIdentifierError(OperationBuyToken, "args")
	}

	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(buyTokenInstructionDiscriminator)+
		stringSize(args.Name)+
		8) // sol_amount

	putDiscriminator(data, buyTokenInstructionDiscriminator, &offset)
	putString(data, args.Name, &offset)
	putUint64(data, args.SolAmount, &offset)

	return newRequest(BuyTokenAccountContract, program, data, accounts, buyTokenKeys(program, args.Name), extra)
}

func NewBuyTokenInstruction(
	program ed25519.PublicKey,
	accounts *BuyTokenInstructionAccounts,
	args *BuyTokenInstructionArgs,
	extra ...solana.AccountMeta,
) (*Request, error) {
	if args == nil {
		return nil, newMissingIdentifierError(OperationBuyToken, "args")
	}

	resolved, err := ResolveBuyTokenAccounts(program, accounts, args.Name)
	if err != nil {
		return nil, err
	}
	return NewBuyTokenRequest(program, args, resolved, extra...)
}

func buyTokenKeys(program ed25519.PublicKey, name string) keyDeriver {
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
			8:  SYSTEM_PROGRAM_ID,
			13: SPL_TOKEN_PROGRAM_ID,
		}, nil
	}
}
