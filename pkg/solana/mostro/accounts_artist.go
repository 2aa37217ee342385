package mostro

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	// Size of the fields trailing the variable length name and description.
	artistAccountFixedTailSize = (32 + // token_mint
		32 + // bonding_curve_vault
		32 + // artist_vault
		8 + // total_supply
		8 + // tokens_sold
		8 + // sol_raised
		8 + // proposal_count
		1) // bump

	MinArtistAccountSize = (8 + // discriminator
		4 + // name length
		4 + // description length
		artistAccountFixedTailSize)
)

var ArtistAccountDiscriminator = []byte{142, 136, 31, 244, 208, 44, 128, 145}

type ArtistAccount struct {
	Name              string
	Description       string
	TokenMint         ed25519.PublicKey
	BondingCurveVault ed25519.PublicKey
	ArtistVault       ed25519.PublicKey
	TotalSupply       uint64
	TokensSold        uint64
	SolRaised         uint64
	ProposalCount     uint64
	Bump              uint8
}

func (obj *ArtistAccount) Unmarshal(data []byte) error {
	if len(data) < MinArtistAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, ArtistAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	if err := getString(data, &obj.Name, &offset); err != nil {
		return err
	}
	if err := getString(data, &obj.Description, &offset); err != nil {
		return err
	}
	if len(data)-offset < artistAccountFixedTailSize {
		return ErrInvalidAccountData
	}

	getKey(data, &obj.TokenMint, &offset)
	getKey(data, &obj.BondingCurveVault, &offset)
	getKey(data, &obj.ArtistVault, &offset)
	getUint64(data, &obj.TotalSupply, &offset)
	getUint64(data, &obj.TokensSold, &offset)
	getUint64(data, &obj.SolRaised, &offset)
	getUint64(data, &obj.ProposalCount, &offset)
	getUint8(data, &obj.Bump, &offset)

	return nil
}

func (obj *ArtistAccount) String() string {
	return fmt.Sprintf(
		"Artist{name=%s,description=%s,token_mint=%s,bonding_curve_vault=%s,artist_vault=%s,total_supply=%d,tokens_sold=%d,sol_raised=%d,proposal_count=%d,bump=%d}",
		obj.Name,
		obj.Description,
		base58.Encode(obj.TokenMint),
		base58.Encode(obj.BondingCurveVault),
		base58.Encode(obj.ArtistVault),
		obj.TotalSupply,
		obj.TokensSold,
		obj.SolRaised,
		obj.ProposalCount,
		obj.Bump,
	)
}
