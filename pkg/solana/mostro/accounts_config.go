package mostro

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	ConfigAccountSize = (8 + // discriminator
		1 + // percentage_bonding_curve
		1 + // percentage_artist
		1 + // percentage_mostro
		32 + // admin
		8 + // number_of_sol_to_migrate
		1) // bump
)

var ConfigAccountDiscriminator = []byte{155, 12, 170, 224, 30, 250, 204, 130}

type ConfigAccount struct {
	PercentageBondingCurve uint8
	PercentageArtist       uint8
	PercentageMostro       uint8
	Admin                  ed25519.PublicKey
	NumberOfSolToMigrate   uint64
	Bump                   uint8
}

func (obj *ConfigAccount) Unmarshal(data []byte) error {
	if len(data) < ConfigAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, ConfigAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getUint8(data, &obj.PercentageBondingCurve, &offset)
	getUint8(data, &obj.PercentageArtist, &offset)
	getUint8(data, &obj.PercentageMostro, &offset)
	getKey(data, &obj.Admin, &offset)
	getUint64(data, &obj.NumberOfSolToMigrate, &offset)
	getUint8(data, &obj.Bump, &offset)

	return nil
}

func (obj *ConfigAccount) String() string {
	return fmt.Sprintf(
		"Config{percentage_bonding_curve=%d,percentage_artist=%d,percentage_mostro=%d,admin=%s,number_of_sol_to_migrate=%d,bump=%d}",
		obj.PercentageBondingCurve,
		obj.PercentageArtist,
		obj.PercentageMostro,
		base58.Encode(obj.Admin),
		obj.NumberOfSolToMigrate,
		obj.Bump,
	)
}
