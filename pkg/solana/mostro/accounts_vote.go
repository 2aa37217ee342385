package mostro

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	VoteAccountSize = (8 + // discriminator
		32 + // proposal
		32 + // voter
		1 + // vote_choice
		8 + // voting_power
		1) // bump
)

var VoteAccountDiscriminator = []byte{96, 91, 104, 57, 145, 35, 172, 155}

type VoteAccount struct {
	Proposal    ed25519.PublicKey
	Voter       ed25519.PublicKey
	VoteChoice  bool
	VotingPower uint64
	Bump        uint8
}

func (obj *VoteAccount) Unmarshal(data []byte) error {
	if len(data) < VoteAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, VoteAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getKey(data, &obj.Proposal, &offset)
	getKey(data, &obj.Voter, &offset)
	if err := getBool(data, &obj.VoteChoice, &offset); err != nil {
		return err
	}
	getUint64(data, &obj.VotingPower, &offset)
	getUint8(data, &obj.Bump, &offset)

	return nil
}

func (obj *VoteAccount) String() string {
	return fmt.Sprintf(
		"Vote{proposal=%s,voter=%s,vote_choice=%t,voting_power=%d,bump=%d}",
		base58.Encode(obj.Proposal),
		base58.Encode(obj.Voter),
		obj.VoteChoice,
		obj.VotingPower,
		obj.Bump,
	)
}
