package mostro

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/mr-tron/base58"
)

const (
	proposalAccountFixedTailSize = (8 + // number_of_tokens
		8 + // start_date
		8 + // end_date
		1 + // status
		8 + // yes_votes
		8 + // no_votes
		8 + // total_voting_power
		1) // bump

	MinProposalAccountSize = (8 + // discriminator
		32 + // artist
		8 + // proposal_id
		4 + // title length
		proposalAccountFixedTailSize)
)

var ProposalAccountDiscriminator = []byte{26, 94, 189, 187, 116, 136, 53, 33}

type ProposalAccount struct {
	Artist           ed25519.PublicKey
	ProposalID       uint64
	Title            string
	NumberOfTokens   uint64
	StartDate        int64
	EndDate          int64
	Status           uint8
	YesVotes         uint64
	NoVotes          uint64
	TotalVotingPower uint64
	Bump             uint8
}

func (obj *ProposalAccount) Unmarshal(data []byte) error {
	if len(data) < MinProposalAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, ProposalAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getKey(data, &obj.Artist, &offset)
	getUint64(data, &obj.ProposalID, &offset)
	if err := getString(data, &obj.Title, &offset); err != nil {
		return err
	}
	if len(data)-offset < proposalAccountFixedTailSize {
		return ErrInvalidAccountData
	}

	getUint64(data, &obj.NumberOfTokens, &offset)
	getInt64(data, &obj.StartDate, &offset)
	getInt64(data, &obj.EndDate, &offset)
	getUint8(data, &obj.Status, &offset)
	getUint64(data, &obj.YesVotes, &offset)
	getUint64(data, &obj.NoVotes, &offset)
	getUint64(data, &obj.TotalVotingPower, &offset)
	getUint8(data, &obj.Bump, &offset)

	return nil
}

func (obj *ProposalAccount) String() string {
	return fmt.Sprintf(
		"Proposal{artist=%s,proposal_id=%d,title=%s,number_of_tokens=%d,start_date=%s,end_date=%s,status=%d,yes_votes=%d,no_votes=%d,total_voting_power=%d,bump=%d}",
		base58.Encode(obj.Artist),
		obj.ProposalID,
		obj.Title,
		obj.NumberOfTokens,
		time.Unix(obj.StartDate, 0).UTC().String(),
		time.Unix(obj.EndDate, 0).UTC().String(),
		obj.Status,
		obj.YesVotes,
		obj.NoVotes,
		obj.TotalVotingPower,
		obj.Bump,
	)
}
