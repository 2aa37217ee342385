package mostro

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4alls/Mostro-MVP-Program/pkg/testutil"
)

type borshWriter struct {
	bytes.Buffer
}

func (w *borshWriter) u8(v uint8) *borshWriter {
	w.WriteByte(v)
	return w
}

func (w *borshWriter) u64(v uint64) *borshWriter {
	w.Write(binary.LittleEndian.AppendUint64(nil, v))
	return w
}

func (w *borshWriter) key(v ed25519.PublicKey) *borshWriter {
	w.Write(v)
	return w
}

func (w *borshWriter) str(v string) *borshWriter {
	w.Write(binary.LittleEndian.AppendUint32(nil, uint32(len(v))))
	w.WriteString(v)
	return w
}

func newBorshWriter(discriminator []byte) *borshWriter {
	w := &borshWriter{}
	w.Write(discriminator)
	return w
}

func TestAccountDiscriminators(t *testing.T) {
	for name, discriminator := range map[string][]byte{
		"Config":   ConfigAccountDiscriminator,
		"Artist":   ArtistAccountDiscriminator,
		"Proposal": ProposalAccountDiscriminator,
		"Vote":     VoteAccountDiscriminator,
	} {
		h := sha256Sum("account:" + name)
		assert.Equal(t, h[:8], discriminator, name)
	}
}

func TestConfigAccount_Unmarshal(t *testing.T) {
	admin := testutil.GenerateSolanaKeys(t, 1)[0]

	data := newBorshWriter(ConfigAccountDiscriminator).
		u8(87).u8(10).u8(3).
		key(admin).
		u64(85_000_000_000).
		u8(254).
		Bytes()
	require.Len(t, data, ConfigAccountSize)

	var actual ConfigAccount
	require.NoError(t, actual.Unmarshal(data))
	assert.Equal(t, ConfigAccount{
		PercentageBondingCurve: 87,
		PercentageArtist:       10,
		PercentageMostro:       3,
		Admin:                  admin,
		NumberOfSolToMigrate:   85_000_000_000,
		Bump:                   254,
	}, actual)
	assert.Contains(t, actual.String(), "percentage_bonding_curve=87")

	assert.Equal(t, ErrInvalidAccountData, actual.Unmarshal(data[:len(data)-1]))

	wrong := append([]byte{}, data...)
	copy(wrong, ArtistAccountDiscriminator)
	assert.Equal(t, ErrInvalidAccountData, actual.Unmarshal(wrong))
}

func TestArtistAccount_Unmarshal(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 3)

	data := newBorshWriter(ArtistAccountDiscriminator).
		str("alice").
		str("indie folk").
		key(keys[0]).key(keys[1]).key(keys[2]).
		u64(1_000_000_000).u64(1_234).u64(5_000_000).u64(2).
		u8(255).
		Bytes()

	var actual ArtistAccount
	require.NoError(t, actual.Unmarshal(data))
	assert.Equal(t, ArtistAccount{
		Name:              "alice",
		Description:       "indie folk",
		TokenMint:         keys[0],
		BondingCurveVault: keys[1],
		ArtistVault:       keys[2],
		TotalSupply:       1_000_000_000,
		TokensSold:        1_234,
		SolRaised:         5_000_000,
		ProposalCount:     2,
		Bump:              255,
	}, actual)
	assert.Contains(t, actual.String(), "name=alice")

	// Trailing allocation padding is ignored.
	padded := append(append([]byte{}, data...), make([]byte, 64)...)
	require.NoError(t, actual.Unmarshal(padded))
	assert.Equal(t, "indie folk", actual.Description)

	assert.Equal(t, ErrInvalidAccountData, actual.Unmarshal(data[:len(data)-1]))

	// A string length running past the end of the data.
	overflow := newBorshWriter(ArtistAccountDiscriminator).u64(^uint64(0)).Bytes()
	overflow = append(overflow, make([]byte, MinArtistAccountSize)...)
	assert.Equal(t, ErrInvalidAccountData, actual.Unmarshal(overflow))
}

func TestProposalAccount_Unmarshal(t *testing.T) {
	artist := testutil.GenerateSolanaKeys(t, 1)[0]

	data := newBorshWriter(ProposalAccountDiscriminator).
		key(artist).
		u64(7).
		str("tour").
		u64(1_000).
		u64(uint64(1_700_000_000)).
		u64(uint64(1_700_086_400)).
		u8(1).
		u64(600).u64(400).u64(1_000).
		u8(255).
		Bytes()

	var actual ProposalAccount
	require.NoError(t, actual.Unmarshal(data))
	assert.Equal(t, ProposalAccount{
		Artist:           artist,
		ProposalID:       7,
		Title:            "tour",
		NumberOfTokens:   1_000,
		StartDate:        1_700_000_000,
		EndDate:          1_700_086_400,
		Status:           1,
		YesVotes:         600,
		NoVotes:          400,
		TotalVotingPower: 1_000,
		Bump:             255,
	}, actual)
	assert.Contains(t, actual.String(), "title=tour")

	assert.Equal(t, ErrInvalidAccountData, actual.Unmarshal(data[:len(data)-1]))
	assert.Equal(t, ErrInvalidAccountData, actual.Unmarshal(nil))
}

func TestVoteAccount_Unmarshal(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)

	data := newBorshWriter(VoteAccountDiscriminator).
		key(keys[0]).
		key(keys[1]).
		u8(1).
		u64(250).
		u8(253).
		Bytes()
	require.Len(t, data, VoteAccountSize)

	var actual VoteAccount
	require.NoError(t, actual.Unmarshal(data))
	assert.Equal(t, VoteAccount{
		Proposal:    keys[0],
		Voter:       keys[1],
		VoteChoice:  true,
		VotingPower: 250,
		Bump:        253,
	}, actual)
	assert.Contains(t, actual.String(), "vote_choice=true")

	invalidBool := append([]byte{}, data...)
	invalidBool[8+32+32] = 2
	assert.Equal(t, ErrInvalidAccountData, actual.Unmarshal(invalidBool))

	assert.Equal(t, ErrInvalidAccountData, actual.Unmarshal(data[:VoteAccountSize-1]))
}
