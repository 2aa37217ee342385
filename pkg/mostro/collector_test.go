package mostro

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4alls/Mostro-MVP-Program/pkg/solana"
	"github.com/4alls/Mostro-MVP-Program/pkg/solana/mostro"
	"github.com/4alls/Mostro-MVP-Program/pkg/testutil"
)

func TestCollector_Submissions(t *testing.T) {
	collector := NewCollector("test")
	registry := prometheus.NewPedanticRegistry()
	require.NoError(t, registry.Register(collector))

	env := setupSubmit(t)
	c := New(env.client, WithCollector(collector))

	require.True(t, c.Submit(context.Background(), env.req, env.payer, env.admin).Succeeded())
	require.False(t, c.Submit(context.Background(), env.req, env.payer).Succeeded())
	require.False(t, c.Submit(context.Background(), env.req).Succeeded())

	op := string(mostro.OperationCreateConfig)
	assert.EqualValues(t, 1, promtestutil.ToFloat64(collector.submissions.WithLabelValues(op, outcomeSuccess)))
	assert.EqualValues(t, 2, promtestutil.ToFloat64(collector.submissions.WithLabelValues(op, outcomeFailure)))

	// only confirmed submissions are timed
	assert.Equal(t, 1, promtestutil.CollectAndCount(collector.confirmation))
}

func TestCollector_Reads(t *testing.T) {
	collector := NewCollector("test")
	address := testutil.GenerateSolanaKeys(t, 1)[0]

	var found bool
	client := &fakeClient{
		getAccountInfo: func(ed25519.PublicKey, solana.Commitment) (solana.AccountInfo, error) {
			if !found {
				return solana.AccountInfo{}, solana.ErrNoAccountInfo
			}
			return solana.AccountInfo{
				Data:  encodeConfigAccount(address),
				Owner: mostro.PROGRAM_ID,
			}, nil
		},
	}
	c := New(client, WithCollector(collector))

	_, err := c.GetConfig(context.Background(), address)
	require.Error(t, err)

	found = true
	_, err = c.GetConfig(context.Background(), address)
	require.NoError(t, err)

	_, err = c.GetVote(context.Background(), address)
	require.Error(t, err)

	assert.EqualValues(t, 1, promtestutil.ToFloat64(collector.reads.WithLabelValues("config", outcomeNotFound)))
	assert.EqualValues(t, 1, promtestutil.ToFloat64(collector.reads.WithLabelValues("config", outcomeSuccess)))
	assert.EqualValues(t, 1, promtestutil.ToFloat64(collector.reads.WithLabelValues("vote", outcomeFailure)))
}

func TestCollector_Nil(t *testing.T) {
	var collector *Collector
	assert.NotPanics(t, func() {
		collector.observeSubmission("op", outcomeSuccess)
		collector.observeConfirmation("op", 0)
		collector.observeRead("config", outcomeSuccess)
	})
}
