// Package mostro submits Mostro program requests and reads program
// accounts through a ledger client.
package mostro

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/4alls/Mostro-MVP-Program/pkg/rate"
	"github.com/4alls/Mostro-MVP-Program/pkg/solana"
	"github.com/4alls/Mostro-MVP-Program/pkg/solana/mostro"
)

const (
	metricsStructName = "mostro.context"
)

// Context binds the program id, ledger client, commitment level and an
// optional default fee payer. It is immutable once built and safe for
// concurrent use.
type Context struct {
	log        *logrus.Entry
	client     solana.Client
	program    ed25519.PublicKey
	commitment solana.Commitment
	payer      ed25519.PrivateKey

	computeUnitLimit uint32
	computeUnitPrice uint64

	collector *Collector
}

// Option configures a Context.
type Option func(*Context)

// WithProgram targets a deployment of the program other than the default.
func WithProgram(program ed25519.PublicKey) Option {
	return func(c *Context) {
		c.program = append(ed25519.PublicKey(nil), program...)
	}
}

// WithCommitment sets the level submissions wait for and reads use by
// default.
func WithCommitment(commitment solana.Commitment) Option {
	return func(c *Context) {
		c.commitment = commitment
	}
}

// WithPayer sets the default fee payer. It also signs every submission.
func WithPayer(payer ed25519.PrivateKey) Option {
	return func(c *Context) {
		c.payer = append(ed25519.PrivateKey(nil), payer...)
	}
}

// WithComputeBudget prepends compute budget instructions to every
// submission. A zero limit or price leaves that setting to the runtime.
func WithComputeBudget(unitLimit uint32, microLamportsPerUnit uint64) Option {
	return func(c *Context) {
		c.computeUnitLimit = unitLimit
		c.computeUnitPrice = microLamportsPerUnit
	}
}

// WithCollector records submission and read outcomes on collector.
func WithCollector(collector *Collector) Option {
	return func(c *Context) {
		c.collector = collector
	}
}

func WithLogger(log *logrus.Entry) Option {
	return func(c *Context) {
		c.log = log
	}
}

// New returns a Context over client.
func New(client solana.Client, opts ...Option) *Context {
	c := &Context{
		log:        logrus.StandardLogger().WithField("type", "mostro/context"),
		client:     client,
		program:    mostro.PROGRAM_ID,
		commitment: solana.CommitmentConfirmed,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NewFromConfig builds the ledger client and Context from configuration.
// Options are applied after the configured values.
func NewFromConfig(ctx context.Context, provider ConfigProvider, opts ...Option) (*Context, error) {
	conf := provider()

	program, err := base58.Decode(conf.programId.Get(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "invalid program id")
	}
	if len(program) != ed25519.PublicKeySize {
		return nil, errors.Errorf("invalid program id length: %d", len(program))
	}

	commitment, err := solana.ParseCommitment(conf.commitment.Get(ctx))
	if err != nil {
		return nil, err
	}

	limiter := rate.NewLocalRateLimiterCtor()(conf.rpcRequestsPerSecond.Get(ctx))
	client := solana.New(
		conf.rpcEndpoint.Get(ctx),
		solana.WithLimiter(limiter),
		solana.WithSkipPreflight(conf.skipPreflight.Get(ctx)),
	)

	configured := []Option{
		WithProgram(program),
		WithCommitment(commitment),
	}

	payer, err := configuredPayer(ctx, conf)
	if err != nil {
		return nil, err
	}
	if payer != nil {
		configured = append(configured, WithPayer(payer))
	}

	return New(client, append(configured, opts...)...), nil
}

func configuredPayer(ctx context.Context, conf *conf) (ed25519.PrivateKey, error) {
	if mnemonic := conf.payerMnemonic.Get(ctx); len(mnemonic) > 0 {
		return solana.KeypairFromMnemonic(mnemonic, conf.payerPassphrase.Get(ctx))
	}
	if encoded := conf.payerPrivateKey.Get(ctx); len(encoded) > 0 {
		return solana.KeypairFromBase58(encoded)
	}
	return nil, nil
}

// Program returns the program id requests should be built against.
func (c *Context) Program() ed25519.PublicKey {
	return append(ed25519.PublicKey(nil), c.program...)
}

func (c *Context) Commitment() solana.Commitment {
	return c.commitment
}

// Payer returns the default fee payer, or nil when none is configured.
func (c *Context) Payer() ed25519.PublicKey {
	if c.payer == nil {
		return nil
	}
	return c.payer.Public().(ed25519.PublicKey)
}
