package mostro

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/4alls/Mostro-MVP-Program/pkg/metrics"
	"github.com/4alls/Mostro-MVP-Program/pkg/solana"
	"github.com/4alls/Mostro-MVP-Program/pkg/solana/mostro"
)

type unmarshaler interface {
	Unmarshal(data []byte) error
}

// GetConfig fetches the global config account.
func (c *Context) GetConfig(ctx context.Context, address ed25519.PublicKey, commitment ...solana.Commitment) (*mostro.ConfigAccount, error) {
	var account mostro.ConfigAccount
	if err := c.fetch(ctx, "GetConfig", "config", address, &account, commitment); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetArtist fetches an artist account.
func (c *Context) GetArtist(ctx context.Context, address ed25519.PublicKey, commitment ...solana.Commitment) (*mostro.ArtistAccount, error) {
	var account mostro.ArtistAccount
	if err := c.fetch(ctx, "GetArtist", "artist", address, &account, commitment); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetProposal fetches a proposal account.
func (c *Context) GetProposal(ctx context.Context, address ed25519.PublicKey, commitment ...solana.Commitment) (*mostro.ProposalAccount, error) {
	var account mostro.ProposalAccount
	if err := c.fetch(ctx, "GetProposal", "proposal", address, &account, commitment); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetVote fetches a vote record.
func (c *Context) GetVote(ctx context.Context, address ed25519.PublicKey, commitment ...solana.Commitment) (*mostro.VoteAccount, error) {
	var account mostro.VoteAccount
	if err := c.fetch(ctx, "GetVote", "vote", address, &account, commitment); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Context) fetch(ctx context.Context, method, kind string, address ed25519.PublicKey, dst unmarshaler, commitment []solana.Commitment) (err error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, method)
	defer func() {
		var notFound *mostro.AccountNotFoundError
		switch {
		case err == nil:
			c.collector.observeRead(kind, outcomeSuccess)
		case errors.As(err, &notFound):
			c.collector.observeRead(kind, outcomeNotFound)
		default:
			c.collector.observeRead(kind, outcomeFailure)
			tracer.OnError(err)
		}
		tracer.End()
	}()

	log := c.log.WithFields(logrus.Fields{
		"method":  method,
		"kind":    kind,
		"address": base58.Encode(address),
	})

	level := c.commitment
	if len(commitment) > 0 {
		level = commitment[0]
	}

	info, err := c.client.GetAccountInfo(address, level)
	if err == solana.ErrNoAccountInfo {
		return errors.WithStack(&mostro.AccountNotFoundError{Address: append(ed25519.PublicKey(nil), address...)})
	} else if err != nil {
		log.WithError(err).Warn("failure getting account info")
		return errors.Wrap(err, "error getting account info")
	}

	if !bytes.Equal(info.Owner, c.program) {
		return errors.Wrapf(mostro.ErrInvalidAccountOwner, "owner %s", base58.Encode(info.Owner))
	}

	if err := dst.Unmarshal(info.Data); err != nil {
		log.WithError(err).Warn("failure decoding account")
		return errors.Wrap(err, "error decoding account")
	}
	return nil
}
