package mostro

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/4alls/Mostro-MVP-Program/pkg/metrics"
	"github.com/4alls/Mostro-MVP-Program/pkg/solana"
	"github.com/4alls/Mostro-MVP-Program/pkg/solana/computebudget"
	"github.com/4alls/Mostro-MVP-Program/pkg/solana/mostro"
)

const (
	submissionSuccessMetricName = "Mostro/SubmissionSuccess"
	submissionFailureMetricName = "Mostro/SubmissionFailure"
	confirmationLatencyMetric   = "Mostro/ConfirmationLatency"
	submissionFailureEventName  = "MostroSubmissionFailure"
	manualBatchOperationName    = "instructions"
	unknownOperationName        = "unknown"
)

var (
	ErrMissingSigner = errors.New("missing signer")
	ErrNoFeePayer    = errors.New("no fee payer")
	ErrNilRequest    = errors.New("nil request")
)

// Submit sends the request as a single instruction transaction and waits
// for the context's commitment level. The fee payer is the context's payer
// when set, otherwise the request's first account.
//
// Every error, including panics raised below this call, is returned as a
// *Failure.
func (c *Context) Submit(ctx context.Context, req *mostro.Request, signers ...ed25519.PrivateKey) (result SubmissionResult) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Submit")
	defer tracer.End()

	operation := unknownOperationName
	if req != nil {
		operation = string(req.Operation())
	}

	defer func() {
		if r := recover(); r != nil {
			result = c.fail(ctx, tracer, "Submit", operation, recoveredError(r))
		}
	}()

	if req == nil {
		return c.fail(ctx, tracer, "Submit", operation, errors.WithStack(ErrNilRequest))
	}

	payer := c.Payer()
	if payer == nil {
		payer = req.Accounts()[0].PublicKey
	}

	sig, err := c.send(ctx, operation, payer, []solana.Instruction{req.ToInstruction()}, signers)
	if err != nil {
		return c.fail(ctx, tracer, "Submit", operation, err)
	}
	return &Success{Signature: sig}
}

// SubmitInstructions sends a manually batched transaction, for example
// several requests converted with (*mostro.Request).ToInstruction alongside
// helper instructions. The fee payer is the context's payer when set,
// otherwise the first signer.
func (c *Context) SubmitInstructions(ctx context.Context, instructions []solana.Instruction, signers ...ed25519.PrivateKey) (result SubmissionResult) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "SubmitInstructions")
	defer tracer.End()

	defer func() {
		if r := recover(); r != nil {
			result = c.fail(ctx, tracer, "SubmitInstructions", manualBatchOperationName, recoveredError(r))
		}
	}()

	payer := c.Payer()
	if payer == nil && len(signers) > 0 {
		payer = signers[0].Public().(ed25519.PublicKey)
	}
	if payer == nil {
		return c.fail(ctx, tracer, "SubmitInstructions", manualBatchOperationName, errors.WithStack(ErrNoFeePayer))
	}

	sig, err := c.send(ctx, manualBatchOperationName, payer, instructions, signers)
	if err != nil {
		return c.fail(ctx, tracer, "SubmitInstructions", manualBatchOperationName, err)
	}
	return &Success{Signature: sig}
}

func (c *Context) send(
	ctx context.Context,
	operation string,
	payer ed25519.PublicKey,
	instructions []solana.Instruction,
	signers []ed25519.PrivateKey,
) (solana.Signature, error) {
	log := c.log.WithFields(logrus.Fields{
		"method":    "send",
		"operation": operation,
		"payer":     base58.Encode(payer),
	})

	txn := solana.NewTransaction(payer, append(c.computeBudget(), instructions...)...)

	matched, err := c.matchSigners(txn.RequiredSigners(), signers)
	if err != nil {
		return solana.Signature{}, err
	}

	bh, err := c.client.GetLatestBlockhash()
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "error getting recent blockhash")
	}
	txn.SetBlockhash(bh)

	if err := txn.Sign(matched...); err != nil {
		return solana.Signature{}, errors.Wrap(err, "error signing transaction")
	}

	start := time.Now()

	sig, err := c.client.SubmitTransaction(txn, c.commitment)
	if err != nil {
		return sig, err
	}

	log = log.WithField("signature", sig.String())
	log.Debug("transaction submitted")

	status, err := c.client.GetSignatureStatus(sig, c.commitment)
	if err != nil {
		return sig, errors.Wrapf(err, "error confirming transaction %s", sig)
	}
	latency := time.Since(start)
	metrics.RecordDuration(ctx, confirmationLatencyMetric, latency)
	c.collector.observeConfirmation(operation, latency)

	if status != nil && status.ErrorResult != nil {
		return sig, errors.WithStack(&solana.SubmissionError{
			Signature: sig,
			Err:       status.ErrorResult,
			Logs:      c.fetchLogs(log, sig),
		})
	}

	log.Debug("transaction confirmed")
	metrics.RecordCount(ctx, submissionSuccessMetricName, 1)
	c.collector.observeSubmission(operation, outcomeSuccess)
	return sig, nil
}

func (c *Context) computeBudget() []solana.Instruction {
	var ixns []solana.Instruction
	if c.computeUnitLimit > 0 {
		ixns = append(ixns, computebudget.SetComputeUnitLimit(c.computeUnitLimit))
	}
	if c.computeUnitPrice > 0 {
		ixns = append(ixns, computebudget.SetComputeUnitPrice(c.computeUnitPrice))
	}
	return ixns
}

// matchSigners returns the supplied keys needed by the transaction, in
// signature order. Keys that are not required are ignored.
func (c *Context) matchSigners(required []ed25519.PublicKey, supplied []ed25519.PrivateKey) ([]ed25519.PrivateKey, error) {
	available := supplied
	if c.payer != nil {
		available = append([]ed25519.PrivateKey{c.payer}, supplied...)
	}

	matched := make([]ed25519.PrivateKey, 0, len(required))
	for _, pub := range required {
		var found ed25519.PrivateKey
		for _, key := range available {
			if bytes.Equal(key.Public().(ed25519.PublicKey), pub) {
				found = key
				break
			}
		}
		if found == nil {
			return nil, errors.Wrapf(ErrMissingSigner, "account %s", base58.Encode(pub))
		}
		matched = append(matched, found)
	}
	return matched, nil
}

// fetchLogs recovers the program output of a transaction that failed on
// chain. Lookup failures leave the logs empty.
func (c *Context) fetchLogs(log *logrus.Entry, sig solana.Signature) []string {
	commitment := c.commitment
	if commitment == solana.CommitmentProcessed {
		commitment = solana.CommitmentConfirmed
	}

	txn, err := c.client.GetTransaction(sig, commitment)
	if err != nil {
		log.WithError(err).Warn("failure getting transaction logs")
		return nil
	}
	if txn.Meta == nil {
		return nil
	}
	return txn.Meta.LogMessages
}

func (c *Context) fail(ctx context.Context, tracer *metrics.MethodTracer, method, operation string, err error) *Failure {
	failure := NormalizeError(err)

	fields := logrus.Fields{
		"method":    method,
		"operation": operation,
	}
	event := map[string]interface{}{
		"operation": operation,
		"message":   failure.Message,
	}
	if programErr, ok := mostro.ProgramErrorFromError(err); ok {
		fields["program_error"] = programErr.Name
		event["program_error"] = programErr.Name
	}

	c.log.WithFields(fields).WithError(err).Warn("submission failed")

	tracer.OnError(err)
	metrics.RecordCount(ctx, submissionFailureMetricName, 1)
	c.collector.observeSubmission(operation, outcomeFailure)
	metrics.RecordEvent(ctx, submissionFailureEventName, event)

	return failure
}
