package solana

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"

	"github.com/4alls/Mostro-MVP-Program/pkg/rate"
	"github.com/4alls/Mostro-MVP-Program/pkg/retry"
	"github.com/4alls/Mostro-MVP-Program/pkg/retry/backoff"
)

const (
	ticksPerSec  = 160
	ticksPerSlot = 64
	slotsPerSec  = ticksPerSec / ticksPerSlot

	// PollRate is the rate at which signature statuses are polled, roughly
	// twice per slot.
	PollRate = (time.Second / slotsPerSec) / 2

	// ~32 slots at PollRate
	sigStatusPollLimit = 2 * 32

	// bounds confirmation polling when status requests are slow
	sigStatusPollTimeout = 30 * time.Second

	// Reference: https://github.com/solana-labs/solana/blob/71e9958e061493d7545bd28d4ac7a85aaed6ffbb/client/src/rpc_custom_error.rs#L11
	rpcNodeUnhealthyCode = -32005
)

type Commitment struct {
	Commitment string `json:"commitment"`
}

const (
	confirmationStatusProcessed = "processed"
	confirmationStatusConfirmed = "confirmed"
	confirmationStatusFinalized = "finalized"
)

var (
	CommitmentProcessed = Commitment{Commitment: confirmationStatusProcessed}
	CommitmentConfirmed = Commitment{Commitment: confirmationStatusConfirmed}
	CommitmentFinalized = Commitment{Commitment: confirmationStatusFinalized}
)

// ParseCommitment maps a commitment level name onto a Commitment.
func ParseCommitment(level string) (Commitment, error) {
	switch level {
	case confirmationStatusProcessed:
		return CommitmentProcessed, nil
	case confirmationStatusConfirmed:
		return CommitmentConfirmed, nil
	case confirmationStatusFinalized:
		return CommitmentFinalized, nil
	}
	return Commitment{}, errors.Errorf("unknown commitment level %q", level)
}

var (
	ErrNoAccountInfo     = errors.New("no account info")
	ErrSignatureNotFound = errors.New("signature not found")
)

// AccountInfo contains the raw state of an account.
type AccountInfo struct {
	Data       []byte
	Owner      ed25519.PublicKey
	Lamports   uint64
	Executable bool
}

type SignatureStatus struct {
	Slot        uint64
	ErrorResult *TransactionError

	// Confirmations is nil once the transaction has been rooted.
	Confirmations      *int
	ConfirmationStatus string
}

func (s SignatureStatus) Confirmed() bool {
	if s.Finalized() {
		return true
	}
	if s.ConfirmationStatus == confirmationStatusConfirmed {
		return true
	}
	return *s.Confirmations >= 1
}

func (s SignatureStatus) Finalized() bool {
	return s.Confirmations == nil || s.ConfirmationStatus == confirmationStatusFinalized
}

// Reached reports whether the status satisfies the commitment level.
func (s SignatureStatus) Reached(commitment Commitment) bool {
	switch commitment {
	case CommitmentConfirmed:
		return s.Confirmed()
	case CommitmentFinalized:
		return s.Finalized()
	}
	return true
}

type TransactionMeta struct {
	Err          interface{} `json:"err"`
	Fee          uint64      `json:"fee"`
	PreBalances  []uint64    `json:"preBalances"`
	PostBalances []uint64    `json:"postBalances"`
	LogMessages  []string    `json:"logMessages"`
}

type ConfirmedTransaction struct {
	Slot        uint64
	BlockTime   *time.Time
	Transaction Transaction
	Err         *TransactionError
	Meta        *TransactionMeta
}

// Client provides the subset of the JSON RPC API needed to read program
// accounts and submit transactions.
//
// Reference: https://docs.solana.com/apps/jsonrpc-api
type Client interface {
	GetAccountInfo(ed25519.PublicKey, Commitment) (AccountInfo, error)
	GetLatestBlockhash() (Blockhash, error)
	GetSignatureStatus(Signature, Commitment) (*SignatureStatus, error)
	GetSignatureStatuses([]Signature) ([]*SignatureStatus, error)
	GetTransaction(Signature, Commitment) (ConfirmedTransaction, error)
	SubmitTransaction(Transaction, Commitment) (Signature, error)
}

var (
	errRateLimited  = errors.New("rate limited")
	errServiceError = errors.New("service error")
)

type client struct {
	log           *logrus.Entry
	client        jsonrpc.RPCClient
	retrier       retry.Retrier
	limiter       rate.Limiter
	skipPreflight bool

	blockMu   sync.RWMutex
	blockhash Blockhash
	lastWrite time.Time
}

// ClientOption configures a client.
type ClientOption func(*client)

// WithLimiter throttles outbound requests per RPC method. Requests over the
// limit are retried with backoff.
func WithLimiter(limiter rate.Limiter) ClientOption {
	return func(c *client) {
		c.limiter = limiter
	}
}

// WithSkipPreflight disables transaction simulation on submission. Simulation
// is what yields program logs for rejected transactions, so it is on by
// default.
func WithSkipPreflight(skip bool) ClientOption {
	return func(c *client) {
		c.skipPreflight = skip
	}
}

// WithRPCClient overrides the underlying JSON RPC transport.
func WithRPCClient(rpc jsonrpc.RPCClient) ClientOption {
	return func(c *client) {
		c.client = rpc
	}
}

// New returns a client using the specified endpoint.
func New(endpoint string, opts ...ClientOption) Client {
	c := &client{
		log:     logrus.StandardLogger().WithField("type", "solana/client"),
		client:  jsonrpc.NewClient(endpoint),
		limiter: &rate.NoLimiter{},
	}
	c.retrier = retry.NewRetrier(
		retry.RetriableErrors(errRateLimited, errServiceError),
		retry.Limit(3),
		retry.OnRetry(func(attempts uint, err error) {
			c.log.WithError(err).WithField("attempts", attempts).Debug("retrying rpc call")
		}),
		retry.BackoffWithJitter(backoff.BinaryExponential(time.Second), 10*time.Second, 0.1),
	)
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *client) call(out interface{}, method string, params ...interface{}) error {
	_, err := c.retrier.Retry(func() error {
		return c.callOnce(out, method, params...)
	})

	return err
}

// callOnce makes a single attempt, for calls that must not be repeated.
func (c *client) callOnce(out interface{}, method string, params ...interface{}) error {
	if allowed, err := c.limiter.Allow(method); err != nil {
		return errors.Wrap(err, "failed to consult rate limiter")
	} else if !allowed {
		return errRateLimited
	}

	err := c.client.CallFor(out, method, params...)
	if err == nil {
		return nil
	}
	return c.handleRpcError(method, err)
}

func (c *client) handleRpcError(method string, err error) error {
	rpcErr, ok := err.(*jsonrpc.RPCError)
	if !ok {
		return err
	}

	if rpcErr.Code == 429 {
		c.log.WithField("method", method).Warn("rate limited")
		return errRateLimited
	}
	if rpcErr.Code >= 500 || rpcErr.Code == rpcNodeUnhealthyCode {
		c.log.WithField("method", method).WithError(err).Warn("rpc service error")
		return errServiceError
	}

	return err
}

func (c *client) GetLatestBlockhash() (hash Blockhash, err error) {
	// Randomize the refresh window so concurrent callers don't all refresh
	// on the same tick.
	window := time.Duration(float64(2*time.Second) * (0.8 + rand.Float64()))

	c.blockMu.RLock()
	if time.Since(c.lastWrite) < window {
		hash = c.blockhash
	}
	c.blockMu.RUnlock()

	if hash != (Blockhash{}) {
		return hash, nil
	}

	var resp struct {
		Value struct {
			Blockhash string `json:"blockhash"`
		} `json:"value"`
	}
	if err := c.call(&resp, "getLatestBlockhash"); err != nil {
		return hash, errors.Wrap(err, "getLatestBlockhash() failed to send request")
	}

	raw, err := base58.Decode(resp.Value.Blockhash)
	if err != nil {
		return hash, errors.Wrap(err, "invalid base58 encoded hash in response")
	}
	if len(raw) != len(hash) {
		return hash, errors.Errorf("invalid blockhash length: %d", len(raw))
	}
	copy(hash[:], raw)

	c.blockMu.Lock()
	c.blockhash = hash
	c.lastWrite = time.Now()
	c.blockMu.Unlock()

	return hash, nil
}

func (c *client) GetAccountInfo(account ed25519.PublicKey, commitment Commitment) (accountInfo AccountInfo, err error) {
	var resp struct {
		Value *struct {
			Lamports   uint64   `json:"lamports"`
			Owner      string   `json:"owner"`
			Data       []string `json:"data"`
			Executable bool     `json:"executable"`
		} `json:"value"`
	}

	config := struct {
		Commitment string `json:"commitment"`
		Encoding   string `json:"encoding"`
	}{
		Commitment: commitment.Commitment,
		Encoding:   "base64",
	}

	if err := c.call(&resp, "getAccountInfo", base58.Encode(account), config); err != nil {
		return accountInfo, errors.Wrap(err, "getAccountInfo() failed to send request")
	}
	if resp.Value == nil {
		return accountInfo, ErrNoAccountInfo
	}
	if len(resp.Value.Data) == 0 {
		return accountInfo, errors.New("account data missing from response")
	}

	if accountInfo.Owner, err = base58.Decode(resp.Value.Owner); err != nil {
		return accountInfo, errors.Wrap(err, "invalid base58 encoded owner")
	}
	if accountInfo.Data, err = base64.StdEncoding.DecodeString(resp.Value.Data[0]); err != nil {
		return accountInfo, errors.Wrap(err, "invalid base64 encoded data")
	}
	accountInfo.Lamports = resp.Value.Lamports
	accountInfo.Executable = resp.Value.Executable

	return accountInfo, nil
}

// SubmitTransaction sends the transaction without waiting for confirmation.
// Transport failures are not retried. A rejected transaction yields a *SubmissionError carrying any simulation
// logs returned by the node.
func (c *client) SubmitTransaction(txn Transaction, commitment Commitment) (Signature, error) {
	sig := txn.Signature()

	config := struct {
		Encoding            string `json:"encoding"`
		SkipPreflight       bool   `json:"skipPreflight"`
		PreflightCommitment string `json:"preflightCommitment"`
	}{
		Encoding:            "base64",
		SkipPreflight:       c.skipPreflight,
		PreflightCommitment: commitment.Commitment,
	}

	// Sent once. Resubmission is left to the caller.
	var sigStr string
	err := c.callOnce(&sigStr, "sendTransaction", base64.StdEncoding.EncodeToString(txn.Marshal()), config)
	if err == nil {
		return sig, nil
	}

	rpcErr, ok := err.(*jsonrpc.RPCError)
	if !ok {
		return sig, errors.Wrap(err, "sendTransaction() failed to send request")
	}

	sim, parseErr := ParseRPCError(rpcErr)
	if parseErr != nil {
		c.log.WithError(parseErr).WithField("method", "sendTransaction").Warn("failed to parse simulation error")
	}
	if sim == nil {
		return sig, errors.WithStack(&SubmissionError{Signature: sig, Err: rpcErr})
	}

	return sig, errors.WithStack(&SubmissionError{
		Signature: sig,
		Err:       sim,
		Logs:      sim.Logs,
	})
}

// GetSignatureStatus polls until the signature reaches the commitment level,
// fails, or the poll limit or timeout is exhausted.
func (c *client) GetSignatureStatus(sig Signature, commitment Commitment) (*SignatureStatus, error) {
	errNotReached := errors.New("commitment not reached")

	var s *SignatureStatus
	_, err := retry.Retry(
		func() error {
			statuses, err := c.GetSignatureStatuses([]Signature{sig})
			if err != nil {
				return err
			}

			s = statuses[0]
			switch {
			case s == nil:
				return ErrSignatureNotFound
			case s.ErrorResult != nil, s.Reached(commitment):
				return nil
			}
			return errNotReached
		},
		retry.RetriableErrors(ErrSignatureNotFound, errNotReached),
		retry.Limit(sigStatusPollLimit),
		retry.Deadline(sigStatusPollTimeout),
		retry.Backoff(backoff.Constant(PollRate), PollRate),
	)

	return s, err
}

func (c *client) GetSignatureStatuses(sigs []Signature) ([]*SignatureStatus, error) {
	encoded := make([]string, len(sigs))
	for i := range sigs {
		encoded[i] = sigs[i].String()
	}

	config := struct {
		SearchTransactionHistory bool `json:"searchTransactionHistory"`
	}{
		SearchTransactionHistory: true,
	}

	var resp struct {
		Value []*struct {
			Slot               uint64          `json:"slot"`
			Confirmations      *int            `json:"confirmations"`
			ConfirmationStatus string          `json:"confirmationStatus"`
			Err                json.RawMessage `json:"err"`
		} `json:"value"`
	}
	if err := c.call(&resp, "getSignatureStatuses", encoded, config); err != nil {
		return nil, errors.Wrap(err, "getSignatureStatuses() failed to send request")
	}

	statuses := make([]*SignatureStatus, len(sigs))
	for i, v := range resp.Value {
		if i >= len(statuses) {
			break
		}
		if v == nil {
			continue
		}

		statuses[i] = &SignatureStatus{
			Slot:               v.Slot,
			Confirmations:      v.Confirmations,
			ConfirmationStatus: v.ConfirmationStatus,
		}

		if len(v.Err) == 0 {
			continue
		}

		var raw interface{}
		d := json.NewDecoder(bytes.NewReader(v.Err))
		d.UseNumber()
		if err := d.Decode(&raw); err != nil {
			return nil, errors.Wrap(err, "failed to parse transaction result")
		}

		txErr, err := ParseTransactionError(raw)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse transaction result")
		}
		statuses[i].ErrorResult = txErr
	}

	return statuses, nil
}

func (c *client) GetTransaction(sig Signature, commitment Commitment) (ConfirmedTransaction, error) {
	config := struct {
		Commitment string `json:"commitment"`
		Encoding   string `json:"encoding"`
	}{
		Commitment: commitment.Commitment,
		Encoding:   "base64",
	}

	var resp *struct {
		Slot        uint64           `json:"slot"`
		BlockTime   *int64           `json:"blockTime"`
		Transaction []string         `json:"transaction"` // [data, encoding]
		Meta        *TransactionMeta `json:"meta"`
	}
	if err := c.call(&resp, "getTransaction", sig.String(), config); err != nil {
		return ConfirmedTransaction{}, errors.Wrap(err, "getTransaction() failed to send request")
	}
	if resp == nil {
		return ConfirmedTransaction{}, ErrSignatureNotFound
	}

	txn := ConfirmedTransaction{
		Slot: resp.Slot,
		Meta: resp.Meta,
	}
	if resp.BlockTime != nil {
		blockTime := time.Unix(*resp.BlockTime, 0)
		txn.BlockTime = &blockTime
	}

	if len(resp.Transaction) > 0 {
		raw, err := base64.StdEncoding.DecodeString(resp.Transaction[0])
		if err != nil {
			return txn, errors.Wrap(err, "failed to decode transaction")
		}
		if err := txn.Transaction.Unmarshal(raw); err != nil {
			return txn, errors.Wrap(err, "failed to unmarshal transaction")
		}
	}

	if resp.Meta != nil {
		var err error
		if txn.Err, err = ParseTransactionError(resp.Meta.Err); err != nil {
			return txn, errors.Wrap(err, "failed to parse transaction result")
		}
	}

	return txn, nil
}
