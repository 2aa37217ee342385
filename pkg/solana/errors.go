package solana

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/ybbus/jsonrpc"
)

// TransactionErrorKey is the string key returned in a transaction error.
//
// Source: https://github.com/solana-labs/solana/blob/fc2bf2d3b669d1c6655ae48b0a05f470938f3676/sdk/src/transaction/mod.rs#L37
type TransactionErrorKey string

const (
	TransactionErrorAccountNotFound         TransactionErrorKey = "AccountNotFound"
	TransactionErrorInsufficientFundsForFee TransactionErrorKey = "InsufficientFundsForFee"
	TransactionErrorBlockhashNotFound       TransactionErrorKey = "BlockhashNotFound"
	TransactionErrorInstructionError        TransactionErrorKey = "InstructionError"
	TransactionErrorSignatureFailure        TransactionErrorKey = "SignatureFailure"
)

// InstructionErrorKey is the string key returned in an instruction error.
//
// Source: https://github.com/solana-labs/solana/blob/4e2754341514cd181ae3f373cc2548bd22e918b8/sdk/program/src/instruction.rs#L23
type InstructionErrorKey string

const (
	InstructionErrorCustom                    InstructionErrorKey = "Custom"
	InstructionErrorMissingRequiredSignature  InstructionErrorKey = "MissingRequiredSignature"
	InstructionErrorAccountAlreadyInitialized InstructionErrorKey = "AccountAlreadyInitialized"
	InstructionErrorInsufficientFunds         InstructionErrorKey = "InsufficientFunds"
)

// CustomError is the numerical error returned by a non-builtin program.
type CustomError int

func (c CustomError) Error() string {
	return fmt.Sprintf("custom program error: 0x%x", int(c))
}

// InstructionError indicates an instruction returned an error in a transaction.
type InstructionError struct {
	Index int
	Err   error
}

func (i InstructionError) Error() string {
	return fmt.Sprintf("Error processing Instruction %d: %v", i.Index, i.Err)
}

func (i InstructionError) Unwrap() error {
	return i.Err
}

func (i InstructionError) ErrorKey() InstructionErrorKey {
	if i.Err == nil {
		return ""
	}
	if i.CustomError() != nil {
		return InstructionErrorCustom
	}
	return InstructionErrorKey(i.Err.Error())
}

func (i InstructionError) CustomError() *CustomError {
	if ce, ok := i.Err.(CustomError); ok {
		return &ce
	}
	return nil
}

func parseInstructionError(v interface{}) (InstructionError, error) {
	var e InstructionError

	values, ok := v.([]interface{})
	if !ok {
		return e, errors.New("unexpected instruction error format")
	}
	if len(values) != 2 {
		return e, errors.Errorf("unexpected InstructionError tuple size: %d", len(values))
	}

	index, err := parseJSONNumber(values[0])
	if err != nil {
		return e, err
	}
	e.Index = index

	switch t := values[1].(type) {
	case string:
		e.Err = errors.New(t)
	case map[string]interface{}:
		key, value, err := singleEntry(t)
		if err != nil {
			e.Err = errors.New("unhandled InstructionError")
			return e, err
		}
		if key != string(InstructionErrorCustom) {
			e.Err = errors.New(key)
			break
		}

		code, err := parseJSONNumber(value)
		if err != nil {
			e.Err = errors.New("unhandled CustomError")
			break
		}
		e.Err = CustomError(code)
	default:
		e.Err = errors.New("unhandled InstructionError")
	}

	return e, nil
}

// TransactionError contains the transaction error details.
type TransactionError struct {
	transactionError error
	instructionError *InstructionError
	raw              interface{}
}

// NewTransactionError creates a TransactionError for a simple error key.
func NewTransactionError(key TransactionErrorKey) *TransactionError {
	return &TransactionError{
		transactionError: errors.New(string(key)),
		raw:              string(key),
	}
}

// NewInstructionTransactionError wraps an instruction error into a
// TransactionError.
func NewInstructionTransactionError(index int, err error) *TransactionError {
	ie := &InstructionError{Index: index, Err: err}

	var detail interface{} = err.Error()
	if ce, ok := err.(CustomError); ok {
		detail = map[string]interface{}{string(InstructionErrorCustom): int(ce)}
	}

	return &TransactionError{
		transactionError: errors.New(string(TransactionErrorInstructionError)),
		instructionError: ie,
		raw: map[string]interface{}{
			string(TransactionErrorInstructionError): []interface{}{index, detail},
		},
	}
}

// ParseTransactionError parses the JSON error returned in the "err" field of
// various RPC responses.
func ParseTransactionError(raw interface{}) (*TransactionError, error) {
	switch t := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return &TransactionError{
			transactionError: errors.New(t),
			raw:              raw,
		}, nil
	case map[string]interface{}:
		key, value, err := singleEntry(t)
		if err != nil {
			return &TransactionError{
				transactionError: errors.New("unhandled transaction error"),
				raw:              raw,
			}, err
		}

		if key != string(TransactionErrorInstructionError) {
			return &TransactionError{
				transactionError: errors.New(key),
				raw:              raw,
			}, nil
		}

		ie, err := parseInstructionError(value)
		if err != nil {
			return &TransactionError{
				transactionError: errors.New("unhandled transaction error"),
				raw:              raw,
			}, errors.Wrap(err, "failed to parse instruction error")
		}

		return &TransactionError{
			transactionError: errors.New(key),
			instructionError: &ie,
			raw:              raw,
		}, nil
	default:
		return nil, errors.Errorf("unhandled error type %T", raw)
	}
}

func (t TransactionError) Error() string {
	if t.instructionError != nil {
		return t.instructionError.Error()
	}
	if t.transactionError != nil {
		return t.transactionError.Error()
	}
	return ""
}

func (t TransactionError) ErrorKey() TransactionErrorKey {
	if t.transactionError == nil {
		return ""
	}
	return TransactionErrorKey(t.transactionError.Error())
}

func (t TransactionError) Unwrap() error {
	if t.instructionError == nil {
		return nil
	}
	return t.instructionError
}

func (t TransactionError) InstructionError() *InstructionError {
	return t.instructionError
}

func (t TransactionError) JSONString() (string, error) {
	b, err := json.Marshal(t.raw)
	return string(b), err
}

// SimulationError is the preflight failure reported by sendTransaction. It
// carries the program logs produced during simulation.
type SimulationError struct {
	Message string
	TxErr   *TransactionError
	Logs    []string
}

// ParseRPCError extracts the simulation details from a sendTransaction error.
// Errors without simulation data return nil.
func ParseRPCError(err *jsonrpc.RPCError) (*SimulationError, error) {
	if err == nil {
		return nil, nil
	}

	data, ok := err.Data.(map[string]interface{})
	if !ok {
		return nil, nil
	}

	sim := &SimulationError{Message: err.Message}

	if rawLogs, ok := data["logs"].([]interface{}); ok {
		sim.Logs = make([]string, 0, len(rawLogs))
		for _, l := range rawLogs {
			if s, ok := l.(string); ok {
				sim.Logs = append(sim.Logs, s)
			}
		}
	}

	txErr, parseErr := ParseTransactionError(data["err"])
	if parseErr != nil {
		return sim, parseErr
	}
	sim.TxErr = txErr

	return sim, nil
}

func (s *SimulationError) Error() string {
	if s.TxErr != nil {
		return s.TxErr.Error()
	}
	return s.Message
}

func (s *SimulationError) Unwrap() error {
	if s.TxErr == nil {
		return nil
	}
	return s.TxErr
}

// LogMessages returns the simulation logs.
func (s *SimulationError) LogMessages() []string {
	return s.Logs
}

// SubmissionError is returned when a transaction is rejected or fails on
// chain. Logs holds whatever program output was recovered.
type SubmissionError struct {
	Signature Signature
	Err       error
	Logs      []string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("transaction %s failed: %v", e.Signature, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// LogMessages returns the program logs attached to the failure.
func (e *SubmissionError) LogMessages() []string {
	return e.Logs
}

func singleEntry(m map[string]interface{}) (string, interface{}, error) {
	if len(m) != 1 {
		return "", nil, errors.Errorf("invalid error object size: %d", len(m))
	}
	for k, v := range m {
		return k, v, nil
	}
	return "", nil, nil
}

func parseJSONNumber(v interface{}) (int, error) {
	switch t := v.(type) {
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, errors.Errorf("non int64 value: %v", v)
		}
		return int(n), nil
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, errors.Errorf("non numeric value: %v", v)
		}
		return int(n), nil
	case float64:
		return int(t), nil
	case int:
		return t, nil
	}
	return 0, errors.Errorf("non numeric value: %v", v)
}
