package mostro

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/4alls/Mostro-MVP-Program/pkg/solana"
)

// MissingIdentifierError is returned by account resolution when a required
// caller supplied key or named parameter was not provided.
type MissingIdentifierError struct {
	Operation  Operation
	Identifier string
}

func newMissingIdentifierError(op Operation, identifier string) error {
	return errors.WithStack(&MissingIdentifierError{
		Operation:  op,
		Identifier: identifier,
	})
}

func (e *MissingIdentifierError) Error() string {
	return fmt.Sprintf("%s: missing required identifier %q", e.Operation, e.Identifier)
}

// AccountContractViolation is returned when an account list does not match
// the fixed role table of an operation. Index is -1 when the violation is not
// tied to a single position.
type AccountContractViolation struct {
	Operation Operation
	Index     int
	Role      string
	Reason    string
}

func newAccountContractViolation(op Operation, index int, role, reason string) error {
	return errors.WithStack(&AccountContractViolation{
		Operation: op,
		Index:     index,
		Role:      role,
		Reason:    reason,
	})
}

func (e *AccountContractViolation) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: account contract violation: %s", e.Operation, e.Reason)
	}
	return fmt.Sprintf("%s: account contract violation at index %d (%s): %s", e.Operation, e.Index, e.Role, e.Reason)
}

// AccountNotFoundError is returned when no account exists at Address.
type AccountNotFoundError struct {
	Address ed25519.PublicKey
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account not found: %s", base58.Encode(e.Address))
}

// ProgramError is an error code declared by the on-chain program. Anchor
// numbers user errors from 6000.
type ProgramError struct {
	Code    uint32
	Name    string
	Message string
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Name, e.Code, e.Message)
}

const programErrorOffset = 6000

var programErrors = []ProgramError{
	{Name: "UnauthorizedAdmin", Message: "Only the admin can perform this action."},
	{Name: "Unauthorized", Message: "Unauthorized access"},
	{Name: "InvalidPercentage", Message: "Percentages must sum to 100"},
	{Name: "ProposalNotActive", Message: "Proposal is not active"},
	{Name: "ProposalExpired", Message: "Proposal has expired"},
	{Name: "AlreadyVoted", Message: "User has already voted on this proposal"},
	{Name: "InsufficientTokens", Message: "Insufficient tokens for operation"},
	{Name: "InsufficientSol", Message: "Insufficient SOL for operation"},
	{Name: "ProposalNotApproved", Message: "Proposal was not approved"},
	{Name: "ProposalAlreadyExecuted", Message: "Proposal has already been executed"},
	{Name: "InvalidTokenAmount", Message: "Invalid token amount"},
	{Name: "InvalidSolAmount", Message: "Invalid SOL amount"},
	{Name: "BondingCurveError", Message: "Error in bonding curve calculation"},
	{Name: "NoVotingPower", Message: "No voting power (no tokens held)"},
}

// GetProgramError returns the program error declared for code.
func GetProgramError(code uint32) (*ProgramError, bool) {
	if code < programErrorOffset || code >= programErrorOffset+uint32(len(programErrors)) {
		return nil, false
	}

	e := programErrors[code-programErrorOffset]
	e.Code = code
	return &e, true
}

// ProgramErrorFromError looks for a custom program error anywhere in err's
// chain and maps it to the program's declared error.
func ProgramErrorFromError(err error) (*ProgramError, bool) {
	var custom solana.CustomError
	if !errors.As(err, &custom) || custom < 0 {
		return nil, false
	}
	return GetProgramError(uint32(custom))
}
