package mostro

import (
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/4alls/Mostro-MVP-Program/pkg/solana"
)

type Operation string

const (
	OperationCreateConfig    Operation = "create_config"
	OperationCreateArtist    Operation = "create_artist"
	OperationBuyToken        Operation = "buy_token"
	OperationSellToken       Operation = "sell_token"
	OperationCreateProposal  Operation = "create_proposal"
	OperationVoteOnProposal  Operation = "vote_on_proposal"
	OperationExecuteProposal Operation = "execute_proposal"
)

// Request is a fully specified, validated invocation of one program
// instruction. It cannot be modified once built; every accessor returns a
// copy.
type Request struct {
	operation     Operation
	program       ed25519.PublicKey
	data          []byte
	accounts      []AccountRef
	extraAccounts []solana.AccountMeta
}

func newRequest(
	contract *AccountContract,
	program ed25519.PublicKey,
	data []byte,
	accounts []AccountRef,
	derive keyDeriver,
	extra []solana.AccountMeta,
) (*Request, error) {
	if len(program) != ed25519.PublicKeySize {
		return nil, newMissingIdentifierError(contract.operation, "program")
	}
	if err := contract.Check(accounts); err != nil {
		return nil, err
	}
	if derive != nil {
		expected, err := derive(accounts)
		if err != nil {
			return nil, err
		}
		if err := contract.checkKeys(accounts, expected); err != nil {
			return nil, err
		}
	}
	for i, meta := range extra {
		if len(meta.PublicKey) != ed25519.PublicKeySize {
			return nil, newAccountContractViolation(
				contract.operation,
				len(accounts)+i,
				"extra",
				"missing or malformed public key",
			)
		}
	}

	r := &Request{
		operation:     contract.operation,
		program:       append(ed25519.PublicKey(nil), program...),
		data:          append([]byte(nil), data...),
		accounts:      make([]AccountRef, len(accounts)),
		extraAccounts: cloneMetas(extra),
	}
	for i, account := range accounts {
		r.accounts[i] = account.clone()
	}
	return r, nil
}

func (r *Request) Operation() Operation {
	return r.operation
}

func (r *Request) Program() ed25519.PublicKey {
	return append(ed25519.PublicKey(nil), r.program...)
}

// Data returns the instruction data: the 8 byte discriminator followed by the
// borsh encoded arguments.
func (r *Request) Data() []byte {
	return append([]byte(nil), r.data...)
}

// Accounts returns the operation's strict account list.
func (r *Request) Accounts() []AccountRef {
	accounts := make([]AccountRef, len(r.accounts))
	for i, account := range r.accounts {
		accounts[i] = account.clone()
	}
	return accounts
}

// ExtraAccounts returns the caller supplied accounts appended after the
// strict list.
func (r *Request) ExtraAccounts() []solana.AccountMeta {
	return cloneMetas(r.extraAccounts)
}

// Signers returns the distinct keys that must sign a transaction carrying
// this request, in account order.
func (r *Request) Signers() []ed25519.PublicKey {
	var signers []ed25519.PublicKey
	seen := make(map[string]struct{})

	add := func(key ed25519.PublicKey) {
		if _, ok := seen[string(key)]; ok {
			return
		}
		seen[string(key)] = struct{}{}
		signers = append(signers, append(ed25519.PublicKey(nil), key...))
	}

	for _, account := range r.accounts {
		if account.IsSigner {
			add(account.PublicKey)
		}
	}
	for _, meta := range r.extraAccounts {
		if meta.IsSigner {
			add(meta.PublicKey)
		}
	}
	return signers
}

// ToInstruction converts the request into an instruction for manual batching
// into a caller composed transaction.
func (r *Request) ToInstruction() solana.Instruction {
	metas := make([]solana.AccountMeta, 0, len(r.accounts)+len(r.extraAccounts))
	for _, account := range r.accounts {
		metas = append(metas, account.clone().Meta())
	}
	metas = append(metas, cloneMetas(r.extraAccounts)...)

	return solana.NewInstruction(r.Program(), r.Data(), metas...)
}

func (r *Request) String() string {
	accounts := make([]string, len(r.accounts))
	for i, account := range r.accounts {
		accounts[i] = account.String()
	}
	return fmt.Sprintf(
		"Request{operation=%s,program=%s,data_len=%d,accounts=[%s],extra_accounts=%d}",
		r.operation,
		base58.Encode(r.program),
		len(r.data),
		strings.Join(accounts, ","),
		len(r.extraAccounts),
	)
}

func cloneMetas(metas []solana.AccountMeta) []solana.AccountMeta {
	if len(metas) == 0 {
		return nil
	}

	cloned := make([]solana.AccountMeta, len(metas))
	for i, meta := range metas {
		cloned[i] = meta
		cloned[i].PublicKey = append(ed25519.PublicKey(nil), meta.PublicKey...)
	}
	return cloned
}
