package mostro

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/4alls/Mostro-MVP-Program/pkg/solana"
)

// AccountRef is a single resolved account of an operation, annotated with
// the role it plays.
type AccountRef struct {
	Role       string
	PublicKey  ed25519.PublicKey
	IsWritable bool
	IsSigner   bool
}

// Meta converts the reference to the account meta placed in an instruction.
func (r AccountRef) Meta() solana.AccountMeta {
	if r.IsWritable {
		return solana.NewAccountMeta(r.PublicKey, r.IsSigner)
	}
	return solana.NewReadonlyAccountMeta(r.PublicKey, r.IsSigner)
}

func (r AccountRef) String() string {
	return fmt.Sprintf("%s{key=%s,writable=%t,signer=%t}", r.Role, base58.Encode(r.PublicKey), r.IsWritable, r.IsSigner)
}

func (r AccountRef) clone() AccountRef {
	r.PublicKey = append(ed25519.PublicKey(nil), r.PublicKey...)
	return r
}

// AccountRole is one entry of an operation's role table.
type AccountRole struct {
	Name       string
	IsWritable bool
	IsSigner   bool
}

func (r AccountRole) ref(key ed25519.PublicKey) AccountRef {
	return AccountRef{
		Role:       r.Name,
		PublicKey:  key,
		IsWritable: r.IsWritable,
		IsSigner:   r.IsSigner,
	}
}

// AccountContract is the ordered, closed role table of an operation.
type AccountContract struct {
	operation Operation
	roles     []AccountRole
}

// NewAccountContract builds a role table, rejecting duplicate role names.
func NewAccountContract(op Operation, roles ...AccountRole) (*AccountContract, error) {
	seen := make(map[string]int, len(roles))
	for i, role := range roles {
		if len(role.Name) == 0 {
			return nil, newAccountContractViolation(op, i, role.Name, "empty role name")
		}
		if prev, ok := seen[role.Name]; ok {
			return nil, newAccountContractViolation(op, i, role.Name, fmt.Sprintf("duplicate role, first declared at index %d", prev))
		}
		seen[role.Name] = i
	}

	return &AccountContract{
		operation: op,
		roles:     append([]AccountRole(nil), roles...),
	}, nil
}

func mustAccountContract(op Operation, roles ...AccountRole) *AccountContract {
	contract, err := NewAccountContract(op, roles...)
	if err != nil {
		panic(err)
	}
	return contract
}

func (c *AccountContract) Operation() Operation {
	return c.operation
}

// Roles returns a copy of the role table.
func (c *AccountContract) Roles() []AccountRole {
	return append([]AccountRole(nil), c.roles...)
}

// Check verifies accounts match the role table exactly: same length, same
// role at every index, same writable and signer flags, and a key present
// at every position.
func (c *AccountContract) Check(accounts []AccountRef) error {
	if len(accounts) != len(c.roles) {
		return newAccountContractViolation(
			c.operation,
			-1,
			"",
			fmt.Sprintf("expected %d accounts, got %d", len(c.roles), len(accounts)),
		)
	}

	for i, role := range c.roles {
		actual := accounts[i]

		switch {
		case actual.Role != role.Name:
			return newAccountContractViolation(c.operation, i, role.Name, fmt.Sprintf("unexpected role %q", actual.Role))
		case actual.IsWritable != role.IsWritable:
			return newAccountContractViolation(c.operation, i, role.Name, fmt.Sprintf("writable must be %t", role.IsWritable))
		case actual.IsSigner != role.IsSigner:
			return newAccountContractViolation(c.operation, i, role.Name, fmt.Sprintf("signer must be %t", role.IsSigner))
		case len(actual.PublicKey) != ed25519.PublicKeySize:
			return newAccountContractViolation(c.operation, i, role.Name, "missing or malformed public key")
		}
	}

	return nil
}

// keyDeriver returns the keys a builder can derive on its own, by index. It
// only runs on accounts that already passed Check.
type keyDeriver func(accounts []AccountRef) (map[int]ed25519.PublicKey, error)

// checkKeys verifies every derivable position holds the derived key.
func (c *AccountContract) checkKeys(accounts []AccountRef, expected map[int]ed25519.PublicKey) error {
	for i, role := range c.roles {
		key, ok := expected[i]
		if !ok {
			continue
		}
		if !bytes.Equal(key, accounts[i].PublicKey) {
			return newAccountContractViolation(
				c.operation,
				i,
				role.Name,
				fmt.Sprintf("unexpected key %s, expected %s", base58.Encode(accounts[i].PublicKey), base58.Encode(key)),
			)
		}
	}
	return nil
}

// resolve pairs keys with the role table in order.
func (c *AccountContract) resolve(keys ...ed25519.PublicKey) []AccountRef {
	if len(keys) != len(c.roles) {
		panic(fmt.Sprintf("%s: resolved %d keys for %d roles", c.operation, len(keys), len(c.roles)))
	}

	refs := make([]AccountRef, len(keys))
	for i, key := range keys {
		refs[i] = c.roles[i].ref(key)
	}
	return refs
}

func isMissing(key ed25519.PublicKey) bool {
	return len(key) == 0
}

type identifier struct {
	name string
	key  ed25519.PublicKey
}

// requireIdentifiers fails on the first absent key, in declaration order.
func requireIdentifiers(op Operation, ids ...identifier) error {
	for _, id := range ids {
		if isMissing(id.key) {
			return newMissingIdentifierError(op, id.name)
		}
	}
	return nil
}
