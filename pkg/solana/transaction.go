package solana

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	// MaxTransactionSize taken from: https://github.com/solana-labs/solana/blob/39b3ac6a8d29e14faa1de73d8b46d390ad41797b/sdk/src/packet.rs#L9-L13
	MaxTransactionSize = 1232
)

var (
	ErrUnknownSigner    = errors.New("signer is not part of the transaction")
	ErrMissingSignature = errors.New("transaction is missing a required signature")
)

type Signature [ed25519.SignatureSize]byte
type Blockhash [sha256.Size]byte

func (s Signature) String() string {
	return base58.Encode(s[:])
}

type Header struct {
	NumSignatures     byte
	NumReadonlySigned byte
	NumReadOnly       byte
}

// Message is a legacy transaction message.
type Message struct {
	Header          Header
	Accounts        []ed25519.PublicKey
	RecentBlockhash Blockhash
	Instructions    []CompiledInstruction
}

type Transaction struct {
	Signatures []Signature
	Message    Message
}

// NewTransaction compiles the instructions into a legacy transaction paid for
// by payer. Accounts referenced by several instructions are merged, keeping the
// strongest permissions of any reference.
func NewTransaction(payer ed25519.PublicKey, instructions ...Instruction) Transaction {
	metas := []AccountMeta{
		{
			PublicKey:  payer,
			IsSigner:   true,
			IsWritable: true,
			isPayer:    true,
		},
	}
	for _, ix := range instructions {
		metas = append(metas, AccountMeta{PublicKey: ix.Program, isProgram: true})
		metas = append(metas, ix.Accounts...)
	}

	metas = mergeAccountMetas(metas)
	sort.Sort(SortableAccountMeta(metas))

	var m Message
	for _, meta := range metas {
		m.Accounts = append(m.Accounts, meta.PublicKey)

		switch {
		case meta.IsSigner && !meta.IsWritable:
			m.Header.NumSignatures++
			m.Header.NumReadonlySigned++
		case meta.IsSigner:
			m.Header.NumSignatures++
		case !meta.IsWritable:
			m.Header.NumReadOnly++
		}
	}

	for _, ix := range instructions {
		compiled := CompiledInstruction{
			ProgramIndex: byte(indexOf(m.Accounts, ix.Program)),
			Data:         ix.Data,
		}
		for _, a := range ix.Accounts {
			compiled.Accounts = append(compiled.Accounts, byte(indexOf(m.Accounts, a.PublicKey)))
		}
		m.Instructions = append(m.Instructions, compiled)
	}

	for i := range m.Accounts {
		if len(m.Accounts[i]) == 0 {
			m.Accounts[i] = make([]byte, ed25519.PublicKeySize)
		}
	}

	return Transaction{
		Signatures: make([]Signature, m.Header.NumSignatures),
		Message:    m,
	}
}

// Signature returns the transaction id, which is the payer's signature.
func (t *Transaction) Signature() Signature {
	if len(t.Signatures) == 0 {
		return Signature{}
	}
	return t.Signatures[0]
}

// RequiredSigners returns the accounts that must sign the transaction, in
// signature order.
func (t *Transaction) RequiredSigners() []ed25519.PublicKey {
	return t.Message.Accounts[:t.Message.Header.NumSignatures]
}

func (t *Transaction) SetBlockhash(bh Blockhash) {
	t.Message.RecentBlockhash = bh
}

// Sign signs the message with every provided key. Keys that are not required
// signers are rejected with ErrUnknownSigner.
func (t *Transaction) Sign(signers ...ed25519.PrivateKey) error {
	message := t.Message.Marshal()

	for _, s := range signers {
		pub := s.Public().(ed25519.PublicKey)

		index := indexOf(t.Message.Accounts, pub)
		if index < 0 || index >= len(t.Signatures) {
			return errors.Wrapf(ErrUnknownSigner, "account %s", base58.Encode(pub))
		}

		copy(t.Signatures[index][:], ed25519.Sign(s, message))
	}

	return nil
}

// VerifySignatures checks every required signature is present.
func (t *Transaction) VerifySignatures() error {
	for i, signer := range t.RequiredSigners() {
		if t.Signatures[i] == (Signature{}) {
			return errors.Wrapf(ErrMissingSignature, "account %s", base58.Encode(signer))
		}
	}
	return nil
}

func (t *Transaction) String() string {
	var sb strings.Builder
	sb.WriteString("Signatures:\n")
	for i, s := range t.Signatures {
		fmt.Fprintf(&sb, "  %d: %s\n", i, s)
	}
	sb.WriteString("Message:\n")
	fmt.Fprintf(&sb, "  Header: signatures=%d readonly_signed=%d readonly=%d\n",
		t.Message.Header.NumSignatures,
		t.Message.Header.NumReadonlySigned,
		t.Message.Header.NumReadOnly,
	)
	sb.WriteString("  Accounts:\n")
	for i, a := range t.Message.Accounts {
		fmt.Fprintf(&sb, "    %d: %s\n", i, base58.Encode(a))
	}
	sb.WriteString("  Instructions:\n")
	for i, ix := range t.Message.Instructions {
		fmt.Fprintf(&sb, "    %d: program=%d accounts=%v data=%v\n", i, ix.ProgramIndex, ix.Accounts, ix.Data)
	}
	return sb.String()
}

func mergeAccountMetas(accounts []AccountMeta) []AccountMeta {
	merged := make([]AccountMeta, 0, len(accounts))

outer:
	for _, a := range accounts {
		for j := range merged {
			if !bytes.Equal(a.PublicKey, merged[j].PublicKey) {
				continue
			}

			merged[j].IsSigner = merged[j].IsSigner || a.IsSigner
			merged[j].IsWritable = merged[j].IsWritable || a.IsWritable
			merged[j].isPayer = merged[j].isPayer || a.isPayer
			continue outer
		}

		merged = append(merged, a)
	}

	return merged
}

func indexOf(slice []ed25519.PublicKey, item ed25519.PublicKey) int {
	for i, val := range slice {
		if bytes.Equal(val, item) {
			return i
		}
	}
	return -1
}
