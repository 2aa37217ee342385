package solana

import (
	"bytes"
	"crypto/ed25519"
	"io"

	"github.com/pkg/errors"

	"github.com/4alls/Mostro-MVP-Program/pkg/solana/shortvec"
)

// Marshal encodes the transaction in its wire format.
func (t Transaction) Marshal() []byte {
	b := bytes.NewBuffer(nil)

	_, _ = shortvec.EncodeLen(b, len(t.Signatures))
	for _, s := range t.Signatures {
		_, _ = b.Write(s[:])
	}
	_, _ = b.Write(t.Message.Marshal())

	return b.Bytes()
}

// Unmarshal decodes a legacy transaction from its wire format.
func (t *Transaction) Unmarshal(b []byte) error {
	buf := bytes.NewBuffer(b)

	n, err := shortvec.DecodeLen(buf)
	if err != nil {
		return errors.Wrap(err, "failed to read signature count")
	}

	t.Signatures = make([]Signature, n)
	for i := range t.Signatures {
		if _, err := io.ReadFull(buf, t.Signatures[i][:]); err != nil {
			return errors.Wrapf(err, "failed to read signature %d", i)
		}
	}

	return t.Message.Unmarshal(buf.Bytes())
}

// Marshal encodes the message bytes that are signed.
func (m Message) Marshal() []byte {
	b := bytes.NewBuffer(nil)

	_ = b.WriteByte(m.Header.NumSignatures)
	_ = b.WriteByte(m.Header.NumReadonlySigned)
	_ = b.WriteByte(m.Header.NumReadOnly)

	_, _ = shortvec.EncodeLen(b, len(m.Accounts))
	for _, a := range m.Accounts {
		_, _ = b.Write(a)
	}

	_, _ = b.Write(m.RecentBlockhash[:])

	_, _ = shortvec.EncodeLen(b, len(m.Instructions))
	for _, ix := range m.Instructions {
		_ = b.WriteByte(ix.ProgramIndex)

		_, _ = shortvec.EncodeLen(b, len(ix.Accounts))
		_, _ = b.Write(ix.Accounts)

		_, _ = shortvec.EncodeLen(b, len(ix.Data))
		_, _ = b.Write(ix.Data)
	}

	return b.Bytes()
}

// Unmarshal decodes a legacy message. Versioned messages are rejected.
func (m *Message) Unmarshal(b []byte) (err error) {
	if len(b) == 0 {
		return errors.New("empty message")
	}
	if b[0]&0x80 != 0 {
		return errors.New("versioned messages not supported")
	}

	buf := bytes.NewBuffer(b)

	for _, dst := range []*byte{&m.Header.NumSignatures, &m.Header.NumReadonlySigned, &m.Header.NumReadOnly} {
		if *dst, err = buf.ReadByte(); err != nil {
			return errors.Wrap(err, "failed to read header")
		}
	}

	n, err := shortvec.DecodeLen(buf)
	if err != nil {
		return errors.Wrap(err, "failed to read account count")
	}
	m.Accounts = make([]ed25519.PublicKey, n)
	for i := range m.Accounts {
		m.Accounts[i] = make([]byte, ed25519.PublicKeySize)
		if _, err = io.ReadFull(buf, m.Accounts[i]); err != nil {
			return errors.Wrapf(err, "failed to read account %d", i)
		}
	}

	if _, err = io.ReadFull(buf, m.RecentBlockhash[:]); err != nil {
		return errors.Wrap(err, "failed to read recent blockhash")
	}

	if n, err = shortvec.DecodeLen(buf); err != nil {
		return errors.Wrap(err, "failed to read instruction count")
	}
	m.Instructions = make([]CompiledInstruction, n)
	for i := range m.Instructions {
		ix := &m.Instructions[i]

		if ix.ProgramIndex, err = buf.ReadByte(); err != nil {
			return errors.Wrapf(err, "failed to read instruction %d program index", i)
		}
		if int(ix.ProgramIndex) >= len(m.Accounts) {
			return errors.Errorf("instruction %d program index out of range: %d", i, ix.ProgramIndex)
		}

		if ix.Accounts, err = readShortVec(buf); err != nil {
			return errors.Wrapf(err, "failed to read instruction %d accounts", i)
		}
		for _, index := range ix.Accounts {
			if int(index) >= len(m.Accounts) {
				return errors.Errorf("instruction %d account index out of range: %d", i, index)
			}
		}

		if ix.Data, err = readShortVec(buf); err != nil {
			return errors.Wrapf(err, "failed to read instruction %d data", i)
		}
	}

	return nil
}

func readShortVec(buf *bytes.Buffer) ([]byte, error) {
	n, err := shortvec.DecodeLen(buf)
	if err != nil {
		return nil, err
	}

	v := make([]byte, n)
	if _, err := io.ReadFull(buf, v); err != nil {
		return nil, err
	}
	return v, nil
}
