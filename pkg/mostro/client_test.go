package mostro

import (
	"crypto/ed25519"
	"sync"

	"github.com/4alls/Mostro-MVP-Program/pkg/solana"
)

// fakeClient is an in memory solana.Client. Unset functions fall back to a
// ledger that accepts and confirms every transaction.
type fakeClient struct {
	getAccountInfo     func(ed25519.PublicKey, solana.Commitment) (solana.AccountInfo, error)
	getLatestBlockhash func() (solana.Blockhash, error)
	getSignatureStatus func(solana.Signature, solana.Commitment) (*solana.SignatureStatus, error)
	getTransaction     func(solana.Signature, solana.Commitment) (solana.ConfirmedTransaction, error)
	submitTransaction  func(solana.Transaction, solana.Commitment) (solana.Signature, error)

	mu        sync.Mutex
	submitted []solana.Transaction
}

var testBlockhash = solana.Blockhash{1, 2, 3}

func (f *fakeClient) GetAccountInfo(pub ed25519.PublicKey, commitment solana.Commitment) (solana.AccountInfo, error) {
	if f.getAccountInfo != nil {
		return f.getAccountInfo(pub, commitment)
	}
	return solana.AccountInfo{}, solana.ErrNoAccountInfo
}

func (f *fakeClient) GetLatestBlockhash() (solana.Blockhash, error) {
	if f.getLatestBlockhash != nil {
		return f.getLatestBlockhash()
	}
	return testBlockhash, nil
}

func (f *fakeClient) GetSignatureStatus(sig solana.Signature, commitment solana.Commitment) (*solana.SignatureStatus, error) {
	if f.getSignatureStatus != nil {
		return f.getSignatureStatus(sig, commitment)
	}
	return &solana.SignatureStatus{ConfirmationStatus: commitment.Commitment}, nil
}

func (f *fakeClient) GetSignatureStatuses(sigs []solana.Signature) ([]*solana.SignatureStatus, error) {
	statuses := make([]*solana.SignatureStatus, len(sigs))
	for i, sig := range sigs {
		s, err := f.GetSignatureStatus(sig, solana.CommitmentConfirmed)
		if err != nil {
			return nil, err
		}
		statuses[i] = s
	}
	return statuses, nil
}

func (f *fakeClient) GetTransaction(sig solana.Signature, commitment solana.Commitment) (solana.ConfirmedTransaction, error) {
	if f.getTransaction != nil {
		return f.getTransaction(sig, commitment)
	}
	return solana.ConfirmedTransaction{}, solana.ErrSignatureNotFound
}

func (f *fakeClient) SubmitTransaction(txn solana.Transaction, commitment solana.Commitment) (solana.Signature, error) {
	f.mu.Lock()
	f.submitted = append(f.submitted, txn)
	f.mu.Unlock()

	if f.submitTransaction != nil {
		return f.submitTransaction(txn, commitment)
	}
	return txn.Signature(), nil
}

func (f *fakeClient) submissions() []solana.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]solana.Transaction(nil), f.submitted...)
}
