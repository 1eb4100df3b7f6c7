package profile

import (
	"context"
	"fmt"
	"sync"

	"github.com/rugwatch/rugwatch/internal/token"
)

// ---------------------------------------------------------------------------
// Transaction Source — the external per-wallet history boundary
// ---------------------------------------------------------------------------

// TxSource supplies a wallet's recent transaction history. This is the only
// suspension point in profile building; scoring itself is pure.
// Implementations: MapTxSource (preloaded data), StubTxSource (testing).
type TxSource interface {
	WalletTransactions(ctx context.Context, owner string) ([]token.Transaction, error)
}

// MapTxSource serves transactions from a preloaded map. Wallets without an
// entry get an empty history, not an error.
type MapTxSource struct {
	txs map[string][]token.Transaction
}

// NewMapTxSource creates a map-backed transaction source.
func NewMapTxSource(txs map[string][]token.Transaction) *MapTxSource {
	if txs == nil {
		txs = make(map[string][]token.Transaction)
	}
	return &MapTxSource{txs: txs}
}

func (m *MapTxSource) WalletTransactions(_ context.Context, owner string) ([]token.Transaction, error) {
	return m.txs[owner], nil
}

// StubTxSource is a mock transaction source for testing.
type StubTxSource struct {
	mu      sync.RWMutex
	txs     map[string][]token.Transaction
	failing map[string]bool
}

// NewStubTxSource creates a stub transaction source.
func NewStubTxSource() *StubTxSource {
	return &StubTxSource{
		txs:     make(map[string][]token.Transaction),
		failing: make(map[string]bool),
	}
}

// SetTransactions registers a wallet's history for the stub to return.
func (s *StubTxSource) SetTransactions(owner string, txs []token.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs[owner] = txs
}

// FailWallet makes every fetch for the given wallet fail.
func (s *StubTxSource) FailWallet(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[owner] = true
}

func (s *StubTxSource) WalletTransactions(_ context.Context, owner string) ([]token.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failing[owner] {
		return nil, fmt.Errorf("stub: simulated fetch failure for %s", owner)
	}
	return s.txs[owner], nil
}
