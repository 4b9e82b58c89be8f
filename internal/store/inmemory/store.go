// Package inmemory provides a mutex-guarded implementation of the store
// contracts. Data is lost on restart; it backs the package tests.
package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/rmarques/granabot/internal/domain"
	"github.com/rmarques/granabot/internal/store"
)

type storedTurn struct {
	seq  int64
	turn domain.Turn
}

type storedTransaction struct {
	seq int64
	tx  domain.Transaction
}

// Store keeps per-user history and transactions in memory. It is safe for
// concurrent use; writes are serialized at store granularity.
type Store struct {
	mu      sync.RWMutex
	nextSeq int64
	turns   map[string][]storedTurn
	txs     map[string][]storedTransaction
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		turns: make(map[string][]storedTurn),
		txs:   make(map[string][]storedTransaction),
	}
}

// AppendTurn implements store.MessageStore.
func (s *Store) AppendTurn(ctx context.Context, turn domain.Turn) error {
	if turn.UserID == "" {
		return fmt.Errorf("AppendTurn: user id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	s.turns[turn.UserID] = append(s.turns[turn.UserID], storedTurn{seq: s.nextSeq, turn: turn})
	return nil
}

// RecentHistory implements store.MessageStore. It returns the most recent
// limit turns in chronological order.
func (s *Store) RecentHistory(ctx context.Context, userID string, limit int) ([]domain.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.turns[userID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}

	result := make([]domain.Turn, 0, len(all))
	for _, st := range all {
		result = append(result, st.turn)
	}
	return result, nil
}

// Append implements store.TransactionStore.
func (s *Store) Append(ctx context.Context, tx *domain.Transaction) error {
	if tx.UserID == "" {
		return fmt.Errorf("Append: user id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	// Copy so later caller mutations cannot reach stored state.
	s.txs[tx.UserID] = append(s.txs[tx.UserID], storedTransaction{seq: s.nextSeq, tx: *tx})
	return nil
}

// QueryByPeriod implements store.TransactionStore.
func (s *Store) QueryByPeriod(ctx context.Context, userID string, start, end civil.Date) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Transaction
	for _, st := range s.txs[userID] {
		if st.tx.Date.Before(start) || st.tx.Date.After(end) {
			continue
		}
		tx := st.tx
		result = append(result, &tx)
	}

	// Insertion order already matches id order; sort by date first to keep
	// the listing contract, with insertion order breaking ties.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

// AggregateByCategory implements store.TransactionStore. Amounts are summed
// in ascending insertion order and categories reported in ascending name
// order, so repeated calls over unchanged data return identical rows.
func (s *Store) AggregateByCategory(ctx context.Context, userID string) ([]store.CategoryTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]*store.CategoryTotal)
	for _, st := range s.txs[userID] {
		ct, ok := totals[st.tx.Category]
		if !ok {
			ct = &store.CategoryTotal{
				Category: st.tx.Category,
				Total:    decimal.Zero,
				Expenses: decimal.Zero,
				Income:   decimal.Zero,
			}
			totals[st.tx.Category] = ct
		}

		ct.Total = ct.Total.Add(st.tx.Amount)
		switch st.tx.Kind {
		case domain.KindIncome:
			ct.Income = ct.Income.Add(st.tx.Amount)
		default:
			ct.Expenses = ct.Expenses.Add(st.tx.Amount)
		}
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]store.CategoryTotal, 0, len(names))
	for _, name := range names {
		result = append(result, *totals[name])
	}
	return result, nil
}

// PurgeUser implements store.Purger. Both maps are cleared under one lock, so
// no partial purge is ever observable.
func (s *Store) PurgeUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.turns, userID)
	delete(s.txs, userID)
	return nil
}

var (
	_ store.MessageStore     = (*Store)(nil)
	_ store.TransactionStore = (*Store)(nil)
	_ store.Purger           = (*Store)(nil)
)
