// Package store defines the persistence contracts for conversation history
// and transactions. Implementations live in the bigquery and inmemory
// subpackages; everything is scoped by user so two users can never observe
// each other's data.
package store

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/rmarques/granabot/internal/domain"
)

// MessageStore persists the conversation history used as model context.
type MessageStore interface {
	// AppendTurn adds one turn to the user's history.
	AppendTurn(ctx context.Context, turn domain.Turn) error

	// RecentHistory returns the most recent limit turns for the user in
	// chronological order (oldest first).
	RecentHistory(ctx context.Context, userID string, limit int) ([]domain.Turn, error)
}

// TransactionStore is an append-only log of transactions per user.
type TransactionStore interface {
	// Append adds one immutable transaction record.
	Append(ctx context.Context, tx *domain.Transaction) error

	// QueryByPeriod returns the user's transactions with date in the
	// inclusive range [start, end], ordered by date then insertion. An
	// inverted range yields an empty result, never an error.
	QueryByPeriod(ctx context.Context, userID string, start, end civil.Date) ([]*domain.Transaction, error)

	// AggregateByCategory sums amounts across all of the user's
	// transactions grouped by category, ordered by category name so that
	// repeated calls over unchanged data are identical.
	AggregateByCategory(ctx context.Context, userID string) ([]CategoryTotal, error)
}

// Purger removes every message and transaction belonging to one user. From
// the caller's point of view the purge is atomic: either both tables are
// cleared or the operation reports failure with the data intact.
type Purger interface {
	PurgeUser(ctx context.Context, userID string) error
}

// CategoryTotal is one row of the category aggregation. Total is the combined
// sum the user-facing report shows; the per-kind subtotals are available for
// callers that want the split.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Expenses decimal.Decimal
	Income   decimal.Decimal
}
