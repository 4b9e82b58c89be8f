// Package bigquery implements the store contracts on BigQuery. Rows live in
// two append-only tables, messages and transactions, both scoped by user_id.
package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/rmarques/granabot/internal/domain"
	"github.com/rmarques/granabot/internal/store"
)

// Repository holds a shared BigQuery client and delegates to the WithClient
// operation functions.
type Repository struct {
	client    *bigquery.Client
	datasetID string
}

// NewRepository creates a repository backed by the given project and dataset.
func NewRepository(ctx context.Context, projectID, datasetID string) (*Repository, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewRepository: bigquery client: %w", err)
	}
	return &Repository{client: client, datasetID: datasetID}, nil
}

// Close releases the underlying client connection.
func (r *Repository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// AppendTurn implements store.MessageStore.
func (r *Repository) AppendTurn(ctx context.Context, turn domain.Turn) error {
	return InsertTurnWithClient(ctx, r.client, r.datasetID, turn)
}

// RecentHistory implements store.MessageStore.
func (r *Repository) RecentHistory(ctx context.Context, userID string, limit int) ([]domain.Turn, error) {
	return QueryRecentTurnsWithClient(ctx, r.client, r.datasetID, userID, limit)
}

// Append implements store.TransactionStore.
func (r *Repository) Append(ctx context.Context, tx *domain.Transaction) error {
	return InsertTransactionWithClient(ctx, r.client, r.datasetID, tx)
}

// QueryByPeriod implements store.TransactionStore.
func (r *Repository) QueryByPeriod(ctx context.Context, userID string, start, end civil.Date) ([]*domain.Transaction, error) {
	return QueryTransactionsByPeriodWithClient(ctx, r.client, r.datasetID, userID, start, end)
}

// AggregateByCategory implements store.TransactionStore.
func (r *Repository) AggregateByCategory(ctx context.Context, userID string) ([]store.CategoryTotal, error) {
	return AggregateByCategoryWithClient(ctx, r.client, r.datasetID, userID)
}

// PurgeUser implements store.Purger.
func (r *Repository) PurgeUser(ctx context.Context, userID string) error {
	return PurgeUserWithClient(ctx, r.client, r.datasetID, userID)
}

var (
	_ store.MessageStore     = (*Repository)(nil)
	_ store.TransactionStore = (*Repository)(nil)
	_ store.Purger           = (*Repository)(nil)
)
