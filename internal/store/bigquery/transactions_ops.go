package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/iterator"

	"github.com/rmarques/granabot/internal/domain"
	"github.com/rmarques/granabot/internal/store"
)

const transactionsTable = "transactions"

// InsertTransactionWithClient appends one transaction row.
func InsertTransactionWithClient(ctx context.Context, client *bigquery.Client, datasetID string, tx *domain.Transaction) error {
	row := transactionToRow(tx, time.Now())

	inserter := client.Dataset(datasetID).Table(transactionsTable).Inserter()
	if err := inserter.Put(ctx, row); err != nil {
		return fmt.Errorf("InsertTransaction: inserting row: %w", err)
	}
	return nil
}

// QueryTransactionsByPeriodWithClient returns the user's transactions with
// tx_date in the inclusive range [start, end], ordered by date then insertion.
// An inverted range naturally yields zero rows.
func QueryTransactionsByPeriodWithClient(ctx context.Context, client *bigquery.Client, datasetID, userID string, start, end civil.Date) ([]*domain.Transaction, error) {
	q := client.Query(fmt.Sprintf(`
		SELECT transaction_id, user_id, kind, description, category, amount, tx_date, created_ts
		FROM %s.%s
		WHERE user_id = @user_id
		  AND tx_date >= @start_date
		  AND tx_date <= @end_date
		ORDER BY tx_date, created_ts, transaction_id
	`, datasetID, transactionsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
		{Name: "start_date", Value: start},
		{Name: "end_date", Value: end},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("QueryTransactionsByPeriod: query read: %w", err)
	}

	var txs []*domain.Transaction
	for {
		var r TransactionRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("QueryTransactionsByPeriod: iter next: %w", err)
		}
		txs = append(txs, rowToTransaction(&r))
	}
	return txs, nil
}

// AggregateByCategoryWithClient sums the user's transactions grouped by
// category. Ordering by category name keeps repeated calls identical; NUMERIC
// arithmetic keeps the sums exact.
func AggregateByCategoryWithClient(ctx context.Context, client *bigquery.Client, datasetID, userID string) ([]store.CategoryTotal, error) {
	q := client.Query(fmt.Sprintf(`
		SELECT
			category,
			SUM(amount) AS total,
			SUM(IF(kind = @expense_kind, amount, 0)) AS expenses,
			SUM(IF(kind = @income_kind, amount, 0)) AS income
		FROM %s.%s
		WHERE user_id = @user_id
		GROUP BY category
		ORDER BY category
	`, datasetID, transactionsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
		{Name: "expense_kind", Value: string(domain.KindExpense)},
		{Name: "income_kind", Value: string(domain.KindIncome)},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("AggregateByCategory: query read: %w", err)
	}

	var totals []store.CategoryTotal
	for {
		var r categoryTotalRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("AggregateByCategory: iter next: %w", err)
		}
		totals = append(totals, store.CategoryTotal{
			Category: r.Category,
			Total:    ratToDecimal(r.Total),
			Expenses: ratToDecimal(r.Expenses),
			Income:   ratToDecimal(r.Income),
		})
	}
	return totals, nil
}
