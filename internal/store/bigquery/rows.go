package bigquery

import (
	"math/big"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/rmarques/granabot/internal/domain"
)

// MessageRow is one row of the messages table (append-only conversation
// history).
type MessageRow struct {
	MessageID string    `bigquery:"message_id"` // REQUIRED
	UserID    string    `bigquery:"user_id"`    // REQUIRED
	Role      string    `bigquery:"role"`       // REQUIRED
	Content   string    `bigquery:"content"`    // REQUIRED
	CreatedTS time.Time `bigquery:"created_ts"` // REQUIRED, orders the history
}

// TransactionRow is one row of the transactions table. Amount is NUMERIC;
// TxDate carries no time component.
type TransactionRow struct {
	TransactionID string     `bigquery:"transaction_id"` // REQUIRED
	UserID        string     `bigquery:"user_id"`        // REQUIRED
	Kind          string     `bigquery:"kind"`           // REQUIRED, DESPESA or RECEITA
	Description   string     `bigquery:"description"`    // REQUIRED
	Category      string     `bigquery:"category"`       // REQUIRED, free-text tag
	Amount        *big.Rat   `bigquery:"amount"`         // REQUIRED NUMERIC
	TxDate        civil.Date `bigquery:"tx_date"`        // REQUIRED
	CreatedTS     time.Time  `bigquery:"created_ts"`     // REQUIRED
}

// categoryTotalRow is the shape of the aggregation query result.
type categoryTotalRow struct {
	Category string   `bigquery:"category"`
	Total    *big.Rat `bigquery:"total"`
	Expenses *big.Rat `bigquery:"expenses"`
	Income   *big.Rat `bigquery:"income"`
}

func transactionToRow(tx *domain.Transaction, createdTS time.Time) *TransactionRow {
	return &TransactionRow{
		TransactionID: tx.ID,
		UserID:        tx.UserID,
		Kind:          string(tx.Kind),
		Description:   tx.Description,
		Category:      tx.Category,
		Amount:        tx.Amount.Rat(),
		TxDate:        tx.Date,
		CreatedTS:     createdTS,
	}
}

func rowToTransaction(row *TransactionRow) *domain.Transaction {
	return &domain.Transaction{
		ID:          row.TransactionID,
		UserID:      row.UserID,
		Kind:        domain.Kind(row.Kind),
		Description: row.Description,
		Category:    row.Category,
		Amount:      ratToDecimal(row.Amount),
		Date:        row.TxDate,
	}
}

// ratToDecimal converts a NUMERIC value back to a decimal with money scale.
func ratToDecimal(r *big.Rat) decimal.Decimal {
	if r == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(r.FloatString(2))
	if err != nil {
		return decimal.Zero
	}
	return d
}
