package domain

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Kind classifies a transaction as money going out or coming in.
type Kind string

const (
	KindExpense Kind = "DESPESA"
	KindIncome  Kind = "RECEITA"
)

// Transaction represents one financial movement extracted from a model reply.
// Records are immutable once stored; the only delete path is a full per-user
// purge. Amount is kept as an exact decimal so repeated aggregations return
// identical totals.
type Transaction struct {
	ID          string
	UserID      string
	Kind        Kind
	Description string
	Category    string
	Amount      decimal.Decimal
	Date        civil.Date // calendar date only, always the processing date
}
