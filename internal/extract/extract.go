// Package extract pulls a structured transaction out of the free-text reply
// produced by the language model. The model is prompted to answer with a fixed
// set of labeled lines; each field is located independently by its marker, so
// field order in the reply does not matter. Extraction is all-or-nothing: a
// single missing marker or an unparseable amount fails the whole parse.
package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/rmarques/granabot/internal/domain"
)

// ErrNoTransaction is returned when the reply does not contain a complete
// labeled transaction. Callers treat it as "nothing to persist", never as a
// user-facing error; wrapped detail about which field failed is for logs only.
var ErrNoTransaction = errors.New("extract: no transaction in reply")

var (
	kindPattern        = regexp.MustCompile(`💸 Tipo: (.+)`)
	descriptionPattern = regexp.MustCompile(`🧾 Item: (.+)`)
	categoryPattern    = regexp.MustCompile(`🗂️ Categoria: (.+)`)
	amountPattern      = regexp.MustCompile(`💰 Valor: R\$ ([\d\.,]+)`)
)

// Extraction holds the fields captured from a model reply. The transaction
// date is deliberately absent: whatever date the model states is ignored and
// the processing date is used instead.
type Extraction struct {
	Kind        domain.Kind
	Description string
	Category    string
	Amount      decimal.Decimal
}

// Parse extracts a transaction from the model reply text.
func Parse(reply string) (*Extraction, error) {
	kindText, err := findField(kindPattern, reply, "tipo")
	if err != nil {
		return nil, err
	}
	description, err := findField(descriptionPattern, reply, "item")
	if err != nil {
		return nil, err
	}
	category, err := findField(categoryPattern, reply, "categoria")
	if err != nil {
		return nil, err
	}
	rawAmount, err := findField(amountPattern, reply, "valor")
	if err != nil {
		return nil, err
	}

	amount, err := parseAmount(rawAmount)
	if err != nil {
		return nil, err
	}

	return &Extraction{
		Kind:        classifyKind(kindText),
		Description: description,
		Category:    category,
		Amount:      amount,
	}, nil
}

// Transaction materializes the extraction as a record owned by userID, dated
// with the processing date.
func (e *Extraction) Transaction(userID string, date civil.Date) *domain.Transaction {
	return &domain.Transaction{
		UserID:      userID,
		Kind:        e.Kind,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount,
		Date:        date,
	}
}

// findField runs a single marker pattern over the whole reply. The capture is
// greedy to end of line, so emoji and punctuation inside the value survive but
// an embedded newline terminates the field.
func findField(pattern *regexp.Regexp, reply, name string) (string, error) {
	m := pattern.FindStringSubmatch(reply)
	if m == nil {
		return "", fmt.Errorf("%w: marker %q not found", ErrNoTransaction, name)
	}
	value := strings.TrimSpace(m[1])
	if value == "" {
		return "", fmt.Errorf("%w: field %q is empty", ErrNoTransaction, name)
	}
	return value, nil
}

// parseAmount converts the captured "1.234,56" style value into a decimal.
// Thousands dots are stripped and the decimal comma becomes a period.
func parseAmount(raw string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(raw, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")

	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: amount %q: %v", ErrNoTransaction, raw, err)
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: negative amount %q", ErrNoTransaction, raw)
	}
	return amount, nil
}

// classifyKind maps the free-text "Tipo" field onto the kind enum. The model
// answers variations of "Despesa"/"Receita"; anything that does not mention
// income is treated as an expense.
func classifyKind(text string) domain.Kind {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "receita") || strings.Contains(lower, "ganho") {
		return domain.KindIncome
	}
	return domain.KindExpense
}
