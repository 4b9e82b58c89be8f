// Package report renders query results into the chat replies the user sees.
// Rendering is pure: same input, same text, no side effects.
package report

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/rmarques/granabot/internal/domain"
	"github.com/rmarques/granabot/internal/store"
)

// Messages shown when there is nothing to report. Rendering never returns an
// empty body.
const (
	emptyPeriodMessage = "📭 Nenhuma movimentação encontrada nesse período."
	emptyTotalsMessage = "📭 Nenhuma movimentação registrada ainda."
)

// PeriodSummary renders the transactions of one period: expense and income
// subtotals followed by the individual movements in query order.
func PeriodSummary(start, end civil.Date, txs []*domain.Transaction) string {
	if len(txs) == 0 {
		return emptyPeriodMessage
	}

	expenses := decimal.Zero
	income := decimal.Zero
	for _, tx := range txs {
		if tx.Kind == domain.KindIncome {
			income = income.Add(tx.Amount)
		} else {
			expenses = expenses.Add(tx.Amount)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Resumo de %s a %s\n\n", FormatDate(start), FormatDate(end))
	fmt.Fprintf(&b, "💸 Despesas: %s\n", FormatMoney(expenses))
	fmt.Fprintf(&b, "💰 Receitas: %s\n\n", FormatMoney(income))

	for _, tx := range txs {
		fmt.Fprintf(&b, "• %s (%s): %s — %s\n", tx.Description, tx.Category, FormatMoney(tx.Amount), FormatDate(tx.Date))
	}

	return strings.TrimRight(b.String(), "\n")
}

// CategoryTotals renders the all-time aggregation. The combined total per
// category is the baseline; per-kind subtotals stay internal to the rows.
func CategoryTotals(totals []store.CategoryTotal) string {
	if len(totals) == 0 {
		return emptyTotalsMessage
	}

	grand := decimal.Zero

	var b strings.Builder
	b.WriteString("🗂️ Total por categoria\n\n")
	for _, ct := range totals {
		fmt.Fprintf(&b, "• %s: %s\n", ct.Category, FormatMoney(ct.Total))
		grand = grand.Add(ct.Total)
	}
	fmt.Fprintf(&b, "\n💰 Total geral: %s", FormatMoney(grand))

	return b.String()
}

// FormatMoney renders an amount in the "R$ 1.234,56" format the bot speaks.
func FormatMoney(d decimal.Decimal) string {
	fixed := d.StringFixed(2) // e.g. "1234.56" or "-1234.56"

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	return fmt.Sprintf("R$ %s%s,%s", sign, strings.Join(groups, "."), fracPart)
}

// FormatDate renders a calendar date as dd/mm/yyyy.
func FormatDate(d civil.Date) string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}
