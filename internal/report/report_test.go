package report

import (
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/rmarques/granabot/internal/domain"
	"github.com/rmarques/granabot/internal/store"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"50", "R$ 50,00"},
		{"120.5", "R$ 120,50"},
		{"1234.56", "R$ 1.234,56"},
		{"12345678.9", "R$ 12.345.678,90"},
		{"-35.5", "R$ -35,50"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := FormatMoney(decimal.RequireFromString(tt.in))
			if got != tt.want {
				t.Errorf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPeriodSummary_Empty(t *testing.T) {
	start := civil.Date{Year: 2025, Month: 5, Day: 1}
	end := civil.Date{Year: 2025, Month: 5, Day: 15}

	got := PeriodSummary(start, end, nil)
	if got == "" {
		t.Fatal("empty period must still render an explicit message")
	}
	if !strings.Contains(got, "Nenhuma movimentação") {
		t.Errorf("empty period message = %q", got)
	}
}

func TestPeriodSummary(t *testing.T) {
	start := civil.Date{Year: 2025, Month: 5, Day: 1}
	end := civil.Date{Year: 2025, Month: 5, Day: 31}
	txs := []*domain.Transaction{
		{
			Kind:        domain.KindIncome,
			Description: "Salário",
			Category:    "Renda",
			Amount:      decimal.RequireFromString("5000"),
			Date:        civil.Date{Year: 2025, Month: 5, Day: 5},
		},
		{
			Kind:        domain.KindExpense,
			Description: "Mercado",
			Category:    "Alimentação",
			Amount:      decimal.RequireFromString("120"),
			Date:        civil.Date{Year: 2025, Month: 5, Day: 10},
		},
	}

	got := PeriodSummary(start, end, txs)

	for _, want := range []string{
		"Resumo de 01/05/2025 a 31/05/2025",
		"💸 Despesas: R$ 120,00",
		"💰 Receitas: R$ 5.000,00",
		"Mercado (Alimentação): R$ 120,00 — 10/05/2025",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q in:\n%s", want, got)
		}
	}

	// Same input, same text.
	if again := PeriodSummary(start, end, txs); again != got {
		t.Error("PeriodSummary is not deterministic")
	}
}

func TestCategoryTotals(t *testing.T) {
	totals := []store.CategoryTotal{
		{Category: "Alimentação", Total: decimal.RequireFromString("134.5")},
		{Category: "Renda", Total: decimal.RequireFromString("800")},
	}

	got := CategoryTotals(totals)

	for _, want := range []string{
		"Alimentação: R$ 134,50",
		"Renda: R$ 800,00",
		"Total geral: R$ 934,50",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("totals missing %q in:\n%s", want, got)
		}
	}
}

func TestCategoryTotals_Empty(t *testing.T) {
	got := CategoryTotals(nil)
	if !strings.Contains(got, "Nenhuma movimentação registrada") {
		t.Errorf("empty totals message = %q", got)
	}
}
