package extract

import (
	"errors"
	"testing"

	"cloud.google.com/go/civil"

	"github.com/rmarques/granabot/internal/domain"
)

const fullReply = `✅ Nova movimentação **registrada**!

💸 Tipo: Despesa
🧾 Item: Mercado
🗂️ Categoria: Alimentação
💰 Valor: R$ 120,00
📅 Data: 12/05/2025

💡 Dica: anote tudo que gastar no dia.`

func TestParse_FullReply(t *testing.T) {
	got, err := Parse(fullReply)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got.Kind != domain.KindExpense {
		t.Errorf("Kind = %q, want %q", got.Kind, domain.KindExpense)
	}
	if got.Description != "Mercado" {
		t.Errorf("Description = %q, want %q", got.Description, "Mercado")
	}
	if got.Category != "Alimentação" {
		t.Errorf("Category = %q, want %q", got.Category, "Alimentação")
	}
	if got.Amount.String() != "120" {
		t.Errorf("Amount = %s, want 120", got.Amount)
	}
}

func TestParse_FieldOrderDoesNotMatter(t *testing.T) {
	reply := "💰 Valor: R$ 35,50\n🗂️ Categoria: Transporte\n💸 Tipo: Despesa\n🧾 Item: Uber"

	got, err := Parse(reply)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got.Description != "Uber" || got.Category != "Transporte" {
		t.Errorf("got %+v, want Uber/Transporte", got)
	}
}

func TestParse_MissingMarkers(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"empty reply", ""},
		{"plain answer", "Você gastou demais esse mês! Tente economizar."},
		{"missing tipo", "🧾 Item: Mercado\n🗂️ Categoria: Alimentação\n💰 Valor: R$ 10,00"},
		{"missing item", "💸 Tipo: Despesa\n🗂️ Categoria: Alimentação\n💰 Valor: R$ 10,00"},
		{"missing categoria", "💸 Tipo: Despesa\n🧾 Item: Mercado\n💰 Valor: R$ 10,00"},
		{"missing valor", "💸 Tipo: Despesa\n🧾 Item: Mercado\n🗂️ Categoria: Alimentação"},
		{"valor without currency symbol", "💸 Tipo: Despesa\n🧾 Item: Mercado\n🗂️ Categoria: Alimentação\n💰 Valor: 10,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.reply); !errors.Is(err, ErrNoTransaction) {
				t.Errorf("Parse() error = %v, want ErrNoTransaction", err)
			}
		})
	}
}

func TestParse_Amounts(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"R$ 1.234,56", "1234.56", false},
		{"R$ 50", "50", false},
		{"R$ 0,99", "0.99", false},
		{"R$ 12.345.678,90", "12345678.9", false},
		{"R$ abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			reply := "💸 Tipo: Despesa\n🧾 Item: Compra\n🗂️ Categoria: Outros\n💰 Valor: " + tt.raw
			got, err := Parse(reply)
			if tt.wantErr {
				if !errors.Is(err, ErrNoTransaction) {
					t.Fatalf("Parse() error = %v, want ErrNoTransaction", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got.Amount.String() != tt.want {
				t.Errorf("Amount = %s, want %s", got.Amount, tt.want)
			}
		})
	}
}

func TestParse_FieldStopsAtNewline(t *testing.T) {
	reply := "💸 Tipo: Despesa\n🧾 Item: Jantar fora 🍕 (aniversário!)\nmais texto solto\n🗂️ Categoria: Lazer\n💰 Valor: R$ 89,90"

	got, err := Parse(reply)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got.Description != "Jantar fora 🍕 (aniversário!)" {
		t.Errorf("Description = %q, embedded newline should terminate the field", got.Description)
	}
}

func TestParse_IncomeKind(t *testing.T) {
	reply := "💸 Tipo: Receita 💵\n🧾 Item: Salário\n🗂️ Categoria: Renda\n💰 Valor: R$ 5.000,00"

	got, err := Parse(reply)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got.Kind != domain.KindIncome {
		t.Errorf("Kind = %q, want %q", got.Kind, domain.KindIncome)
	}
}

func TestTransaction_UsesProcessingDate(t *testing.T) {
	got, err := Parse(fullReply)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	today := civil.Date{Year: 2025, Month: 5, Day: 20}
	tx := got.Transaction("user-1", today)

	// The reply states 12/05/2025; the stored date must be the processing date.
	if tx.Date != today {
		t.Errorf("Date = %v, want processing date %v", tx.Date, today)
	}
	if tx.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", tx.UserID)
	}
}
