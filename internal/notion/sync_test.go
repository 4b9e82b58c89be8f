package notion

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jomei/notionapi"
	"github.com/shopspring/decimal"

	"github.com/rmarques/granabot/internal/domain"
	"github.com/rmarques/granabot/internal/store/inmemory"
)

// fakePageService records calls instead of talking to Notion.
type fakePageService struct {
	pages    []notionapi.Page
	created  []notionapi.Properties
	updated  []string
	archived []string
}

func (f *fakePageService) CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error) {
	f.created = append(f.created, properties)
	return &notionapi.Page{ID: notionapi.ObjectID("new-page")}, nil
}

func (f *fakePageService) UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (*notionapi.Page, error) {
	f.updated = append(f.updated, pageID)
	return &notionapi.Page{ID: notionapi.ObjectID(pageID)}, nil
}

func (f *fakePageService) QueryDatabase(ctx context.Context, databaseID string, filter *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	return &notionapi.DatabaseQueryResponse{Results: f.pages, HasMore: false}, nil
}

func (f *fakePageService) DeletePage(ctx context.Context, pageID string) error {
	f.archived = append(f.archived, pageID)
	return nil
}

func mirrorPage(pageID, txID, userID string) notionapi.Page {
	return notionapi.Page{
		ID: notionapi.ObjectID(pageID),
		Properties: notionapi.Properties{
			"Transaction ID": &notionapi.TitleProperty{
				Title: []notionapi.RichText{{PlainText: txID}},
			},
			"User": &notionapi.RichTextProperty{
				RichText: []notionapi.RichText{{PlainText: userID}},
			},
		},
	}
}

func seedTx(t *testing.T, st *inmemory.Store, id, userID, desc, amount string, d civil.Date) {
	t.Helper()
	tx := &domain.Transaction{
		ID:          id,
		UserID:      userID,
		Kind:        domain.KindExpense,
		Description: desc,
		Category:    "Alimentação",
		Amount:      decimal.RequireFromString(amount),
		Date:        d,
	}
	if err := st.Append(context.Background(), tx); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
}

func TestSyncUser(t *testing.T) {
	ctx := context.Background()
	st := inmemory.New()

	today := civil.Date{Year: 2025, Month: 5, Day: 15}
	lastMonth := civil.Date{Year: 2025, Month: 4, Day: 1}

	seedTx(t, st, "tx-a", "ana", "Mercado", "120", today)
	seedTx(t, st, "tx-new", "ana", "Uber", "32.50", today)
	seedTx(t, st, "tx-old", "ana", "Farmácia", "45", lastMonth)
	seedTx(t, st, "tx-b", "bruno", "Cinema", "60", today)

	fake := &fakePageService{
		pages: []notionapi.Page{
			mirrorPage("page-a", "tx-a", "ana"),
			mirrorPage("page-old", "tx-old", "ana"),
			mirrorPage("page-b", "tx-b", "bruno"),
			mirrorPage("page-gone", "tx-gone", "ana"),
		},
	}

	if err := SyncUser(ctx, st, fake, "db", "ana", today, today, false); err != nil {
		t.Fatalf("SyncUser failed: %v", err)
	}

	// Only ana's page for a transaction she no longer has goes away. Her
	// out-of-period page and bruno's page stay put.
	if len(fake.archived) != 1 || fake.archived[0] != "page-gone" {
		t.Errorf("archived %v, want [page-gone]", fake.archived)
	}

	// tx-new has no page yet; tx-a is refreshed in place.
	if len(fake.created) != 1 {
		t.Fatalf("created %d pages, want 1", len(fake.created))
	}
	title := fake.created[0]["Transaction ID"].(notionapi.TitleProperty)
	if title.Title[0].Text.Content != "tx-new" {
		t.Errorf("created page for %q, want tx-new", title.Title[0].Text.Content)
	}
	if len(fake.updated) != 1 || fake.updated[0] != "page-a" {
		t.Errorf("updated %v, want [page-a]", fake.updated)
	}
}

func TestSyncUser_LeavesOtherUsersAlone(t *testing.T) {
	ctx := context.Background()
	st := inmemory.New()

	today := civil.Date{Year: 2025, Month: 5, Day: 15}
	seedTx(t, st, "tx-b", "bruno", "Cinema", "60", today)

	// ana has no transactions at all; bruno's mirror must survive her sync.
	fake := &fakePageService{
		pages: []notionapi.Page{mirrorPage("page-b", "tx-b", "bruno")},
	}

	if err := SyncUser(ctx, st, fake, "db", "ana", today, today, false); err != nil {
		t.Fatalf("SyncUser failed: %v", err)
	}
	if len(fake.archived) != 0 {
		t.Errorf("syncing ana archived %v, want nothing", fake.archived)
	}
	if len(fake.created) != 0 || len(fake.updated) != 0 {
		t.Errorf("syncing ana wrote: created=%d updated=%d", len(fake.created), len(fake.updated))
	}
}

func TestSyncUser_DryRunWritesNothing(t *testing.T) {
	ctx := context.Background()
	st := inmemory.New()

	today := civil.Date{Year: 2025, Month: 5, Day: 15}
	seedTx(t, st, "tx-a", "ana", "Mercado", "120", today)

	fake := &fakePageService{
		pages: []notionapi.Page{
			mirrorPage("page-a", "tx-a", "ana"),
			mirrorPage("page-gone", "tx-gone", "ana"),
		},
	}

	if err := SyncUser(ctx, st, fake, "db", "ana", today, today, true); err != nil {
		t.Fatalf("SyncUser failed: %v", err)
	}
	if len(fake.created) != 0 || len(fake.updated) != 0 || len(fake.archived) != 0 {
		t.Errorf("dry run wrote: created=%d updated=%d archived=%d",
			len(fake.created), len(fake.updated), len(fake.archived))
	}
}

func TestTransactionToProperties(t *testing.T) {
	tx := &domain.Transaction{
		ID:          "tx-a",
		UserID:      "ana",
		Kind:        domain.KindIncome,
		Description: "Salário",
		Category:    "Renda",
		Amount:      decimal.RequireFromString("3500.00"),
		Date:        civil.Date{Year: 2025, Month: 5, Day: 1},
	}

	props := TransactionToProperties(tx)

	if got := props["Amount"].(notionapi.NumberProperty).Number; got != 3500 {
		t.Errorf("Amount = %v, want 3500", got)
	}
	if got := props["Kind"].(notionapi.SelectProperty).Select.Name; got != "RECEITA" {
		t.Errorf("Kind = %q", got)
	}
	if got := props["User"].(notionapi.RichTextProperty).RichText[0].Text.Content; got != "ana" {
		t.Errorf("User = %q", got)
	}
	date := props["Date"].(notionapi.DateProperty).Date.Start
	want := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	if !time.Time(*date).Equal(want) {
		t.Errorf("Date = %v, want %v", time.Time(*date), want)
	}
}
