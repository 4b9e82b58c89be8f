package notion

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jomei/notionapi"

	"github.com/rmarques/granabot/internal/logger"
	"github.com/rmarques/granabot/internal/store"
)

// The mirror database is shared by all users, so stale-page detection must
// consider every transaction the user owns, not just the synced period.
var (
	mirrorEpoch   = civil.Date{Year: 1, Month: time.January, Day: 1}
	mirrorHorizon = civil.Date{Year: 9999, Month: time.December, Day: 31}
)

// SyncUser mirrors one user's transactions in a date range into the Notion
// database. Only pages owned by the user are touched: pages whose transaction
// id is no longer stored for that user are archived, in-period transactions
// get their page created or refreshed, other users' pages are left alone.
// With dryRun set nothing is written, only logged.
func SyncUser(ctx context.Context, txs store.TransactionStore, pages PageService, databaseID, userID string, start, end civil.Date, dryRun bool) error {
	log := logger.FromContext(ctx)

	log.Info().
		Str("user_id", userID).
		Str("start", start.String()).
		Str("end", end.String()).
		Bool("dry_run", dryRun).
		Msg("Starting transaction sync to Notion")

	inPeriod, err := txs.QueryByPeriod(ctx, userID, start, end)
	if err != nil {
		return fmt.Errorf("SyncUser: querying period transactions: %w", err)
	}

	allStored, err := txs.QueryByPeriod(ctx, userID, mirrorEpoch, mirrorHorizon)
	if err != nil {
		return fmt.Errorf("SyncUser: querying all transactions: %w", err)
	}

	validIDs := make(map[string]bool, len(allStored))
	for _, tx := range allStored {
		validIDs[tx.ID] = true
	}

	notionPages, err := queryAllPages(ctx, pages, databaseID)
	if err != nil {
		return fmt.Errorf("SyncUser: querying Notion pages: %w", err)
	}

	// Page ids of the user's own mirror pages, keyed by transaction id.
	ownPageIDs := make(map[string]string)
	for _, page := range notionPages {
		if extractUser(page) != userID {
			continue
		}
		if id := extractTransactionID(page); id != "" {
			ownPageIDs[id] = string(page.ID)
		}
	}

	var archived int
	for _, page := range notionPages {
		if extractUser(page) != userID {
			continue
		}
		id := extractTransactionID(page)
		if id != "" && validIDs[id] {
			continue
		}

		if dryRun {
			log.Info().
				Str("transaction_id", id).
				Str("page_id", string(page.ID)).
				Msg("[DRY RUN] Would archive stale Notion page")
			archived++
			continue
		}

		if err := pages.DeletePage(ctx, string(page.ID)); err != nil {
			log.Warn().
				Err(err).
				Str("transaction_id", id).
				Str("page_id", string(page.ID)).
				Msg("Failed to archive stale Notion page")
			continue
		}
		archived++
	}

	var created, updated int
	for _, tx := range inPeriod {
		pageID, exists := ownPageIDs[tx.ID]

		if dryRun {
			if exists {
				log.Info().
					Str("transaction_id", tx.ID).
					Str("page_id", pageID).
					Msg("[DRY RUN] Would update Notion page")
				updated++
			} else {
				log.Info().
					Str("transaction_id", tx.ID).
					Msg("[DRY RUN] Would create Notion page")
				created++
			}
			continue
		}

		if exists {
			if _, err := pages.UpdatePage(ctx, pageID, TransactionToProperties(tx)); err != nil {
				log.Warn().
					Err(err).
					Str("transaction_id", tx.ID).
					Str("page_id", pageID).
					Msg("Failed to update Notion page")
				continue
			}
			updated++
			continue
		}

		page, err := pages.CreatePage(ctx, databaseID, TransactionToProperties(tx))
		if err != nil {
			log.Warn().
				Err(err).
				Str("transaction_id", tx.ID).
				Msg("Failed to create Notion page")
			continue
		}
		log.Info().
			Str("transaction_id", tx.ID).
			Str("page_id", string(page.ID)).
			Msg("Created Notion page")
		created++
	}

	log.Info().
		Int("archived", archived).
		Int("created", created).
		Int("updated", updated).
		Int("total", len(inPeriod)).
		Msg("Transaction sync completed")

	return nil
}

// queryAllPages walks the database cursor by cursor.
func queryAllPages(ctx context.Context, pages PageService, databaseID string) ([]notionapi.Page, error) {
	var all []notionapi.Page
	var cursor notionapi.Cursor

	for {
		req := &notionapi.DatabaseQueryRequest{
			PageSize: 100,
		}
		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := pages.QueryDatabase(ctx, databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("queryAllPages: %w", err)
		}

		all = append(all, resp.Results...)

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return all, nil
}
