// Package assistant orchestrates one pass per inbound chat message: history
// window, model call, transaction extraction, persistence and command
// handling. All failures are converted into friendly reply texts here; the
// caller just delivers whatever string comes back.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rmarques/granabot/internal/domain"
	"github.com/rmarques/granabot/internal/extract"
	"github.com/rmarques/granabot/internal/llm"
	"github.com/rmarques/granabot/internal/period"
	"github.com/rmarques/granabot/internal/report"
	"github.com/rmarques/granabot/internal/store"
)

// DefaultMaxHistory is the number of recent turns sent to the model.
const DefaultMaxHistory = 10

// Store is the persistence surface the assistant needs.
type Store interface {
	store.MessageStore
	store.TransactionStore
	store.Purger
}

// Assistant handles one user interaction at a time. There is no per-user
// mutual exclusion: two messages from the same user racing each other is an
// accepted limitation, and history is persisted strictly in arrival order.
type Assistant struct {
	store      Store
	model      llm.ChatModel
	maxHistory int
	now        func() time.Time
	log        zerolog.Logger
}

// New creates an assistant. maxHistory <= 0 falls back to DefaultMaxHistory.
func New(st Store, model llm.ChatModel, maxHistory int, log zerolog.Logger) *Assistant {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Assistant{
		store:      st,
		model:      model,
		maxHistory: maxHistory,
		now:        time.Now,
		log:        log,
	}
}

// HandleText processes one free-text message and returns the reply to send.
func (a *Assistant) HandleText(ctx context.Context, userID, text string) string {
	text = strings.TrimSpace(text)

	if err := a.store.AppendTurn(ctx, domain.Turn{UserID: userID, Role: domain.RoleUser, Content: text}); err != nil {
		a.log.Error().Err(err).Str("user_id", userID).Msg("saving user turn failed")
		return msgGenericError
	}

	history, err := a.store.RecentHistory(ctx, userID, a.maxHistory)
	if err != nil {
		a.log.Error().Err(err).Str("user_id", userID).Msg("loading history failed")
		return msgGenericError
	}

	turns := make([]domain.Turn, 0, len(history)+1)
	turns = append(turns, domain.Turn{UserID: userID, Role: domain.RoleSystem, Content: systemPrompt})
	turns = append(turns, history...)

	reply, err := a.model.Chat(ctx, turns)
	if err != nil {
		a.log.Error().Err(err).Str("user_id", userID).Msg("model call failed")
		return msgGenericError
	}

	if err := a.store.AppendTurn(ctx, domain.Turn{UserID: userID, Role: domain.RoleAssistant, Content: reply}); err != nil {
		a.log.Error().Err(err).Str("user_id", userID).Msg("saving assistant turn failed")
		return msgGenericError
	}

	if err := a.recordTransaction(ctx, userID, reply); err != nil {
		a.log.Error().Err(err).Str("user_id", userID).Msg("persisting transaction failed")
		return msgGenericError
	}

	return reply
}

// recordTransaction tries to extract and persist a transaction from the
// model reply. A reply without a complete labeled transaction is normal and
// skipped silently; only storage failures are returned.
func (a *Assistant) recordTransaction(ctx context.Context, userID, reply string) error {
	ext, err := extract.Parse(reply)
	if err != nil {
		if errors.Is(err, extract.ErrNoTransaction) {
			// Field-level detail stays on the log channel only.
			a.log.Debug().Err(err).Str("user_id", userID).Msg("no transaction in reply")
			return nil
		}
		return err
	}

	tx := ext.Transaction(userID, civil.DateOf(a.now()))
	tx.ID = uuid.NewString()
	return a.store.Append(ctx, tx)
}

// HandleCommand processes a slash command and returns the reply to send.
func (a *Assistant) HandleCommand(ctx context.Context, userID, command, args string) string {
	switch command {
	case "start":
		return msgGreeting
	case "resumo":
		return a.periodSummary(ctx, userID, args)
	case "total":
		return a.categoryTotals(ctx, userID)
	case "limpar":
		return a.purge(ctx, userID, args)
	default:
		return msgUnknownCommand
	}
}

func (a *Assistant) periodSummary(ctx context.Context, userID, expr string) string {
	today := civil.DateOf(a.now())

	start, end, err := period.Resolve(expr, today)
	if err != nil {
		if errors.Is(err, period.ErrBadDateRange) {
			return msgBadDateRange
		}
		return msgUnknownPeriod
	}

	txs, err := a.store.QueryByPeriod(ctx, userID, start, end)
	if err != nil {
		a.log.Error().Err(err).Str("user_id", userID).Msg("period query failed")
		return msgGenericError
	}

	return report.PeriodSummary(start, end, txs)
}

func (a *Assistant) categoryTotals(ctx context.Context, userID string) string {
	totals, err := a.store.AggregateByCategory(ctx, userID)
	if err != nil {
		a.log.Error().Err(err).Str("user_id", userID).Msg("aggregation failed")
		return msgGenericError
	}

	return report.CategoryTotals(totals)
}

// purge implements the two-step destructive flow: without the literal
// confirmation token nothing is mutated.
func (a *Assistant) purge(ctx context.Context, userID, args string) string {
	if strings.TrimSpace(strings.ToLower(args)) != "confirmar" {
		return msgPurgeWarning
	}

	if err := a.store.PurgeUser(ctx, userID); err != nil {
		a.log.Error().Err(err).Str("user_id", userID).Msg("purge failed")
		return msgGenericError
	}

	a.log.Info().Str("user_id", userID).Msg("user data purged")
	return msgPurgeDone
}
