package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/rmarques/granabot/internal/domain"
)

const messagesTable = "messages"

// InsertTurnWithClient appends one conversation turn to the messages table.
func InsertTurnWithClient(ctx context.Context, client *bigquery.Client, datasetID string, turn domain.Turn) error {
	row := &MessageRow{
		MessageID: uuid.NewString(),
		UserID:    turn.UserID,
		Role:      string(turn.Role),
		Content:   turn.Content,
		CreatedTS: time.Now(),
	}

	inserter := client.Dataset(datasetID).Table(messagesTable).Inserter()
	if err := inserter.Put(ctx, row); err != nil {
		return fmt.Errorf("InsertTurn: inserting row: %w", err)
	}
	return nil
}

// QueryRecentTurnsWithClient returns the most recent limit turns for the user
// in chronological order. The query fetches newest-first and the result is
// reversed, so the window always ends at the latest message.
func QueryRecentTurnsWithClient(ctx context.Context, client *bigquery.Client, datasetID, userID string, limit int) ([]domain.Turn, error) {
	q := client.Query(fmt.Sprintf(`
		SELECT message_id, user_id, role, content, created_ts
		FROM %s.%s
		WHERE user_id = @user_id
		ORDER BY created_ts DESC, message_id DESC
		LIMIT @row_limit
	`, datasetID, messagesTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
		{Name: "row_limit", Value: int64(limit)},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("QueryRecentTurns: query read: %w", err)
	}

	var newestFirst []domain.Turn
	for {
		var r MessageRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("QueryRecentTurns: iter next: %w", err)
		}
		newestFirst = append(newestFirst, domain.Turn{
			UserID:  r.UserID,
			Role:    domain.Role(r.Role),
			Content: r.Content,
		})
	}

	// Reverse to chronological order.
	turns := make([]domain.Turn, 0, len(newestFirst))
	for i := len(newestFirst) - 1; i >= 0; i-- {
		turns = append(turns, newestFirst[i])
	}
	return turns, nil
}
