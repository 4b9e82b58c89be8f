package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
)

// PurgeUserWithClient deletes every message and transaction belonging to the
// user. Both DELETEs run inside one multi-statement transaction so a partial
// purge is never left behind.
func PurgeUserWithClient(ctx context.Context, client *bigquery.Client, datasetID, userID string) error {
	q := client.Query(fmt.Sprintf(`
		BEGIN TRANSACTION;

		DELETE FROM %s.%s WHERE user_id = @user_id;
		DELETE FROM %s.%s WHERE user_id = @user_id;

		COMMIT TRANSACTION;
	`, datasetID, messagesTable, datasetID, transactionsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("PurgeUser: running delete script: %w", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("PurgeUser: waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("PurgeUser: job error: %w", err)
	}

	return nil
}
