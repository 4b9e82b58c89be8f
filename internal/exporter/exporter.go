// Package exporter renders a user's transactions to CSV and ships the file
// to a Cloud Storage bucket.
package exporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"cloud.google.com/go/storage"

	"github.com/rmarques/granabot/internal/domain"
)

var csvHeader = []string{"transaction_id", "date", "kind", "description", "category", "amount"}

// BuildCSV renders transactions in query order. Amounts use the decimal
// point, dates ISO format, so the file loads cleanly into spreadsheets.
func BuildCSV(txs []*domain.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("BuildCSV: writing header: %w", err)
	}

	for _, tx := range txs {
		record := []string{
			tx.ID,
			tx.Date.String(),
			string(tx.Kind),
			tx.Description,
			tx.Category,
			tx.Amount.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("BuildCSV: writing record %s: %w", tx.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("BuildCSV: flushing: %w", err)
	}

	return buf.Bytes(), nil
}

// ObjectName builds the bucket path for one export run.
func ObjectName(userID string, now time.Time) string {
	return fmt.Sprintf("exports/%s/%s/transactions-%s.csv",
		now.UTC().Format("2006/01/02"), userID, now.UTC().Format("150405"))
}

// Upload writes the CSV bytes to the bucket under the given object name.
// Application Default Credentials are assumed.
func Upload(ctx context.Context, bucketName, objectName string, data []byte) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("Upload: creating storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	w.ContentType = "text/csv"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("Upload: writing object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("Upload: finalizing upload: %w", err)
	}

	return nil
}

// Export renders and uploads in one call, returning the object name.
func Export(ctx context.Context, bucketName, userID string, txs []*domain.Transaction, now time.Time) (string, error) {
	data, err := BuildCSV(txs)
	if err != nil {
		return "", err
	}

	objectName := ObjectName(userID, now)
	if err := Upload(ctx, bucketName, objectName, data); err != nil {
		return "", err
	}

	return objectName, nil
}
