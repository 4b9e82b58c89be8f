package notion

import (
	"time"

	"github.com/jomei/notionapi"

	"github.com/rmarques/granabot/internal/domain"
)

// TransactionToProperties converts a stored transaction to the property set
// of the mirror database. The transaction id lives in the title column so it
// can be read back for deduplication.
func TransactionToProperties(tx *domain.Transaction) notionapi.Properties {
	amount, _ := tx.Amount.Float64()

	props := notionapi.Properties{
		"Transaction ID": notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: tx.ID,
					},
				},
			},
		},
		"Description": notionapi.RichTextProperty{
			RichText: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: tx.Description,
					},
				},
			},
		},
		"Amount": notionapi.NumberProperty{
			Number: amount,
		},
		"Kind": notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: string(tx.Kind),
			},
		},
		"Date": notionapi.DateProperty{
			Date: &notionapi.DateObject{
				Start: func() *notionapi.Date {
					d := notionapi.Date(time.Date(
						tx.Date.Year,
						tx.Date.Month,
						tx.Date.Day,
						0, 0, 0, 0, time.UTC,
					))
					return &d
				}(),
			},
		},
	}

	if tx.Category != "" {
		props["Category"] = notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: tx.Category,
			},
		}
	}

	if tx.UserID != "" {
		props["User"] = notionapi.RichTextProperty{
			RichText: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: tx.UserID,
					},
				},
			},
		}
	}

	return props
}

// extractTransactionID reads the transaction id back out of a mirror page.
// Returns empty string if the title column is missing or empty.
func extractTransactionID(page notionapi.Page) string {
	prop, ok := page.Properties["Transaction ID"]
	if !ok {
		return ""
	}
	title, ok := prop.(*notionapi.TitleProperty)
	if !ok || len(title.Title) == 0 {
		return ""
	}
	return title.Title[0].PlainText
}

// extractUser reads the owning user id out of a mirror page. Pages without
// the User column belong to nobody and are never touched by a sync.
func extractUser(page notionapi.Page) string {
	prop, ok := page.Properties["User"]
	if !ok {
		return ""
	}
	rt, ok := prop.(*notionapi.RichTextProperty)
	if !ok || len(rt.RichText) == 0 {
		return ""
	}
	return rt.RichText[0].PlainText
}
