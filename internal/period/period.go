// Package period resolves a user-supplied period expression into a concrete
// date range. Expressions are either a keyword ("hoje", "semana", "mes") or an
// explicit "dd/mm/yyyy a dd/mm/yyyy" pair.
package period

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

var (
	// ErrUnknownPeriod means the expression matched no keyword and no
	// explicit range form.
	ErrUnknownPeriod = errors.New("period: expression not recognized")

	// ErrBadDateRange means the expression looked like an explicit range but
	// one of the dates is not a valid dd/mm/yyyy date.
	ErrBadDateRange = errors.New("period: invalid explicit date range")
)

const (
	rangeSeparator = " a "
	dateLayout     = "02/01/2006"
)

// Resolve interprets expr relative to today. Keywords are case-insensitive
// and take precedence over the explicit form. An inverted explicit range is
// returned unchanged; the query layer answers it with an empty result set.
func Resolve(expr string, today civil.Date) (start, end civil.Date, err error) {
	normalized := strings.ToLower(strings.TrimSpace(expr))

	switch normalized {
	case "hoje":
		return today, today, nil
	case "semana":
		// Trailing 7-day window, not aligned to calendar weeks.
		return today.AddDays(-7), today, nil
	case "mes", "mês":
		first := civil.Date{Year: today.Year, Month: today.Month, Day: 1}
		return first, today, nil
	}

	if strings.Contains(normalized, rangeSeparator) {
		return resolveExplicit(normalized)
	}

	return civil.Date{}, civil.Date{}, ErrUnknownPeriod
}

func resolveExplicit(expr string) (civil.Date, civil.Date, error) {
	parts := strings.SplitN(expr, rangeSeparator, 2)

	start, err := parseDate(parts[0])
	if err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	end, err := parseDate(parts[1])
	if err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	return start, end, nil
}

func parseDate(s string) (civil.Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: %q", ErrBadDateRange, s)
	}
	return civil.DateOf(t), nil
}
