package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/boulderlog/boulderlog/internal/live"
)

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Notifier is told which table a write touched.
type Notifier interface {
	Touch(t live.Table)
}

type nopNotifier struct{}

func (nopNotifier) Touch(live.Table) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// parseNullableTime parses a sql.NullString into a *time.Time.
// Returns nil if the value is NULL or empty.
func parseNullableTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nullableTimeToString returns nil (SQL NULL) for a nil pointer.
func nullableTimeToString(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// nullableIntToValue returns nil (SQL NULL) for a nil pointer.
func nullableIntToValue(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// whereClause builds "column = ?" for an indexed column of a table. A nil
// value matches NULL.
func whereClause(table string, indexed map[string]bool, field string, value any) (string, []any, error) {
	column := strings.ToLower(field)
	if !indexed[column] {
		return "", nil, fmt.Errorf("%w: %s has no indexed field %q", domain.ErrValidation, table, field)
	}
	if value == nil {
		return column + " IS NULL", nil, nil
	}
	return column + " = ?", []any{queryValue(value)}, nil
}

func queryValue(v any) any {
	switch x := v.(type) {
	case bool:
		return boolToInt(x)
	case time.Time:
		return formatTime(x)
	case *time.Time:
		return nullableTimeToString(x)
	case domain.AttemptType:
		return string(x)
	default:
		return v
	}
}
