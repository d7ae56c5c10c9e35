package ingestion

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The field helpers share the numeric and date parsing rules across all
// four resolvers. Their errors are rejection reasons, not infrastructure
// failures.

func fieldValue(rec Record, key string) string {
	return rec[key]
}

func requiredField(rec Record, key string) (string, error) {
	value := strings.TrimSpace(rec[key])
	if value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

func stringField(rec Record, key, fallback string) string {
	if value := rec[key]; value != "" {
		return value
	}
	return fallback
}

func intField(rec Record, key string, fallback int) (int, error) {
	value := strings.TrimSpace(rec[key])
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", key, value)
	}
	return parsed, nil
}

func decimalField(rec Record, key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	value := strings.TrimSpace(rec[key])
	if value == "" {
		return fallback, nil
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: must be a decimal number", key, value)
	}
	return parsed, nil
}

// dateField parses the fixed YYYY-MM-DD calendar format. A malformed date
// rejects the row before any mutation.
func dateField(rec Record, key string) (time.Time, error) {
	value := strings.TrimSpace(rec[key])
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", key)
	}
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: must be YYYY-MM-DD", value)
	}
	return parsed, nil
}
