package ingestion

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRequiredField(t *testing.T) {
	rec := Record{"name": " Maya ", "blank": "   "}

	got, err := requiredField(rec, "name")
	if err != nil {
		t.Fatalf("requiredField returned error: %v", err)
	}
	if got != "Maya" {
		t.Errorf("expected trimmed value %q, got %q", "Maya", got)
	}

	if _, err := requiredField(rec, "blank"); err == nil || !strings.Contains(err.Error(), "blank is required") {
		t.Errorf("expected required error for blank field, got %v", err)
	}
	if _, err := requiredField(rec, "missing"); err == nil {
		t.Errorf("expected required error for missing field")
	}
}

func TestIntField(t *testing.T) {
	rec := Record{"orders": " 42 ", "bad": "abc", "empty": ""}

	if got, err := intField(rec, "orders", 0); err != nil || got != 42 {
		t.Errorf("expected 42, got %d err %v", got, err)
	}
	if got, err := intField(rec, "empty", 7); err != nil || got != 7 {
		t.Errorf("expected fallback 7, got %d err %v", got, err)
	}
	if _, err := intField(rec, "bad", 0); err == nil || !strings.Contains(err.Error(), "must be an integer") {
		t.Errorf("expected integer error, got %v", err)
	}
}

func TestDecimalField(t *testing.T) {
	rec := Record{"revenue": "10.10", "bad": "ten", "empty": ""}

	got, err := decimalField(rec, "revenue", decimal.Zero)
	if err != nil {
		t.Fatalf("decimalField returned error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("10.10")) {
		t.Errorf("expected 10.10, got %s", got)
	}

	if got, err := decimalField(rec, "empty", decimal.NewFromInt(5)); err != nil || !got.Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected fallback 5, got %s err %v", got, err)
	}
	if _, err := decimalField(rec, "bad", decimal.Zero); err == nil || !strings.Contains(err.Error(), "must be a decimal number") {
		t.Errorf("expected decimal error, got %v", err)
	}
}

func TestDateField(t *testing.T) {
	rec := Record{"date": " 2024-03-15 ", "bad": "15/03/2024", "empty": ""}

	got, err := dateField(rec, "date")
	if err != nil {
		t.Fatalf("dateField returned error: %v", err)
	}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if _, err := dateField(rec, "bad"); err == nil || !strings.Contains(err.Error(), "must be YYYY-MM-DD") {
		t.Errorf("expected date format error, got %v", err)
	}
	if _, err := dateField(rec, "empty"); err == nil || !strings.Contains(err.Error(), "empty is required") {
		t.Errorf("expected required error, got %v", err)
	}
}
