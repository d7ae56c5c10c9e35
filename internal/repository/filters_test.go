package repository

import (
	"testing"
	"time"

	"github.com/rpattn/roaslytics/internal/domain"
)

func TestTrackingFilterSQLEmpty(t *testing.T) {
	where, args := trackingFilterSQL(domain.AnalyticsFilter{})
	if where != "" || args != nil {
		t.Errorf("expected no clause for empty filter, got %q %v", where, args)
	}
}

func TestTrackingFilterSQLAllFields(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	filter := domain.AnalyticsFilter{
		StartDate:  &start,
		EndDate:    &end,
		Platform:   "instagram",
		Category:   "fitness",
		Gender:     "female",
		Brand:      "acme",
		Influencer: "Maya Patel",
	}

	where, args := trackingFilterSQL(filter)
	want := " WHERE t.date >= $1 AND t.date <= $2 AND i.platform = $3 AND i.category = $4 AND i.gender = $5 AND t.brand = $6 AND i.name = $7"
	if where != want {
		t.Errorf("expected %q, got %q", want, where)
	}
	if len(args) != 7 {
		t.Fatalf("expected 7 args, got %d", len(args))
	}
	if args[2] != "instagram" || args[5] != "acme" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestTrackingFilterSQLIgnoresBasis(t *testing.T) {
	where, args := trackingFilterSQL(domain.AnalyticsFilter{Basis: "post"})
	if where != "" || args != nil {
		t.Errorf("basis has no tracking analogue, got %q %v", where, args)
	}
}

func TestTrackingFilterSQLOneSidedRange(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	where, _ := trackingFilterSQL(domain.AnalyticsFilter{StartDate: &start})
	if where != "" {
		t.Errorf("one-sided range must not filter, got %q", where)
	}
}

func TestPayoutFilterSQLAllFields(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	filter := domain.AnalyticsFilter{
		StartDate:  &start,
		EndDate:    &end,
		Platform:   "instagram",
		Category:   "fitness",
		Gender:     "female",
		Basis:      "post",
		Influencer: "Maya Patel",
	}

	where, args := payoutFilterSQL(filter)
	want := " WHERE p.payout_date >= $1 AND p.payout_date <= $2 AND i.platform = $3 AND i.category = $4 AND i.gender = $5 AND p.basis = $6 AND i.name = $7"
	if where != want {
		t.Errorf("expected %q, got %q", want, where)
	}
	if len(args) != 7 {
		t.Errorf("expected 7 args, got %d", len(args))
	}
}

func TestPayoutFilterSQLIgnoresBrand(t *testing.T) {
	where, args := payoutFilterSQL(domain.AnalyticsFilter{Brand: "acme"})
	if where != "" || args != nil {
		t.Errorf("brand has no payout analogue, got %q %v", where, args)
	}
}
