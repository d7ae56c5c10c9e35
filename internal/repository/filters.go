package repository

import (
	"fmt"
	"strings"

	"github.com/rpattn/roaslytics/internal/domain"
)

// trackingFilterSQL renders the filter as a WHERE clause for queries over
// tracking_data t joined to influencers i. Positional arguments are
// numbered in the order they are appended.
func trackingFilterSQL(f domain.AnalyticsFilter) (string, []any) {
	var clauses []string
	var args []any
	add := func(expr string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(expr, len(args)))
	}

	if f.HasDateRange() {
		add("t.date >= $%d", *f.StartDate)
		add("t.date <= $%d", *f.EndDate)
	}
	if f.Platform != "" {
		add("i.platform = $%d", f.Platform)
	}
	if f.Category != "" {
		add("i.category = $%d", f.Category)
	}
	if f.Gender != "" {
		add("i.gender = $%d", f.Gender)
	}
	if f.Brand != "" {
		add("t.brand = $%d", f.Brand)
	}
	if f.Influencer != "" {
		add("i.name = $%d", f.Influencer)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// payoutFilterSQL renders the filter for queries over payouts p joined to
// influencers i. Brand has no payout analogue and is ignored here; basis
// has no tracking analogue and is ignored above.
func payoutFilterSQL(f domain.AnalyticsFilter) (string, []any) {
	var clauses []string
	var args []any
	add := func(expr string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(expr, len(args)))
	}

	if f.HasDateRange() {
		add("p.payout_date >= $%d", *f.StartDate)
		add("p.payout_date <= $%d", *f.EndDate)
	}
	if f.Platform != "" {
		add("i.platform = $%d", f.Platform)
	}
	if f.Category != "" {
		add("i.category = $%d", f.Category)
	}
	if f.Gender != "" {
		add("i.gender = $%d", f.Gender)
	}
	if f.Basis != "" {
		add("p.basis = $%d", f.Basis)
	}
	if f.Influencer != "" {
		add("i.name = $%d", f.Influencer)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
