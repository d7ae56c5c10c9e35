package domain

import (
	"fmt"
	"time"
)

// AnalyticsFilter narrows an aggregation query. Every field is optional;
// the zero value selects the whole dataset. The date range only applies
// when both ends are present.
type AnalyticsFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Platform   string
	Category   string
	Gender     string
	Brand      string
	Basis      string
	Influencer string
}

// HasDateRange reports whether both range boundaries were supplied.
func (f AnalyticsFilter) HasDateRange() bool {
	return f.StartDate != nil && f.EndDate != nil
}

// DateRangeLabel renders the range for display in summary responses.
func (f AnalyticsFilter) DateRangeLabel() string {
	if !f.HasDateRange() {
		return "All time"
	}
	return fmt.Sprintf("%s to %s", f.StartDate.Format(time.DateOnly), f.EndDate.Format(time.DateOnly))
}

// WithPlatform returns a copy of the filter narrowed to one platform.
func (f AnalyticsFilter) WithPlatform(platform string) AnalyticsFilter {
	f.Platform = platform
	return f
}

// WithCategory returns a copy of the filter narrowed to one category.
func (f AnalyticsFilter) WithCategory(category string) AnalyticsFilter {
	f.Category = category
	return f
}

// WithInfluencer returns a copy of the filter narrowed to one influencer name.
func (f AnalyticsFilter) WithInfluencer(name string) AnalyticsFilter {
	f.Influencer = name
	return f
}
