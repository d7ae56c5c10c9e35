package analytics

import (
	"context"
	"fmt"

	"github.com/rpattn/roaslytics/internal/domain"
	"github.com/rpattn/roaslytics/internal/repository"

	"github.com/shopspring/decimal"
)

// Service is the aggregation engine. Every method is a pure read taking
// its filter explicitly, so independent queries can run concurrently.
type Service struct {
	tracking repository.TrackingRepository
	payouts  repository.PayoutRepository
}

// NewService creates a new analytics service.
func NewService(tracking repository.TrackingRepository, payouts repository.PayoutRepository) *Service {
	return &Service{tracking: tracking, payouts: payouts}
}

// safeDiv returns num/den rounded to two decimal places, or zero when the
// denominator is zero. A dashboard shows 0, never infinity or NaN.
func safeDiv(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.DivRound(den, 2)
}

func safeDivInt(num decimal.Decimal, den int64) decimal.Decimal {
	return safeDiv(num, decimal.NewFromInt(den))
}

// TrackingSummary aggregates the filtered tracking set into one row.
func (s *Service) TrackingSummary(ctx context.Context, filter domain.AnalyticsFilter) (TrackingSummary, error) {
	totals, err := s.tracking.Totals(ctx, filter)
	if err != nil {
		return TrackingSummary{}, fmt.Errorf("tracking summary: %w", err)
	}

	return TrackingSummary{
		TotalRevenue:      totals.TotalRevenue,
		TotalOrders:       totals.TotalOrders,
		AverageOrderValue: totals.AvgOrderValue.Round(2),
		TotalCampaigns:    totals.DistinctCampaigns,
		TotalBrands:       totals.DistinctBrands,
		TotalInfluencers:  totals.DistinctInfluencers,
		DateRange:         filter.DateRangeLabel(),
	}, nil
}

// TrackingByCampaign breaks the filtered tracking set down per campaign,
// ordered by revenue descending.
func (s *Service) TrackingByCampaign(ctx context.Context, filter domain.AnalyticsFilter) ([]CampaignBreakdown, error) {
	groups, err := s.tracking.GroupTotals(ctx, filter, repository.TrackingGroupCampaign)
	if err != nil {
		return nil, fmt.Errorf("tracking by campaign: %w", err)
	}

	rows := make([]CampaignBreakdown, len(groups))
	for i, g := range groups {
		rows[i] = CampaignBreakdown{
			Campaign:      g.Key,
			TotalRevenue:  g.TotalRevenue,
			TotalOrders:   g.TotalOrders,
			AvgOrderValue: g.AvgOrderValue.Round(2),
		}
	}
	return rows, nil
}

// TrackingByInfluencer breaks the filtered tracking set down per
// influencer, ordered by revenue descending.
func (s *Service) TrackingByInfluencer(ctx context.Context, filter domain.AnalyticsFilter) ([]TrackingInfluencerBreakdown, error) {
	groups, err := s.tracking.GroupTotals(ctx, filter, repository.TrackingGroupInfluencer)
	if err != nil {
		return nil, fmt.Errorf("tracking by influencer: %w", err)
	}

	rows := make([]TrackingInfluencerBreakdown, len(groups))
	for i, g := range groups {
		rows[i] = TrackingInfluencerBreakdown{
			InfluencerName: g.Key,
			TotalRevenue:   g.TotalRevenue,
			TotalOrders:    g.TotalOrders,
			AvgOrderValue:  g.AvgOrderValue.Round(2),
		}
	}
	return rows, nil
}

// ROASAnalysis joins the payout-filtered and tracking-filtered subsets and
// derives return on ad spend. The same filters apply independently to both
// sides since they are different entities.
func (s *Service) ROASAnalysis(ctx context.Context, filter domain.AnalyticsFilter) (ROASAnalysis, error) {
	trackingTotals, err := s.tracking.Totals(ctx, filter)
	if err != nil {
		return ROASAnalysis{}, fmt.Errorf("roas analysis: %w", err)
	}
	payoutTotals, err := s.payouts.Totals(ctx, filter)
	if err != nil {
		return ROASAnalysis{}, fmt.Errorf("roas analysis: %w", err)
	}

	roas := safeDiv(trackingTotals.TotalRevenue, payoutTotals.TotalPayout)
	return ROASAnalysis{
		TotalRevenue:   trackingTotals.TotalRevenue,
		TotalPayouts:   payoutTotals.TotalPayout,
		ROAS:           roas,
		ROASPercentage: roas.Mul(decimal.NewFromInt(100)),
	}, nil
}

// PayoutSummary aggregates the filtered payout set into one row, with the
// revenue side re-computed under the same filters for the ROAS ratio.
func (s *Service) PayoutSummary(ctx context.Context, filter domain.AnalyticsFilter) (PayoutSummary, error) {
	payoutTotals, err := s.payouts.Totals(ctx, filter)
	if err != nil {
		return PayoutSummary{}, fmt.Errorf("payout summary: %w", err)
	}
	trackingTotals, err := s.tracking.Totals(ctx, filter)
	if err != nil {
		return PayoutSummary{}, fmt.Errorf("payout summary: %w", err)
	}

	return PayoutSummary{
		TotalPayouts:           payoutTotals.TotalPayout,
		TotalOrders:            payoutTotals.TotalOrders,
		AverageROAS:            safeDiv(trackingTotals.TotalRevenue, payoutTotals.TotalPayout),
		TotalInfluencers:       payoutTotals.DistinctInfluencers,
		AvgPayoutPerOrder:      safeDivInt(payoutTotals.TotalPayout, payoutTotals.TotalOrders),
		AvgPayoutPerInfluencer: safeDivInt(payoutTotals.TotalPayout, payoutTotals.DistinctInfluencers),
		TotalRevenue:           trackingTotals.TotalRevenue,
		DateRange:              filter.DateRangeLabel(),
	}, nil
}

// PayoutsByBasis breaks the filtered payout set down per basis. Basis has
// no tracking analogue, so every group's ROAS uses the overall filtered
// revenue.
func (s *Service) PayoutsByBasis(ctx context.Context, filter domain.AnalyticsFilter) ([]BasisBreakdown, error) {
	groups, err := s.payouts.GroupTotals(ctx, filter, repository.PayoutGroupBasis)
	if err != nil {
		return nil, fmt.Errorf("payouts by basis: %w", err)
	}
	trackingTotals, err := s.tracking.Totals(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("payouts by basis: %w", err)
	}

	rows := make([]BasisBreakdown, len(groups))
	for i, g := range groups {
		rows[i] = BasisBreakdown{
			Basis:           g.Key,
			TotalPayout:     g.TotalPayout,
			TotalOrders:     g.TotalOrders,
			AvgRate:         g.AvgRate.Round(2),
			InfluencerCount: g.InfluencerCount,
			AvgROAS:         safeDiv(trackingTotals.TotalRevenue, g.TotalPayout),
		}
	}
	return rows, nil
}

// PayoutsByPlatform breaks the filtered payout set down per platform. Each
// group's revenue comes from tracking data re-filtered to that platform,
// not from a proportional split of one precomputed total.
func (s *Service) PayoutsByPlatform(ctx context.Context, filter domain.AnalyticsFilter) ([]PlatformBreakdown, error) {
	groups, err := s.payouts.GroupTotals(ctx, filter, repository.PayoutGroupPlatform)
	if err != nil {
		return nil, fmt.Errorf("payouts by platform: %w", err)
	}

	rows := make([]PlatformBreakdown, len(groups))
	for i, g := range groups {
		trackingTotals, err := s.tracking.Totals(ctx, filter.WithPlatform(g.Key))
		if err != nil {
			return nil, fmt.Errorf("payouts by platform: %w", err)
		}
		rows[i] = PlatformBreakdown{
			Platform:        g.Key,
			TotalPayout:     g.TotalPayout,
			TotalOrders:     g.TotalOrders,
			InfluencerCount: g.InfluencerCount,
			TotalRevenue:    trackingTotals.TotalRevenue,
			AvgROAS:         safeDiv(trackingTotals.TotalRevenue, g.TotalPayout),
		}
	}
	return rows, nil
}

// PayoutsByCategory breaks the filtered payout set down per category with
// re-filtered revenue per group.
func (s *Service) PayoutsByCategory(ctx context.Context, filter domain.AnalyticsFilter) ([]CategoryBreakdown, error) {
	groups, err := s.payouts.GroupTotals(ctx, filter, repository.PayoutGroupCategory)
	if err != nil {
		return nil, fmt.Errorf("payouts by category: %w", err)
	}

	rows := make([]CategoryBreakdown, len(groups))
	for i, g := range groups {
		trackingTotals, err := s.tracking.Totals(ctx, filter.WithCategory(g.Key))
		if err != nil {
			return nil, fmt.Errorf("payouts by category: %w", err)
		}
		rows[i] = CategoryBreakdown{
			Category:        g.Key,
			TotalPayout:     g.TotalPayout,
			TotalOrders:     g.TotalOrders,
			InfluencerCount: g.InfluencerCount,
			TotalRevenue:    trackingTotals.TotalRevenue,
			AvgROAS:         safeDiv(trackingTotals.TotalRevenue, g.TotalPayout),
		}
	}
	return rows, nil
}

// PayoutsByInfluencer breaks the filtered payout set down per influencer,
// deriving each ROAS from that influencer's own tracking revenue.
func (s *Service) PayoutsByInfluencer(ctx context.Context, filter domain.AnalyticsFilter) ([]PayoutInfluencerBreakdown, error) {
	groups, err := s.payouts.GroupTotals(ctx, filter, repository.PayoutGroupInfluencer)
	if err != nil {
		return nil, fmt.Errorf("payouts by influencer: %w", err)
	}

	rows := make([]PayoutInfluencerBreakdown, len(groups))
	for i, g := range groups {
		trackingTotals, err := s.tracking.Totals(ctx, filter.WithInfluencer(g.Key))
		if err != nil {
			return nil, fmt.Errorf("payouts by influencer: %w", err)
		}
		rows[i] = PayoutInfluencerBreakdown{
			InfluencerName: g.Key,
			TotalPayout:    g.TotalPayout,
			TotalOrders:    g.TotalOrders,
			AvgROAS:        safeDiv(trackingTotals.TotalRevenue, g.TotalPayout),
		}
	}
	return rows, nil
}

// EfficiencyMetrics relates filtered payout spend to orders and influencer
// reach, alongside overall ROAS.
func (s *Service) EfficiencyMetrics(ctx context.Context, filter domain.AnalyticsFilter) (EfficiencyMetrics, error) {
	payoutTotals, err := s.payouts.Totals(ctx, filter)
	if err != nil {
		return EfficiencyMetrics{}, fmt.Errorf("efficiency metrics: %w", err)
	}
	trackingTotals, err := s.tracking.Totals(ctx, filter)
	if err != nil {
		return EfficiencyMetrics{}, fmt.Errorf("efficiency metrics: %w", err)
	}

	return EfficiencyMetrics{
		TotalPayouts:           payoutTotals.TotalPayout,
		TotalOrders:            payoutTotals.TotalOrders,
		TotalInfluencers:       payoutTotals.DistinctInfluencers,
		AvgPayoutPerOrder:      safeDivInt(payoutTotals.TotalPayout, payoutTotals.TotalOrders),
		AvgPayoutPerInfluencer: safeDivInt(payoutTotals.TotalPayout, payoutTotals.DistinctInfluencers),
		PayoutEfficiency:       safeDiv(decimal.NewFromInt(payoutTotals.TotalOrders), decimal.NewFromInt(payoutTotals.DistinctInfluencers)),
		OverallROAS:            safeDiv(trackingTotals.TotalRevenue, payoutTotals.TotalPayout),
		TotalRevenue:           trackingTotals.TotalRevenue,
		DateRange:              filter.DateRangeLabel(),
	}, nil
}

// TopPerformers ranks the ten highest-paid influencers across the whole
// dataset.
func (s *Service) TopPerformers(ctx context.Context) ([]TopPerformer, error) {
	groups, err := s.payouts.TopByPayout(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("top performers: %w", err)
	}

	rows := make([]TopPerformer, len(groups))
	for i, g := range groups {
		rows[i] = TopPerformer{
			InfluencerName: g.Key,
			TotalPayout:    g.TotalPayout,
			TotalOrders:    g.TotalOrders,
		}
	}
	return rows, nil
}
