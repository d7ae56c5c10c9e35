package analytics

import "github.com/shopspring/decimal"

// Result sets returned by the aggregation engine. Raw sums keep full
// precision; derived ratios are rounded to two decimal places.

// TrackingSummary is the single-row totals view over tracking data.
type TrackingSummary struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalOrders       int64           `json:"total_orders"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	TotalCampaigns    int64           `json:"total_campaigns"`
	TotalBrands       int64           `json:"total_brands"`
	TotalInfluencers  int64           `json:"total_influencers"`
	DateRange         string          `json:"date_range"`
}

// CampaignBreakdown is one campaign's share of tracking data.
type CampaignBreakdown struct {
	Campaign      string          `json:"campaign"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalOrders   int64           `json:"total_orders"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
}

// TrackingInfluencerBreakdown is one influencer's share of tracking data.
type TrackingInfluencerBreakdown struct {
	InfluencerName string          `json:"influencer_name"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalOrders    int64           `json:"total_orders"`
	AvgOrderValue  decimal.Decimal `json:"avg_order_value"`
}

// ROASAnalysis compares attributed revenue against payout spend.
type ROASAnalysis struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalPayouts   decimal.Decimal `json:"total_payouts"`
	ROAS           decimal.Decimal `json:"roas"`
	ROASPercentage decimal.Decimal `json:"roas_percentage"`
}

// PayoutSummary is the single-row totals view over payouts, with the
// revenue side re-computed under the same filters.
type PayoutSummary struct {
	TotalPayouts           decimal.Decimal `json:"total_payouts"`
	TotalOrders            int64           `json:"total_orders"`
	AverageROAS            decimal.Decimal `json:"average_roas"`
	TotalInfluencers       int64           `json:"total_influencers"`
	AvgPayoutPerOrder      decimal.Decimal `json:"avg_payout_per_order"`
	AvgPayoutPerInfluencer decimal.Decimal `json:"avg_payout_per_influencer"`
	TotalRevenue           decimal.Decimal `json:"total_revenue"`
	DateRange              string          `json:"date_range"`
}

// BasisBreakdown is one payout-basis group.
type BasisBreakdown struct {
	Basis           string          `json:"basis"`
	TotalPayout     decimal.Decimal `json:"total_payout"`
	TotalOrders     int64           `json:"total_orders"`
	AvgRate         decimal.Decimal `json:"avg_rate"`
	InfluencerCount int64           `json:"influencer_count"`
	AvgROAS         decimal.Decimal `json:"avg_roas"`
}

// PlatformBreakdown is one platform group with its re-filtered revenue.
type PlatformBreakdown struct {
	Platform        string          `json:"platform"`
	TotalPayout     decimal.Decimal `json:"total_payout"`
	TotalOrders     int64           `json:"total_orders"`
	InfluencerCount int64           `json:"influencer_count"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	AvgROAS         decimal.Decimal `json:"avg_roas"`
}

// CategoryBreakdown is one category group with its re-filtered revenue.
type CategoryBreakdown struct {
	Category        string          `json:"category"`
	TotalPayout     decimal.Decimal `json:"total_payout"`
	TotalOrders     int64           `json:"total_orders"`
	InfluencerCount int64           `json:"influencer_count"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	AvgROAS         decimal.Decimal `json:"avg_roas"`
}

// PayoutInfluencerBreakdown is one influencer's payouts with ROAS from
// that influencer's tracking revenue.
type PayoutInfluencerBreakdown struct {
	InfluencerName string          `json:"influencer_name"`
	TotalPayout    decimal.Decimal `json:"total_payout"`
	TotalOrders    int64           `json:"total_orders"`
	AvgROAS        decimal.Decimal `json:"avg_roas"`
}

// EfficiencyMetrics relates payout spend to orders and influencer reach.
type EfficiencyMetrics struct {
	TotalPayouts           decimal.Decimal `json:"total_payouts"`
	TotalOrders            int64           `json:"total_orders"`
	TotalInfluencers       int64           `json:"total_influencers"`
	AvgPayoutPerOrder      decimal.Decimal `json:"avg_payout_per_order"`
	AvgPayoutPerInfluencer decimal.Decimal `json:"avg_payout_per_influencer"`
	PayoutEfficiency       decimal.Decimal `json:"payout_efficiency"`
	OverallROAS            decimal.Decimal `json:"overall_roas"`
	TotalRevenue           decimal.Decimal `json:"total_revenue"`
	DateRange              string          `json:"date_range"`
}

// TopPerformer is one row of the highest-paid influencer ranking.
type TopPerformer struct {
	InfluencerName string          `json:"influencer_name"`
	TotalPayout    decimal.Decimal `json:"total_payout"`
	TotalOrders    int64           `json:"total_orders"`
}
