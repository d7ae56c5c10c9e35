package repository

import (
	"context"
	"fmt"

	"github.com/rpattn/roaslytics/internal/domain"

	"github.com/shopspring/decimal"
)

// trackingRepository implements TrackingRepository over a pgx querier.
type trackingRepository struct {
	q Querier
}

// NewTrackingRepository creates a new tracking data repository.
func NewTrackingRepository(q Querier) TrackingRepository {
	return &trackingRepository{q: q}
}

func (r *trackingRepository) CreateIfAbsent(ctx context.Context, td domain.TrackingData) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`INSERT INTO tracking_data (id, source, campaign, brand, influencer_id, user_id, product, date, orders, revenue, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::numeric, $11)
		 ON CONFLICT (user_id, date, product, influencer_id) DO NOTHING`,
		td.ID, td.Source, td.Campaign, td.Brand, td.InfluencerID, td.UserID, td.Product,
		td.Date, td.Orders, td.Revenue.String(), td.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert tracking data: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *trackingRepository) Totals(ctx context.Context, filter domain.AnalyticsFilter) (TrackingTotals, error) {
	where, args := trackingFilterSQL(filter)
	query := `SELECT COALESCE(SUM(t.revenue), 0)::text,
	                 COALESCE(SUM(t.orders), 0),
	                 COALESCE(AVG(t.revenue), 0)::text,
	                 COUNT(DISTINCT t.campaign),
	                 COUNT(DISTINCT t.brand),
	                 COUNT(DISTINCT t.influencer_id)
	          FROM tracking_data t
	          JOIN influencers i ON i.id = t.influencer_id` + where

	var totals TrackingTotals
	var revenue, avgOrderValue string
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&revenue,
		&totals.TotalOrders,
		&avgOrderValue,
		&totals.DistinctCampaigns,
		&totals.DistinctBrands,
		&totals.DistinctInfluencers,
	)
	if err != nil {
		return TrackingTotals{}, fmt.Errorf("failed to aggregate tracking data: %w", err)
	}

	if totals.TotalRevenue, err = decimal.NewFromString(revenue); err != nil {
		return TrackingTotals{}, fmt.Errorf("failed to parse revenue total: %w", err)
	}
	if totals.AvgOrderValue, err = decimal.NewFromString(avgOrderValue); err != nil {
		return TrackingTotals{}, fmt.Errorf("failed to parse average order value: %w", err)
	}
	return totals, nil
}

func (r *trackingRepository) GroupTotals(ctx context.Context, filter domain.AnalyticsFilter, key TrackingGroupKey) ([]TrackingGroupRow, error) {
	expr, err := trackingGroupExpr(key)
	if err != nil {
		return nil, err
	}

	where, args := trackingFilterSQL(filter)
	query := fmt.Sprintf(
		`SELECT %s,
		        COALESCE(SUM(t.revenue), 0)::text,
		        COALESCE(SUM(t.orders), 0),
		        COALESCE(AVG(t.revenue), 0)::text
		 FROM tracking_data t
		 JOIN influencers i ON i.id = t.influencer_id%s
		 GROUP BY %s
		 ORDER BY SUM(t.revenue) DESC`,
		expr, where, expr,
	)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group tracking data: %w", err)
	}
	defer rows.Close()

	groups := []TrackingGroupRow{}
	for rows.Next() {
		var row TrackingGroupRow
		var revenue, avgOrderValue string
		if err := rows.Scan(&row.Key, &revenue, &row.TotalOrders, &avgOrderValue); err != nil {
			return nil, fmt.Errorf("failed to scan tracking group: %w", err)
		}
		if row.TotalRevenue, err = decimal.NewFromString(revenue); err != nil {
			return nil, fmt.Errorf("failed to parse group revenue: %w", err)
		}
		if row.AvgOrderValue, err = decimal.NewFromString(avgOrderValue); err != nil {
			return nil, fmt.Errorf("failed to parse group average order value: %w", err)
		}
		groups = append(groups, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tracking groups: %w", err)
	}
	return groups, nil
}

func trackingGroupExpr(key TrackingGroupKey) (string, error) {
	switch key {
	case TrackingGroupCampaign:
		return "t.campaign", nil
	case TrackingGroupInfluencer:
		return "i.name", nil
	default:
		return "", fmt.Errorf("unknown tracking group key %q", key)
	}
}
