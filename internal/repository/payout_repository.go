package repository

import (
	"context"
	"fmt"

	"github.com/rpattn/roaslytics/internal/domain"

	"github.com/shopspring/decimal"
)

// payoutRepository implements PayoutRepository over a pgx querier.
type payoutRepository struct {
	q Querier
}

// NewPayoutRepository creates a new payout repository.
func NewPayoutRepository(q Querier) PayoutRepository {
	return &payoutRepository{q: q}
}

func (r *payoutRepository) CreateIfAbsent(ctx context.Context, p domain.Payout) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`INSERT INTO payouts (id, influencer_id, basis, rate, orders, total_payout, payout_date, created_at)
		 VALUES ($1, $2, $3, $4::numeric, $5, $6::numeric, $7, $8)
		 ON CONFLICT (influencer_id, payout_date, basis) DO NOTHING`,
		p.ID, p.InfluencerID, p.Basis, p.Rate.String(), p.Orders, p.TotalPayout.String(),
		p.PayoutDate, p.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert payout: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *payoutRepository) Totals(ctx context.Context, filter domain.AnalyticsFilter) (PayoutTotals, error) {
	where, args := payoutFilterSQL(filter)
	query := `SELECT COALESCE(SUM(p.total_payout), 0)::text,
	                 COALESCE(SUM(p.orders), 0),
	                 COUNT(DISTINCT p.influencer_id)
	          FROM payouts p
	          JOIN influencers i ON i.id = p.influencer_id` + where

	var totals PayoutTotals
	var payout string
	err := r.q.QueryRow(ctx, query, args...).Scan(&payout, &totals.TotalOrders, &totals.DistinctInfluencers)
	if err != nil {
		return PayoutTotals{}, fmt.Errorf("failed to aggregate payouts: %w", err)
	}
	if totals.TotalPayout, err = decimal.NewFromString(payout); err != nil {
		return PayoutTotals{}, fmt.Errorf("failed to parse payout total: %w", err)
	}
	return totals, nil
}

func (r *payoutRepository) GroupTotals(ctx context.Context, filter domain.AnalyticsFilter, key PayoutGroupKey) ([]PayoutGroupRow, error) {
	expr, err := payoutGroupExpr(key)
	if err != nil {
		return nil, err
	}

	where, args := payoutFilterSQL(filter)
	query := fmt.Sprintf(
		`SELECT %s,
		        COALESCE(SUM(p.total_payout), 0)::text,
		        COALESCE(SUM(p.orders), 0),
		        COALESCE(AVG(p.rate), 0)::text,
		        COUNT(DISTINCT p.influencer_id)
		 FROM payouts p
		 JOIN influencers i ON i.id = p.influencer_id%s
		 GROUP BY %s
		 ORDER BY SUM(p.total_payout) DESC`,
		expr, where, expr,
	)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group payouts: %w", err)
	}
	defer rows.Close()

	groups := []PayoutGroupRow{}
	for rows.Next() {
		var row PayoutGroupRow
		var payout, avgRate string
		if err := rows.Scan(&row.Key, &payout, &row.TotalOrders, &avgRate, &row.InfluencerCount); err != nil {
			return nil, fmt.Errorf("failed to scan payout group: %w", err)
		}
		if row.TotalPayout, err = decimal.NewFromString(payout); err != nil {
			return nil, fmt.Errorf("failed to parse group payout: %w", err)
		}
		if row.AvgRate, err = decimal.NewFromString(avgRate); err != nil {
			return nil, fmt.Errorf("failed to parse group rate: %w", err)
		}
		groups = append(groups, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payout groups: %w", err)
	}
	return groups, nil
}

func (r *payoutRepository) TopByPayout(ctx context.Context, limit int) ([]PayoutGroupRow, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.q.Query(ctx,
		`SELECT i.name,
		        COALESCE(SUM(p.total_payout), 0)::text,
		        COALESCE(SUM(p.orders), 0)
		 FROM payouts p
		 JOIN influencers i ON i.id = p.influencer_id
		 GROUP BY i.name
		 HAVING SUM(p.total_payout) > 0
		 ORDER BY SUM(p.total_payout) DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to rank payouts: %w", err)
	}
	defer rows.Close()

	groups := []PayoutGroupRow{}
	for rows.Next() {
		var row PayoutGroupRow
		var payout string
		if err := rows.Scan(&row.Key, &payout, &row.TotalOrders); err != nil {
			return nil, fmt.Errorf("failed to scan top payout row: %w", err)
		}
		if row.TotalPayout, err = decimal.NewFromString(payout); err != nil {
			return nil, fmt.Errorf("failed to parse top payout total: %w", err)
		}
		groups = append(groups, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top payout rows: %w", err)
	}
	return groups, nil
}

func payoutGroupExpr(key PayoutGroupKey) (string, error) {
	switch key {
	case PayoutGroupBasis:
		return "p.basis", nil
	case PayoutGroupPlatform:
		return "i.platform", nil
	case PayoutGroupCategory:
		return "i.category", nil
	case PayoutGroupInfluencer:
		return "i.name", nil
	default:
		return "", fmt.Errorf("unknown payout group key %q", key)
	}
}
