package repository

import (
	"context"
	"errors"

	"github.com/rpattn/roaslytics/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Querier is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx,
// so the same repository code serves pooled reads and transactional writes.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InfluencerRepository defines the interface for influencer operations.
type InfluencerRepository interface {
	// CreateIfAbsent inserts the influencer unless the name is already
	// taken. It reports whether a new row was written. The check and the
	// insert are one atomic storage operation.
	CreateIfAbsent(ctx context.Context, inf domain.Influencer) (bool, error)
	GetByName(ctx context.Context, name string) (domain.Influencer, error)
}

// PostRepository defines the interface for post operations.
type PostRepository interface {
	CreateIfAbsent(ctx context.Context, post domain.Post) (bool, error)
}

// TrackingGroupKey selects the grouping dimension for tracking breakdowns.
type TrackingGroupKey string

const (
	TrackingGroupCampaign   TrackingGroupKey = "campaign"
	TrackingGroupInfluencer TrackingGroupKey = "influencer"
)

// TrackingTotals carries filtered aggregate values over tracking data.
type TrackingTotals struct {
	TotalRevenue        decimal.Decimal
	TotalOrders         int64
	AvgOrderValue       decimal.Decimal
	DistinctCampaigns   int64
	DistinctBrands      int64
	DistinctInfluencers int64
}

// TrackingGroupRow is one group of a tracking breakdown.
type TrackingGroupRow struct {
	Key           string
	TotalRevenue  decimal.Decimal
	TotalOrders   int64
	AvgOrderValue decimal.Decimal
}

// TrackingRepository defines the interface for tracking data operations.
type TrackingRepository interface {
	CreateIfAbsent(ctx context.Context, td domain.TrackingData) (bool, error)
	Totals(ctx context.Context, filter domain.AnalyticsFilter) (TrackingTotals, error)
	GroupTotals(ctx context.Context, filter domain.AnalyticsFilter, key TrackingGroupKey) ([]TrackingGroupRow, error)
}

// PayoutGroupKey selects the grouping dimension for payout breakdowns.
type PayoutGroupKey string

const (
	PayoutGroupBasis      PayoutGroupKey = "basis"
	PayoutGroupPlatform   PayoutGroupKey = "platform"
	PayoutGroupCategory   PayoutGroupKey = "category"
	PayoutGroupInfluencer PayoutGroupKey = "influencer"
)

// PayoutTotals carries filtered aggregate values over payouts.
type PayoutTotals struct {
	TotalPayout         decimal.Decimal
	TotalOrders         int64
	DistinctInfluencers int64
}

// PayoutGroupRow is one group of a payout breakdown.
type PayoutGroupRow struct {
	Key             string
	TotalPayout     decimal.Decimal
	TotalOrders     int64
	AvgRate         decimal.Decimal
	InfluencerCount int64
}

// PayoutRepository defines the interface for payout operations.
type PayoutRepository interface {
	CreateIfAbsent(ctx context.Context, p domain.Payout) (bool, error)
	Totals(ctx context.Context, filter domain.AnalyticsFilter) (PayoutTotals, error)
	GroupTotals(ctx context.Context, filter domain.AnalyticsFilter, key PayoutGroupKey) ([]PayoutGroupRow, error)
	TopByPayout(ctx context.Context, limit int) ([]PayoutGroupRow, error)
}

// MaintenanceRepository holds administrative bulk operations.
type MaintenanceRepository interface {
	// ClearAll deletes every row of every entity in dependency order:
	// payouts, tracking data, posts, then influencers.
	ClearAll(ctx context.Context) error
}

// Store bundles the per-entity repositories over one querier so callers
// can address the whole dataset through a single value.
type Store struct {
	Influencers InfluencerRepository
	Posts       PostRepository
	Tracking    TrackingRepository
	Payouts     PayoutRepository
	Maintenance MaintenanceRepository
}

// NewStore creates a store whose repositories all share the given querier.
func NewStore(q Querier) Store {
	return Store{
		Influencers: NewInfluencerRepository(q),
		Posts:       NewPostRepository(q),
		Tracking:    NewTrackingRepository(q),
		Payouts:     NewPayoutRepository(q),
		Maintenance: NewMaintenanceRepository(q),
	}
}
