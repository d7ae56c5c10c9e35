package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TrackingData records an attributed revenue event coming out of a
// tracking system. Natural key: (user_id, date, product, influencer).
// Revenue is fixed-point decimal so aggregated sums do not drift.
type TrackingData struct {
	ID           uuid.UUID       `json:"id"`
	Source       string          `json:"source"`
	Campaign     string          `json:"campaign"`
	Brand        string          `json:"brand"`
	InfluencerID uuid.UUID       `json:"influencer_id"`
	UserID       string          `json:"user_id"`
	Product      string          `json:"product"`
	Date         time.Time       `json:"date"`
	Orders       int             `json:"orders"`
	Revenue      decimal.Decimal `json:"revenue"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewTrackingData creates a tracking event with a fresh identifier.
func NewTrackingData(influencerID uuid.UUID, userID, product string, date time.Time, source, campaign, brand string, orders int, revenue decimal.Decimal) TrackingData {
	return TrackingData{
		ID:           uuid.New(),
		Source:       source,
		Campaign:     campaign,
		Brand:        brand,
		InfluencerID: influencerID,
		UserID:       userID,
		Product:      product,
		Date:         date,
		Orders:       orders,
		Revenue:      revenue,
		CreatedAt:    time.Now(),
	}
}
