package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payout records compensation owed to an influencer for a period.
// Natural key: (influencer, payout_date, basis).
type Payout struct {
	ID           uuid.UUID       `json:"id"`
	InfluencerID uuid.UUID       `json:"influencer_id"`
	Basis        string          `json:"basis"`
	Rate         decimal.Decimal `json:"rate"`
	Orders       int             `json:"orders"`
	TotalPayout  decimal.Decimal `json:"total_payout"`
	PayoutDate   time.Time       `json:"payout_date"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewPayout creates a payout with a fresh identifier.
func NewPayout(influencerID uuid.UUID, basis string, rate decimal.Decimal, orders int, totalPayout decimal.Decimal, payoutDate time.Time) Payout {
	return Payout{
		ID:           uuid.New(),
		InfluencerID: influencerID,
		Basis:        basis,
		Rate:         rate,
		Orders:       orders,
		TotalPayout:  totalPayout,
		PayoutDate:   payoutDate,
		CreatedAt:    time.Now(),
	}
}
