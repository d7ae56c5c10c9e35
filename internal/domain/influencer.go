package domain

import (
	"time"

	"github.com/google/uuid"
)

// Influencer is the root entity every other record hangs off.
// The name is the natural key used for deduplication on ingest.
type Influencer struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Gender        string    `json:"gender"`
	FollowerCount int       `json:"follower_count"`
	Platform      string    `json:"platform"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewInfluencer creates an influencer with a fresh identifier.
func NewInfluencer(name, category, gender string, followerCount int, platform string) Influencer {
	now := time.Now()
	return Influencer{
		ID:            uuid.New(),
		Name:          name,
		Category:      category,
		Gender:        gender,
		FollowerCount: followerCount,
		Platform:      platform,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
