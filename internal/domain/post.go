package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post records a single piece of influencer content.
// Natural key: (influencer, date, platform).
type Post struct {
	ID           uuid.UUID `json:"id"`
	InfluencerID uuid.UUID `json:"influencer_id"`
	Platform     string    `json:"platform"`
	Date         time.Time `json:"date"`
	URL          string    `json:"url"`
	Caption      string    `json:"caption"`
	Reach        int       `json:"reach"`
	Likes        int       `json:"likes"`
	Comments     int       `json:"comments"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewPost creates a post with a fresh identifier.
func NewPost(influencerID uuid.UUID, platform string, date time.Time, url, caption string, reach, likes, comments int) Post {
	return Post{
		ID:           uuid.New(),
		InfluencerID: influencerID,
		Platform:     platform,
		Date:         date,
		URL:          url,
		Caption:      caption,
		Reach:        reach,
		Likes:        likes,
		Comments:     comments,
		CreatedAt:    time.Now(),
	}
}
