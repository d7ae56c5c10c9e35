package repository

import (
	"context"
	"fmt"

	"github.com/rpattn/roaslytics/internal/domain"
)

// postRepository implements PostRepository over a pgx querier.
type postRepository struct {
	q Querier
}

// NewPostRepository creates a new post repository.
func NewPostRepository(q Querier) PostRepository {
	return &postRepository{q: q}
}

func (r *postRepository) CreateIfAbsent(ctx context.Context, post domain.Post) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`INSERT INTO posts (id, influencer_id, platform, date, url, caption, reach, likes, comments, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (influencer_id, date, platform) DO NOTHING`,
		post.ID, post.InfluencerID, post.Platform, post.Date, post.URL, post.Caption,
		post.Reach, post.Likes, post.Comments, post.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert post: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
