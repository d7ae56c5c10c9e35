package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpattn/roaslytics/internal/domain"

	"github.com/jackc/pgx/v5"
)

// influencerRepository implements InfluencerRepository over a pgx querier.
type influencerRepository struct {
	q Querier
}

// NewInfluencerRepository creates a new influencer repository.
func NewInfluencerRepository(q Querier) InfluencerRepository {
	return &influencerRepository{q: q}
}

func (r *influencerRepository) CreateIfAbsent(ctx context.Context, inf domain.Influencer) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`INSERT INTO influencers (id, name, category, gender, follower_count, platform, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (name) DO NOTHING`,
		inf.ID, inf.Name, inf.Category, inf.Gender, inf.FollowerCount, inf.Platform, inf.CreatedAt, inf.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert influencer: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *influencerRepository) GetByName(ctx context.Context, name string) (domain.Influencer, error) {
	var inf domain.Influencer
	err := r.q.QueryRow(ctx,
		`SELECT id, name, category, gender, follower_count, platform, created_at, updated_at
		 FROM influencers
		 WHERE name = $1`,
		name,
	).Scan(&inf.ID, &inf.Name, &inf.Category, &inf.Gender, &inf.FollowerCount, &inf.Platform, &inf.CreatedAt, &inf.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Influencer{}, ErrNotFound
		}
		return domain.Influencer{}, fmt.Errorf("failed to get influencer: %w", err)
	}
	return inf, nil
}
