package repository

import (
	"context"
	"fmt"
)

// maintenanceRepository implements MaintenanceRepository over a pgx querier.
type maintenanceRepository struct {
	q Querier
}

// NewMaintenanceRepository creates a new maintenance repository.
func NewMaintenanceRepository(q Querier) MaintenanceRepository {
	return &maintenanceRepository{q: q}
}

// ClearAll removes every row. Children go first so the influencer deletes
// never trip foreign keys; the caller supplies the transaction boundary.
func (r *maintenanceRepository) ClearAll(ctx context.Context) error {
	for _, table := range []string{"payouts", "tracking_data", "posts", "influencers"} {
		if _, err := r.q.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}
