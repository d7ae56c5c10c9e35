package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpattn/roaslytics/internal/domain"
	"github.com/rpattn/roaslytics/internal/repository"

	"github.com/shopspring/decimal"
)

// outcomeKind classifies what a resolver did with one row.
type outcomeKind int

const (
	outcomeCreated outcomeKind = iota
	outcomeExisted
	outcomeRejected
)

// outcome is the per-row result. Rejections carry a human-readable reason
// and never travel as errors; errors are reserved for infrastructure
// failures that abort the whole batch.
type outcome struct {
	kind   outcomeKind
	reason string
}

func created() outcome { return outcome{kind: outcomeCreated} }
func existed() outcome { return outcome{kind: outcomeExisted} }

func rejected(format string, args ...any) outcome {
	return outcome{kind: outcomeRejected, reason: fmt.Sprintf(format, args...)}
}

// resolver validates one record, resolves its foreign natural keys and
// applies the insert-or-skip decision for its entity kind.
type resolver interface {
	resolve(ctx context.Context, store repository.Store, rec Record) (outcome, error)
}

// resolverFor returns the resolver for an entity kind, or nil when the
// kind is unknown.
func resolverFor(kind EntityKind) resolver {
	switch kind {
	case EntityInfluencers:
		return influencerResolver{}
	case EntityPosts:
		return postResolver{}
	case EntityTracking:
		return trackingResolver{}
	case EntityPayouts:
		return payoutResolver{}
	default:
		return nil
	}
}

// resolveParent looks up the row's influencer_name. The pipeline never
// auto-creates the parent: a missing influencer rejects the row.
func resolveParent(ctx context.Context, store repository.Store, rec Record) (domain.Influencer, *outcome, error) {
	name, err := requiredField(rec, "influencer_name")
	if err != nil {
		out := rejected("%v", err)
		return domain.Influencer{}, &out, nil
	}

	inf, err := store.Influencers.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			out := rejected("influencer %q not found", name)
			return domain.Influencer{}, &out, nil
		}
		return domain.Influencer{}, nil, err
	}
	return inf, nil, nil
}

type influencerResolver struct{}

func (influencerResolver) resolve(ctx context.Context, store repository.Store, rec Record) (outcome, error) {
	name, err := requiredField(rec, "name")
	if err != nil {
		return rejected("%v", err), nil
	}

	followers, err := intField(rec, "follower_count", 0)
	if err != nil {
		return rejected("%v", err), nil
	}

	inf := domain.NewInfluencer(
		name,
		fieldValue(rec, "category"),
		stringField(rec, "gender", "other"),
		followers,
		stringField(rec, "platform", "instagram"),
	)

	inserted, err := store.Influencers.CreateIfAbsent(ctx, inf)
	if err != nil {
		return outcome{}, err
	}
	if !inserted {
		return existed(), nil
	}
	return created(), nil
}

type postResolver struct{}

func (postResolver) resolve(ctx context.Context, store repository.Store, rec Record) (outcome, error) {
	inf, rej, err := resolveParent(ctx, store, rec)
	if err != nil {
		return outcome{}, err
	}
	if rej != nil {
		return *rej, nil
	}

	date, err := dateField(rec, "date")
	if err != nil {
		return rejected("%v", err), nil
	}

	reach, err := intField(rec, "reach", 0)
	if err != nil {
		return rejected("%v", err), nil
	}
	likes, err := intField(rec, "likes", 0)
	if err != nil {
		return rejected("%v", err), nil
	}
	comments, err := intField(rec, "comments", 0)
	if err != nil {
		return rejected("%v", err), nil
	}

	post := domain.NewPost(
		inf.ID,
		stringField(rec, "platform", "instagram"),
		date,
		fieldValue(rec, "url"),
		fieldValue(rec, "caption"),
		reach, likes, comments,
	)

	inserted, err := store.Posts.CreateIfAbsent(ctx, post)
	if err != nil {
		return outcome{}, err
	}
	if !inserted {
		return existed(), nil
	}
	return created(), nil
}

type trackingResolver struct{}

func (trackingResolver) resolve(ctx context.Context, store repository.Store, rec Record) (outcome, error) {
	inf, rej, err := resolveParent(ctx, store, rec)
	if err != nil {
		return outcome{}, err
	}
	if rej != nil {
		return *rej, nil
	}

	userID, err := requiredField(rec, "user_id")
	if err != nil {
		return rejected("%v", err), nil
	}
	product, err := requiredField(rec, "product")
	if err != nil {
		return rejected("%v", err), nil
	}
	date, err := dateField(rec, "date")
	if err != nil {
		return rejected("%v", err), nil
	}
	orders, err := intField(rec, "orders", 0)
	if err != nil {
		return rejected("%v", err), nil
	}
	revenue, err := decimalField(rec, "revenue", decimal.Zero)
	if err != nil {
		return rejected("%v", err), nil
	}

	td := domain.NewTrackingData(
		inf.ID,
		userID,
		product,
		date,
		fieldValue(rec, "source"),
		fieldValue(rec, "campaign"),
		fieldValue(rec, "brand"),
		orders,
		revenue,
	)

	inserted, err := store.Tracking.CreateIfAbsent(ctx, td)
	if err != nil {
		return outcome{}, err
	}
	if !inserted {
		return existed(), nil
	}
	return created(), nil
}

type payoutResolver struct{}

func (payoutResolver) resolve(ctx context.Context, store repository.Store, rec Record) (outcome, error) {
	inf, rej, err := resolveParent(ctx, store, rec)
	if err != nil {
		return outcome{}, err
	}
	if rej != nil {
		return *rej, nil
	}

	date, err := dateField(rec, "payout_date")
	if err != nil {
		return rejected("%v", err), nil
	}
	rate, err := decimalField(rec, "rate", decimal.Zero)
	if err != nil {
		return rejected("%v", err), nil
	}
	orders, err := intField(rec, "orders", 0)
	if err != nil {
		return rejected("%v", err), nil
	}
	totalPayout, err := decimalField(rec, "total_payout", decimal.Zero)
	if err != nil {
		return rejected("%v", err), nil
	}

	payout := domain.NewPayout(
		inf.ID,
		stringField(rec, "basis", "post"),
		rate,
		orders,
		totalPayout,
		date,
	)

	inserted, err := store.Payouts.CreateIfAbsent(ctx, payout)
	if err != nil {
		return outcome{}, err
	}
	if !inserted {
		return existed(), nil
	}
	return created(), nil
}
