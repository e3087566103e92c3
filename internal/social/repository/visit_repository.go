package repository

import (
	"context"
	"fmt"
	"time"

	"study_portal_service/internal/social/domain"
	"study_portal_service/pkg/database"

	"github.com/go-redis/redis/v8"
)

const (
	visitKeyPrefix = "social:visit:"
	visitIndexKey  = "social:visits"

	// activityWindow how long a visit counts as "active"
	activityWindow = time.Hour

	// visitTTL individual entries outlive the activity window so the user
	// directory keeps recently seen names around
	visitTTL = 30 * 24 * time.Hour
)

// VisitRepository tracks who opened the social feed and when
type VisitRepository interface {
	// Upsert record a visit, replacing any previous entry for the user
	Upsert(ctx context.Context, visit *domain.SocialVisit) error
	// Active users seen within the last hour, most recent first
	Active(ctx context.Context) ([]domain.SocialVisit, error)
	// Known recently seen users regardless of the activity window, capped
	// at limit
	Known(ctx context.Context, limit int64) ([]domain.SocialVisit, error)
}

type visitRepository struct {
	client  *redis.Client
	entries database.RedisRepository[domain.SocialVisit]
}

// NewRedisVisitRepository create a VisitRepository: a scored set orders the
// visits, JSON entries hold the user snapshots
func NewRedisVisitRepository(client *redis.Client) VisitRepository {
	return &visitRepository{
		client:  client,
		entries: database.NewRedisRepository[domain.SocialVisit](client),
	}
}

func (r *visitRepository) Upsert(ctx context.Context, visit *domain.SocialVisit) error {
	if err := r.entries.Set(ctx, visitKeyPrefix+visit.UserID, *visit, visitTTL); err != nil {
		return err
	}
	return r.client.ZAdd(ctx, visitIndexKey, &redis.Z{
		Score:  float64(visit.LastVisit.Unix()),
		Member: visit.UserID,
	}).Err()
}

func (r *visitRepository) Active(ctx context.Context) ([]domain.SocialVisit, error) {
	cutoff := time.Now().Add(-activityWindow).Unix()
	ids, err := r.client.ZRevRangeByScore(ctx, visitIndexKey, &redis.ZRangeBy{
		Min: fmt.Sprintf("%d", cutoff),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("range visits error: %w", err)
	}
	return r.fetch(ctx, ids)
}

func (r *visitRepository) Known(ctx context.Context, limit int64) ([]domain.SocialVisit, error) {
	ids, err := r.client.ZRevRange(ctx, visitIndexKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("range visits error: %w", err)
	}
	return r.fetch(ctx, ids)
}

func (r *visitRepository) fetch(ctx context.Context, ids []string) ([]domain.SocialVisit, error) {
	if len(ids) == 0 {
		return []domain.SocialVisit{}, nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, visitKeyPrefix+id)
	}
	visits, err := r.entries.MGet(ctx, keys...)
	if err != nil {
		return nil, err
	}
	if visits == nil {
		visits = []domain.SocialVisit{}
	}
	return visits, nil
}
