package cached

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"account-item-service/internal/adapter/cache"
	domain "account-item-service/internal/domain/item"
	"account-item-service/internal/usecase/item"
)

// CachedItemRepository implements item.Repository with list caching support.
// Reads of an owner's list are served cache-aside; every mutation of an
// owner's items invalidates that owner's cached list.
type CachedItemRepository struct {
	dbRepo item.Repository
	cache  cache.ItemCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewCachedItemRepository creates a new instance of CachedItemRepository.
func NewCachedItemRepository(dbRepo item.Repository, cache cache.ItemCache, log *zap.Logger) item.Repository {
	return &CachedItemRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create inserts via the DB repository and invalidates the owner's list.
func (r *CachedItemRepository) Create(ctx context.Context, it *domain.Item) (*domain.Item, error) {
	created, err := r.dbRepo.Create(ctx, it)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, created.OwnerID)
	return created, nil
}

// ListByOwner retrieves an owner's items using the Cache-Aside pattern.
func (r *CachedItemRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	if r.cache != nil {
		cachedItems, err := r.cache.GetList(ctx, ownerID)
		if err != nil {
			r.log.Warn("cache get error, falling back to database", zap.String("owner_id", ownerID), zap.Error(err))
		} else if cachedItems != nil {
			return cachedItems, nil
		}
	}

	// Cache miss or cache disabled - use single-flight to prevent stampede
	key := fmt.Sprintf("items:owner:%s", ownerID)
	result, err, _ := r.group.Do(key, func() (any, error) {
		// Double-check cache in case another request populated it while we were waiting
		if r.cache != nil {
			cachedItems, err := r.cache.GetList(ctx, ownerID)
			if err == nil && cachedItems != nil {
				return cachedItems, nil
			}
		}

		items, err := r.dbRepo.ListByOwner(ctx, ownerID)
		if err != nil {
			return nil, err
		}

		if r.cache != nil {
			if err := r.cache.SetList(ctx, ownerID, items); err != nil {
				r.log.Warn("failed to cache item list", zap.String("owner_id", ownerID), zap.Error(err))
			}
		}

		return items, nil
	})

	if err != nil {
		return nil, err
	}

	return result.([]domain.Item), nil
}

// Update updates via the DB repository and invalidates the owner's list.
func (r *CachedItemRepository) Update(ctx context.Context, id, title, description string) (*domain.Item, error) {
	updated, err := r.dbRepo.Update(ctx, id, title, description)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, updated.OwnerID)
	return updated, nil
}

// Delete deletes via the DB repository and invalidates the owner's list.
func (r *CachedItemRepository) Delete(ctx context.Context, id string) (*domain.Item, error) {
	deleted, err := r.dbRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, deleted.OwnerID)
	return deleted, nil
}

func (r *CachedItemRepository) invalidate(ctx context.Context, ownerID string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Invalidate(ctx, ownerID); err != nil {
		r.log.Warn("failed to invalidate item list cache", zap.String("owner_id", ownerID), zap.Error(err))
	}
}
