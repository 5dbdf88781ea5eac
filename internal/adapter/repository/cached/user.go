package cached

import (
	"context"
	"iter"

	"go.uber.org/zap"

	"user-crud-console/internal/adapter/cache"
	domain "user-crud-console/internal/domain/user"
	"user-crud-console/internal/usecase/user"
	"user-crud-console/pkg/logger"
)

// CachedUserRepository implements user.Repository with a cached listing.
// It wraps a persistent repository (DB) and a listing cache.
type CachedUserRepository struct {
	dbRepo user.Repository
	cache  cache.UserListCache
	log    *zap.Logger
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo user.Repository, cache cache.UserListCache, log *zap.Logger) *CachedUserRepository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create inserts through the DB repository and invalidates the listing.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	rows, err := r.dbRepo.Create(ctx, u)
	if err != nil {
		return 0, err
	}
	r.invalidate(ctx, rows)
	return rows, nil
}

// List serves the cached listing when present. Otherwise it streams from
// the DB repository and caches the listing once it was read to the end.
func (r *CachedUserRepository) List(ctx context.Context) iter.Seq2[domain.User, error] {
	return func(yield func(domain.User, error) bool) {
		log := logger.WithContext(ctx, r.log)

		cached, found, err := r.cache.Get(ctx)
		if err != nil {
			log.Warn("cache get error, falling back to database", zap.Error(err))
		} else if found {
			log.Debug("listing served from cache", zap.Int("count", len(cached)))
			for _, u := range cached {
				if !yield(u, nil) {
					return
				}
			}
			return
		}

		users := make([]domain.User, 0)
		for u, err := range r.dbRepo.List(ctx) {
			if err != nil {
				yield(domain.User{}, err)
				return
			}
			users = append(users, u)
			if !yield(u, nil) {
				return
			}
		}

		if err := r.cache.Set(ctx, users); err != nil {
			log.Warn("failed to cache listing", zap.Error(err))
		}
	}
}

// UpdateEmail updates through the DB repository and invalidates the listing.
func (r *CachedUserRepository) UpdateEmail(ctx context.Context, id int64, email string) (int64, error) {
	rows, err := r.dbRepo.UpdateEmail(ctx, id, email)
	if err != nil {
		return 0, err
	}
	r.invalidate(ctx, rows)
	return rows, nil
}

// Delete deletes through the DB repository and invalidates the listing.
func (r *CachedUserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	rows, err := r.dbRepo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	r.invalidate(ctx, rows)
	return rows, nil
}

func (r *CachedUserRepository) invalidate(ctx context.Context, rows int64) {
	if rows == 0 {
		return
	}
	if err := r.cache.Invalidate(ctx); err != nil {
		logger.WithContext(ctx, r.log).Warn("failed to invalidate listing cache", zap.Error(err))
	}
}
