package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"userauth/internal/cache"
	"userauth/internal/model"
)

const userCacheTTL = 5 * time.Minute

type cachedUserRepository struct {
	next  UserRepository
	cache *cache.Client
}

// NewCachedUserRepository serves email lookups from cache when one is
// configured. Misses are not cached, so a fresh registration is visible to
// the next login. With a disabled cache next is returned unchanged.
func NewCachedUserRepository(next UserRepository, c *cache.Client) UserRepository {
	if !c.Enabled() {
		return next
	}
	return &cachedUserRepository{next: next, cache: c}
}

func (r *cachedUserRepository) cacheKey(email string) string {
	return "user:email:" + strings.ToLower(email)
}

func (r *cachedUserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.next.Create(ctx, user); err != nil {
		return err
	}
	// A row removed outside this service can leave a stale entry under the
	// same key; the new record must not be shadowed by it.
	_ = r.cache.Delete(ctx, r.cacheKey(user.Email))
	return nil
}

func (r *cachedUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if data, _ := r.cache.Get(ctx, r.cacheKey(email)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil && cached.Email == email {
			return &cached, nil
		}
	}

	user, err := r.next.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = r.cache.Set(ctx, r.cacheKey(email), payload, userCacheTTL)
	}
	return user, nil
}
