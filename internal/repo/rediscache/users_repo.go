// Package rediscache decorates a users repository with a redis
// read-through cache for the hot read paths. Cache failures are never
// surfaced; the inner repository stays the source of truth.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkandie/acquisitions/internal/domain/user"
	"github.com/mkandie/acquisitions/internal/service"
	"github.com/redis/go-redis/v9"
)

const (
	listKey    = "users:all"
	idKeyFmt   = "users:id:%d"
	defaultTTL = 30 * time.Second
)

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

type UsersRepo struct {
	inner  service.UserRepo
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewUsersRepo(inner service.UserRepo, client *redis.Client, ttl time.Duration, log *slog.Logger) *UsersRepo {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &UsersRepo{inner: inner, client: client, ttl: ttl, log: log}
}

// FindByEmail always hits the inner store: it is the credential path and
// cached entries deliberately carry no password hash.
func (r *UsersRepo) FindByEmail(ctx context.Context, email string) (user.User, error) {
	return r.inner.FindByEmail(ctx, email)
}

func (r *UsersRepo) FindByID(ctx context.Context, id int) (user.User, error) {
	key := fmt.Sprintf(idKeyFmt, id)

	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var u user.User
		if err := json.Unmarshal(raw, &u); err == nil {
			return u, nil
		}
	}

	u, err := r.inner.FindByID(ctx, id)

	if err != nil {
		return user.User{}, err
	}

	r.store(ctx, key, u)

	return u, nil
}

func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	if raw, err := r.client.Get(ctx, listKey).Bytes(); err == nil {
		var all []user.User
		if err := json.Unmarshal(raw, &all); err == nil {
			return all, nil
		}
	}

	all, err := r.inner.List(ctx)

	if err != nil {
		return nil, err
	}

	r.store(ctx, listKey, all)

	return all, nil
}

func (r *UsersRepo) Insert(ctx context.Context, nu user.NewUser) (user.User, error) {
	u, err := r.inner.Insert(ctx, nu)

	if err != nil {
		return user.User{}, err
	}

	r.invalidate(ctx, u.ID)

	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, id int, patch user.Patch) (user.User, error) {
	u, err := r.inner.Update(ctx, id, patch)

	if err != nil {
		return user.User{}, err
	}

	r.invalidate(ctx, id)

	return u, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id int) error {
	err := r.inner.Delete(ctx, id)

	if err != nil {
		return err
	}

	r.invalidate(ctx, id)

	return nil
}

// store serializes v into the cache. json.Marshal drops the password
// hash via its `json:"-"` tag, so hashes never reach redis.
func (r *UsersRepo) store(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)

	if err != nil {
		return
	}

	if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil && r.log != nil {
		r.log.Debug("user cache write skipped", "key", key, "err", err)
	}
}

func (r *UsersRepo) invalidate(ctx context.Context, id int) {
	err := r.client.Del(ctx, listKey, fmt.Sprintf(idKeyFmt, id)).Err()

	if err != nil && r.log != nil {
		r.log.Debug("user cache invalidation skipped", "id", id, "err", err)
	}
}
