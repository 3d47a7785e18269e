package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/drmnef/storefront/internal/models"
	"github.com/drmnef/storefront/internal/repository"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CachedRoleHint is a last-known role kept as a UI hint. The distinct type
// keeps it from being confused with the authoritative value Resolve returns;
// admin authorization must never trust it.
type CachedRoleHint string

// RoleResolver maps an identity id to its role. Lookup failures fall open to
// client: least privilege on admin-gated routes without locking the user out
// of everything else.
type RoleResolver struct {
	users repository.UserStore
	cache *expirable.LRU[uuid.UUID, CachedRoleHint]
}

func NewRoleResolver(users repository.UserStore, cacheSize int, ttl time.Duration) *RoleResolver {
	return &RoleResolver{
		users: users,
		cache: expirable.NewLRU[uuid.UUID, CachedRoleHint](cacheSize, nil, ttl),
	}
}

// Resolve returns the authoritative role for id. A nil id yields
// RoleUnknown and drops the cache. A failed or empty lookup yields
// RoleClient; this is the documented fail-open policy, not a silent
// failure. No retries: a failed call stays failed until the next identity
// change triggers a fresh one.
func (r *RoleResolver) Resolve(ctx context.Context, id uuid.UUID) string {
	if id == uuid.Nil {
		r.cache.Purge()
		return models.RoleUnknown
	}

	role, err := r.users.RoleByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Warn("no profile row for user, defaulting role to client", "user_id", id)
		} else {
			slog.Error("role lookup failed, defaulting role to client", "user_id", id, "error", err)
		}
		r.cache.Add(id, CachedRoleHint(models.RoleClient))
		return models.RoleClient
	}
	if role == "" {
		role = models.RoleClient
	}

	r.cache.Add(id, CachedRoleHint(role))
	return role
}

// Hint returns the cached last-known role, if any. UI prefill only.
func (r *RoleResolver) Hint(id uuid.UUID) (CachedRoleHint, bool) {
	return r.cache.Get(id)
}
