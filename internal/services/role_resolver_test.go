package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/drmnef/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(users *stubUserStore) *RoleResolver {
	return NewRoleResolver(users, 16, time.Minute)
}

func TestResolveNilIDIsUnknown(t *testing.T) {
	users := newStubUserStore()
	resolver := newTestResolver(users)

	assert.Equal(t, models.RoleUnknown, resolver.Resolve(context.Background(), uuid.Nil))
	assert.Zero(t, users.roleCalls)
}

func TestResolveAdminIsDeterministic(t *testing.T) {
	users := newStubUserStore()
	id := uuid.New()
	users.add(&models.User{ID: id, Email: "admin@example.com", Role: models.RoleAdmin})
	resolver := newTestResolver(users)

	for i := 0; i < 3; i++ {
		assert.Equal(t, models.RoleAdmin, resolver.Resolve(context.Background(), id))
	}
}

func TestResolveMissingProfileFallsOpenToClient(t *testing.T) {
	users := newStubUserStore()
	resolver := newTestResolver(users)

	assert.Equal(t, models.RoleClient, resolver.Resolve(context.Background(), uuid.New()))
}

func TestResolveLookupErrorFallsOpenToClient(t *testing.T) {
	users := newStubUserStore()
	users.roleErr = errors.New("connection refused")
	resolver := newTestResolver(users)

	assert.Equal(t, models.RoleClient, resolver.Resolve(context.Background(), uuid.New()))
}

func TestResolveEmptyRoleDefaultsToClient(t *testing.T) {
	users := newStubUserStore()
	id := uuid.New()
	users.add(&models.User{ID: id, Email: "new@example.com"})
	resolver := newTestResolver(users)

	assert.Equal(t, models.RoleClient, resolver.Resolve(context.Background(), id))
}

func TestHintTracksLastResolvedRole(t *testing.T) {
	users := newStubUserStore()
	id := uuid.New()
	users.add(&models.User{ID: id, Email: "admin@example.com", Role: models.RoleAdmin})
	resolver := newTestResolver(users)

	_, ok := resolver.Hint(id)
	assert.False(t, ok)

	resolver.Resolve(context.Background(), id)
	hint, ok := resolver.Hint(id)
	require.True(t, ok)
	assert.Equal(t, CachedRoleHint(models.RoleAdmin), hint)
}

func TestResolveNilIDDropsCache(t *testing.T) {
	users := newStubUserStore()
	id := uuid.New()
	users.add(&models.User{ID: id, Email: "admin@example.com", Role: models.RoleAdmin})
	resolver := newTestResolver(users)

	resolver.Resolve(context.Background(), id)
	resolver.Resolve(context.Background(), uuid.Nil)

	_, ok := resolver.Hint(id)
	assert.False(t, ok)
}
