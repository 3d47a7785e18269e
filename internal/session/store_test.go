package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	ident      *Identity
	sessionErr error

	mu           sync.Mutex
	signOutErr   error
	signOutCalls int
}

func (p *stubProvider) CurrentSession(ctx context.Context) (*Identity, error) {
	return p.ident, p.sessionErr
}

func (p *stubProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signOutCalls++
	return p.signOutErr
}

func staticRole(role string) RoleFunc {
	return func(ctx context.Context, id uuid.UUID) string { return role }
}

func TestInitializeAnonymous(t *testing.T) {
	store := NewStore(&stubProvider{}, nil)
	require.True(t, store.Snapshot().Loading)

	store.Initialize(context.Background())

	snap := store.Snapshot()
	assert.Nil(t, snap.Identity)
	assert.False(t, snap.Loading)
}

func TestInitializeProviderErrorTreatedAsAnonymous(t *testing.T) {
	store := NewStore(&stubProvider{sessionErr: errors.New("timeout")}, nil)

	store.Initialize(context.Background())

	snap := store.Snapshot()
	assert.Nil(t, snap.Identity)
	assert.False(t, snap.Loading)
}

func TestInitializeExistingSession(t *testing.T) {
	ident := &Identity{ID: uuid.New(), Email: "sara@example.com"}
	store := NewStore(&stubProvider{ident: ident}, staticRole("client"))

	store.Initialize(context.Background())

	require.Eventually(t, func() bool {
		snap := store.Snapshot()
		return snap.Identity != nil && snap.Role == "client"
	}, time.Second, 5*time.Millisecond)
}

func TestStaleInitialCheckDoesNotRegressSignIn(t *testing.T) {
	store := NewStore(&stubProvider{}, nil)

	ident := &Identity{ID: uuid.New(), Email: "sara@example.com"}
	store.Dispatch(context.Background(), Event{Type: EventSignedIn, Identity: ident})

	// The startup check resolves late with no session; the newer
	// signed-in state must survive it.
	store.Initialize(context.Background())

	snap := store.Snapshot()
	require.NotNil(t, snap.Identity)
	assert.Equal(t, "sara@example.com", snap.Identity.Email)
	assert.False(t, snap.Loading)
}

func TestSignOutClearsIdentityAndRoleImmediately(t *testing.T) {
	ident := &Identity{ID: uuid.New(), Email: "sara@example.com"}
	store := NewStore(&stubProvider{}, staticRole("admin"))

	store.Dispatch(context.Background(), Event{Type: EventSignedIn, Identity: ident})
	require.Eventually(t, func() bool {
		return store.Snapshot().Role == "admin"
	}, time.Second, 5*time.Millisecond)

	store.Dispatch(context.Background(), Event{Type: EventSignedOut})

	snap := store.Snapshot()
	assert.Nil(t, snap.Identity)
	assert.Empty(t, snap.Role)
}

func TestSignOutClearsLocallyDespiteProviderError(t *testing.T) {
	provider := &stubProvider{signOutErr: errors.New("provider down")}
	store := NewStore(provider, nil)
	store.Dispatch(context.Background(), Event{
		Type:     EventSignedIn,
		Identity: &Identity{ID: uuid.New(), Email: "sara@example.com"},
	})

	store.SignOut(context.Background())

	assert.Nil(t, store.Snapshot().Identity)
	assert.Equal(t, 1, provider.signOutCalls)
}

func TestStaleRoleLookupDiscarded(t *testing.T) {
	idA := uuid.New()
	idB := uuid.New()
	release := make(chan struct{})
	resolve := func(ctx context.Context, id uuid.UUID) string {
		if id == idA {
			<-release
			return "admin"
		}
		return "client"
	}
	store := NewStore(&stubProvider{}, resolve)

	store.Dispatch(context.Background(), Event{Type: EventSignedIn, Identity: &Identity{ID: idA}})
	store.Dispatch(context.Background(), Event{Type: EventSignedIn, Identity: &Identity{ID: idB}})

	require.Eventually(t, func() bool {
		return store.Snapshot().Role == "client"
	}, time.Second, 5*time.Millisecond)

	close(release)

	// The lookup for the older event completes last and must not win.
	assert.Never(t, func() bool {
		return store.Snapshot().Role == "admin"
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func TestRoleLookupSurvivesCallerContextCancel(t *testing.T) {
	// A sign-in event is delivered with a request-scoped context that the
	// handler cancels on return. The lookup must still run to completion
	// instead of failing open on the dead context.
	cancelled := make(chan struct{})
	resolve := func(ctx context.Context, id uuid.UUID) string {
		<-cancelled
		if ctx.Err() != nil {
			return "client"
		}
		return "admin"
	}
	store := NewStore(&stubProvider{}, resolve)

	ctx, cancel := context.WithCancel(context.Background())
	store.Dispatch(ctx, Event{Type: EventSignedIn, Identity: &Identity{ID: uuid.New()}})
	cancel()
	close(cancelled)

	require.Eventually(t, func() bool {
		return store.Snapshot().Role == "admin"
	}, time.Second, 5*time.Millisecond)
}

func TestSubscribeReceivesChangesAndUnsubscribeStopsThem(t *testing.T) {
	store := NewStore(&stubProvider{}, nil)

	var snaps []Snapshot
	unsubscribe := store.Subscribe(func(snap Snapshot) {
		snaps = append(snaps, snap)
	})

	ident := &Identity{ID: uuid.New(), Email: "sara@example.com"}
	store.Dispatch(context.Background(), Event{Type: EventSignedIn, Identity: ident})
	require.Len(t, snaps, 1)
	assert.Equal(t, ident, snaps[0].Identity)

	unsubscribe()
	store.Dispatch(context.Background(), Event{Type: EventSignedOut})
	assert.Len(t, snaps, 1)
}
