// Package session holds the process-wide authenticated-session state: the
// current identity, a cached role hint, and a loading flag. The store is the
// single owner of that state; everything else subscribes and reads.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Identity is a read-only reference to the auth provider's user record.
type Identity struct {
	ID       uuid.UUID
	Email    string
	FullName string
}

// RoleHint is the last-known role kept for immediate UI purposes only. It is
// never authoritative: admin gating re-resolves from storage every time.
type RoleHint string

// EventType classifies session-change notifications.
type EventType int

const (
	EventInitialSession EventType = iota
	EventSignedIn
	EventTokenRefreshed
	EventSignedOut
)

// Event is one session-change notification. Identity is nil on sign-out.
type Event struct {
	Type     EventType
	Identity *Identity
}

// Provider is the external auth collaborator the store consumes.
type Provider interface {
	// CurrentSession returns the existing session, or nil when there is
	// none. No session is not an error.
	CurrentSession(ctx context.Context) (*Identity, error)
	// SignOut invalidates the provider-side session.
	SignOut(ctx context.Context) error
}

// RoleFunc resolves the authoritative role for an identity id. The resolver
// already folds lookup failures into its fail-open default, so RoleFunc
// never errors.
type RoleFunc func(ctx context.Context, id uuid.UUID) string

// Snapshot is the state handed to subscribers on every change.
type Snapshot struct {
	Identity *Identity
	Role     RoleHint
	Loading  bool
}

type subscriber struct {
	id uint64
	fn func(Snapshot)
}

// Store applies session events strictly in delivery order and notifies
// subscribers synchronously after each mutation. Role lookups run
// asynchronously; a completion belonging to an event older than the latest
// applied one is discarded, so out-of-order completions can never regress
// newer state.
type Store struct {
	mu       sync.Mutex
	provider Provider
	resolve  RoleFunc

	identity *Identity
	role     RoleHint
	loading  bool

	seq    uint64 // sequence of the last applied event
	nextID uint64
	subs   []subscriber
}

func NewStore(provider Provider, resolve RoleFunc) *Store {
	return &Store{
		provider: provider,
		resolve:  resolve,
		loading:  true,
	}
}

// Subscribe registers fn and returns an unsubscribe func. Subscribers are
// invoked synchronously, in registration order, while the store lock is
// held; they must not call back into the store.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Identity: s.identity, Role: s.role, Loading: s.loading}
}

// Initialize performs the one-time startup session check. A provider error
// is recovered by treating the visitor as anonymous; either way loading ends.
func (s *Store) Initialize(ctx context.Context) {
	ident, err := s.provider.CurrentSession(ctx)
	if err != nil {
		slog.Error("session check failed, treating as anonymous", "error", err)
		ident = nil
	}
	s.Dispatch(ctx, Event{Type: EventInitialSession, Identity: ident})
}

// Dispatch applies one session-change event. Events are sequenced at
// delivery, so two racing deliveries resolve in call order and the most
// recent one wins.
func (s *Store) Dispatch(ctx context.Context, ev Event) {
	s.mu.Lock()
	if ev.Type == EventInitialSession && s.seq > 0 {
		// The startup check result arrived after a real auth event;
		// it is stale and must not regress newer state.
		s.loading = false
		s.notifyLocked()
		s.mu.Unlock()
		return
	}
	s.seq++
	seq := s.seq

	s.identity = ev.Identity
	s.loading = false
	if ev.Identity == nil {
		// Logout-type events clear the hint immediately, without
		// waiting on any lookup.
		s.role = ""
	}
	s.notifyLocked()
	s.mu.Unlock()

	if ev.Identity != nil && s.resolve != nil {
		// The lookup outlives the request that delivered the event, so
		// it must not die with the caller's context.
		go s.lookupRole(context.WithoutCancel(ctx), seq, ev.Identity.ID)
	}
}

// lookupRole resolves the role for the event with the given sequence and
// applies it unless a newer event has been delivered meanwhile.
func (s *Store) lookupRole(ctx context.Context, seq uint64, id uuid.UUID) {
	role := s.resolve(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		// Stale completion; a newer session event owns the state now.
		return
	}
	s.role = RoleHint(role)
	s.notifyLocked()
}

// SignOut calls the provider sign-out and clears local state regardless of
// the outcome. Staying locally "signed in" after the provider dropped the
// session is the worse failure mode.
func (s *Store) SignOut(ctx context.Context) {
	if err := s.provider.SignOut(ctx); err != nil {
		slog.Error("provider sign-out failed", "error", err)
	}
	s.Dispatch(ctx, Event{Type: EventSignedOut})
}

func (s *Store) notifyLocked() {
	snap := Snapshot{Identity: s.identity, Role: s.role, Loading: s.loading}
	for _, sub := range s.subs {
		sub.fn(snap)
	}
}
