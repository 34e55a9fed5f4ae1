package session

import (
	"slices"
	"sync"

	"github.com/tradebinder/tradebinder/pkg/types"
)

// Snapshot is the aggregate session state handed to readers and
// subscribers. It is always a fresh shallow copy: the slices are cloned,
// the elements are shared. Consumers must treat it as read-only and go
// through Store methods for every mutation.
type Snapshot struct {
	CurrentUser      types.User
	Collections      []types.Collection
	Inventory        []types.Product
	Loading          bool
	Error            string
	InventoryLoading bool
	InventoryError   string
}

// Callback receives the post-mutation snapshot.
type Callback func(Snapshot)

type subscription struct {
	id uint64
	fn Callback
}

// Store is the single source of truth for the current session's user,
// collections and inventory. Every network-backed mutator calls the server
// first and changes local state only after the call settles, then notifies
// subscribers. Construct one per app root and share it; there is no
// package-level singleton so tests get isolated instances.
type Store struct {
	backend Backend

	mu          sync.Mutex
	user        types.User
	collections []types.Collection
	inventory   []types.Product

	loading bool
	loadErr string

	invLoading bool
	invErr     string

	// generation counters so a load started before a newer load cannot
	// overwrite the newer result
	collectionsGen uint64
	inventoryGen   uint64

	subs      []subscription
	nextSubID uint64
}

// New creates a session store seeded with the given user.
func New(backend Backend, user types.User) *Store {
	return &Store{
		backend:     backend,
		user:        user,
		collections: []types.Collection{},
		inventory:   []types.Product{},
	}
}

// Snapshot returns a fresh copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		CurrentUser:      s.user,
		Collections:      slices.Clone(s.collections),
		Inventory:        slices.Clone(s.inventory),
		Loading:          s.loading,
		Error:            s.loadErr,
		InventoryLoading: s.invLoading,
		InventoryError:   s.invErr,
	}
}

// Subscribe registers a callback invoked after every state change, in
// registration order, with the new snapshot. The returned function removes
// the registration; calling it more than once is a no-op.
func (s *Store) Subscribe(fn Callback) (unsubscribe func()) {
	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = slices.Delete(s.subs, i, i+1)
				return
			}
		}
	}
}

// mutate runs fn under the store lock; if fn reports a change, every
// subscriber is invoked with the new snapshot. Callbacks run outside the
// lock so they may call back into the store.
func (s *Store) mutate(fn func() bool) {
	s.mu.Lock()
	changed := fn()
	if !changed {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}

func (s *Store) currentUserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.ID
}
