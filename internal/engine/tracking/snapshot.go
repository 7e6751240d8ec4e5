package tracking

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/textrope/internal/engine/rope"
	"github.com/dshills/textrope/internal/logging"
)

// Errors returned by snapshot operations.
var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// Snapshot is a checkpoint of a text.
// Snapshots are immutable and can be safely shared across goroutines.
type Snapshot struct {
	// ID uniquely identifies this snapshot.
	ID uuid.UUID

	// Name is the human-readable name, possibly empty.
	Name string

	// Timestamp when this snapshot was created.
	Timestamp time.Time

	seq  uint64
	text rope.Text
}

// Text returns the text held by the snapshot.
func (s *Snapshot) Text() rope.Text {
	return s.text
}

// Len returns the character count at this snapshot.
func (s *Snapshot) Len() int {
	return s.text.Len()
}

// Lines returns the newline count at this snapshot.
func (s *Snapshot) Lines() int {
	return s.text.Lines()
}

// Age returns how long ago this snapshot was created.
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.Timestamp)
}

// Option configures a SnapshotManager.
type Option func(*SnapshotManager)

// WithLogger sets the logger used for pruning and replacement messages.
func WithLogger(l *logging.Logger) Option {
	return func(sm *SnapshotManager) {
		sm.log = l.WithComponent("snapshots")
	}
}

// SnapshotManager manages snapshots.
type SnapshotManager struct {
	mu        sync.RWMutex
	snapshots map[uuid.UUID]*Snapshot
	byName    map[string]*Snapshot
	seq       uint64
	log       *logging.Logger
}

// NewSnapshotManager creates a new snapshot manager.
func NewSnapshotManager(opts ...Option) *SnapshotManager {
	sm := &SnapshotManager{
		snapshots: make(map[uuid.UUID]*Snapshot),
		byName:    make(map[string]*Snapshot),
		log:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(sm)
	}
	return sm
}

// Create records text under name and returns the new snapshot's ID.
// If a snapshot with the same name exists, it is replaced.
func (sm *SnapshotManager) Create(name string, text rope.Text) uuid.UUID {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if existing, ok := sm.byName[name]; ok && name != "" {
		delete(sm.snapshots, existing.ID)
		sm.log.Debug("replacing snapshot %q (%s)", name, existing.ID)
	}

	sm.seq++
	snap := &Snapshot{
		ID:        uuid.New(),
		Name:      name,
		Timestamp: time.Now(),
		seq:       sm.seq,
		text:      text,
	}

	sm.snapshots[snap.ID] = snap
	if name != "" {
		sm.byName[name] = snap
	}
	return snap.ID
}

// Get retrieves a snapshot by ID.
func (sm *SnapshotManager) Get(id uuid.UUID) (*Snapshot, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	snap, ok := sm.snapshots[id]
	return snap, ok
}

// GetByName retrieves a snapshot by name.
func (sm *SnapshotManager) GetByName(name string) (*Snapshot, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	snap, ok := sm.byName[name]
	return snap, ok
}

// Lookup resolves ref as a snapshot name first, then as a UUID.
func (sm *SnapshotManager) Lookup(ref string) (*Snapshot, error) {
	if snap, ok := sm.GetByName(ref); ok {
		return snap, nil
	}
	id, err := uuid.Parse(ref)
	if err != nil {
		return nil, ErrSnapshotNotFound
	}
	if snap, ok := sm.Get(id); ok {
		return snap, nil
	}
	return nil, ErrSnapshotNotFound
}

// Delete removes a snapshot by ID.
func (sm *SnapshotManager) Delete(id uuid.UUID) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	snap, ok := sm.snapshots[id]
	if !ok {
		return ErrSnapshotNotFound
	}
	sm.remove(snap)
	return nil
}

// DeleteByName removes a snapshot by name.
func (sm *SnapshotManager) DeleteByName(name string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	snap, ok := sm.byName[name]
	if !ok {
		return ErrSnapshotNotFound
	}
	sm.remove(snap)
	return nil
}

// remove drops snap from both indexes. Caller holds the write lock.
func (sm *SnapshotManager) remove(snap *Snapshot) {
	if snap.Name != "" {
		delete(sm.byName, snap.Name)
	}
	delete(sm.snapshots, snap.ID)
}

// List returns all snapshots, oldest first.
func (sm *SnapshotManager) List() []*Snapshot {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sorted()
}

// sorted returns the snapshots in creation order. Caller holds a lock.
func (sm *SnapshotManager) sorted() []*Snapshot {
	snapshots := make([]*Snapshot, 0, len(sm.snapshots))
	for _, snap := range sm.snapshots {
		snapshots = append(snapshots, snap)
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].seq < snapshots[j].seq
	})
	return snapshots
}

// Count returns the number of snapshots.
func (sm *SnapshotManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.snapshots)
}

// Names returns all snapshot names, sorted.
func (sm *SnapshotManager) Names() []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	names := make([]string, 0, len(sm.byName))
	for name := range sm.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes all snapshots.
func (sm *SnapshotManager) Clear() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.snapshots = make(map[uuid.UUID]*Snapshot)
	sm.byName = make(map[string]*Snapshot)
}

// PruneKeepN removes the oldest snapshots, keeping only the n most recent.
// Returns the number of snapshots removed. A non-positive n keeps nothing.
func (sm *SnapshotManager) PruneKeepN(n int) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	n = max(n, 0)
	if len(sm.snapshots) <= n {
		return 0
	}

	snapshots := sm.sorted()
	drop := snapshots[:len(snapshots)-n]
	for _, snap := range drop {
		sm.remove(snap)
	}
	sm.log.Debug("pruned %d snapshots, kept %d", len(drop), n)
	return len(drop)
}
