package prefs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// LocalCache persists the exclusion set on this machine.
type LocalCache interface {
	LoadExcluded(ctx context.Context) ([]string, error)
	SaveExcluded(ctx context.Context, ids []string) error
	ClearExcluded(ctx context.Context) error
}

// RemoteDocument is the per-user document the set is mirrored to.
type RemoteDocument interface {
	MergeExcluded(ctx context.Context, userID string, ids []string) error
	ClearExcluded(ctx context.Context, userID string) error
}

// Store owns the set of coin ids the user has hidden. The set only grows
// until Reset. Every mutation is applied and persisted locally under one lock
// so readers never observe a partial update.
type Store struct {
	mu     sync.RWMutex
	ids    map[string]struct{}
	userID string
	local  LocalCache
	remote RemoteDocument
	logger *logrus.Entry
}

// NewStore returns an empty store. remote may be nil when sync is disabled.
func NewStore(local LocalCache, remote RemoteDocument, logger *logrus.Entry) *Store {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Store{
		ids:    make(map[string]struct{}),
		local:  local,
		remote: remote,
		logger: logger.WithField("component", "prefs"),
	}
}

// LoadLocal unions the locally cached ids into the live set.
func (s *Store) LoadLocal(ctx context.Context) error {
	if s.local == nil {
		return nil
	}
	ids, err := s.local.LoadExcluded(ctx)
	if err != nil {
		return fmt.Errorf("load local exclusions: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(ids)
	return nil
}

// SetIdentity records the remote user once anonymous sign-in resolves.
func (s *Store) SetIdentity(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
}

func (s *Store) Identity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Store) RemoteEnabled() bool {
	return s.remote != nil
}

// Merge unions ids arriving from another source (typically the remote
// document). It returns how many ids were new; new ids are persisted locally.
func (s *Store) Merge(ctx context.Context, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := s.addLocked(ids)
	if added == 0 {
		return 0, nil
	}
	return added, s.saveLocked(ctx)
}

// Exclude hides one coin and writes the set to the local cache. Remote sync
// is the caller's job (see PushRemote) so the UI never waits on the network.
func (s *Store) Exclude(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("exclude: empty id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addLocked([]string{id}) == 0 {
		return nil
	}
	return s.saveLocked(ctx)
}

// Reset empties the set and drops the local cache entry.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{})
	if s.local == nil {
		return nil
	}
	if err := s.local.ClearExcluded(ctx); err != nil {
		return fmt.Errorf("clear local exclusions: %w", err)
	}
	return nil
}

// PushRemote merge-writes the full current set to the user's remote
// document. It is a no-op without a remote or before identity resolves.
func (s *Store) PushRemote(ctx context.Context) error {
	s.mu.RLock()
	userID := s.userID
	ids := s.sortedLocked()
	s.mu.RUnlock()

	if s.remote == nil || userID == "" {
		return nil
	}
	if err := s.remote.MergeExcluded(ctx, userID, ids); err != nil {
		s.logger.WithError(err).WithField("count", len(ids)).Warn("remote exclusion sync failed")
		return fmt.Errorf("sync exclusions to remote: %w", err)
	}
	s.logger.WithField("count", len(ids)).Debug("synced exclusions to remote")
	return nil
}

// ClearRemote empties the user's remote document, best-effort.
func (s *Store) ClearRemote(ctx context.Context) error {
	userID := s.Identity()
	if s.remote == nil || userID == "" {
		return nil
	}
	if err := s.remote.ClearExcluded(ctx, userID); err != nil {
		s.logger.WithError(err).Warn("remote exclusion clear failed")
		return fmt.Errorf("clear remote exclusions: %w", err)
	}
	return nil
}

func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// IDs returns a sorted copy of the set.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

func (s *Store) ExportSnapshot(now time.Time) Snapshot {
	return Snapshot{
		ExcludedIDs: s.IDs(),
		ExportedAt:  now.UTC(),
		Version:     SnapshotVersion,
	}
}

// ImportSnapshot unions a decoded snapshot into the set and persists it
// locally. It returns how many ids were new.
func (s *Store) ImportSnapshot(ctx context.Context, snap Snapshot) (int, error) {
	if snap.ExcludedIDs == nil {
		return 0, fmt.Errorf("%w: missing excludedIds", ErrInvalidFormat)
	}
	return s.Merge(ctx, snap.ExcludedIDs)
}

func (s *Store) addLocked(ids []string) int {
	added := 0
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := s.ids[id]; ok {
			continue
		}
		s.ids[id] = struct{}{}
		added++
	}
	return added
}

func (s *Store) saveLocked(ctx context.Context) error {
	if s.local == nil {
		return nil
	}
	if err := s.local.SaveExcluded(ctx, s.sortedLocked()); err != nil {
		return fmt.Errorf("save local exclusions: %w", err)
	}
	return nil
}

func (s *Store) sortedLocked() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
