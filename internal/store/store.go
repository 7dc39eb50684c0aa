package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/acronyms/internal/domain"
	"github.com/MrSnakeDoc/acronyms/internal/logger"
)

// Key is the fixed name the collection is persisted under.
const Key = "acronyms"

// CorruptSuffix names the key an unreadable persisted value is copied to
// before the store starts empty.
const CorruptSuffix = ".corrupt"

// ErrCorruptState is returned by Load when the persisted value is not a
// JSON array of records.
var ErrCorruptState = errors.New("persisted acronyms are not valid JSON")

// KV is the process-local key/value store the collection is written to.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store owns the authoritative acronym collection. Its methods are the only
// write path; every mutation persists the full collection before it becomes
// visible.
type Store struct {
	mu      sync.RWMutex
	records []domain.Acronym

	kv     KV
	key    string
	now    func() time.Time
	newID  func() string
	logger logger.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// New creates an empty store. Call Load to recover persisted state.
func New(kv KV, log logger.Logger, opts ...Option) *Store {
	s := &Store{
		records: []domain.Acronym{},
		kv:      kv,
		key:     Key,
		now:     time.Now,
		newID:   uuid.NewString,
		logger:  log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted one. A missing
// key is an empty collection.
func (s *Store) Load(ctx context.Context) error {
	data, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", s.key, err)
	}

	records := []domain.Acronym{}
	if ok && len(data) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			s.logger.Error("persisted state is corrupt, starting empty",
				logger.String("key", s.key),
				logger.Error(err))
			s.keepCorrupt(ctx, data)
			return fmt.Errorf("%w: %v", ErrCorruptState, err)
		}
		if records == nil {
			records = []domain.Acronym{}
		}
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	s.logger.Info("acronyms loaded",
		logger.String("key", s.key),
		logger.Int("count", len(records)))
	return nil
}

// Add creates a record with a fresh id and equal timestamps, appends it and
// persists the collection.
func (s *Store) Add(ctx context.Context, acronym, description string) (domain.Acronym, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := domain.Timestamp(s.now())
	rec := domain.Acronym{
		ID:          s.newID(),
		Acronym:     acronym,
		Description: description,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	next := make([]domain.Acronym, len(s.records), len(s.records)+1)
	copy(next, s.records)
	next = append(next, rec)

	if err := s.commitLocked(ctx, next); err != nil {
		return domain.Acronym{}, err
	}
	s.logger.Debug("acronym added",
		logger.String("id", rec.ID),
		logger.String("acronym", rec.Acronym))
	return rec, nil
}

// Update replaces acronym and description of the record with id and
// refreshes UpdatedAt. It reports false, and writes nothing, when id is
// unknown.
func (s *Store) Update(ctx context.Context, id, acronym, description string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		s.logger.Debug("update ignored, unknown id", logger.String("id", id))
		return false, nil
	}

	next := make([]domain.Acronym, len(s.records))
	copy(next, s.records)

	rec := next[i]
	ts := domain.Timestamp(s.now())
	// updatedAt never moves backwards, even if the clock does.
	if ts.Before(rec.UpdatedAt) {
		ts = rec.UpdatedAt
	}
	if ts.Before(rec.CreatedAt) {
		ts = rec.CreatedAt
	}
	rec.Acronym = acronym
	rec.Description = description
	rec.UpdatedAt = ts
	next[i] = rec

	if err := s.commitLocked(ctx, next); err != nil {
		return false, err
	}
	s.logger.Debug("acronym updated", logger.String("id", id))
	return true, nil
}

// Delete removes the record with id. It reports false, and writes nothing,
// when id is unknown.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		s.logger.Debug("delete ignored, unknown id", logger.String("id", id))
		return false, nil
	}

	next := make([]domain.Acronym, 0, len(s.records)-1)
	next = append(next, s.records[:i]...)
	next = append(next, s.records[i+1:]...)

	if err := s.commitLocked(ctx, next); err != nil {
		return false, err
	}
	s.logger.Debug("acronym deleted", logger.String("id", id))
	return true, nil
}

// ReplaceAll discards the collection and stores records verbatim, ids and
// timestamps included.
func (s *Store) ReplaceAll(ctx context.Context, records []domain.Acronym) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Acronym, len(records))
	copy(next, records)

	if err := s.commitLocked(ctx, next); err != nil {
		return err
	}
	s.logger.Info("acronyms replaced", logger.Int("count", len(next)))
	return nil
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []domain.Acronym {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Acronym, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record with id.
func (s *Store) Get(id string) (domain.Acronym, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexLocked(id); i >= 0 {
		return s.records[i], true
	}
	return domain.Acronym{}, false
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

func (s *Store) indexLocked(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

// keepCorrupt copies an unreadable value aside so the next commit does not
// destroy it.
func (s *Store) keepCorrupt(ctx context.Context, data []byte) {
	key := s.key + CorruptSuffix
	if err := s.kv.Set(ctx, key, data); err != nil {
		s.logger.Error("failed to keep corrupt state",
			logger.String("key", key),
			logger.Error(err))
		return
	}
	s.logger.Warn("corrupt state kept", logger.String("key", key))
}

// commitLocked persists next and only then makes it the live collection.
func (s *Store) commitLocked(ctx context.Context, next []domain.Acronym) error {
	data, err := marshal(next)
	if err != nil {
		return fmt.Errorf("failed to marshal acronyms: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		s.logger.Error("failed to persist acronyms",
			logger.String("key", s.key),
			logger.Error(err))
		return fmt.Errorf("failed to persist acronyms: %w", err)
	}
	s.records = next
	return nil
}

// marshal encodes compactly without HTML escaping, matching JSON.stringify.
func marshal(records []domain.Acronym) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
