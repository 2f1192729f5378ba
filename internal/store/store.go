// Package store holds the session's message records in memory. Records are
// append-only in submission order; the only permitted update is the single
// pending→resolved transition, keyed by message id, so concurrent
// resolutions of different messages never conflict.
package store

import (
	"errors"
	"sync"

	"sentinel-dashboard/internal/models"

	"go.uber.org/zap"
)

// ErrDuplicateID is returned when a message id is already present.
var ErrDuplicateID = errors.New("store: duplicate message id")

// Store owns all message records for the session.
type Store struct {
	mu     sync.RWMutex
	byID   map[string]*models.Message
	order  []string
	logger *zap.Logger
}

// New creates an empty message store.
func New(logger *zap.Logger) *Store {
	return &Store{
		byID:   make(map[string]*models.Message),
		logger: logger,
	}
}

// Append adds a new record in pending state. The record's id must be
// unique among current records.
func (s *Store) Append(msg models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[msg.ID]; exists {
		return ErrDuplicateID
	}

	msg.State = models.StatePending
	msg.Analysis = nil

	s.byID[msg.ID] = &msg
	s.order = append(s.order, msg.ID)
	return nil
}

// Resolve transitions the named record out of pending. A non-nil result
// moves it to analyzed; nil moves it to failed-safe carrying the neutral
// fallback. Unknown ids and already-resolved records are logged no-ops:
// stale completions must never disturb the store. Returns whether the
// transition was applied.
func (s *Store) Resolve(id string, result *models.AnalysisResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.byID[id]
	if !ok {
		s.logger.Warn("Resolve for unknown message id", zap.String("id", id))
		return false
	}
	if msg.State != models.StatePending {
		s.logger.Warn("Resolve for already-resolved message",
			zap.String("id", id),
			zap.String("state", string(msg.State)))
		return false
	}

	if result != nil {
		r := *result
		msg.State = models.StateAnalyzed
		msg.Analysis = &r
	} else {
		neutral := models.NeutralResult()
		msg.State = models.StateFailedSafe
		msg.Analysis = &neutral
	}
	return true
}

// Snapshot returns a copy of all records in insertion order, oldest first.
func (s *Store) Snapshot() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Message, 0, len(s.order))
	for _, id := range s.order {
		msg := *s.byID[id]
		if msg.Analysis != nil {
			r := *msg.Analysis
			msg.Analysis = &r
		}
		out = append(out, msg)
	}
	return out
}

// Len returns the current record count.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
