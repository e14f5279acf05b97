package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
)

// Turn is a single conversation entry. Immutable once appended.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTurn builds a turn with a fresh ID and timestamp.
func NewTurn(role, content string) Turn {
	return Turn{
		Role:      role,
		Content:   content,
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
	}
}

// State holds everything tracked for one session: the rolling conversation
// window and the set of jokes already told.
type State struct {
	History    []Turn
	UsedJokes  map[string]struct{}
	LastActive time.Time
}

// Store keeps per-session state in memory. The backing cache is bounded to
// maxSessions entries with least-recently-used eviction, and the cleanup
// service additionally sweeps sessions idle past the retention age. All
// access goes through the store mutex; two concurrent requests for the same
// session must not race on history truncation or the used-joke set.
type Store struct {
	mu           sync.Mutex
	sessions     *lru.Cache
	historyLimit int
	logger       *zap.Logger
}

func NewStore(maxSessions, historyLimit int, logger *zap.Logger) (*Store, error) {
	cache, err := lru.New(maxSessions)
	if err != nil {
		return nil, err
	}
	return &Store{
		sessions:     cache,
		historyLimit: historyLimit,
		logger:       logger,
	}, nil
}

// getOrCreate lazily creates state for an unseen session and refreshes the
// activity timestamp. Caller must hold s.mu.
func (s *Store) getOrCreate(sessionID string) *State {
	if v, ok := s.sessions.Get(sessionID); ok {
		state := v.(*State)
		state.LastActive = time.Now()
		return state
	}
	state := &State{
		UsedJokes:  make(map[string]struct{}),
		LastActive: time.Now(),
	}
	if evicted := s.sessions.Add(sessionID, state); evicted {
		s.logger.Debug("Session store full, evicted least recently used session",
			zap.String("session_id", sessionID),
			zap.Int("sessions", s.sessions.Len()))
	}
	return state
}

// Append pushes a turn onto the session history and truncates it to the
// configured limit, oldest entries first.
func (s *Store) Append(sessionID string, turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.getOrCreate(sessionID)
	state.History = append(state.History, turn)
	if len(state.History) > s.historyLimit {
		state.History = state.History[len(state.History)-s.historyLimit:]
	}
}

// History returns a copy of the session's conversation window.
func (s *Store) History(sessionID string) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.getOrCreate(sessionID)
	history := make([]Turn, len(state.History))
	copy(history, state.History)
	return history
}

// IsJokeUsed reports whether the joke was already told this session.
func (s *Store) IsJokeUsed(sessionID, joke string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, used := s.getOrCreate(sessionID).UsedJokes[joke]
	return used
}

// RecordJoke marks a joke as told for this session.
func (s *Store) RecordJoke(sessionID, joke string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.getOrCreate(sessionID).UsedJokes[joke] = struct{}{}
}

// ResetJokes clears the used-joke set once the pool is exhausted. The next
// pick may repeat a recent joke; the source behavior is a full reset, not
// oldest-first eviction.
func (s *Store) ResetJokes(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.getOrCreate(sessionID).UsedJokes = make(map[string]struct{})
}

// UsedJokeCount returns how many distinct jokes this session has heard
// since the last reset.
func (s *Store) UsedJokeCount(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.getOrCreate(sessionID).UsedJokes)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Len()
}

// Delete removes a session and all its state.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions.Remove(sessionID)
}

// StaleSessions returns the IDs of sessions whose last activity predates
// the cutoff. Uses Peek so the scan does not disturb eviction order.
func (s *Store) StaleSessions(cutoff time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stale []string
	for _, key := range s.sessions.Keys() {
		v, ok := s.sessions.Peek(key)
		if !ok {
			continue
		}
		if v.(*State).LastActive.Before(cutoff) {
			stale = append(stale, key.(string))
		}
	}
	return stale
}
