// Package engine implements the scripted reply service: an ordered chain of
// intent rules over free-text messages, a restricted arithmetic evaluator,
// and session-scoped joke anti-repetition state. It is usable directly as a
// library or behind the HTTP handlers in web/.
package engine

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	apperrors "chat-agent/errors"
	"chat-agent/session"

	"go.uber.org/zap"
)

// Rand is the randomness source used for canned-reply selection. The
// default is seeded from the wall clock; tests inject a deterministic
// implementation to pin exact outputs.
type Rand interface {
	Intn(n int) int
}

// lockedRand makes a rand.Rand safe for concurrent handlers.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}

// Engine is the reply service. It owns all mutation of session state: a
// reply appends the user turn, classifies, then appends the assistant turn.
type Engine struct {
	store  *session.Store
	logger *zap.Logger
	rng    Rand
	clock  func() time.Time
	rules  []rule
}

type Option func(*Engine)

// WithRand replaces the reply-selection randomness source.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithClock replaces the wall clock used by the time rule.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

func New(store *session.Store, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		logger: logger,
		rng:    &lockedRand{rng: rand.New(rand.NewSource(time.Now().UnixNano()))},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.rules = e.buildRules()
	return e
}

// Reply produces the scripted response for a message within a session.
// Empty message or session ID fails with ErrInvalidInput before any state
// changes. Any panic out of the rule chain is recovered here and surfaced
// as ErrInternal so the transport layer never sees a raw fault; in that
// case the user turn stays appended and no assistant turn is written.
func (e *Engine) Reply(ctx context.Context, message, sessionID string) (reply string, err error) {
	if message == "" || sessionID == "" {
		return "", apperrors.ErrInvalidInput
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Recovered from fault in reply engine",
				zap.Any("panic", r),
				zap.String("session_id", sessionID))
			reply = ""
			err = apperrors.ErrInternal
		}
	}()

	e.store.Append(sessionID, session.NewTurn("user", message))

	in := &matchInput{
		raw:        message,
		normalized: strings.ToLower(strings.TrimSpace(message)),
		sessionID:  sessionID,
		history:    e.store.History(sessionID),
	}
	reply = e.classify(in)

	e.store.Append(sessionID, session.NewTurn("assistant", reply))
	return reply, nil
}

// pick selects uniformly from the candidate list.
func (e *Engine) pick(candidates []string) string {
	return candidates[e.rng.Intn(len(candidates))]
}
