package web

import (
	"context"
	"time"

	"chat-agent/config"
	"chat-agent/session"

	"go.uber.org/zap"
)

// CleanupService removes sessions that have been idle past the retention
// age. The session store is already bounded by LRU eviction; the sweep
// keeps long-idle sessions from occupying those slots.
type CleanupService struct {
	store  *session.Store
	logger *zap.Logger
}

// NewCleanupService creates a new cleanup service instance
func NewCleanupService(store *session.Store, logger *zap.Logger) *CleanupService {
	return &CleanupService{
		store:  store,
		logger: logger,
	}
}

// CleanupStaleSessions deletes sessions whose last activity is older than
// maxAge and returns the number deleted.
func (cs *CleanupService) CleanupStaleSessions(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	staleSessions := cs.store.StaleSessions(cutoff)
	if len(staleSessions) == 0 {
		cs.logger.Debug("No stale sessions found")
		return 0
	}

	for _, sessionID := range staleSessions {
		cs.store.Delete(sessionID)
	}

	cs.logger.Info("Stale session cleanup completed",
		zap.Int("sessions_deleted", len(staleSessions)),
		zap.Int("sessions_remaining", cs.store.Len()),
		zap.Time("cutoff_time", cutoff))

	return len(staleSessions)
}

// StartSessionCleanup runs the periodic sweep until the context is
// cancelled. Gated by CLEANUP_ENABLED.
func StartSessionCleanup(ctx context.Context, cfg *config.Config, cs *CleanupService, logger *zap.Logger) {
	if !cfg.CleanupEnabled {
		logger.Info("Session cleanup disabled")
		return
	}

	logger.Info("Session cleanup started",
		zap.Duration("interval", cfg.CleanupInterval),
		zap.Duration("retention_age", cfg.SessionRetentionAge))

	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session cleanup stopped")
			return
		case <-ticker.C:
			cs.CleanupStaleSessions(cfg.SessionRetentionAge)
		}
	}
}
