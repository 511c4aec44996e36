package cooldown

import (
	"context"
	"sync"
	"time"
)

// Manager is the per-user, per-command rate limiter for interactive
// commands. State is purely in-memory: cooldowns intentionally do not
// survive a restart.
type Manager struct {
	cooldowns sync.Map // "userID:command" -> time.Time expiry
}

func NewManager() *Manager {
	return &Manager{}
}

// Check reports whether the user may run the command, and if not, how long
// until they can.
func (m *Manager) Check(userID, command string) (bool, time.Duration) {
	if expiry, exists := m.cooldowns.Load(userID + ":" + command); exists {
		until := expiry.(time.Time)
		if time.Now().Before(until) {
			return false, time.Until(until)
		}
	}
	return true, 0
}

// Set arms a cooldown for the user and command.
func (m *Manager) Set(userID, command string, d time.Duration) {
	m.cooldowns.Store(userID+":"+command, time.Now().Add(d))
}

// Clear drops a cooldown early.
func (m *Manager) Clear(userID, command string) {
	m.cooldowns.Delete(userID + ":" + command)
}

func (m *Manager) cleanupExpired() {
	now := time.Now()
	m.cooldowns.Range(func(key, value interface{}) bool {
		if now.After(value.(time.Time)) {
			m.cooldowns.Delete(key)
		}
		return true
	})
}

// StartCleanupRoutine sweeps expired entries until the context is done.
func (m *Manager) StartCleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.cleanupExpired()
			}
		}
	}()
}
