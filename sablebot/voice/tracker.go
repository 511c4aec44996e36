package voice

import "sync"

// Tracker keeps the set of members currently connected to a voice channel,
// fed by gateway voice-state updates. The periodic reward tick iterates it
// instead of querying the gateway cache.
type Tracker struct {
	mu           sync.RWMutex
	participants map[string]string // user id -> username
}

func NewTracker() *Tracker {
	return &Tracker{participants: make(map[string]string)}
}

// Join records a member entering (or moving between) voice channels.
func (t *Tracker) Join(userID, username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.participants[userID] = username
}

// Leave drops a member that disconnected.
func (t *Tracker) Leave(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.participants, userID)
}

// ForEach visits a snapshot of the connected members, so a slow visit never
// blocks gateway updates.
func (t *Tracker) ForEach(fn func(userID, username string)) {
	t.mu.RLock()
	snapshot := make(map[string]string, len(t.participants))
	for id, name := range t.participants {
		snapshot[id] = name
	}
	t.mu.RUnlock()

	for id, name := range snapshot {
		fn(id, name)
	}
}

// Count returns the number of connected members.
func (t *Tracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.participants)
}
