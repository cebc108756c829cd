package channel

import "github.com/louisbranch/lectern/internal/present/domain"

// PresenceEntry is one logical participant on a session's roster.
type PresenceEntry struct {
	ID   string
	Role domain.Role
}

func (r *Registry) trackPresence(topic, entryID string, role domain.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()

	roster, ok := r.rosters[topic]
	if !ok {
		roster = make(map[string]domain.Role)
		r.rosters[topic] = roster
	}
	roster[entryID] = role
}

func (r *Registry) untrackPresence(topic, entryID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	roster, ok := r.rosters[topic]
	if !ok {
		return
	}
	delete(roster, entryID)
	if len(roster) == 0 {
		delete(r.rosters, topic)
	}
}

// Roster returns the presence entries currently tracked for a session.
func (r *Registry) Roster(sessionID string) []PresenceEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	roster := r.rosters[Topic(sessionID)]
	entries := make([]PresenceEntry, 0, len(roster))
	for entryID, role := range roster {
		entries = append(entries, PresenceEntry{ID: entryID, Role: role})
	}
	return entries
}

// AudienceSize computes the audience count from the roster: every tracked
// entry that is not a presenter. Counting non-presenter entries directly,
// rather than subtracting one unconditionally, keeps the count correct when
// a reconnecting presenter briefly leaves two presenter entries tracked.
func (r *Registry) AudienceSize(sessionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, role := range r.rosters[Topic(sessionID)] {
		if role != domain.RolePresenter {
			count++
		}
	}
	return count
}
