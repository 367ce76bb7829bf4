package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/sgurov/coderoom/internal/domain"
)

// CallTracker holds the set of rooms with a group call in progress. A room
// has at most one active-call flag; concurrent initiations collapse into
// the same entry.
type CallTracker struct {
	mu     sync.RWMutex
	active map[domain.RoomID]struct{}
}

func NewCallTracker() *CallTracker {
	return &CallTracker{active: make(map[domain.RoomID]struct{})}
}

func (t *CallTracker) SetActive(room domain.RoomID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.active[room]; ok {
		return
	}
	t.active[room] = struct{}{}
	log.Info().Str("module", "app.calls").Str("room", string(room)).Msg("call active")
}

func (t *CallTracker) Active(room domain.RoomID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.active[room]
	return ok
}

func (t *CallTracker) Clear(room domain.RoomID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.active[room]; !ok {
		return
	}
	delete(t.active, room)
	log.Info().Str("module", "app.calls").Str("room", string(room)).Msg("call cleared")
}

func (t *CallTracker) ActiveRooms() []domain.RoomID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.RoomID, 0, len(t.active))
	for room := range t.active {
		out = append(out, room)
	}
	return out
}
