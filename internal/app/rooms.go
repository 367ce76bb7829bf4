package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/sgurov/coderoom/internal/core"
	"github.com/sgurov/coderoom/internal/domain"
)

// RoomHub implements core.Broadcaster: an in-memory room -> member-set index
// plus the reverse conn -> room-set index, and the conn -> transport map
// used for directed and room-wide sends. A room exists while it has at
// least one member and is garbage-collected when the last one leaves.
type RoomHub struct {
	mu     sync.RWMutex
	conns  map[core.ConnID]core.SignalConnection
	rooms  map[domain.RoomID]map[core.ConnID]struct{}
	joined map[core.ConnID]map[domain.RoomID]struct{}
}

func NewRoomHub() *RoomHub {
	return &RoomHub{
		conns:  make(map[core.ConnID]core.SignalConnection),
		rooms:  make(map[domain.RoomID]map[core.ConnID]struct{}),
		joined: make(map[core.ConnID]map[domain.RoomID]struct{}),
	}
}

func (h *RoomHub) Register(id core.ConnID, conn core.SignalConnection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[id] = conn
	log.Info().Str("module", "app.rooms").Str("conn", string(id)).Msg("connection registered")
}

// Unregister drops the transport and any remaining room membership. Safe to
// call for an unknown id.
func (h *RoomHub) Unregister(id core.ConnID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range h.joined[id] {
		h.leaveLocked(id, room)
	}
	delete(h.joined, id)
	delete(h.conns, id)
	log.Info().Str("module", "app.rooms").Str("conn", string(id)).Msg("connection unregistered")
}

func (h *RoomHub) Join(id core.ConnID, room domain.RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[core.ConnID]struct{})
		h.rooms[room] = members
	}
	members[id] = struct{}{}
	set, ok := h.joined[id]
	if !ok {
		set = make(map[domain.RoomID]struct{})
		h.joined[id] = set
	}
	set[room] = struct{}{}
	log.Info().Str("module", "app.rooms").Str("conn", string(id)).Str("room", string(room)).Msg("joined room")
}

func (h *RoomHub) Leave(id core.ConnID, room domain.RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(id, room)
	if set, ok := h.joined[id]; ok {
		delete(set, room)
	}
}

func (h *RoomHub) leaveLocked(id core.ConnID, room domain.RoomID) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, id)
	if len(members) == 0 {
		delete(h.rooms, room)
		log.Info().Str("module", "app.rooms").Str("room", string(room)).Msg("room destroyed, no members")
	}
}

func (h *RoomHub) MembersOf(room domain.RoomID) []core.ConnID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]core.ConnID, 0, len(h.rooms[room]))
	for id := range h.rooms[room] {
		out = append(out, id)
	}
	return out
}

func (h *RoomHub) RoomsOf(id core.ConnID) []domain.RoomID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]domain.RoomID, 0, len(h.joined[id]))
	for room := range h.joined[id] {
		out = append(out, room)
	}
	return out
}

// SendTo delivers a frame to one connection. Absent or dead recipients are
// a silent no-op; a slow one drops the frame rather than blocking.
func (h *RoomHub) SendTo(id core.ConnID, f core.Frame) {
	if f == nil {
		return
	}
	h.mu.RLock()
	conn, ok := h.conns[id]
	h.mu.RUnlock()
	if !ok {
		return
	}
	if err := conn.TrySend(f); err != nil {
		log.Debug().Str("module", "app.rooms").Str("conn", string(id)).Err(err).Msg("send dropped")
	}
}

func (h *RoomHub) SendToRoom(room domain.RoomID, f core.Frame, exclude ...core.ConnID) {
	if f == nil {
		return
	}
	h.mu.RLock()
	targets := make([]core.SignalConnection, 0, len(h.rooms[room]))
	ids := make([]core.ConnID, 0, len(h.rooms[room]))
member:
	for id := range h.rooms[room] {
		for _, ex := range exclude {
			if id == ex {
				continue member
			}
		}
		if conn, ok := h.conns[id]; ok {
			targets = append(targets, conn)
			ids = append(ids, id)
		}
	}
	h.mu.RUnlock()

	for i, conn := range targets {
		if err := conn.TrySend(f); err != nil {
			log.Debug().Str("module", "app.rooms").Str("conn", string(ids[i])).Err(err).Msg("broadcast send dropped")
		}
	}
}
