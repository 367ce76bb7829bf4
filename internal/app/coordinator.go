package app

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/sgurov/coderoom/internal/core"
	"github.com/sgurov/coderoom/internal/domain"
	"github.com/sgurov/coderoom/internal/protocol"
)

// Coordinator owns the event semantics: presence reconciliation, the call
// lifecycle, relays and the two-phase disconnect. All state it touches is
// held by the injected Registry, Broadcaster and CallTracker, so independent
// instances are fully isolated.
//
// Room-mutating operations take a per-room exclusive guard. The transport
// already serializes events of a single connection; the guard additionally
// serializes events of different connections that target the same room, so
// a join's duplicate check cannot be invalidated before it commits.
type Coordinator struct {
	Registry *Registry
	Rooms    core.Broadcaster
	Calls    *CallTracker

	mu    sync.Mutex
	locks map[domain.RoomID]*sync.Mutex
}

func NewCoordinator(reg *Registry, rooms core.Broadcaster, calls *CallTracker) *Coordinator {
	return &Coordinator{
		Registry: reg,
		Rooms:    rooms,
		Calls:    calls,
		locks:    make(map[domain.RoomID]*sync.Mutex),
	}
}

func (c *Coordinator) roomLock(room domain.RoomID) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[room]
	if !ok {
		l = &sync.Mutex{}
		c.locks[room] = l
	}
	return l
}

func (c *Coordinator) encode(v any) core.Frame {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Str("module", "app.coordinator").Err(err).Msg("encode event")
		return nil
	}
	return b
}

// Join reconciles duplicate presence and announces the new member.
//
// A rejoin under the same display name (e.g. a browser refresh whose old
// transport is still lingering) evicts the stale connection first, so a
// given name occupies exactly one roster slot. Two distinct humans who pick
// the same name collide the same way; that is the inherited policy.
func (c *Coordinator) Join(id core.ConnID, room domain.RoomID, username string) {
	l := c.roomLock(room)
	l.Lock()
	defer l.Unlock()

	for _, member := range c.Rooms.MembersOf(room) {
		if member == id {
			continue
		}
		name, ok := c.Registry.Name(member)
		if !ok || name != username {
			continue
		}
		log.Info().Str("module", "app.coordinator").
			Str("room", string(room)).Str("username", username).
			Str("stale", string(member)).Str("conn", string(id)).
			Msg("evicting stale duplicate")
		c.Rooms.Leave(member, room)
		c.Registry.Remove(member)
	}

	c.Registry.SetName(id, username)
	c.Rooms.Join(id, room)

	// Every member, the joiner included, gets the fresh roster: existing
	// clients must reconcile their peer connections against it.
	c.Rooms.SendToRoom(room, c.encode(protocol.Joined{
		Type:     protocol.EventJoined,
		Clients:  c.Snapshot(room),
		Username: username,
		ConnID:   string(id),
	}))

	if c.Calls.Active(room) {
		c.Rooms.SendTo(id, c.encode(protocol.CallInProgress{
			Type:   protocol.EventCallInProgress,
			RoomID: string(room),
		}))
	}
}

// Snapshot answers the roster query immediately from current state.
func (c *Coordinator) Snapshot(room domain.RoomID) []protocol.ClientInfo {
	return lo.Map(c.Rooms.MembersOf(room), func(id core.ConnID, _ int) protocol.ClientInfo {
		name, _ := c.Registry.Name(id)
		return protocol.ClientInfo{ConnID: string(id), Username: name}
	})
}

// Relay forwards one negotiation payload to its target, untouched. A target
// that is gone is a no-op: the directed send already behaves that way.
func (c *Coordinator) Relay(kind protocol.EventType, from, target core.ConnID, payload json.RawMessage) {
	c.Rooms.SendTo(target, c.encode(protocol.Signal{
		Type:    kind,
		From:    string(from),
		Payload: payload,
	}))
}

func (c *Coordinator) CodeChange(room domain.RoomID, from core.ConnID, code string) {
	c.Rooms.SendToRoom(room, c.encode(protocol.CodeChange{
		Type: protocol.EventCodeChange,
		From: string(from),
		Code: code,
	}), from)
}

// SyncCode delivers the current document to one late peer. It arrives as a
// code-change event, same as a live edit would.
func (c *Coordinator) SyncCode(from, target core.ConnID, code string) {
	c.Rooms.SendTo(target, c.encode(protocol.CodeChange{
		Type: protocol.EventCodeChange,
		From: string(from),
		Code: code,
	}))
}

// Output relays an execution result to the whole room, sender included.
func (c *Coordinator) Output(room domain.RoomID, from core.ConnID, output string) {
	c.Rooms.SendToRoom(room, c.encode(protocol.Output{
		Type:   protocol.EventOutput,
		From:   string(from),
		Output: output,
	}))
}

func (c *Coordinator) CallInitiated(room domain.RoomID, initiator core.ConnID) {
	l := c.roomLock(room)
	l.Lock()
	defer l.Unlock()

	c.Calls.SetActive(room)
	name, _ := c.Registry.Name(initiator)
	c.Rooms.SendToRoom(room, c.encode(protocol.CallInitiated{
		Type:     protocol.EventCallInitiated,
		From:     string(initiator),
		Username: name,
	}), initiator)
}

func (c *Coordinator) JoinedCall(room domain.RoomID, id core.ConnID) {
	l := c.roomLock(room)
	l.Lock()
	defer l.Unlock()

	name, _ := c.Registry.Name(id)
	c.Rooms.SendToRoom(room, c.encode(protocol.JoinedCall{
		Type:     protocol.EventJoinedCall,
		From:     string(id),
		Username: name,
	}), id)
}

// CallEnded clears the active flag when the caller is the last room member,
// then emits both teardown events: clients key call-level teardown off
// call-ended and per-participant video removal off user-left-call.
//
// The "last member" check counts room occupancy, not call occupancy; the
// participant set of a call is never tracked. Ending a call while non-call
// members sit in the room therefore keeps the flag set. Known limitation,
// kept as-is.
func (c *Coordinator) CallEnded(room domain.RoomID, id core.ConnID, suppliedUsername string) {
	l := c.roomLock(room)
	l.Lock()
	defer l.Unlock()

	name := suppliedUsername
	if name == "" {
		name, _ = c.Registry.Name(id)
	}

	if len(c.Rooms.MembersOf(room)) <= 1 {
		c.Calls.Clear(room)
	}

	c.Rooms.SendToRoom(room, c.encode(protocol.CallEnded{
		Type:     protocol.EventCallEnded,
		From:     string(id),
		Username: name,
	}), id)
	c.Rooms.SendToRoom(room, c.encode(protocol.UserLeftCall{
		Type:     protocol.EventUserLeftCall,
		ConnID:   string(id),
		Username: name,
	}), id)
}

// UserLeftCall announces a departure while the call continues for the rest.
func (c *Coordinator) UserLeftCall(room domain.RoomID, id core.ConnID) {
	l := c.roomLock(room)
	l.Lock()
	defer l.Unlock()

	name, _ := c.Registry.Name(id)
	c.Rooms.SendToRoom(room, c.encode(protocol.UserLeftCall{
		Type:     protocol.EventUserLeftCall,
		ConnID:   string(id),
		Username: name,
	}), id)
}

// Disconnecting is the first disconnect phase: link teardown has begun but
// membership is still queryable. Each room the connection belongs to hears
// a user-left-call first (call rooms only), then the standard disconnected
// notification.
func (c *Coordinator) Disconnecting(id core.ConnID) {
	name, _ := c.Registry.Name(id)
	for _, room := range c.Rooms.RoomsOf(id) {
		l := c.roomLock(room)
		l.Lock()
		if c.Calls.Active(room) {
			c.Rooms.SendToRoom(room, c.encode(protocol.UserLeftCall{
				Type:     protocol.EventUserLeftCall,
				ConnID:   string(id),
				Username: name,
			}), id)
		}
		c.Rooms.Leave(id, room)
		c.Rooms.SendToRoom(room, c.encode(protocol.Disconnected{
			Type:     protocol.EventDisconnected,
			ConnID:   string(id),
			Username: name,
		}))
		l.Unlock()
	}
}

// Disconnect is the second phase, after the transport has detached the
// connection from every room: sweep the active-call flags of rooms that are
// now empty, then erase the connection entirely.
func (c *Coordinator) Disconnect(id core.ConnID) {
	for _, room := range c.Calls.ActiveRooms() {
		if len(c.Rooms.MembersOf(room)) == 0 {
			c.Calls.Clear(room)
		}
	}
	c.Registry.Remove(id)
	c.Rooms.Unregister(id)
	log.Info().Str("module", "app.coordinator").Str("conn", string(id)).Msg("disconnected")
}
