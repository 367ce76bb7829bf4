// Package core defines the interfaces the coordination layer is written
// against. It owns no state.
package core

import "github.com/sgurov/coderoom/internal/domain"

// Frame is an encoded wire message.
type Frame []byte

// ConnID is the transport-assigned identity of one live connection. It
// exists from attach to detach; a reconnect gets a fresh one.
type ConnID string

// SignalConnection abstracts the messaging transport endpoint.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// Broadcaster is the room-broadcast primitive: group addressing plus
// per-room multicast. Sends to absent connections are silent no-ops.
type Broadcaster interface {
	Register(id ConnID, conn SignalConnection)
	Unregister(id ConnID)

	Join(id ConnID, room domain.RoomID)
	Leave(id ConnID, room domain.RoomID)
	MembersOf(room domain.RoomID) []ConnID
	RoomsOf(id ConnID) []domain.RoomID

	SendTo(id ConnID, f Frame)
	SendToRoom(room domain.RoomID, f Frame, exclude ...ConnID)
}
