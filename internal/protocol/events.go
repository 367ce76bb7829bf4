// Package protocol defines the wire contract: the closed set of event types
// and the payload shape of every server-emitted message. Offer/answer/
// candidate payloads are opaque and pass through unparsed.
package protocol

import "encoding/json"

type EventType string

const (
	// client -> server
	EventJoin                EventType = "join"
	EventCodeChange          EventType = "code-change"
	EventSyncCode            EventType = "sync-code"
	EventOutput              EventType = "output"
	EventCallInitiated       EventType = "call-initiated"
	EventJoinedCall          EventType = "joined-call"
	EventCallEnded           EventType = "call-ended"
	EventUserLeftCall        EventType = "user-left-call"
	EventWebRTCOffer         EventType = "webrtc-offer"
	EventWebRTCAnswer        EventType = "webrtc-answer"
	EventWebRTCICECandidate  EventType = "webrtc-ice-candidate"
	EventGetConnectedClients EventType = "get-connected-clients"
	EventPing                EventType = "ping"

	// server -> client
	EventJoined           EventType = "joined"
	EventDisconnected     EventType = "disconnected"
	EventCallInProgress   EventType = "call-in-progress"
	EventConnectedClients EventType = "connected-clients"
	EventPong             EventType = "pong"
)

// Envelope is the minimal shape every inbound message must decode to.
type Envelope struct {
	Type EventType `json:"type"`
}

// ClientInfo is one roster entry.
type ClientInfo struct {
	ConnID   string `json:"connId"`
	Username string `json:"username"`
}

type Joined struct {
	Type     EventType    `json:"type"`
	Clients  []ClientInfo `json:"clients"`
	Username string       `json:"username"`
	ConnID   string       `json:"connId"`
}

type Disconnected struct {
	Type     EventType `json:"type"`
	ConnID   string    `json:"connId"`
	Username string    `json:"username"`
}

type CodeChange struct {
	Type EventType `json:"type"`
	From string    `json:"from"`
	Code string    `json:"code"`
}

type Output struct {
	Type   EventType `json:"type"`
	From   string    `json:"from"`
	Output string    `json:"output"`
}

type CallInitiated struct {
	Type     EventType `json:"type"`
	From     string    `json:"from"`
	Username string    `json:"username"`
}

type JoinedCall struct {
	Type     EventType `json:"type"`
	From     string    `json:"from"`
	Username string    `json:"username"`
}

type CallEnded struct {
	Type     EventType `json:"type"`
	From     string    `json:"from"`
	Username string    `json:"username"`
}

type UserLeftCall struct {
	Type     EventType `json:"type"`
	ConnID   string    `json:"connId"`
	Username string    `json:"username"`
}

type CallInProgress struct {
	Type   EventType `json:"type"`
	RoomID string    `json:"roomId"`
}

// Signal carries one relayed negotiation message. Type is one of the three
// webrtc event kinds; Payload is forwarded byte-for-byte.
type Signal struct {
	Type    EventType       `json:"type"`
	From    string          `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

type ConnectedClients struct {
	Type    EventType    `json:"type"`
	RoomID  string       `json:"roomId"`
	Clients []ClientInfo `json:"clients"`
}

type Pong struct {
	Type EventType `json:"type"`
}
