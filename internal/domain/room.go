package domain

// RoomID is the opaque room key supplied by clients. Rooms are not
// materialized as objects; membership lives in the room hub.
type RoomID string
