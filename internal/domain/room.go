package domain

// RoomID is a caller-supplied, globally unique room key. The server does not
// validate its format beyond a length cap.
type RoomID string

// AuthorPolicy decides what happens to a room when its author departs.
type AuthorPolicy int

const (
	// AuthorClosesRoom deletes the room when the author leaves or
	// disconnects. This is the baseline policy.
	AuthorClosesRoom AuthorPolicy = iota

	// AuthorHandsOff promotes an arbitrary remaining member to author and
	// only closes the room when no members remain.
	AuthorHandsOff
)
