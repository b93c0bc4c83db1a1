package core

// Frame is an encoded outbound event.
type Frame []byte

// SignalConnection abstracts a live transport endpoint the core fans out to.
// Owned by the adapter; the adapter must Close() it. TrySend never blocks.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
