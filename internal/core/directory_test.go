package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yashkandiyal/real-time-code--editor/internal/core"
)

type nopConn struct{ id string }

func (n *nopConn) TrySend(core.Frame) error { return nil }
func (n *nopConn) Close()                   {}

func TestDirectoryRegisterLookup(t *testing.T) {
	d := core.NewDirectory()
	c1 := &nopConn{id: "c1"}

	d.Register("alice", c1)

	got, ok := d.Lookup("alice")
	require.True(t, ok)
	require.Same(t, c1, got)

	_, ok = d.Lookup("bob")
	require.False(t, ok)
}

func TestDirectoryLastRegisterWins(t *testing.T) {
	d := core.NewDirectory()
	c1 := &nopConn{id: "c1"}
	c2 := &nopConn{id: "c2"}

	d.Register("alice", c1)
	d.Register("alice", c2)

	got, ok := d.Lookup("alice")
	require.True(t, ok)
	require.Same(t, c2, got)
}

func TestDirectoryStaleUnregisterDoesNotClobberReconnect(t *testing.T) {
	d := core.NewDirectory()
	c1 := &nopConn{id: "c1"}
	c2 := &nopConn{id: "c2"}

	d.Register("alice", c1)
	d.Register("alice", c2)

	// The stale handle's disconnect fires after the reconnect.
	d.Unregister("alice", c1)

	got, ok := d.Lookup("alice")
	require.True(t, ok)
	require.Same(t, c2, got)

	d.Unregister("alice", c2)
	_, ok = d.Lookup("alice")
	require.False(t, ok)
}

func TestDirectoryUnregisterAbsentIsNoop(t *testing.T) {
	d := core.NewDirectory()
	d.Unregister("ghost", nil)
	require.Empty(t, d.Connections())
}

func TestDirectoryConnectionsSnapshot(t *testing.T) {
	d := core.NewDirectory()
	d.Register("alice", &nopConn{})
	d.Register("bob", &nopConn{})

	require.Len(t, d.Connections(), 2)
}
