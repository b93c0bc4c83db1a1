package core

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Directory tracks the single live connection per username.
// Last register wins: a reconnect supersedes the previous handle without an
// explicit close, the transport's own disconnect fires for the stale one.
type Directory struct {
	mu    sync.RWMutex
	conns map[string]SignalConnection
}

func NewDirectory() *Directory {
	return &Directory{conns: make(map[string]SignalConnection)}
}

func (d *Directory) Register(username string, conn SignalConnection) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.conns[username]; ok {
		log.Info().Str("module", "core.directory").Str("user", username).Msg("connection superseded")
	}
	d.conns[username] = conn
}

// Unregister removes the mapping only while conn is still the current handle,
// so a stale disconnect cannot clobber a fresh reconnect. A nil conn removes
// unconditionally.
func (d *Directory) Unregister(username string, conn SignalConnection) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if conn != nil && d.conns[username] != conn {
		return
	}
	delete(d.conns, username)
}

func (d *Directory) Lookup(username string) (SignalConnection, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.conns[username]
	return c, ok
}

// Connections snapshots every live connection, for process-wide notices.
func (d *Directory) Connections() []SignalConnection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]SignalConnection, 0, len(d.conns))
	for _, c := range d.conns {
		out = append(out, c)
	}
	return out
}
