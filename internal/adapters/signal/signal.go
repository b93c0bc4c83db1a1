// Package signal is the WebSocket transport adapter: it upgrades
// connections, binds the caller-asserted identity from the handshake, and
// shuttles named JSON events between the wire and the session coordinator.
package signal

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/yashkandiyal/real-time-code--editor/internal/domain"
	"github.com/yashkandiyal/real-time-code--editor/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Options bound from config.
type Options struct {
	ReadLimit    int64
	PingPeriod   time.Duration
	SendBuffer   int
	EventsPerMin int
}

type Controller struct {
	coord *session.Coordinator
	opts  Options
}

func NewController(coord *session.Coordinator, opts Options) *Controller {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 64
	}
	return &Controller{coord: coord, opts: opts}
}

// HandleSignal serves one persistent connection. Identity (username, email)
// is connection-scoped metadata, established once at upgrade time from the
// request query and referenced implicitly by subsequent events.
func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	p, err := domain.NewParticipant(c.Query("username"), c.Query("email"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	log.Info().Str("module", "signal").Str("user", p.Username).Str("sid", c.GetString("client_token")).Msg("new WS connection")

	conn := newConn(ws, ctl.opts.SendBuffer)
	ctl.coord.Connect(p, conn)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go func() {
		defer cancel()
		ctl.readPump(ctx, p, conn)
	}()
}
