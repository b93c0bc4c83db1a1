package signal

import (
	"github.com/rs/zerolog/log"

	"github.com/yashkandiyal/real-time-code--editor/internal/domain"
	"github.com/yashkandiyal/real-time-code--editor/internal/protocol"
)

// dispatch decodes one inbound frame and routes it to the coordinator.
// A malformed or unknown event degrades to a logged no-op, never a crash.
func (ctl *Controller) dispatch(sender domain.Participant, c *Conn, data []byte) {
	ev, err := protocol.Decode(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("user", sender.Username).Msg("dropped inbound event")
		return
	}

	switch ev := ev.(type) {
	case *protocol.JoinRoom:
		ctl.coord.JoinRoom(c, ev)
	case *protocol.ApproveJoinRequest:
		ctl.coord.ApproveJoinRequest(sender, c, ev)
	case *protocol.RejectJoinRequest:
		ctl.coord.RejectJoinRequest(sender, c, ev)
	case *protocol.RemoveParticipant:
		ctl.coord.RemoveParticipant(sender, c, ev)
	case *protocol.LeaveRoom:
		ctl.coord.LeaveRoom(sender, ev)
	case *protocol.RoomExists:
		ctl.coord.RoomExists(c, ev)
	case *protocol.CodeChange:
		ctl.coord.CodeChange(ev)
	case *protocol.SendMessage:
		ctl.coord.SendMessage(ev)
	case *protocol.BlockUser:
		ctl.coord.BlockUser(sender, c, ev)
	case *protocol.CheckBlockedStatus:
		ctl.coord.CheckBlockedStatus(c, ev)
	case *protocol.Ping:
		ctl.coord.Ping(c)
	}
}
