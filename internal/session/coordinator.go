// Package session implements the event state machine coordinating room
// membership, join moderation and fan-out. One coordinator serves all
// connections; per-connection context is the participant identity bound at
// connect time.
package session

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/yashkandiyal/real-time-code--editor/internal/core"
	"github.com/yashkandiyal/real-time-code--editor/internal/domain"
	"github.com/yashkandiyal/real-time-code--editor/internal/protocol"
)

// Coordinator mutates registry state first and notifies second. Mutations
// are never rolled back when a send fails: consistent server-side state wins
// over guaranteed delivery.
type Coordinator struct {
	registry  *core.Registry
	directory *core.Directory
	policy    domain.AuthorPolicy
}

func NewCoordinator(registry *core.Registry, directory *core.Directory, policy domain.AuthorPolicy) *Coordinator {
	return &Coordinator{
		registry:  registry,
		directory: directory,
		policy:    policy,
	}
}

func (c *Coordinator) send(conn core.SignalConnection, v any) {
	if conn == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "session").Msg("marshal outbound event")
		return
	}
	if err := conn.TrySend(core.Frame(b)); err != nil {
		// Peer gone or backpressured; the state mutation stands.
		log.Debug().Err(err).Str("module", "session").Msg("send dropped")
	}
}

func (c *Coordinator) sendTo(username string, v any) {
	if conn, ok := c.directory.Lookup(username); ok {
		c.send(conn, v)
	}
}

// broadcast fans an event out to the given member snapshot, skipping any
// usernames in except. The snapshot is taken by the registry under the room
// lock, one consistent view per event.
func (c *Coordinator) broadcast(members []domain.Participant, v any, except ...string) {
	for _, m := range members {
		skip := false
		for _, e := range except {
			if m.Username == e {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		c.sendTo(m.Username, v)
	}
}

// Connect binds the participant's live connection. Last register wins on a
// reconnect race.
func (c *Coordinator) Connect(p domain.Participant, conn core.SignalConnection) {
	c.directory.Register(p.Username, conn)
	log.Info().Str("module", "session").Str("user", p.Username).Msg("connected")
}

func (c *Coordinator) JoinRoom(conn core.SignalConnection, ev *protocol.JoinRoom) {
	roomID := domain.RoomID(ev.RoomID)
	requester := domain.Participant{Username: ev.Username, Email: ev.Email}

	if c.registry.IsBlocked(roomID, requester.Email) {
		c.send(conn, protocol.BlockedStatus(true))
		return
	}

	if !c.registry.Exists(roomID) {
		if !ev.IsAuthor {
			c.send(conn, protocol.RoomJoinError("room does not exist"))
			return
		}
		c.registry.Create(roomID, requester)
		c.send(conn, protocol.CurrentParticipants(c.registry.Members(roomID)))
		c.send(conn, protocol.JoinRoomSuccess(roomID))
		return
	}

	author, _ := c.registry.Author(roomID)
	if ev.IsAuthor || requester.Key() == author.Key() {
		members, ok := c.registry.AddMember(roomID, requester)
		if !ok {
			c.send(conn, protocol.RoomJoinError("room does not exist"))
			return
		}
		c.send(conn, protocol.CurrentParticipants(members))
		c.send(conn, protocol.JoinRoomSuccess(roomID))
		return
	}

	switch c.registry.AddPending(roomID, requester) {
	case core.PendingBlocked:
		c.send(conn, protocol.BlockedStatus(true))
	case core.PendingAdded:
		c.sendTo(author.Username, protocol.JoinRequest(requester, roomID))
		c.send(conn, protocol.JoinRequestPending())
	case core.PendingDuplicate:
		// Already waiting; do not nag the author again.
		c.send(conn, protocol.JoinRequestPending())
	case core.PendingNoRoom:
		c.send(conn, protocol.RoomJoinError("room does not exist"))
	}
}

// isAuthor verifies the sending connection's identity against the stored
// author. Moderation events are honored only for the real author, the
// client-asserted role is not trusted.
func (c *Coordinator) isAuthor(sender domain.Participant, roomID domain.RoomID) bool {
	author, ok := c.registry.Author(roomID)
	return ok && author.Key() == sender.Key()
}

func (c *Coordinator) ApproveJoinRequest(sender domain.Participant, conn core.SignalConnection, ev *protocol.ApproveJoinRequest) {
	roomID := domain.RoomID(ev.RoomID)
	if !c.registry.Exists(roomID) {
		return
	}
	if !c.isAuthor(sender, roomID) {
		c.send(conn, protocol.NotAuthorized("only the room author can approve join requests"))
		return
	}

	approved := domain.Participant{Username: ev.Username, Email: ev.Email}
	members, ok := c.registry.AddMember(roomID, approved)
	if !ok {
		return
	}
	log.Info().Str("module", "session").Str("room", ev.RoomID).Str("user", ev.Username).Msg("join request approved")

	if approvedConn, found := c.directory.Lookup(approved.Username); found {
		c.send(approvedConn, protocol.JoinRequestApproved(roomID))
		c.send(approvedConn, protocol.CurrentParticipants(members))
		// Late joiners start from the room's retained buffer instead of a
		// blank editor.
		if content := c.registry.Content(roomID); content != "" {
			c.send(approvedConn, protocol.CodeUpdate(content, sender.Username))
		}
	}
	c.broadcast(members, protocol.UserJoined(approved))
}

func (c *Coordinator) RejectJoinRequest(sender domain.Participant, conn core.SignalConnection, ev *protocol.RejectJoinRequest) {
	roomID := domain.RoomID(ev.RoomID)
	if !c.registry.Exists(roomID) {
		return
	}
	if !c.isAuthor(sender, roomID) {
		c.send(conn, protocol.NotAuthorized("only the room author can reject join requests"))
		return
	}

	rejected := domain.Participant{Username: ev.Username, Email: ev.Email}
	c.registry.RemovePending(roomID, rejected)
	log.Info().Str("module", "session").Str("room", ev.RoomID).Str("user", ev.Username).Msg("join request rejected")
	c.sendTo(rejected.Username, protocol.JoinRequestRejected(roomID))
}

func (c *Coordinator) RemoveParticipant(sender domain.Participant, conn core.SignalConnection, ev *protocol.RemoveParticipant) {
	roomID := domain.RoomID(ev.RoomID)
	if !c.registry.Exists(roomID) {
		return
	}
	if !c.isAuthor(sender, roomID) {
		c.send(conn, protocol.NotAuthorized("only the room author can remove participants"))
		return
	}

	res := c.registry.RemoveMember(roomID, ev.Username)
	if !res.Found {
		return
	}

	if res.Deleted {
		c.broadcast(res.Remaining, protocol.RoomClosed(roomID))
		c.sendTo(res.Removed.Username, protocol.RoomClosed(roomID))
		return
	}

	c.broadcast(res.Remaining, protocol.UserRemoved(res.Removed.Username))
	c.sendTo(res.Removed.Username, protocol.YouWereRemoved(roomID))
	if res.Promoted != nil {
		c.broadcast(res.Remaining, protocol.NewAuthor(res.Promoted.Username))
	}
}

func (c *Coordinator) LeaveRoom(sender domain.Participant, ev *protocol.LeaveRoom) {
	roomID := domain.RoomID(ev.RoomID)
	if !c.registry.Exists(roomID) {
		return
	}

	if c.isAuthor(sender, roomID) && c.policy == domain.AuthorClosesRoom {
		members := c.registry.Delete(roomID)
		c.broadcast(members, protocol.RoomClosed(roomID), sender.Username)
		return
	}

	res := c.registry.RemoveMember(roomID, ev.Username)
	if !res.Found {
		return
	}
	if res.Deleted {
		c.broadcast(res.Remaining, protocol.RoomClosed(roomID), sender.Username)
		return
	}
	c.broadcast(res.Remaining, protocol.UserLeftWillingly(ev.Username))
	if res.Promoted != nil {
		c.broadcast(res.Remaining, protocol.NewAuthor(res.Promoted.Username))
	}
}

func (c *Coordinator) RoomExists(conn core.SignalConnection, ev *protocol.RoomExists) {
	c.send(conn, protocol.RoomStatus(c.registry.Exists(domain.RoomID(ev.RoomID))))
}

// CodeChange retains the latest buffer as the room snapshot and relays it to
// every other member. Last writer wins; the server never merges.
func (c *Coordinator) CodeChange(ev *protocol.CodeChange) {
	roomID := domain.RoomID(ev.RoomID)
	if !c.registry.Exists(roomID) {
		return
	}
	c.registry.SetContent(roomID, ev.Content)
	members := c.registry.Members(roomID)
	c.broadcast(members, protocol.CodeUpdate(ev.Content, ev.Username), ev.Username)
}

// SendMessage relays chat to the whole room, sender included. Nothing is
// stored.
func (c *Coordinator) SendMessage(ev *protocol.SendMessage) {
	roomID := domain.RoomID(ev.RoomID)
	if !c.registry.Exists(roomID) {
		return
	}
	c.broadcast(c.registry.Members(roomID), protocol.NewMessage(ev.Sender, ev.Message, ev.Timestamp))
}

func (c *Coordinator) BlockUser(sender domain.Participant, conn core.SignalConnection, ev *protocol.BlockUser) {
	roomID := domain.RoomID(ev.RoomID)
	if !c.registry.Exists(roomID) {
		return
	}
	if !c.isAuthor(sender, roomID) {
		c.send(conn, protocol.NotAuthorized("only the room author can block users"))
		return
	}
	if c.registry.Block(roomID, ev.Email) {
		log.Info().Str("module", "session").Str("room", ev.RoomID).Str("email", ev.Email).Msg("user blocked")
		c.send(conn, protocol.UserBlocked(ev.Email))
	} else {
		c.send(conn, protocol.UserAlreadyBlocked(ev.Email))
	}
}

func (c *Coordinator) CheckBlockedStatus(conn core.SignalConnection, ev *protocol.CheckBlockedStatus) {
	c.send(conn, protocol.BlockedStatus(c.registry.IsBlocked(domain.RoomID(ev.RoomID), ev.Email)))
}

func (c *Coordinator) Ping(conn core.SignalConnection) {
	c.send(conn, protocol.Pong())
}

// Disconnect runs the full cleanup for a dropped connection: directory
// entry, pending join requests, memberships, authored rooms, then a
// process-wide notice.
func (c *Coordinator) Disconnect(p domain.Participant, conn core.SignalConnection) {
	c.directory.Unregister(p.Username, conn)

	if affected := c.registry.DropPendingFor(p); len(affected) > 0 {
		log.Debug().Str("module", "session").Str("user", p.Username).Int("rooms", len(affected)).Msg("pending join requests dropped")
	}

	for _, roomID := range c.registry.RoomsWithMember(p) {
		res := c.registry.RemoveMember(roomID, p.Username)
		if res.Found && !res.Deleted {
			c.broadcast(res.Remaining, protocol.UserLeft(p.Username))
		}
	}

	for _, roomID := range c.registry.RoomsAuthoredBy(p) {
		if c.policy == domain.AuthorHandsOff {
			res := c.registry.RemoveMember(roomID, p.Username)
			if res.Found && !res.Deleted {
				c.broadcast(res.Remaining, protocol.UserLeft(p.Username))
				if res.Promoted != nil {
					c.broadcast(res.Remaining, protocol.NewAuthor(res.Promoted.Username))
				}
			}
			continue
		}
		members := c.registry.Delete(roomID)
		c.broadcast(members, protocol.RoomClosed(roomID), p.Username)
	}

	for _, other := range c.directory.Connections() {
		c.send(other, protocol.UserDisconnected(p.Username))
	}
	log.Info().Str("module", "session").Str("user", p.Username).Msg("disconnected")
}
