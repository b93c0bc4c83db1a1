package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/yashkandiyal/real-time-code--editor/internal/domain"
)

// Registry owns every room. The registry lock only guards the room map;
// each room serializes its own read-modify-write sequences under its own
// lock. A room exists iff it has at least one member: deletion removes the
// entry, pending set and author pointer together.
type Registry struct {
	mu     sync.RWMutex
	rooms  map[domain.RoomID]*room
	policy domain.AuthorPolicy
}

func NewRegistry(policy domain.AuthorPolicy) *Registry {
	return &Registry{
		rooms:  make(map[domain.RoomID]*room),
		policy: policy,
	}
}

func (r *Registry) get(id domain.RoomID) *room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rooms[id]
}

// detach removes id from the map only while rm is still the current entry,
// so a racing Create overwrite is not clobbered.
func (r *Registry) detach(id domain.RoomID, rm *room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rooms[id] == rm {
		delete(r.rooms, id)
	}
}

func (r *Registry) Exists(id domain.RoomID) bool {
	return r.get(id) != nil
}

// Create initializes a room with the author as sole member. Two racing
// "author" joins for a brand-new id resolve by last-writer overwrite; no
// prior member set existed, so nothing is lost.
func (r *Registry) Create(id domain.RoomID, author domain.Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[id] = newRoom(id, author)
	log.Info().Str("module", "core.registry").Str("room", string(id)).Str("author", author.Username).Msg("room created")
}

func (r *Registry) AddMember(id domain.RoomID, p domain.Participant) ([]domain.Participant, bool) {
	rm := r.get(id)
	if rm == nil {
		return nil, false
	}
	members, ok := rm.addMember(p)
	if ok {
		log.Info().Str("module", "core.registry").Str("room", string(id)).Str("user", p.Username).Msg("member added")
	}
	return members, ok
}

func (r *Registry) RemoveMember(id domain.RoomID, username string) RemovalResult {
	rm := r.get(id)
	if rm == nil {
		return RemovalResult{}
	}
	res := rm.removeMember(username, r.policy)
	if res.Deleted {
		r.detach(id, rm)
		log.Info().Str("module", "core.registry").Str("room", string(id)).Msg("room deleted")
	} else if res.Promoted != nil {
		log.Info().Str("module", "core.registry").Str("room", string(id)).Str("author", res.Promoted.Username).Msg("author handed off")
	}
	return res
}

func (r *Registry) AddPending(id domain.RoomID, p domain.Participant) PendingStatus {
	rm := r.get(id)
	if rm == nil {
		return PendingNoRoom
	}
	st := rm.addPending(p)
	if st == PendingDuplicate {
		log.Debug().Str("module", "core.registry").Str("room", string(id)).Str("user", p.Username).Msg("duplicate join request dropped")
	}
	return st
}

func (r *Registry) RemovePending(id domain.RoomID, p domain.Participant) bool {
	rm := r.get(id)
	if rm == nil {
		return false
	}
	return rm.removePending(p)
}

func (r *Registry) IsBlocked(id domain.RoomID, email string) bool {
	rm := r.get(id)
	return rm != nil && rm.isBlocked(email)
}

func (r *Registry) Block(id domain.RoomID, email string) bool {
	rm := r.get(id)
	return rm != nil && rm.block(email)
}

func (r *Registry) Author(id domain.RoomID) (domain.Participant, bool) {
	rm := r.get(id)
	if rm == nil {
		return domain.Participant{}, false
	}
	return rm.getAuthor()
}

func (r *Registry) Members(id domain.RoomID) []domain.Participant {
	rm := r.get(id)
	if rm == nil {
		return nil
	}
	return rm.membersSnapshot()
}

func (r *Registry) Pending(id domain.RoomID) []domain.Participant {
	rm := r.get(id)
	if rm == nil {
		return nil
	}
	return rm.pendingSnapshot()
}

func (r *Registry) Content(id domain.RoomID) string {
	rm := r.get(id)
	if rm == nil {
		return ""
	}
	return rm.getContent()
}

func (r *Registry) SetContent(id domain.RoomID, content string) {
	if rm := r.get(id); rm != nil {
		rm.setContent(content)
	}
}

// Delete tears the room down and returns the final member snapshot for the
// closing broadcast.
func (r *Registry) Delete(id domain.RoomID) []domain.Participant {
	rm := r.get(id)
	if rm == nil {
		return nil
	}
	members := rm.markDeleted()
	r.detach(id, rm)
	log.Info().Str("module", "core.registry").Str("room", string(id)).Msg("room deleted")
	return members
}

func (r *Registry) snapshot() map[domain.RoomID]*room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[domain.RoomID]*room, len(r.rooms))
	for id, rm := range r.rooms {
		out[id] = rm
	}
	return out
}

// DropPendingFor removes the identity from every pending set. Disconnect
// cleanup: a requester that vanished before approval must not leave an
// orphaned, unreachable pending entry behind.
func (r *Registry) DropPendingFor(p domain.Participant) []domain.RoomID {
	var affected []domain.RoomID
	for id, rm := range r.snapshot() {
		if rm.removePending(p) {
			affected = append(affected, id)
		}
	}
	return affected
}

// RoomsAuthoredBy lists rooms whose author matches p's identity key.
func (r *Registry) RoomsAuthoredBy(p domain.Participant) []domain.RoomID {
	var out []domain.RoomID
	for id, rm := range r.snapshot() {
		if author, ok := rm.getAuthor(); ok && author.Key() == p.Key() {
			out = append(out, id)
		}
	}
	return out
}

// RoomsWithMember lists rooms where p is a non-author member.
func (r *Registry) RoomsWithMember(p domain.Participant) []domain.RoomID {
	var out []domain.RoomID
	for id, rm := range r.snapshot() {
		author, ok := rm.getAuthor()
		if ok && author.Key() == p.Key() {
			continue
		}
		for _, m := range rm.membersSnapshot() {
			if m.Key() == p.Key() {
				out = append(out, id)
				break
			}
		}
	}
	return out
}
