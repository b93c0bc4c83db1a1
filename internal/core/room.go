package core

import (
	"sync"

	"github.com/yashkandiyal/real-time-code--editor/internal/domain"
)

// room is the threadsafe in-memory state of one collaboration session.
// Compound read-modify-write mutators hold the room lock for their whole
// span and return the snapshots the coordinator will broadcast, so every
// event observes one consistent state.
type room struct {
	mu      sync.RWMutex
	id      domain.RoomID
	author  domain.Participant
	members map[string]domain.Participant
	pending map[string]domain.Participant
	blocked map[string]struct{}
	content string
	deleted bool
}

func newRoom(id domain.RoomID, author domain.Participant) *room {
	r := &room{
		id:      id,
		author:  author,
		members: make(map[string]domain.Participant),
		pending: make(map[string]domain.Participant),
		blocked: make(map[string]struct{}),
	}
	r.members[author.Key()] = author
	return r
}

// PendingStatus reports the outcome of a pending-join insertion.
type PendingStatus int

const (
	PendingAdded PendingStatus = iota
	PendingDuplicate
	PendingBlocked
	PendingNoRoom
)

// RemovalResult carries everything the coordinator needs to notify after a
// member removal, captured in a single snapshot under the room lock.
type RemovalResult struct {
	Found     bool
	Removed   domain.Participant
	WasAuthor bool
	Deleted   bool
	// Promoted is set when the hand-off policy reassigned authorship.
	Promoted  *domain.Participant
	Remaining []domain.Participant
}

func (r *room) membersLocked() []domain.Participant {
	out := make([]domain.Participant, 0, len(r.members))
	for _, p := range r.members {
		out = append(out, p)
	}
	return out
}

func (r *room) addMember(p domain.Participant) ([]domain.Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted {
		return nil, false
	}
	key := p.Key()
	r.members[key] = p
	delete(r.pending, key)
	return r.membersLocked(), true
}

// removeMember removes by username, matching the wire contract: moderation
// events carry only the target's username.
func (r *room) removeMember(username string, policy domain.AuthorPolicy) RemovalResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted {
		return RemovalResult{}
	}

	var res RemovalResult
	for key, p := range r.members {
		if p.Username == username {
			res.Found = true
			res.Removed = p
			res.WasAuthor = key == r.author.Key()
			delete(r.members, key)
			break
		}
	}
	if !res.Found {
		return res
	}

	if len(r.members) == 0 {
		res.Deleted = true
		r.deleted = true
		return res
	}

	if res.WasAuthor {
		switch policy {
		case domain.AuthorHandsOff:
			for _, p := range r.members {
				r.author = p
				promoted := p
				res.Promoted = &promoted
				break
			}
		default:
			res.Deleted = true
			res.Remaining = r.membersLocked()
			r.deleted = true
			return res
		}
	}

	res.Remaining = r.membersLocked()
	return res
}

func (r *room) addPending(p domain.Participant) PendingStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted {
		return PendingNoRoom
	}
	if _, ok := r.blocked[p.Email]; ok && p.Email != "" {
		return PendingBlocked
	}
	key := p.Key()
	if _, ok := r.pending[key]; ok {
		return PendingDuplicate
	}
	if _, ok := r.members[key]; ok {
		return PendingDuplicate
	}
	r.pending[key] = p
	return PendingAdded
}

func (r *room) removePending(p domain.Participant) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := p.Key()
	if _, ok := r.pending[key]; !ok {
		return false
	}
	delete(r.pending, key)
	return true
}

func (r *room) isBlocked(email string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if email == "" {
		return false
	}
	_, ok := r.blocked[email]
	return ok
}

func (r *room) block(email string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blocked[email]; ok {
		return false
	}
	r.blocked[email] = struct{}{}
	return true
}

func (r *room) getAuthor() (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.deleted {
		return domain.Participant{}, false
	}
	return r.author, true
}

func (r *room) membersSnapshot() []domain.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.deleted {
		return nil
	}
	return r.membersLocked()
}

func (r *room) pendingSnapshot() []domain.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Participant, 0, len(r.pending))
	for _, p := range r.pending {
		out = append(out, p)
	}
	return out
}

func (r *room) getContent() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.content
}

func (r *room) setContent(content string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.deleted {
		r.content = content
	}
}

// markDeleted tears the room down and returns the final member snapshot for
// the closing broadcast.
func (r *room) markDeleted() []domain.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted {
		return nil
	}
	r.deleted = true
	out := r.membersLocked()
	r.members = make(map[string]domain.Participant)
	r.pending = make(map[string]domain.Participant)
	return out
}
