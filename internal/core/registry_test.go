package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yashkandiyal/real-time-code--editor/internal/core"
	"github.com/yashkandiyal/real-time-code--editor/internal/domain"
)

var (
	alice = domain.Participant{Username: "alice", Email: "alice@example.com"}
	bob   = domain.Participant{Username: "bob", Email: "bob@example.com"}
	carol = domain.Participant{Username: "carol"}
)

func usernames(ps []domain.Participant) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Username)
	}
	return out
}

func TestCreateInitializesAuthorAsSoleMember(t *testing.T) {
	r := core.NewRegistry(domain.AuthorClosesRoom)

	r.Create("R1", alice)

	require.True(t, r.Exists("R1"))
	author, ok := r.Author("R1")
	require.True(t, ok)
	require.Equal(t, "alice", author.Username)
	require.Equal(t, []string{"alice"}, usernames(r.Members("R1")))
	require.Empty(t, r.Pending("R1"))
}

func TestCreateOverwriteOnRace(t *testing.T) {
	r := core.NewRegistry(domain.AuthorClosesRoom)

	r.Create("R1", alice)
	r.Create("R1", bob)

	author, ok := r.Author("R1")
	require.True(t, ok)
	require.Equal(t, "bob", author.Username)
	require.Equal(t, []string{"bob"}, usernames(r.Members("R1")))
}

func TestAddMemberClearsPendingEntry(t *testing.T) {
	r := core.NewRegistry(domain.AuthorClosesRoom)
	r.Create("R1", alice)

	require.Equal(t, core.PendingAdded, r.AddPending("R1", bob))
	require.Equal(t, []string{"bob"}, usernames(r.Pending("R1")))

	members, ok := r.AddMember("R1", bob)
	require.True(t, ok)
	require.Len(t, members, 2)
	require.Empty(t, r.Pending("R1"), "members and pending must stay disjoint")
}

func TestAddMemberMissingRoomIsNoop(t *testing.T) {
	r := core.NewRegistry(domain.AuthorClosesRoom)

	members, ok := r.AddMember("nope", bob)
	require.False(t, ok)
	require.Nil(t, members)
}

func TestPendingIsIdempotentPerIdentity(t *testing.T) {
	r := core.NewRegistry(domain.AuthorClosesRoom)
	r.Create("R1", alice)

	require.Equal(t, core.PendingAdded, r.AddPending("R1", bob))
	require.Equal(t, core.PendingDuplicate, r.AddPending("R1", bob))
	require.Len(t, r.Pending("R1"), 1)

	// Same username, different email is a different identity.
	other := domain.Participant{Username: "bob", Email: "bob2@example.com"}
	require.Equal(t, core.PendingAdded, r.AddPending("R1", other))
	require.Len(t, r.Pending("R1"), 2)
}

func TestPendingRejectedForExistingMember(t *testing.T) {
	r := core.NewRegistry(domain.AuthorClosesRoom)
	r.Create("R1", alice)
	r.AddMember("R1", bob)

	require.Equal(t, core.PendingDuplicate, r.AddPending("R1", bob))
	require.Empty(t, r.Pending("R1"))
}

func TestDoubleApprovalIsNoop(t *testing.T) {
	r := core.NewRegistry(domain.AuthorClosesRoom)
	r.Create("R1", alice)
	r.AddPending("R1", bob)

	first, ok := r.AddMember("R1", bob)
	require.True(t, ok)
	second, ok := r.AddMember("R1", bob)
	require.True(t, ok)
	require.ElementsMatch(t, usernames(first), usernames(second))
	require.Len(t, second, 2)
}

func TestRemoveLastMemberDeletesRoom(t *testing.T) {
	r := core.NewRegistry(domain.AuthorClosesRoom)
	r.Create("R1", alice)

	res := r.RemoveMember("R1", "alice")
	require.True(t, res.Found)
	require.True(t, res.WasAuthor)
	require.True(t, res.Deleted)
	require.False(t, r.Exists("R1"), "room existence is equivalent to members > 0")
}

func TestAuthorRemovalClosesRoomUnderBaselinePolicy(t *testing.T) {
	r := core.NewRegistry(domain.AuthorClosesRoom)
	r.Create("R1", alice)
	r.AddMember("R1", bob)

	res := r.RemoveMember("R1", "alice")
	require.True(t, res.Deleted)
	require.Nil(t, res.Promoted)
	require.Equal(t, []string{"bob"}, usernames(res.Remaining))
	require.False(t, r.Exists("R1"))
}

func TestAuthorRemovalPromotesUnderHandoffPolicy(t *testing.T) {
	r := core.NewRegistry(domain.AuthorHandsOff)
	r.Create("R1", alice)
	r.AddMember("R1", bob)

	res := r.RemoveMember("R1", "alice")
	require.True(t, res.Found)
	require.False(t, res.Deleted)
	require.NotNil(t, res.Promoted)
	require.Equal(t, "bob", res.Promoted.Username)
	require.True(t, r.Exists("R1"))

	author, ok := r.Author("R1")
	require.True(t, ok)
	require.Equal(t, "bob", author.Username)
}

func TestAuthorAlwaysAMemberWhileRoomExists(t *testing.T) {
	r := core.NewRegistry(domain.AuthorHandsOff)
	r.Create("R1", alice)
	r.AddMember("R1", bob)
	r.AddMember("R1", carol)

	for r.Exists("R1") {
		author, ok := r.Author("R1")
		require.True(t, ok)
		require.Contains(t, usernames(r.Members("R1")), author.Username)
		r.RemoveMember("R1", author.Username)
	}
}

func TestRemoveNonAuthorKeepsRoom(t *testing.T) {
	r := core.NewRegistry(domain.AuthorClosesRoom)
	r.Create("R1", alice)
	r.AddMember("R1", bob)
	r.AddMember("R1", carol)

	res := r.RemoveMember("R1", "carol")
	require.True(t, res.Found)
	require.False(t, res.WasAuthor)
	require.False(t, res.Deleted)
	require.ElementsMatch(t, []string{"alice", "bob"}, usernames(res.Remaining))
	require.True(t, r.Exists("R1"))
}

func TestRemoveUnknownMember(t *testing.T) {
	r := core.NewRegistry(domain.AuthorClosesRoom)
	r.Create("R1", alice)

	res := r.RemoveMember("R1", "ghost")
	require.False(t, res.Found)
	require.True(t, r.Exists("R1"))
}

func TestBlockedEmailNeverEntersPending(t *testing.T) {
	r := core.NewRegistry(domain.AuthorClosesRoom)
	r.Create("R1", alice)

	require.True(t, r.Block("R1", "bob@example.com"))
	require.False(t, r.Block("R1", "bob@example.com"), "second block reports already blocked")
	require.True(t, r.IsBlocked("R1", "bob@example.com"))

	require.Equal(t, core.PendingBlocked, r.AddPending("R1", bob))
	require.Empty(t, r.Pending("R1"))
}

func TestDeleteRemovesEverythingAtOnce(t *testing.T) {
	r := core.NewRegistry(domain.AuthorClosesRoom)
	r.Create("R1", alice)
	r.AddMember("R1", bob)
	r.AddPending("R1", carol)

	members := r.Delete("R1")
	require.ElementsMatch(t, []string{"alice", "bob"}, usernames(members))
	require.False(t, r.Exists("R1"))
	require.Empty(t, r.Pending("R1"))
	_, ok := r.Author("R1")
	require.False(t, ok)
}

func TestContentSnapshotRetention(t *testing.T) {
	r := core.NewRegistry(domain.AuthorClosesRoom)
	r.Create("R1", alice)

	require.Empty(t, r.Content("R1"))
	r.SetContent("R1", "package main")
	require.Equal(t, "package main", r.Content("R1"))

	r.SetContent("R1", "package main\n\nfunc main() {}")
	require.Equal(t, "package main\n\nfunc main() {}", r.Content("R1"))
}

func TestDropPendingForClearsEveryRoom(t *testing.T) {
	r := core.NewRegistry(domain.AuthorClosesRoom)
	r.Create("R1", alice)
	r.Create("R2", carol)
	r.AddPending("R1", bob)
	r.AddPending("R2", bob)

	affected := r.DropPendingFor(bob)
	require.Len(t, affected, 2)
	require.Empty(t, r.Pending("R1"))
	require.Empty(t, r.Pending("R2"))
}

func TestRoomsAuthoredByAndWithMember(t *testing.T) {
	r := core.NewRegistry(domain.AuthorClosesRoom)
	r.Create("R1", alice)
	r.Create("R2", bob)
	r.AddMember("R2", alice)

	require.Equal(t, []domain.RoomID{"R1"}, r.RoomsAuthoredBy(alice))
	require.Equal(t, []domain.RoomID{"R2"}, r.RoomsWithMember(alice))
	require.Empty(t, r.RoomsWithMember(carol))
}
