package protocol_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yashkandiyal/real-time-code--editor/internal/protocol"
)

func TestDecodeJoinRoom(t *testing.T) {
	ev, err := protocol.Decode([]byte(`{"type":"joinRoom","roomId":"R1","username":"alice","email":"alice@example.com","isAuthor":true}`))
	require.NoError(t, err)

	join, ok := ev.(*protocol.JoinRoom)
	require.True(t, ok)
	require.Equal(t, "R1", join.RoomID)
	require.Equal(t, "alice", join.Username)
	require.True(t, join.IsAuthor)
}

func TestDecodeJoinRoomWithoutEmail(t *testing.T) {
	ev, err := protocol.Decode([]byte(`{"type":"joinRoom","roomId":"R1","username":"alice"}`))
	require.NoError(t, err)
	join := ev.(*protocol.JoinRoom)
	require.Empty(t, join.Email)
	require.False(t, join.IsAuthor)
}

func TestDecodeRejectsMissingRequiredFields(t *testing.T) {
	cases := []string{
		`{"type":"joinRoom","username":"alice"}`,
		`{"type":"joinRoom","roomId":"R1"}`,
		`{"type":"approveJoinRequest","roomId":"R1"}`,
		`{"type":"removeParticipant","username":"bob"}`,
		`{"type":"sendMessage","roomId":"R1","sender":"bob"}`,
		`{"type":"blockUser","roomId":"R1"}`,
		`{"type":"blockUser","roomId":"R1","email":"not-an-email"}`,
	}
	for _, c := range cases {
		_, err := protocol.Decode([]byte(c))
		require.Error(t, err, c)
	}
}

func TestDecodeUnknownType(t *testing.T) {
	_, err := protocol.Decode([]byte(`{"type":"teleport","roomId":"R1"}`))
	require.Error(t, err)

	var unknown protocol.ErrUnknownType
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, "teleport", unknown.Type)
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := protocol.Decode([]byte(`{"type":`))
	require.Error(t, err)
}

func TestDecodePing(t *testing.T) {
	ev, err := protocol.Decode([]byte(`{"type":"ping"}`))
	require.NoError(t, err)
	_, ok := ev.(*protocol.Ping)
	require.True(t, ok)
}

func TestDecodeCodeChangeAllowsEmptyContent(t *testing.T) {
	ev, err := protocol.Decode([]byte(`{"type":"codeChange","roomId":"R1","content":"","username":"alice"}`))
	require.NoError(t, err)
	change := ev.(*protocol.CodeChange)
	require.Empty(t, change.Content)
}
