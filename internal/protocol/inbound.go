// Package protocol defines the named-event wire contract: inbound payloads
// decoded and validated once at the transport boundary, and outbound event
// constructors. Inbound events arrive as a JSON envelope discriminated by a
// "type" field.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Inbound event names.
const (
	TypeJoinRoom           = "joinRoom"
	TypeApproveJoinRequest = "approveJoinRequest"
	TypeRejectJoinRequest  = "rejectJoinRequest"
	TypeRemoveParticipant  = "removeParticipant"
	TypeLeaveRoom          = "leaveRoom"
	TypeRoomExists         = "roomExists"
	TypeCodeChange         = "codeChange"
	TypeSendMessage        = "sendMessage"
	TypeBlockUser          = "blockUser"
	TypeCheckBlockedStatus = "checkBlockedStatus"
	TypePing               = "ping"
)

var validate = validator.New()

type JoinRoom struct {
	RoomID   string `json:"roomId" validate:"required,max=64"`
	Username string `json:"username" validate:"required,max=36"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	IsAuthor bool   `json:"isAuthor"`
}

type ApproveJoinRequest struct {
	RoomID   string `json:"roomId" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email,omitempty"`
}

type RejectJoinRequest struct {
	RoomID   string `json:"roomId" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email,omitempty"`
}

type RemoveParticipant struct {
	RoomID   string `json:"roomId" validate:"required"`
	Username string `json:"username" validate:"required"`
}

type LeaveRoom struct {
	RoomID   string `json:"roomId" validate:"required"`
	Username string `json:"username" validate:"required"`
}

type RoomExists struct {
	RoomID string `json:"roomId" validate:"required"`
}

type CodeChange struct {
	RoomID   string `json:"roomId" validate:"required"`
	Content  string `json:"content"`
	Username string `json:"username"`
}

type SendMessage struct {
	RoomID    string `json:"roomId" validate:"required"`
	Message   string `json:"message" validate:"required"`
	Sender    string `json:"sender" validate:"required"`
	Timestamp string `json:"timestamp,omitempty"`
}

type BlockUser struct {
	RoomID string `json:"roomId" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
}

type CheckBlockedStatus struct {
	RoomID string `json:"roomId" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
}

type Ping struct{}

// ErrUnknownType reports an event name outside the inbound vocabulary.
type ErrUnknownType struct {
	Type string
}

func (e ErrUnknownType) Error() string {
	return fmt.Sprintf("unknown event type %q", e.Type)
}

// Decode sniffs the envelope type, unmarshals the matching payload struct
// and validates it. Events reaching the coordinator are well-formed.
func Decode(data []byte) (any, error) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	var ev any
	switch env.Type {
	case TypeJoinRoom:
		ev = &JoinRoom{}
	case TypeApproveJoinRequest:
		ev = &ApproveJoinRequest{}
	case TypeRejectJoinRequest:
		ev = &RejectJoinRequest{}
	case TypeRemoveParticipant:
		ev = &RemoveParticipant{}
	case TypeLeaveRoom:
		ev = &LeaveRoom{}
	case TypeRoomExists:
		ev = &RoomExists{}
	case TypeCodeChange:
		ev = &CodeChange{}
	case TypeSendMessage:
		ev = &SendMessage{}
	case TypeBlockUser:
		ev = &BlockUser{}
	case TypeCheckBlockedStatus:
		ev = &CheckBlockedStatus{}
	case TypePing:
		return &Ping{}, nil
	default:
		return nil, ErrUnknownType{Type: env.Type}
	}

	if err := json.Unmarshal(data, ev); err != nil {
		return nil, fmt.Errorf("decode %s: %w", env.Type, err)
	}
	if err := validate.Struct(ev); err != nil {
		return nil, fmt.Errorf("validate %s: %w", env.Type, err)
	}
	return ev, nil
}
