package protocol

import "github.com/yashkandiyal/real-time-code--editor/internal/domain"

// Outbound event names.
const (
	TypeCurrentParticipants = "currentParticipants"
	TypeJoinRoomSuccess     = "joinRoomSuccess"
	TypeRoomJoinError       = "roomJoinError"
	TypeJoinRequest         = "joinRequest"
	TypeJoinRequestPending  = "joinRequestPending"
	TypeJoinRequestApproved = "joinRequestApproved"
	TypeJoinRequestRejected = "joinRequestRejected"
	TypeUserJoined          = "userJoined"
	TypeUserRemoved         = "userRemoved"
	TypeYouWereRemoved      = "youWereRemoved"
	TypeUserLeft            = "userLeft"
	TypeUserLeftWillingly   = "userLeftWillingly"
	TypeRoomClosed          = "roomClosed"
	TypeNewAuthor           = "newAuthor"
	TypeRoomStatus          = "roomStatus"
	TypeCodeUpdate          = "codeUpdate"
	TypeNewMessage          = "newMessage"
	TypeUserBlocked         = "userBlocked"
	TypeUserAlreadyBlocked  = "userAlreadyBlocked"
	TypeBlockedStatus       = "blockedStatus"
	TypeUserDisconnected    = "userDisconnected"
	TypeNotAuthorized       = "notAuthorized"
	TypePong                = "pong"
)

type CurrentParticipantsEvent struct {
	Type         string               `json:"type"`
	Participants []domain.Participant `json:"participants"`
}

func CurrentParticipants(ps []domain.Participant) CurrentParticipantsEvent {
	if ps == nil {
		ps = []domain.Participant{}
	}
	return CurrentParticipantsEvent{Type: TypeCurrentParticipants, Participants: ps}
}

type RoomEvent struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

func JoinRoomSuccess(roomID domain.RoomID) RoomEvent {
	return RoomEvent{Type: TypeJoinRoomSuccess, RoomID: string(roomID)}
}

func JoinRequestApproved(roomID domain.RoomID) RoomEvent {
	return RoomEvent{Type: TypeJoinRequestApproved, RoomID: string(roomID)}
}

func JoinRequestRejected(roomID domain.RoomID) RoomEvent {
	return RoomEvent{Type: TypeJoinRequestRejected, RoomID: string(roomID)}
}

func YouWereRemoved(roomID domain.RoomID) RoomEvent {
	return RoomEvent{Type: TypeYouWereRemoved, RoomID: string(roomID)}
}

func RoomClosed(roomID domain.RoomID) RoomEvent {
	return RoomEvent{Type: TypeRoomClosed, RoomID: string(roomID)}
}

type MessageEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func RoomJoinError(message string) MessageEvent {
	return MessageEvent{Type: TypeRoomJoinError, Message: message}
}

func NotAuthorized(message string) MessageEvent {
	return MessageEvent{Type: TypeNotAuthorized, Message: message}
}

type JoinRequestEvent struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	RoomID   string `json:"roomId"`
}

func JoinRequest(p domain.Participant, roomID domain.RoomID) JoinRequestEvent {
	return JoinRequestEvent{Type: TypeJoinRequest, Username: p.Username, Email: p.Email, RoomID: string(roomID)}
}

type BareEvent struct {
	Type string `json:"type"`
}

func JoinRequestPending() BareEvent { return BareEvent{Type: TypeJoinRequestPending} }
func Pong() BareEvent               { return BareEvent{Type: TypePong} }

type UserEvent struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

func UserJoined(p domain.Participant) UserEvent {
	return UserEvent{Type: TypeUserJoined, Username: p.Username, Email: p.Email}
}

func UserRemoved(username string) UserEvent {
	return UserEvent{Type: TypeUserRemoved, Username: username}
}

func UserLeft(username string) UserEvent {
	return UserEvent{Type: TypeUserLeft, Username: username}
}

func UserLeftWillingly(username string) UserEvent {
	return UserEvent{Type: TypeUserLeftWillingly, Username: username}
}

func NewAuthor(username string) UserEvent {
	return UserEvent{Type: TypeNewAuthor, Username: username}
}

func UserDisconnected(username string) UserEvent {
	return UserEvent{Type: TypeUserDisconnected, Username: username}
}

type RoomStatusEvent struct {
	Type       string `json:"type"`
	RoomExists bool   `json:"roomExists"`
}

func RoomStatus(exists bool) RoomStatusEvent {
	return RoomStatusEvent{Type: TypeRoomStatus, RoomExists: exists}
}

type CodeUpdateEvent struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Sender  string `json:"sender"`
}

func CodeUpdate(content, sender string) CodeUpdateEvent {
	return CodeUpdateEvent{Type: TypeCodeUpdate, Content: content, Sender: sender}
}

type NewMessageEvent struct {
	Type      string `json:"type"`
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
}

func NewMessage(sender, message, timestamp string) NewMessageEvent {
	return NewMessageEvent{Type: TypeNewMessage, Sender: sender, Message: message, Timestamp: timestamp}
}

type EmailEvent struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}

func UserBlocked(email string) EmailEvent {
	return EmailEvent{Type: TypeUserBlocked, Email: email}
}

func UserAlreadyBlocked(email string) EmailEvent {
	return EmailEvent{Type: TypeUserAlreadyBlocked, Email: email}
}

type BlockedStatusEvent struct {
	Type      string `json:"type"`
	IsBlocked bool   `json:"isBlocked"`
}

func BlockedStatus(blocked bool) BlockedStatusEvent {
	return BlockedStatusEvent{Type: TypeBlockedStatus, IsBlocked: blocked}
}
