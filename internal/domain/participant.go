// Package domain contains entities without logic, just meta-data.
package domain

import "errors"

const (
	MaxUsernameLen = 36
	MaxRoomIDLen   = 64
)

var (
	ErrUsernameEmpty   = errors.New("username empty")
	ErrUsernameTooLong = errors.New("username too long")
)

// Participant is a caller-asserted identity. The email may be empty;
// identity verification is out of scope here.
type Participant struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// NewParticipant is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewParticipant(username, email string) (Participant, error) {
	if len(username) == 0 {
		return Participant{}, ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return Participant{}, ErrUsernameTooLong
	}
	return Participant{Username: username, Email: email}, nil
}

// Key is the canonical identity key: the (username, email) pair when an
// email is present, the username alone otherwise. Membership, pending-set
// de-duplication and author comparison all go through Key.
func (p Participant) Key() string {
	if p.Email == "" {
		return p.Username
	}
	return p.Username + "\x00" + p.Email
}
