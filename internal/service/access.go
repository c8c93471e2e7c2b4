package service

import (
	"github.com/tmarin7/messagely/internal/domain"
)

// Access predicates. Pure functions over the acting identity and the
// target resource; callers surface the matching error when they deny.

// CanView reports whether the user is a party to the message.
func CanView(actingUsername string, msg *domain.Message) bool {
	return actingUsername == msg.FromUsername || actingUsername == msg.ToUsername
}

// CanMarkRead reports whether the user may mark the message read.
// Only the recipient can.
func CanMarkRead(actingUsername string, msg *domain.Message) bool {
	return actingUsername == msg.ToUsername
}

// CanListMailbox reports whether the user may list the sent/received
// messages of the given mailbox owner.
func CanListMailbox(actingUsername, mailboxOwner string) bool {
	return actingUsername == mailboxOwner
}
