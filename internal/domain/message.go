package domain

import (
	"time"
)

type Message struct {
	ID           int64      `json:"id"`
	FromUsername string     `json:"-"`
	ToUsername   string     `json:"-"`
	Body         string     `json:"body"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`
	// Joined fields; mailbox listings only expand the other party.
	FromUser *UserSummary `json:"from_user,omitempty"`
	ToUser   *UserSummary `json:"to_user,omitempty"`
}
