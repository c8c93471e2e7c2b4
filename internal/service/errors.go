package service

import "errors"

var (
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCreds covers both unknown username and wrong password so
	// the login response cannot be used to enumerate usernames.
	ErrInvalidCreds    = errors.New("invalid username or password")
	ErrUserNotFound    = errors.New("user not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrNotParticipant  = errors.New("only the sender or recipient can view this message")
	ErrNotRecipient    = errors.New("only the recipient can mark this message as read")
	ErrNotMailboxOwner = errors.New("only the owner can list this mailbox")
)
