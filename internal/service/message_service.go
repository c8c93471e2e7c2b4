package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tmarin7/messagely/internal/domain"
	"github.com/tmarin7/messagely/internal/repository"
)

type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

type SendInput struct {
	ToUsername string `json:"to_username"`
	Body       string `json:"body"`
}

type MarkReadResult struct {
	ID     int64      `json:"id"`
	ReadAt *time.Time `json:"read_at"`
}

// Send creates a message. Both endpoints are validated here rather than
// trusting the caller to have resolved the recipient first.
func (s *MessageService) Send(ctx context.Context, fromUsername string, input SendInput) (*domain.Message, error) {
	for _, username := range []string{fromUsername, input.ToUsername} {
		user, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
	}

	msg := &domain.Message{
		FromUsername: fromUsername,
		ToUsername:   input.ToUsername,
		Body:         input.Body,
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	// Re-fetch for the expanded party summaries.
	full, err := s.messageRepo.GetByID(ctx, msg.ID)
	if err != nil {
		return nil, err
	}
	if full == nil {
		return nil, ErrMessageNotFound
	}
	return full, nil
}

// Get returns the message with both parties expanded. Only the sender
// or the recipient may view it.
func (s *MessageService) Get(ctx context.Context, actingUsername string, id int64) (*domain.Message, error) {
	msg, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	if !CanView(actingUsername, msg) {
		return nil, ErrNotParticipant
	}
	return msg, nil
}

// MarkRead sets the read timestamp, once. Re-marking an already-read
// message leaves the original timestamp in place.
func (s *MessageService) MarkRead(ctx context.Context, actingUsername string, id int64) (*MarkReadResult, error) {
	msg, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	if !CanMarkRead(actingUsername, msg) {
		return nil, ErrNotRecipient
	}

	readAt, err := s.messageRepo.MarkRead(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("marking message read: %w", err)
	}
	if readAt == nil {
		return nil, ErrMessageNotFound
	}

	return &MarkReadResult{ID: id, ReadAt: readAt}, nil
}

// MessagesFrom returns all messages sent by the user, each with the
// recipient expanded, oldest first.
func (s *MessageService) MessagesFrom(ctx context.Context, actingUsername, username string) ([]domain.Message, error) {
	if !CanListMailbox(actingUsername, username) {
		return nil, ErrNotMailboxOwner
	}
	return s.listMailbox(ctx, username, s.messageRepo.ListFrom)
}

// MessagesTo returns all messages received by the user, each with the
// sender expanded, oldest first.
func (s *MessageService) MessagesTo(ctx context.Context, actingUsername, username string) ([]domain.Message, error) {
	if !CanListMailbox(actingUsername, username) {
		return nil, ErrNotMailboxOwner
	}
	return s.listMailbox(ctx, username, s.messageRepo.ListTo)
}

func (s *MessageService) listMailbox(ctx context.Context, username string, list func(context.Context, string) ([]domain.Message, error)) ([]domain.Message, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	messages, err := list(ctx, username)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}
