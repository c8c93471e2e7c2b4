package repository

import (
	"context"
	"time"

	"github.com/tmarin7/messagely/internal/domain"
)

type UserRepository interface {
	// Create inserts a new user. Returns ErrDuplicateUsername when the
	// username is already taken.
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns username/first/last for every user, ordered by username.
	List(ctx context.Context) ([]domain.UserSummary, error)
	// TouchLastLogin sets last_login_at to the current server time and
	// returns the new value, or (nil, nil) when the user does not exist.
	TouchLastLogin(ctx context.Context, username string) (*time.Time, error)
}

type MessageRepository interface {
	// Create inserts a message and fills in the assigned ID and SentAt.
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	// MarkRead sets read_at only if it is still null and returns the
	// resulting read timestamp, or (nil, nil) when the message does not
	// exist. Re-marking an already-read message returns the original
	// timestamp unchanged.
	MarkRead(ctx context.Context, id int64) (*time.Time, error)
	// ListFrom returns all messages sent by the user, recipient expanded,
	// ordered by sent_at ascending.
	ListFrom(ctx context.Context, username string) ([]domain.Message, error)
	// ListTo returns all messages received by the user, sender expanded,
	// ordered by sent_at ascending.
	ListTo(ctx context.Context, username string) ([]domain.Message, error)
}
