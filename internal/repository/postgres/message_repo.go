package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tmarin7/messagely/internal/domain"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (from_username, to_username, body, sent_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, sent_at`
	return r.pool.QueryRow(ctx, query,
		msg.FromUsername, msg.ToUsername, msg.Body,
	).Scan(&msg.ID, &msg.SentAt)
}

func (r *MessageRepo) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	query := `
		SELECT m.id, m.from_username, m.to_username, m.body, m.sent_at, m.read_at,
			f.username, f.first_name, f.last_name, f.phone,
			t.username, t.first_name, t.last_name, t.phone
		FROM messages m
		JOIN users f ON m.from_username = f.username
		JOIN users t ON m.to_username = t.username
		WHERE m.id = $1`
	var msg domain.Message
	var from, to domain.UserSummary
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&msg.ID, &msg.FromUsername, &msg.ToUsername, &msg.Body, &msg.SentAt, &msg.ReadAt,
		&from.Username, &from.FirstName, &from.LastName, &from.Phone,
		&to.Username, &to.FirstName, &to.LastName, &to.Phone,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	msg.FromUser = &from
	msg.ToUser = &to
	return &msg, nil
}

func (r *MessageRepo) MarkRead(ctx context.Context, id int64) (*time.Time, error) {
	// Only transition null -> set; an already-read message keeps its
	// original timestamp.
	query := `
		UPDATE messages
		SET read_at = now()
		WHERE id = $1 AND read_at IS NULL
		RETURNING read_at`
	var readAt time.Time
	err := r.pool.QueryRow(ctx, query, id).Scan(&readAt)
	if err == nil {
		return &readAt, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// No row updated: either already read or missing.
	var existing *time.Time
	err = r.pool.QueryRow(ctx, `SELECT read_at FROM messages WHERE id = $1`, id).Scan(&existing)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *MessageRepo) ListFrom(ctx context.Context, username string) ([]domain.Message, error) {
	query := `
		SELECT m.id, m.from_username, m.to_username, m.body, m.sent_at, m.read_at,
			t.username, t.first_name, t.last_name, t.phone
		FROM messages m
		JOIN users t ON m.to_username = t.username
		WHERE m.from_username = $1
		ORDER BY m.sent_at`

	return r.listMessages(ctx, query, username, false)
}

func (r *MessageRepo) ListTo(ctx context.Context, username string) ([]domain.Message, error) {
	query := `
		SELECT m.id, m.from_username, m.to_username, m.body, m.sent_at, m.read_at,
			f.username, f.first_name, f.last_name, f.phone
		FROM messages m
		JOIN users f ON m.from_username = f.username
		WHERE m.to_username = $1
		ORDER BY m.sent_at`

	return r.listMessages(ctx, query, username, true)
}

func (r *MessageRepo) listMessages(ctx context.Context, query, username string, expandSender bool) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var other domain.UserSummary
		if err := rows.Scan(
			&msg.ID, &msg.FromUsername, &msg.ToUsername, &msg.Body, &msg.SentAt, &msg.ReadAt,
			&other.Username, &other.FirstName, &other.LastName, &other.Phone,
		); err != nil {
			return nil, err
		}
		if expandSender {
			msg.FromUser = &other
		} else {
			msg.ToUser = &other
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
