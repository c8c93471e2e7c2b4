package service_test

import (
	"context"
	"sort"
	"time"

	"github.com/tmarin7/messagely/internal/domain"
	"github.com/tmarin7/messagely/internal/repository"
)

// In-memory fakes for the repository interfaces.

type fakeUserRepo struct {
	users map[string]*domain.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[user.Username]; ok {
		return repository.ErrDuplicateUsername
	}
	u := *user
	r.users[user.Username] = &u
	return nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	copy := *u
	return &copy, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.UserSummary, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.UserSummary
	for _, u := range r.users {
		out = append(out, domain.UserSummary{
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *fakeUserRepo) TouchLastLogin(_ context.Context, username string) (*time.Time, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	now := time.Now()
	u.LastLoginAt = &now
	return &now, nil
}

type fakeMessageRepo struct {
	users    *fakeUserRepo
	messages map[int64]*domain.Message
	nextID   int64
	base     time.Time
}

func newFakeMessageRepo(users *fakeUserRepo) *fakeMessageRepo {
	return &fakeMessageRepo{
		users:    users,
		messages: make(map[int64]*domain.Message),
		base:     time.Now(),
	}
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.nextID++
	msg.ID = r.nextID
	// Deterministic, strictly increasing sent timestamps.
	msg.SentAt = r.base.Add(time.Duration(r.nextID) * time.Millisecond)
	m := *msg
	r.messages[msg.ID] = &m
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id int64) (*domain.Message, error) {
	m, ok := r.messages[id]
	if !ok {
		return nil, nil
	}
	copy := *m
	copy.FromUser = r.summary(m.FromUsername)
	copy.ToUser = r.summary(m.ToUsername)
	return &copy, nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, id int64) (*time.Time, error) {
	m, ok := r.messages[id]
	if !ok {
		return nil, nil
	}
	if m.ReadAt == nil {
		now := time.Now()
		m.ReadAt = &now
	}
	return m.ReadAt, nil
}

func (r *fakeMessageRepo) ListFrom(_ context.Context, username string) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range r.messages {
		if m.FromUsername == username {
			copy := *m
			copy.ToUser = r.summary(m.ToUsername)
			out = append(out, copy)
		}
	}
	sortBySentAt(out)
	return out, nil
}

func (r *fakeMessageRepo) ListTo(_ context.Context, username string) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range r.messages {
		if m.ToUsername == username {
			copy := *m
			copy.FromUser = r.summary(m.FromUsername)
			out = append(out, copy)
		}
	}
	sortBySentAt(out)
	return out, nil
}

func (r *fakeMessageRepo) summary(username string) *domain.UserSummary {
	u, ok := r.users.users[username]
	if !ok {
		return nil
	}
	return u.Summary()
}

func sortBySentAt(messages []domain.Message) {
	sort.Slice(messages, func(i, j int) bool { return messages[i].SentAt.Before(messages[j].SentAt) })
}
