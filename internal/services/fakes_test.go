package services

import (
	"context"
	"errors"
	"sync"

	"account-service/internal/domain/user"
	account_errors "account-service/pkg/errors"
)

type fakeUserRepo struct {
	mu          sync.Mutex
	byEmail     map[string]user.User
	order       []string
	createErr   error
	getErr      error
	listErr     error
	createCalls int
	listCalls   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]user.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return account_errors.ErrAlreadyExists
	}
	r.byEmail[u.Email] = *u
	r.order = append(r.order, u.Email)
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return user.User{}, r.getErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return user.User{}, account_errors.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetAllUsers(ctx context.Context) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]user.User, 0, len(r.order))
	for _, email := range r.order {
		out = append(out, r.byEmail[email])
	}
	return out, nil
}

type fakeCache struct {
	users       []user.User
	hit         bool
	getErr      error
	setErr      error
	invalidated int
}

func (c *fakeCache) GetUsers(ctx context.Context) ([]user.User, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.users, c.hit, nil
}

func (c *fakeCache) SetUsers(ctx context.Context, users []user.User) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.users = users
	c.hit = true
	return nil
}

func (c *fakeCache) InvalidateUsers(ctx context.Context) error {
	c.invalidated++
	c.users = nil
	c.hit = false
	return nil
}

type publishedEvent struct {
	channel string
	payload any
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (p *fakePublisher) PublishJSON(ctx context.Context, channel string, v any) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{channel: channel, payload: v})
	return nil
}

var errBoom = errors.New("boom")
