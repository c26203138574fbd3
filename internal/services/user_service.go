package services

import (
	"context"
	"errors"
	"time"

	"account-service/internal/domain/user"
	"account-service/internal/redis"
	"account-service/internal/repository"
	account_errors "account-service/pkg/errors"
	"account-service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserCache is the listing cache used by UserService.
type UserCache interface {
	GetUsers(ctx context.Context) ([]user.User, bool, error)
	SetUsers(ctx context.Context, users []user.User) error
	InvalidateUsers(ctx context.Context) error
}

// EventPublisher publishes account events.
type EventPublisher interface {
	PublishJSON(ctx context.Context, channel string, v any) error
}

// UserRegisteredEvent is published after a user is stored.
type UserRegisteredEvent struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type UserService struct {
	repo   repository.UserRepository
	cache  UserCache
	events EventPublisher
	logger *logger.Logger
}

// NewUserService builds the service. cache and events may be nil.
func NewUserService(repo repository.UserRepository, cache UserCache, events EventPublisher, l *logger.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, events: events, logger: l}
}

// GetUserByEmail returns nil without error when no user has that email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account_errors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Save stores u and reports the outcome as a SaveResult. A unique-index
// rejection of the email is an outcome (SaveConflict), not an error.
func (s *UserService) Save(ctx context.Context, u *user.User) (user.SaveResult, error) {
	now := time.Now().UTC()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = repository.NormalizeEmail(u.Email)
	u.CreatedAt = now
	u.UpdatedAt = now

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, account_errors.ErrAlreadyExists) {
			return user.SaveConflict, nil
		}
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateUsers(ctx); err != nil {
			s.warn(ctx, "user list cache invalidation failed", err)
		}
	}

	if s.events != nil {
		event := UserRegisteredEvent{UserID: u.ID.String(), Email: u.Email, CreatedAt: u.CreatedAt}
		if err := s.events.PublishJSON(ctx, redis.ChannelUserRegistered, event); err != nil {
			s.warn(ctx, "user.registered publish failed", err)
		}
	}

	return user.SaveCreated, nil
}

// GetAllUsers lists users, preferring the cache and falling back to the
// repository when the cache misses or fails.
func (s *UserService) GetAllUsers(ctx context.Context) ([]user.User, error) {
	if s.cache != nil {
		users, ok, err := s.cache.GetUsers(ctx)
		if err != nil {
			s.warn(ctx, "user list cache read failed", err)
		} else if ok {
			return users, nil
		}
	}

	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetUsers(ctx, users); err != nil {
			s.warn(ctx, "user list cache write failed", err)
		}
	}
	return users, nil
}

func (s *UserService) warn(ctx context.Context, msg string, err error) {
	if s.logger != nil {
		s.logger.WarnCtx(ctx, msg, zap.Error(err))
	}
}
