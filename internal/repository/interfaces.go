package repository

import (
	"context"

	"account-service/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	GetAllUsers(ctx context.Context) ([]user.User, error)
}
